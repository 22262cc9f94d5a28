package script

import (
	"errors"
	"fmt"
	"strings"

	"github.com/natty-misc/ymd3/constant"
	"github.com/natty-misc/ymd3/engine"
	"github.com/natty-misc/ymd3/media"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// ErrMissingField is returned when a program leaves a required result field unset.
var ErrMissingField = errors.New("missing required result property")

type field struct {
	name     string
	required bool
	// many accepts a sequence of strings as well as a single string.
	many bool
}

// schema lists the result fields in read-back order.
// Reading stops at the first required field that is missing.
var schema = []field{
	{name: constant.VideoURLField, required: true},
	{name: constant.VideoNameField, required: true},
	{name: constant.VideoAuthorField},
	{name: constant.DownloadURLField, required: true, many: true},
}

// readBack walks schema and builds the result from the namespace object.
func readBack(ctx engine.Context) (*media.Result, error) {
	values := make(map[string][]string, len(schema))

	for _, f := range schema {
		raw, err := ctx.Lookup(constant.Namespace, f.name)
		if err != nil {
			return nil, err
		}

		strs := stringsOf(raw, f.many)
		if len(strs) == 0 {
			if f.required {
				return nil, fmt.Errorf("%w: %s", ErrMissingField, f.name)
			}
			continue
		}

		values[f.name] = strs
	}

	author := mo.None[string]()
	if v, ok := values[constant.VideoAuthorField]; ok {
		author = mo.Some(v[0])
	}

	result, err := media.New(
		values[constant.VideoURLField][0],
		values[constant.VideoNameField][0],
		author,
		values[constant.DownloadURLField]...,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingField, constant.DownloadURLField)
	}

	return result, nil
}

// stringsOf converts a looked up value to its string forms.
// nil and empty sequences yield nothing; a sequence is expanded only when many is set.
func stringsOf(raw any, many bool) []string {
	switch v := raw.(type) {
	case nil:
		return nil
	case []any:
		if len(v) == 0 {
			return nil
		}
		if !many {
			return []string{strings.Join(lo.Map(v, func(item any, _ int) string {
				return display(item)
			}), ",")}
		}
		return lo.FilterMap(v, func(item any, _ int) (string, bool) {
			return display(item), item != nil
		})
	default:
		return []string{display(v)}
	}
}
