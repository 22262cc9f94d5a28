package script

import (
	"context"
	"errors"
	"fmt"

	"github.com/natty-misc/ymd3/constant"
	"github.com/natty-misc/ymd3/engine"
	"github.com/natty-misc/ymd3/fetch"
	"github.com/samber/mo"
	"github.com/sirupsen/logrus"
)

const (
	usageGetVersion = "Bad parameters"
	usageRetrieve   = "Bad parameters: Missing required parameter 'url'."
	badURLParameter = "Bad parameter 'url': Must be a string."
)

// hostBindings builds the namespace installed into every context.
// The set is the same for every program; only inputURL differs between runs.
func hostBindings(ctx context.Context, id string, fetcher fetch.Fetcher, logger logrus.FieldLogger) []engine.Binding {
	return []engine.Binding{
		engine.Function(constant.GetVersionFn, 0, usageGetVersion, func([]any) (mo.Option[string], error) {
			return mo.Some(constant.Version), nil
		}),
		engine.Function(constant.LogFn, engine.Variadic, "", func(args []any) (mo.Option[string], error) {
			for _, arg := range args {
				logger.Info(display(arg))
			}
			return mo.None[string](), nil
		}),
		engine.Function(constant.RetrieveFn, 1, usageRetrieve, func(args []any) (mo.Option[string], error) {
			url, ok := args[0].(string)
			if !ok {
				return mo.None[string](), errors.New(badURLParameter)
			}

			logger.Debugf("Retrieval from %s requested.", url)
			body, err := fetcher.Fetch(ctx, url)
			if err != nil {
				return mo.None[string](), err
			}

			return mo.Some(string(body)), nil
		}),
		engine.Value(constant.InputURL, id),
	}
}

// display returns the string form of a marshaled script value.
func display(value any) string {
	switch v := value.(type) {
	case nil:
		return "nil"
	case string:
		return v
	case engine.Opaque:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}
