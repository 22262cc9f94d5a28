package version

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// semver is a parsed major.minor.patch triple.
type semver [3]int

func parse(s string) (v semver, err error) {
	_, err = fmt.Sscanf(strings.TrimPrefix(s, "v"), "%d.%d.%d", &v[0], &v[1], &v[2])
	if err != nil {
		return v, fmt.Errorf("parse version %q: %w", s, err)
	}
	return v, nil
}

// Compare returns 1 if a is newer than b, -1 if older and 0 if equal.
// A leading "v" is ignored on both sides.
func Compare(a, b string) (int, error) {
	av, err := parse(a)
	if err != nil {
		return 0, err
	}

	bv, err := parse(b)
	if err != nil {
		return 0, err
	}

	for i := range av {
		if diff := av[i] - bv[i]; diff != 0 {
			return lo.Ternary(diff > 0, 1, -1), nil
		}
	}

	return 0, nil
}
