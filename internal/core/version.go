package core

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"depsolver/internal/types"
)

// ParseVersion parses a dotted decimal string ("1.10.2") into a
// types.Version. Each component must be a non-negative integer.
func ParseVersion(raw string) (types.Version, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("empty version string")
	}
	parts := strings.Split(raw, ".")
	version := make(types.Version, len(parts))
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid version component %q in %q", part, raw)).
				WithCause(err)
		}
		version[i] = n
	}
	return version, nil
}

// CompareVersions compares two dotted-integer version sequences
// element-wise over their common prefix. If the prefix is equal, the
// shorter sequence compares as less than the longer one: this is the
// source's direct sequence comparison (Python tuple comparison),
// deliberately not zero-padded, so "1.2" < "1.2.0".
//
// Returns -1, 0, or 1.
func CompareVersions(a, b types.Version) int {
	return types.CompareVersionSlices(a, b)
}

// SortVersionsAscending sorts packages in place by ascending version,
// using CompareVersions.
func SortVersionsAscending(packages []*types.Package) {
	for i := 1; i < len(packages); i++ {
		for j := i; j > 0 && CompareVersions(packages[j-1].Version, packages[j].Version) > 0; j-- {
			packages[j-1], packages[j] = packages[j], packages[j-1]
		}
	}
}
