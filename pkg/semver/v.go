// Package semver renders and parses the semantic versions stamped into relay binaries.
package semver

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformed - returned by Parse when the input is not a MAJOR.MINOR.PATCH version.
var ErrMalformed = errors.New("semver: malformed version")

type (
	// V is structured semantic version representation
	V struct {
		Major, Minor, Patch uint
		PreRelease          string
		BuildMetadata       []string
	}
)

// Core - returns MAJOR.MINOR.PATCH part only.
func (v V) Core() string {
	return strconv.FormatUint(uint64(v.Major), 10) + "." +
		strconv.FormatUint(uint64(v.Minor), 10) + "." +
		strconv.FormatUint(uint64(v.Patch), 10)
}

func (v V) String() string {
	buf := strings.Builder{}
	buf.WriteString(v.Core())
	if v.PreRelease != "" {
		buf.WriteByte('-')
		buf.WriteString(v.PreRelease)
	}
	if len(v.BuildMetadata) > 0 {
		buf.WriteByte('+')
		buf.WriteString(strings.Join(v.BuildMetadata, "."))
	}
	return buf.String()
}

// Parse - builds V from its string form, the inverse of V.String.
func Parse(s string) (V, error) {
	v := V{}
	if i := strings.IndexByte(s, '+'); i >= 0 {
		if i == len(s)-1 {
			return V{}, fmt.Errorf("%w: empty build metadata in %q", ErrMalformed, s)
		}
		v.BuildMetadata = strings.Split(s[i+1:], ".")
		s = s[:i]
	}
	if i := strings.IndexByte(s, '-'); i >= 0 {
		v.PreRelease = s[i+1:]
		if v.PreRelease == "" {
			return V{}, fmt.Errorf("%w: empty pre-release in %q", ErrMalformed, s)
		}
		s = s[:i]
	}
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return V{}, fmt.Errorf("%w: %q", ErrMalformed, s)
	}
	nums := [3]uint{}
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return V{}, fmt.Errorf("%w: %q: %v", ErrMalformed, p, err)
		}
		nums[i] = uint(n)
	}
	v.Major, v.Minor, v.Patch = nums[0], nums[1], nums[2]
	return v, nil
}
