// Package glob matches file patterns on an afero filesystem, honoring the
// GLOB_* flags an assets manifest may attach to a static source.
package glob

import (
	"sort"
	"strings"

	"github.com/oneconcern/assetic/pkg/errors"
)

// Flags is a bit set of glob flags
type Flags uint

// Supported flags
const (
	Mark Flags = 1 << iota
	NoSort
	NoCheck
	NoEscape
	Brace
	OnlyDir
	Err

	// None means default behavior
	None Flags = 0
)

// ErrInvalidFlag is returned when a manifest uses a flag outside the allow-list
var ErrInvalidFlag = errors.New("invalid glob flag")

var validFlags = map[string]Flags{
	"GLOB_MARK":     Mark,
	"GLOB_NOSORT":   NoSort,
	"GLOB_NOCHECK":  NoCheck,
	"GLOB_NOESCAPE": NoEscape,
	"GLOB_BRACE":    Brace,
	"GLOB_ONLYDIR":  OnlyDir,
	"GLOB_ERR":      Err,
}

// FlagNames lists the accepted flag names, sorted
func FlagNames() []string {
	names := make([]string, 0, len(validFlags))
	for name := range validFlags {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseFlags parses the flag attribute of a static source.
//
// An empty attribute yields None. Several flags may be combined with "|".
func ParseFlags(attr string) (Flags, error) {
	attr = strings.TrimSpace(attr)
	if attr == "" {
		return None, nil
	}

	var flags Flags
	for _, part := range strings.Split(attr, "|") {
		name := strings.TrimSpace(part)
		flag, ok := validFlags[name]
		if !ok {
			return None, ErrInvalidFlag.Wrapf("This flag %q not valid.", name)
		}
		flags |= flag
	}
	return flags, nil
}

// Has tells if all flags in f are set
func (fl Flags) Has(f Flags) bool {
	return fl&f == f
}

func (fl Flags) String() string {
	if fl == None {
		return ""
	}
	var names []string
	for _, name := range FlagNames() {
		if fl.Has(validFlags[name]) {
			names = append(names, name)
		}
	}
	return strings.Join(names, "|")
}
