package glob

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
)

// Glob returns the paths matching a pattern on fs.
//
// Without the Brace flag, curly braces are matched literally. With it, each
// alternative is globbed in turn: matches are sorted per alternative and
// alternatives keep their declared order. Matches keep the prefix of the
// pattern, so a relative pattern yields relative paths, resolved against the
// current working directory.
func Glob(fs afero.Fs, pattern string, flags Flags) ([]string, error) {
	patterns := []string{pattern}
	if flags.Has(Brace) {
		patterns = expandBraces(pattern, !flags.Has(NoEscape))
	}

	var matches []string
	for _, p := range patterns {
		found, err := globOne(fs, p, flags&^Brace)
		if err != nil {
			return nil, err
		}
		matches = append(matches, found...)
	}

	if len(matches) == 0 && flags.Has(NoCheck) {
		return []string{pattern}, nil
	}
	return matches, nil
}

func globOne(fs afero.Fs, pattern string, flags Flags) ([]string, error) {
	base, pat := doublestar.SplitPattern(rewrite(filepath.ToSlash(pattern), flags))
	base = unescape(base)

	root := base
	if !filepath.IsAbs(root) {
		abs, err := filepath.Abs(filepath.FromSlash(root))
		if err != nil {
			return nil, fmt.Errorf("resolving glob base %q: %w", base, err)
		}
		root = abs
	}

	var opts []doublestar.GlobOption
	if flags.Has(Err) {
		opts = append(opts, doublestar.WithFailOnIOErrors())
	}

	var matches []string
	if pat != "" {
		found, err := doublestar.Glob(afero.NewIOFS(afero.NewBasePathFs(fs, root)), pat, opts...)
		if err != nil {
			return nil, fmt.Errorf("glob pattern %q: %w", pattern, err)
		}
		matches = make([]string, 0, len(found))
		for _, m := range found {
			matches = append(matches, filepath.Join(filepath.FromSlash(base), filepath.FromSlash(m)))
		}
	} else if exists, _ := afero.Exists(fs, root); exists {
		// pattern ending with a separator designates the base directory
		matches = []string{filepath.FromSlash(base)}
	}

	if flags.Has(OnlyDir) || flags.Has(Mark) {
		kept := matches[:0]
		for _, m := range matches {
			isDir, err := afero.IsDir(fs, m)
			if err != nil && flags.Has(Err) {
				return nil, fmt.Errorf("stat %q: %w", m, err)
			}
			if flags.Has(OnlyDir) && !isDir {
				continue
			}
			if flags.Has(Mark) && isDir && !strings.HasSuffix(m, string(filepath.Separator)) {
				m += string(filepath.Separator)
			}
			kept = append(kept, m)
		}
		matches = kept
	}

	if !flags.Has(NoSort) {
		sort.Strings(matches)
	}
	return matches, nil
}

// expandBraces expands the leftmost {a,b} group of pattern, then the groups
// of each alternative, keeping alternatives in order. Unbalanced braces are
// left as is.
func expandBraces(pattern string, escaping bool) []string {
	open, closing := -1, -1
	var commas []int
	depth := 0
	for i := 0; i < len(pattern) && closing < 0; i++ {
		switch c := pattern[i]; {
		case c == '\\' && escaping:
			i++
		case c == '{':
			if depth == 0 {
				open = i
			}
			depth++
		case c == ',' && depth == 1:
			commas = append(commas, i)
		case c == '}' && depth > 0:
			depth--
			if depth == 0 {
				closing = i
			}
		}
	}
	if open < 0 || closing < 0 {
		return []string{pattern}
	}

	prefix, suffix := pattern[:open], pattern[closing+1:]
	bounds := append(append([]int{open}, commas...), closing)
	expanded := make([]string, 0, len(bounds)-1)
	for i := 0; i < len(bounds)-1; i++ {
		alt := pattern[bounds[i]+1 : bounds[i+1]]
		expanded = append(expanded, expandBraces(prefix+alt+suffix, escaping)...)
	}
	return expanded
}

// rewrite adapts a manifest pattern to the doublestar syntax, according to flags
func rewrite(pattern string, flags Flags) string {
	var b strings.Builder
	escaped := false
	for _, r := range pattern {
		switch {
		case escaped:
			b.WriteRune(r)
			escaped = false
		case r == '\\' && flags.Has(NoEscape):
			b.WriteString(`\\`)
		case r == '\\':
			b.WriteRune(r)
			escaped = true
		case (r == '{' || r == '}') && !flags.Has(Brace):
			b.WriteRune('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// unescape removes escaping backslashes from the literal base of a pattern
func unescape(base string) string {
	if !strings.Contains(base, `\`) {
		return base
	}
	var b strings.Builder
	escaped := false
	for _, r := range base {
		if r == '\\' && !escaped {
			escaped = true
			continue
		}
		escaped = false
		b.WriteRune(r)
	}
	return b.String()
}
