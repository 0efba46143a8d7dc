// Package glob implements Ant-style path patterns.
//
// Patterns are matched against slash separated paths relative to a root directory:
//   - `*` matches any sequence of characters inside one path segment
//   - `?` matches one character inside one path segment
//   - `[...]` matches a character class, as in path.Match
//   - `**` as a whole segment matches zero or more directories
//
// A pattern ending with "/" matches everything below that directory, as if "**" was
// appended. Matching is case-sensitive.
package glob

import (
	"path"
	"slices"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

const doubleStar = "**"

// DefaultExcludes lists SCM metadata and editor leftovers that are rarely meant to be
// published.
var DefaultExcludes = []string{
	"**/*~",
	"**/#*#",
	"**/.#*",
	"**/%*%",
	"**/._*",
	"**/CVS/**",
	"**/.cvsignore",
	"**/SCCS/**",
	"**/vssver.scc",
	"**/.svn/**",
	"**/.DS_Store",
	"**/.git/**",
	"**/.gitattributes",
	"**/.gitignore",
	"**/.gitmodules",
	"**/.hg/**",
	"**/.hgignore",
	"**/.hgsub",
	"**/.hgsubstate",
	"**/.hgtags",
	"**/.bzr/**",
	"**/.bzrignore",
}

// Pattern is a compiled glob pattern
type Pattern struct {
	raw      string
	segments []string
}

// Compile parses pattern. It fails on a blank pattern or malformed character class.
func Compile(pattern string) (*Pattern, error) {
	p := strings.TrimSpace(pattern)
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	p = strings.TrimLeft(p, "/")
	if p == "" {
		return nil, goerr.New("glob pattern cannot be blank", goerr.V("pattern", pattern))
	}
	if strings.HasSuffix(p, "/") {
		p += doubleStar
	}

	var segments []string
	for _, seg := range strings.Split(p, "/") {
		if seg == "" || seg == "." {
			continue
		}
		if seg != doubleStar {
			// path.Match reports syntax errors even when the name does not match
			if _, err := path.Match(seg, ""); err != nil {
				return nil, goerr.Wrap(err, "malformed glob pattern",
					goerr.V("pattern", pattern),
					goerr.V("segment", seg))
			}
		}
		segments = append(segments, seg)
	}

	return &Pattern{raw: pattern, segments: segments}, nil
}

// MustCompile is like Compile but panics on error
func MustCompile(pattern string) *Pattern {
	p, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return p
}

// CompileAll compiles every pattern, failing on the first invalid one
func CompileAll(patterns []string) ([]*Pattern, error) {
	compiled := make([]*Pattern, 0, len(patterns))
	for _, raw := range patterns {
		p, err := Compile(raw)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, p)
	}
	return compiled, nil
}

func (p *Pattern) String() string {
	return p.raw
}

// Match reports whether the slash separated relative path name matches p
func (p *Pattern) Match(name string) bool {
	return matchSegments(p.segments, splitPath(name))
}

func splitPath(name string) []string {
	var out []string
	for _, seg := range strings.Split(name, "/") {
		if seg == "" || seg == "." {
			continue
		}
		out = append(out, seg)
	}
	return out
}

func matchSegments(pattern, name []string) bool {
	for len(pattern) > 0 {
		if pattern[0] == doubleStar {
			for len(pattern) > 0 && pattern[0] == doubleStar {
				pattern = pattern[1:]
			}
			if len(pattern) == 0 {
				return true
			}
			for i := range name {
				if matchSegments(pattern, name[i:]) {
					return true
				}
			}
			return false
		}

		if len(name) == 0 {
			return false
		}
		if ok, _ := path.Match(pattern[0], name[0]); !ok {
			return false
		}
		pattern, name = pattern[1:], name[1:]
	}

	return len(name) == 0
}

// SplitPatterns splits comma separated pattern lists, trimming blanks
func SplitPatterns(values ...string) []string {
	var out []string
	for _, v := range values {
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

// Matcher selects paths matching any include pattern and no exclude pattern
type Matcher struct {
	includes []*Pattern
	excludes []*Pattern
}

// NewMatcher creates a Matcher from compiled patterns
func NewMatcher(includes, excludes []*Pattern) *Matcher {
	return &Matcher{includes: includes, excludes: excludes}
}

// Match reports whether name is selected. Excludes take precedence over includes.
func (m *Matcher) Match(name string) bool {
	for _, p := range m.excludes {
		if p.Match(name) {
			return false
		}
	}
	for _, p := range m.includes {
		if p.Match(name) {
			return true
		}
	}
	return false
}

// Filter returns the distinct paths selected by includes and excludes, sorted
// lexicographically. Nothing is filtered when a pattern fails to compile.
func Filter(paths, includes, excludes []string) ([]string, error) {
	inc, err := CompileAll(includes)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid include pattern")
	}
	exc, err := CompileAll(excludes)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid exclude pattern")
	}

	m := NewMatcher(inc, exc)
	selected := []string{}
	for _, p := range paths {
		if m.Match(p) {
			selected = append(selected, p)
		}
	}

	slices.Sort(selected)
	return slices.Compact(selected), nil
}
