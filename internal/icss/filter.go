package icss

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// schemePattern matches absolute urls such as https://host/a.png
var schemePattern = regexp.MustCompile(`^\w+://`)

// DefaultFilter externalizes relative and bare paths. It rejects absolute
// urls with a scheme, protocol-relative urls, fragment-only references and
// data: URIs.
func DefaultFilter(url string) bool {
	return !schemePattern.MatchString(url) &&
		!strings.HasPrefix(url, "//") &&
		!strings.HasPrefix(url, "#") &&
		!strings.HasPrefix(url, "data:")
}

// AllowAll externalizes every url.
func AllowAll(string) bool {
	return true
}

// PatternFilter builds a filter from doublestar patterns. A url is
// externalized when it matches at least one include pattern (or includes is
// empty) and no exclude pattern. The result replaces DefaultFilter; it does
// not extend it.
func PatternFilter(includes, excludes []string) (Filter, error) {
	for _, list := range [][]string{includes, excludes} {
		for _, pattern := range list {
			if !doublestar.ValidatePattern(pattern) {
				return nil, fmt.Errorf("invalid url pattern %q: %w", pattern, doublestar.ErrBadPattern)
			}
		}
	}

	return func(url string) bool {
		if len(includes) > 0 && !matchAny(includes, url) {
			return false
		}
		return !matchAny(excludes, url)
	}, nil
}

// NewFilter materializes a FilterConfig. It returns nil when the default
// filter should apply.
func NewFilter(config FilterConfig) (Filter, error) {
	if config.All {
		return AllowAll, nil
	}
	if len(config.Include) == 0 && len(config.Exclude) == 0 {
		return nil, nil
	}
	return PatternFilter(config.Include, config.Exclude)
}

func matchAny(patterns []string, url string) bool {
	for _, pattern := range patterns {
		// Patterns are validated up front, so Match cannot fail here.
		if ok, _ := doublestar.Match(pattern, url); ok {
			return true
		}
	}
	return false
}
