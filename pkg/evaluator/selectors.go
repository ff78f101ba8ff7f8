package evaluator

import (
	"regexp"
	"sort"
	"strings"
)

var (
	classAttrPattern = regexp.MustCompile(`(?i)class\s*=\s*["']([^"']*)["']`)
	openTagPattern   = regexp.MustCompile(`<([a-zA-Z][a-zA-Z0-9-]*)`)
)

// genericSelectors appear in nearly every exercise and say nothing about
// whether the distinctive parts were styled.
var genericSelectors = map[string]struct{}{
	"body":   {},
	"html":   {},
	"div":    {},
	"p":      {},
	"a":      {},
	"ul":     {},
	"li":     {},
	"img":    {},
	"button": {},
	"h2":     {},
	"h3":     {},
	"nav":    {},
}

// ExtractSignificantSelectors returns the sorted, de-duplicated class and tag
// selectors of an HTML fragment, minus the generic structural tags. Only the
// first token of each class attribute is used. Malformed markup is scanned on
// a best-effort basis.
func ExtractSignificantSelectors(html string) []string {
	found := make(map[string]struct{})

	for _, match := range classAttrPattern.FindAllStringSubmatch(html, -1) {
		tokens := strings.Fields(match[1])
		if len(tokens) == 0 {
			continue
		}
		found["."+tokens[0]] = struct{}{}
	}

	for _, match := range openTagPattern.FindAllStringSubmatch(html, -1) {
		found[strings.ToLower(match[1])] = struct{}{}
	}

	selectors := make([]string, 0, len(found))
	for selector := range found {
		if _, generic := genericSelectors[selector]; generic {
			continue
		}
		selectors = append(selectors, selector)
	}
	sort.Strings(selectors)

	return selectors
}
