package evaluator

import (
	"regexp"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
)

type probeMatcher interface {
	Match(probe string) bool
}

// substringMatcher tests probes against the normalised submission text.
type substringMatcher struct {
	css string
}

func (m substringMatcher) Match(probe string) bool {
	probe = Normalize(probe)
	if probe == "" {
		return false
	}
	return strings.Contains(m.css, probe)
}

var propertyNamePattern = regexp.MustCompile(`^-?[a-z][a-z0-9-]*$`)

// stylesheetMatcher tests probes against parsed rules, so "display: flex"
// matches "display:flex" and a probe never matches text inside a comment.
type stylesheetMatcher struct {
	declarations []*css.Declaration
	selectors    []string
	atRules      []string
	fallback     substringMatcher
}

func newStylesheetMatcher(source string) (stylesheetMatcher, bool) {
	sheet, err := parser.Parse(source)
	if err != nil || sheet == nil {
		return stylesheetMatcher{}, false
	}

	m := stylesheetMatcher{fallback: substringMatcher{css: Normalize(source)}}
	m.collect(sheet.Rules)
	return m, true
}

func (m *stylesheetMatcher) collect(rules []*css.Rule) {
	for _, rule := range rules {
		if rule.Kind == css.AtRule {
			m.atRules = append(m.atRules, strings.ToLower(rule.Name))
		}
		for _, selector := range rule.Selectors {
			m.selectors = append(m.selectors, Normalize(selector))
		}
		m.declarations = append(m.declarations, rule.Declarations...)
		m.collect(rule.Rules)
	}
}

func (m stylesheetMatcher) Match(probe string) bool {
	probe = Normalize(probe)
	switch {
	case probe == "":
		return false
	case strings.HasPrefix(probe, "@"):
		name := strings.Fields(probe)[0]
		for _, atRule := range m.atRules {
			if atRule == name {
				return true
			}
		}
		return false
	case strings.HasPrefix(probe, ":"), strings.HasPrefix(probe, "."), strings.HasPrefix(probe, "#"):
		for _, selector := range m.selectors {
			if strings.Contains(selector, probe) {
				return true
			}
		}
		return false
	}

	if property, value, ok := strings.Cut(probe, ":"); ok {
		property = strings.TrimSpace(property)
		value = strings.TrimSpace(value)
		if propertyNamePattern.MatchString(property) {
			return m.hasDeclaration(property, value)
		}
	}
	if propertyNamePattern.MatchString(probe) {
		return m.hasDeclaration(probe, "")
	}

	return m.fallback.Match(probe)
}

func (m stylesheetMatcher) hasDeclaration(property, value string) bool {
	for _, decl := range m.declarations {
		if strings.ToLower(strings.TrimSpace(decl.Property)) != property {
			continue
		}
		if value == "" || strings.Contains(Normalize(decl.Value), value) {
			return true
		}
	}
	return false
}
