// Package rule implements the match rules checks are built from and the
// evaluator that applies them to artifact text.
package rule

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/xeenaa/implaudit/internal/domain"
)

// Rule finds evidence in text. Find returns the matched fragment, which may
// be empty for rules that assert absence.
type Rule interface {
	Find(text string) (string, bool)
	String() string
}

type contains string

// Contains matches a case-sensitive substring.
func Contains(s string) Rule { return contains(s) }

func (c contains) Find(text string) (string, bool) {
	if strings.Contains(text, string(c)) {
		return string(c), true
	}
	return "", false
}

func (c contains) String() string { return fmt.Sprintf("contains %q", string(c)) }

type containsFold string

// ContainsFold matches a substring ignoring case.
func ContainsFold(s string) Rule { return containsFold(s) }

func (c containsFold) Find(text string) (string, bool) {
	lower, needle := strings.ToLower(text), strings.ToLower(string(c))
	i := strings.Index(lower, needle)
	if i < 0 {
		return "", false
	}
	if start, end, ok := originalSpan(text, i, i+len(needle)); ok {
		return text[start:end], true
	}
	return string(c), true
}

// originalSpan maps the byte span [from, to) of strings.ToLower(text) back
// onto text. ToLower lowers rune by rune, so offsets advance by the width of
// each lowered rune.
func originalSpan(text string, from, to int) (int, int, bool) {
	start, off := -1, 0
	for pos, r := range text {
		if off == from {
			start = pos
		}
		if off == to {
			return start, pos, start >= 0
		}
		off += utf8.RuneLen(unicode.ToLower(r))
	}
	return start, len(text), start >= 0 && off == to
}

func (c containsFold) String() string {
	return fmt.Sprintf("contains %q (any case)", string(c))
}

type pattern struct{ re *regexp.Regexp }

// Pattern matches a regular expression anywhere in the text. It panics on
// an invalid expression, as registry entries are compiled at start-up.
func Pattern(expr string) Rule { return pattern{re: regexp.MustCompile(expr)} }

func (p pattern) Find(text string) (string, bool) {
	loc := p.re.FindStringIndex(text)
	if loc == nil {
		return "", false
	}
	return text[loc[0]:loc[1]], true
}

func (p pattern) String() string { return fmt.Sprintf("matches /%s/", p.re.String()) }

type not struct{ inner Rule }

// Not holds when inner finds nothing.
func Not(inner Rule) Rule { return not{inner: inner} }

func (n not) Find(text string) (string, bool) {
	if _, ok := n.inner.Find(text); ok {
		return "", false
	}
	return "", true
}

func (n not) String() string { return "not " + n.inner.String() }

type all []Rule

// All holds when every rule holds.
func All(rules ...Rule) Rule { return all(rules) }

func (a all) Find(text string) (string, bool) {
	var found []string
	for _, r := range a {
		ev, ok := r.Find(text)
		if !ok {
			return "", false
		}
		if ev != "" {
			found = append(found, ev)
		}
	}
	return strings.Join(found, "; "), true
}

func (a all) String() string { return join([]Rule(a), " and ") }

type anyOf []Rule

// Any holds when at least one rule holds; the first match is the evidence.
func Any(rules ...Rule) Rule { return anyOf(rules) }

func (a anyOf) Find(text string) (string, bool) {
	for _, r := range a {
		if ev, ok := r.Find(text); ok {
			return ev, true
		}
	}
	return "", false
}

func (a anyOf) String() string { return join([]Rule(a), " or ") }

func join(rules []Rule, sep string) string {
	parts := make([]string, len(rules))
	for i, r := range rules {
		parts[i] = r.String()
	}
	return "(" + strings.Join(parts, sep) + ")"
}

// Evaluation is the outcome of applying one rule to one source.
type Evaluation struct {
	Passed bool
	// SourceMissing distinguishes "artifact absent" from "checked and failed".
	SourceMissing bool
	Evidence      string
}

// Evaluate applies r to src.
func Evaluate(src domain.Source, r Rule) Evaluation {
	if !src.Found {
		return Evaluation{SourceMissing: true}
	}
	ev, ok := r.Find(src.Text)
	if !ok {
		return Evaluation{}
	}
	return Evaluation{Passed: true, Evidence: ev}
}
