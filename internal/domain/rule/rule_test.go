package rule_test

import (
	"strings"
	"testing"
	"unicode"
	"unicode/utf8"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"

	"github.com/xeenaa/implaudit/internal/domain"
	"github.com/xeenaa/implaudit/internal/domain/rule"
)

func found(text string) domain.Source {
	return domain.Source{Path: "Handler.java", Text: text, Found: true}
}

func TestEvaluate_MissingSource(t *testing.T) {
	ev := rule.Evaluate(domain.MissingSource("Handler.java"), rule.Contains("x"))
	assert.False(t, ev.Passed)
	assert.True(t, ev.SourceMissing)
}

func TestEvaluate_MismatchIsNotMissing(t *testing.T) {
	ev := rule.Evaluate(found("nothing here"), rule.Contains("x"))
	assert.False(t, ev.Passed)
	assert.False(t, ev.SourceMissing)
}

func TestContains_CaseSensitive(t *testing.T) {
	r := rule.Contains("parentScreen.close()")
	assert.True(t, rule.Evaluate(found("  parentScreen.close();"), r).Passed)
	assert.False(t, rule.Evaluate(found("  parentscreen.close();"), r).Passed)
}

func TestContainsFold_IgnoresCase(t *testing.T) {
	r := rule.ContainsFold("refund")
	ev := rule.Evaluate(found("// REFUND the player"), r)
	assert.True(t, ev.Passed)
	assert.Equal(t, "REFUND", ev.Evidence)
}

func TestContainsFold_EvidenceAroundNonASCII(t *testing.T) {
	tests := []struct {
		name   string
		needle string
		text   string
		want   string
	}{
		// İ lowers to one byte and Ⱥ to three, so the lengths still agree.
		{"widths cancel out", "refund", "İrefundȺ", "refund"},
		{"upper case between", "refund", "İ REFUND Ⱥ", "REFUND"},
		{"match starts on shrinking rune", "kelvin", "\u212Aelvin scale", "\u212Aelvin"},
		{"match ends the text", "refund", "ȺȺ Refund", "Refund"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := rule.Evaluate(found(tt.text), rule.ContainsFold(tt.needle))
			assert.True(t, ev.Passed)
			assert.Equal(t, tt.want, ev.Evidence)
		})
	}
}

func TestPattern_SearchSemantics(t *testing.T) {
	r := rule.Pattern(`Loaded \d+ available professions`)
	ev := rule.Evaluate(found("[INFO] Loaded 12 available professions for villager"), r)
	assert.True(t, ev.Passed)
	assert.Equal(t, "Loaded 12 available professions", ev.Evidence)

	assert.False(t, rule.Evaluate(found("Loaded some available professions"), r).Passed)
}

func TestNot(t *testing.T) {
	r := rule.Not(rule.ContainsFold("refund"))
	assert.True(t, rule.Evaluate(found("emeralds will be lost"), r).Passed)
	assert.False(t, rule.Evaluate(found("we Refund emeralds"), r).Passed)
}

func TestAll_EmeraldLossCompound(t *testing.T) {
	r := rule.All(rule.Contains("emeralds will be lost"), rule.Not(rule.ContainsFold("refund")))

	ev := rule.Evaluate(found(`sendMessage("Your emeralds will be lost");`), r)
	assert.True(t, ev.Passed)
	assert.Equal(t, "emeralds will be lost", ev.Evidence)

	assert.False(t, rule.Evaluate(found(`"emeralds will be lost" // no Refund`), r).Passed)
	assert.False(t, rule.Evaluate(found(`nothing`), r).Passed)
}

func TestAny_FirstMatchIsEvidence(t *testing.T) {
	r := rule.Any(rule.Contains("guard data cleaned up"), rule.Contains("removeGuardData"))

	ev := rule.Evaluate(found("manager.removeGuardData(id);"), r)
	assert.True(t, ev.Passed)
	assert.Equal(t, "removeGuardData", ev.Evidence)
	assert.False(t, rule.Evaluate(found("keep everything"), r).Passed)
}

func TestString(t *testing.T) {
	r := rule.All(rule.Contains("a"), rule.Not(rule.ContainsFold("b")), rule.Any(rule.Pattern(`c\d`)))
	assert.Equal(t, `(contains "a" and not contains "b" (any case) and (matches /c\d/))`, r.String())
}

func TestContainsFold_EvidenceProperties(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("evidence is the matched text in its original case", prop.ForAll(
		func(prefix, needle, suffix string) bool {
			ev := rule.Evaluate(found(prefix+strings.ToUpper(needle)+suffix), rule.ContainsFold(needle))
			return ev.Passed && utf8.ValidString(ev.Evidence) &&
				strings.ToLower(ev.Evidence) == strings.ToLower(needle)
		},
		gen.UnicodeString(unicode.Latin),
		gen.AlphaString().SuchThat(func(s string) bool { return s != "" }),
		gen.UnicodeString(unicode.Latin),
	))

	properties.TestingRun(t)
}

func TestRules_PresenceProperties(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("text containing the fragment passes", prop.ForAll(
		func(prefix, needle, suffix string) bool {
			return rule.Evaluate(found(prefix+needle+suffix), rule.Contains(needle)).Passed
		},
		gen.AlphaString(), gen.AlphaString().SuchThat(func(s string) bool { return s != "" }), gen.AlphaString(),
	))

	properties.Property("text with the fragment removed fails", prop.ForAll(
		func(text, needle string) bool {
			stripped := strings.ReplaceAll(text, needle, "")
			if strings.Contains(stripped, needle) {
				return true
			}
			return !rule.Evaluate(found(stripped), rule.Contains(needle)).Passed
		},
		gen.AlphaString(), gen.AlphaString().SuchThat(func(s string) bool { return s != "" }),
	))

	properties.Property("not inverts presence", prop.ForAll(
		func(text, needle string) bool {
			pos := rule.Evaluate(found(text), rule.Contains(needle)).Passed
			neg := rule.Evaluate(found(text), rule.Not(rule.Contains(needle))).Passed
			return pos != neg
		},
		gen.AlphaString(), gen.AlphaString(),
	))

	properties.TestingRun(t)
}
