package domain

import (
	"math"
	"time"
)

// Category is the report section a result is grouped under. It is assigned
// by the orchestrator when the result is built.
type Category string

const (
	CategoryCodeStructure Category = "code_structure"
	CategoryTranslation   Category = "translation"
	CategoryLogicFlows    Category = "logic_flows"
	CategoryIntegration   Category = "integration"
)

// Categories lists every category in report order.
var Categories = []Category{
	CategoryCodeStructure,
	CategoryTranslation,
	CategoryLogicFlows,
	CategoryIntegration,
}

// Label returns the section heading used in rendered reports.
func (c Category) Label() string {
	switch c {
	case CategoryCodeStructure:
		return "Code Structure"
	case CategoryTranslation:
		return "Translation System"
	case CategoryLogicFlows:
		return "Logic Flows"
	case CategoryIntegration:
		return "Integration"
	default:
		return string(c)
	}
}

// Result is the outcome of one check execution.
type Result struct {
	TestName      string   `json:"test_name"`
	Category      Category `json:"category"`
	Passed        bool     `json:"passed"`
	Informational bool     `json:"informational,omitempty"`
	Message       string   `json:"message"`
	Logs          []string `json:"logs,omitempty"`
}

// Failed reports whether the result counts against the run.
// Informational results never fail.
func (r Result) Failed() bool { return !r.Passed && !r.Informational }

// Summary holds the counts derived from a result set.
type Summary struct {
	Total         int     `json:"total"`
	Passed        int     `json:"passed"`
	Failed        int     `json:"failed"`
	Informational int     `json:"informational"`
	SuccessRate   float64 `json:"success_rate"`
}

// Summarize counts results. Passed includes informational results so that
// Passed+Failed always equals Total.
func Summarize(results []Result) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		switch {
		case r.Failed():
			s.Failed++
		case r.Informational:
			s.Informational++
		}
	}
	s.Passed = s.Total - s.Failed
	if s.Total > 0 {
		s.SuccessRate = math.Round(float64(s.Passed)/float64(s.Total)*1000) / 10
	}
	return s
}

// ExitCode is 0 when nothing failed and 1 otherwise.
func (s Summary) ExitCode() int {
	if s.Failed > 0 {
		return 1
	}
	return 0
}

// CategoryGroup is one non-empty report section.
type CategoryGroup struct {
	Category Category `json:"category"`
	Results  []Result `json:"results"`
}

// Audit is one complete run over a project.
type Audit struct {
	ProjectPath string    `json:"project_path"`
	CommitHash  string    `json:"commit_hash,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
	ReportPath  string    `json:"report_path"`
	Results     []Result  `json:"results"`
}

func (a *Audit) Summary() Summary { return Summarize(a.Results) }

// Groups returns the non-empty categories in report order, preserving the
// order results were produced in within each category.
func (a *Audit) Groups() []CategoryGroup {
	var groups []CategoryGroup
	for _, c := range Categories {
		var rs []Result
		for _, r := range a.Results {
			if r.Category == c {
				rs = append(rs, r)
			}
		}
		if len(rs) > 0 {
			groups = append(groups, CategoryGroup{Category: c, Results: rs})
		}
	}
	return groups
}

// MeetsThreshold reports whether found/total reaches percent, inclusive.
// Integer arithmetic keeps the boundary exact.
func MeetsThreshold(found, total, percent int) bool {
	return found*100 >= percent*total
}

// RunEntry is one line of run history.
type RunEntry struct {
	Timestamp   string  `json:"timestamp"`
	CommitHash  string  `json:"commit_hash,omitempty"`
	Total       int     `json:"total"`
	Passed      int     `json:"passed"`
	Failed      int     `json:"failed"`
	SuccessRate float64 `json:"success_rate"`
}

// Source is the text of one evidence artifact. Found is false when the
// artifact is absent or unreadable.
type Source struct {
	Path  string
	Text  string
	Found bool
}

// MissingSource returns the absent Source for path.
func MissingSource(path string) Source { return Source{Path: path} }
