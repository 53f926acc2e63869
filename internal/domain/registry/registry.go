// Package registry holds the fixed checks and log patterns the auditor
// evaluates. It is data only; adding a check never touches orchestration.
package registry

import (
	"encoding/json"

	"github.com/xeenaa/implaudit/internal/domain/rule"
)

// CheckDefinition is one named rule applied to a source artifact.
type CheckDefinition struct {
	Name           string    `json:"name"`
	Rule           rule.Rule `json:"-"`
	SuccessMessage string    `json:"success_message"`
	FailureMessage string    `json:"failure_message"`
}

// MarshalJSON includes the rule's textual form.
func (c CheckDefinition) MarshalJSON() ([]byte, error) {
	type plain CheckDefinition
	return json.Marshal(struct {
		plain
		Rule string `json:"rule"`
	}{plain(c), ruleString(c.Rule)})
}

// SourceArtifact is a source file and the checks evaluated against it.
// When the file is absent, a single MissingCheck failure replaces them.
type SourceArtifact struct {
	Name           string            `json:"name"`
	Path           string            `json:"path"`
	MissingCheck   string            `json:"missing_check"`
	MissingMessage string            `json:"missing_message"`
	Checks         []CheckDefinition `json:"checks"`
}

// TranslationCheck describes the localization file check.
type TranslationCheck struct {
	Name         string   `json:"name"`
	Path         string   `json:"path"`
	Keys         []string `json:"keys"`
	MissingCheck string   `json:"missing_check"`
	FormatCheck  string   `json:"format_check"`
}

// IntegrationCheck names the results of the log evidence group.
type IntegrationCheck struct {
	Name         string `json:"name"`
	MissingCheck string `json:"missing_check"`
}

// LogPattern is one named piece of runtime log evidence.
type LogPattern struct {
	Name    string    `json:"name"`
	Concern string    `json:"concern"`
	Rule    rule.Rule `json:"-"`
}

// MarshalJSON includes the rule's textual form.
func (p LogPattern) MarshalJSON() ([]byte, error) {
	type plain LogPattern
	return json.Marshal(struct {
		plain
		Rule string `json:"rule"`
	}{plain(p), ruleString(p.Rule)})
}

func ruleString(r rule.Rule) string {
	if r == nil {
		return ""
	}
	return r.String()
}

// BehaviorFlow is an ordered list of log fragments describing one
// end-to-end scenario. Flows are documentary and are not evaluated.
type BehaviorFlow struct {
	Name      string   `json:"name"`
	Fragments []string `json:"fragments"`
}

// Registry is the full set of checks for one run. Treat it as read-only.
type Registry struct {
	CodeStructure []SourceArtifact `json:"code_structure"`
	Translation   TranslationCheck `json:"translation"`
	LogicFlows    []SourceArtifact `json:"logic_flows"`
	Integration   IntegrationCheck `json:"integration"`
	LogPatterns   []LogPattern     `json:"log_patterns"`
	Flows         []BehaviorFlow   `json:"flows"`
}

const (
	clientGUI     = "src/client/java/com/xeenaa/villagermanager/client/gui/"
	serverNetwork = "src/main/java/com/xeenaa/villagermanager/network/"
	langFile      = "src/main/resources/assets/xeenaa_villager_manager/lang/en_us.json"
)

// Default returns the registry for the Xeenaa Villager Manager project.
func Default() *Registry {
	return &Registry{
		CodeStructure: []SourceArtifact{
			{
				Name:           "ProfessionTab.java",
				Path:           clientGUI + "ProfessionTab.java",
				MissingCheck:   "profession_tab_exists",
				MissingMessage: "❌ ProfessionTab.java not found",
				Checks: []CheckDefinition{
					{
						Name:           "profession_filtering_code",
						Rule:           rule.Contains("Skip currently selected profession"),
						SuccessMessage: "✅ Current profession filtering logic found in ProfessionTab",
						FailureMessage: "❌ Current profession filtering logic missing",
					},
					{
						Name:           "window_closing_code",
						Rule:           rule.Contains("parentScreen.close()"),
						SuccessMessage: "✅ Window closing logic found in profession selection",
						FailureMessage: "❌ Window closing logic missing",
					},
				},
			},
			{
				Name:           "TabbedManagementScreen.java",
				Path:           clientGUI + "TabbedManagementScreen.java",
				MissingCheck:   "tabbed_screen_exists",
				MissingMessage: "❌ TabbedManagementScreen.java not found",
				Checks: []CheckDefinition{
					{
						Name:           "tab_refresh_code",
						Rule:           rule.All(rule.Contains("createTabButtons()"), rule.Contains("refreshTabs()")),
						SuccessMessage: "✅ Tab refresh and recreation logic found",
						FailureMessage: "❌ Tab refresh logic incomplete",
					},
				},
			},
		},
		Translation: TranslationCheck{
			Name: "guard_translations",
			Path: langFile,
			Keys: []string{
				"entity.minecraft.villager.xeenaa_villager_manager.guard",
				"entity.minecraft.villager.guard",
			},
			MissingCheck: "lang_file_exists",
			FormatCheck:  "lang_file_format",
		},
		LogicFlows: []SourceArtifact{
			{
				Name:           "ServerPacketHandler.java",
				Path:           serverNetwork + "ServerPacketHandler.java",
				MissingCheck:   "server_handler_exists",
				MissingMessage: "❌ ServerPacketHandler.java not found",
				Checks: []CheckDefinition{
					{
						Name: "emerald_loss_system",
						Rule: rule.All(
							rule.Contains("emeralds will be lost"),
							rule.Not(rule.ContainsFold("refund")),
						),
						SuccessMessage: "✅ Emerald loss system implemented (no refunds)",
						FailureMessage: "❌ Emerald loss system not properly implemented",
					},
					{
						Name: "guard_data_cleanup",
						Rule: rule.Any(
							rule.Contains("guard data cleaned up"),
							rule.Contains("removeGuardData"),
						),
						SuccessMessage: "✅ Guard data cleanup implemented",
						FailureMessage: "❌ Guard data cleanup missing",
					},
				},
			},
		},
		Integration: IntegrationCheck{
			Name:         "integration_patterns",
			MissingCheck: "test_logs_exist",
		},
		LogPatterns: defaultLogPatterns(),
		Flows: []BehaviorFlow{
			{Name: "guard_to_farmer_flow", Fragments: []string{
				"Guard profession change requested",
				"emeralds will be lost",
				"guard data cleaned up",
				"Successfully processed guard profession change",
			}},
			{Name: "farmer_to_guard_flow", Fragments: []string{
				"Guard profession selected",
				"refreshing tabs",
				"Initialized VillagerManagementScreen with 2 tabs",
				"Successfully switched to RankTab",
			}},
			{Name: "profession_list_filtering", Fragments: []string{
				"Loaded.*available professions",
				"Skip currently selected profession",
			}},
		},
	}
}

func defaultLogPatterns() []LogPattern {
	p := func(concern, name, expr string) LogPattern {
		return LogPattern{Name: name, Concern: concern, Rule: rule.Pattern(expr)}
	}
	return []LogPattern{
		p("profession", "profession_filtering", `Loaded \d+ available professions`),
		p("profession", "current_profession_excluded", `Skip currently selected profession`),

		p("guard_assignment", "guard_assignment", `Guard profession selected - refreshing tabs`),
		p("guard_assignment", "tab_refresh", `Initialized VillagerManagementScreen with 2 tabs`),
		p("guard_assignment", "rank_tab_switch", `Successfully switched to RankTab`),
		p("guard_assignment", "guard_data_creation", `Created and synced guard data`),

		p("guard_removal", "guard_emerald_warning", `Guard profession change requested.*warning about emerald loss`),
		p("guard_removal", "emerald_loss_processing", `Player .* lost \d+ emeralds as penalty`),
		p("guard_removal", "guard_data_cleanup", `guard data cleaned up`),
		p("guard_removal", "window_close_after_guard_change", `Successfully processed guard profession change`),

		p("tab_navigation", "tab_button_creation", `createTabButtons`),
		p("tab_navigation", "tab_visibility", `Initialized VillagerManagementScreen with \d+ tabs`),

		p("translation", "guard_translation", `Display: 'Guard'`),
		p("translation", "profession_registry", `=== PROFESSION REGISTRY DETAILS ===`),

		p("error_prevention", "no_duplicate_professions", `Skip blacklisted professions`),
		p("error_prevention", "server_sync", `Successfully changed villager \d+ profession`),
	}
}
