package patcher

import (
	"fmt"
	"regexp"

	"github.com/mujaffa/commandcenter/pkg/render"
)

// Values are the freshly computed figures a run writes into the dashboard.
type Values struct {
	ReturnPct       float64
	StartingCapital float64
	Capital         float64
	WinRate         float64
	SitesUp         int
	SitesTotal      int
	Stamp           string

	// Fallback marks figures taken from the fallback snapshot.
	Fallback bool

	// Trades is the rendered trade list; Section is the whole card inserted
	// when the document has no trade list yet.
	Trades  string
	Section string
}

// Rule is one find-and-replace step. Anchor locates the text to replace and
// Render produces the replacement, which is written literally. Selector is a
// CSS selector for the element the rule maintains; it is only used to read
// back what the dashboard currently shows.
type Rule struct {
	Name     string
	Anchor   *regexp.Regexp
	Selector string
	Render   func(Values) string
}

// Literal builds a rule matching exactly the given text.
func Literal(name, anchor, selector string, render func(Values) string) Rule {
	return Rule{
		Name:     name,
		Anchor:   regexp.MustCompile(regexp.QuoteMeta(anchor)),
		Selector: selector,
		Render:   render,
	}
}

// Pattern builds a rule matching a regular expression.
func Pattern(name, expr, selector string, render func(Values) string) Rule {
	return Rule{
		Name:     name,
		Anchor:   regexp.MustCompile(expr),
		Selector: selector,
		Render:   render,
	}
}

// Rule names.
const (
	RuleReturn     = "return"
	RuleCapital    = "capital"
	RuleWinRate    = "win_rate"
	RuleSites      = "sites"
	RuleLastUpdate = "last_update"
)

// DefaultRules are the dashboard's anchors. The first four match the exact
// text the dashboard was authored with, so they only ever fire once per
// document: after a run has rewritten a value, its anchor no longer matches
// and later runs leave that value unchanged. The last-update stamp is matched
// by element id and is rewritten on every run.
func DefaultRules() []Rule {
	return []Rule{
		Literal(RuleReturn,
			`<div class="text-2xl font-bold text-green-400">+90.2%</div>`,
			"div.text-2xl.font-bold.text-green-400",
			func(v Values) string {
				return fmt.Sprintf(`<div class="text-2xl font-bold text-green-400">%+.1f%%</div>`, v.ReturnPct)
			}),
		Literal(RuleCapital,
			`<div class="text-sm text-gray-400">$10,000 → $19,019</div>`,
			`div.text-sm.text-gray-400:contains("→")`,
			func(v Values) string {
				return fmt.Sprintf(`<div class="text-sm text-gray-400">$%s → $%s</div>`,
					render.WholeMoney(v.StartingCapital), render.Money(v.Capital))
			}),
		Literal(RuleWinRate,
			`<div class="text-xs text-gray-500 mt-1">71% win rate | Paper trading</div>`,
			`div.text-xs.text-gray-500.mt-1:contains("win rate")`,
			func(v Values) string {
				return fmt.Sprintf(`<div class="text-xs text-gray-500 mt-1">%s%% win rate | Paper trading</div>`,
					render.WinRate(v.WinRate, v.Fallback))
			}),
		Literal(RuleSites,
			`<div class="text-2xl font-bold">3/3</div>`,
			"div.text-2xl.font-bold:not(.text-green-400)",
			func(v Values) string {
				return fmt.Sprintf(`<div class="text-2xl font-bold">%d/%d</div>`, v.SitesUp, v.SitesTotal)
			}),
		Pattern(RuleLastUpdate,
			`<span id="last-update">.*?</span>`,
			"#last-update",
			func(v Values) string {
				return fmt.Sprintf(`<span id="last-update">%s</span>`, v.Stamp)
			}),
	}
}
