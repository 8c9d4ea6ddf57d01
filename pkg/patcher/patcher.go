// Package patcher rewrites the dashboard document in place by substituting
// freshly computed values at known anchors.
//
// The document is treated as text with a handful of known fragments, not as
// parsed HTML. An anchor that does not match leaves the document unchanged at
// that spot; Apply reports which rules missed but never fails.
package patcher

import (
	"regexp"
	"strings"

	"github.com/mujaffa/commandcenter/pkg/render"
)

// TradesOutcome describes what the trade list step did.
type TradesOutcome int

const (
	// TradesReplaced means the existing list content was replaced.
	TradesReplaced TradesOutcome = iota
	// TradesInserted means a new section was spliced in before the marker.
	TradesInserted
	// TradesMarkerMissing means there was no list and no marker to insert before.
	TradesMarkerMissing
	// TradesStale means a list exists but its layout no longer matches, so it was left as is.
	TradesStale
)

// String implements fmt.Stringer.
func (o TradesOutcome) String() string {
	switch o {
	case TradesReplaced:
		return "replaced"
	case TradesInserted:
		return "inserted"
	case TradesMarkerMissing:
		return "marker_missing"
	case TradesStale:
		return "stale"
	default:
		return "unknown"
	}
}

// MarshalText renders the outcome by name in JSON and YAML output.
func (o TradesOutcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// InsertMarker is the text the trade section is inserted in front of: the
// close of the trading performance card followed by the competitors section.
const InsertMarker = "</div>\n        </div>\n\n        <!-- Competitors -->"

var tradeList = regexp.MustCompile(`(?s)` + regexp.QuoteMeta(render.ContainerOpen) + `.*?</div>\n            ` + regexp.QuoteMeta(render.FooterOpen))

// Report records which substitutions took effect.
type Report struct {
	Applied []string      `json:"applied" yaml:"applied"`
	Missed  []string      `json:"missed" yaml:"missed"`
	Trades  TradesOutcome `json:"trades" yaml:"trades"`
}

// OK reports whether every anchor matched and the trade list was written.
func (r Report) OK() bool {
	return len(r.Missed) == 0 && (r.Trades == TradesReplaced || r.Trades == TradesInserted)
}

// Patcher applies a fixed sequence of rules followed by the trade list step.
type Patcher struct {
	rules []Rule
}

// New creates a Patcher. Without rules it uses DefaultRules.
func New(rules ...Rule) *Patcher {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Patcher{rules: rules}
}

// Rules returns the rules in application order.
func (p *Patcher) Rules() []Rule {
	return p.rules
}

// Apply runs every rule against doc and then writes the trade list.
func (p *Patcher) Apply(doc string, v Values) (string, Report) {
	var report Report

	for _, rule := range p.rules {
		if !rule.Anchor.MatchString(doc) {
			report.Missed = append(report.Missed, rule.Name)
			continue
		}
		doc = rule.Anchor.ReplaceAllLiteralString(doc, rule.Render(v))
		report.Applied = append(report.Applied, rule.Name)
	}

	doc, report.Trades = applyTrades(doc, v)
	return doc, report
}

// applyTrades replaces the content of an existing trade list, or inserts the
// whole section when the document has none yet.
func applyTrades(doc string, v Values) (string, TradesOutcome) {
	if !strings.Contains(doc, `id="`+render.ContainerID+`"`) {
		if !strings.Contains(doc, InsertMarker) {
			return doc, TradesMarkerMissing
		}
		insert := "</div>\n        </div>\n\n        " + v.Section + "\n\n        <!-- Competitors -->"
		return strings.ReplaceAll(doc, InsertMarker, insert), TradesInserted
	}

	if !tradeList.MatchString(doc) {
		return doc, TradesStale
	}
	list := render.ContainerOpen + "\n                " + v.Trades + "\n            </div>\n            " + render.FooterOpen
	return tradeList.ReplaceAllLiteralString(doc, list), TradesReplaced
}
