package patcher

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mujaffa/commandcenter/pkg/errors"
	"github.com/mujaffa/commandcenter/pkg/render"
)

// Reading is what the dashboard currently displays, located by element
// id and class rather than by exact text.
type Reading struct {
	// Values maps a rule name to the text of the element it maintains,
	// or "" when no such element exists.
	Values map[string]string `json:"values" yaml:"values"`

	HasTradeList bool   `json:"has_trade_list" yaml:"has_trade_list"`
	TradeRows    int    `json:"trade_rows" yaml:"trade_rows"`
	Totals       string `json:"totals" yaml:"totals"`
}

// Inspect parses doc and reads back the value each rule's selector points at,
// plus the state of the trade list.
func Inspect(doc string, rules []Rule) (*Reading, error) {
	if strings.TrimSpace(doc) == "" {
		return nil, errors.NewParseError("html", "", "empty document", nil)
	}
	d, err := goquery.NewDocumentFromReader(strings.NewReader(doc))
	if err != nil {
		return nil, errors.WrapParse("html", "", err)
	}

	reading := &Reading{Values: make(map[string]string, len(rules))}
	for _, rule := range rules {
		if rule.Selector == "" {
			continue
		}
		reading.Values[rule.Name] = strings.TrimSpace(d.Find(rule.Selector).First().Text())
	}

	list := d.Find("#" + render.ContainerID)
	if list.Length() > 0 {
		reading.HasTradeList = true
		reading.TradeRows = list.Children().Filter("div.flex").Length()
		reading.Totals = strings.TrimSpace(list.NextFiltered("div.mt-3").Text())
	}
	return reading, nil
}

// Inspect reads back the values maintained by the patcher's rules.
func (p *Patcher) Inspect(doc string) (*Reading, error) {
	return Inspect(doc, p.rules)
}
