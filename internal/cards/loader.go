package cards

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/youruser/decksim/internal/deck"
)

// CSV files read from the data directory, in load order. Only the first is
// required. Later files win when a card id repeats.
var catalogFiles = []string{
	"cardlist_filtered.csv",
	"custom_cards.csv",
	"cardlist_p_only.csv",
}

// Catalog is the set of known cards, indexed by card id.
type Catalog struct {
	cards []Card
	byID  map[string]int
}

// NewCatalog indexes cs by card id.
func NewCatalog(cs []Card) *Catalog {
	c := &Catalog{byID: make(map[string]int, len(cs))}
	for _, card := range cs {
		if i, ok := c.byID[card.CardID]; ok {
			c.cards[i] = card
			continue
		}
		c.byID[card.CardID] = len(c.cards)
		c.cards = append(c.cards, card)
	}
	return c
}

// All returns every card in load order.
func (c *Catalog) All() []Card {
	return append([]Card(nil), c.cards...)
}

func (c *Catalog) Len() int { return len(c.cards) }

// Lookup finds a card by id.
func (c *Catalog) Lookup(id string) (Card, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Card{}, false
	}
	return c.cards[i], true
}

// Missing lists the ids in comp the catalog does not know, in order.
func (c *Catalog) Missing(comp deck.Composition) []string {
	var out []string
	for _, e := range comp {
		if _, ok := c.byID[e.CardID]; !ok {
			out = append(out, e.CardID)
		}
	}
	return out
}

// LoadCatalog reads the card CSVs found in dataDir.
func LoadCatalog(dataDir string) (*Catalog, error) {
	var all []Card
	var found bool
	for _, name := range catalogFiles {
		path := filepath.Join(dataDir, name)
		fp, err := os.Open(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		found = true
		cs, err := ReadCSV(fp)
		fp.Close()
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		all = append(all, cs...)
	}
	if !found {
		return nil, fmt.Errorf("no input CSVs found in %s", dataDir)
	}
	return NewCatalog(all), nil
}

// ReadCSV parses one card list. Columns are matched by their (Japanese)
// header names; unknown columns are ignored.
func ReadCSV(r io.Reader) ([]Card, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("csv has no header")
	}
	cols := map[string]int{}
	for i, h := range rows[0] {
		cols[strings.TrimPrefix(h, "\ufeff")] = i
	}
	get := func(row []string, name string) string {
		if idx, ok := cols[name]; ok && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	out := []Card{}
	for _, row := range rows[1:] {
		c := Card{
			CardID:     get(row, "カードID"),
			Name:       get(row, "カード名"),
			Color:      get(row, "色"),
			Type:       get(row, "タイプ"),
			Counter:    get(row, "カウンター"),
			Text:       get(row, "テキスト"),
			Trigger:    get(row, "トリガー"),
			BlockIcon:  get(row, "ブロックアイコン"),
			ImageURL:   get(row, "画像URL"),
			Cost:       parseCost(get(row, "コスト")),
			Features:   parseListCell(get(row, "特徴")),
			Attributes: parseListCell(get(row, "属性")),
			IsParallel: parseBool(get(row, "is_parallel")),
			SeriesID:   parseSeries(get(row, "入手情報")),
		}
		if c.CardID == "" {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func parseCost(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0 // "-" and blanks
	}
	return v
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "true", "1":
		return true
	}
	return false
}

// parseListCell splits "A/B／C" into its non-empty parts.
func parseListCell(s string) []string {
	s = strings.ReplaceAll(s, "／", "/")
	out := []string{}
	for _, p := range strings.Split(s, "/") {
		t := strings.TrimSpace(p)
		if t != "" && t != "-" {
			out = append(out, t)
		}
	}
	return out
}

// parseSeries pulls the series name out of 【...】 in the acquisition info.
func parseSeries(info string) string {
	a := strings.Index(info, "【")
	b := strings.Index(info, "】")
	switch {
	case a >= 0 && b > a+len("【"):
		return strings.TrimSpace(info[a+len("【") : b])
	case info == "" || info == "-":
		return "-"
	}
	return "その他"
}
