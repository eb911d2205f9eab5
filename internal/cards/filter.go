package cards

import (
	"slices"
	"strings"
)

type FilterOptions struct {
	Colors       []string `json:"colors"`
	Types        []string `json:"types"`
	Costs        []int    `json:"costs"`
	Counters     []string `json:"counters"`
	Attributes   []string `json:"attributes"`
	Blocks       []string `json:"blocks"`
	Features     []string `json:"features"`
	FreeWords    string   `json:"free_words"`
	SeriesIDs    []string `json:"series_ids"`
	LeaderColors []string `json:"leader_colors"`
	ParallelMode string   `json:"parallel_mode"` // "normal", "parallel", "both"
}

func containsAny(hay []string, needles []string) bool {
	for _, n := range needles {
		for _, h := range hay {
			if strings.Contains(h, n) {
				return true
			}
		}
	}
	return false
}

// Filter returns the cards matching every option that is set.
func Filter(cs []Card, opt FilterOptions) []Card {
	out := []Card{}
	for _, c := range cs {
		if opt.match(c) {
			out = append(out, c)
		}
	}
	return out
}

func (opt FilterOptions) match(c Card) bool {
	switch opt.ParallelMode {
	case "normal":
		if c.IsParallel {
			return false
		}
	case "parallel":
		if !c.IsParallel {
			return false
		}
	}
	// leader colors: deck-building context, leaders themselves are excluded
	if len(opt.LeaderColors) > 0 {
		if c.Type == "LEADER" || !containsAny([]string{c.Color}, opt.LeaderColors) {
			return false
		}
	}
	if len(opt.Colors) > 0 && !containsAny([]string{c.Color}, opt.Colors) {
		return false
	}
	if len(opt.Types) > 0 && !slices.Contains(opt.Types, c.Type) {
		return false
	}
	if len(opt.Costs) > 0 && !slices.Contains(opt.Costs, c.Cost) {
		return false
	}
	if len(opt.Counters) > 0 && !slices.Contains(opt.Counters, c.Counter) {
		return false
	}
	if len(opt.Blocks) > 0 && !slices.Contains(opt.Blocks, c.BlockIcon) {
		return false
	}
	if len(opt.Attributes) > 0 && !containsAny(c.Attributes, opt.Attributes) {
		return false
	}
	if len(opt.Features) > 0 && !containsAny(c.Features, opt.Features) {
		return false
	}
	if len(opt.SeriesIDs) > 0 && !slices.Contains(opt.SeriesIDs, c.SeriesID) {
		return false
	}
	if opt.FreeWords != "" {
		hay := strings.ToLower(strings.Join([]string{c.Name, c.Text, strings.Join(c.Features, " "), c.Trigger}, "\n"))
		for _, k := range strings.Fields(opt.FreeWords) {
			if !strings.Contains(hay, strings.ToLower(k)) {
				return false
			}
		}
	}
	return true
}
