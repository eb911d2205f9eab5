package deck

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
)

// ExportDeckText renders a deck list as "# name", "1x<leader>", then one
// "<count>x<card id>" line per card, sorted by id.
func ExportDeckText(d Deck) string {
	lines := []string{}
	if d.Name != "" {
		lines = append(lines, "# "+d.Name)
	}
	if d.Leader != "" {
		lines = append(lines, "1x"+d.Leader)
	}
	for _, e := range d.Composition() {
		if e.Count == 0 {
			continue
		}
		lines = append(lines, strconv.Itoa(e.Count)+"x"+e.CardID)
	}
	return strings.Join(lines, "\n")
}

// ParseDeckText reads text written by ExportDeckText. When hasLeader is set
// the first card line must be a single copy and becomes the leader. The
// returned composition keeps the order cards first appear in the text.
func ParseDeckText(text string, hasLeader bool) (Deck, Composition, error) {
	var (
		name   string
		leader string
		comp   Composition
		pos    = map[string]int{}
	)
	sc := bufio.NewScanner(strings.NewReader(text))
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "", strings.HasPrefix(line, "//"):
			continue
		case strings.HasPrefix(line, "#"):
			if name == "" {
				name = strings.TrimSpace(strings.TrimPrefix(line, "#"))
			}
			continue
		}

		count, id, err := parseLine(line)
		if err != nil {
			return Deck{}, nil, fmt.Errorf("%w: line %d: %v", ErrInvalidComposition, lineNo, err)
		}
		if hasLeader && leader == "" {
			if count != 1 {
				return Deck{}, nil, fmt.Errorf("%w: line %d: leader must be a single copy, got %d", ErrInvalidComposition, lineNo, count)
			}
			leader = id
			continue
		}
		if i, ok := pos[id]; ok {
			if count > MaxDeckSize-comp[i].Count {
				return Deck{}, nil, fmt.Errorf("%w: line %d: deck holds more than %d cards", ErrInvalidComposition, lineNo, MaxDeckSize)
			}
			comp[i].Count += count
			continue
		}
		pos[id] = len(comp)
		comp = append(comp, Entry{CardID: id, Count: count})
	}
	if err := sc.Err(); err != nil {
		return Deck{}, nil, err
	}
	if hasLeader && leader == "" {
		return Deck{}, nil, fmt.Errorf("%w: no leader line", ErrInvalidComposition)
	}
	if err := comp.Validate(); err != nil {
		return Deck{}, nil, err
	}
	return FromComposition(name, leader, comp), comp, nil
}

func parseLine(line string) (int, string, error) {
	i := strings.IndexAny(line, "xX")
	if i <= 0 {
		return 0, "", fmt.Errorf("expected <count>x<card id>, got %q", line)
	}
	count, err := strconv.Atoi(strings.TrimSpace(line[:i]))
	if err != nil {
		return 0, "", fmt.Errorf("bad count in %q", line)
	}
	if count < 0 {
		return 0, "", fmt.Errorf("negative count in %q", line)
	}
	if count > MaxDeckSize {
		return 0, "", fmt.Errorf("count above %d in %q", MaxDeckSize, line)
	}
	id := strings.TrimSpace(line[i+1:])
	if id == "" {
		return 0, "", fmt.Errorf("missing card id in %q", line)
	}
	return count, id, nil
}
