package deck

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompositionValidate(t *testing.T) {
	tests := []struct {
		name string
		c    Composition
		ok   bool
	}{
		{"empty", nil, true},
		{"zero counts", Composition{{"A", 0}, {"B", 0}}, true},
		{"normal", Composition{{"A", 2}, {"B", 1}}, true},
		{"negative", Composition{{"A", -1}}, false},
		{"empty id", Composition{{"", 1}}, false},
		{"duplicate", Composition{{"A", 1}, {"A", 2}}, false},
		{"at max size", Composition{{"A", MaxDeckSize - 1}, {"B", 1}}, true},
		{"one count too large", Composition{{"A", 1 << 50}}, false},
		{"total too large", Composition{{"A", MaxDeckSize}, {"B", 1}}, false},
		{"total overflows int", Composition{{"A", math.MaxInt/2 + 1}, {"B", math.MaxInt/2 + 1}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.c.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidComposition)
			}
		})
	}
}

func TestCompositionExpandKeepsOrder(t *testing.T) {
	c := Composition{{"B", 1}, {"A", 2}, {"C", 0}}
	assert.Equal(t, []string{"B", "A", "A"}, c.Expand())
	assert.Equal(t, 3, c.Total())
	assert.Equal(t, 2, c.Count("A"))
	assert.Equal(t, 0, c.Count("Z"))
}

func TestCompositionClone(t *testing.T) {
	c := Composition{{"A", 2}}
	cp := c.Clone()
	cp[0].Count = 0
	assert.Equal(t, 2, c[0].Count)
}

func TestExportDeckTextSorted(t *testing.T) {
	d := Deck{Name: "Red Zoro", Leader: "OP01-001", Cards: map[string]int{
		"OP01-025": 4,
		"OP01-013": 2,
		"ST01-012": 0,
	}}
	assert.Equal(t, "# Red Zoro\n1xOP01-001\n2xOP01-013\n4xOP01-025", ExportDeckText(d))
}

func TestParseDeckTextRoundTrip(t *testing.T) {
	text := "# Red Zoro\n1xOP01-001\n4xOP01-025\n2xOP01-013\n"
	d, comp, err := ParseDeckText(text, true)
	require.NoError(t, err)
	assert.Equal(t, "Red Zoro", d.Name)
	assert.Equal(t, "OP01-001", d.Leader)
	assert.Equal(t, Composition{{"OP01-025", 4}, {"OP01-013", 2}}, comp)
	assert.Equal(t, "# Red Zoro\n1xOP01-001\n2xOP01-013\n4xOP01-025", ExportDeckText(d))
}

func TestParseDeckTextWithoutLeader(t *testing.T) {
	text := "// blue eyes\n3xBlue-Eyes\n\n2 x Pot of Greed\n1xBlue-Eyes\n"
	d, comp, err := ParseDeckText(text, false)
	require.NoError(t, err)
	assert.Empty(t, d.Leader)
	assert.Equal(t, Composition{{"Blue-Eyes", 4}, {"Pot of Greed", 2}}, comp)
	assert.Equal(t, 4, d.Cards["Blue-Eyes"])
}

func TestParseDeckTextErrors(t *testing.T) {
	tests := map[string]struct {
		text      string
		hasLeader bool
	}{
		"no count":      {"OP01-025", false},
		"bad count":     {"fourxOP01-025", false},
		"negative":      {"-1xA", false},
		"missing id":    {"3x", false},
		"no leader":     {"# only a name", true},
		"leader copies": {"2xOP01-001", true},
		"huge count":    {"99999999999xA", false},
		"sum too large": {strconv.Itoa(MaxDeckSize) + "xA\n1xA", false},
		"total too big": {strconv.Itoa(MaxDeckSize) + "xA\n1xB", false},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, _, err := ParseDeckText(tt.text, tt.hasLeader)
			assert.ErrorIs(t, err, ErrInvalidComposition)
		})
	}
}

func TestDeckComposition(t *testing.T) {
	d := Deck{Cards: map[string]int{"b": 1, "a": 3}}
	assert.Equal(t, Composition{{"a", 3}, {"b", 1}}, d.Composition())
}
