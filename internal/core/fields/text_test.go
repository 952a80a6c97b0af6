package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFold(t *testing.T) {
	assert.Equal(t, "curacao", Fold("Curaçao"))
	assert.Equal(t, "sao tome", Fold("São Tomé"))
	assert.Equal(t, "otter.ai", Fold("Otter.AI"))
}

func TestText(t *testing.T) {
	assert.Equal(t, "hello", Text("  hello "))
	assert.Equal(t, "42", Text(42))
	assert.Equal(t, "4.5", Text(4.5))
	assert.Equal(t, "true", Text(true))
	assert.Equal(t, "", Text([]any{"x"}))
	assert.Equal(t, "", Text(nil))
}

func TestBool(t *testing.T) {
	assert.True(t, Bool(true))
	assert.True(t, Bool("Yes"))
	assert.True(t, Bool(1))
	assert.False(t, Bool("no"))
	assert.False(t, Bool(nil))
	assert.False(t, Bool(0.0))
}

func TestStrings(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, Strings("a, b;c"))
	assert.Equal(t, []string{"x", "1"}, Strings([]any{"x", 1, nil, ""}))
	assert.Equal(t, []string{"y"}, Strings([]string{" y ", ""}))
	assert.Nil(t, Strings(nil))
}

func TestParseRating(t *testing.T) {
	t.Run("accepted forms", func(t *testing.T) {
		for input, want := range map[any]float64{
			4.6:     4.6,
			4:       4,
			"4.2":   4.2,
			"3.9/5": 3.9,
			"0":     0,
		} {
			got := ParseRating(input)
			require.NotNil(t, got, "input %v", input)
			assert.InDelta(t, want, *got, 1e-9)
		}
	})

	t.Run("rejected forms", func(t *testing.T) {
		for _, input := range []any{nil, "N/A", 7.5, -1, "great", true} {
			assert.Nil(t, ParseRating(input), "input %v", input)
		}
	})
}

func TestRoundRating(t *testing.T) {
	assert.Equal(t, 4.5, RoundRating((4.6+4.4)/2))
	assert.Equal(t, 4.3, RoundRating(4.26))
}
