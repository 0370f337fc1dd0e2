package kitcompanion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func browserExamples() []ScamExample {
	return []ScamExample{
		{ID: "a", Type: CategoryEmail, Title: "A", Difficulty: DifficultyBeginner},
		{ID: "b", Type: CategoryEmail, Title: "B", Difficulty: DifficultyAdvanced},
		{ID: "c", Type: CategoryEmail, Title: "C", Difficulty: DifficultyBeginner},
		{ID: "d", Type: CategoryEmail, Title: "D", Difficulty: DifficultyIntermediate},
	}
}

func TestFilterByDifficulty(t *testing.T) {
	examples := browserExamples()

	filtered := FilterByDifficulty(examples, "beginner")
	require.Len(t, filtered, 2)
	// Relative order of the source collection is preserved.
	assert.Equal(t, "a", filtered[0].ID)
	assert.Equal(t, "c", filtered[1].ID)

	assert.Len(t, FilterByDifficulty(examples, "intermediate"), 1)
	assert.Len(t, FilterByDifficulty(examples, "advanced"), 1)
}

func TestFilterByDifficulty_AllPassesThrough(t *testing.T) {
	examples := browserExamples()
	assert.Equal(t, examples, FilterByDifficulty(examples, FilterAll))
	assert.Equal(t, examples, FilterByDifficulty(examples, ""))
}

func TestFilterByDifficulty_NoMatches(t *testing.T) {
	examples := []ScamExample{
		{ID: "a", Difficulty: DifficultyBeginner},
	}
	assert.Empty(t, FilterByDifficulty(examples, "advanced"))
	assert.Empty(t, FilterByDifficulty(nil, "beginner"))
}

func TestFindExample(t *testing.T) {
	examples := browserExamples()

	example, ok := FindExample(examples, "c")
	require.True(t, ok)
	assert.Equal(t, "C", example.Title)

	_, ok = FindExample(examples, "nope")
	assert.False(t, ok)

	_, ok = FindExample(nil, "a")
	assert.False(t, ok)
}
