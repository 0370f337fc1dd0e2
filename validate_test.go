package kitcompanion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckQuestion(t *testing.T) {
	good := QuizQuestion{
		Question:      "Does the IRS text refunds?",
		Category:      CategoryText,
		Options:       []string{"Yes", "No"},
		CorrectAnswer: 1,
		Explanation:   "Mail only.",
	}
	assert.Empty(t, CheckQuestion(good))

	bad := QuizQuestion{
		Question:      "  ",
		Category:      "voicemail",
		Options:       []string{"only one"},
		CorrectAnswer: 3,
	}
	problems := CheckQuestion(bad)
	assert.Contains(t, problems, "question text is empty")
	assert.Contains(t, problems, `unknown category "voicemail"`)
	assert.Contains(t, problems, "needs at least 2 options, has 1")
	assert.Contains(t, problems, "correctAnswer 3 out of range for 1 options")
	assert.Contains(t, problems, "explanation is empty")
}

func TestCheckExample(t *testing.T) {
	good := ScamExample{
		ID:          "email-1",
		Type:        CategoryEmail,
		Title:       "Phish",
		Body:        "Click here.",
		IsScam:      true,
		Difficulty:  DifficultyBeginner,
		RedFlags:    []string{"Urgency"},
		Explanation: "Classic phish.",
	}
	assert.Empty(t, CheckExample(good))

	// A legitimate example may have no red flags.
	good.IsScam = false
	good.RedFlags = nil
	assert.Empty(t, CheckExample(good))

	bad := ScamExample{
		Type:       "fax",
		IsScam:     true,
		Difficulty: "expert",
	}
	problems := CheckExample(bad)
	assert.Contains(t, problems, "id is empty")
	assert.Contains(t, problems, `unknown type "fax"`)
	assert.Contains(t, problems, "title is empty")
	assert.Contains(t, problems, "body is empty")
	assert.Contains(t, problems, `unknown difficulty "expert"`)
	assert.Contains(t, problems, "scam example has no red flags")
}

func TestFindDuplicateQuestions(t *testing.T) {
	bank := []QuizQuestion{
		{Question: "Does the IRS send refund texts?"},
		{Question: "What is the safest payment method?"},
		{Question: "does the IRS send refund texts"},
		{Question: "Does  the   IRS send refund texts???"},
	}
	pairs := FindDuplicateQuestions(bank)
	require.Len(t, pairs, 2)
	assert.Equal(t, [2]int{0, 2}, pairs[0])
	assert.Equal(t, [2]int{0, 3}, pairs[1])

	assert.Empty(t, FindDuplicateQuestions(bank[:2]))
	assert.Empty(t, FindDuplicateQuestions(nil))
}

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "does the irs text", normalizeText("  Does, the IRS... text?! "))
	assert.Equal(t, "a b c", normalizeText("A\tB\n\nC"))
	assert.Equal(t, "", normalizeText("?!..."))
}
