package kitcompanion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBank() []QuizQuestion {
	return []QuizQuestion{
		{
			Question:      "Which sender domain is a lookalike?",
			Category:      CategoryEmail,
			Options:       []string{"paypal.com", "paypa1-verify.net", "costco.com"},
			CorrectAnswer: 1,
			Explanation:   "The digit 1 replaces the letter l.",
		},
		{
			Question:      "Does the IRS send refund texts?",
			Category:      CategoryText,
			Options:       []string{"Yes", "No"},
			CorrectAnswer: 1,
			Explanation:   "The IRS contacts people by mail.",
		},
		{
			Question:      "Safest marketplace payment for local goods?",
			Category:      CategoryMarketplace,
			Options:       []string{"Gift cards", "Wire transfer", "Cash at pickup"},
			CorrectAnswer: 2,
			Explanation:   "Inspect first, pay at handover.",
		},
		{
			Question:      "Which address is legitimate mail most likely from?",
			Category:      CategoryEmail,
			Options:       []string{"noreply@costco.com", "geeksquad-renewal@outlook.com"},
			CorrectAnswer: 0,
			Explanation:   "Companies mail from their own domain.",
		},
	}
}

func TestQuiz_ScoreMatchesCorrectAnswers(t *testing.T) {
	q := NewQuiz(testBank())
	q.Start()
	require.Equal(t, PhaseInProgress, q.Phase())

	// Answer all four questions with a mix of right and wrong choices;
	// after every answer, score must equal the count of correct records.
	choices := []int{1, 0, 2, 1} // correct, wrong, correct, wrong
	for _, choice := range choices {
		q.Answer(choice)
		correct := 0
		for _, record := range q.Answers() {
			if record.Correct {
				correct++
			}
		}
		assert.Equal(t, correct, q.Score())
		q.Advance()
	}

	assert.Equal(t, PhaseCompleted, q.Phase())
	assert.Equal(t, 2, q.Score())
	assert.Equal(t, 50, q.Percentage())
	assert.False(t, q.Passed())
}

func TestQuiz_AnswerIsIdempotent(t *testing.T) {
	q := NewQuiz(testBank())
	q.Start()

	q.Answer(1)
	require.Equal(t, PhaseFeedback, q.Phase())
	require.Equal(t, 1, q.Score())
	require.Len(t, q.Answers(), 1)

	// A second submission for the same question changes nothing.
	q.Answer(1)
	assert.Equal(t, 1, q.Score())
	assert.Len(t, q.Answers(), 1)

	q.Answer(0)
	assert.Equal(t, 1, q.Score())
	assert.Len(t, q.Answers(), 1)
}

func TestQuiz_AnswerOutOfRangeIsNoOp(t *testing.T) {
	q := NewQuiz(testBank())
	q.Start()

	q.Answer(-1)
	assert.Equal(t, PhaseInProgress, q.Phase())
	q.Answer(99)
	assert.Equal(t, PhaseInProgress, q.Phase())
	assert.Empty(t, q.Answers())
}

func TestQuiz_CategoryFilterRestrictsActiveSet(t *testing.T) {
	q := NewQuiz(testBank())
	q.SelectCategory("email")
	require.Equal(t, 2, q.AvailableCount())

	q.Start()
	for q.Phase() == PhaseInProgress {
		question, ok := q.CurrentQuestion()
		require.True(t, ok)
		assert.Equal(t, CategoryEmail, question.Category)
		assert.Less(t, q.Current(), q.AvailableCount())
		q.Answer(0)
		q.Advance()
	}
	assert.Equal(t, PhaseCompleted, q.Phase())
}

func TestQuiz_SelectCategoryOnlyBeforeStart(t *testing.T) {
	q := NewQuiz(testBank())
	q.Start()
	q.SelectCategory("email")
	assert.Equal(t, FilterAll, q.Filter())
	assert.Equal(t, 4, q.AvailableCount())
}

func TestQuiz_SelectUnknownCategoryIsNoOp(t *testing.T) {
	q := NewQuiz(testBank())
	q.SelectCategory("voicemail")
	assert.Equal(t, FilterAll, q.Filter())
}

func TestQuiz_StartWithEmptySetIsNoOp(t *testing.T) {
	q := NewQuiz(nil)
	q.Start()
	assert.Equal(t, PhaseNotStarted, q.Phase())
	assert.Empty(t, q.AttemptID())
}

func TestQuiz_ThreeQuestionScenario(t *testing.T) {
	bank := testBank()[:3]
	q := NewQuiz(bank)
	q.Start()

	// correct, incorrect, correct
	q.Answer(1)
	q.Advance()
	q.Answer(0)
	q.Advance()
	q.Answer(2)
	q.Advance()

	require.Equal(t, PhaseCompleted, q.Phase())
	assert.Equal(t, 2, q.Score())
	assert.Equal(t, 67, q.Percentage())
	assert.False(t, q.Passed())

	// Review the incorrect answer: the submitted and correct options
	// must both be identifiable.
	q.Review(1)
	question, record, ok := q.ReviewEntry()
	require.True(t, ok)
	assert.Equal(t, 0, record.Selected)
	assert.False(t, record.Correct)
	assert.Equal(t, 1, question.CorrectAnswer)
}

func TestQuiz_PassThresholdIsInclusive(t *testing.T) {
	// 7 of 10 rounds to exactly 70 and passes.
	bank := make([]QuizQuestion, 10)
	for i := range bank {
		bank[i] = QuizQuestion{
			Question:      "q",
			Category:      CategoryEmail,
			Options:       []string{"right", "wrong"},
			CorrectAnswer: 0,
			Explanation:   "e",
		}
	}
	q := NewQuiz(bank)
	q.Start()
	for i := 0; i < 10; i++ {
		if i < 7 {
			q.Answer(0)
		} else {
			q.Answer(1)
		}
		q.Advance()
	}
	assert.Equal(t, 70, q.Percentage())
	assert.True(t, q.Passed())

	// 69% must not pass: 9 of 13 rounds to 69.
	bank13 := make([]QuizQuestion, 13)
	for i := range bank13 {
		bank13[i] = bank[0]
	}
	q = NewQuiz(bank13)
	q.Start()
	for i := 0; i < 13; i++ {
		if i < 9 {
			q.Answer(0)
		} else {
			q.Answer(1)
		}
		q.Advance()
	}
	assert.Equal(t, 69, q.Percentage())
	assert.False(t, q.Passed())
}

func TestQuiz_ReviewNavigationClampsAtBounds(t *testing.T) {
	q := NewQuiz(testBank()[:3])
	q.Start()
	for i := 0; i < 3; i++ {
		q.Answer(0)
		q.Advance()
	}
	require.Equal(t, PhaseCompleted, q.Phase())

	q.Review(0)
	q.ReviewPrev()
	assert.Equal(t, 0, q.ReviewIndex())

	q.ReviewNext()
	q.ReviewNext()
	assert.Equal(t, 2, q.ReviewIndex())
	q.ReviewNext()
	assert.Equal(t, 2, q.ReviewIndex())

	q.BackToResults()
	assert.Equal(t, PhaseCompleted, q.Phase())
}

func TestQuiz_ReviewOutOfBoundsIsNoOp(t *testing.T) {
	q := NewQuiz(testBank()[:2])
	q.Start()
	q.Answer(0)
	q.Advance()
	q.Answer(0)
	q.Advance()
	require.Equal(t, PhaseCompleted, q.Phase())

	q.Review(5)
	assert.Equal(t, PhaseCompleted, q.Phase())
	q.Review(-1)
	assert.Equal(t, PhaseCompleted, q.Phase())
}

func TestQuiz_AdvanceRequiresFeedback(t *testing.T) {
	q := NewQuiz(testBank())
	q.Start()
	q.Advance() // no answer yet
	assert.Equal(t, 0, q.Current())
	assert.Equal(t, PhaseInProgress, q.Phase())
}

func TestQuiz_ResetAndAbandonable(t *testing.T) {
	q := NewQuiz(testBank())
	assert.False(t, q.Abandonable())

	q.Start()
	assert.True(t, q.Abandonable())
	q.Answer(0)
	assert.True(t, q.Abandonable())

	q.Reset()
	assert.Equal(t, PhaseNotStarted, q.Phase())
	assert.False(t, q.Abandonable())
	assert.Equal(t, 0, q.Score())
	assert.Empty(t, q.Answers())

	// A completed attempt is no longer abandonable.
	q.Start()
	for q.Phase() == PhaseInProgress {
		q.Answer(0)
		q.Advance()
	}
	assert.False(t, q.Abandonable())
}

func TestQuiz_ProgressRoundTrip(t *testing.T) {
	bank := testBank()
	q := NewQuiz(bank)
	q.SelectCategory("email")
	q.Start()
	q.Answer(1)

	resumed := ResumeQuiz(bank, q.Progress())
	assert.Equal(t, PhaseFeedback, resumed.Phase())
	assert.Equal(t, q.Score(), resumed.Score())
	assert.Equal(t, q.AttemptID(), resumed.AttemptID())
	assert.Equal(t, "email", resumed.Filter())
	assert.Equal(t, 2, resumed.AvailableCount())

	resumed.Advance()
	assert.Equal(t, 1, resumed.Current())
}

func TestQuiz_ResumeStaleProgressDegradesToFresh(t *testing.T) {
	q := ResumeQuiz(testBank()[:1], Progress{
		Phase:   PhaseInProgress,
		Current: 5,
		Score:   3,
	})
	assert.Equal(t, PhaseNotStarted, q.Phase())
	assert.Equal(t, 0, q.Score())
}

func TestQuiz_ResumeAfterBankGrowthDegradesToFresh(t *testing.T) {
	bank := testBank()

	// Complete an attempt against a 2-question bank, then resume the
	// snapshot after the feed has grown to 4 questions.
	q := NewQuiz(bank[:2])
	q.Start()
	for i := 0; i < 2; i++ {
		q.Answer(0)
		q.Advance()
	}
	require.Equal(t, PhaseCompleted, q.Phase())

	resumed := ResumeQuiz(bank, q.Progress())
	assert.Equal(t, PhaseNotStarted, resumed.Phase())

	// The stale review indexes must not reach records that never existed.
	resumed.Review(3)
	_, _, ok := resumed.ReviewEntry()
	assert.False(t, ok)
}

func TestQuiz_ResumeRejectsInconsistentAnswers(t *testing.T) {
	bank := testBank()

	// Feedback phase claims an answer for the current question that the
	// snapshot does not carry.
	q := ResumeQuiz(bank, Progress{Phase: PhaseFeedback, Current: 0})
	assert.Equal(t, PhaseNotStarted, q.Phase())

	// In-progress snapshot with more answers than questions presented.
	q = ResumeQuiz(bank, Progress{
		Phase:   PhaseInProgress,
		Current: 0,
		Answers: []AttemptRecord{{QuestionIndex: 0, Selected: 0}},
	})
	assert.Equal(t, PhaseNotStarted, q.Phase())

	// Unknown phase strings degrade rather than resume.
	q = ResumeQuiz(bank, Progress{Phase: "paused", Current: 0})
	assert.Equal(t, PhaseNotStarted, q.Phase())
}

func TestQuiz_EmptyProgressIsNotStarted(t *testing.T) {
	q := ResumeQuiz(testBank(), Progress{})
	assert.Equal(t, PhaseNotStarted, q.Phase())
	assert.Equal(t, FilterAll, q.Filter())
	assert.Equal(t, 4, q.AvailableCount())
}

func TestQuiz_CountByCategory(t *testing.T) {
	q := NewQuiz(testBank())
	assert.Equal(t, 2, q.CountByCategory(CategoryEmail))
	assert.Equal(t, 1, q.CountByCategory(CategoryText))
	assert.Equal(t, 0, q.CountByCategory(CategoryPopup))
}
