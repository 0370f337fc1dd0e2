package kitcompanion

import (
	"math"

	"github.com/google/uuid"
)

// Phase is the single discriminant of the quiz state machine. Feedback is
// the answered-but-not-advanced sub-state of an in-progress attempt.
type Phase string

const (
	PhaseNotStarted Phase = "not_started"
	PhaseInProgress Phase = "in_progress"
	PhaseFeedback   Phase = "feedback"
	PhaseCompleted  Phase = "completed"
	PhaseReviewing  Phase = "reviewing"
)

// PassThreshold is the inclusive pass mark: a rounded percentage of 70
// passes, 69 does not.
const PassThreshold = 70

// Quiz runs a single-pass multiple-choice attempt over an active question
// set fixed at Start. Misuse of an operation outside its valid phase is a
// no-op; there is no hostile caller in this system, the UI disables the
// corresponding controls.
type Quiz struct {
	bank     []QuizQuestion
	active   []QuizQuestion
	filter   string
	attempt  string
	phase    Phase
	current  int
	score    int
	answers  []AttemptRecord
	reviewAt int
}

// NewQuiz creates an engine over the full question bank with filtering
// disabled. The bank is never mutated.
func NewQuiz(bank []QuizQuestion) *Quiz {
	q := &Quiz{bank: bank, phase: PhaseNotStarted}
	q.applyFilter(FilterAll)
	return q
}

func (q *Quiz) applyFilter(filter string) {
	q.filter = filter
	q.active = q.active[:0]
	for _, question := range q.bank {
		if filter == FilterAll || string(question.Category) == filter {
			q.active = append(q.active, question)
		}
	}
}

// SelectCategory restricts the active question set to one category, or
// FilterAll to disable filtering. Valid only before the attempt starts.
func (q *Quiz) SelectCategory(filter string) {
	if q.phase != PhaseNotStarted {
		return
	}
	if filter != FilterAll && !Category(filter).Valid() {
		return
	}
	q.applyFilter(filter)
}

// Filter returns the selected category filter.
func (q *Quiz) Filter() string { return q.filter }

// AvailableCount returns how many questions the current filter selects.
func (q *Quiz) AvailableCount() int { return len(q.active) }

// CountByCategory returns how many bank questions carry the given category.
func (q *Quiz) CountByCategory(c Category) int {
	n := 0
	for _, question := range q.bank {
		if question.Category == c {
			n++
		}
	}
	return n
}

// Start begins the attempt. No-op unless the quiz is NotStarted with a
// non-empty active set. The active set is fixed for the whole attempt.
func (q *Quiz) Start() {
	if q.phase != PhaseNotStarted || len(q.active) == 0 {
		return
	}
	q.attempt = uuid.NewString()
	q.phase = PhaseInProgress
	q.current = 0
	q.score = 0
	q.answers = nil
}

// Answer records the member's choice for the current question and moves to
// per-question feedback. Answering a second time, answering outside an
// attempt, or choosing an out-of-range option is a no-op, so the score can
// never be double-counted.
func (q *Quiz) Answer(optionIndex int) {
	if q.phase != PhaseInProgress {
		return
	}
	question := q.active[q.current]
	if optionIndex < 0 || optionIndex >= len(question.Options) {
		return
	}
	correct := optionIndex == question.CorrectAnswer
	if correct {
		q.score++
	}
	q.answers = append(q.answers, AttemptRecord{
		QuestionIndex: q.current,
		Selected:      optionIndex,
		Correct:       correct,
	})
	q.phase = PhaseFeedback
}

// Advance leaves per-question feedback: to the next question, or to the
// completed state after the last one. Valid only from Feedback.
func (q *Quiz) Advance() {
	if q.phase != PhaseFeedback {
		return
	}
	if q.current < len(q.active)-1 {
		q.current++
		q.phase = PhaseInProgress
		return
	}
	q.phase = PhaseCompleted
}

// Review opens the per-question review for a completed attempt. Out of
// bounds indexes are a no-op.
func (q *Quiz) Review(index int) {
	if q.phase != PhaseCompleted {
		return
	}
	if index < 0 || index >= len(q.active) {
		return
	}
	q.phase = PhaseReviewing
	q.reviewAt = index
}

// ReviewNext moves the review forward one question, clamped at the last
// index: no wraparound.
func (q *Quiz) ReviewNext() {
	if q.phase != PhaseReviewing {
		return
	}
	if q.reviewAt < len(q.active)-1 {
		q.reviewAt++
	}
}

// ReviewPrev moves the review back one question, clamped at index 0.
func (q *Quiz) ReviewPrev() {
	if q.phase != PhaseReviewing {
		return
	}
	if q.reviewAt > 0 {
		q.reviewAt--
	}
}

// BackToResults returns from review to the results screen.
func (q *Quiz) BackToResults() {
	if q.phase != PhaseReviewing {
		return
	}
	q.phase = PhaseCompleted
}

// Reset discards all attempt progress and returns to NotStarted, keeping
// the selected filter. Valid from any phase. The UI must confirm before
// resetting while Abandonable reports true; the engine only exposes the
// flag.
func (q *Quiz) Reset() {
	q.phase = PhaseNotStarted
	q.attempt = ""
	q.current = 0
	q.score = 0
	q.answers = nil
	q.reviewAt = 0
}

// Abandonable reports whether a reset would discard an unfinished attempt.
func (q *Quiz) Abandonable() bool {
	return q.phase == PhaseInProgress || q.phase == PhaseFeedback
}

// Phase returns the current phase.
func (q *Quiz) Phase() Phase { return q.phase }

// AttemptID returns the ID minted at Start, empty while NotStarted.
func (q *Quiz) AttemptID() string { return q.attempt }

// Current returns the index of the question being presented.
func (q *Quiz) Current() int { return q.current }

// CurrentQuestion returns the question being presented. The second result
// is false outside an attempt.
func (q *Quiz) CurrentQuestion() (QuizQuestion, bool) {
	if q.phase != PhaseInProgress && q.phase != PhaseFeedback {
		return QuizQuestion{}, false
	}
	return q.active[q.current], true
}

// Score returns the running count of correct answers. Invariant: equals
// the number of Correct records in Answers at every point.
func (q *Quiz) Score() int { return q.score }

// Answers returns the attempt records in submission order.
func (q *Quiz) Answers() []AttemptRecord { return q.answers }

// LastAnswer returns the record for the question currently in feedback.
func (q *Quiz) LastAnswer() (AttemptRecord, bool) {
	if q.phase != PhaseFeedback || len(q.answers) == 0 {
		return AttemptRecord{}, false
	}
	return q.answers[len(q.answers)-1], true
}

// ReviewIndex returns the question index under review.
func (q *Quiz) ReviewIndex() int { return q.reviewAt }

// ReviewEntry returns the question under review together with its attempt
// record, valid only while Reviewing.
func (q *Quiz) ReviewEntry() (QuizQuestion, AttemptRecord, bool) {
	if q.phase != PhaseReviewing {
		return QuizQuestion{}, AttemptRecord{}, false
	}
	return q.active[q.reviewAt], q.answers[q.reviewAt], true
}

// Question returns the active-set question at index i.
func (q *Quiz) Question(i int) (QuizQuestion, bool) {
	if i < 0 || i >= len(q.active) {
		return QuizQuestion{}, false
	}
	return q.active[i], true
}

// Percentage returns round(100 * score / total) for the active set, or 0
// for an empty set.
func (q *Quiz) Percentage() int {
	if len(q.active) == 0 {
		return 0
	}
	return int(math.Round(100 * float64(q.score) / float64(len(q.active))))
}

// Passed reports whether the attempt meets the pass threshold.
func (q *Quiz) Passed() bool {
	return q.Percentage() >= PassThreshold
}

// Progress is the serializable snapshot of an attempt, small enough for a
// cookie session: the active set is rebuilt from the bank and filter, not
// stored.
type Progress struct {
	Filter   string          `json:"filter"`
	Attempt  string          `json:"attempt"`
	Phase    Phase           `json:"phase"`
	Current  int             `json:"current"`
	Score    int             `json:"score"`
	Answers  []AttemptRecord `json:"answers"`
	ReviewAt int             `json:"review_at"`
}

// Progress captures the attempt state for session storage.
func (q *Quiz) Progress() Progress {
	return Progress{
		Filter:   q.filter,
		Attempt:  q.attempt,
		Phase:    q.phase,
		Current:  q.current,
		Score:    q.score,
		Answers:  q.answers,
		ReviewAt: q.reviewAt,
	}
}

// ResumeQuiz rebuilds an engine from a snapshot against the same bank. A
// snapshot that no longer fits the bank (content changed under the
// session) degrades to a fresh NotStarted quiz rather than erroring. The
// answers length must match the phase exactly, or an attempt recorded
// against a smaller active set would review answers that do not exist.
func ResumeQuiz(bank []QuizQuestion, p Progress) *Quiz {
	q := NewQuiz(bank)
	filter := p.Filter
	if filter == "" {
		filter = FilterAll
	}
	q.applyFilter(filter)
	if p.Phase == "" || p.Phase == PhaseNotStarted {
		return q
	}
	if p.Current < 0 || p.Current >= len(q.active) {
		return q
	}
	switch p.Phase {
	case PhaseInProgress:
		if len(p.Answers) != p.Current {
			return q
		}
	case PhaseFeedback:
		if len(p.Answers) != p.Current+1 {
			return q
		}
	case PhaseCompleted, PhaseReviewing:
		if len(p.Answers) != len(q.active) {
			return q
		}
	default:
		return q
	}
	q.attempt = p.Attempt
	q.phase = p.Phase
	q.current = p.Current
	q.score = p.Score
	q.answers = p.Answers
	q.reviewAt = p.ReviewAt
	if q.reviewAt < 0 || q.reviewAt >= len(q.active) {
		q.reviewAt = 0
	}
	return q
}
