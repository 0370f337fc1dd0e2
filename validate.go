package kitcompanion

import (
	"fmt"
	"strings"
	"unicode"
)

// Static quality checks for feed content. These back the contentlint tool
// used when authoring feeds; the running site never rejects content, it
// degrades to empty collections instead.

// CheckQuestion validates a single question's structure and returns every
// problem found.
func CheckQuestion(q QuizQuestion) []string {
	var problems []string
	if strings.TrimSpace(q.Question) == "" {
		problems = append(problems, "question text is empty")
	}
	if !q.Category.Valid() {
		problems = append(problems, fmt.Sprintf("unknown category %q", q.Category))
	}
	if len(q.Options) < 2 {
		problems = append(problems, fmt.Sprintf("needs at least 2 options, has %d", len(q.Options)))
	}
	if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
		problems = append(problems, fmt.Sprintf("correctAnswer %d out of range for %d options", q.CorrectAnswer, len(q.Options)))
	}
	for i, option := range q.Options {
		if strings.TrimSpace(option) == "" {
			problems = append(problems, fmt.Sprintf("option %d is empty", i))
		}
	}
	if strings.TrimSpace(q.Explanation) == "" {
		problems = append(problems, "explanation is empty")
	}
	return problems
}

// CheckExample validates a single example's structure.
func CheckExample(e ScamExample) []string {
	var problems []string
	if strings.TrimSpace(e.ID) == "" {
		problems = append(problems, "id is empty")
	}
	if !e.Type.Valid() {
		problems = append(problems, fmt.Sprintf("unknown type %q", e.Type))
	}
	if strings.TrimSpace(e.Title) == "" {
		problems = append(problems, "title is empty")
	}
	if strings.TrimSpace(e.Body) == "" {
		problems = append(problems, "body is empty")
	}
	if !e.Difficulty.Valid() {
		problems = append(problems, fmt.Sprintf("unknown difficulty %q", e.Difficulty))
	}
	if e.IsScam && len(e.RedFlags) == 0 {
		problems = append(problems, "scam example has no red flags")
	}
	return problems
}

// QuestionDedup detects duplicate questions across a feed by normalized
// question text: case-insensitive, punctuation and extra whitespace
// stripped. Same-concept rewordings beyond that are an editorial call and
// out of scope for a static check.
type QuestionDedup struct {
	seen map[string]int // normalized text -> first index
}

// NewQuestionDedup creates a deduplicator for one pass over a feed.
func NewQuestionDedup() *QuestionDedup {
	return &QuestionDedup{seen: make(map[string]int)}
}

// Check records the question and reports whether an earlier question with
// the same normalized text exists, returning that question's index.
func (d *QuestionDedup) Check(index int, q QuizQuestion) (int, bool) {
	key := normalizeText(q.Question)
	if first, ok := d.seen[key]; ok {
		VerboseLog("question %d duplicates question %d", index, first)
		return first, true
	}
	d.seen[key] = index
	return 0, false
}

// FindDuplicateQuestions returns, for each duplicate, the pair of indexes
// [first, duplicate] in bank order.
func FindDuplicateQuestions(bank []QuizQuestion) [][2]int {
	dedup := NewQuestionDedup()
	var pairs [][2]int
	for i, q := range bank {
		if first, dup := dedup.Check(i, q); dup {
			pairs = append(pairs, [2]int{first, i})
		}
	}
	return pairs
}

func normalizeText(s string) string {
	var b strings.Builder
	lastSpace := true
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastSpace = false
		case unicode.IsSpace(r):
			if !lastSpace {
				b.WriteRune(' ')
				lastSpace = true
			}
		}
	}
	return strings.TrimSpace(b.String())
}
