package kitcompanion

// Category identifies one of the four content feed categories. The same
// keys tag both scam examples and quiz questions.
type Category string

const (
	CategoryEmail       Category = "email"
	CategoryText        Category = "text"
	CategoryMarketplace Category = "marketplace"
	CategoryPopup       Category = "popup"
)

// Categories lists every feed category in display order.
var Categories = []Category{CategoryEmail, CategoryText, CategoryMarketplace, CategoryPopup}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Difficulty is an ordinal label attached to a training example, used only
// for filtering and display, never for scoring.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// FilterAll disables category or difficulty filtering.
const FilterAll = "all"

// Valid reports whether d is one of the known difficulty labels.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// ScamExample is one training example from the content feed: a real or
// fabricated message the member practices classifying. Created externally,
// immutable for the session, read-only to this system.
type ScamExample struct {
	ID          string     `json:"id"`
	Type        Category   `json:"type"`
	Title       string     `json:"title"`
	Sender      string     `json:"sender"`
	Subject     string     `json:"subject,omitempty"`
	Body        string     `json:"body"`
	IsScam      bool       `json:"isScam"`
	Difficulty  Difficulty `json:"difficulty"`
	RedFlags    []string   `json:"redFlags"`
	Explanation string     `json:"explanation"`
	HowToSpot   string     `json:"howToSpot,omitempty"`
}

// QuizQuestion is one multiple-choice question from the content feed.
// CorrectAnswer is a zero-based index into Options.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Category      Category `json:"category"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// AttemptRecord is one answered question within a single quiz run. Records
// live only for the run and are discarded on reset or exit.
type AttemptRecord struct {
	QuestionIndex int  `json:"question_index"`
	Selected      int  `json:"selected"`
	Correct       bool `json:"correct"`
}
