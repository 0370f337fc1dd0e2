package kitcompanion

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Library holds the loaded content feed: one example collection per
// category plus the quiz question bank. A Library is written once by
// LoadLibrary and read-only afterwards.
type Library struct {
	examples  map[Category][]ScamExample
	questions []QuizQuestion

	mu    sync.Mutex
	ready bool
}

// Examples returns the example collection for a category. Unknown
// categories and failed feeds yield an empty collection, never an error.
func (l *Library) Examples(c Category) []ScamExample {
	return l.examples[c]
}

// Questions returns the quiz question bank.
func (l *Library) Questions() []QuizQuestion {
	return l.questions
}

// Ready reports whether all five feed fetches have settled. There is no
// partial-ready state: Ready flips exactly once, after the join.
func (l *Library) Ready() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ready
}

// Fetcher fetches one named feed document. http.Client satisfies the
// contract through FeedClient; tests substitute their own.
type Fetcher interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// FeedClient fetches feed documents over HTTP from a static asset base URL.
type FeedClient struct {
	Client  *http.Client
	BaseURL string
}

// Fetch GETs {base}/{name}.json and returns the body. Any non-200 status
// is a fetch failure.
func (f *FeedClient) Fetch(ctx context.Context, name string) ([]byte, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.BaseURL+"/"+name+".json", nil)
	if err != nil {
		return nil, fmt.Errorf("building feed request for %s: %w", name, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching feed %s: %w", name, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching feed %s: status %d", name, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading feed %s: %w", name, err)
	}
	return body, nil
}

// DirFetcher fetches feed documents from a local directory, for
// deployments that ship the static assets alongside the binary instead of
// on a separate static host.
type DirFetcher struct {
	Dir string
}

// Fetch reads {dir}/{name}.json.
func (d *DirFetcher) Fetch(_ context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(d.Dir, name+".json"))
	if err != nil {
		return nil, fmt.Errorf("reading feed %s: %w", name, err)
	}
	return data, nil
}

// QuestionsFeed is the feed name of the quiz question bank; the example
// feeds are named after their category.
const QuestionsFeed = "questions"

// LoadLibrary issues the five feed fetches in parallel and joins on all of
// them. Each branch recovers its own failure — network, malformed JSON, or
// schema violation — by substituting the empty collection for that resource
// only, so the join always succeeds and the Library always comes up Ready.
// No retry, no caching: a failed feed stays empty for the process lifetime.
func LoadLibrary(ctx context.Context, fetcher Fetcher) *Library {
	lib := &Library{examples: make(map[Category][]ScamExample, len(Categories))}

	// Each branch fills its own slot; the shared map is only written after
	// the join. Assigning distinct map keys from concurrent goroutines is
	// still a concurrent map write.
	loaded := make([][]ScamExample, len(Categories))
	g, ctx := errgroup.WithContext(ctx)
	for i, category := range Categories {
		i, category := i, category
		g.Go(func() error {
			loaded[i] = fetchExamples(ctx, fetcher, category)
			return nil
		})
	}
	g.Go(func() error {
		lib.questions = fetchQuestions(ctx, fetcher)
		return nil
	})
	g.Wait() // branches never return errors; the join is the ready barrier

	for i, category := range Categories {
		lib.examples[category] = loaded[i]
	}

	lib.mu.Lock()
	lib.ready = true
	lib.mu.Unlock()

	VerboseLog("content library ready: %d questions, %d/%d/%d/%d examples",
		len(lib.questions),
		len(lib.examples[CategoryEmail]), len(lib.examples[CategoryText]),
		len(lib.examples[CategoryMarketplace]), len(lib.examples[CategoryPopup]))
	return lib
}

// fetchExamples loads one category feed, degrading to the empty collection
// on any failure.
func fetchExamples(ctx context.Context, fetcher Fetcher, category Category) []ScamExample {
	data, err := fetcher.Fetch(ctx, string(category))
	if err != nil {
		FeedLog(string(category), "unavailable, using empty collection: %v", err)
		return []ScamExample{}
	}
	examples, err := ParseExamples(data)
	if err != nil {
		FeedLog(string(category), "malformed, using empty collection: %v", err)
		return []ScamExample{}
	}
	return examples
}

func fetchQuestions(ctx context.Context, fetcher Fetcher) []QuizQuestion {
	data, err := fetcher.Fetch(ctx, QuestionsFeed)
	if err != nil {
		FeedLog(QuestionsFeed, "unavailable, using empty collection: %v", err)
		return []QuizQuestion{}
	}
	questions, err := ParseQuestions(data)
	if err != nil {
		FeedLog(QuestionsFeed, "malformed, using empty collection: %v", err)
		return []QuizQuestion{}
	}
	return questions
}

// ParseExamples decodes and schema-checks an example feed document. A
// schema violation is a parse failure: the caller substitutes the empty
// collection exactly as for malformed JSON.
func ParseExamples(data []byte) ([]ScamExample, error) {
	if err := ValidateExamplesDocument(data); err != nil {
		return nil, err
	}
	var examples []ScamExample
	if err := json.Unmarshal(data, &examples); err != nil {
		return nil, fmt.Errorf("decoding examples: %w", err)
	}
	if examples == nil {
		examples = []ScamExample{}
	}
	return examples, nil
}

// ParseQuestions decodes and schema-checks a question bank document. The
// correctAnswer upper bound depends on the options length, which a JSON
// schema cannot express, so it is enforced here: a question that cannot be
// answered correctly fails the whole document.
func ParseQuestions(data []byte) ([]QuizQuestion, error) {
	if err := ValidateQuestionsDocument(data); err != nil {
		return nil, err
	}
	var questions []QuizQuestion
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("decoding questions: %w", err)
	}
	for i, q := range questions {
		if q.CorrectAnswer >= len(q.Options) {
			return nil, fmt.Errorf("decoding questions: question %d: correctAnswer %d out of range for %d options", i, q.CorrectAnswer, len(q.Options))
		}
	}
	if questions == nil {
		questions = []QuizQuestion{}
	}
	return questions, nil
}
