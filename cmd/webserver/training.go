package main

import (
	"log"
	"net/http"
	"strconv"

	"kitcompanion"

	"github.com/gorilla/mux"
)

// quiz rebuilds the engine from the progress snapshot in the visitor's
// session. A missing or stale snapshot yields a fresh NotStarted quiz.
func (s *Server) quiz(r *http.Request) *kitcompanion.Quiz {
	session, _ := s.store.Get(r, sessionName)
	progress, _ := session.Values["quiz"].(kitcompanion.Progress)
	return kitcompanion.ResumeQuiz(s.lib.Questions(), progress)
}

func (s *Server) saveQuiz(w http.ResponseWriter, r *http.Request, q *kitcompanion.Quiz) {
	session, _ := s.store.Get(r, sessionName)
	session.Values["quiz"] = q.Progress()
	if err := session.Save(r, w); err != nil {
		log.Printf("Session save error: %v", err)
	}
}

type categoryCard struct {
	Category  kitcompanion.Category
	Examples  int
	Questions int
}

// handleTraining renders the training lab home: example categories with
// counts and the quiz category selection. Logged-out visitors get the
// page shell with an empty member region.
func (s *Server) handleTraining(w http.ResponseWriter, r *http.Request) {
	if !s.loggedIn(r) {
		s.render(w, "training", map[string]interface{}{"LoggedIn": false})
		return
	}

	q := s.quiz(r)
	var cards []categoryCard
	for _, category := range kitcompanion.Categories {
		cards = append(cards, categoryCard{
			Category:  category,
			Examples:  len(s.lib.Examples(category)),
			Questions: q.CountByCategory(category),
		})
	}

	s.render(w, "training", map[string]interface{}{
		"LoggedIn":       true,
		"Ready":          s.lib.Ready(),
		"Cards":          cards,
		"TotalQuestions": len(s.lib.Questions()),
		"Abandonable":    q.Abandonable(),
		"Phase":          q.Phase(),
	})
}

func (s *Server) handleExampleList(w http.ResponseWriter, r *http.Request) {
	if !s.loggedIn(r) {
		s.render(w, "training", map[string]interface{}{"LoggedIn": false})
		return
	}

	category := kitcompanion.Category(mux.Vars(r)["category"])
	if !category.Valid() {
		http.NotFound(w, r)
		return
	}

	difficulty := r.URL.Query().Get("difficulty")
	if difficulty == "" {
		difficulty = kitcompanion.FilterAll
	}
	examples := kitcompanion.FilterByDifficulty(s.lib.Examples(category), difficulty)

	s.render(w, "examples", map[string]interface{}{
		"LoggedIn":   true,
		"Category":   category,
		"Difficulty": difficulty,
		"Examples":   examples,
	})
}

func (s *Server) handleExampleDetail(w http.ResponseWriter, r *http.Request) {
	if !s.loggedIn(r) {
		s.render(w, "training", map[string]interface{}{"LoggedIn": false})
		return
	}

	vars := mux.Vars(r)
	category := kitcompanion.Category(vars["category"])
	if !category.Valid() {
		http.NotFound(w, r)
		return
	}
	example, ok := kitcompanion.FindExample(s.lib.Examples(category), vars["id"])
	if !ok {
		http.NotFound(w, r)
		return
	}

	query := r.URL.Query()
	if query.Get("print") == "1" {
		// Print contract: every collapsible rationale panel renders
		// unconditionally, navigation chrome is omitted.
		s.renderPrint(w, "print_example", map[string]interface{}{
			"Category": category,
			"Example":  example,
		})
		return
	}

	s.render(w, "example_detail", map[string]interface{}{
		"LoggedIn":   true,
		"Category":   category,
		"Difficulty": query.Get("difficulty"),
		"Example":    example,
		"ShowFlags":  query.Get("flags") == "1",
		"ShowWhy":    query.Get("why") == "1",
	})
}

func (s *Server) handleQuizStart(w http.ResponseWriter, r *http.Request) {
	if !s.loggedIn(r) {
		s.render(w, "training", map[string]interface{}{"LoggedIn": false})
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	q := s.quiz(r)
	q.Reset()
	if filter := r.FormValue("category"); filter != "" {
		q.SelectCategory(filter)
	}
	q.Start()
	s.saveQuiz(w, r, q)

	if q.Phase() == kitcompanion.PhaseNotStarted {
		// Empty active set: nothing to start, back to category selection.
		http.Redirect(w, r, "/training", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/training/quiz", http.StatusSeeOther)
}

func (s *Server) handleQuizQuestion(w http.ResponseWriter, r *http.Request) {
	if !s.loggedIn(r) {
		s.render(w, "training", map[string]interface{}{"LoggedIn": false})
		return
	}

	q := s.quiz(r)
	switch q.Phase() {
	case kitcompanion.PhaseNotStarted:
		http.Redirect(w, r, "/training", http.StatusSeeOther)
		return
	case kitcompanion.PhaseCompleted, kitcompanion.PhaseReviewing:
		http.Redirect(w, r, "/training/quiz/results", http.StatusSeeOther)
		return
	}

	question, _ := q.CurrentQuestion()
	data := map[string]interface{}{
		"LoggedIn":    true,
		"Question":    question,
		"QuestionNum": q.Current() + 1,
		"Total":       q.AvailableCount(),
		"Score":       q.Score(),
		"Answered":    q.Phase() == kitcompanion.PhaseFeedback,
		"IsLast":      q.Current() == q.AvailableCount()-1,
	}
	if record, ok := q.LastAnswer(); ok {
		data["Selected"] = record.Selected
		data["Correct"] = record.Correct
	}
	s.render(w, "quiz_question", data)
}

func (s *Server) handleQuizAnswer(w http.ResponseWriter, r *http.Request) {
	if !s.loggedIn(r) {
		s.render(w, "training", map[string]interface{}{"LoggedIn": false})
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	option, err := strconv.Atoi(r.FormValue("option"))
	if err != nil {
		http.Redirect(w, r, "/training/quiz", http.StatusSeeOther)
		return
	}

	// Answer is idempotent: a replayed submit while already in feedback
	// changes nothing.
	q := s.quiz(r)
	q.Answer(option)
	s.saveQuiz(w, r, q)
	http.Redirect(w, r, "/training/quiz", http.StatusSeeOther)
}

func (s *Server) handleQuizAdvance(w http.ResponseWriter, r *http.Request) {
	if !s.loggedIn(r) {
		s.render(w, "training", map[string]interface{}{"LoggedIn": false})
		return
	}

	q := s.quiz(r)
	q.Advance()
	s.saveQuiz(w, r, q)

	if q.Phase() == kitcompanion.PhaseCompleted {
		http.Redirect(w, r, "/training/quiz/results", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/training/quiz", http.StatusSeeOther)
}

type resultRow struct {
	Index    int
	Question kitcompanion.QuizQuestion
	Record   kitcompanion.AttemptRecord
}

func (s *Server) handleQuizResults(w http.ResponseWriter, r *http.Request) {
	if !s.loggedIn(r) {
		s.render(w, "training", map[string]interface{}{"LoggedIn": false})
		return
	}

	q := s.quiz(r)
	// Landing on results while reviewing is the back navigation.
	q.BackToResults()
	if q.Phase() != kitcompanion.PhaseCompleted {
		http.Redirect(w, r, "/training/quiz", http.StatusSeeOther)
		return
	}
	s.saveQuiz(w, r, q)

	var rows []resultRow
	for _, record := range q.Answers() {
		question, _ := q.Question(record.QuestionIndex)
		rows = append(rows, resultRow{Index: record.QuestionIndex, Question: question, Record: record})
	}

	data := map[string]interface{}{
		"LoggedIn":   true,
		"AttemptID":  q.AttemptID(),
		"Score":      q.Score(),
		"Total":      q.AvailableCount(),
		"Percentage": q.Percentage(),
		"Passed":     q.Passed(),
		"Rows":       rows,
	}

	if r.URL.Query().Get("print") == "1" {
		s.renderPrint(w, "print_results", data)
		return
	}
	s.render(w, "quiz_results", data)
}

func (s *Server) handleQuizReview(w http.ResponseWriter, r *http.Request) {
	if !s.loggedIn(r) {
		s.render(w, "training", map[string]interface{}{"LoggedIn": false})
		return
	}

	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		http.NotFound(w, r)
		return
	}

	q := s.quiz(r)
	q.Review(index)
	s.saveQuiz(w, r, q)
	s.renderReview(w, r, q)
}

func (s *Server) handleQuizReviewNext(w http.ResponseWriter, r *http.Request) {
	if !s.loggedIn(r) {
		s.render(w, "training", map[string]interface{}{"LoggedIn": false})
		return
	}
	q := s.quiz(r)
	q.ReviewNext()
	s.saveQuiz(w, r, q)
	s.renderReview(w, r, q)
}

func (s *Server) handleQuizReviewPrev(w http.ResponseWriter, r *http.Request) {
	if !s.loggedIn(r) {
		s.render(w, "training", map[string]interface{}{"LoggedIn": false})
		return
	}
	q := s.quiz(r)
	q.ReviewPrev()
	s.saveQuiz(w, r, q)
	s.renderReview(w, r, q)
}

func (s *Server) renderReview(w http.ResponseWriter, r *http.Request, q *kitcompanion.Quiz) {
	question, record, ok := q.ReviewEntry()
	if !ok {
		http.Redirect(w, r, "/training/quiz/results", http.StatusSeeOther)
		return
	}
	s.render(w, "quiz_review", map[string]interface{}{
		"LoggedIn": true,
		"Index":    q.ReviewIndex(),
		"Total":    q.AvailableCount(),
		"Question": question,
		"Record":   record,
		"AtFirst":  q.ReviewIndex() == 0,
		"AtLast":   q.ReviewIndex() == q.AvailableCount()-1,
	})
}

// handleQuizReset discards the attempt. While an attempt is abandonable,
// the form must carry confirm=1; the engine itself stays confirmation-free.
func (s *Server) handleQuizReset(w http.ResponseWriter, r *http.Request) {
	if !s.loggedIn(r) {
		s.render(w, "training", map[string]interface{}{"LoggedIn": false})
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	q := s.quiz(r)
	if q.Abandonable() && r.FormValue("confirm") != "1" {
		http.Redirect(w, r, "/training/quiz", http.StatusSeeOther)
		return
	}
	q.Reset()
	s.saveQuiz(w, r, q)
	http.Redirect(w, r, "/training", http.StatusSeeOther)
}
