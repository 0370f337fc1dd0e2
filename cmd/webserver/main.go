package main

import (
	"context"
	"encoding/gob"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"time"

	"kitcompanion"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
)

const sessionName = "kit-session"

type Server struct {
	cfg       *kitcompanion.SiteConfig
	lib       *kitcompanion.Library
	store     *sessions.CookieStore
	templates map[string]*template.Template
}

func init() {
	gob.Register(kitcompanion.Progress{})
}

func main() {
	kitcompanion.SetVerbose(os.Getenv("VERBOSE") == "1")

	cfg, err := kitcompanion.LoadSiteConfig(envOr("SITE_CONFIG", "config.yaml"))
	if err != nil {
		log.Fatalf("Failed to load site config: %v", err)
	}

	// Content feed: a remote static host when CONTENT_URL is set, the
	// bundled content directory otherwise.
	var fetcher kitcompanion.Fetcher
	contentDir := envOr("CONTENT_DIR", "content")
	if url := os.Getenv("CONTENT_URL"); url != "" {
		fetcher = &kitcompanion.FeedClient{
			Client:  &http.Client{Timeout: 30 * time.Second},
			BaseURL: url,
		}
	} else {
		fetcher = &kitcompanion.DirFetcher{Dir: contentDir}
	}

	lib := kitcompanion.LoadLibrary(context.Background(), fetcher)

	store := sessions.NewCookieStore([]byte(envOr("SESSION_KEY", "kit-companion-dev-key")))

	server := &Server{
		cfg:       cfg,
		lib:       lib,
		store:     store,
		templates: loadTemplates("templates"),
	}

	handler := handlers.RecoveryHandler()(handlers.LoggingHandler(os.Stdout, server.routes(contentDir)))

	port := envOr("PORT", "8180")
	log.Printf("Starting server on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}

func (s *Server) routes(contentDir string) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/", s.handleHome).Methods("GET")
	r.HandleFunc("/login", s.handleLogin).Methods("GET", "POST")
	r.HandleFunc("/logout", s.handleLogout).Methods("POST")
	r.HandleFunc("/dashboard", s.handleDashboard).Methods("GET")
	r.HandleFunc("/resources", s.handleResources).Methods("GET")
	r.HandleFunc("/marketplace", s.handleMarketplace).Methods("GET")
	r.HandleFunc("/emergency", s.handleEmergency).Methods("GET")

	r.HandleFunc("/training", s.handleTraining).Methods("GET")
	r.HandleFunc("/training/examples/{category}", s.handleExampleList).Methods("GET")
	r.HandleFunc("/training/examples/{category}/{id}", s.handleExampleDetail).Methods("GET")
	r.HandleFunc("/training/quiz/start", s.handleQuizStart).Methods("POST")
	r.HandleFunc("/training/quiz", s.handleQuizQuestion).Methods("GET")
	r.HandleFunc("/training/quiz/answer", s.handleQuizAnswer).Methods("POST")
	r.HandleFunc("/training/quiz/advance", s.handleQuizAdvance).Methods("POST")
	r.HandleFunc("/training/quiz/results", s.handleQuizResults).Methods("GET")
	r.HandleFunc("/training/quiz/review/{index:[0-9]+}", s.handleQuizReview).Methods("GET")
	r.HandleFunc("/training/quiz/review/next", s.handleQuizReviewNext).Methods("POST")
	r.HandleFunc("/training/quiz/review/prev", s.handleQuizReviewPrev).Methods("POST")
	r.HandleFunc("/training/quiz/reset", s.handleQuizReset).Methods("POST")

	// Self-hosted static content feed
	r.PathPrefix("/content/").Handler(
		http.StripPrefix("/content/", http.FileServer(http.Dir(contentDir))))

	return r
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func loadTemplates(dir string) map[string]*template.Template {
	funcMap := template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"printf": fmt.Sprintf,
	}

	templates := make(map[string]*template.Template)

	templateFiles := []struct {
		name string
		file string
	}{
		{"home", "home.html"},
		{"login", "login.html"},
		{"dashboard", "dashboard.html"},
		{"training", "training.html"},
		{"examples", "examples.html"},
		{"example_detail", "example_detail.html"},
		{"quiz_question", "quiz_question.html"},
		{"quiz_results", "quiz_results.html"},
		{"quiz_review", "quiz_review.html"},
		{"resources", "resources.html"},
		{"marketplace", "marketplace.html"},
		{"emergency", "emergency.html"},
	}
	for _, tmpl := range templateFiles {
		templates[tmpl.name] = template.Must(template.New(tmpl.name).Funcs(funcMap).
			ParseFiles(dir+"/base.html", dir+"/"+tmpl.file))
	}

	// Print views render against the chrome-free print base.
	printFiles := []struct {
		name string
		file string
	}{
		{"print_example", "print_example.html"},
		{"print_results", "print_results.html"},
	}
	for _, tmpl := range printFiles {
		templates[tmpl.name] = template.Must(template.New(tmpl.name).Funcs(funcMap).
			ParseFiles(dir+"/print_base.html", dir+"/"+tmpl.file))
	}

	return templates
}

func (s *Server) render(w http.ResponseWriter, name string, data map[string]interface{}) {
	if data == nil {
		data = map[string]interface{}{}
	}
	data["Site"] = s.cfg.Site
	data["Store"] = s.cfg.Store
	err := s.templates[name].ExecuteTemplate(w, "base.html", data)
	if err != nil {
		log.Printf("Template error in %s: %v", name, err)
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}

func (s *Server) renderPrint(w http.ResponseWriter, name string, data map[string]interface{}) {
	if data == nil {
		data = map[string]interface{}{}
	}
	data["Site"] = s.cfg.Site
	err := s.templates[name].ExecuteTemplate(w, "print_base.html", data)
	if err != nil {
		log.Printf("Template error in %s: %v", name, err)
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}

func (s *Server) loggedIn(r *http.Request) bool {
	session, _ := s.store.Get(r, sessionName)
	loggedIn, _ := session.Values["loggedIn"].(bool)
	return loggedIn
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	// Wall of deception: a public teaser pulled from the loaded feeds.
	var teasers []kitcompanion.ScamExample
	for _, category := range kitcompanion.Categories {
		for _, example := range s.lib.Examples(category) {
			if example.IsScam {
				teasers = append(teasers, example)
			}
			if len(teasers) >= 6 {
				break
			}
		}
		if len(teasers) >= 6 {
			break
		}
	}

	s.render(w, "home", map[string]interface{}{
		"LoggedIn": s.loggedIn(r),
		"Stats":    s.cfg.Stats,
		"Teasers":  teasers,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		s.render(w, "login", map[string]interface{}{
			"LoggedIn":       s.loggedIn(r),
			"Email":          "",
			"Error":          "",
			"PasswordPolicy": s.cfg.Identity.PasswordPolicy.Describe(),
		})
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	email := r.FormValue("email")
	orderNumber := r.FormValue("order_number")
	if email == "" || orderNumber == "" {
		// Inline validation only; the session stays logged out and the
		// visitor stays on the login page.
		s.render(w, "login", map[string]interface{}{
			"LoggedIn":       false,
			"Email":          email,
			"Error":          fmt.Sprintf("Please enter your email and %s order number", s.cfg.Store.Name),
			"PasswordPolicy": s.cfg.Identity.PasswordPolicy.Describe(),
		})
		return
	}

	// No credential verification happens here: any non-empty pair grants
	// access. The real check is delegated to the external identity
	// provider configured in SiteConfig.Identity.
	session, _ := s.store.Get(r, sessionName)
	session.Values["loggedIn"] = true
	session.Values["email"] = email
	if err := session.Save(r, w); err != nil {
		log.Printf("Session save error: %v", err)
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	session, _ := s.store.Get(r, sessionName)
	session.Values["loggedIn"] = false
	delete(session.Values, "email")
	delete(session.Values, "quiz")
	if err := session.Save(r, w); err != nil {
		log.Printf("Session save error: %v", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleDashboard renders the member dashboard. Logged-out visitors get
// the page shell with an empty member region: no error, no redirect.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	session, _ := s.store.Get(r, sessionName)
	email, _ := session.Values["email"].(string)
	s.render(w, "dashboard", map[string]interface{}{
		"LoggedIn": s.loggedIn(r),
		"Email":    email,
	})
}

func (s *Server) handleResources(w http.ResponseWriter, r *http.Request) {
	s.render(w, "resources", map[string]interface{}{
		"LoggedIn": s.loggedIn(r),
		"Sections": s.cfg.Resources,
	})
}

func (s *Server) handleMarketplace(w http.ResponseWriter, r *http.Request) {
	s.render(w, "marketplace", map[string]interface{}{
		"LoggedIn": s.loggedIn(r),
		"Products": s.cfg.Products,
	})
}

func (s *Server) handleEmergency(w http.ResponseWriter, r *http.Request) {
	s.render(w, "emergency", map[string]interface{}{
		"LoggedIn":  s.loggedIn(r),
		"Emergency": s.cfg.Emergency,
	})
}
