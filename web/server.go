// Package web serves members-only journal pages behind a login form backed
// by the member database.
package web

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"embed"
	"encoding/hex"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	sessionCookie = "accu_session"
	csrfCookie    = "accu_csrf"

	// RememberFor is the lifetime of a "remember me" login.
	RememberFor = 30 * 24 * time.Hour
	// SessionFor is the lifetime of an ordinary login.
	SessionFor = 12 * time.Hour

	defaultHome = "/journal/cvu"
)

// ErrNoSecret indicates a server configured without a signing secret.
var ErrNoSecret = errors.New("session secret is required")

// Authenticator decides whether credentials belong to a member.
type Authenticator interface {
	IsMember(ctx context.Context, username, password string) (bool, error)
}

// Config configures a Server.
type Config struct {
	// Secret signs session cookies.
	Secret []byte
	// Pages holds the pre-rendered journal pages.
	Pages fs.FS
	// Home is where a login without a next page lands.
	Home string
	// Secure marks cookies as HTTPS only.
	Secure bool
	Logger *slog.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// Server is the web front end.
type Server struct {
	auth      Authenticator
	pages     fs.FS
	home      string
	secure    bool
	signer    signer
	logger    *slog.Logger
	now       func() time.Time
	templates *template.Template
	mux       *http.ServeMux
}

// New returns a server authenticating with auth.
func New(auth Authenticator, cfg Config) (*Server, error) {
	if len(cfg.Secret) == 0 {
		return nil, ErrNoSecret
	}
	if auth == nil {
		return nil, errors.New("authenticator is required")
	}
	if cfg.Pages == nil {
		return nil, errors.New("pages filesystem is required")
	}

	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		auth:      auth,
		pages:     cfg.Pages,
		home:      cfg.Home,
		secure:    cfg.Secure,
		signer:    signer{key: cfg.Secret},
		logger:    cfg.Logger,
		now:       cfg.Now,
		templates: tmpl,
		mux:       http.NewServeMux(),
	}
	if s.home == "" {
		s.home = defaultHome
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	if s.now == nil {
		s.now = time.Now
	}

	s.mux.HandleFunc("GET /login", s.handleLoginForm)
	s.mux.HandleFunc("POST /login", s.handleLogin)
	s.mux.HandleFunc("GET /logout", s.handleLogout)
	s.mux.HandleFunc("GET /journal/{path...}", s.requireLogin(s.handlePage))
	s.mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, s.home, http.StatusFound)
	})
	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := s.now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	s.mux.ServeHTTP(rec, r)
	s.logger.Debug("request",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("status", rec.status),
		slog.Duration("duration", s.now().Sub(start)))
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

type loginPage struct {
	Title    string
	Username string
	Next     string
	CSRF     string
	Errors   []string
}

func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.currentUser(r); ok {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	page := loginPage{Next: r.URL.Query().Get("next")}
	if r.URL.Query().Has("failed") {
		page.Errors = append(page.Errors, "Invalid username or password")
	}
	s.renderLogin(w, r, http.StatusOK, page)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	page := loginPage{
		Username: strings.TrimSpace(r.PostForm.Get("username")),
		Next:     r.PostForm.Get("next"),
	}
	if !s.validCSRF(r) {
		s.logger.Warn("login rejected: bad form token", slog.String("remote", r.RemoteAddr))
		page.Errors = append(page.Errors, "The form has expired, please try again")
		s.renderLogin(w, r, http.StatusBadRequest, page)
		return
	}

	password := r.PostForm.Get("password")
	if page.Username == "" {
		page.Errors = append(page.Errors, "Username is required")
	}
	if password == "" {
		page.Errors = append(page.Errors, "Password is required")
	}
	if len(page.Errors) > 0 {
		s.renderLogin(w, r, http.StatusOK, page)
		return
	}

	member, err := s.auth.IsMember(r.Context(), page.Username, password)
	if err != nil {
		s.logger.Error("credential check failed", slog.String("user", page.Username), slog.String("error", err.Error()))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if !member {
		s.logger.Info("login failed", slog.String("user", page.Username))
		target := url.Values{"failed": {"1"}}
		if page.Next != "" {
			target.Set("next", page.Next)
		}
		http.Redirect(w, r, "/login?"+target.Encode(), http.StatusFound)
		return
	}

	remember := r.PostForm.Get("remember_me") != ""
	s.setSession(w, page.Username, remember)
	s.logger.Info("login", slog.String("user", page.Username), slog.Bool("remember", remember))

	next := s.home
	if safeRedirect(page.Next) {
		next = page.Next
	}
	http.Redirect(w, r, next, http.StatusFound)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusFound)
}

// handlePage serves a pre-rendered page. Directories serve their
// index.html and extensionless names fall back to "<name>.html".
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("path")
	if name == "" {
		name = "."
	}
	if !fs.ValidPath(name) {
		http.NotFound(w, r)
		return
	}

	for _, candidate := range pageCandidates(name) {
		info, err := fs.Stat(s.pages, candidate)
		if err != nil || info.IsDir() {
			continue
		}
		http.ServeFileFS(w, r, s.pages, candidate)
		return
	}
	http.NotFound(w, r)
}

func pageCandidates(name string) []string {
	candidates := []string{name, path.Join(name, "index.html")}
	if path.Ext(name) == "" && name != "." {
		candidates = append(candidates, name+".html")
	}
	return candidates
}

// requireLogin redirects anonymous requests to the login form.
func (s *Server) requireLogin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := s.currentUser(r); !ok {
			http.Redirect(w, r, "/login?"+url.Values{"next": {r.URL.RequestURI()}}.Encode(), http.StatusFound)
			return
		}
		next(w, r)
	}
}

func (s *Server) currentUser(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		return "", false
	}
	sess, err := s.signer.decode(cookie.Value, s.now())
	if err != nil {
		return "", false
	}
	return sess.Username, true
}

func (s *Server) setSession(w http.ResponseWriter, username string, remember bool) {
	lifetime := SessionFor
	if remember {
		lifetime = RememberFor
	}
	expires := s.now().Add(lifetime)

	cookie := &http.Cookie{
		Name:     sessionCookie,
		Value:    s.signer.encode(session{Username: username, Expires: expires}),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
	if remember {
		cookie.Expires = expires
		cookie.MaxAge = int(lifetime / time.Second)
	}
	http.SetCookie(w, cookie)
}

// renderLogin renders the login form with a fresh form token.
func (s *Server) renderLogin(w http.ResponseWriter, r *http.Request, status int, page loginPage) {
	token, err := newToken()
	if err != nil {
		s.logger.Error("generate form token", slog.String("error", err.Error()))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     csrfCookie,
		Value:    token,
		Path:     "/login",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteStrictMode,
	})

	page.Title = "Sign In"
	page.CSRF = token
	if !safeRedirect(page.Next) {
		page.Next = ""
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.templates.ExecuteTemplate(w, "login.html", page); err != nil {
		s.logger.Error("render login", slog.String("error", err.Error()))
	}
}

// validCSRF checks the submitted form token against the token cookie.
func (s *Server) validCSRF(r *http.Request) bool {
	cookie, err := r.Cookie(csrfCookie)
	if err != nil || cookie.Value == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(cookie.Value), []byte(r.PostForm.Get("csrf_token"))) == 1
}

func newToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// safeRedirect accepts only site-local absolute paths.
func safeRedirect(target string) bool {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, `/\`) {
		return false
	}
	u, err := url.Parse(target)
	return err == nil && u.Scheme == "" && u.Host == ""
}
