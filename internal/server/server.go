package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/getsentry/raven-go"
	"github.com/golang-cafe/candidate-portal/internal/candidate"
	"github.com/golang-cafe/candidate-portal/internal/config"
	"github.com/golang-cafe/candidate-portal/internal/dashboard"
	"github.com/golang-cafe/candidate-portal/internal/middleware"
	"github.com/golang-cafe/candidate-portal/internal/template"
	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"github.com/rs/zerolog"
)

const (
	sessionName       = "____cp"
	sessionKeyFilters = "filters"
	sessionKeySearch  = "search"
)

type Server struct {
	cfg          config.Config
	router       *mux.Router
	tmpl         *template.Template
	SessionStore *sessions.CookieStore
	Dashboard    *dashboard.Dashboard
	Events       dashboard.EventLogger
	logger       zerolog.Logger
}

func NewServer(
	cfg config.Config,
	r *mux.Router,
	t *template.Template,
	sessionStore *sessions.CookieStore,
	dash *dashboard.Dashboard,
	events dashboard.EventLogger,
	logger zerolog.Logger,
) Server {
	if cfg.SentryDSN != "" {
		if err := raven.SetDSN(cfg.SentryDSN); err != nil {
			logger.Error().Err(err).Msg("unable to set sentry dsn")
		}
	}
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.Secure = cfg.Env != "dev"
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	return Server{
		cfg:          cfg,
		router:       r,
		tmpl:         t,
		SessionStore: sessionStore,
		Dashboard:    dash,
		Events:       events,
		logger:       logger,
	}
}

func (s Server) RegisterRoute(path string, handler func(w http.ResponseWriter, r *http.Request), methods []string) {
	s.router.HandleFunc(path, handler).Methods(methods...)
}

func (s Server) GetConfig() config.Config {
	return s.cfg
}

func (s Server) Logger() zerolog.Logger {
	return s.logger
}

// Session returns the browser session. A cookie that can no longer be
// decoded (rotated key) yields a fresh session rather than an error.
func (s Server) Session(r *http.Request) *sessions.Session {
	sess, err := s.SessionStore.Get(r, sessionName)
	if err != nil {
		s.logger.Debug().Err(err).Msg("discarding undecodable session")
	}
	return sess
}

// FilterStore rebuilds the session's filter store. Use SaveFilters to keep
// the changes made to it.
func (s Server) FilterStore(sess *sessions.Session) *candidate.FilterStore {
	raw, _ := sess.Values[sessionKeyFilters].(string)
	if raw == "" {
		return candidate.NewFilterStore()
	}
	values, err := url.ParseQuery(raw)
	if err != nil {
		return candidate.NewFilterStore()
	}
	return candidate.NewFilterStoreFrom(candidate.ParseFilterState(values))
}

func (s Server) SaveFilters(sess *sessions.Session, f candidate.FilterState) {
	sess.Values[sessionKeyFilters] = f.Values().Encode()
}

func (s Server) SearchTerm(sess *sessions.Session) string {
	term, _ := sess.Values[sessionKeySearch].(string)
	return term
}

func (s Server) SetSearchTerm(sess *sessions.Session, term string) {
	sess.Values[sessionKeySearch] = term
}

func (s Server) SaveSession(w http.ResponseWriter, r *http.Request, sess *sessions.Session) {
	if err := sess.Save(r, w); err != nil {
		s.Log(err, "unable to save session")
	}
}

func (s Server) Render(w http.ResponseWriter, status int, htmlView string, data interface{}) error {
	dataMap := make(map[string]interface{}, 0)
	if data != nil {
		dataMap = data.(map[string]interface{})
	}
	dataMap["SiteName"] = s.GetConfig().SiteName

	return s.tmpl.Render(w, status, htmlView, dataMap)
}

func (s Server) JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func (s Server) Log(err error, msg string) {
	if s.cfg.SentryDSN != "" {
		raven.CaptureError(err, map[string]string{"ctx": msg})
	}
	s.logger.Error().Err(err).Msg(msg)
}

func (s Server) Redirect(w http.ResponseWriter, r *http.Request, status int, dst string) {
	http.Redirect(w, r, dst, status)
}

// Handler is the router wrapped in the middleware chain.
func (s Server) Handler() http.Handler {
	return middleware.HTTPSMiddleware(
		middleware.LoggingMiddleware(middleware.HeadersMiddleware(s.router, s.cfg.Env), s.logger),
		s.cfg.Env,
	)
}

func (s Server) Addr() string {
	if s.cfg.Env == "dev" {
		return fmt.Sprintf("localhost:%s", s.cfg.Port)
	}
	return fmt.Sprintf(":%s", s.cfg.Port)
}
