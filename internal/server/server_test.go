package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-cafe/candidate-portal/internal/candidate"
	"github.com/golang-cafe/candidate-portal/internal/config"
	"github.com/golang-cafe/candidate-portal/internal/dashboard"
	"github.com/golang-cafe/candidate-portal/internal/template"
	"github.com/golang-cafe/candidate-portal/static"
	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopEvents struct{}

func (nopEvents) Info(string, interface{})  {}
func (nopEvents) Warn(string, interface{})  {}
func (nopEvents) Error(string, interface{}) {}

func newServer(t *testing.T, env string) Server {
	t.Helper()
	cfg := config.Config{Port: "8080", Env: env, SiteName: "Portal"}
	dash, err := dashboard.New(nil, nopEvents{}, time.Minute)
	require.NoError(t, err)
	t.Cleanup(func() { dash.Close() })
	return NewServer(
		cfg,
		mux.NewRouter(),
		template.NewTemplate(static.Views),
		sessions.NewCookieStore([]byte("0123456789abcdef0123456789abcdef")),
		dash,
		nopEvents{},
		zerolog.Nop(),
	)
}

func TestFilterStoreSessionRoundTrip(t *testing.T) {
	svr := newServer(t, "dev")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	sess := svr.Session(req)
	assert.Equal(t, candidate.DefaultFilterState(), svr.FilterStore(sess).State())

	want := candidate.FilterState{
		AgeRange:      [2]int{25, 40},
		Gender:        "female",
		HasChildren:   true,
		ChildrenCount: candidate.ChildrenCountFourOrMore,
		Location:      "São",
		HasExperience: true,
		InterestArea:  "tecnologia",
	}
	svr.SaveFilters(sess, want)
	svr.SetSearchTerm(sess, "ana")
	rec := httptest.NewRecorder()
	svr.SaveSession(rec, req, sess)

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		next.AddCookie(c)
	}
	restored := svr.Session(next)
	assert.Equal(t, want, svr.FilterStore(restored).State())
	assert.Equal(t, "ana", svr.SearchTerm(restored))
}

func TestSessionWithUndecodableCookie(t *testing.T) {
	svr := newServer(t, "dev")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: sessionName, Value: "garbage"})
	sess := svr.Session(req)
	require.NotNil(t, sess)
	assert.Equal(t, candidate.DefaultFilterState(), svr.FilterStore(sess).State())
	assert.Empty(t, svr.SearchTerm(sess))
}

func TestSessionCookieOptions(t *testing.T) {
	assert.False(t, newServer(t, "dev").SessionStore.Options.Secure)
	prod := newServer(t, "prod")
	assert.True(t, prod.SessionStore.Options.Secure)
	assert.True(t, prod.SessionStore.Options.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, prod.SessionStore.Options.SameSite)
}

func TestAddr(t *testing.T) {
	assert.Equal(t, "localhost:8080", newServer(t, "dev").Addr())
	assert.Equal(t, ":8080", newServer(t, "prod").Addr())
}

func TestJSON(t *testing.T) {
	svr := newServer(t, "dev")
	rec := httptest.NewRecorder()
	svr.JSON(rec, http.StatusCreated, map[string]int{"count": 3})
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"count":3}`, rec.Body.String())
}
