package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-cafe/candidate-portal/internal/candidate"
	"github.com/golang-cafe/candidate-portal/internal/notification"
	"github.com/golang-cafe/candidate-portal/internal/server"
	"github.com/gorilla/mux"
)

// Featured is the interview shown in the video panel.
type Featured struct {
	Title       string
	Date        string
	VideoURL    string
	CurrentTime string
	TotalTime   string
}

type candidatesResponse struct {
	Candidates []candidate.Candidate `json:"candidates"`
	Count      int                   `json:"count"`
	Filters    candidate.FilterState `json:"filters"`
	Search     string                `json:"search"`
	Loading    bool                  `json:"loading"`
	Version    uint64                `json:"version"`
	FetchedAt  *time.Time            `json:"fetchedAt,omitempty"`
	Error      string                `json:"error,omitempty"`
}

func IndexPageHandler(svr server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := svr.Session(r)
		filters := svr.FilterStore(sess).State()
		search := svr.SearchTerm(sess)
		notes := notification.Drain(sess)
		svr.SaveSession(w, r, sess)

		snap := svr.Dashboard.Snapshot()
		candidates := svr.Dashboard.Filtered(filters, search)
		err := svr.Render(w, http.StatusOK, "index.html", map[string]interface{}{
			"Candidates":           candidates,
			"Count":                len(candidates),
			"Filters":              filters,
			"SearchTerm":           search,
			"Notifications":        notes,
			"Loading":              snap.Loading,
			"FetchError":           snap.Err != nil,
			"HasFetched":           !snap.FetchedAt.IsZero(),
			"FetchedAt":            snap.FetchedAt,
			"Featured":             featured(candidates),
			"GenderOptions":        candidate.GenderOptions,
			"ChildrenCountOptions": candidate.ChildrenCountOptions,
			"InterestAreaOptions":  candidate.InterestAreaOptions,
		})
		if err != nil {
			svr.Log(err, "unable to render dashboard page")
		}
	}
}

// CandidatesAPIHandler returns the filtered list as JSON. Filter fields and
// q given in the query string take precedence over the session.
func CandidatesAPIHandler(svr server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := svr.Session(r)
		query := r.URL.Query()
		store := svr.FilterStore(sess)
		filters := store.Update(candidate.ParseFilterPatch(query))
		search := svr.SearchTerm(sess)
		if q, ok := query["q"]; ok && len(q) > 0 {
			search = q[len(q)-1]
		}

		snap := svr.Dashboard.Snapshot()
		candidates := svr.Dashboard.Filtered(filters, search)
		res := candidatesResponse{
			Candidates: candidates,
			Count:      len(candidates),
			Filters:    filters,
			Search:     search,
			Loading:    snap.Loading,
			Version:    snap.Version,
		}
		if !snap.FetchedAt.IsZero() {
			res.FetchedAt = &snap.FetchedAt
		}
		if snap.Err != nil {
			res.Error = snap.Err.Error()
		}
		svr.JSON(w, http.StatusOK, res)
	}
}

func UpdateFiltersHandler(svr server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			svr.JSON(w, http.StatusBadRequest, "request is invalid")
			return
		}
		sess := svr.Session(r)
		store := svr.FilterStore(sess)
		store.OnChange(func(f candidate.FilterState) {
			svr.SaveFilters(sess, f)
		})
		state := store.Update(candidate.ParseFilterPatch(r.PostForm))
		svr.SaveSession(w, r, sess)
		respond(svr, w, r, state)
	}
}

func ResetFiltersHandler(svr server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := svr.Session(r)
		store := svr.FilterStore(sess)
		store.OnChange(func(f candidate.FilterState) {
			svr.SaveFilters(sess, f)
		})
		state := store.Reset()
		svr.SaveSession(w, r, sess)
		respond(svr, w, r, state)
	}
}

func SearchHandler(svr server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			svr.JSON(w, http.StatusBadRequest, "request is invalid")
			return
		}
		sess := svr.Session(r)
		term := r.PostForm.Get("q")
		svr.SetSearchTerm(sess, term)
		svr.SaveSession(w, r, sess)
		respond(svr, w, r, map[string]string{"search": term})
	}
}

func ViewProfileHandler(svr server.Server) http.HandlerFunc {
	return candidateAction(svr, "candidate profile viewed", notification.ProfileViewed)
}

func ScheduleInterviewHandler(svr server.Server) http.HandlerFunc {
	return candidateAction(svr, "candidate interview scheduled", notification.InterviewScheduled)
}

// candidateAction only raises a notification: recruiter actions have no
// network side effect and do not change the candidate.
func candidateAction(svr server.Server, event string, build func(name string) notification.Notification) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		c, ok := svr.Dashboard.Candidate(id)
		if !ok {
			svr.JSON(w, http.StatusNotFound, "candidate not found")
			return
		}
		sess := svr.Session(r)
		n := build(c.Name)
		notification.NewSessionNotifier(sess).Notify(n)
		svr.SaveSession(w, r, sess)
		logger := svr.Logger()
		logger.Info().Str("candidate", c.ID).Str("notification", n.ID).Msg(event)
		if wantsJSON(r) {
			svr.JSON(w, http.StatusOK, n)
			return
		}
		svr.Redirect(w, r, http.StatusSeeOther, "/#candidate-"+c.ID)
	}
}

func RefreshCandidatesHandler(svr server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := svr.Session(r)
		svr.Events.Info("candidates refresh requested", nil)
		err := svr.Dashboard.Load(r.Context(), notification.NewSessionNotifier(sess))
		if err != nil {
			svr.Log(err, "unable to refresh candidates")
		}
		svr.SaveSession(w, r, sess)
		if wantsJSON(r) {
			status := http.StatusOK
			if err != nil {
				status = http.StatusBadGateway
			}
			svr.JSON(w, status, map[string]interface{}{"count": len(svr.Dashboard.Snapshot().Candidates)})
			return
		}
		svr.Redirect(w, r, http.StatusSeeOther, "/")
	}
}

func HealthHandler(svr server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svr.JSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	}
}

func respond(svr server.Server, w http.ResponseWriter, r *http.Request, data interface{}) {
	if wantsJSON(r) {
		svr.JSON(w, http.StatusOK, data)
		return
	}
	svr.Redirect(w, r, http.StatusSeeOther, "/")
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func featured(candidates []candidate.Candidate) Featured {
	f := Featured{
		Title:       "Entrevista em Andamento",
		CurrentTime: "02:34",
		TotalTime:   "15:42",
	}
	for _, c := range candidates {
		if c.VideoURL != "" {
			f.Title = c.Name + " - Entrevista Técnica"
			f.VideoURL = c.VideoURL
			break
		}
	}
	return f
}
