package http

import (
	"encoding/json"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/require"

	"mergingtonactivities/internal/delivery/http/controllers"
	"mergingtonactivities/internal/delivery/http/helpers"
	"mergingtonactivities/internal/domain"
	"mergingtonactivities/internal/metrics"
	"mergingtonactivities/internal/repository/memory"
	"mergingtonactivities/internal/seed"
	"mergingtonactivities/internal/services"
	"mergingtonactivities/web"
)

// newTestServer wires the full stack on a fresh seed so each test starts from
// the initial activity table.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

	activities, err := seed.Default()
	require.NoError(t, err)
	repo, err := memory.NewActivityRepository(activities)
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	rec := metrics.New(reg)
	svc := services.NewActivityService(repo, nil, rec, logger, services.ActivityServiceOptions{})
	ctrl := controllers.NewActivityController(logger, svc)

	static, err := fs.Sub(web.Assets, "static")
	require.NoError(t, err)

	mux := NewRouter(ctrl, static, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := httptest.NewServer(Chain(mux, logger, []string{"*"}, rec))
	t.Cleanup(srv.Close)
	return srv
}

func rosterURL(srv *httptest.Server, activity, action, email string) string {
	return srv.URL + "/activities/" + url.PathEscape(activity) + "/" + action + "?email=" + url.QueryEscape(email)
}

func do(t *testing.T, method, target string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, target, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func listActivities(t *testing.T, srv *httptest.Server) map[string]domain.Activity {
	t.Helper()
	resp := do(t, http.MethodGet, srv.URL+"/activities")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out map[string]domain.Activity
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func decodeMessage(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body helpers.MessageResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.Message
}

func decodeDetail(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body helpers.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return strings.ToLower(body.Detail)
}

func TestGetActivities(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodGet, srv.URL+"/activities")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var raw map[string]map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	for _, name := range []string{"Chess Club", "Programming Class", "Gym Class"} {
		require.Contains(t, raw, name)
	}
	chess := raw["Chess Club"]
	for _, field := range []string{"description", "schedule", "max_participants", "participants"} {
		require.Contains(t, chess, field)
	}
	require.IsType(t, []any{}, chess["participants"])
}

func TestGetRootRedirectsToStatic(t *testing.T) {
	srv := newTestServer(t)
	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error { return http.ErrUseLastResponse },
	}

	resp, err := client.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode)
	require.Equal(t, "/static/index.html", resp.Header.Get("Location"))
}

func TestStaticFiles(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodGet, srv.URL+"/static/index.html")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "Mergington High School")

	require.Equal(t, http.StatusOK, do(t, http.MethodGet, srv.URL+"/static/app.js").StatusCode)
	require.Equal(t, http.StatusNotFound, do(t, http.MethodGet, srv.URL+"/static/missing.js").StatusCode)
	require.Equal(t, http.StatusNotFound, do(t, http.MethodGet, srv.URL+"/static/").StatusCode)
}

func TestSignupSuccess(t *testing.T) {
	srv := newTestServer(t)
	email := "newstudent@mergington.edu"

	resp := do(t, http.MethodPost, rosterURL(srv, "Chess Club", "signup", email))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Signed up "+email+" for Chess Club", decodeMessage(t, resp))

	require.Contains(t, listActivities(t, srv)["Chess Club"].Participants, email)
}

func TestSignupDuplicateParticipant(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodPost, rosterURL(srv, "Chess Club", "signup", "michael@mergington.edu"))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Contains(t, decodeDetail(t, resp), "already signed up")
}

func TestSignupNonexistentActivity(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodPost, rosterURL(srv, "Nonexistent Club", "signup", "student@mergington.edu"))
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Contains(t, decodeDetail(t, resp), "not found")
}

func TestSignupMissingEmail(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/activities/"+url.PathEscape("Chess Club")+"/signup")
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestSignupMultipleActivities(t *testing.T) {
	srv := newTestServer(t)
	email := "multistudent@mergington.edu"

	require.Equal(t, http.StatusOK, do(t, http.MethodPost, rosterURL(srv, "Chess Club", "signup", email)).StatusCode)
	require.Equal(t, http.StatusOK, do(t, http.MethodPost, rosterURL(srv, "Programming Class", "signup", email)).StatusCode)

	data := listActivities(t, srv)
	require.Contains(t, data["Chess Club"].Participants, email)
	require.Contains(t, data["Programming Class"].Participants, email)
}

func TestUnregisterSuccess(t *testing.T) {
	srv := newTestServer(t)
	email := "michael@mergington.edu"

	resp := do(t, http.MethodDelete, rosterURL(srv, "Chess Club", "unregister", email))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Unregistered "+email+" from Chess Club", decodeMessage(t, resp))

	require.NotContains(t, listActivities(t, srv)["Chess Club"].Participants, email)
}

func TestUnregisterNotRegistered(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodDelete, rosterURL(srv, "Chess Club", "unregister", "notregistered@mergington.edu"))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Contains(t, decodeDetail(t, resp), "not registered")
}

func TestUnregisterNonexistentActivity(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodDelete, rosterURL(srv, "Nonexistent Club", "unregister", "student@mergington.edu"))
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Contains(t, decodeDetail(t, resp), "not found")
}

func TestSignupThenUnregisterWorkflow(t *testing.T) {
	srv := newTestServer(t)
	email := "workflow@mergington.edu"
	activity := "Programming Class"

	require.Equal(t, http.StatusOK, do(t, http.MethodPost, rosterURL(srv, activity, "signup", email)).StatusCode)
	require.Contains(t, listActivities(t, srv)[activity].Participants, email)

	require.Equal(t, http.StatusOK, do(t, http.MethodDelete, rosterURL(srv, activity, "unregister", email)).StatusCode)
	require.NotContains(t, listActivities(t, srv)[activity].Participants, email)
}

func TestParticipantCountTracking(t *testing.T) {
	srv := newTestServer(t)

	chess := listActivities(t, srv)["Chess Club"]
	require.Len(t, chess.Participants, 2)
	require.Equal(t, 12, chess.MaxParticipants)

	email := "newchess@mergington.edu"
	do(t, http.MethodPost, rosterURL(srv, "Chess Club", "signup", email))

	chess = listActivities(t, srv)["Chess Club"]
	require.Len(t, chess.Participants, 3)
	require.Contains(t, chess.Participants, email)
}

func TestActivityDataIntegrity(t *testing.T) {
	srv := newTestServer(t)
	initial := listActivities(t, srv)

	do(t, http.MethodPost, rosterURL(srv, "Chess Club", "signup", "test1@mergington.edu"))
	do(t, http.MethodPost, rosterURL(srv, "Programming Class", "signup", "test2@mergington.edu"))
	do(t, http.MethodDelete, rosterURL(srv, "Chess Club", "unregister", "michael@mergington.edu"))

	final := listActivities(t, srv)
	require.Len(t, final, len(initial))
	for name, before := range initial {
		after := final[name]
		require.Equal(t, before.Description, after.Description, name)
		require.Equal(t, before.Schedule, after.Schedule, name)
		require.Equal(t, before.MaxParticipants, after.MaxParticipants, name)
	}
}

func TestGetSingleActivity(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodGet, srv.URL+"/activities/"+url.PathEscape("Gym Class"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var gym domain.Activity
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&gym))
	require.Equal(t, 30, gym.MaxParticipants)

	require.Equal(t, http.StatusNotFound, do(t, http.MethodGet, srv.URL+"/activities/Nope").StatusCode)
}

func TestOperationalEndpoints(t *testing.T) {
	srv := newTestServer(t)

	health := do(t, http.MethodGet, srv.URL+"/health")
	require.Equal(t, http.StatusOK, health.StatusCode)
	require.NotEmpty(t, health.Header.Get("X-Request-ID"))

	do(t, http.MethodPost, rosterURL(srv, "Chess Club", "signup", "metrics@mergington.edu"))

	resp := do(t, http.MethodGet, srv.URL+"/metrics")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), `activity_signups_total{activity="Chess Club"} 1`)
	require.Contains(t, string(body), `route="POST /activities/{name}/signup"`)
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodGet, rosterURL(srv, "Chess Club", "signup", "a@mergington.edu"))
	require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
