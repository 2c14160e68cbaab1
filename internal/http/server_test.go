package http

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"sportsfund/internal/core"
	"sportsfund/internal/fund/memory"
	"sportsfund/internal/log"
	"sportsfund/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	store := memory.New()
	store.Seed(
		[]core.User{
			{Name: "Priya", Phone: "9000000001", Role: core.RoleAdmin},
			{Name: "Ravi", Phone: "9000000002", Role: core.RoleMember},
		},
		[]core.Contribution{
			{UserID: 1, Amount: 500, Date: "2026-01-05", Month: "January"},
			{UserID: 2, Amount: 350.50, Date: "2026-02-03", Month: "February"},
		},
		[]core.Expense{
			{Description: "Cricket balls", Amount: 450.25, Date: "2026-01-20", Month: "January", CreatedBy: 1},
		},
	)

	logger := log.New(log.Config{
		Handler: slog.NewTextHandler(io.Discard, nil),
	})
	log.SetDefault(logger)
	return NewServer("127.0.0.1:0", store, session.NewStore(false), logger)
}

func doRequest(srv *Server, method, target string, cookies []*http.Cookie, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, srv *Server, phone string) []*http.Cookie {
	t.Helper()
	rec := doRequest(srv, http.MethodPost, "/login", nil, url.Values{"phone_number": {phone}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func TestGuardRedirectsAnonymous(t *testing.T) {
	srv := newTestServer(t)

	for _, target := range []string{"/users", "/contributions", "/expenses", "/summary", "/export/users"} {
		rec := doRequest(srv, http.MethodGet, target, nil, nil)
		assert.Equal(t, http.StatusSeeOther, rec.Code, target)
		assert.Equal(t, "/login", rec.Header().Get("Location"), target)
	}
}

func TestIndexRedirects(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(srv, http.MethodGet, "/", nil, nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	admin := login(t, srv, "9000000001")
	rec = doRequest(srv, http.MethodGet, "/", admin, nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/contributions", rec.Header().Get("Location"))
}

func TestLoginSuccessSetsSession(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(srv, http.MethodPost, "/login", nil, url.Values{"phone_number": {"9000000001"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/contributions", rec.Header().Get("Location"))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, session.CookieName, cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)
}

func TestLoginFailureLeavesNoSession(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(srv, http.MethodPost, "/login", nil, url.Values{"phone_number": {"1112223334"}})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid phone number")
	assert.Empty(t, rec.Result().Cookies())

	// Submitted number stays in the form.
	assert.Contains(t, rec.Body.String(), `value="1112223334"`)
}

func TestLogoutClearsSession(t *testing.T) {
	srv := newTestServer(t)
	admin := login(t, srv, "9000000001")

	rec := doRequest(srv, http.MethodPost, "/logout", admin, nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestUsersPageRoleGatedControls(t *testing.T) {
	srv := newTestServer(t)

	admin := login(t, srv, "9000000001")
	rec := doRequest(srv, http.MethodGet, "/users", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Priya")
	assert.Contains(t, body, "Ravi")
	assert.Contains(t, body, "Add User")
	assert.Contains(t, body, "Delete")

	member := login(t, srv, "9000000002")
	rec = doRequest(srv, http.MethodGet, "/users", member, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body = rec.Body.String()
	assert.Contains(t, body, "Priya")
	assert.NotContains(t, body, "Add User")
	assert.NotContains(t, body, "Delete")
	assert.NotContains(t, body, "Export CSV")
}

func TestUsersTableShowsRowIndex(t *testing.T) {
	srv := newTestServer(t)
	admin := login(t, srv, "9000000001")

	rec := doRequest(srv, http.MethodGet, "/users", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// First column is positional, not the backend id.
	assert.Contains(t, rec.Body.String(), "<td>1</td>")
	assert.Contains(t, rec.Body.String(), "<td>2</td>")
}

func TestContributionsMonthFilter(t *testing.T) {
	srv := newTestServer(t)
	admin := login(t, srv, "9000000001")

	rec := doRequest(srv, http.MethodGet, "/contributions?month=February", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "₹350.50")
	assert.NotContains(t, body, "₹500.00")

	rec = doRequest(srv, http.MethodGet, "/contributions?user_id=1", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body = rec.Body.String()
	assert.Contains(t, body, "₹500.00")
	assert.NotContains(t, body, "₹350.50")
}

func TestContributionCreateAndRefetch(t *testing.T) {
	srv := newTestServer(t)
	admin := login(t, srv, "9000000001")

	rec := doRequest(srv, http.MethodPost, "/contributions", admin, url.Values{
		"user_id": {"2"},
		"amount":  {"275"},
		"date":    {"2026-03-02"},
		"month":   {"March"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/contributions", rec.Header().Get("Location"))

	rec = doRequest(srv, http.MethodGet, "/contributions", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "₹275.00")
}

func TestContributionCreateValidationKeepsInput(t *testing.T) {
	srv := newTestServer(t)
	admin := login(t, srv, "9000000001")

	rec := doRequest(srv, http.MethodPost, "/contributions", admin, url.Values{
		"user_id": {"2"},
		"amount":  {"abc"},
		"date":    {"2026-03-02"},
		"month":   {"March"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "class=\"error\"")
	assert.Contains(t, body, `value="2026-03-02"`)
	assert.Contains(t, body, `value="March"`)
}

func TestMemberMutationsForbidden(t *testing.T) {
	srv := newTestServer(t)
	member := login(t, srv, "9000000002")

	cases := []struct {
		method, target string
	}{
		{http.MethodPost, "/users"},
		{http.MethodPost, "/users/1/update"},
		{http.MethodPost, "/users/1/delete"},
		{http.MethodPost, "/contributions"},
		{http.MethodPost, "/contributions/1/delete"},
		{http.MethodPost, "/expenses"},
		{http.MethodPost, "/expenses/1/update"},
	}
	for _, tc := range cases {
		rec := doRequest(srv, tc.method, tc.target, member, url.Values{})
		assert.Equal(t, http.StatusForbidden, rec.Code, tc.target)
	}
}

func TestExpenseDeleteRemovesRow(t *testing.T) {
	srv := newTestServer(t)
	admin := login(t, srv, "9000000001")

	rec := doRequest(srv, http.MethodPost, "/expenses/1/delete", admin, url.Values{})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = doRequest(srv, http.MethodGet, "/expenses", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Cricket balls")
	assert.Contains(t, rec.Body.String(), "No expenses found")
}

func TestSummaryTotals(t *testing.T) {
	srv := newTestServer(t)
	member := login(t, srv, "9000000002")

	rec := doRequest(srv, http.MethodGet, "/summary", member, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "₹850.50") // collected
	assert.Contains(t, body, "₹450.25") // spent
	assert.Contains(t, body, "₹400.25") // balance

	rec = doRequest(srv, http.MethodGet, "/summary?month=January", member, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body = rec.Body.String()
	assert.Contains(t, body, "₹500.00")
	assert.Contains(t, body, "₹49.75")
}

func TestExportCSV(t *testing.T) {
	srv := newTestServer(t)
	admin := login(t, srv, "9000000001")

	rec := doRequest(srv, http.MethodGet, "/export/users", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="users.csv"`, rec.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "user_id,name,phone_number"))

	member := login(t, srv, "9000000002")
	rec = doRequest(srv, http.MethodGet, "/export/users", member, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(srv, http.MethodGet, "/export/budgets", admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEditDialogRendersForAdmin(t *testing.T) {
	srv := newTestServer(t)
	admin := login(t, srv, "9000000001")

	rec := doRequest(srv, http.MethodGet, "/contributions?edit=1", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Edit Contribution")
	assert.Contains(t, rec.Body.String(), `action="/contributions/1/update"`)

	member := login(t, srv, "9000000002")
	rec = doRequest(srv, http.MethodGet, "/contributions?edit=1", member, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Edit Contribution")
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(srv, http.MethodGet, "/healthz", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = doRequest(srv, http.MethodGet, "/readyz", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSecurityHeadersApplied(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(srv, http.MethodGet, "/login", nil, nil)
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rec.Header().Get("Content-Security-Policy"))
}
