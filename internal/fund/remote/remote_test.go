package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"sportsfund/internal/core"
	"sportsfund/internal/fund"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	method string
	path   string
	query  string
	body   []byte
}

// fakeBackend records the last request and replies with a canned response.
func fakeBackend(t *testing.T, status int, response string) (*Client, *recorded) {
	t.Helper()
	rec := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.query = r.URL.RawQuery
		rec.body, _ = io.ReadAll(r.Body)
		w.WriteHeader(status)
		w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)
	return New(srv.URL+"/api", srv.Client()), rec
}

func TestLogin(t *testing.T) {
	client, rec := fakeBackend(t, http.StatusOK, `{"user_id":3,"name":"Priya","role":"admin"}`)

	sess, err := client.Login(context.Background(), "9000000001")
	require.NoError(t, err)
	assert.Equal(t, core.Session{UserID: 3, Name: "Priya", Role: core.RoleAdmin}, sess)

	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/api/login", rec.path)
	assert.JSONEq(t, `{"phone_number":"9000000001"}`, string(rec.body))
}

func TestLoginErrorBody(t *testing.T) {
	client, _ := fakeBackend(t, http.StatusUnauthorized, `{"error":"Invalid phone number"}`)

	_, err := client.Login(context.Background(), "0000000000")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Invalid phone number", apiErr.Error())
}

func TestListContributionsQuery(t *testing.T) {
	client, rec := fakeBackend(t, http.StatusOK, `[]`)
	ctx := context.Background()

	_, err := client.ListContributions(ctx, fund.ContributionFilter{UserID: "2", Month: "February"})
	require.NoError(t, err)
	assert.Equal(t, "/api/contributions", rec.path)
	assert.Equal(t, "month=February&user_id=2", rec.query)

	_, err = client.ListContributions(ctx, fund.ContributionFilter{Month: "February"})
	require.NoError(t, err)
	assert.Equal(t, "month=February", rec.query)

	_, err = client.ListContributions(ctx, fund.ContributionFilter{})
	require.NoError(t, err)
	assert.Empty(t, rec.query, "empty filters must not appear in the query string")
}

func TestListExpensesQuery(t *testing.T) {
	client, rec := fakeBackend(t, http.StatusOK, `[]`)

	_, err := client.ListExpenses(context.Background(), fund.ExpenseFilter{Month: "March"})
	require.NoError(t, err)
	assert.Equal(t, "/api/expenses", rec.path)
	assert.Equal(t, "month=March", rec.query)
}

func TestMutationMethodsAndPaths(t *testing.T) {
	client, rec := fakeBackend(t, http.StatusOK, `{}`)
	ctx := context.Background()

	_, err := client.CreateUser(ctx, core.User{Name: "Anita", Phone: "9000000003"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/api/users", rec.path)

	var sent core.User
	require.NoError(t, json.Unmarshal(rec.body, &sent))
	assert.Equal(t, "Anita", sent.Name)

	_, err = client.UpdateContribution(ctx, 7, core.Contribution{UserID: 2, Amount: 500, Date: "2026-02-01", Month: "February"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, rec.method)
	assert.Equal(t, "/api/contributions/7", rec.path)

	require.NoError(t, client.DeleteExpense(ctx, 9))
	assert.Equal(t, http.MethodDelete, rec.method)
	assert.Equal(t, "/api/expenses/9", rec.path)
}

func TestAmountAcceptsQuotedNumbers(t *testing.T) {
	client, _ := fakeBackend(t, http.StatusOK, `[{"contribution_id":1,"user_id":2,"amount":"350.5","date":"2026-02-03","month":"February"}]`)

	contributions, err := client.ListContributions(context.Background(), fund.ContributionFilter{})
	require.NoError(t, err)
	require.Len(t, contributions, 1)
	assert.InDelta(t, 350.5, contributions[0].Amount.Float64(), 0.001)
}

func TestNon2xxWithoutBody(t *testing.T) {
	client, _ := fakeBackend(t, http.StatusInternalServerError, ``)

	_, err := client.ListUsers(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Contains(t, apiErr.Error(), "500")
}

func TestExportCSVStreams(t *testing.T) {
	client, rec := fakeBackend(t, http.StatusOK, "user_id,name\n1,Priya\n")

	var buf bytes.Buffer
	require.NoError(t, client.ExportCSV(context.Background(), fund.ResourceUsers, &buf))
	assert.Equal(t, "/api/export/users", rec.path)
	assert.Equal(t, "user_id,name\n1,Priya\n", buf.String())

	assert.Error(t, client.ExportCSV(context.Background(), "budgets", &buf))
}
