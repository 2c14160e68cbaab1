// Package remote implements the fund ports against the documented REST
// backend. Every page load fetches fresh data; nothing is cached here.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"sportsfund/internal/core"
	"sportsfund/internal/fund"
)

// APIError carries the backend's error body for a non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend returned status %d", e.StatusCode)
}

// Client talks to the fund backend over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

var _ fund.Store = (*Client)(nil)

// New creates a client for the backend rooted at baseURL
// (e.g. http://localhost:5000/api).
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// decodeError extracts the backend's {"error": "..."} body when present.
func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		if body.Error != "" {
			apiErr.Message = body.Error
		} else if body.Message != "" {
			apiErr.Message = body.Message
		}
	}
	return apiErr
}

// Login implements fund.Authenticator.
func (c *Client) Login(ctx context.Context, phoneNumber string) (core.Session, error) {
	payload := map[string]string{"phone_number": phoneNumber}
	var sess core.Session
	if err := c.do(ctx, http.MethodPost, "/login", nil, payload, &sess); err != nil {
		return core.Session{}, err
	}
	return sess, nil
}

// ListUsers implements fund.UserStore.
func (c *Client) ListUsers(ctx context.Context) ([]core.User, error) {
	var users []core.User
	if err := c.do(ctx, http.MethodGet, "/users", nil, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser implements fund.UserStore.
func (c *Client) CreateUser(ctx context.Context, u core.User) (core.User, error) {
	var created core.User
	if err := c.do(ctx, http.MethodPost, "/users", nil, u, &created); err != nil {
		return core.User{}, err
	}
	return created, nil
}

// UpdateUser implements fund.UserStore.
func (c *Client) UpdateUser(ctx context.Context, id int64, u core.User) (core.User, error) {
	var updated core.User
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/users/%d", id), nil, u, &updated); err != nil {
		return core.User{}, err
	}
	return updated, nil
}

// DeleteUser implements fund.UserStore.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), nil, nil, nil)
}

// ListContributions implements fund.ContributionStore. Empty filter fields
// are left out of the query string entirely.
func (c *Client) ListContributions(ctx context.Context, f fund.ContributionFilter) ([]core.Contribution, error) {
	query := url.Values{}
	if f.UserID != "" {
		query.Set("user_id", f.UserID)
	}
	if f.Month != "" {
		query.Set("month", f.Month)
	}

	var contributions []core.Contribution
	if err := c.do(ctx, http.MethodGet, "/contributions", query, nil, &contributions); err != nil {
		return nil, err
	}
	return contributions, nil
}

// CreateContribution implements fund.ContributionStore.
func (c *Client) CreateContribution(ctx context.Context, contribution core.Contribution) (core.Contribution, error) {
	var created core.Contribution
	if err := c.do(ctx, http.MethodPost, "/contributions", nil, contribution, &created); err != nil {
		return core.Contribution{}, err
	}
	return created, nil
}

// UpdateContribution implements fund.ContributionStore.
func (c *Client) UpdateContribution(ctx context.Context, id int64, contribution core.Contribution) (core.Contribution, error) {
	var updated core.Contribution
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/contributions/%d", id), nil, contribution, &updated); err != nil {
		return core.Contribution{}, err
	}
	return updated, nil
}

// DeleteContribution implements fund.ContributionStore.
func (c *Client) DeleteContribution(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/contributions/%d", id), nil, nil, nil)
}

// ListExpenses implements fund.ExpenseStore.
func (c *Client) ListExpenses(ctx context.Context, f fund.ExpenseFilter) ([]core.Expense, error) {
	query := url.Values{}
	if f.Month != "" {
		query.Set("month", f.Month)
	}

	var expenses []core.Expense
	if err := c.do(ctx, http.MethodGet, "/expenses", query, nil, &expenses); err != nil {
		return nil, err
	}
	return expenses, nil
}

// CreateExpense implements fund.ExpenseStore.
func (c *Client) CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	var created core.Expense
	if err := c.do(ctx, http.MethodPost, "/expenses", nil, e, &created); err != nil {
		return core.Expense{}, err
	}
	return created, nil
}

// UpdateExpense implements fund.ExpenseStore.
func (c *Client) UpdateExpense(ctx context.Context, id int64, e core.Expense) (core.Expense, error) {
	var updated core.Expense
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/expenses/%d", id), nil, e, &updated); err != nil {
		return core.Expense{}, err
	}
	return updated, nil
}

// DeleteExpense implements fund.ExpenseStore.
func (c *Client) DeleteExpense(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/expenses/%d", id), nil, nil, nil)
}

// ExportCSV implements fund.Exporter by streaming the backend's export
// endpoint straight through without parsing it.
func (c *Client) ExportCSV(ctx context.Context, resource string, w io.Writer) error {
	if !fund.ValidResource(resource) {
		return fmt.Errorf("export resource %q: %w", resource, fund.ErrNotFound)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/export/"+resource, nil)
	if err != nil {
		return fmt.Errorf("build export request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET /export/%s: %w", resource, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("stream export: %w", err)
	}
	return nil
}
