package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/dailysutra/core/progress"
	"github.com/trezcool/dailysutra/core/subscription"
	"github.com/trezcool/dailysutra/core/user"
)

const (
	DefaultAPIURL  = "http://localhost:8000"
	requestTimeout = 15 * time.Second
)

var ErrNotAuthenticated = errors.New("not signed in")

// APIError is a non-2xx response of the API.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Code, e.Message)
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, code int) bool {
	apiErr, ok := errors.Cause(err).(*APIError)
	return ok && apiErr.Code == code
}

type Me struct {
	User         user.User         `json:"user"`
	Subscription subscription.View `json:"subscription"`
}

// API is an HTTP client of the Daily Sutra JSON API.
type API struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewAPI(baseURL, token string, httpClient *http.Client) *API {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: requestTimeout}
	}
	if baseURL == "" {
		baseURL = DefaultAPIURL
	}
	return &API{baseURL: strings.TrimSuffix(baseURL, "/"), token: token, http: httpClient}
}

func (api *API) Authenticated() bool { return api.token != "" }

// SetToken replaces the JWT sent with every request.
func (api *API) SetToken(token string) { api.token = token }

func (api *API) do(ctx context.Context, method, path string, body []byte, dst interface{}) error {
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, api.baseURL+path, r)
	if err != nil {
		return errors.Wrap(err, "creating request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if api.token != "" {
		req.Header.Set("Authorization", "Bearer "+api.token)
	}

	resp, err := api.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "reading response")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Code: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var msg struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &msg) == nil && msg.Error != "" {
			apiErr.Message = msg.Error
		}
		return apiErr
	}

	switch dst := dst.(type) {
	case nil:
		return nil
	case *string:
		*dst = string(data)
		return nil
	default:
		return errors.Wrap(json.Unmarshal(data, dst), "decoding response")
	}
}

func (api *API) authed(ctx context.Context, method, path string, body []byte, dst interface{}) error {
	if !api.Authenticated() {
		return ErrNotAuthenticated
	}
	return api.do(ctx, method, path, body, dst)
}

// Login exchanges credentials for a JWT, and keeps it for the following requests.
func (api *API) Login(ctx context.Context, email, pwd string) (string, error) {
	body, _ := json.Marshal(map[string]string{"email": email, "password": pwd})
	var resp struct {
		Token string `json:"token"`
	}
	if err := api.do(ctx, http.MethodPost, "/v1/users/login", body, &resp); err != nil {
		return "", err
	}
	api.token = resp.Token
	return resp.Token, nil
}

func (api *API) Me(ctx context.Context) (Me, error) {
	var me Me
	err := api.authed(ctx, http.MethodGet, "/v1/users/me", nil, &me)
	return me, err
}

// Journey returns the remote journey; found is false when none was stored yet.
func (api *API) Journey(ctx context.Context) (state progress.State, found bool, err error) {
	if err = api.authed(ctx, http.MethodGet, "/v1/journey", nil, &state); err != nil {
		if IsStatus(err, http.StatusNotFound) {
			return progress.State{}, false, nil
		}
		return progress.State{}, false, err
	}
	return state.Clone(), true, nil
}

// MergeJourney upserts the state into the remote journey, per day & per week.
func (api *API) MergeJourney(ctx context.Context, state progress.State) (progress.State, error) {
	body, err := json.Marshal(state.Clone())
	if err != nil {
		return progress.State{}, errors.Wrap(err, "marshalling journey")
	}
	var merged progress.State
	err = api.authed(ctx, http.MethodPut, "/v1/journey", body, &merged)
	return merged, err
}

// ReplaceJourney overwrites the remote journey.
func (api *API) ReplaceJourney(ctx context.Context, state progress.State) (progress.State, error) {
	body, err := progress.Export(state)
	if err != nil {
		return progress.State{}, err
	}
	var replaced progress.State
	err = api.authed(ctx, http.MethodPost, "/v1/journey/import", body, &replaced)
	return replaced, err
}

// Checkout starts a checkout session and returns the URL to pay at.
func (api *API) Checkout(ctx context.Context) (string, error) {
	var resp struct {
		URL string `json:"url"`
	}
	err := api.authed(ctx, http.MethodPost, "/v1/billing/checkout", []byte(`{}`), &resp)
	return resp.URL, err
}
