package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	. "github.com/trezcool/dailysutra/apps/api/echo"
	"github.com/trezcool/dailysutra/core"
	"github.com/trezcool/dailysutra/core/user"
	"github.com/trezcool/dailysutra/tests"
)

const (
	pwd      = "Dh4rana#Flow"
	otherPwd = "Sv4dhyaya!Path"
)

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

type env struct {
	server *Server
	auth   *Authenticator
	svcs   *testutil.Services
}

func setup(t *testing.T, invalidPushTokens ...string) *env {
	t.Helper()
	svcs := testutil.NewServices(t, invalidPushTokens...)

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	user.LoadCommonPasswords(svcs.Logger)

	server := NewServer(ServerDeps{
		Conf:            svcs.Conf,
		Logger:          svcs.Logger,
		Validate:        validate,
		Translator:      translator,
		UserSvc:         svcs.Users,
		SubscriptionSvc: svcs.Subscriptions,
		JourneySvc:      svcs.Journeys,
		ContentSvc:      svcs.Content,
		BillingSvc:      svcs.Billing,
		NotificationSvc: svcs.Notifications,
		AccountSvc:      svcs.Accounts,
	})
	t.Cleanup(func() { _ = server.Close() })

	return &env{server: server, auth: NewAuthenticator(svcs.Conf), svcs: svcs}
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

// createUser creates an active user; verified users get their trial started.
func (e *env) createUser(t *testing.T, name, email string, verified bool) user.User {
	t.Helper()
	usr := testutil.CreateUser(t, e.svcs.UserRepo, name, email, pwd, verified)
	if verified {
		if _, err := e.svcs.Subscriptions.StartTrial(t.Context(), usr.ID); err != nil {
			t.Fatalf("createUser() failed: %v", err)
		}
	}
	return usr
}

func (e *env) token(t *testing.T, usr user.User) string {
	t.Helper()
	token, err := e.auth.GenerateToken(e.auth.UserClaims(usr))
	if err != nil {
		t.Fatalf("token() failed: %v", err)
	}
	return token
}

func (e *env) serve(tt httpTest) *httptest.ResponseRecorder {
	req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
	e.server.ServeHTTP(rec, req)
	return rec
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func unmarchallObj(t *testing.T, data []byte, obj interface{}) {
	if err := json.Unmarshal(data, obj); err != nil {
		t.Fatalf("unmarchallObj() failed: %v; data %s", err, data)
	}
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if _, ok := j1.([]interface{}); !ok {
		return false, nil
	}
	if _, ok := j2.([]interface{}); !ok {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
