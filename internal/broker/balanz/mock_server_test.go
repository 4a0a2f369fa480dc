package balanz

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// testCreds are the fixed credentials used by the mock broker tests.
var testCreds = Credentials{
	Username:  "jdoe",
	Password:  "hunter2",
	AccountID: "12345",
}

// mockBroker simulates the Balanz auth and data endpoints.
type mockBroker struct {
	t   *testing.T
	srv *httptest.Server

	nonce       string
	token       string
	initStatus  int
	loginStatus int

	initCalls  int
	loginCalls int
	dataCalls  int

	lastInitBody  initRequest
	lastLoginBody loginRequest

	// data serves everything that is not an auth endpoint.
	data http.HandlerFunc
}

func newMockBroker(t *testing.T) *mockBroker {
	t.Helper()

	m := &mockBroker{
		t:           t,
		nonce:       "test-nonce-123",
		token:       "test-access-token",
		initStatus:  http.StatusOK,
		loginStatus: http.StatusOK,
		data: func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		},
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/auth/init", func(w http.ResponseWriter, r *http.Request) {
		m.initCalls++
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if r.URL.Query().Get("avoidAuthRedirect") != "true" {
			t.Error("auth/init missing avoidAuthRedirect=true query flag")
		}
		json.NewDecoder(r.Body).Decode(&m.lastInitBody)
		if m.initStatus != http.StatusOK {
			w.WriteHeader(m.initStatus)
			w.Write([]byte(`{"error":"init rejected"}`))
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"nonce": m.nonce})
	})

	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		m.loginCalls++
		json.NewDecoder(r.Body).Decode(&m.lastLoginBody)
		if m.loginStatus != http.StatusOK {
			w.WriteHeader(m.loginStatus)
			w.Write([]byte(`{"error":"bad credentials"}`))
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"AccessToken": m.token})
	})

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		m.dataCalls++
		m.data(w, r)
	})

	m.srv = httptest.NewServer(mux)
	t.Cleanup(m.srv.Close)

	return m
}

// client builds a client pointed at the mock broker.
func (m *mockBroker) client(cache *TokenCache) *Client {
	c := NewClient(testCreds, cache)
	c.SetBaseURL(m.srv.URL)
	return c
}
