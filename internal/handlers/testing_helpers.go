package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/socialcircles/circles-web/internal/api"
)

// NewTestContext creates a new Echo context for testing
func NewTestContext(method, path string, body interface{}) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()

	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath(path)

	return c, rec
}

// FakeResponse is a canned answer from FakeAPI
type FakeResponse struct {
	Status int
	Body   any
}

// FakeAPI stands in for the community API in tests. Unset endpoints answer
// 404.
type FakeAPI struct {
	Server *httptest.Server

	mu        sync.Mutex
	responses map[string]FakeResponse
	calls     map[string]int
	bodies    map[string][]byte
	cookies   map[string][]*http.Cookie
}

func NewFakeAPI() *FakeAPI {
	f := &FakeAPI{
		responses: make(map[string]FakeResponse),
		calls:     make(map[string]int),
		bodies:    make(map[string][]byte),
		cookies:   make(map[string][]*http.Cookie),
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	return f
}

func (f *FakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r.Body)

	f.mu.Lock()
	f.calls[r.URL.Path]++
	f.bodies[r.URL.Path] = buf.Bytes()
	f.cookies[r.URL.Path] = r.Cookies()
	resp, ok := f.responses[r.URL.Path]
	f.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}

	if r.URL.Path == "/extend-session" && resp.Status < 300 {
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "renewed", Path: "/"})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)
	if resp.Body != nil {
		_ = json.NewEncoder(w).Encode(resp.Body)
	}
}

// On sets the answer for a path
func (f *FakeAPI) On(path string, status int, body any) *FakeAPI {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[path] = FakeResponse{Status: status, Body: body}
	return f
}

// SignedIn answers /authenticate as a signed-in member or admin
func (f *FakeAPI) SignedIn(isAdmin bool) *FakeAPI {
	return f.On("/authenticate", http.StatusOK, map[string]any{"status": "auth", "is_admin": isAdmin})
}

// SignedOut answers /authenticate with 401
func (f *FakeAPI) SignedOut() *FakeAPI {
	return f.On("/authenticate", http.StatusUnauthorized, map[string]any{"status": "not auth"})
}

func (f *FakeAPI) Calls(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[path]
}

// LastBody returns the last request body sent to path
func (f *FakeAPI) LastBody(path string) []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bodies[path]
}

// LastCookies returns the cookies forwarded with the last call to path
func (f *FakeAPI) LastCookies(path string) []*http.Cookie {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cookies[path]
}

func (f *FakeAPI) Client() *api.Client {
	return api.NewClient(f.Server.URL, 2*time.Second)
}

func (f *FakeAPI) Close() {
	f.Server.Close()
}

// AssertJSONResponse checks if the response is valid JSON and returns the parsed body
func AssertJSONResponse(rec *httptest.ResponseRecorder) (map[string]interface{}, error) {
	var body map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		return nil, err
	}
	return body, nil
}
