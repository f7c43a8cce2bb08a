package handlers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"megaexe/handlers"
	"megaexe/routes"
	"megaexe/session"
	"megaexe/store"
	"megaexe/upload"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// env wires the full router against in-memory stores, so tests exercise the
// same routing, gate and handler code the server runs.
type env struct {
	users    *store.MemoryUserStore
	posts    *store.MemoryPostStore
	sessions *session.MemoryStore
	router   *gin.Engine
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	u := store.NewMemoryUserStore()
	p := store.NewMemoryPostStore()
	s := session.NewMemoryStore()
	receiver, err := upload.NewReceiver(t.TempDir())
	require.NoError(t, err)

	handlers.Setup(u, p, s, receiver)
	return &env{users: u, posts: p, sessions: s, router: routes.SetupRouter(s)}
}

func (e *env) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func jsonRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func (e *env) register(t *testing.T, first, last, email, password string) {
	t.Helper()
	w := e.do(jsonRequest(t, http.MethodPost, "/register", gin.H{
		"firstname":    first,
		"lastname":     last,
		"emailAddress": email,
		"password":     password,
	}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

// login returns the logged-in user's id and the session cookie.
func (e *env) login(t *testing.T, email, password string) (string, *http.Cookie) {
	t.Helper()
	w := e.do(jsonRequest(t, http.MethodPost, "/login", gin.H{
		"emailAddress": email,
		"password":     password,
	}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		UserID string `json:"userId"`
	}
	decode(t, w, &body)
	require.NotEmpty(t, body.UserID)

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == session.CookieName {
			return body.UserID, cookie
		}
	}
	t.Fatal("login response did not set a session cookie")
	return "", nil
}

func multipartRequest(t *testing.T, path string, fields map[string]string, fileField, fileName string, fileContent []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, mw.WriteField(key, value))
	}
	if fileField != "" {
		part, err := mw.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = part.Write(fileContent)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}
