package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/cvdesk/api/http/handlers"
	"github.com/artem13815/cvdesk/pkg/auth"
	"github.com/artem13815/cvdesk/pkg/chat"
	"github.com/artem13815/cvdesk/pkg/config"
	"github.com/artem13815/cvdesk/pkg/cv"
	"github.com/artem13815/cvdesk/pkg/events"
	"github.com/artem13815/cvdesk/pkg/export"
	"github.com/artem13815/cvdesk/pkg/health"
	"github.com/artem13815/cvdesk/pkg/repository/memory"
	"github.com/artem13815/cvdesk/pkg/security/jwt"
	"github.com/artem13815/cvdesk/pkg/storage/objectstore"
)

const (
	testSecret = "router-test-secret"
	testIssuer = "cvdesk"
)

type nopQueue struct{}

func (nopQueue) EnqueueExtract(context.Context, cv.ExtractJob) error { return nil }

type testServer struct {
	app   *fiber.App
	users *memory.UserRepository
	repo  *memory.CVRepository
	store *objectstore.Memory
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	s := &testServer{
		app:   fiber.New(),
		users: memory.NewUserRepository(),
		repo:  memory.NewCVRepository(),
		store: objectstore.NewMemory(config.StorageConfig{Bucket: "cvs", Endpoint: "localhost:9000"}),
	}
	limits := cv.UploadLimits{MaxCVs: 3, BatchCap: 2}
	upload := cv.NewUploadService(s.repo, s.repo, s.store, nopQueue{}, events.LogNotifier{}, cv.NewValidator(1024, nil), limits)
	library := cv.NewLibraryService(s.repo, s.store, s.repo)
	dash := cv.NewDashboardService(s.repo, s.repo, limits.MaxCVs)

	Register(s.app, Handlers{
		Auth:      handlers.NewAuthHandler(auth.NewAuthService(s.users, jwt.NewGenerator(testSecret, testIssuer, time.Hour))),
		Health:    handlers.NewHealthHandler(health.NewService()),
		Dashboard: handlers.NewDashboardHandler(dash),
		CVs:       handlers.NewCVHandler(library, export.NewService(library, dash)),
		Uploads:   handlers.NewUploadHandler(upload),
		Chat:      handlers.NewChatHandler(chat.NewService(nil, dash, library)),
		Admin:     handlers.NewAdminHandler(cv.NewQuotaAdminService(s.repo, s.repo, limits.MaxCVs)),
	}, jwt.NewAuthMiddleware(testSecret, testIssuer), jwt.RequireAdmin())
	return s
}

func (s *testServer) do(t *testing.T, method, path, token string, body io.Reader, contentType string) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func (s *testServer) doJSON(t *testing.T, method, path, token string, payload any) (int, []byte) {
	t.Helper()
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}
	return s.do(t, method, path, token, body, fiber.MIMEApplicationJSON)
}

// register creates a user and returns its id and token.
func (s *testServer) register(t *testing.T, email string) (uuid.UUID, string) {
	t.Helper()
	status, body := s.doJSON(t, http.MethodPost, "/api/v1/auth/register", "",
		map[string]string{"email": email, "password": "long-enough"})
	require.Equal(t, http.StatusCreated, status, string(body))
	var out struct {
		ID    string `json:"id"`
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	return uuid.MustParse(out.ID), out.Token
}

func (s *testServer) admin(t *testing.T) string {
	t.Helper()
	id, _ := s.register(t, "root@example.com")
	require.NoError(t, s.users.SetAdmin(context.Background(), id, true))
	status, body := s.doJSON(t, http.MethodPost, "/api/v1/auth/login", "",
		map[string]string{"email": "root@example.com", "password": "long-enough"})
	require.Equal(t, http.StatusOK, status)
	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	return out.Token
}

type part struct {
	name, contentType, content string
}

func multipartBody(t *testing.T, parts ...part) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("note", "batch"))
	for _, p := range parts {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files"; filename="%s"`, p.name))
		if p.contentType != "" {
			h.Set("Content-Type", p.contentType)
		}
		pw, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = pw.Write([]byte(p.content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

type uploadBody struct {
	Uploaded []struct {
		ID       string `json:"id"`
		FileName string `json:"fileName"`
		Status   string `json:"status"`
	} `json:"uploaded"`
	Failed []struct {
		Name  string `json:"name"`
		Error string `json:"error"`
	} `json:"failed"`
}

func (s *testServer) upload(t *testing.T, token string, parts ...part) (int, uploadBody) {
	t.Helper()
	body, ct := multipartBody(t, parts...)
	status, data := s.do(t, http.MethodPost, "/api/v1/uploads", token, body, ct)
	var out uploadBody
	if status != http.StatusBadRequest {
		require.NoError(t, json.Unmarshal(data, &out), string(data))
	}
	return status, out
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer(t)
	status, body := s.do(t, http.MethodGet, "/api/v1/health", "", nil, "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))

	status, _ = s.do(t, http.MethodGet, "/api/v1/ready", "", nil, "")
	assert.Equal(t, http.StatusOK, status)
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t)
	_, token := s.register(t, "alice@example.com")

	status, body := s.do(t, http.MethodGet, "/api/v1/auth/me", token, nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"email":"alice@example.com"`)

	tests := []struct {
		name    string
		path    string
		payload map[string]string
		status  int
	}{
		{"duplicate", "/api/v1/auth/register", map[string]string{"email": "ALICE@example.com", "password": "long-enough"}, http.StatusConflict},
		{"weak password", "/api/v1/auth/register", map[string]string{"email": "bob@example.com", "password": "short"}, http.StatusBadRequest},
		{"missing fields", "/api/v1/auth/register", map[string]string{"email": ""}, http.StatusBadRequest},
		{"wrong password", "/api/v1/auth/login", map[string]string{"email": "alice@example.com", "password": "nope-nope"}, http.StatusUnauthorized},
		{"login", "/api/v1/auth/login", map[string]string{"email": "alice@example.com", "password": "long-enough"}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := s.doJSON(t, http.MethodPost, tt.path, "", tt.payload)
			assert.Equal(t, tt.status, status)
		})
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)
	for _, path := range []string{"/api/v1/dashboard", "/api/v1/cvs", "/api/v1/cvs/recent", "/api/v1/uploads/remaining", "/api/v1/auth/me"} {
		status, _ := s.do(t, http.MethodGet, path, "", nil, "")
		assert.Equal(t, http.StatusUnauthorized, status, path)
	}
}

func TestUploadStatuses(t *testing.T) {
	s := newTestServer(t)
	_, token := s.register(t, "alice@example.com")

	status, out := s.upload(t, token,
		part{"alice.pdf", cv.MediaTypePDF, "%PDF-1.4"},
		part{"photo.png", "image/png", "png"},
	)
	assert.Equal(t, http.StatusMultiStatus, status)
	require.Len(t, out.Uploaded, 1)
	assert.Equal(t, "alice.pdf", out.Uploaded[0].FileName)
	assert.Equal(t, "pending", out.Uploaded[0].Status)
	require.Len(t, out.Failed, 1)
	assert.Equal(t, "photo.png", out.Failed[0].Name)

	status, out = s.upload(t, token, part{"bob.docx", "", "docx"})
	assert.Equal(t, http.StatusCreated, status, "type is derived from the extension when undeclared")
	assert.Len(t, out.Uploaded, 1)

	status, out = s.upload(t, token, part{"big.pdf", cv.MediaTypePDF, strings.Repeat("x", 2048)})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Empty(t, out.Uploaded)

	status, _ = s.upload(t, token, part{"a.pdf", cv.MediaTypePDF, "a"}, part{"b.pdf", cv.MediaTypePDF, "b"}, part{"c.pdf", cv.MediaTypePDF, "c"})
	assert.Equal(t, http.StatusBadRequest, status, "batch cap")

	status, _ = s.upload(t, token, part{"c.pdf", cv.MediaTypePDF, "c"}, part{"d.pdf", cv.MediaTypePDF, "d"})
	assert.Equal(t, http.StatusConflict, status, "quota")

	status, _ = s.upload(t, token)
	assert.Equal(t, http.StatusBadRequest, status, "no files")

	status, _ = s.do(t, http.MethodPost, "/api/v1/uploads", token, strings.NewReader("{}"), fiber.MIMEApplicationJSON)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body := s.do(t, http.MethodGet, "/api/v1/uploads/remaining", token, nil, "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"remaining":1}`, string(body))
}

func TestUploadQuotaRefusalListsFileErrors(t *testing.T) {
	s := newTestServer(t)
	_, token := s.register(t, "carol@example.com")

	status, _ := s.upload(t, token, part{"a.pdf", cv.MediaTypePDF, "a"}, part{"b.pdf", cv.MediaTypePDF, "b"})
	require.Equal(t, http.StatusCreated, status)
	status, _ = s.upload(t, token, part{"c.pdf", cv.MediaTypePDF, "c"})
	require.Equal(t, http.StatusCreated, status)

	status, out := s.upload(t, token, part{"d.pdf", cv.MediaTypePDF, "d"}, part{"photo.png", "image/png", "png"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Empty(t, out.Uploaded)
	require.Len(t, out.Failed, 1)
	assert.Equal(t, "photo.png", out.Failed[0].Name)
}

func TestLibraryEndpoints(t *testing.T) {
	s := newTestServer(t)
	_, alice := s.register(t, "alice@example.com")
	_, bob := s.register(t, "bob@example.com")

	_, out := s.upload(t, alice, part{"alice.pdf", cv.MediaTypePDF, "alice-content"})
	require.Len(t, out.Uploaded, 1)
	id := out.Uploaded[0].ID

	status, body := s.do(t, http.MethodGet, "/api/v1/cvs?q=ALICE&sort=name_az", alice, nil, "")
	require.Equal(t, http.StatusOK, status)
	var page struct {
		Items []struct {
			ID string `json:"id"`
		} `json:"items"`
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(body, &page))
	assert.Equal(t, 1, page.Total)

	status, body = s.do(t, http.MethodGet, "/api/v1/cvs?tag=golang", alice, nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"items":[],"total":0}`, string(body))

	status, body = s.do(t, http.MethodGet, "/api/v1/cvs", bob, nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"items":[],"total":0}`, string(body))

	status, _ = s.do(t, http.MethodGet, "/api/v1/cvs/"+id, alice, nil, "")
	assert.Equal(t, http.StatusOK, status)
	status, _ = s.do(t, http.MethodGet, "/api/v1/cvs/"+id, bob, nil, "")
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = s.do(t, http.MethodGet, "/api/v1/cvs/not-a-uuid", alice, nil, "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = s.do(t, http.MethodGet, "/api/v1/cvs/"+id+"/file", alice, nil, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "alice-content", string(body))

	status, body = s.do(t, http.MethodGet, "/api/v1/cvs/recent", alice, nil, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), id)

	status, body = s.do(t, http.MethodGet, "/api/v1/cvs/filters", alice, nil, "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"tags":[],"skills":[]}`, string(body))

	status, body = s.do(t, http.MethodGet, "/api/v1/dashboard", alice, nil, "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"totalCVs":1,"processedCVs":0,"totalTags":0,"remainingUploads":2}`, string(body))

	status, body = s.do(t, http.MethodGet, "/api/v1/cvs/export", alice, nil, "")
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, bytes.HasPrefix(body, []byte("PK")), "xlsx is a zip archive")

	status, _ = s.do(t, http.MethodDelete, "/api/v1/cvs/"+id, bob, nil, "")
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = s.do(t, http.MethodDelete, "/api/v1/cvs/"+id, alice, nil, "")
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = s.do(t, http.MethodDelete, "/api/v1/cvs/"+id, alice, nil, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Zero(t, s.store.Len())
}

func TestChatEndpoint(t *testing.T) {
	s := newTestServer(t)
	_, token := s.register(t, "alice@example.com")

	status, _ := s.doJSON(t, http.MethodPost, "/api/v1/chat", token, map[string]string{"message": "   "})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body := s.doJSON(t, http.MethodPost, "/api/v1/chat", token, map[string]string{"message": "Who knows React?"})
	require.Equal(t, http.StatusOK, status)
	var out struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.NotEmpty(t, out.Message)
}

func TestAdminQuota(t *testing.T) {
	s := newTestServer(t)
	userID, userToken := s.register(t, "alice@example.com")
	adminToken := s.admin(t)
	path := "/api/v1/admin/users/" + userID.String() + "/quota"

	status, _ := s.do(t, http.MethodGet, path, userToken, nil, "")
	assert.Equal(t, http.StatusForbidden, status)

	status, body := s.do(t, http.MethodGet, path, adminToken, nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, fmt.Sprintf(`{"userId":%q,"max":3,"count":0,"remaining":3}`, userID), string(body))

	status, _ = s.doJSON(t, http.MethodPut, path, adminToken, map[string]int{"max": 0})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = s.doJSON(t, http.MethodPut, path, adminToken, map[string]int{"max": 10})
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"max":10`)

	status, body = s.do(t, http.MethodGet, "/api/v1/uploads/remaining", userToken, nil, "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"remaining":10}`, string(body))
}
