package api

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presentai/presentai/internal/adapters/driven/storage/memory"
	"github.com/presentai/presentai/internal/core/domain"
	"github.com/presentai/presentai/internal/core/services"
	"github.com/presentai/presentai/internal/exporters/pptx"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

type fixture struct {
	server *Server
	store  *memory.PresentationStore
}

func newFixture(t *testing.T, cfg Config) *fixture {
	t.Helper()
	store := memory.NewPresentationStore()
	themes := services.NewThemeService(memory.NewThemeStore(), nil)
	encoder := pptx.New(nil, pptx.ConfigFromSettings(domain.DefaultAppSettings().Export))

	server, err := NewServer(&Ports{
		Export:       services.NewExportService(store, themes, encoder),
		Presentation: services.NewPresentationService(store),
		Theme:        themes,
	}, cfg)
	require.NoError(t, err)
	return &fixture{server: server, store: store}
}

func (f *fixture) save(t *testing.T, owner, id, title string) {
	t.Helper()
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, f.store.Save(context.Background(), &domain.Presentation{
		ID:        id,
		OwnerID:   owner,
		Title:     title,
		ThemeName: "ocean",
		CreatedAt: now,
		UpdatedAt: now,
		Slides: []domain.Slide{{
			ID: "s1",
			Elements: []domain.Element{&domain.TextBlock{
				Base: domain.Base{Frame: domain.Frame{X: 10, Y: 10, Width: 80, Height: 20, Unit: domain.UnitPercent}},
				Paragraphs: []domain.Paragraph{{
					Level: domain.LevelTitle,
					Runs:  []domain.TextRun{{Text: title}},
				}},
			}},
		}},
	}))
}

func (f *fixture) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(rec, req)
	return rec
}

func TestNewServer_RequiresServices(t *testing.T) {
	_, err := NewServer(&Ports{}, Config{})
	assert.ErrorIs(t, err, ErrMissingService)
}

func TestHealth(t *testing.T) {
	f := newFixture(t, Config{JWTSecret: testSecret})

	rec := f.do(t, http.MethodGet, "/api/health", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestListThemes(t *testing.T) {
	f := newFixture(t, Config{DefaultOwner: "local"})

	rec := f.do(t, http.MethodGet, "/api/themes", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Themes []domain.Theme `json:"themes"`
		Count  int            `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, len(domain.BuiltInThemes()), body.Count)
	assert.Len(t, body.Themes, body.Count)
}

func TestListPresentations_ScopedToOwner(t *testing.T) {
	f := newFixture(t, Config{DefaultOwner: "local"})
	f.save(t, "local", "p1", "Mine")
	f.save(t, "someone-else", "p2", "Theirs")

	rec := f.do(t, http.MethodGet, "/api/presentations", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Presentations []PresentationResponse `json:"presentations"`
		Count         int                    `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 1, body.Count)
	assert.Equal(t, "p1", body.Presentations[0].ID)
	assert.Equal(t, "Mine", body.Presentations[0].Title)
	assert.Equal(t, 1, body.Presentations[0].SlideCount)
}

func TestGetPresentation(t *testing.T) {
	f := newFixture(t, Config{DefaultOwner: "local"})
	f.save(t, "local", "p1", "Mine")
	f.save(t, "someone-else", "p2", "Theirs")

	rec := f.do(t, http.MethodGet, "/api/presentations/p1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	p, err := domain.UnmarshalPresentation(rec.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "Mine", p.Title)

	// Another owner's presentation looks exactly like a missing one.
	other := f.do(t, http.MethodGet, "/api/presentations/p2", "", "")
	missing := f.do(t, http.MethodGet, "/api/presentations/nope", "", "")
	assert.Equal(t, http.StatusNotFound, other.Code)
	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.JSONEq(t, missing.Body.String(), other.Body.String())
}

func TestExportPresentation(t *testing.T) {
	f := newFixture(t, Config{DefaultOwner: "local"})
	f.save(t, "local", "p1", "Quarterly Review")

	rec := f.do(t, http.MethodPost, "/api/presentations/p1/export",
		`{"fileName":"ignored","colors":{"primary":"#123456"}}`, "")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body ExportResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.False(t, body.Degraded)
	assert.Equal(t, "Quarterly_Review.pptx", body.FileName)

	data, err := base64.StdEncoding.DecodeString(body.Data)
	require.NoError(t, err)
	require.NoError(t, pptx.Verify(data))
	report, err := pptx.Inspect(data)
	require.NoError(t, err)
	require.Len(t, report.Slides, 1)
	assert.Contains(t, report.Slides[0].Text(), "Quarterly Review")
}

func TestExportPresentation_EmptyBody(t *testing.T) {
	f := newFixture(t, Config{DefaultOwner: "local"})
	f.save(t, "local", "p1", "Deck")

	rec := f.do(t, http.MethodPost, "/api/presentations/p1/export", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestExportPresentation_Failures(t *testing.T) {
	f := newFixture(t, Config{DefaultOwner: "local"})
	f.save(t, "local", "p1", "Deck")
	f.save(t, "other", "p2", "Theirs")
	require.NoError(t, f.store.Save(context.Background(), &domain.Presentation{ID: "p3", OwnerID: "local", Title: "Empty"}))

	tests := []struct {
		name   string
		path   string
		body   string
		status int
	}{
		{name: "missing", path: "/api/presentations/nope/export", status: http.StatusNotFound},
		{name: "other owner", path: "/api/presentations/p2/export", status: http.StatusNotFound},
		{name: "bad color", path: "/api/presentations/p1/export", body: `{"colors":{"primary":"blue"}}`, status: http.StatusBadRequest},
		{name: "unknown role", path: "/api/presentations/p1/export", body: `{"colors":{"shadow":"000000"}}`, status: http.StatusBadRequest},
		{name: "unknown theme", path: "/api/presentations/p1/export", body: `{"theme":"nope"}`, status: http.StatusNotFound},
		{name: "malformed body", path: "/api/presentations/p1/export", body: `{`, status: http.StatusBadRequest},
		{name: "no slides", path: "/api/presentations/p3/export", status: http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(t, http.MethodPost, tt.path, tt.body, "")

			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			var body ExportResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.Empty(t, body.Data)
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestDownloadPresentation(t *testing.T) {
	f := newFixture(t, Config{DefaultOwner: "local"})
	f.save(t, "local", "p1", "Launch Plan")

	rec := f.do(t, http.MethodGet, "/api/presentations/p1/export.pptx?theme=forest", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.PPTXMediaType, rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Launch_Plan.pptx"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "false", rec.Header().Get(degradedHeader))
	assert.NoError(t, pptx.Verify(rec.Body.Bytes()))
}

func TestAuth(t *testing.T) {
	f := newFixture(t, Config{JWTSecret: testSecret})
	f.save(t, "alice", "p1", "Alice's deck")

	alice, err := IssueToken("alice", testSecret, time.Hour)
	require.NoError(t, err)
	bob, err := IssueToken("bob", testSecret, time.Hour)
	require.NoError(t, err)
	forged, err := IssueToken("alice", "wrong-secret", time.Hour)
	require.NoError(t, err)
	expired, err := IssueToken("alice", testSecret, -time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		status int
	}{
		{name: "no token", token: "", status: http.StatusUnauthorized},
		{name: "forged", token: forged, status: http.StatusUnauthorized},
		{name: "expired", token: expired, status: http.StatusUnauthorized},
		{name: "garbage", token: "not.a.token", status: http.StatusUnauthorized},
		{name: "other owner", token: bob, status: http.StatusNotFound},
		{name: "owner", token: alice, status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(t, http.MethodGet, "/api/presentations/p1", "", tt.token)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}
}

func TestValidateToken(t *testing.T) {
	token, err := IssueToken("carol", testSecret, 0)
	require.NoError(t, err)

	owner, err := ValidateToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "carol", owner)

	_, err = ValidateToken(token, "other")
	assert.ErrorIs(t, err, domain.ErrAuthInvalid)

	_, err = IssueToken("", testSecret, 0)
	assert.Error(t, err)
}

func TestCORS(t *testing.T) {
	f := newFixture(t, Config{DefaultOwner: "local", AllowedOrigins: []string{"https://app.example"}})

	req := httptest.NewRequest(http.MethodOptions, "/api/presentations", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rec := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "https://app.example", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{domain.ErrNotFound, http.StatusNotFound},
		{domain.ErrForbidden, http.StatusNotFound},
		{domain.ErrInvalidInput, http.StatusBadRequest},
		{domain.ErrAuthRequired, http.StatusUnauthorized},
		{&domain.ExportError{Kind: domain.FailurePackaging, Err: domain.ErrEmptyOrOversizedDocument}, http.StatusUnprocessableEntity},
		{&domain.ExportError{Kind: domain.FailureValidation, Err: domain.ErrUnsupportedType}, http.StatusBadRequest},
		{&domain.ExportError{Kind: domain.FailurePackaging, Err: domain.ErrPackaging}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.status, statusFor(tt.err))
		})
	}
}
