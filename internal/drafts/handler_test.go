package drafts

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

type staticDraftConfig struct{}

func (staticDraftConfig) GetRedisURL() string        { return "" }
func (staticDraftConfig) GetDraftTTL() time.Duration { return time.Hour }

func newTestRouter() (*gin.Engine, *MemoryStore) {
	gin.SetMode(gin.TestMode)
	store := NewMemoryStore()
	h := NewHandler(store, staticDraftConfig{})

	engine := gin.New()
	engine.GET("/drafts/:form", h.Get)
	engine.PUT("/drafts/:form", h.Put)
	engine.DELETE("/drafts/:form", h.Delete)
	return engine, store
}

func doRequest(engine *gin.Engine, method, path, session, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if session != "" {
		req.Header.Set(SessionHeader, session)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestDraftSaveAndResume(t *testing.T) {
	engine, _ := newTestRouter()

	rec := doRequest(engine, http.MethodPut, "/drafts/consultation", "sess-1", `{"name":"Jane"}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(engine, http.MethodGet, "/drafts/consultation", "sess-1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != `{"name":"Jane"}` {
		t.Errorf("unexpected draft body: %s", rec.Body.String())
	}
}

func TestDraftMissingSessionHeader(t *testing.T) {
	engine, _ := newTestRouter()

	rec := doRequest(engine, http.MethodPut, "/drafts/consultation", "", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without session header, got %d", rec.Code)
	}
}

func TestDraftUnknownForm(t *testing.T) {
	engine, _ := newTestRouter()

	rec := doRequest(engine, http.MethodPut, "/drafts/unknown", "sess-1", `{}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown form, got %d", rec.Code)
	}
}

func TestDraftDeleteClearsDraft(t *testing.T) {
	engine, _ := newTestRouter()

	if rec := doRequest(engine, http.MethodPut, "/drafts/home-details", "sess-1", `{"doorCount":3}`); rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if rec := doRequest(engine, http.MethodDelete, "/drafts/home-details", "sess-1", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if rec := doRequest(engine, http.MethodGet, "/drafts/home-details", "sess-1", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestDraftEmptyBodyRejected(t *testing.T) {
	engine, _ := newTestRouter()

	rec := doRequest(engine, http.MethodPut, "/drafts/consultation", "sess-1", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty body, got %d", rec.Code)
	}
}

func TestDraftTooLargeRejected(t *testing.T) {
	engine, _ := newTestRouter()

	rec := doRequest(engine, http.MethodPut, "/drafts/consultation", "sess-1", strings.Repeat("x", maxDraftBytes+1))
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413 for oversized body, got %d", rec.Code)
	}
}
