package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/studymatehq/studymate/internal/domain/plan"
	"github.com/studymatehq/studymate/internal/http/handlers"
	"github.com/studymatehq/studymate/internal/repo/memory"
)

func jsonBody(s string) *bytes.Buffer {
	return bytes.NewBufferString(s)
}

func newPlansRouter(repo *memory.StudyPlansRepo) *gin.Engine {
	h := handlers.NewStudyPlansHandler(repo)

	r := gin.New()
	r.GET("/api/study-plans", h.List)
	r.POST("/api/study-plans", h.Create)
	r.PUT("/api/study-plans/:id", h.Update)
	r.DELETE("/api/study-plans/:id", h.Delete)

	return r
}

func TestCreateStudyPlanHandler(t *testing.T) {
	repo := memory.NewStudyPlansRepo()
	r := newPlansRouter(repo)

	w := postJSON(r, "/api/study-plans", `{"title": "Algebra sprint", "dailyStudyHours": 2}`)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
	}

	var p plan.StudyPlan

	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}

	if p.Title != "Algebra sprint" {
		t.Errorf("got title %q", p.Title)
	}

	// anonymous request falls back to the demo identity
	if p.UserID != "demo-user" {
		t.Errorf("got userId %q, want demo-user", p.UserID)
	}
}

func TestUpdateStudyPlanHandler(t *testing.T) {
	repo := memory.NewStudyPlansRepo()
	created := repo.Create("uid-1", plan.CreatePlanRequest{Title: "Original"})

	r := newPlansRouter(repo)

	req := httptest.NewRequest(http.MethodPut, "/api/study-plans/"+created.ID,
		jsonBody(`{"status": "PAUSED"}`))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
	}

	var p plan.StudyPlan

	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}

	if p.Status != plan.StatusPaused {
		t.Errorf("got status %q, want PAUSED", p.Status)
	}

	if p.Title != "Original" {
		t.Errorf("title changed unexpectedly: %q", p.Title)
	}
}

func TestUpdateStudyPlanMissing(t *testing.T) {
	r := newPlansRouter(memory.NewStudyPlansRepo())

	req := httptest.NewRequest(http.MethodPut, "/api/study-plans/ghost", jsonBody(`{}`))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("got status %d, want 404", w.Code)
	}
}

func TestDeleteStudyPlanHandler(t *testing.T) {
	repo := memory.NewStudyPlansRepo()
	created := repo.Create("uid-1", plan.CreatePlanRequest{Title: "Doomed"})

	r := newPlansRouter(repo)

	for _, path := range []string{
		"/api/study-plans/" + created.ID,
		"/api/study-plans/" + created.ID, // second delete still succeeds
	} {
		req := httptest.NewRequest(http.MethodDelete, path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
		}
	}

	if got := len(repo.List()); got != 0 {
		t.Errorf("got %d plans, want 0", got)
	}
}
