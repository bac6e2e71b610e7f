package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"training-hub-service/internal/app"
	"training-hub-service/internal/domain"
	"training-hub-service/internal/infra/gemini"
	"training-hub-service/internal/infra/memory"
	transport "training-hub-service/internal/transport/http"
)

// TestGenerateAndAttemptEndToEnd drives the whole stack in process: a fake
// Gemini endpoint, the real client behind the memory generation cache, the
// domain store and the HTTP transport.
func TestGenerateAndAttemptEndToEnd(t *testing.T) {
	upstreamCalls := 0
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upstreamCalls++
		writeCandidate(w, `{"questions":[
			{"question":"What is a goroutine?","options":["Thread","Lightweight thread","Process","Lock"],"correctAnswer":"Lightweight thread"},
			{"question":"What does select do?","options":["Sorts","Waits on channels","Locks","Panics"],"correctAnswer":"Waits on channels"}
		]}`)
	}))
	defer upstream.Close()

	client := gemini.NewClient(gemini.ClientConfig{BaseURL: upstream.URL, APIKey: "test-key"})
	generator := memory.NewGenerationCache(client, 5*time.Minute)

	store := memory.NewStore()
	service := app.NewTrainingServiceWithDelay(store, generator, 0)
	handler := transport.NewHandler(store, service, nil)

	mux := http.NewServeMux()
	handler.Register(mux)
	server := httptest.NewServer(mux)
	defer server.Close()

	student := store.AddUser(domain.User{Name: "Vikram Rao", Email: "v@s.io", Role: domain.RoleStudent, Course: "Go Fundamentals"})
	material := store.AddMaterial(domain.Material{
		Title: "Go Concurrency", Course: "Go Fundamentals",
		Type: domain.MaterialDOC, Content: "goroutines and channels",
	})

	// Generate a test from the material.
	resp, err := http.Post(server.URL+"/api/materials/"+material.ID+"/generate-test", "application/json", nil)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var generated map[string]string
	mustDecode(t, resp, &generated)

	assessments := store.Assessments()
	if len(assessments) != 1 || len(assessments[0].Questions) != 2 {
		t.Fatalf("expected persisted assessment with 2 questions, got %+v", assessments)
	}
	enrolled, _ := store.UserByID(student.ID)
	if len(enrolled.AssignedAssessmentIDs) != 1 {
		t.Fatalf("expected assessment assigned to student, got %v", enrolled.AssignedAssessmentIDs)
	}

	// A second material with identical content is served from the cache.
	clone := store.AddMaterial(domain.Material{
		Title: "Go Concurrency (mirror)", Course: "Go Fundamentals",
		Type: domain.MaterialDOC, Content: "goroutines and channels",
	})
	resp, err = http.Post(server.URL+"/api/materials/"+clone.ID+"/generate-test", "application/json", nil)
	if err != nil {
		t.Fatalf("generate clone: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	resp.Body.Close()
	if upstreamCalls != 1 {
		t.Fatalf("expected identical content to hit the cache, upstream calls=%d", upstreamCalls)
	}

	// Record attempts and read the leaderboard back over HTTP.
	for _, attempt := range []domain.StudentAttempt{
		{StudentName: "Vikram Rao", Course: "Go Fundamentals", Score: 80},
		{StudentName: "Meera Nair", Course: "Go Fundamentals", Score: 90},
		{StudentName: "Vikram Rao", Course: "Go Fundamentals", Score: 20},
	} {
		raw, _ := json.Marshal(attempt)
		resp, err := http.Post(server.URL+"/api/attempts", "application/json", bytes.NewReader(raw))
		if err != nil {
			t.Fatalf("attempt: %v", err)
		}
		resp.Body.Close()
	}

	resp, err = http.Get(server.URL + "/api/leaderboard")
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	var lb []domain.LeaderboardEntry
	mustDecode(t, resp, &lb)
	if len(lb) != 2 || lb[0].StudentName != "Vikram Rao" || lb[0].TotalScore != 100 {
		t.Fatalf("unexpected leaderboard %+v", lb)
	}
}

func writeCandidate(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"candidates":[{"content":{"parts":[{"text":%s}]}}]}`, mustQuote(text))
}

func mustQuote(s string) string {
	raw, _ := json.Marshal(s)
	return string(raw)
}

func mustDecode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode: %v", err)
	}
}
