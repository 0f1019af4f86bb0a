package infrastructure

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetch_DecodesAndUnescapes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("amount"); got != "1" {
			t.Errorf("expected amount=1, got %q", got)
		}
		if got := r.URL.Query().Get("difficulty"); got != "easy" {
			t.Errorf("expected difficulty=easy, got %q", got)
		}
		w.Write([]byte(`{
			"response_code": 0,
			"results": [{
				"category": "Science &amp; Nature",
				"type": "boolean",
				"difficulty": "easy",
				"question": "Water&#039;s formula is H2O?",
				"correct_answer": "True",
				"incorrect_answers": ["False"]
			}]
		}`))
	}))
	defer srv.Close()

	c := NewOpenTDBClient()
	c.baseURL = srv.URL

	q, err := c.Fetch(context.Background(), "easy", "")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if q.Prompt != "Water's formula is H2O?" {
		t.Errorf("entities not unescaped: %q", q.Prompt)
	}
	if q.Category != "Science & Nature" {
		t.Errorf("category not unescaped: %q", q.Category)
	}
	if len(q.Answers) != 2 || q.Answers[0] != "True" || q.Answers[1] != "False" {
		t.Errorf("boolean answers out of order: %v", q.Answers)
	}
	if q.CorrectIndex != 0 {
		t.Errorf("unexpected correct index %d", q.CorrectIndex)
	}
}

func TestFetch_NonZeroResponseCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response_code": 1, "results": []}`))
	}))
	defer srv.Close()

	c := NewOpenTDBClient()
	c.baseURL = srv.URL

	if _, err := c.Fetch(context.Background(), "", ""); err == nil {
		t.Fatal("expected an error for a non-zero response code")
	}
}
