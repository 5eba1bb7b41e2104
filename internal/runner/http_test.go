package runner

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHTTPRunnerExecute(t *testing.T) {
	inputs := []json.RawMessage{
		json.RawMessage("[2,3]"),
		json.RawMessage("[0,0]"),
	}

	t.Run("Success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/execute" {
				t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			}
			var req executeRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Errorf("failed to decode request: %v", err)
			}
			if req.Code == "" || req.Language != "go" || len(req.Inputs) != 2 {
				t.Errorf("unexpected payload: %+v", req)
			}
			json.NewEncoder(w).Encode(executeResponse{Results: []ExecResult{
				{Output: json.RawMessage("5")},
				{Err: "runtime error"},
			}})
		}))
		defer srv.Close()

		r := NewHTTPRunner(srv.URL, time.Second)
		results, err := r.Execute(context.Background(), "code", "go", inputs)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) != 2 {
			t.Fatalf("expected 2 results, got %d", len(results))
		}
		if string(results[0].Output) != "5" || results[1].Err != "runtime error" {
			t.Errorf("unexpected results: %+v", results)
		}
	})

	t.Run("ResultCountMismatch", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(executeResponse{Results: []ExecResult{{Output: json.RawMessage("5")}}})
		}))
		defer srv.Close()

		r := NewHTTPRunner(srv.URL, time.Second)
		if _, err := r.Execute(context.Background(), "code", "go", inputs); err == nil {
			t.Fatal("expected an error for a short result list")
		}
	})

	t.Run("ServerError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer srv.Close()

		r := NewHTTPRunner(srv.URL, time.Second)
		if _, err := r.Execute(context.Background(), "code", "go", inputs); err == nil {
			t.Fatal("expected an error for a 500 response")
		}
	})

	t.Run("Unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		r := NewHTTPRunner(srv.URL, time.Second)
		if _, err := r.Execute(context.Background(), "code", "go", inputs); err == nil {
			t.Fatal("expected an error when the runner is down")
		}
	})

	t.Run("ContextCancelled", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.Copy(io.Discard, r.Body)
			<-r.Context().Done()
		}))
		defer srv.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		r := NewHTTPRunner(srv.URL, time.Second)
		if _, err := r.Execute(ctx, "code", "go", inputs); err == nil {
			t.Fatal("expected an error when the context times out")
		}
	})
}
