package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL}), srv
}

func TestIsAvailable(t *testing.T) {
	t.Run("Up", func(t *testing.T) {
		c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/tags" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			w.Write([]byte(`{"models":[]}`))
		})
		if !c.IsAvailable(context.Background()) {
			t.Error("expected available")
		}
	})

	t.Run("Down", func(t *testing.T) {
		c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
		if c.IsAvailable(context.Background()) {
			t.Error("expected unavailable")
		}
	})
}

func TestHasModel(t *testing.T) {
	c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"models":[{"name":"mistral:7b","size":10},{"name":"qwen2.5-coder:7b","size":20}]}`))
	})

	models, err := c.ListModels(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(models) != 2 || models[1].Size != 20 {
		t.Fatalf("unexpected models: %+v", models)
	}

	ok, err := c.HasModel(context.Background(), "qwen2.5-coder")
	if err != nil || !ok {
		t.Errorf("expected untagged name to match, got %v %v", ok, err)
	}
	ok, _ = c.HasModel(context.Background(), "llama3")
	if ok {
		t.Error("expected llama3 to be missing")
	}
}

func TestGenerate(t *testing.T) {
	t.Run("Defaults Applied", func(t *testing.T) {
		var got GenerateRequest
		c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/api/generate" {
				t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
			}
			json.NewDecoder(r.Body).Decode(&got)
			w.Write([]byte(`{"response":"  Paris.  ","done":true,"prompt_eval_count":12,"eval_count":3}`))
		})

		res, err := c.Generate(context.Background(), GenerateRequest{Prompt: "capital of France?"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Text != "Paris." {
			t.Errorf("expected trimmed text, got %q", res.Text)
		}
		if res.PromptEvalCount != 12 || res.EvalCount != 3 {
			t.Errorf("unexpected token counts: %+v", res)
		}
		if got.Model != DefaultModel || got.Stream {
			t.Errorf("unexpected request: %+v", got)
		}
		if got.Options.NumPredict != DefaultMaxTokens || got.Options.Temperature != DefaultTemperature {
			t.Errorf("unexpected options: %+v", got.Options)
		}
		if len(got.Options.Stop) != 3 {
			t.Errorf("expected default stop sequences, got %v", got.Options.Stop)
		}
	})

	t.Run("Empty Response", func(t *testing.T) {
		c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"response":"   "}`))
		})
		_, err := c.Generate(context.Background(), GenerateRequest{Prompt: "hi"})
		if !errors.Is(err, ErrEmptyResponse) {
			t.Errorf("expected ErrEmptyResponse, got %v", err)
		}
	})

	t.Run("Empty Prompt", func(t *testing.T) {
		c := New(Config{BaseURL: "http://127.0.0.1:1"})
		_, err := c.Generate(context.Background(), GenerateRequest{Prompt: " "})
		if !errors.Is(err, ErrEmptyPrompt) {
			t.Errorf("expected ErrEmptyPrompt, got %v", err)
		}
	})

	t.Run("API Error", func(t *testing.T) {
		c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":"model not found"}`))
		})
		_, err := c.Generate(context.Background(), GenerateRequest{Prompt: "hi", Model: "nope"})
		var apiErr *APIError
		if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusNotFound {
			t.Errorf("expected APIError 404, got %v", err)
		}
	})
}

func TestPullModel(t *testing.T) {
	var name string
	c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		name, _ = body["name"].(string)
		w.Write([]byte(`{"status":"success"}`))
	})

	if err := c.PullModel(context.Background(), "qwen2.5-coder:7b"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "qwen2.5-coder:7b" {
		t.Errorf("unexpected pulled model %q", name)
	}
}
