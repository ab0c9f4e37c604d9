package genai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGenerator_Generate(t *testing.T) {
	var prompt, path, key string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		key = r.URL.Query().Get("key")
		var req geminiRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if len(req.Contents) > 0 && len(req.Contents[0].Parts) > 0 {
			prompt = req.Contents[0].Parts[0].Text
		}
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"  Cozinha renovada com acabamentos premium. "}]}}]}`))
	}))
	defer server.Close()

	g := NewGenerator("k-1", "", server.URL, 0)
	got := g.Generate(context.Background(), "Cozinha Moderna", "Residencial")

	if got != "Cozinha renovada com acabamentos premium." {
		t.Fatalf("unexpected description %q", got)
	}
	if path != "/models/gemini-3-flash-preview:generateContent" || key != "k-1" {
		t.Fatalf("unexpected request %s key=%s", path, key)
	}
	for _, want := range []string{"Cozinha Moderna", "Residencial", "DNL Remodelações", "40 palavras", "Português de Portugal"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("expected prompt to contain %q, got %q", want, prompt)
		}
	}
}

func TestGenerator_Fallbacks(t *testing.T) {
	t.Run("missing key", func(t *testing.T) {
		got := NewGenerator("", "", "http://127.0.0.1:0", 0).Generate(context.Background(), "t", "Pintura")
		if !strings.HasPrefix(got, "Erro ao gerar descrição: ") {
			t.Fatalf("unexpected message %q", got)
		}
	})

	t.Run("empty answer", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"candidates":[]}`))
		}))
		defer server.Close()
		got := NewGenerator("k", "", server.URL, 0).Generate(context.Background(), "t", "Pintura")
		if got != "Sem descrição gerada." {
			t.Fatalf("unexpected message %q", got)
		}
	})

	t.Run("api error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":{"message":"API key not valid"}}`))
		}))
		defer server.Close()
		got := NewGenerator("k", "", server.URL, 0).Generate(context.Background(), "t", "Pintura")
		if got != "Erro ao gerar descrição: API key not valid" {
			t.Fatalf("unexpected message %q", got)
		}
	})
}
