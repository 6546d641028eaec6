package extraction_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/emendhq/emend/internal/config"
	"github.com/emendhq/emend/internal/extraction"
)

func newClient(t *testing.T, baseURL string) extraction.Converter {
	t.Helper()
	cfg := config.ExtractorConfig{BaseURL: baseURL, Timeout: "5s"}
	return extraction.NewClient(&cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func respond(w http.ResponseWriter, status int, body map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func TestConvert(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/extract" {
				t.Errorf("request = %s %s, want POST /extract", r.Method, r.URL.Path)
			}

			if err := r.ParseMultipartForm(1 << 20); err != nil {
				t.Fatalf("parse form: %v", err)
			}
			if got := r.FormValue("output_format"); got != "markdown" {
				t.Errorf("output_format = %q, want markdown", got)
			}

			file, header, err := r.FormFile("file")
			if err != nil {
				t.Fatalf("form file: %v", err)
			}
			defer file.Close()

			if header.Filename != "worksheet.pdf" {
				t.Errorf("filename = %q, want worksheet.pdf", header.Filename)
			}
			payload, _ := io.ReadAll(file)
			if string(payload) != "%PDF-1.7 fake" {
				t.Errorf("payload = %q", payload)
			}

			respond(w, http.StatusOK, map[string]any{
				"success": true,
				"data":    map[string]any{"content": "## Quiz\n\n1. What is 2+2?"},
			})
		}))
		defer srv.Close()

		content, err := newClient(t, srv.URL).Convert(ctx, "worksheet.pdf", []byte("%PDF-1.7 fake"))
		if err != nil {
			t.Fatalf("Convert error = %v", err)
		}
		if !strings.Contains(content, "What is 2+2?") {
			t.Errorf("content = %q", content)
		}
	})

	t.Run("service reports failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			respond(w, http.StatusOK, map[string]any{
				"success": false,
				"error":   "unsupported encoding",
			})
		}))
		defer srv.Close()

		_, err := newClient(t, srv.URL).Convert(ctx, "broken.pdf", []byte("data"))
		if !errors.Is(err, extraction.ErrConvertFailed) {
			t.Fatalf("error = %v, want ErrConvertFailed", err)
		}
		if !strings.Contains(err.Error(), "unsupported encoding") {
			t.Errorf("error %q missing service message", err)
		}
	})

	t.Run("non-200 status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			respond(w, http.StatusInternalServerError, map[string]any{"success": false})
		}))
		defer srv.Close()

		_, err := newClient(t, srv.URL).Convert(ctx, "doc.pdf", []byte("data"))
		if !errors.Is(err, extraction.ErrConvertFailed) {
			t.Errorf("error = %v, want ErrConvertFailed", err)
		}
	})

	t.Run("malformed response body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, "<html>gateway error</html>")
		}))
		defer srv.Close()

		_, err := newClient(t, srv.URL).Convert(ctx, "doc.pdf", []byte("data"))
		if !errors.Is(err, extraction.ErrConvertFailed) {
			t.Errorf("error = %v, want ErrConvertFailed", err)
		}
	})

	t.Run("empty content", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			respond(w, http.StatusOK, map[string]any{
				"success": true,
				"data":    map[string]any{"content": ""},
			})
		}))
		defer srv.Close()

		_, err := newClient(t, srv.URL).Convert(ctx, "blank.pdf", []byte("data"))
		if !errors.Is(err, extraction.ErrEmptyContent) {
			t.Errorf("error = %v, want ErrEmptyContent", err)
		}
	})

	t.Run("unreachable service", func(t *testing.T) {
		_, err := newClient(t, "http://127.0.0.1:1").Convert(ctx, "doc.pdf", []byte("data"))
		if !errors.Is(err, extraction.ErrConvertFailed) {
			t.Errorf("error = %v, want ErrConvertFailed", err)
		}
	})
}

func TestGroup(t *testing.T) {
	precursor := "Shared context."
	empty := ""

	t.Run("has precursor", func(t *testing.T) {
		tests := []struct {
			name  string
			group extraction.Group
			want  bool
		}{
			{"present", extraction.Group{Precursor: &precursor}, true},
			{"nil", extraction.Group{}, false},
			{"empty string", extraction.Group{Precursor: &empty}, false},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				if got := tt.group.HasPrecursor(); got != tt.want {
					t.Errorf("HasPrecursor() = %v, want %v", got, tt.want)
				}
			})
		}
	})

	t.Run("item count", func(t *testing.T) {
		groups := []extraction.Group{
			{Precursor: &precursor, Questions: []string{"a", "b"}},
			{Questions: []string{"c"}},
			{Precursor: &empty, Questions: []string{"d", "e", "f"}},
		}

		if got := extraction.ItemCount(groups); got != 7 {
			t.Errorf("ItemCount() = %d, want 7", got)
		}
	})
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"convert failed", extraction.ErrConvertFailed, http.StatusBadGateway},
		{"empty content", extraction.ErrEmptyContent, http.StatusUnprocessableEntity},
		{"unrecognized", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extraction.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}
