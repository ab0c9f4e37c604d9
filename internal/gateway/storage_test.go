package gateway

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestObjectName(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	cases := []struct {
		in   string
		want string
	}{
		{"foto cozinha.JPG", "-foto_cozinha.JPG"},
		{"plan(1).pdf", "-plan_1_.pdf"},
		{"C:\\Users\\ana\\obra.png", "-obra.png"},
		{"remodelação.png", "-remodela__o.png"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got := ObjectName(tc.in, now)
			if !strings.HasPrefix(got, "1700000000123-") || !strings.HasSuffix(got, tc.want) {
				t.Fatalf("expected 1700000000123-<uuid>%s, got %q", tc.want, got)
			}
			if id := strings.TrimSuffix(strings.TrimPrefix(got, "1700000000123-"), tc.want); len(id) != 36 {
				t.Fatalf("expected uuid segment, got %q", id)
			}
		})
	}

	t.Run("same name same millisecond", func(t *testing.T) {
		if a, b := ObjectName("image.jpg", now), ObjectName("image.jpg", now); a == b {
			t.Fatalf("expected distinct names, got %q twice", a)
		}
	})
}

func TestLocalStorage(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(dir, "siteDNL", "/media/")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	name, err := s.Upload(context.Background(), "1-a.png", "image/png", strings.NewReader("png"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "siteDNL", name))
	if err != nil || string(data) != "png" {
		t.Fatalf("expected stored content, got %q (%v)", data, err)
	}
	if got := s.PublicURL(name); got != "/media/siteDNL/1-a.png" {
		t.Fatalf("unexpected public url %q", got)
	}

	t.Run("empty upload", func(t *testing.T) {
		if _, err := s.Upload(context.Background(), "2-empty.png", "", strings.NewReader("")); err == nil {
			t.Fatalf("expected error for empty body")
		}
		if _, err := os.Stat(filepath.Join(dir, "siteDNL", "2-empty.png")); !os.IsNotExist(err) {
			t.Fatalf("expected empty file to be removed")
		}
	})

	t.Run("existing object is not overwritten", func(t *testing.T) {
		if _, err := s.Upload(context.Background(), "1-a.png", "image/png", strings.NewReader("other")); err == nil {
			t.Fatalf("expected error for existing object")
		}
		data, err := os.ReadFile(filepath.Join(dir, "siteDNL", "1-a.png"))
		if err != nil || string(data) != "png" {
			t.Fatalf("expected original content to survive, got %q (%v)", data, err)
		}
	})

	t.Run("path traversal", func(t *testing.T) {
		if _, err := s.Upload(context.Background(), "../x.png", "", strings.NewReader("x")); err == nil {
			t.Fatalf("expected error for traversal name")
		}
	})
}
