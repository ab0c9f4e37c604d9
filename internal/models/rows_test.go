package models

import (
	"errors"
	"testing"
	"time"

	"dnl-site-backend-go/internal/gateway"
)

func TestProjectFromRow(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	t.Run("postgres shaped row", func(t *testing.T) {
		p, err := ProjectFromRow(gateway.Row{
			"id":         "p1",
			"title":      "Cozinha Moderna",
			"type":       "Residencial",
			"status":     "concluido",
			"image_url":  "https://img/1.png",
			"video_url":  nil,
			"progress":   int64(100),
			"start_date": "2024-01-10",
			"gallery":    `[{"url":"https://img/2.png","caption":"Antes"}]`,
			"created_at": created,
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if p.Status != StatusCompleted || p.Progress != 100 || p.CreatedAt != created {
			t.Fatalf("unexpected project %+v", p)
		}
		if len(p.Gallery) != 1 || p.Gallery[0].Caption != "Antes" {
			t.Fatalf("unexpected gallery %+v", p.Gallery)
		}
	})

	t.Run("decoded gallery and missing optional columns", func(t *testing.T) {
		p, err := ProjectFromRow(gateway.Row{
			"id":      "p2",
			"title":   "Loja",
			"status":  "in_progress",
			"gallery": []any{map[string]any{"url": "u"}},
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(p.Gallery) != 1 || p.Gallery[0].URL != "u" {
			t.Fatalf("unexpected gallery %+v", p.Gallery)
		}
	})

	t.Run("malformed rows", func(t *testing.T) {
		cases := []struct {
			name   string
			row    gateway.Row
			column string
		}{
			{"missing title", gateway.Row{"id": "p", "status": "completed"}, "title"},
			{"bad progress", gateway.Row{"id": "p", "title": "t", "status": "completed", "progress": "muito"}, "progress"},
			{"progress range", gateway.Row{"id": "p", "title": "t", "status": "completed", "progress": 140}, "progress"},
			{"bad gallery", gateway.Row{"id": "p", "title": "t", "status": "completed", "gallery": "{"}, "gallery"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := ProjectFromRow(tc.row)
				var rowErr *RowError
				if !errors.As(err, &rowErr) {
					t.Fatalf("expected RowError, got %v", err)
				}
				if rowErr.Table != TableProjects || rowErr.Column != tc.column {
					t.Fatalf("expected projects.%s, got %s.%s", tc.column, rowErr.Table, rowErr.Column)
				}
			})
		}
	})
}

func TestProjectToRow(t *testing.T) {
	row := ProjectToRow(Project{Title: "Casa", Status: StatusInProgress, Progress: 40})
	if _, ok := row["id"]; ok {
		t.Fatalf("expected no id for a new project")
	}
	if row["gallery"] != "[]" {
		t.Fatalf("expected empty gallery json, got %v", row["gallery"])
	}
	if row["video_url"] != nil {
		t.Fatalf("expected null video url, got %v", row["video_url"])
	}

	back, err := ProjectFromRow(gateway.Row{"id": "x", "title": row["title"], "status": row["status"], "progress": row["progress"], "gallery": row["gallery"]})
	if err != nil || back.Status != StatusInProgress || back.Progress != 40 {
		t.Fatalf("unexpected round trip %+v (%v)", back, err)
	}
}

func TestReviewFromRow(t *testing.T) {
	rv, err := ReviewFromRow(gateway.Row{"id": "r1", "client_name": "Ana", "rating": int32(5), "comment": "Excelente", "date": "2024-03-02", "approved": true})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !rv.Approved || rv.Rating != 5 {
		t.Fatalf("unexpected review %+v", rv)
	}

	_, err = ReviewFromRow(gateway.Row{"id": "r2", "client_name": "Rui", "rating": 9})
	var rowErr *RowError
	if !errors.As(err, &rowErr) || rowErr.Column != "rating" {
		t.Fatalf("expected rating RowError, got %v", err)
	}
}

func TestBudgetRequestFromRow(t *testing.T) {
	b, err := BudgetRequestFromRow(gateway.Row{
		"id":          "b1",
		"name":        "Maria Silva",
		"email":       "maria@example.com",
		"attachments": []byte(`["https://a/1.png","https://a/2.png"]`),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if b.Status != BudgetPending || len(b.Attachments) != 2 {
		t.Fatalf("unexpected request %+v", b)
	}
}

func TestSettingsWithDefaults(t *testing.T) {
	s, err := SettingsFromRow(gateway.Row{"id": "settings", "logo_url": "l"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got := s.WithDefaults().NotificationEmail; got != DefaultNotificationEmail {
		t.Fatalf("expected default email, got %q", got)
	}
	if SettingsToRow(s)["id"] != SettingsRowID {
		t.Fatalf("expected settings row id")
	}
}
