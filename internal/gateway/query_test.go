package gateway

import (
	"errors"
	"testing"
)

func TestBuildSelect(t *testing.T) {
	t.Run("filters order and limit", func(t *testing.T) {
		q := Where(Eq("approved", true), Neq("id", "000")).Order("created_at", true).WithLimit(3)
		sql, args, err := buildSelect("reviews", q)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		want := "SELECT * FROM reviews WHERE approved = $1 AND id <> $2 ORDER BY created_at DESC LIMIT 3"
		if sql != want {
			t.Fatalf("expected %q, got %q", want, sql)
		}
		if len(args) != 2 || args[0] != true || args[1] != "000" {
			t.Fatalf("unexpected args %v", args)
		}
	})

	t.Run("rejects unsafe identifiers", func(t *testing.T) {
		_, _, err := buildSelect("projects; drop table projects", Query{})
		if !errors.Is(err, ErrInvalidIdentifier) {
			t.Fatalf("expected ErrInvalidIdentifier, got %v", err)
		}
		_, _, err = buildSelect("projects", Query{OrderBy: "created_at desc"})
		if !errors.Is(err, ErrInvalidIdentifier) {
			t.Fatalf("expected ErrInvalidIdentifier for order column, got %v", err)
		}
	})
}

func TestBuildInsertAndUpsert(t *testing.T) {
	row := Row{"title": "Cozinha", "id": "p1", "progress": 40}

	sql, args, err := buildInsert("projects", row, false)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want := "INSERT INTO projects (id, progress, title) VALUES ($1, $2, $3) RETURNING *"
	if sql != want {
		t.Fatalf("expected %q, got %q", want, sql)
	}
	if args[0] != "p1" || args[1] != 40 || args[2] != "Cozinha" {
		t.Fatalf("unexpected args %v", args)
	}

	sql, _, err = buildInsert("app_settings", Row{"id": "settings", "logo_url": "x"}, true)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want = "INSERT INTO app_settings (id, logo_url) VALUES ($1, $2) ON CONFLICT (id) DO UPDATE SET logo_url = EXCLUDED.logo_url"
	if sql != want {
		t.Fatalf("expected %q, got %q", want, sql)
	}
}

func TestBuildInsert_GeneratesID(t *testing.T) {
	row := Row{"title": "Cozinha", "status": "completed", "gallery": "[]"}

	sql, args, err := buildInsert("projects", withGeneratedID(row), false)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want := "INSERT INTO projects (gallery, id, status, title) VALUES ($1, $2, $3, $4) RETURNING *"
	if sql != want {
		t.Fatalf("expected %q, got %q", want, sql)
	}
	if id, _ := args[1].(string); len(id) != 36 {
		t.Fatalf("expected generated uuid, got %v", args[1])
	}
	if _, ok := row["id"]; ok {
		t.Fatalf("expected caller row to stay untouched, got %v", row)
	}

	kept := withGeneratedID(Row{"id": "p1"})
	if kept["id"] != "p1" {
		t.Fatalf("expected explicit id to be kept, got %v", kept["id"])
	}
	if a, b := withGeneratedID(Row{}), withGeneratedID(Row{}); a["id"] == b["id"] {
		t.Fatalf("expected distinct ids, got %v twice", a["id"])
	}
}

func TestBuildUpdate(t *testing.T) {
	sql, args, err := buildUpdate("budget_requests", "b1", Row{"status": "contactado"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if sql != "UPDATE budget_requests SET status = $1 WHERE id = $2" {
		t.Fatalf("unexpected sql %q", sql)
	}
	if len(args) != 2 || args[1] != "b1" {
		t.Fatalf("unexpected args %v", args)
	}
}

func TestBuildDelete(t *testing.T) {
	if _, _, err := buildDelete("budget_requests", Query{}); !errors.Is(err, ErrUnfilteredDelete) {
		t.Fatalf("expected ErrUnfilteredDelete, got %v", err)
	}
	sql, args, err := buildDelete("budget_requests", Where(Neq("id", "000")))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if sql != "DELETE FROM budget_requests WHERE id <> $1" || args[0] != "000" {
		t.Fatalf("unexpected delete %q %v", sql, args)
	}
}
