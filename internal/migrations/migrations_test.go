package migrations

import (
	"io/fs"
	"os"
	"strings"
	"testing"
	"testing/fstest"
)

func TestListMigrations_Order(t *testing.T) {
	fsys := fstest.MapFS{
		"V10__later.sql":     {Data: []byte("SELECT 1;")},
		"V2__second.sql":     {Data: []byte("SELECT 1;")},
		"V1__first.sql":      {Data: []byte("SELECT 1;")},
		"README.md":          {Data: []byte("docs")},
		"seed.sql":           {Data: []byte("SELECT 1;")},
		"Vx__not_number.sql": {Data: []byte("SELECT 1;")},
	}
	migs, err := listMigrations(fsys)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want := []string{"V1__first.sql", "V2__second.sql", "V10__later.sql", "Vx__not_number.sql"}
	if len(migs) != len(want) {
		t.Fatalf("expected %d migrations, got %v", len(want), migs)
	}
	for i, name := range want {
		if migs[i].Name != name {
			t.Fatalf("position %d: expected %s, got %s", i, name, migs[i].Name)
		}
	}
}

func TestParseVersion(t *testing.T) {
	cases := map[string]string{
		"V1__site_schema.sql": "1",
		"V12__x.sql":          "12",
		"1__missing_v.sql":    "",
		"V3_single.sql":       "",
	}
	for name, want := range cases {
		if got := parseVersion(name); got != want {
			t.Fatalf("%s: expected %q, got %q", name, want, got)
		}
	}
}

func TestRepositoryMigrations(t *testing.T) {
	migs, err := listMigrations(os.DirFS("../../migrations"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(migs) < 3 || migs[0].Version != "1" {
		t.Fatalf("expected versioned migrations starting at V1, got %v", migs)
	}
}

func TestRepositoryMigrations_GeneratedIDs(t *testing.T) {
	fsys := os.DirFS("../../migrations")
	migs, err := listMigrations(fsys)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	var all strings.Builder
	for _, mig := range migs {
		data, err := fs.ReadFile(fsys, mig.Name)
		if err != nil {
			t.Fatalf("read %s: %v", mig.Name, err)
		}
		all.Write(data)
	}
	for _, table := range []string{"projects", "reviews", "budget_requests", "admin_users"} {
		want := "ALTER TABLE " + table + " ALTER COLUMN id SET DEFAULT gen_random_uuid()::text"
		if !strings.Contains(all.String(), want) {
			t.Fatalf("expected %s.id to have a generated default", table)
		}
	}
}
