package migration

import (
	"strings"
	"testing"
	"testing/fstest"
)

func TestLoad_SortsAndChecksums(t *testing.T) {
	src := fstest.MapFS{
		"V2__second.sql": {Data: []byte("SELECT 2;")},
		"V1__first.sql":  {Data: []byte("  SELECT 1;\n")},
		"README.md":      {Data: []byte("ignored")},
	}

	migs, err := Load(src)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(migs) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(migs))
	}
	if migs[0].Version != 1 || migs[1].Version != 2 {
		t.Fatalf("unexpected order: %d, %d", migs[0].Version, migs[1].Version)
	}
	if migs[0].SQL != "SELECT 1;" {
		t.Fatalf("expected trimmed sql, got %q", migs[0].SQL)
	}
	if len(migs[0].Checksum) != 64 {
		t.Fatalf("expected sha256 hex checksum, got %q", migs[0].Checksum)
	}
}

func TestLoad_RejectsDuplicatesAndEmpty(t *testing.T) {
	_, err := Load(fstest.MapFS{
		"V1__a.sql":  {Data: []byte("SELECT 1;")},
		"V01__b.sql": {Data: []byte("SELECT 2;")},
	})
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("expected duplicate error, got %v", err)
	}

	_, err = Load(fstest.MapFS{"V3__empty.sql": {Data: []byte("   ")}})
	if err == nil || !strings.Contains(err.Error(), "empty") {
		t.Fatalf("expected empty error, got %v", err)
	}
}

func TestPending(t *testing.T) {
	migs := []Migration{
		{Version: 1, Name: "a", Checksum: "x"},
		{Version: 2, Name: "b", Checksum: "y"},
	}

	out, err := Pending(migs, map[int64]string{1: "x"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(out) != 1 || out[0].Version != 2 {
		t.Fatalf("expected only version 2 pending, got %+v", out)
	}

	if _, err := Pending(migs, map[int64]string{1: "changed"}); err == nil {
		t.Fatalf("expected checksum mismatch")
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	src, err := Runner{}.source()
	if err != nil {
		t.Fatalf("source: %v", err)
	}
	migs, err := Load(src)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(migs) < 2 {
		t.Fatalf("expected embedded migrations, got %d", len(migs))
	}

	all := ""
	for _, m := range migs {
		all += m.SQL
	}
	for _, want := range []string{"CREATE TABLE IF NOT EXISTS profiles", "handle_new_user", "refresh_profile_rating"} {
		if !strings.Contains(all, want) {
			t.Fatalf("embedded migrations missing %q", want)
		}
	}
}
