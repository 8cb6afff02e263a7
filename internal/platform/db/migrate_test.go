package db

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestMigrationFilesSorted(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"0002_more.sql", "0001_init.sql", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "0003_dir.sql"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	files, err := migrationFiles(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"0001_init.sql", "0002_more.sql"}; !reflect.DeepEqual(files, want) {
		t.Fatalf("expected %v, got %v", want, files)
	}
}

func TestMigrateAgainstDatabase(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := Connect(ctx, url)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	dir := filepath.Join("..", "..", "..", "migrations")
	if err := Migrate(ctx, pool, dir); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := Migrate(ctx, pool, dir); err != nil {
		t.Fatalf("second migrate should be a no-op: %v", err)
	}
	applied, err := migrationApplied(ctx, pool, "0001_init")
	if err != nil || !applied {
		t.Fatalf("expected 0001_init to be recorded, got %v %v", applied, err)
	}
}
