package migrations

import (
	"io"
	"strings"
	"testing"

	"github.com/golang-migrate/migrate/v4/source/iofs"
)

func TestEmbeddedMigrations(t *testing.T) {
	source, err := iofs.New(files, "sql")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	defer source.Close()

	first, err := source.First()
	if err != nil {
		t.Fatalf("Expected first migration, got %v", err)
	}
	if first != 1 {
		t.Errorf("Expected first version 1, got %d", first)
	}

	up, _, err := source.ReadUp(first)
	if err != nil {
		t.Fatalf("Expected up migration, got %v", err)
	}
	defer up.Close()

	body, err := io.ReadAll(up)
	if err != nil {
		t.Fatalf("Expected readable migration, got %v", err)
	}

	for _, table := range []string{"task_history", "task_tags", "subtask", "task_audit"} {
		if !strings.Contains(string(body), "CREATE TABLE IF NOT EXISTS "+table) {
			t.Errorf("Expected table %s in init migration", table)
		}
	}
	if !strings.Contains(string(body), "task_id            INTEGER NOT NULL UNIQUE") {
		t.Error("Expected task_history.task_id to be unique")
	}

	down, _, err := source.ReadDown(first)
	if err != nil {
		t.Fatalf("Expected down migration, got %v", err)
	}
	down.Close()
}
