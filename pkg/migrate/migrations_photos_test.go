package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPhotosMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_photos_and_selections.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no photos migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS photos",
		"CREATE TABLE IF NOT EXISTS photo_selections",
		"CHECK (status IN ('pending', 'ready_to_print', 'printed'))",
		"CHECK (sync_status IN ('pending', 'synced', 'failed'))",
		"FOREIGN KEY (photo_id) REFERENCES photos(id) ON DELETE CASCADE",
		"CHECK (quantity >= 1)",
		"DROP TABLE IF EXISTS photos",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
