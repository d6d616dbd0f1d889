package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	sqlFileRe     = regexp.MustCompile(`^(\d{14})_[a-z0-9_]+\.sql$`)
	createTableRe = regexp.MustCompile(`(?im)^\s*CREATE TABLE (?:IF NOT EXISTS\s+)?([a-z0-9_]+)`)
)

// ValidateDir lints a migrations directory before anything touches the
// DB: filenames must carry a 14-digit version, versions must be unique,
// every file needs both goose section markers, and no table may be
// created by more than one migration.
func ValidateDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("dir is required")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read dir %q: %w", dir, err)
	}

	seenVersions := map[string]string{}
	createdTables := map[string]string{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		name := e.Name()

		m := sqlFileRe.FindStringSubmatch(name)
		if m == nil {
			return fmt.Errorf("invalid migration filename %q (expected YYYYMMDDHHMMSS_name.sql)", name)
		}
		if prev, dup := seenVersions[m[1]]; dup {
			return fmt.Errorf("duplicate migration version %s in %q and %q", m[1], prev, name)
		}
		seenVersions[m[1]] = name

		if err := checkGooseMarkers(filepath.Join(dir, name)); err != nil {
			return err
		}
		if err := checkUniqueTables(filepath.Join(dir, name), createdTables); err != nil {
			return err
		}
	}
	return nil
}

func checkGooseMarkers(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file %q: %w", path, err)
	}
	content := string(b)
	for _, marker := range []string{"-- +goose Up", "-- +goose Down"} {
		if !strings.Contains(content, marker) {
			return fmt.Errorf("migration %q missing %q", filepath.Base(path), marker)
		}
	}
	return nil
}

// checkUniqueTables records every table a migration creates and rejects
// a table that a lower-versioned file already created. A re-created
// table means a schema file was pasted on top of earlier migrations.
func checkUniqueTables(path string, created map[string]string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file %q: %w", path, err)
	}
	up, _, _ := strings.Cut(string(b), "-- +goose Down")
	for _, m := range createTableRe.FindAllStringSubmatch(up, -1) {
		table := m[1]
		if prev, dup := created[table]; dup {
			return fmt.Errorf("table %q created by both %q and %q", table, prev, filepath.Base(path))
		}
		created[table] = filepath.Base(path)
	}
	return nil
}
