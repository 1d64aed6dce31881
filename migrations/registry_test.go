package migrations

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	connectors "github.com/goliatone/go-connectors"
	persistence "github.com/goliatone/go-persistence-bun"
	_ "github.com/mattn/go-sqlite3"
)

func TestFilesystems_ReturnsPostgresAndSQLite(t *testing.T) {
	filesystems, err := Filesystems()
	if err != nil {
		t.Fatalf("filesystems: %v", err)
	}
	if len(filesystems) != 2 {
		t.Fatalf("expected 2 filesystems, got %d", len(filesystems))
	}

	var postgresFound bool
	var sqliteFound bool
	for _, entry := range filesystems {
		matches, globErr := fs.Glob(entry.FS, "*.up.sql")
		if globErr != nil {
			t.Fatalf("glob %s: %v", entry.Dialect, globErr)
		}
		if len(matches) == 0 {
			t.Fatalf("expected %s migration files, got none", entry.Dialect)
		}
		switch entry.Dialect {
		case DialectPostgres:
			postgresFound = true
			if entry.Path != "data/sql/migrations" {
				t.Fatalf("unexpected postgres path %q", entry.Path)
			}
		case DialectSQLite:
			sqliteFound = true
			if entry.Path != "data/sql/migrations/sqlite" {
				t.Fatalf("unexpected sqlite path %q", entry.Path)
			}
		}
	}

	if !postgresFound {
		t.Fatalf("expected postgres filesystem")
	}
	if !sqliteFound {
		t.Fatalf("expected sqlite filesystem")
	}
}

func TestFilesystems_AcceptsFlatSource(t *testing.T) {
	flat := fstest.MapFS{
		"00001_init.up.sql":          {Data: []byte("SELECT 1;")},
		"00001_init.down.sql":        {Data: []byte("SELECT 1;")},
		"sqlite/00001_init.up.sql":   {Data: []byte("SELECT 1;")},
		"sqlite/00001_init.down.sql": {Data: []byte("SELECT 1;")},
	}
	filesystems, err := Filesystems(flat)
	if err != nil {
		t.Fatalf("filesystems: %v", err)
	}
	if filesystems[0].Path != "." || filesystems[1].Path != "sqlite" {
		t.Fatalf("unexpected paths %q %q", filesystems[0].Path, filesystems[1].Path)
	}
}

func TestFilesystems_RejectsMissingRollback(t *testing.T) {
	flat := fstest.MapFS{
		"00001_init.up.sql":          {Data: []byte("SELECT 1;")},
		"sqlite/00001_init.up.sql":   {Data: []byte("SELECT 1;")},
		"sqlite/00001_init.down.sql": {Data: []byte("SELECT 1;")},
	}
	_, err := Filesystems(flat)
	if err == nil {
		t.Fatalf("expected missing rollback error")
	}
	if !strings.Contains(err.Error(), "00001_init.down.sql") {
		t.Fatalf("expected missing file in error, got %v", err)
	}
}

func TestRegister_UsesValidationTargets(t *testing.T) {
	var calls []string
	reg, err := Register(context.Background(), func(_ context.Context, dialect string, _ string, _ fs.FS) error {
		calls = append(calls, dialect)
		return nil
	}, WithValidationTargets(DialectSQLite))
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if len(calls) != 1 {
		t.Fatalf("expected 1 registration call, got %d", len(calls))
	}
	if calls[0] != DialectSQLite {
		t.Fatalf("expected sqlite registration, got %q", calls[0])
	}
	if reg.SourceLabel != DefaultSourceLabel {
		t.Fatalf("expected default source label, got %q", reg.SourceLabel)
	}
}

func TestRegister_SourceLabelOverride(t *testing.T) {
	var labels []string
	_, err := Register(context.Background(), func(_ context.Context, _ string, label string, _ fs.FS) error {
		labels = append(labels, label)
		return nil
	}, WithDialectSourceLabel("  app-connectors "))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if len(labels) != 2 {
		t.Fatalf("expected both dialects registered, got %d", len(labels))
	}
	for _, label := range labels {
		if label != "app-connectors" {
			t.Fatalf("expected trimmed label, got %q", label)
		}
	}
}

func TestRegister_PropagatesRegisterError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Register(context.Background(), func(context.Context, string, string, fs.FS) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped register error, got %v", err)
	}
}

func TestRegister_RequiresRegisterFunc(t *testing.T) {
	if _, err := Register(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil register func")
	}
}

func TestRegistration_Targets(t *testing.T) {
	reg := Registration{ValidationTargets: []string{DialectSQLite}}
	if !reg.Targets(" SQLite ") {
		t.Fatalf("expected sqlite to be targeted")
	}
	if reg.Targets(DialectPostgres) {
		t.Fatalf("expected postgres not to be targeted")
	}
}

func TestApply_RejectsMissingClientAndUnknownDialect(t *testing.T) {
	if err := Apply(context.Background(), nil, DialectSQLite); err == nil {
		t.Fatalf("expected error for nil persistence client")
	}
	if err := Apply(context.Background(), &persistence.Client{}, "mysql"); err == nil || !strings.Contains(err.Error(), "unsupported dialect") {
		t.Fatalf("expected unsupported dialect error, got %v", err)
	}
}

func TestConnectorMigrationPairs_ExistForBothDialects(t *testing.T) {
	root := connectors.GetMigrationsFS()
	names := []string{
		"00001_connectors_core_schema",
		"00002_connectors_tracking_events",
	}
	for _, name := range names {
		for _, dir := range []string{"data/sql/migrations", "data/sql/migrations/sqlite"} {
			for _, suffix := range []string{".up.sql", ".down.sql"} {
				migrationPath := dir + "/" + name + suffix
				content, err := fs.ReadFile(root, migrationPath)
				if err != nil {
					t.Fatalf("read migration %s: %v", migrationPath, err)
				}
				if strings.TrimSpace(string(content)) == "" {
					t.Fatalf("expected migration %s to have SQL content", migrationPath)
				}
			}
		}
	}
}

func TestSQLiteConnectorSchema_ApplyAndRollback(t *testing.T) {
	db, err := sql.Open("sqlite3", "file:migrations-connector-schema?mode=memory&cache=shared&_foreign_keys=on")
	if err != nil {
		t.Fatalf("open sqlite db: %v", err)
	}
	defer func() { _ = db.Close() }()
	db.SetMaxOpenConns(1)

	sqliteMigrations, err := fs.Sub(connectors.GetMigrationsFS(), "data/sql/migrations/sqlite")
	if err != nil {
		t.Fatalf("resolve sqlite migrations: %v", err)
	}

	ctx := context.Background()
	for _, migration := range []string{
		"00001_connectors_core_schema.up.sql",
		"00002_connectors_tracking_events.up.sql",
	} {
		if err := execSQLMigration(ctx, db, sqliteMigrations, migration); err != nil {
			t.Fatalf("apply migration %s: %v", migration, err)
		}
	}

	if _, err := db.ExecContext(ctx,
		`INSERT INTO connector_definitions (id, kind, name) VALUES (?, ?, ?)`,
		"def-1", "source", "Postgres",
	); err != nil {
		t.Fatalf("insert definition: %v", err)
	}
	if _, err := db.ExecContext(ctx,
		`INSERT INTO connector_definitions (id, kind, name) VALUES (?, ?, ?)`,
		"def-2", "widget", "Bad",
	); err == nil {
		t.Fatalf("expected kind check constraint to reject unknown kind")
	}
	if _, err := db.ExecContext(ctx,
		`INSERT INTO credential_parameter_sets (id, definition_id, kind) VALUES (?, ?, ?)`,
		"set-1", "def-1", "source",
	); err != nil {
		t.Fatalf("insert parameter set: %v", err)
	}

	var configuration string
	if err := db.QueryRowContext(ctx,
		`SELECT configuration FROM credential_parameter_sets WHERE id = ?`, "set-1",
	).Scan(&configuration); err != nil {
		t.Fatalf("read configuration: %v", err)
	}
	if configuration != "{}" {
		t.Fatalf("expected empty object default, got %q", configuration)
	}

	for _, migration := range []string{
		"00002_connectors_tracking_events.down.sql",
		"00001_connectors_core_schema.down.sql",
	} {
		if err := execSQLMigration(ctx, db, sqliteMigrations, migration); err != nil {
			t.Fatalf("rollback migration %s: %v", migration, err)
		}
	}

	var count int
	if err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('connector_definitions', 'credential_parameter_sets', 'tracking_events')`,
	).Scan(&count); err != nil {
		t.Fatalf("count tables: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected rollback to drop all tables, got %d", count)
	}
}

func execSQLMigration(ctx context.Context, db *sql.DB, fsys fs.FS, filename string) error {
	content, err := fs.ReadFile(fsys, filepath.Clean(filename))
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, string(content))
	return err
}
