package migrations

import (
	"context"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	connectors "github.com/goliatone/go-connectors"
	persistence "github.com/goliatone/go-persistence-bun"
)

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"

	DefaultSourceLabel = "go-connectors"

	embeddedRoot = "data/sql/migrations"
)

// dialectLayout places a dialect relative to the migration root. Postgres
// files sit at the root, sqlite files in a subdirectory.
type dialectLayout struct {
	dialect string
	dir     string
}

var dialectLayouts = []dialectLayout{
	{dialect: DialectPostgres, dir: "."},
	{dialect: DialectSQLite, dir: "sqlite"},
}

type FilesystemSpec struct {
	Dialect string
	Path    string
	FS      fs.FS
}

type Registration struct {
	SourceLabel       string
	ValidationTargets []string
	Filesystems       []FilesystemSpec
}

// Targets reports whether dialect is one of the registration's validation
// targets.
func (r Registration) Targets(dialect string) bool {
	return slices.Contains(r.ValidationTargets, normalizeDialect(dialect))
}

// RegisterFunc receives one dialect tree at a time.
type RegisterFunc func(ctx context.Context, dialect string, sourceLabel string, fsys fs.FS) error

type Option func(*Registration)

func WithDialectSourceLabel(label string) Option {
	return func(r *Registration) {
		if trimmed := strings.TrimSpace(label); trimmed != "" {
			r.SourceLabel = trimmed
		}
	}
}

func WithValidationTargets(targets ...string) Option {
	return func(r *Registration) {
		if next := normalizeDialects(targets); len(next) > 0 {
			r.ValidationTargets = next
		}
	}
}

// WithFilesystems replaces the embedded connector schema. Entries without a
// dialect or filesystem are ignored.
func WithFilesystems(filesystems ...FilesystemSpec) Option {
	return func(r *Registration) {
		next := make([]FilesystemSpec, 0, len(filesystems))
		for _, spec := range filesystems {
			dialect := normalizeDialect(spec.Dialect)
			if dialect == "" || spec.FS == nil {
				continue
			}
			next = append(next, FilesystemSpec{Dialect: dialect, Path: spec.Path, FS: spec.FS})
		}
		if len(next) > 0 {
			r.Filesystems = next
		}
	}
}

// Filesystems resolves one filesystem per dialect from source, or from the
// embedded connector schema when no source is given. source may hold the
// data/sql/migrations tree or be that directory itself. Each dialect must
// carry at least one *.up.sql and a rollback for every up file.
func Filesystems(sources ...fs.FS) ([]FilesystemSpec, error) {
	root := connectors.GetMigrationsFS()
	if len(sources) > 0 && sources[0] != nil {
		root = sources[0]
	}
	base, basePath, err := migrationsRoot(root)
	if err != nil {
		return nil, err
	}

	filesystems := make([]FilesystemSpec, 0, len(dialectLayouts))
	for _, layout := range dialectLayouts {
		spec := FilesystemSpec{
			Dialect: layout.dialect,
			Path:    joinMigrationPath(basePath, layout.dir),
			FS:      base,
		}
		if layout.dir != "." {
			sub, subErr := fs.Sub(base, layout.dir)
			if subErr != nil {
				return nil, fmt.Errorf("migrations: resolve %s filesystem: %w", layout.dialect, subErr)
			}
			spec.FS = sub
		}
		if checkErr := checkDialectTree(spec); checkErr != nil {
			return nil, checkErr
		}
		filesystems = append(filesystems, spec)
	}
	return filesystems, nil
}

// Register hands every targeted dialect tree to registerFn, in dialect order.
func Register(ctx context.Context, registerFn RegisterFunc, opts ...Option) (Registration, error) {
	reg := Registration{
		SourceLabel:       DefaultSourceLabel,
		ValidationTargets: []string{DialectPostgres, DialectSQLite},
	}
	filesystems, err := Filesystems()
	if err != nil {
		return reg, err
	}
	reg.Filesystems = filesystems

	for _, opt := range opts {
		if opt != nil {
			opt(&reg)
		}
	}
	if registerFn == nil {
		return reg, fmt.Errorf("migrations: register function is required")
	}
	if strings.TrimSpace(reg.SourceLabel) == "" {
		return reg, fmt.Errorf("migrations: source label is required")
	}
	if len(reg.ValidationTargets) == 0 || len(reg.Filesystems) == 0 {
		return reg, fmt.Errorf("migrations: validation targets and filesystems are required")
	}

	for _, spec := range reg.Filesystems {
		if !reg.Targets(spec.Dialect) {
			continue
		}
		if err := registerFn(ctx, spec.Dialect, reg.SourceLabel, spec.FS); err != nil {
			return reg, fmt.Errorf("migrations: register %s (%s): %w", spec.Dialect, spec.Path, err)
		}
	}
	return reg, nil
}

// Apply registers the connector schema for dialect on client and runs the
// pending migrations.
func Apply(ctx context.Context, client *persistence.Client, dialect string, opts ...Option) error {
	if client == nil {
		return fmt.Errorf("migrations: persistence client is required")
	}
	dialect = normalizeDialect(dialect)
	if !slices.ContainsFunc(dialectLayouts, func(layout dialectLayout) bool {
		return layout.dialect == dialect
	}) {
		return fmt.Errorf("migrations: unsupported dialect %q", dialect)
	}

	opts = append(opts, WithValidationTargets(dialect))
	if _, err := Register(ctx, func(_ context.Context, _ string, _ string, fsys fs.FS) error {
		client.RegisterSQLMigrations(fsys)
		return nil
	}, opts...); err != nil {
		return err
	}
	if err := client.Migrate(ctx); err != nil {
		return fmt.Errorf("migrations: migrate %s: %w", dialect, err)
	}
	return nil
}

// ValidatePairs reports every *.up.sql file in fsys that lacks a matching
// *.down.sql rollback.
func ValidatePairs(fsys fs.FS) error {
	ups, err := fs.Glob(fsys, "*.up.sql")
	if err != nil {
		return err
	}
	var missing []string
	for _, up := range ups {
		down := strings.TrimSuffix(up, ".up.sql") + ".down.sql"
		if _, statErr := fs.Stat(fsys, down); statErr != nil {
			missing = append(missing, down)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing rollback migrations: %s", strings.Join(missing, ", "))
	}
	return nil
}

func checkDialectTree(spec FilesystemSpec) error {
	ups, err := fs.Glob(spec.FS, "*.up.sql")
	if err != nil {
		return fmt.Errorf("migrations: glob %s %s: %w", spec.Dialect, spec.Path, err)
	}
	if len(ups) == 0 {
		return fmt.Errorf("migrations: %s filesystem %q has no *.up.sql files", spec.Dialect, spec.Path)
	}
	if err := ValidatePairs(spec.FS); err != nil {
		return fmt.Errorf("migrations: %s %s: %w", spec.Dialect, spec.Path, err)
	}
	return nil
}

func migrationsRoot(root fs.FS) (fs.FS, string, error) {
	if info, err := fs.Stat(root, embeddedRoot); err == nil && info.IsDir() {
		sub, subErr := fs.Sub(root, embeddedRoot)
		if subErr != nil {
			return nil, "", fmt.Errorf("migrations: resolve %s: %w", embeddedRoot, subErr)
		}
		return sub, embeddedRoot, nil
	}
	if flat, _ := fs.Glob(root, "*.sql"); len(flat) > 0 {
		return root, ".", nil
	}
	return nil, "", fmt.Errorf("migrations: %s not found: %w", embeddedRoot, fs.ErrNotExist)
}

func normalizeDialect(dialect string) string {
	return strings.ToLower(strings.TrimSpace(dialect))
}

func normalizeDialects(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if dialect := normalizeDialect(value); dialect != "" && !slices.Contains(out, dialect) {
			out = append(out, dialect)
		}
	}
	return out
}

func joinMigrationPath(base string, dir string) string {
	switch {
	case dir == ".":
		return base
	case base == ".":
		return dir
	default:
		return strings.TrimSuffix(base, "/") + "/" + dir
	}
}
