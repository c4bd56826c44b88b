package application

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/pressly/goose/v3/database"
	"github.com/sirupsen/logrus"
)

// MigrationManager collects per-module embedded schema files and applies
// them with goose against the shared pool.
type MigrationManager interface {
	RegisterSchema(module string, fs *embed.FS)
	Run(ctx context.Context) error
}

func NewMigrationManager(pool *pgxpool.Pool, logger *logrus.Logger) MigrationManager {
	return &migrationManager{pool: pool, logger: logger}
}

type moduleSchema struct {
	module string
	fsys   fs.FS
}

type migrationManager struct {
	pool    *pgxpool.Pool
	logger  *logrus.Logger
	schemas []moduleSchema
}

func (m *migrationManager) RegisterSchema(module string, fsys *embed.FS) {
	sub, err := migrationRoot(fsys)
	if err != nil {
		panic(err)
	}
	m.schemas = append(m.schemas, moduleSchema{module: module, fsys: sub})
}

// trackingTable isolates each module's goose version table. Modules number
// their migrations independently from 00001, so a shared goose_db_version
// would make the second provider see version 1 as already applied and skip
// its whole schema.
func trackingTable(module string) string {
	return "goose_" + module + "_version"
}

func (m *migrationManager) Run(ctx context.Context) error {
	if m.pool == nil {
		return fmt.Errorf("migrations: no database pool configured")
	}
	db := stdlib.OpenDBFromPool(m.pool)
	defer func() { _ = db.Close() }()

	for _, schema := range m.schemas {
		store, err := database.NewStore(database.DialectPostgres, trackingTable(schema.module))
		if err != nil {
			return fmt.Errorf("migrations: failed to create store for %s: %w", schema.module, err)
		}
		provider, err := goose.NewProvider("", db, schema.fsys, goose.WithStore(store))
		if err != nil {
			return fmt.Errorf("migrations: failed to create provider for %s: %w", schema.module, err)
		}
		results, err := provider.Up(ctx)
		if err != nil {
			return fmt.Errorf("migrations: up failed for %s: %w", schema.module, err)
		}
		if m.logger != nil {
			for _, res := range results {
				m.logger.WithFields(logrus.Fields{
					"module":    schema.module,
					"migration": res.Source.Path,
				}).Info("applied migration")
			}
		}
	}
	return nil
}

// migrationRoot locates the directory inside the embedded FS that holds the
// .sql files, so goose sees them at its root.
func migrationRoot(fsys fs.FS) (fs.FS, error) {
	var dir string
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(p, ".sql") && dir == "" {
			dir = path.Dir(p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if dir == "" {
		return nil, fmt.Errorf("migrations: no .sql files found in embedded schema")
	}
	if dir == "." {
		return fsys, nil
	}
	return fs.Sub(fsys, dir)
}
