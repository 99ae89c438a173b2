package db

import (
	"cmp"
	"fmt"
	"io/fs"
	"regexp"
	"slices"
	"strconv"
	"strings"

	embeddedmigrations "github.com/terraincognita07/gymbro/migrations"
	"gorm.io/gorm"
)

var (
	migrationNamePattern = regexp.MustCompile(`^(\d+)_[\w-]+\.sql$`)
	addColumnPattern     = regexp.MustCompile(`(?i)^ALTER\s+TABLE\s+(\S+)\s+ADD\s+COLUMN\s+(\S+)`)
)

type schemaMigration struct {
	Version int
	Name    string
	SQL     string
}

// schemaMigrator applies numbered .sql files once each, recording them in
// schema_migrations. ADD COLUMN statements for columns that already exist are
// skipped so a half-applied file can be rerun.
type schemaMigrator struct {
	source fs.FS
}

func applyEmbeddedMigrations(database *gorm.DB) error {
	return schemaMigrator{source: embeddedmigrations.Schema}.migrate(database)
}

func (migrator schemaMigrator) migrate(database *gorm.DB) error {
	if err := database.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
  version TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`).Error; err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	migrations, err := migrator.load()
	if err != nil {
		return err
	}

	var applied []string
	if err := database.Table("schema_migrations").Pluck("version", &applied).Error; err != nil {
		return fmt.Errorf("load applied migrations: %w", err)
	}

	for _, migration := range migrations {
		if slices.Contains(applied, strconv.Itoa(migration.Version)) {
			continue
		}
		if err := database.Transaction(func(tx *gorm.DB) error {
			return runMigration(tx, migration)
		}); err != nil {
			return err
		}
	}
	return nil
}

func (migrator schemaMigrator) load() ([]schemaMigration, error) {
	entries, err := fs.ReadDir(migrator.source, ".")
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}

	migrations := make([]schemaMigration, 0, len(entries))
	byVersion := make(map[int]string, len(entries))
	for _, entry := range entries {
		match := migrationNamePattern.FindStringSubmatch(entry.Name())
		if entry.IsDir() || match == nil {
			continue
		}
		version, err := strconv.Atoi(match[1])
		if err != nil {
			return nil, fmt.Errorf("migration %s: %w", entry.Name(), err)
		}
		if previous, ok := byVersion[version]; ok {
			return nil, fmt.Errorf("migrations %s and %s share version %d", previous, entry.Name(), version)
		}
		byVersion[version] = entry.Name()

		body, err := fs.ReadFile(migrator.source, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", entry.Name(), err)
		}
		migrations = append(migrations, schemaMigration{Version: version, Name: entry.Name(), SQL: string(body)})
	}

	slices.SortFunc(migrations, func(a, b schemaMigration) int {
		return cmp.Compare(a.Version, b.Version)
	})
	return migrations, nil
}

func runMigration(tx *gorm.DB, migration schemaMigration) error {
	statements := splitSQLStatements(migration.SQL)
	if len(statements) == 0 {
		return fmt.Errorf("migration %s has no SQL statements", migration.Name)
	}

	for _, statement := range statements {
		exists, err := addsExistingColumn(tx, statement)
		if err != nil {
			return fmt.Errorf("migration %s: %w", migration.Name, err)
		}
		if exists {
			continue
		}
		if err := tx.Exec(statement).Error; err != nil {
			return fmt.Errorf("migration %s: %q: %w", migration.Name, statement, err)
		}
	}

	if err := tx.Exec(
		`INSERT INTO schema_migrations(version, name) VALUES (?, ?)`,
		strconv.Itoa(migration.Version), migration.Name,
	).Error; err != nil {
		return fmt.Errorf("record migration %s: %w", migration.Name, err)
	}
	return nil
}

func splitSQLStatements(sqlText string) []string {
	var statements []string
	for _, part := range strings.Split(sqlText, ";") {
		if statement := strings.TrimSpace(part); statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements
}

func addsExistingColumn(database *gorm.DB, statement string) (bool, error) {
	match := addColumnPattern.FindStringSubmatch(strings.TrimSpace(statement))
	if match == nil {
		return false, nil
	}
	table, column := unquoteIdentifier(match[1]), unquoteIdentifier(match[2])

	var columns []struct {
		Name string `gorm:"column:name"`
	}
	var query *gorm.DB
	if database.Dialector.Name() == DriverPostgres {
		query = database.Raw(
			`SELECT column_name AS name FROM information_schema.columns WHERE table_schema = current_schema() AND table_name = ?`,
			table,
		)
	} else {
		query = database.Raw(fmt.Sprintf(`PRAGMA table_info("%s")`, strings.ReplaceAll(table, `"`, `""`)))
	}
	if err := query.Scan(&columns).Error; err != nil {
		return false, fmt.Errorf("columns of %s: %w", table, err)
	}
	for _, candidate := range columns {
		if strings.EqualFold(strings.TrimSpace(candidate.Name), column) {
			return true, nil
		}
	}
	return false, nil
}

func unquoteIdentifier(identifier string) string {
	return strings.Trim(strings.TrimSpace(identifier), "\"`[]")
}
