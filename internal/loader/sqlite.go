package loader

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"strings"
	"time"

	jsonschemagen "github.com/invopop/jsonschema"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/sethvargo/go-retry"
	_ "modernc.org/sqlite"

	"github.com/avitko/dicrector/internal/dicerr"
)

// SQLiteConfig is the JSON document a ".dic"/".dicx"/".rex"/".rexw"
// dictionary points to when its rules live in a database instead of a flat
// file: a path to the database, optional driver connection options, and
// the query that returns (pattern, target) rows.
type SQLiteConfig struct {
	DBPath         string            `json:"db_path" jsonschema:"required,description=Filesystem path to the sqlite database."`
	ConnectOptions map[string]string `json:"connect_options,omitempty" jsonschema:"description=Extra sqlite connection string parameters."`
	Query          string            `json:"query" jsonschema:"required,description=Query returning (pattern, target) rows."`
}

var sqliteConfigSchema = jsonschemagen.Reflect(&SQLiteConfig{})

// ReadSQLite reads the JSON config at path, validates it against
// SQLiteConfig's schema, then opens and queries the database it describes.
func ReadSQLite(ctx context.Context, path string) ([]Row, error) {
	raw, err := readConfigFile(path)
	if err != nil {
		return nil, err
	}

	if err := validateSQLiteConfig(path, raw); err != nil {
		return nil, err
	}

	var cfg SQLiteConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, dicerr.ConfigInvalid(path, err)
	}

	db, err := openSQLite(ctx, cfg)
	if err != nil {
		return nil, dicerr.LoaderIOError(cfg.DBPath, err)
	}
	defer db.Close()

	return queryRows(ctx, db, cfg)
}

func readConfigFile(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, dicerr.LoaderIOError(path, err)
	}
	return raw, nil
}

// openSQLite dials the database with a short retry budget: sqlite
// databases built by an external ETL job are sometimes mid-write when a
// dictionary first loads.
func openSQLite(ctx context.Context, cfg SQLiteConfig) (*sql.DB, error) {
	dsn := cfg.DBPath
	if len(cfg.ConnectOptions) > 0 {
		var b strings.Builder
		b.WriteString(dsn)
		b.WriteString("?")
		first := true
		for k, v := range cfg.ConnectOptions {
			if !first {
				b.WriteString("&")
			}
			first = false
			b.WriteString(k)
			b.WriteString("=")
			b.WriteString(v)
		}
		dsn = b.String()
	}

	var db *sql.DB
	backoff := retry.WithMaxRetries(3, retry.NewExponential(100*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		opened, openErr := sql.Open("sqlite", dsn)
		if openErr != nil {
			return retry.RetryableError(openErr)
		}
		if pingErr := opened.PingContext(ctx); pingErr != nil {
			opened.Close()
			return retry.RetryableError(pingErr)
		}
		db = opened
		return nil
	})
	return db, err
}

func queryRows(ctx context.Context, db *sql.DB, cfg SQLiteConfig) ([]Row, error) {
	rows, err := db.QueryContext(ctx, cfg.Query)
	if err != nil {
		return nil, dicerr.LoaderIOError(cfg.DBPath, err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var pattern, target string
		if err := rows.Scan(&pattern, &target); err != nil {
			return nil, dicerr.LoaderIOError(cfg.DBPath, err)
		}
		out = append(out, Row{Pattern: pattern, Target: target})
	}
	if err := rows.Err(); err != nil {
		return nil, dicerr.LoaderIOError(cfg.DBPath, err)
	}
	return out, nil
}

func validateSQLiteConfig(path string, raw []byte) error {
	schemaBytes, err := json.Marshal(sqliteConfigSchema)
	if err != nil {
		return dicerr.ConfigInvalid(path, err)
	}

	compiler := jsonschema.NewCompiler()
	resourceURL := "mem://" + path + "#schema.json"
	if err := compiler.AddResource(resourceURL, strings.NewReader(string(schemaBytes))); err != nil {
		return dicerr.ConfigInvalid(path, err)
	}
	schema, err := compiler.Compile(resourceURL)
	if err != nil {
		return dicerr.ConfigInvalid(path, err)
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return dicerr.ConfigInvalid(path, err)
	}
	if err := schema.Validate(doc); err != nil {
		return dicerr.ConfigInvalid(path, err)
	}
	return nil
}
