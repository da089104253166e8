package clickhouse

import (
	"context"
	"database/sql"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/pkg/errors"
)

// Open connects to the ClickHouse server described by dsn and verifies the
// connection. The returned *sql.DB speaks the native protocol.
//
// Example:
//
//	db, err := clickhouse.Open(ctx, "clickhouse://default:@localhost:9000/default", clickhouse.TLS{})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer db.Close()
func Open(ctx context.Context, dsn string, settings TLS) (*sql.DB, error) {
	opts, err := clickhouse.ParseDSN(dsn)
	if err != nil {
		return nil, errors.Wrap(err, "invalid ClickHouse DSN")
	}

	if settings.Enabled() {
		cfg, err := settings.Config()
		if err != nil {
			return nil, err
		}

		opts.TLS = cfg
	}

	db := clickhouse.OpenDB(opts)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to connect to ClickHouse")
	}

	return db, nil
}
