// Package clickhouse connects the shell to a ClickHouse server through
// database/sql, optionally over mTLS, and reports the server version.
package clickhouse
