// Package cmd provides the CLI commands of cmdreg.
//
// # Available Commands
//
//   - shell: interactive SQL session hosting registered script commands
//   - exec: run a file of statements non-interactively
//   - version: print build information
//
// Each command is implemented as a function returning a *cli.Command, following
// the urfave/cli/v3 pattern, and is contributed to the "commands" fx group by
// Module.
//
// # Global Options
//
//   - --config, -c: configuration file (defaults to cmdreg.yaml, env CMDREG_CONFIG)
//   - --debug: log registration and dispatch events to stderr
//
// # Example Usage
//
//	cmdreg shell                                   # SQLite in memory
//	cmdreg shell --sandbox                         # throwaway ClickHouse in Docker
//	cmdreg exec --dsn file:app.db migrate.sql      # run statements, stop on error
package cmd
