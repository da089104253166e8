// Package docker runs a throwaway ClickHouse server for shell sessions started
// with --sandbox and for integration tests of the ClickHouse backend.
//
// The server runs in a container managed by testcontainers and is removed when
// the sandbox stops. SQL files in an optional init directory are executed by
// the server image on first start, which makes it easy to seed tables that
// hosted scripts work against.
//
//	sandbox := docker.NewWithOptions(docker.Options{Version: "25.7", InitDir: "db/seed"})
//	if err := sandbox.Start(ctx); err != nil {
//		log.Fatal(err)
//	}
//	defer sandbox.Stop(ctx)
//
//	dsn, _ := sandbox.DSN(ctx)
package docker
