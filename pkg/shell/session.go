package shell

import (
	"context"
	"database/sql"
	"io"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/pseudomuto/cmdreg/pkg/clickhouse"
	"github.com/pseudomuto/cmdreg/pkg/config"
	"github.com/pseudomuto/cmdreg/pkg/consts"
	"github.com/pseudomuto/cmdreg/pkg/docker"
	"github.com/pseudomuto/cmdreg/pkg/feedback"
	"github.com/pseudomuto/cmdreg/pkg/listeners"
	"github.com/pseudomuto/cmdreg/pkg/registration"
	"github.com/pseudomuto/cmdreg/pkg/script"
	"github.com/pseudomuto/cmdreg/pkg/substvar"

	_ "modernc.org/sqlite"
)

// ErrExit is returned by Execute for exit and quit.
var ErrExit = errors.New("exit requested")

type (
	// Options configure a Session.
	Options struct {
		// Config is required.
		Config *config.Config

		// Out receives query results, feedback and script output.
		Out io.Writer

		// DB replaces the configured database. The session does not close it.
		DB *sql.DB

		// Echo writes each statement read by Run after the prompt, which keeps
		// transcripts of piped input readable.
		Echo bool
	}

	// Session is a single-threaded shell session.
	Session struct {
		cfg        *config.Config
		out        io.Writer
		echo       bool
		db         *sql.DB
		ownsDB     bool
		sandbox    *docker.Sandbox
		host       *listeners.Registry
		vars       *substvar.Store
		dispatcher *registration.Dispatcher
		scripts    *script.Runner
	}
)

// New creates a Session and opens its database unless one is injected.
//
// Example:
//
//	cfg, _ := config.Default()
//	sess, err := shell.New(ctx, shell.Options{Config: cfg, Out: os.Stdout})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer sess.Close(ctx)
//
//	err = sess.Run(ctx, os.Stdin)
func New(ctx context.Context, opts Options) (*Session, error) {
	if opts.Config == nil {
		return nil, errors.New("shell requires a configuration")
	}

	s := &Session{
		cfg:  opts.Config,
		out:  opts.Out,
		echo: opts.Echo,
		db:   opts.DB,
		host: listeners.New(),
		vars: substvar.New(),
	}

	if s.out == nil {
		s.out = io.Discard
	}

	s.dispatcher = registration.NewDispatcher(registration.Env{
		Host:     s.host,
		Feedback: feedback.New(s.out),
	})

	s.scripts = script.NewRunner(script.Options{
		Dispatcher: s.dispatcher,
		Vars:       s.vars,
		Out:        s.out,
		Exec:       s.Execute,
		Dir:        s.cfg.Scripts.Path,
	})

	if s.db == nil {
		if err := s.open(ctx); err != nil {
			_ = s.Close(ctx)
			return nil, err
		}
	}

	return s, nil
}

func (s *Session) open(ctx context.Context) error {
	db := s.cfg.Database

	switch {
	case db.Sandbox.Enabled:
		s.sandbox = docker.NewWithOptions(docker.Options{Version: db.Sandbox.Version})
		if err := s.sandbox.Start(ctx); err != nil {
			return err
		}

		dsn, err := s.sandbox.DSN(ctx)
		if err != nil {
			return err
		}

		s.db, err = clickhouse.Open(ctx, dsn, db.TLS)
		if err != nil {
			return err
		}

	case db.Driver == consts.DriverClickHouse:
		conn, err := clickhouse.Open(ctx, db.DSN, db.TLS)
		if err != nil {
			return err
		}

		s.db = conn

	default:
		conn, err := sql.Open(consts.DriverSQLite, db.DSN)
		if err != nil {
			return errors.Wrapf(err, "failed to open sqlite database: %s", db.DSN)
		}

		// Every connection to :memory: is a separate database.
		conn.SetMaxOpenConns(1)
		if err := conn.PingContext(ctx); err != nil {
			_ = conn.Close()
			return errors.Wrapf(err, "failed to open sqlite database: %s", db.DSN)
		}

		s.db = conn
	}

	s.ownsDB = true
	slog.Debug("connected", "driver", db.Driver, "sandbox", db.Sandbox.Enabled)
	return nil
}

// Close releases the database and stops the sandbox, if any.
func (s *Session) Close(ctx context.Context) error {
	var err error
	if s.ownsDB && s.db != nil {
		err = errors.Wrap(s.db.Close(), "failed to close database")
		s.db = nil
	}

	if s.sandbox != nil {
		if stopErr := s.sandbox.Stop(ctx); err == nil {
			err = stopErr
		}
	}

	return err
}

// Version describes the connected database server.
func (s *Session) Version(ctx context.Context) (string, error) {
	if s.cfg.Database.Driver == consts.DriverClickHouse || s.cfg.Database.Sandbox.Enabled {
		v, err := clickhouse.ServerVersion(ctx, s.db)
		if err != nil {
			return "", err
		}

		return "ClickHouse " + v.String(), nil
	}

	var v string
	if err := s.db.QueryRowContext(ctx, "select sqlite_version()").Scan(&v); err != nil {
		return "", errors.Wrap(err, "failed to query SQLite version")
	}

	return "SQLite " + v, nil
}

// Commands returns the names of the registered commands.
func (s *Session) Commands() []string {
	return s.host.Names(registration.ForAllStatements)
}

// Vars exposes the session's substitution variables.
func (s *Session) Vars() *substvar.Store {
	return s.vars
}
