package docker

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/mount"
	"github.com/docker/go-connections/nat"
	"github.com/pkg/errors"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/clickhouse"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	// DefaultVersion is the ClickHouse image tag used when none is configured
	DefaultVersion = "latest"

	// initDBPath is where the server image looks for seed scripts
	initDBPath = "/docker-entrypoint-initdb.d"

	startupTimeout = 5 * time.Minute
)

var ErrNotRunning = errors.New("sandbox is not running")

type (
	// Options configure a Sandbox.
	Options struct {
		// Version is the ClickHouse image tag (default: latest)
		Version string

		// InitDir is an optional directory of .sql/.sh files run on first start.
		// Relative paths are resolved against the working directory.
		InitDir string
	}

	// Sandbox manages a single ClickHouse container.
	Sandbox struct {
		options   Options
		container *clickhouse.ClickHouseContainer
	}
)

// New creates a Sandbox with default options.
func New() *Sandbox {
	return NewWithOptions(Options{})
}

// NewWithOptions creates a Sandbox with custom options.
func NewWithOptions(opts Options) *Sandbox {
	if opts.Version == "" {
		opts.Version = DefaultVersion
	}

	return &Sandbox{options: opts}
}

// Start runs the container and waits until the HTTP interface answers.
func (s *Sandbox) Start(ctx context.Context) error {
	if s.container != nil {
		return errors.New("sandbox is already running")
	}

	customizers := []testcontainers.ContainerCustomizer{
		clickhouse.WithUsername("default"),
		clickhouse.WithPassword(""),
		testcontainers.WithEnv(map[string]string{"CLICKHOUSE_DEFAULT_ACCESS_MANAGEMENT": "1"}),
		testcontainers.WithWaitStrategyAndDeadline(
			startupTimeout,
			wait.
				NewHTTPStrategy("/").
				WithPort(nat.Port("8123/tcp")).
				WithStatusCodeMatcher(func(status int) bool {
					return status == 200
				}),
		),
	}

	if s.options.InitDir != "" {
		initDir, err := filepath.Abs(s.options.InitDir)
		if err != nil {
			return errors.Wrapf(err, "failed to get absolute path for InitDir: %s", s.options.InitDir)
		}

		customizers = append(customizers, testcontainers.WithHostConfigModifier(func(hc *container.HostConfig) {
			hc.Mounts = append(hc.Mounts, mount.Mount{
				Type:     mount.TypeBind,
				Source:   initDir,
				Target:   initDBPath,
				ReadOnly: true,
			})
		}))
	}

	c, err := clickhouse.Run(ctx,
		fmt.Sprintf("clickhouse/clickhouse-server:%s-alpine", s.options.Version),
		customizers...,
	)
	if err != nil {
		return errors.Wrap(err, "failed to start ClickHouse sandbox")
	}

	s.container = c
	return nil
}

// Stop terminates and removes the container. Stopping a sandbox that is not
// running is a no-op.
func (s *Sandbox) Stop(ctx context.Context) error {
	if s.container == nil {
		return nil
	}

	err := s.container.Terminate(ctx)
	s.container = nil

	return errors.Wrap(err, "failed to stop ClickHouse sandbox")
}

// DSN returns a clickhouse:// data source name for the running server.
func (s *Sandbox) DSN(ctx context.Context) (string, error) {
	if s.container == nil {
		return "", ErrNotRunning
	}

	dsn, err := s.container.ConnectionString(ctx)
	if err != nil {
		return "", errors.Wrap(err, "failed to get connection string")
	}

	return dsn, nil
}

// IsRunning returns true if the container is currently running.
func (s *Sandbox) IsRunning() bool {
	return s.container != nil
}
