package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/pseudomuto/cmdreg/pkg/config"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

// testConfig is an in-memory SQLite configuration using the shipped scripts.
func testConfig(t *testing.T, yamlData string) *config.Config {
	t.Helper()

	cfg, err := config.LoadConfig(strings.NewReader(yamlData))
	require.NoError(t, err)
	cfg.Scripts.Path = "../../scripts"
	return cfg
}

// runApp runs command inside a root app carrying the global flags.
func runApp(t *testing.T, command *cli.Command, input string, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true

	var out bytes.Buffer
	app := &cli.Command{
		Name:      "test",
		Flags:     rootFlags(),
		Commands:  []*cli.Command{command},
		Reader:    strings.NewReader(input),
		Writer:    &out,
		ErrWriter: &out,
	}

	err := app.Run(context.Background(), append([]string{"test", command.Name}, args...))
	return out.String(), err
}
