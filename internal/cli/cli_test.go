package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse_PositionalSweepPath(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	cfg, shouldExit, err := Parse([]string{"sweeps/train.hcl"}, out)

	require.NoError(t, err)
	require.False(t, shouldExit)
	require.Equal(t, "sweeps/train.hcl", cfg.SweepPath)
	require.Equal(t, "jobs", cfg.OutputDir)
	require.Equal(t, "json", cfg.LogFormat)
	require.Equal(t, "info", cfg.LogLevel)
	require.False(t, cfg.DryRun)
}

func TestParse_FlagsWin(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	cfg, shouldExit, err := Parse([]string{
		"-sweep", "a.hcl",
		"-out", "generated",
		"-options", "opts.yaml",
		"-dry-run",
		"-log-format", "TEXT",
		"-log-level", "DEBUG",
	}, out)

	require.NoError(t, err)
	require.False(t, shouldExit)
	require.Equal(t, "a.hcl", cfg.SweepPath)
	require.Equal(t, "generated", cfg.OutputDir)
	require.Equal(t, "opts.yaml", cfg.OptionsPath)
	require.True(t, cfg.DryRun)
	require.Equal(t, "text", cfg.LogFormat)
	require.Equal(t, "debug", cfg.LogLevel)
}

func TestParse_ShorthandFlag(t *testing.T) {
	t.Parallel()

	cfg, _, err := Parse([]string{"-s", "b.hcl"}, &bytes.Buffer{})
	require.NoError(t, err)
	require.Equal(t, "b.hcl", cfg.SweepPath)
}

func TestParse_NoPathPrintsUsage(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	cfg, shouldExit, err := Parse(nil, out)

	require.NoError(t, err)
	require.True(t, shouldExit)
	require.Nil(t, cfg)
	require.Contains(t, out.String(), "Usage:")
}

func TestParse_Help(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	cfg, shouldExit, err := Parse([]string{"-h"}, out)

	require.NoError(t, err)
	require.True(t, shouldExit)
	require.Nil(t, cfg)
	require.Contains(t, out.String(), "Usage:")
}

func TestParse_InvalidLogFormat(t *testing.T) {
	t.Parallel()

	_, _, err := Parse([]string{"-log-format", "xml", "a.hcl"}, &bytes.Buffer{})

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 2, exitErr.Code)
	require.Contains(t, exitErr.Message, "invalid log-format")
}

func TestParse_InvalidLogLevel(t *testing.T) {
	t.Parallel()

	_, _, err := Parse([]string{"-log-level", "loud", "a.hcl"}, &bytes.Buffer{})

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 2, exitErr.Code)
	require.Contains(t, exitErr.Message, "invalid log-level")
}

func TestParse_UnknownFlag(t *testing.T) {
	t.Parallel()

	_, _, err := Parse([]string{"--definitely-not-a-flag"}, &bytes.Buffer{})

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 2, exitErr.Code)
}
