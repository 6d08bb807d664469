package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const sweepHCL = `
experiment "train" {
  command = "python train.py"

  axis "latent_dim" { values = [1, 2] }
  axis "lr" { values = [0.1] }
}
`

func writeSweepDir(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sweep.hcl"), []byte(content), 0o644))
	return dir
}

func newTestApp(t *testing.T, cfg Config) (*App, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	logs := &bytes.Buffer{}
	config, err := NewConfig(cfg)
	require.NoError(t, err)
	a, err := New(out, logs, config)
	require.NoError(t, err)
	return a, out
}

func TestRun_DryRunListsJobsInGridOrder(t *testing.T) {
	t.Parallel()

	sweepDir := writeSweepDir(t, sweepHCL)
	a, out := newTestApp(t, Config{
		SweepPath: sweepDir,
		OutputDir: filepath.Join(t.TempDir(), "jobs"),
		DryRun:    true,
		LogLevel:  "error",
		LogFormat: "text",
	})

	require.NoError(t, a.Run(context.Background()))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Equal(t, []string{
		"train,latent_dim-1,lr-0.1\tpython train.py --latent_dim=1 --lr=0.1",
		"train,latent_dim-2,lr-0.1\tpython train.py --latent_dim=2 --lr=0.1",
	}, lines)
}

func TestRun_WritesScripts(t *testing.T) {
	t.Parallel()

	sweepDir := writeSweepDir(t, sweepHCL)
	outDir := filepath.Join(t.TempDir(), "jobs")
	a, _ := newTestApp(t, Config{
		SweepPath: sweepDir,
		OutputDir: outDir,
		LogLevel:  "error",
		LogFormat: "text",
	})

	require.NoError(t, a.Run(context.Background()))

	expDir := filepath.Join(outDir, "train")
	require.FileExists(t, filepath.Join(expDir, "train,latent_dim-1,lr-0.1.sh"))
	require.FileExists(t, filepath.Join(expDir, "train,latent_dim-2,lr-0.1.sh"))
	require.FileExists(t, filepath.Join(expDir, "run_train.sh"))

	data, err := os.ReadFile(filepath.Join(expDir, "train,latent_dim-1,lr-0.1.sh"))
	require.NoError(t, err)
	require.Contains(t, string(data), "python train.py --latent_dim=1 --lr=0.1")
}

func TestRun_SacredFormatter(t *testing.T) {
	t.Parallel()

	sweepDir := writeSweepDir(t, `
experiment "sacred_run" {
  command   = "python train.py"
  formatter = "sacred"

  axis "lr" { values = [0.1] }
}
`)
	a, out := newTestApp(t, Config{
		SweepPath: sweepDir,
		DryRun:    true,
		LogLevel:  "error",
		LogFormat: "text",
	})

	require.NoError(t, a.Run(context.Background()))
	require.Contains(t, out.String(), "python train.py with lr=0.1")
}

func TestRun_OptionsFileLayering(t *testing.T) {
	t.Parallel()

	sweepDir := writeSweepDir(t, `
experiment "opt" {
  command = "python x.py"

  axis "x" { values = [1] }

  options {
    sbatch = { time = "4-0" }
  }
}
`)
	optionsPath := filepath.Join(t.TempDir(), "options.yaml")
	require.NoError(t, os.WriteFile(optionsPath, []byte(`
submit: sbatch
sbatch:
  time: "1-0"
  gres: gpu:1
`), 0o644))

	outDir := filepath.Join(t.TempDir(), "jobs")
	a, _ := newTestApp(t, Config{
		SweepPath:   sweepDir,
		OutputDir:   outDir,
		OptionsPath: optionsPath,
		LogLevel:    "error",
		LogFormat:   "text",
	})

	require.NoError(t, a.Run(context.Background()))

	data, err := os.ReadFile(filepath.Join(outDir, "opt", "opt,x-1.sh"))
	require.NoError(t, err)
	content := string(data)
	// Experiment options override the file, which overrides the defaults;
	// untouched nested keys survive the layering.
	require.Contains(t, content, "#SBATCH --time=4-0")
	require.Contains(t, content, "#SBATCH --gres=gpu:1")

	driver, err := os.ReadFile(filepath.Join(outDir, "opt", "run_opt.sh"))
	require.NoError(t, err)
	require.Contains(t, string(driver), "sbatch '")
}

func TestNew_LoadFailure(t *testing.T) {
	t.Parallel()

	cfg, err := NewConfig(Config{SweepPath: filepath.Join(t.TempDir(), "missing")})
	require.NoError(t, err)

	_, err = New(&bytes.Buffer{}, &bytes.Buffer{}, cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load sweep definition")
}

func TestNewConfig(t *testing.T) {
	t.Parallel()

	_, err := NewConfig(Config{})
	require.Error(t, err)

	cfg, err := NewConfig(Config{SweepPath: "sweep.hcl"})
	require.NoError(t, err)
	require.Equal(t, "jobs", cfg.OutputDir)
}
