package script

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriter_WriteExperiment(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "jobs")
	writer := NewWriter(dir, testOptions())

	jobs := []Job{
		{
			Name:    "train,lr-0.1",
			Command: "python train.py",
			Args:    "--lr=0.1",
			Params:  map[string]any{"lr": 0.1},
		},
		{
			Name:    "train,lr-0.01",
			Command: "python train.py",
			Args:    "--lr=0.01",
			Params:  map[string]any{"lr": 0.01},
		},
	}

	written, err := writer.WriteExperiment(context.Background(), "train", jobs)
	require.NoError(t, err)
	require.Len(t, written, 3)

	// Job scripts come first, driver last, in enumeration order.
	require.Equal(t, filepath.Join(dir, "train,lr-0.1.sh"), written[0])
	require.Equal(t, filepath.Join(dir, "train,lr-0.01.sh"), written[1])
	require.Equal(t, filepath.Join(dir, "run_train.sh"), written[2])

	for _, path := range written {
		info, err := os.Stat(path)
		require.NoError(t, err)
		require.NotZero(t, info.Mode()&0o100, "%s must be executable", path)
	}

	data, err := os.ReadFile(written[0])
	require.NoError(t, err)
	content := string(data)
	require.Contains(t, content, "#!/bin/sh")
	require.Contains(t, content, "#SBATCH --job-name=train,lr-0.1")
	require.Contains(t, content, "#SBATCH --time=2-0")
	require.Contains(t, content, `"lr": 0.1`)
	require.Contains(t, content, "# {")
	require.Contains(t, content, "python train.py --lr=0.1")

	driver, err := os.ReadFile(written[2])
	require.NoError(t, err)
	require.Contains(t, string(driver), "sbatch '"+written[0]+"'")
	require.Contains(t, string(driver), "sbatch '"+written[1]+"'")
}

// testOptions builds the layered options used by the writer tests.
func testOptions() map[string]any {
	opts := DefaultOptions()
	opts["submit"] = "sbatch"
	opts["sbatch"] = map[string]any{"time": "2-0"}
	return opts
}

func TestWriter_BacksUpExistingScripts(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "jobs")
	writer := NewWriter(dir, nil)

	jobs := []Job{{
		Name:    "exp,x-1",
		Command: "echo",
		Args:    "--x=1",
		Params:  map[string]any{"x": 1.0},
	}}

	_, err := writer.WriteExperiment(context.Background(), "exp", jobs)
	require.NoError(t, err)

	_, err = writer.WriteExperiment(context.Background(), "exp", jobs)
	require.NoError(t, err)

	require.FileExists(t, filepath.Join(dir, "exp,x-1.sh"))
	require.FileExists(t, filepath.Join(dir, "exp,x-1.sh.1"))
	require.FileExists(t, filepath.Join(dir, "run_exp.sh.1"))
}

func TestPrettyJSON(t *testing.T) {
	t.Parallel()

	require.Equal(t, "", PrettyJSON(nil))
	require.Equal(t, "", PrettyJSON(map[string]any{}))

	got := PrettyJSON(map[string]any{"b": 2, "a": 1})
	// Keys are sorted by the JSON encoder.
	require.Equal(t, "{\n    \"a\": 1,\n    \"b\": 2\n}", got)
}

func TestPrefixLines(t *testing.T) {
	t.Parallel()

	require.Equal(t, "# a\n# b", PrefixLines("a\nb", "# "))
	require.Equal(t, "# ", PrefixLines("", "# "))
}

func TestLoadOptionsFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "options.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
shell: /bin/bash
submit: sbatch
sbatch:
  time: "1-0"
  gres: gpu:1
`), 0o644))

	got, err := LoadOptionsFile(path)
	require.NoError(t, err)
	require.Equal(t, "/bin/bash", got["shell"])
	require.Equal(t, "sbatch", got["submit"])
	require.Equal(t, map[string]any{"time": "1-0", "gres": "gpu:1"}, got["sbatch"])
}

func TestLoadOptionsFile_Missing(t *testing.T) {
	t.Parallel()

	_, err := LoadOptionsFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadOptionsFile_Invalid(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml:::"), 0o644))

	_, err := LoadOptionsFile(path)
	require.Error(t, err)
}
