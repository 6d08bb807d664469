// Package script writes the job scripts an external scheduler consumes.
// It is deliberately dumb I/O glue around the expansion core: its only
// contract is accepting a mapping of options plus a list of named jobs
// and their command lines.
package script

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/vk/gridjobs/internal/ctxlog"
	"github.com/vk/gridjobs/internal/fsutil"
	"github.com/vk/gridjobs/internal/mergemap"
)

// Job is one generated job: its canonical name, the command to run and the
// formatted argument string, plus the raw parameters for provenance.
type Job struct {
	Name    string
	Command string
	Args    string
	Params  map[string]any
}

// scriptTpl renders a single job script. The parameter block is embedded
// as comment lines so a job script documents its own grid point.
var scriptTpl = template.Must(template.New("job").Parse(`#!{{.Shell}}
{{- range .Header}}
#SBATCH --{{.}}
{{- end}}
#
# job: {{.Name}}
{{.ParamsComment}}

{{.Command}} {{.Args}}
`))

// driverTpl renders the per-experiment driver that submits every job
// script in enumeration order.
var driverTpl = template.Must(template.New("driver").Parse(`#!{{.Shell}}
# submit all {{.Count}} jobs for experiment {{.Experiment}}
{{- range .Lines}}
{{.}}
{{- end}}
`))

// Writer emits job scripts for one output directory.
type Writer struct {
	dir     string
	options map[string]any
}

// NewWriter returns a writer rooted at dir. The options map is the fully
// layered script configuration for one experiment.
func NewWriter(dir string, options map[string]any) *Writer {
	if options == nil {
		options = DefaultOptions()
	}
	return &Writer{dir: dir, options: options}
}

// WriteExperiment writes one script per job plus a run_<experiment>.sh
// driver, backing up any file it would overwrite and marking everything
// executable. It returns the written script paths, driver last.
func (w *Writer) WriteExperiment(ctx context.Context, experiment string, jobs []Job) ([]string, error) {
	logger := ctxlog.FromContext(ctx)

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", w.dir, err)
	}

	var written []string
	var driverLines []string
	submit := stringOption(w.options, "submit")

	for _, job := range jobs {
		path := filepath.Join(w.dir, job.Name+".sh")
		if err := w.writeJob(ctx, path, job); err != nil {
			return nil, err
		}
		written = append(written, path)
		driverLines = append(driverLines, submit+" '"+path+"'")
	}

	driverPath := filepath.Join(w.dir, "run_"+experiment+".sh")
	var buf bytes.Buffer
	err := driverTpl.Execute(&buf, struct {
		Shell      string
		Experiment string
		Count      int
		Lines      []string
	}{
		Shell:      stringOption(w.options, "shell"),
		Experiment: experiment,
		Count:      len(jobs),
		Lines:      driverLines,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render driver script: %w", err)
	}
	if err := w.writeFile(ctx, driverPath, buf.Bytes()); err != nil {
		return nil, err
	}
	written = append(written, driverPath)

	logger.Info("Wrote job scripts.", "experiment", experiment, "jobs", len(jobs), "dir", w.dir)
	return written, nil
}

// writeJob renders and writes a single job script.
func (w *Writer) writeJob(ctx context.Context, path string, job Job) error {
	// The scheduler header gets the job name layered on top of the
	// configured pairs; per-job values always win.
	header := headerMap(w.options)
	header = mergemap.Override(header, map[string]any{"job-name": job.Name})

	var buf bytes.Buffer
	err := scriptTpl.Execute(&buf, struct {
		Shell         string
		Header        []string
		Name          string
		ParamsComment string
		Command       string
		Args          string
	}{
		Shell:         stringOption(w.options, "shell"),
		Header:        headerLines(header),
		Name:          job.Name,
		ParamsComment: PrefixLines(PrettyJSON(job.Params), "# "),
		Command:       job.Command,
		Args:          job.Args,
	})
	if err != nil {
		return fmt.Errorf("failed to render job script %s: %w", path, err)
	}

	return w.writeFile(ctx, path, buf.Bytes())
}

// writeFile writes data to path with backup-on-overwrite and the
// executable bit set.
func (w *Writer) writeFile(ctx context.Context, path string, data []byte) error {
	logger := ctxlog.FromContext(ctx)

	backup, err := fsutil.BackupExisting(path)
	if err != nil {
		return fmt.Errorf("failed to back up %s: %w", path, err)
	}
	if backup != "" {
		logger.Info("Moved existing script to backup.", "path", path, "backup", backup)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return fsutil.MakeExecutable(path)
}

// headerMap extracts the scheduler header pairs from the options.
func headerMap(options map[string]any) map[string]any {
	out := make(map[string]any)
	if nested, ok := options["sbatch"].(map[string]any); ok {
		for k, v := range nested {
			out[k] = v
		}
	}
	return out
}

// headerLines renders header pairs as "key=value" fragments, sorted for
// stable output.
func headerLines(header map[string]any) []string {
	keys := make([]string, 0, len(header))
	for k := range header {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s=%v", k, header[k]))
	}
	return lines
}

// stringOption fetches a string-valued option, or "" when absent.
func stringOption(options map[string]any, key string) string {
	if s, ok := options[key].(string); ok {
		return s
	}
	return ""
}

// PrettyJSON renders a value as indented JSON with sorted keys, or the
// empty string for empty input.
func PrettyJSON(v any) string {
	if v == nil {
		return ""
	}
	if m, ok := v.(map[string]any); ok && len(m) == 0 {
		return ""
	}
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return ""
	}
	return string(data)
}

// PrefixLines prepends prefix to every line of text.
func PrefixLines(text string, prefix string) string {
	if text == "" {
		return prefix
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
