package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/vk/gridjobs/internal/argfmt"
	"github.com/vk/gridjobs/internal/ctxlog"
	"github.com/vk/gridjobs/internal/grid"
	"github.com/vk/gridjobs/internal/mergemap"
	"github.com/vk/gridjobs/internal/model"
	"github.com/vk/gridjobs/internal/naming"
	"github.com/vk/gridjobs/internal/script"
	"github.com/vk/gridjobs/internal/value"
)

// Run executes the main application logic: expand every experiment's grid,
// synthesize the job listing, and either print it or write job scripts.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	baseOptions := script.DefaultOptions()
	if a.config.OptionsPath != "" {
		fileOptions, err := script.LoadOptionsFile(a.config.OptionsPath)
		if err != nil {
			return err
		}
		baseOptions = mergemap.Merge(baseOptions, fileOptions)
		a.logger.Debug("Layered options file over defaults.", "path", a.config.OptionsPath)
	}

	for _, exp := range a.sweep.Experiments {
		jobs, err := a.expandExperiment(exp)
		if err != nil {
			return fmt.Errorf("experiment %q: %w", exp.Name, err)
		}
		a.logger.Info("Experiment expanded.", "experiment", exp.Name, "jobs", len(jobs), "grid_size", exp.Spec.Size())

		if a.config.DryRun {
			for _, job := range jobs {
				fmt.Fprintf(a.outW, "%s\t%s %s\n", job.Name, job.Command, job.Args)
			}
			continue
		}

		options := mergemap.Merge(baseOptions, exp.Options)
		dir := filepath.Join(a.config.OutputDir, exp.Name)
		writer := script.NewWriter(dir, options)
		if _, err := writer.WriteExperiment(ctx, exp.Name, jobs); err != nil {
			return fmt.Errorf("experiment %q: %w", exp.Name, err)
		}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// expandExperiment enumerates one experiment's grid into its job listing,
// in deterministic grid order.
func (a *App) expandExperiment(exp *model.Experiment) ([]script.Job, error) {
	combos, err := grid.Expand(exp.Spec)
	if err != nil {
		return nil, err
	}

	style := argfmt.Lookup(exp.Formatter)
	jobs := make([]script.Job, 0, exp.Spec.Size())

	for combo := range combos {
		name, err := naming.Job(exp.Name, combo, "", naming.DefaultAllowed)
		if err != nil {
			return nil, err
		}

		args, err := style.Build(nil, combo)
		if err != nil {
			return nil, err
		}

		params, err := nativeParams(combo)
		if err != nil {
			return nil, err
		}

		jobs = append(jobs, script.Job{
			Name:    name,
			Command: exp.Command,
			Args:    args,
			Params:  params,
		})
	}
	return jobs, nil
}

// nativeParams converts a combo into plain Go values for provenance output.
func nativeParams(combo *grid.Combo) (map[string]any, error) {
	params := make(map[string]any, combo.Len())
	for _, name := range combo.Names() {
		v, _ := combo.Get(name)
		nv, err := value.Native(v)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", name, err)
		}
		params[name] = nv
	}
	return params, nil
}
