package submit

import (
	"context"
	"fmt"

	"github.com/vishav1771/signac-flow/internal/scheduler"
	"github.com/vishav1771/signac-flow/internal/utils"
	"golang.org/x/sync/errgroup"
)

// Submission is one invocation of the controller.
type Submission struct {
	Environment string    // Registered environment name
	Requests    []Request // Selected (operation, job) pairs, in order
	BundleSize  int       // Pairs per bundle (0 = everything in one bundle)
	Options
}

// Result is the outcome for one bundle.
type Result struct {
	Bundle    *scheduler.Bundle
	Directive *scheduler.AggregatedDirective
	Script    *scheduler.Script
	Path      string // Artifact path (live mode only)
	JobID     string // Scheduler job ID (live mode only)
}

// Controller resolves environments, renders bundles and submits them.
type Controller struct {
	Registry  *scheduler.Registry
	Submitter Submitter
	Store     *ArtifactStore
}

// ResolveEnvironment returns the registered environment with the given name.
func (c *Controller) ResolveEnvironment(name string) (*scheduler.Environment, error) {
	return c.Registry.Lookup(name)
}

// Submit renders every bundle of the submission. Bundles are prepared
// concurrently; any aggregation or rendering error aborts the whole
// submission before anything is written or submitted. In pretend mode the
// results carry the script text only. Otherwise each script is saved and
// handed to the Submitter in bundle order; a submitter error stops the loop
// and is returned as is, together with the results submitted so far.
func (c *Controller) Submit(ctx context.Context, s Submission) ([]Result, error) {
	env, err := c.ResolveEnvironment(s.Environment)
	if err != nil {
		return nil, err
	}
	if len(s.Requests) == 0 {
		return nil, ErrNothingToSubmit
	}

	bundles := BuildBundles(env, s.Requests, s.BundleSize, s.Options)
	utils.PrintDebug("Built %d bundle(s) for %s", len(bundles), env.Name)

	results := make([]Result, len(bundles))
	g, gctx := errgroup.WithContext(ctx)
	for i, b := range bundles {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			agg, script, err := scheduler.Prepare(b)
			if err != nil {
				return fmt.Errorf("bundle %s: %w", b.CanonicalName(), err)
			}
			results[i] = Result{Bundle: b, Directive: agg, Script: script}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if s.Pretend {
		return results, nil
	}
	return c.submitAll(ctx, env, results, s.Force)
}

func (c *Controller) submitAll(ctx context.Context, env *scheduler.Environment, results []Result, force bool) ([]Result, error) {
	if c.Store == nil || c.Submitter == nil {
		return nil, fmt.Errorf("live submission needs an artifact store and a submitter")
	}
	if !force {
		for _, r := range results {
			if c.Store.Exists(r.Script) {
				return nil, fmt.Errorf("%w: %s (use --force to overwrite)", ErrScriptExists, c.Store.Path(r.Script))
			}
		}
	}

	for i := range results {
		path, err := c.Store.Save(results[i].Script, force)
		if err != nil {
			return results[:i], err
		}
		results[i].Path = path
		utils.PrintDebug("Saved %s", utils.StylePath(path))

		jobID, err := c.Submitter.Submit(ctx, env, results[i].Script, path)
		if err != nil {
			return results[:i], err
		}
		results[i].JobID = jobID
	}
	return results, nil
}
