// Package batch runs the document pipeline over many designs: glob
// expansion, parallel calculate-validate-resolve-synthesize, and file
// export. Watch mode re-runs the pipeline on changed documents.
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pzfreo/wormgear-sub002/internal/docio"
	"github.com/pzfreo/wormgear-sub002/pkg/calc"
	"github.com/pzfreo/wormgear-sub002/pkg/design"
	"github.com/pzfreo/wormgear-sub002/pkg/features"
	"github.com/pzfreo/wormgear-sub002/pkg/geometry"
	"github.com/pzfreo/wormgear-sub002/pkg/kernel"
	"github.com/pzfreo/wormgear-sub002/pkg/standards"
)

// Part names accepted by Config.Parts.
const (
	PartWorm  = "worm"
	PartWheel = "wheel"
)

// exportCells is the mesh resolution handed to the backend 3MF writer.
const exportCells = 180

// Config selects batch outputs and concurrency.
type Config struct {
	OutDir  string
	Format  string   // "stl" (default) or "3mf"
	Parts   []string // subset of worm,wheel; empty = both
	Workers int      // parallel designs; 0 = 1
}

// Runner executes the pipeline for design documents.
type Runner struct {
	log    *zap.Logger
	k      kernel.Kernel
	tables *standards.Tables
	tuning standards.Tuning
	cfg    Config
}

// NewRunner builds a Runner. A nil logger is replaced with a no-op.
func NewRunner(log *zap.Logger, k kernel.Kernel, tables *standards.Tables, tuning standards.Tuning, cfg Config) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &Runner{log: log, k: k, tables: tables, tuning: tuning, cfg: cfg}
}

// Expand resolves doublestar glob patterns to a sorted, deduplicated
// list of document paths. Zero total matches is an error.
func Expand(patterns []string) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad glob %q: %w", pattern, err)
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			out = append(out, m)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no design documents match %v", patterns)
	}
	sort.Strings(out)
	return out, nil
}

// Run executes the pipeline for every path, at most Workers designs in
// flight. A failing design is logged and counted but does not stop the
// others; context cancellation does. The returned error is nil only if
// every design succeeded.
func (r *Runner) Run(ctx context.Context, paths []string) error {
	if r.cfg.OutDir != "" {
		if err := os.MkdirAll(r.cfg.OutDir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	var failed atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)
	for _, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := r.RunOne(ctx, path); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				failed.Add(1)
				r.log.Error("design failed", zap.String("design", path), zap.Error(err))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if n := failed.Load(); n > 0 {
		return fmt.Errorf("%d of %d designs failed", n, len(paths))
	}
	r.log.Info("batch complete", zap.Int("designs", len(paths)))
	return nil
}

// RunOne loads a document from disk and runs the pipeline for it.
func (r *Runner) RunOne(ctx context.Context, path string) error {
	doc, err := docio.Load(path, r.log)
	if err != nil {
		return err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return r.RunDoc(ctx, name, doc)
}

// RunDoc executes the full pipeline for one document: derive, optional
// snap, validate, resolve features, build solids, export under the
// given name. Cancellation is threaded into the hobbing loop through
// the progress callback.
func (r *Runner) RunDoc(ctx context.Context, name string, doc *docio.Document) error {
	log := r.log.With(zap.String("design", name))
	if r.cfg.OutDir != "" {
		if err := os.MkdirAll(r.cfg.OutDir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	calculator := calc.New(r.tables, r.tuning)
	res, err := doc.Derive(calculator)
	if err != nil {
		return err
	}
	pair := res.Pair
	if doc.Snap {
		snapped, did, err := calculator.Snap(pair)
		if err != nil {
			return err
		}
		if did {
			log.Info("snapped to standard module",
				zap.Float64("from", pair.Worm.Module),
				zap.Float64("to", snapped.Worm.Module))
		}
		pair = snapped
	}

	intent, err := doc.Intent()
	if err != nil {
		return err
	}
	findings := design.Validate(pair, intent, r.tables, r.tuning)
	if intent.Hobbed {
		// The hob cuts the throat whether or not the blank was relieved.
		findings = findings.Without(design.CodeGloboidNotThroated)
	}
	for _, f := range findings {
		switch f.Severity {
		case design.SeverityWarning:
			log.Warn(f.Message, zap.String("code", f.Code))
		case design.SeverityInfo:
			log.Info(f.Message, zap.String("code", f.Code))
		}
	}
	if !findings.OK() {
		return fmt.Errorf("validation failed: %v", findings.Errors())
	}

	intent = intent.Resolved(pair, r.tuning)
	resolver := features.New(r.tables, r.tuning)
	engine := geometry.New(r.k, r.tables, r.tuning)

	progress := func(step int, frac float64, msg string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		log.Debug(msg, zap.Float64("frac", frac))
		return nil
	}

	if r.wantPart(PartWorm) {
		spec, err := doc.WormFeatures.FeatureSpec()
		if err != nil {
			return err
		}
		feat, err := resolver.Resolve(spec, features.PartDims{
			PitchDiameter: pair.Worm.PitchDiameter,
			RootDiameter:  pair.Worm.RootDiameter,
			Length:        intent.WormLength,
		})
		if err != nil {
			return err
		}
		model, err := engine.BuildWorm(pair, intent, feat)
		if err != nil {
			return err
		}
		if err := r.export(model, name); err != nil {
			return err
		}
		log.Info("worm built", zap.Float64("volume_mm3", model.Volume))
	}

	if r.wantPart(PartWheel) {
		spec, err := doc.WheelFeatures.FeatureSpec()
		if err != nil {
			return err
		}
		feat, err := resolver.Resolve(spec, features.PartDims{
			PitchDiameter: pair.Wheel.PitchDiameter,
			RootDiameter:  pair.Wheel.RootDiameter,
			Length:        intent.FaceWidth,
		})
		if err != nil {
			return err
		}
		var model *design.SolidModel
		if intent.Hobbed {
			model, err = engine.HobWheel(pair, intent, feat, progress)
		} else {
			model, err = engine.BuildWheel(pair, intent, feat)
		}
		if err != nil {
			return err
		}
		if err := r.export(model, name); err != nil {
			return err
		}
		log.Info("wheel built", zap.Float64("volume_mm3", model.Volume))
	}
	return nil
}

func (r *Runner) wantPart(part string) bool {
	if len(r.cfg.Parts) == 0 {
		return true
	}
	for _, p := range r.cfg.Parts {
		if p == part {
			return true
		}
	}
	return false
}

// export writes one part model in the configured format.
func (r *Runner) export(model *design.SolidModel, name string) error {
	base := filepath.Join(r.cfg.OutDir, name+"-"+model.Part)
	switch r.cfg.Format {
	case "", "stl":
		f, err := os.Create(base + ".stl")
		if err != nil {
			return err
		}
		if err := kernel.WriteSTL(f, model.Mesh); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	case "3mf":
		exp, ok := r.k.(kernel.Exporter3MF)
		if !ok {
			return design.Inputf("format", r.cfg.Format, "backend cannot write 3MF")
		}
		return exp.To3MF(model.Solid, base+".3mf", exportCells)
	}
	return design.Inputf("format", r.cfg.Format, `must be "stl" or "3mf"`)
}
