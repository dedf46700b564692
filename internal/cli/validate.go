package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/powerset"
	"github.com/aretw0/powerset/internal/validator"
	loamAdapter "github.com/aretw0/powerset/pkg/adapters/loam"
	"github.com/aretw0/powerset/pkg/parser"
	"github.com/aretw0/powerset/pkg/schema"
)

// ErrInvalid is returned when at least one definition does not build.
var ErrInvalid = errors.New("validation failed")

// RunValidate checks every file in paths, or every catalog entry when paths is empty.
// Warnings are printed but only build problems fail the run.
func RunValidate(ctx context.Context, paths []string, opts Options) error {
	opts.defaults()

	var defs []*schema.Definition
	var failed, total int

	if len(paths) > 0 {
		total = len(paths)
		for _, path := range paths {
			def, err := parser.LoadFile(path)
			if err != nil {
				fmt.Fprintf(opts.Out, "%s: error: %v\n", path, err)
				failed++
				continue
			}
			defs = append(defs, def)
		}
	} else {
		if opts.CatalogDir == "" {
			return powerset.ErrNoCatalog
		}
		catalog, err := loamAdapter.Open(opts.CatalogDir)
		if err != nil {
			return err
		}
		names, err := catalog.List(ctx)
		if err != nil {
			return err
		}
		total = len(names)
		for _, name := range names {
			def, err := catalog.Get(ctx, name)
			if err != nil {
				fmt.Fprintf(opts.Out, "%s: error: %v\n", name, err)
				failed++
				continue
			}
			defs = append(defs, def)
		}
	}

	for _, def := range defs {
		report := validator.Validate(def)
		fmt.Fprint(opts.Out, report.String())
		if !report.OK() {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d definitions", ErrInvalid, failed, total)
	}
	return nil
}
