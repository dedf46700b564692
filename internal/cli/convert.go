package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/powerset"
	"github.com/aretw0/powerset/pkg/domain"
	"github.com/aretw0/powerset/pkg/parser"
	"github.com/aretw0/powerset/pkg/schema"
	"github.com/aretw0/powerset/pkg/subset"
)

// ErrNoInput is returned when neither a file nor a catalog entry was given.
var ErrNoInput = errors.New("no automaton given: pass a file, '-' for stdin, or --name with --catalog")

// RunConvert handles the 'convert' and 'graph' commands: load, construct, render.
func RunConvert(ctx context.Context, opts Options) error {
	opts.defaults()

	logger, err := createLogger(opts.LogLevel)
	if err != nil {
		return err
	}
	conv, err := createConverter(opts, logger)
	if err != nil {
		return err
	}

	name, res, err := load(ctx, conv, opts)
	if err != nil {
		return reportMalformed(err)
	}

	if err := Render(opts.Out, opts.Format, name, res.DFA, isTerminal(opts.Out)); err != nil {
		return err
	}
	if opts.Trace {
		return RenderTrace(opts.ErrOut, name, res.Trace, isTerminal(opts.ErrOut))
	}
	return nil
}

// load resolves the input and converts it. The returned name labels the DFA.
func load(ctx context.Context, conv *powerset.Converter, opts Options) (string, *subset.Result, error) {
	switch {
	case opts.Name != "" && opts.Path != "":
		return "", nil, errors.New("pass either a file or --name, not both")
	case opts.Name != "":
		def, res, err := conv.ConvertNamed(ctx, opts.Name)
		if err != nil {
			return "", nil, err
		}
		return displayName(def, opts.Name), res, nil
	case opts.Path == "-":
		def, err := parser.New().Parse(opts.In)
		if err != nil {
			return "", nil, err
		}
		res, err := conv.ConvertDefinition(ctx, def)
		if err != nil {
			return "", nil, err
		}
		return displayName(def, "stdin"), res, nil
	case opts.Path != "":
		def, res, err := conv.ConvertFile(ctx, opts.Path)
		if err != nil {
			return "", nil, err
		}
		base := strings.TrimSuffix(filepath.Base(opts.Path), filepath.Ext(opts.Path))
		return displayName(def, base), res, nil
	default:
		return "", nil, ErrNoInput
	}
}

func displayName(def *schema.Definition, fallback string) string {
	if def != nil && def.Name != "" {
		return def.Name
	}
	return fallback
}

// reportMalformed expands a malformed-automaton error into one line per violation.
func reportMalformed(err error) error {
	violations := domain.MalformedErrors(err)
	if len(violations) <= 1 {
		return err
	}
	var sb strings.Builder
	for _, v := range violations {
		fmt.Fprintf(&sb, "\n  - %s", v.Error())
	}
	return fmt.Errorf("%w, %d problems:%s", domain.ErrMalformedAutomaton, len(violations), sb.String())
}
