package main

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/zephyrtronium/infix"
)

// config holds the settings for processing expressions.
type config struct {
	given   infix.Bindings
	echo    bool
	tree    bool
	solve   string
	low     float64
	high    float64
	eps     float64
	all     bool
	compare bool
	log     *zap.Logger
}

// parseGiven parses name=value definitions. Values may be expressions in
// previously defined names.
func parseGiven(defs []string) (infix.Bindings, error) {
	vars := make(infix.Bindings, len(defs))
	for _, s := range defs {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return nil, errors.Errorf(`variable definitions must be "name=value", not %q`, s)
		}
		name, val := strings.TrimSpace(d[0]), strings.TrimSpace(d[1])
		r, err := infix.EvalString(val, vars)
		if err != nil {
			return nil, errors.Wrapf(err, "setting %s", name)
		}
		vars[name] = r
	}
	return vars, nil
}

// run parses and processes each expression in srcs, writing one line of
// output for each. A parse error stops processing. Evaluation errors are
// reported in the output in place of results.
func run(ctx context.Context, cfg config, srcs []string, w io.Writer) error {
	if cfg.log == nil {
		cfg.log = zap.NewNop()
	}
	exprs := make([]infix.Expr, len(srcs))
	for i, src := range srcs {
		e, err := infix.Parse(src)
		if err != nil {
			return errors.Wrapf(err, "expression %d (%q)", i+1, src)
		}
		exprs[i] = e
	}

	if cfg.compare {
		if len(exprs) < 2 {
			return errors.New("comparison needs two expressions")
		}
		return compare(w, exprs[0], exprs[1], cfg.given)
	}

	out := make([]string, len(exprs))
	switch {
	case cfg.tree:
		for i, e := range exprs {
			out[i] = infix.Tree(e)
		}
	case cfg.solve != "":
		if err := solveAll(ctx, cfg, exprs, out); err != nil {
			return err
		}
	default:
		for i, e := range exprs {
			r, err := e.Eval(cfg.given)
			if err != nil {
				out[i] = err.Error()
				continue
			}
			out[i] = format(r)
		}
	}

	for i, s := range out {
		if cfg.echo {
			s = exprs[i].String() + " : " + s
		}
		if _, err := fmt.Fprintln(w, s); err != nil {
			return err
		}
	}
	return nil
}

// solveAll finds roots of each expression concurrently. Each result is
// written to the corresponding element of out. Failing to find a root is
// reported in out; only cancellation is an error.
func solveAll(ctx context.Context, cfg config, exprs []infix.Expr, out []string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	opts := []infix.RootOption{infix.Given(cfg.given), infix.Logger(cfg.log)}
	for i, e := range exprs {
		i, e := i, e // per-iteration copy; go directive is below 1.22
		g.Go(func() error {
			if cfg.all {
				roots, err := infix.FindAllRoots(ctx, e, cfg.solve, cfg.low, cfg.high, cfg.eps, opts...)
				if err != nil {
					if ctx.Err() != nil {
						return err
					}
					out[i] = err.Error()
					return nil
				}
				s := make([]string, len(roots))
				for k, r := range roots {
					s[k] = format(r)
				}
				out[i] = "[" + strings.Join(s, " ") + "]"
				return nil
			}
			r, err := infix.FindRoot(e, cfg.solve, cfg.low, cfg.high, cfg.eps, opts...)
			if err != nil {
				out[i] = err.Error()
				return nil
			}
			out[i] = format(r)
			return nil
		})
	}
	return g.Wait()
}

// compare writes a report on the forms of a and b and on their values under
// the given variables.
func compare(w io.Writer, a, b infix.Expr, given infix.Bindings) error {
	c := infix.CompareOperators(a, b)
	verdict := func(same bool) string {
		if same {
			return "equal and in the same order"
		}
		return "not equal"
	}
	values := "not equal"
	same, err := infix.SameValue(a, b, given)
	switch {
	case err != nil:
		values = err.Error()
	case same:
		values = "equal"
	}
	_, err = fmt.Fprintf(w, "operators: %s\nconstants: %s\nvariables: %s\nvalues: %s\n",
		verdict(c.SameOps), verdict(c.SameConsts), verdict(c.SameVars), values)
	return err
}

func format(r float64) string {
	return strconv.FormatFloat(r, 'g', -1, 64)
}
