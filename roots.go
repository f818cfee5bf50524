package infix

import (
	"context"
	"math"
	"strconv"

	"github.com/ccoveille/go-safecast"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/exp/maps"
)

// RootOption is an option for root finding.
type RootOption interface {
	rootOption(*rootcfg)
}

type (
	iteropt  int
	stepsopt int
	givenopt Bindings
	logopt   struct{ l *zap.Logger }
)

// rootcfg holds the settings for a root search.
type rootcfg struct {
	// maxIter is the maximum number of halvings in one bisection.
	maxIter int
	// maxSteps is the maximum number of samples in a scan.
	maxSteps int
	// given is the values of variables other than the one being solved.
	given Bindings
	log   *zap.Logger
}

const (
	// DefaultMaxIterations is the default limit on halvings in one
	// bisection. Halving the widest finite interval down to adjacent
	// float64 values takes fewer than 2100 steps.
	DefaultMaxIterations = 4096
	// DefaultMaxSteps is the default limit on the number of samples
	// FindAllRoots evaluates.
	DefaultMaxSteps = 10_000_000
)

// MaxIterations limits the number of times FindRoot halves its interval.
// Non-positive values select DefaultMaxIterations.
func MaxIterations(n int) RootOption {
	return iteropt(n)
}

func (o iteropt) rootOption(c *rootcfg) {
	c.maxIter = int(o)
	if c.maxIter <= 0 {
		c.maxIter = DefaultMaxIterations
	}
}

// MaxSteps limits the number of sample points FindAllRoots evaluates, which
// is (high-low)/epsilon rounded up, plus one. Non-positive values select
// DefaultMaxSteps.
func MaxSteps(n int) RootOption {
	return stepsopt(n)
}

func (o stepsopt) rootOption(c *rootcfg) {
	c.maxSteps = int(o)
	if c.maxSteps <= 0 {
		c.maxSteps = DefaultMaxSteps
	}
}

// Given sets values for variables other than the one being solved. The
// solved variable's value in vars is ignored. Multiple Given options
// accumulate.
func Given(vars Bindings) RootOption {
	return givenopt(vars)
}

func (o givenopt) rootOption(c *rootcfg) {
	if c.given == nil {
		c.given = make(Bindings, len(o))
	}
	maps.Copy(c.given, o)
}

// Logger sets a logger which receives debug messages about the search. By
// default, nothing is logged.
func Logger(l *zap.Logger) RootOption {
	return logopt{l}
}

func (o logopt) rootOption(c *rootcfg) {
	c.log = o.l
	if c.log == nil {
		c.log = zap.NewNop()
	}
}

func newRootcfg(opts []RootOption) *rootcfg {
	c := rootcfg{
		maxIter:  DefaultMaxIterations,
		maxSteps: DefaultMaxSteps,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.rootOption(&c)
	}
	return &c
}

// fn creates a function of one variable from e. The function is not safe
// for concurrent use.
func (c *rootcfg) fn(e Expr, name string) func(float64) (float64, error) {
	vars := make(Bindings, len(c.given)+1)
	maps.Copy(vars, c.given)
	return func(x float64) (float64, error) {
		vars[name] = x
		v, err := e.Eval(vars)
		if err != nil {
			return 0, errors.Wrapf(err, "evaluating at %s = %g", name, x)
		}
		return v, nil
	}
}

var (
	// ErrTolerance is returned when the tolerance for root finding is not a
	// positive finite number.
	ErrTolerance = errors.New("tolerance must be positive and finite")
	// ErrInterval is returned when a bound of the search interval is not
	// finite.
	ErrInterval = errors.New("interval bounds must be finite")
)

func checkInterval(low, high, epsilon float64) error {
	if !(epsilon > 0) || math.IsInf(epsilon, 0) {
		return errors.Wrapf(ErrTolerance, "epsilon %g", epsilon)
	}
	if math.IsNaN(low) || math.IsNaN(high) || math.IsInf(low, 0) || math.IsInf(high, 0) {
		return errors.Wrapf(ErrInterval, "[%g, %g]", low, high)
	}
	return nil
}

// FindRoot finds a root of e as a function of the variable name by bisection
// over [low, high]. The values of e at low and high must have opposite signs,
// or one of them must be zero; otherwise the error is a *NoBracketError.
// The search stops when the bracket is no wider than epsilon, and the result
// is its midpoint, so it is within epsilon/2 of a sign change of e.
//
// Errors evaluating e are returned wrapped and can be inspected with
// errors.As.
func FindRoot(e Expr, name string, low, high, epsilon float64, opts ...RootOption) (float64, error) {
	c := newRootcfg(opts)
	if err := checkInterval(low, high, epsilon); err != nil {
		return 0, err
	}
	if low > high {
		low, high = high, low
	}
	return c.bisect(c.fn(e, name), low, high, epsilon)
}

// bisect finds a root of f in [low, high]. Requires low <= high.
func (c *rootcfg) bisect(f func(float64) (float64, error), low, high, epsilon float64) (float64, error) {
	if low == high {
		return 0, &NoBracketError{Low: low, High: high}
	}
	fl, err := f(low)
	if err != nil {
		return 0, err
	}
	fh, err := f(high)
	if err != nil {
		return 0, err
	}
	switch {
	case fl == 0:
		return low, nil
	case fh == 0:
		return high, nil
	case math.IsNaN(fl) || math.IsNaN(fh) || math.Signbit(fl) == math.Signbit(fh):
		return 0, &NoBracketError{Low: low, High: high, FLow: fl, FHigh: fh}
	}
	for i := 0; high-low > epsilon; i++ {
		if i >= c.maxIter {
			return 0, &IterationError{What: "bisection", Limit: c.maxIter}
		}
		mid := low/2 + high/2
		if mid <= low || mid >= high {
			// The interval is as narrow as float64 allows.
			break
		}
		fm, err := f(mid)
		if err != nil {
			return 0, err
		}
		if fm == 0 {
			return mid, nil
		}
		if math.Signbit(fm) != math.Signbit(fl) {
			high = mid
		} else {
			low, fl = mid, fm
		}
	}
	r := low/2 + high/2
	c.log.Debug("bisection converged", zap.Float64("low", low), zap.Float64("high", high), zap.Float64("root", r))
	return r, nil
}

// FindAllRoots finds the roots of e as a function of the variable name in
// [low, high]. It samples e at steps of epsilon; every sample where e is
// exactly zero is a root, and every pair of consecutive samples where e
// changes sign is refined with FindRoot. The result is sorted ascending.
//
// Samples where e divides by zero or leaves its domain are skipped, and no
// sign change is considered across them. A sign change whose refined root
// is farther from zero than both samples is a pole and is discarded. Other evaluation errors abort the
// search. The number of samples is limited by the MaxSteps option. The
// search stops with an error wrapping ctx.Err() if ctx is cancelled.
func FindAllRoots(ctx context.Context, e Expr, name string, low, high, epsilon float64, opts ...RootOption) ([]float64, error) {
	c := newRootcfg(opts)
	if err := checkInterval(low, high, epsilon); err != nil {
		return nil, err
	}
	if low > high {
		low, high = high, low
	}
	steps, err := safecast.ToInt(math.Ceil((high - low) / epsilon))
	if err != nil || steps >= c.maxSteps {
		return nil, &IterationError{What: "root scan", Limit: c.maxSteps}
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "root scan")
	}
	c.log.Debug("scanning for roots",
		zap.String("var", name),
		zap.Float64("low", low),
		zap.Float64("high", high),
		zap.Int("steps", steps),
	)

	f := c.fn(e, name)
	var roots []float64
	px := low
	pv, pok, err := c.sample(f, low)
	if err != nil {
		return nil, err
	}
	if pok && pv == 0 {
		roots = append(roots, low)
	}
	for i := 1; i <= steps; i++ {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, errors.Wrapf(err, "root scan at %s = %g", name, px)
			}
		}
		x := low + float64(i)*epsilon
		if i == steps || x > high {
			x = high
		}
		if x <= px {
			continue
		}
		v, ok, err := c.sample(f, x)
		if err != nil {
			return nil, err
		}
		switch {
		case !ok:
			// Gap; nothing to bracket.
		case v == 0:
			roots = append(roots, x)
		case pok && pv != 0 && !math.IsNaN(pv) && !math.IsNaN(v) && math.Signbit(pv) != math.Signbit(v):
			c.log.Debug("sign change", zap.Float64("low", px), zap.Float64("high", x))
			r, err := c.bisect(f, px, x, epsilon)
			if err != nil {
				if isGap(err) {
					c.log.Debug("singularity inside bracket", zap.Error(err))
					break
				}
				return nil, err
			}
			// A sign change across a pole converges on the pole, where the
			// expression is larger than at either sample.
			fr, ok, err := c.sample(f, r)
			if err != nil {
				return nil, err
			}
			if !ok || math.Abs(fr) > math.Abs(pv) && math.Abs(fr) > math.Abs(v) {
				c.log.Debug("discarding pole", zap.Float64("x", r), zap.Float64("f", fr))
				break
			}
			roots = append(roots, r)
		}
		px, pv, pok = x, v, ok
	}
	return roots, nil
}

// sample evaluates f at x. If the evaluation fails because x is a
// singularity, then the result has ok false and a nil error.
func (c *rootcfg) sample(f func(float64) (float64, error), x float64) (v float64, ok bool, err error) {
	v, err = f(x)
	if err != nil {
		if isGap(err) {
			c.log.Debug("skipping singular sample", zap.Float64("x", x), zap.Error(err))
			return 0, false, nil
		}
		return 0, false, err
	}
	return v, true, nil
}

// isGap reports whether err indicates a point where an expression has no
// value rather than a problem with the expression itself.
func isGap(err error) bool {
	var dz *DivisionByZeroError
	var de *DomainError
	return errors.As(err, &dz) || errors.As(err, &de)
}

// NoBracketError is an error indicating that a root search interval does not
// contain a sign change.
type NoBracketError struct {
	// Low and High are the bounds of the interval.
	Low, High float64
	// FLow and FHigh are the values of the expression at the bounds. They
	// are zero if the interval is empty.
	FLow, FHigh float64
}

func (err *NoBracketError) Error() string {
	g := func(x float64) string { return strconv.FormatFloat(x, 'g', -1, 64) }
	if err.Low == err.High {
		return "no root bracket: empty interval at " + g(err.Low)
	}
	return "no root bracket: f(" + g(err.Low) + ") = " + g(err.FLow) + " and f(" + g(err.High) + ") = " + g(err.FHigh) + " have the same sign"
}

// IterationError is an error indicating that a search would exceed its
// iteration budget.
type IterationError struct {
	// What names the search.
	What string
	// Limit is the budget that was exceeded.
	Limit int
}

func (err *IterationError) Error() string {
	return err.What + " exceeds limit of " + strconv.Itoa(err.Limit) + " iterations"
}
