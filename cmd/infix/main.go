package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/errors"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	var (
		inname  string
		given   []string
		timeout time.Duration
		verbose bool
		cfg     config
	)
	flag.StringVarP(&inname, "in", "i", "", "input file with one expression per line (\"-\" for stdin; default stdin if no args given)")
	flag.StringArrayVarP(&given, "given", "g", nil, "name=value variable definition (any number of times)")
	flag.BoolVarP(&cfg.echo, "echo", "e", false, "print each expression before its result")
	flag.BoolVar(&cfg.tree, "tree", false, "print fully bracketed parse trees instead of results")
	flag.StringVarP(&cfg.solve, "solve", "s", "", "find roots in the named variable instead of evaluating")
	flag.Float64Var(&cfg.low, "low", -1000, "lower bound of the root search")
	flag.Float64Var(&cfg.high, "high", 1000, "upper bound of the root search")
	flag.Float64Var(&cfg.eps, "eps", 0.001, "root search tolerance")
	flag.BoolVar(&cfg.all, "all", false, "find all roots in the interval instead of one")
	flag.BoolVar(&cfg.compare, "compare", false, "compare the form and value of the first two expressions")
	flag.DurationVar(&timeout, "timeout", 0, "stop after this long (0 for no limit)")
	flag.BoolVarP(&verbose, "verbose", "v", false, "log debug information")
	flag.Parse()

	al := zap.NewAtomicLevelAt(zap.WarnLevel)
	if verbose {
		al.SetLevel(zap.DebugLevel)
	}
	ec := zap.NewDevelopmentEncoderConfig()
	logger := zap.New(zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.Lock(os.Stderr), al))
	defer logger.Sync()
	log := logger.Sugar()

	vars, err := parseGiven(given)
	if err != nil {
		log.Fatal(err)
	}
	cfg.given = vars
	cfg.log = logger

	srcs, err := inputs(inname, flag.Args())
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if err := run(ctx, cfg, srcs, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

// inputs collects the expressions to process: the lines of the input file
// followed by the arguments. Blank lines are skipped.
func inputs(inname string, args []string) ([]string, error) {
	var f io.Reader
	switch {
	case inname != "" && inname != "-":
		in, err := os.Open(inname)
		if err != nil {
			return nil, err
		}
		defer in.Close()
		f = in
	case inname == "-", len(args) == 0:
		f = os.Stdin
	}
	var srcs []string
	if f != nil {
		s := bufio.NewScanner(f)
		for s.Scan() {
			if line := strings.TrimSpace(s.Text()); line != "" {
				srcs = append(srcs, line)
			}
		}
		if err := s.Err(); err != nil {
			return nil, errors.Wrap(err, "reading expressions")
		}
	}
	return append(srcs, args...), nil
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s [flags] [expr ...]\n", os.Args[0])
	flag.PrintDefaults()
}

func init() {
	flag.Usage = usage
}
