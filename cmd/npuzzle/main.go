// Command npuzzle solves sliding-tile puzzles read from files or stdin.
//
// Each board file holds a "rows cols" header line followed by the rows of
// the scrambled grid, with 0 marking the blank. The command prints the
// solution length and the move string (U/D/L/R per tile slide) for each
// board. With no file arguments and no -i, one board is read from stdin.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/wmazur/npuzzle/board"
	"github.com/wmazur/npuzzle/config"
	"github.com/wmazur/npuzzle/move"
	"github.com/wmazur/npuzzle/movegen"
	"github.com/wmazur/npuzzle/runner"
	"github.com/wmazur/npuzzle/shell"
	"github.com/wmazur/npuzzle/solver"
)

var (
	algorithm   = flag.String("algorithm", "", "search algorithm: dfs, idfs, bfs, bf, astar, ida, sma")
	heuristicID = flag.String("heuristic", "", "heuristic id for informed algorithms: MD, LC, ID")
	orderFlag   = flag.String("order", "", "search order: a permutation of UDLR, or R for random")
	smaLimit    = flag.Int("sma-limit", 0, "SMA* resident-node limit (0 = derive from RAM)")
	interactive = flag.Bool("i", false, "start the interactive shell")
	verbose     = flag.Bool("v", false, "debug logging")
)

const (
	exitSolved     = 0
	exitUnsolvable = 1
	exitError      = 2
)

type result struct {
	name string
	path []move.Move
	err  error
}

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Error().Err(err).Msg("loading config")
		os.Exit(exitError)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	if *verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if *interactive {
		sc := shell.NewController(cfg)
		sc.Loop()
		return
	}

	opts, err := solveOptions(cfg)
	if err != nil {
		log.Error().Err(err).Msg("bad arguments")
		os.Exit(exitError)
	}

	files := flag.Args()
	if len(files) == 0 {
		os.Exit(solveStdin(opts))
	}
	os.Exit(solveFiles(files, opts))
}

func solveOptions(cfg *config.Config) (runner.Options, error) {
	opts := runner.Options{
		Algorithm:   cfg.DefaultAlgorithm,
		HeuristicID: cfg.DefaultHeuristic,
		SMALimit:    cfg.SMAMemoryLimit,
	}
	if *algorithm != "" {
		opts.Algorithm = *algorithm
	}
	if *heuristicID != "" {
		opts.HeuristicID = *heuristicID
	}
	if *smaLimit > 0 {
		opts.SMALimit = *smaLimit
	}
	orderSpec := cfg.SearchOrder
	if *orderFlag != "" {
		orderSpec = *orderFlag
	}
	order, err := movegen.ParseOrder(orderSpec)
	if err != nil {
		return runner.Options{}, err
	}
	opts.Order = order
	return opts, nil
}

func solveStdin(opts runner.Options) int {
	b, err := board.ParseReader(os.Stdin)
	if err != nil {
		log.Error().Err(err).Msg("parsing board from stdin")
		return exitError
	}
	r := solveBoard("<stdin>", b, opts)
	return report([]result{r})
}

// solveFiles solves each board file on its own goroutine. The concurrency
// lives entirely out here; every individual solve is synchronous and
// single-threaded.
func solveFiles(files []string, opts runner.Options) int {
	var mu sync.Mutex
	results := make([]result, 0, len(files))

	var g errgroup.Group
	for _, name := range files {
		g.Go(func() error {
			r := result{name: name}
			b, err := parseFile(name)
			if err != nil {
				r.err = err
			} else {
				r = solveBoard(name, b, opts)
			}
			mu.Lock()
			results = append(results, r)
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	sort.Slice(results, func(i, j int) bool { return results[i].name < results[j].name })
	return report(results)
}

func parseFile(name string) (*board.Board, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return board.ParseReader(f)
}

func solveBoard(name string, b *board.Board, opts runner.Options) result {
	sv, err := runner.NewSolver(b, opts)
	if err != nil {
		return result{name: name, err: err}
	}
	path, err := sv.Solve()
	return result{name: name, path: path, err: err}
}

func report(results []result) int {
	exit := exitSolved
	for _, r := range results {
		switch {
		case r.err == nil:
			fmt.Printf("%s: %d %s\n", r.name, len(r.path), move.PathString(r.path))
		case errors.Is(r.err, solver.ErrUnsolvable):
			fmt.Printf("%s: unsolvable\n", r.name)
			if exit == exitSolved {
				exit = exitUnsolvable
			}
		default:
			log.Error().Err(r.err).Msgf("solving %s", r.name)
			exit = exitError
		}
	}
	return exit
}
