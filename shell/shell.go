// Package shell is an interactive controller for loading boards and running
// solvers against them.
package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/wmazur/npuzzle/board"
	"github.com/wmazur/npuzzle/config"
	"github.com/wmazur/npuzzle/heuristic"
	"github.com/wmazur/npuzzle/move"
	"github.com/wmazur/npuzzle/movegen"
	"github.com/wmazur/npuzzle/parity"
	"github.com/wmazur/npuzzle/runner"
	"github.com/wmazur/npuzzle/solver"
)

// Controller owns the readline loop and the currently loaded board.
type Controller struct {
	l *readline.Instance

	cfg         *config.Config
	curBoard    *board.Board
	order       movegen.SearchOrder
	heuristicID string
	smaLimit    int
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

// NewController creates a shell over the given configuration defaults.
func NewController(cfg *config.Config) *Controller {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mnpuzzle>\033[0m ",
		HistoryFile:     "/tmp/npuzzle_readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	order, err := movegen.ParseOrder(cfg.SearchOrder)
	if err != nil {
		order = movegen.DefaultOrder()
	}
	return &Controller{
		l:           l,
		cfg:         cfg,
		order:       order,
		heuristicID: cfg.DefaultHeuristic,
		smaLimit:    cfg.SMAMemoryLimit,
	}
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func usage(w io.Writer) {
	io.WriteString(w, "commands:\n")
	io.WriteString(w, "load <path>          - load a board file (\"rows cols\" header + rows)\n")
	io.WriteString(w, "show                 - print the loaded board\n")
	io.WriteString(w, "solvable             - run the solvability oracle on the loaded board\n")
	io.WriteString(w, "solve <alg> [h]      - solve with dfs|idfs|bfs|bf|astar|ida|sma,\n")
	io.WriteString(w, "                       optional heuristic id (MD, LC, ID)\n")
	io.WriteString(w, "order <UDLR|R>       - set the move generator search order\n")
	io.WriteString(w, "heuristic <id>       - set the default heuristic (MD, LC, ID)\n")
	io.WriteString(w, "limit <n>            - set the SMA* resident-node limit\n")
	io.WriteString(w, "help                 - show this message\n")
	io.WriteString(w, "exit                 - quit\n")
}

func (c *Controller) loadBoard(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	b, err := board.ParseReader(f)
	if err != nil {
		return err
	}
	c.curBoard = b
	log.Debug().Msgf("loaded %s", path)
	return nil
}

func (c *Controller) solve(fields []string) error {
	if c.curBoard == nil {
		return errors.New("please load a board first with the `load` command")
	}
	opts := runner.Options{
		Algorithm:   fields[0],
		HeuristicID: c.heuristicID,
		Order:       c.order,
		SMALimit:    c.smaLimit,
	}
	if len(fields) > 1 {
		opts.HeuristicID = fields[1]
	}
	if _, err := heuristic.FromID(opts.HeuristicID); err != nil {
		return err
	}

	// Solvers are single use and some mutate the board in place, so they
	// always get their own clone; the loaded board stays reusable.
	sv, err := runner.NewSolver(c.curBoard.Clone(), opts)
	if err != nil {
		return err
	}
	start := time.Now()
	path, err := sv.Solve()
	if err != nil {
		if errors.Is(err, solver.ErrUnsolvable) {
			showMessage("board is not solvable", c.l.Stderr())
			return nil
		}
		return err
	}
	showMessage(fmt.Sprintf("solved in %d moves (%.3fs): %s",
		len(path), time.Since(start).Seconds(), move.PathString(path)), c.l.Stderr())
	return nil
}

// Loop runs the readline command loop until exit or EOF.
func (c *Controller) Loop() {
	defer c.l.Close()

	for {
		line, err := c.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields, err := shellquote.Split(line)
		if err != nil {
			showMessage("error: "+err.Error(), c.l.Stderr())
			continue
		}

		switch cmd := fields[0]; cmd {
		case "exit", "quit":
			return
		case "help":
			usage(c.l.Stderr())
		case "load":
			if len(fields) != 2 {
				showMessage("usage: load <path>", c.l.Stderr())
				break
			}
			if err := c.loadBoard(fields[1]); err != nil {
				showMessage("error: "+err.Error(), c.l.Stderr())
			}
		case "show":
			if c.curBoard == nil {
				showMessage("no board loaded", c.l.Stderr())
				break
			}
			showMessage(c.curBoard.String(), c.l.Stderr())
		case "solvable":
			if c.curBoard == nil {
				showMessage("no board loaded", c.l.Stderr())
				break
			}
			showMessage(fmt.Sprintf("solvable: %v", parity.Solvable(c.curBoard)),
				c.l.Stderr())
		case "solve":
			if len(fields) < 2 {
				showMessage("usage: solve <algorithm> [heuristic]", c.l.Stderr())
				break
			}
			if err := c.solve(fields[1:]); err != nil {
				showMessage("error: "+err.Error(), c.l.Stderr())
			}
		case "order":
			if len(fields) != 2 {
				showMessage("usage: order <UDLR|R>", c.l.Stderr())
				break
			}
			order, err := movegen.ParseOrder(fields[1])
			if err != nil {
				showMessage("error: "+err.Error(), c.l.Stderr())
				break
			}
			c.order = order
		case "heuristic":
			if len(fields) != 2 {
				showMessage("usage: heuristic <id>", c.l.Stderr())
				break
			}
			if _, err := heuristic.FromID(fields[1]); err != nil {
				showMessage("error: "+err.Error(), c.l.Stderr())
				break
			}
			c.heuristicID = fields[1]
		case "limit":
			if len(fields) != 2 {
				showMessage("usage: limit <n>", c.l.Stderr())
				break
			}
			n, err := strconv.Atoi(fields[1])
			if err != nil || n < 0 {
				showMessage("limit must be a non-negative integer", c.l.Stderr())
				break
			}
			c.smaLimit = n
		default:
			showMessage("unknown command "+cmd, c.l.Stderr())
			usage(c.l.Stderr())
		}
	}
}
