package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"loteria/internal/game"
	"loteria/internal/session"
)

const historyLimit = 10

// repl reads one command per line and drives a table with it.
type repl struct {
	table *session.Table
	out   io.Writer
}

func newREPL(table *session.Table, out io.Writer) *repl {
	return &repl{table: table, out: out}
}

func (r *repl) run(in io.Reader) error {
	r.print(pterm.DefaultHeader.Sprint("¡Bienvenido a Lotería!"))
	r.print(helpText())

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(r.out, "\nCommand: ")
		if !scanner.Scan() {
			break
		}
		if quit := r.exec(scanner.Text()); quit {
			break
		}
	}
	r.print(pterm.Info.Sprintln("¡Gracias por jugar! Goodbye!"))
	return scanner.Err()
}

// exec runs one command line. It reports whether the loop should stop.
func (r *repl) exec(line string) bool {
	args := strings.Fields(line)
	if len(args) == 0 {
		return false
	}

	var err error
	switch strings.ToLower(args[0]) {
	case "help":
		r.print(helpText())
	case "join":
		err = r.join(args[1:])
	case "ready":
		err = r.state(r.table.Ready, "Roster locked, ready to start.")
	case "start":
		err = r.start()
	case "call":
		err = r.call()
	case "board":
		err = r.board(args[1:])
	case "win":
		err = r.win(args[1:])
	case "pause":
		err = r.state(r.table.Pause, "Game paused.")
	case "resume":
		err = r.state(r.table.Resume, "Game resumed.")
	case "cancel":
		err = r.state(r.table.Cancel, "Game cancelled.")
	case "new":
		err = r.state(r.table.NewGame, "Starting a new game...")
	case "stats":
		r.print(renderSummary(r.table.Snapshot()))
		r.print(renderStats(r.table.Stats()))
	case "export":
		r.print(r.table.StatsReport())
	case "history":
		err = r.history()
	case "patterns":
		r.print(renderPatterns(r.table.Patterns()))
	case "quit", "exit":
		return true
	default:
		r.print(pterm.Warning.Sprintln("Unknown command. Type 'help' for a list of commands."))
	}
	if err != nil {
		r.print(pterm.Error.Sprintln(err))
	}
	return false
}

func (r *repl) join(args []string) error {
	if len(args) < 1 {
		r.print(pterm.Warning.Sprintln("Usage: join <player_name> [num_boards]"))
		return nil
	}
	boards := 1
	if len(args) >= 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < game.MinBoards || n > game.MaxBoards {
			r.print(pterm.Warning.Sprintfln("Number of boards must be %d-%d.", game.MinBoards, game.MaxBoards))
			return nil
		}
		boards = n
	}
	if err := r.table.Join(args[0], boards); err != nil {
		return err
	}
	r.print(pterm.Success.Sprintfln("%s has joined with %d board(s).", args[0], boards))
	return nil
}

func (r *repl) start() error {
	if err := r.table.Start(); err != nil {
		return err
	}
	sum := r.table.Snapshot()
	r.print(pterm.Success.Sprintln("Game started!"))
	r.print(pterm.Info.Sprintfln("Boards have been generated for %d players. Good luck!", len(sum.Players)))
	return nil
}

func (r *repl) call() error {
	c, err := r.table.Call()
	if err != nil {
		return err
	}
	r.print(renderCall(c))
	return nil
}

func (r *repl) board(args []string) error {
	if len(args) < 1 {
		r.print(pterm.Warning.Sprintln("Usage: board <player_name> [board_number]"))
		return nil
	}
	index := 1
	if len(args) >= 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			r.print(pterm.Warning.Sprintln("Invalid board number. Defaulting to 1."))
		} else {
			index = n
		}
	}
	view, err := r.table.ViewBoard(args[0], index)
	if err != nil {
		return err
	}
	r.print(renderBoard(view))
	return nil
}

func (r *repl) win(args []string) error {
	if len(args) < 1 {
		r.print(pterm.Warning.Sprintln("Usage: win <player_name> [pattern]"))
		r.print(pterm.Info.Sprintln("Type 'patterns' for the available patterns."))
		return nil
	}
	key := ""
	if len(args) >= 2 {
		key = strings.ToLower(args[1])
	}
	res, err := r.table.Claim(args[0], key)
	if err != nil {
		return err
	}
	if !res.Won {
		r.print(pterm.Warning.Sprintln("Invalid claim. The game continues!"))
		return nil
	}
	r.print(pterm.Success.Sprintfln("¡LOTERÍA! %s wins on Board #%d with %s (+%d points)!",
		res.Player, res.BoardIndex, res.Pattern, res.Points))
	if view, err := r.table.ViewBoard(res.Player, res.BoardIndex); err == nil {
		r.print(renderBoard(view))
	}
	return nil
}

func (r *repl) history() error {
	rows, err := r.table.History(historyLimit)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		r.print(pterm.Info.Sprintln("No games recorded yet. Set LOTERIA_DB_PATH to keep history between runs."))
		return nil
	}
	r.print(renderHistory(rows))
	return nil
}

func (r *repl) state(cmd func() error, msg string) error {
	if err := cmd(); err != nil {
		return err
	}
	r.print(pterm.Info.Sprintln(msg))
	return nil
}

func (r *repl) print(s string) {
	fmt.Fprint(r.out, s)
	if !strings.HasSuffix(s, "\n") {
		fmt.Fprintln(r.out)
	}
}
