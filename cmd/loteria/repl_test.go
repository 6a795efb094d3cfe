package main

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"loteria/internal/card"
	"loteria/internal/deck"
	"loteria/internal/game"
	"loteria/internal/session"
	"loteria/internal/storage"
)

func TestMain(m *testing.M) {
	pterm.DisableStyling()
	os.Exit(m.Run())
}

func newTestREPL(t *testing.T, opts ...session.Option) (*repl, *bytes.Buffer, *session.Table) {
	t.Helper()
	opts = append(opts, session.WithRand(deck.NewRand(3)))
	table, err := session.New(session.Config{MaxPlayers: 2, BoardSize: 4}, opts...)
	require.NoError(t, err)
	var out bytes.Buffer
	return newREPL(table, &out), &out, table
}

func TestRunScript(t *testing.T) {
	r, out, table := newTestREPL(t)
	script := strings.Join([]string{
		"join Ana 2",
		"start",
		"call",
		"board ana 2",
		"stats",
		"patterns",
		"quit",
		"join Beto 1",
	}, "\n")

	require.NoError(t, r.run(strings.NewReader(script)))

	text := out.String()
	assert.Contains(t, text, "Ana has joined with 2 board(s).")
	assert.Contains(t, text, "Game started!")
	assert.Contains(t, text, "|CARD 1|")
	assert.Contains(t, text, "Ana's Board #2/2")
	assert.Contains(t, text, "Total cards called: 1")
	assert.Contains(t, text, "fullcard")
	assert.Contains(t, text, "Goodbye")

	sum := table.Snapshot()
	assert.Len(t, sum.Players, 1, "commands after quit must not run")
	assert.Equal(t, game.InProgress, sum.State)
}

func TestRunStopsAtEOF(t *testing.T) {
	r, out, table := newTestREPL(t)
	require.NoError(t, r.run(strings.NewReader("join Ana\n")))
	assert.Contains(t, out.String(), "Ana has joined with 1 board(s).")
	assert.Len(t, table.Snapshot().Players, 1)
}

func TestExecReportsErrors(t *testing.T) {
	r, out, _ := newTestREPL(t)

	r.exec("call")
	assert.Contains(t, out.String(), game.ErrNotInProgress.Error())

	out.Reset()
	r.exec("start")
	assert.Contains(t, out.String(), game.ErrNoPlayers.Error())

	out.Reset()
	r.exec("join Ana 9")
	assert.Contains(t, out.String(), "Number of boards must be 1-4.")

	out.Reset()
	r.exec("dance")
	assert.Contains(t, out.String(), "Unknown command")

	out.Reset()
	r.exec("win")
	assert.Contains(t, out.String(), "Usage: win")

	out.Reset()
	r.exec("board Zoe")
	assert.Contains(t, out.String(), game.ErrUnknownPlayer.Error())
}

func TestExecBlankLine(t *testing.T) {
	r, out, _ := newTestREPL(t)
	assert.False(t, r.exec("   "))
	assert.Empty(t, out.String())
	assert.True(t, r.exec("QUIT"))
}

func TestBoardBeforeStart(t *testing.T) {
	r, out, _ := newTestREPL(t)
	r.exec("join Ana 1")
	out.Reset()
	r.exec("board Ana")
	assert.Contains(t, out.String(), "has not been dealt yet")
}

func TestPlayToWin(t *testing.T) {
	store, err := storage.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	r, out, table := newTestREPL(t, session.WithStore(store))
	r.exec("join Ana 1")
	r.exec("start")
	for i := 0; i < card.Size && table.Snapshot().State == game.InProgress; i++ {
		r.exec("call")
		r.exec("win Ana fullcard")
	}

	sum := table.Snapshot()
	require.Equal(t, game.Finished, sum.State)
	assert.Equal(t, "Ana", sum.Winner)
	assert.Contains(t, out.String(), "Invalid claim. The game continues!")
	assert.Contains(t, out.String(), "¡LOTERÍA! Ana wins on Board #1 with Full Card")

	out.Reset()
	r.exec("history")
	assert.Contains(t, out.String(), "Ana")
	assert.Contains(t, out.String(), string(game.Finished))

	out.Reset()
	r.exec("export")
	assert.Contains(t, out.String(), "Ana: 1 wins")
}

func TestStateCommands(t *testing.T) {
	r, out, table := newTestREPL(t)
	r.exec("join Ana")
	r.exec("ready")
	assert.Equal(t, game.ReadyToStart, table.Snapshot().State)
	r.exec("start")
	r.exec("pause")
	assert.Equal(t, game.Paused, table.Snapshot().State)
	r.exec("resume")
	r.exec("cancel")
	assert.Equal(t, game.Cancelled, table.Snapshot().State)
	assert.Contains(t, out.String(), "Game cancelled.")

	r.exec("new")
	sum := table.Snapshot()
	assert.Equal(t, game.WaitingForPlayers, sum.State)
	assert.Empty(t, sum.Players)
}

func TestHistoryWithoutStore(t *testing.T) {
	r, out, _ := newTestREPL(t)
	r.exec("history")
	assert.Contains(t, out.String(), "No games recorded yet")
}

func TestNewLogger(t *testing.T) {
	prod, err := newLogger(false)
	require.NoError(t, err)
	assert.False(t, prod.Core().Enabled(zap.InfoLevel))
	assert.True(t, prod.Core().Enabled(zap.WarnLevel))

	dev, err := newLogger(true)
	require.NoError(t, err)
	assert.True(t, dev.Core().Enabled(zap.DebugLevel))
}
