package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"loteria/internal/game"
	"loteria/internal/pattern"
	"loteria/internal/session"
	"loteria/internal/stats"
	"loteria/internal/storage"
)

var commands = [][]string{
	{"join <name> [boards]", "Player joins with 1-4 boards."},
	{"ready", "Locks the roster."},
	{"start", "Deals the boards and starts the game."},
	{"call", "The announcer calls the next card."},
	{"board <name> [num]", "Display a player's board."},
	{"win <name> [pattern]", "Claim a win; without a pattern every standard one is tried."},
	{"pause / resume", "Pause or resume calling."},
	{"cancel", "End the game without a winner."},
	{"new", "Resets for a new game."},
	{"stats", "Current game and overall statistics."},
	{"export", "Statistics as a plain text report."},
	{"history", "Recently finished games."},
	{"patterns", "Patterns accepted by 'win'."},
	{"help", "Shows this help menu."},
	{"quit", "Exits the application."},
}

func helpText() string {
	data := pterm.TableData{{"Command", "Description"}}
	data = append(data, commands...)
	return renderTable(data)
}

func renderTable(data pterm.TableData) string {
	s, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return pterm.Error.Sprintln(err)
	}
	return s
}

// renderBoard draws a tabla with called cells flagged by '*'.
func renderBoard(v session.BoardView) string {
	title := fmt.Sprintf("%s's Board #%d/%d", v.Owner, v.Index, v.Count)
	if !v.Generated {
		return pterm.Warning.Sprintfln("%s has not been dealt yet. Boards are generated at start.", title)
	}
	data := make(pterm.TableData, 0, len(v.Cells))
	for _, row := range v.Cells {
		line := make([]string, 0, len(row))
		for _, c := range row {
			if c.Marked {
				line = append(line, pterm.LightGreen("*"+c.Card.SpanishName))
			} else {
				line = append(line, " "+c.Card.SpanishName)
			}
		}
		data = append(data, line)
	}
	s, err := pterm.DefaultTable.WithBoxed().WithData(data).Srender()
	if err != nil {
		return pterm.Error.Sprintln(err)
	}
	return pterm.DefaultSection.Sprint(title) + s
}

func renderCall(c session.Call) string {
	body := fmt.Sprintf("%s\n\"%s\"\n\n%d cards left", c.Announcement, c.Card.Riddle, c.Remaining)
	return pterm.DefaultBox.
		WithTitle(pterm.LightYellow(fmt.Sprintf("|CARD %d|", c.Number))).
		WithTitleTopCenter().
		WithHorizontalPadding(4).
		Sprint(body)
}

func renderSummary(s game.Summary) string {
	var b strings.Builder
	b.WriteString(pterm.DefaultSection.Sprint("Game Statistics"))
	b.WriteString(fmt.Sprintf("State: %s\n", s.State))
	b.WriteString(fmt.Sprintf("Total cards called: %d\n", len(s.Called)))
	b.WriteString(fmt.Sprintf("Cards remaining: %d\n", s.Remaining))
	if len(s.Players) > 0 {
		data := pterm.TableData{{"Player", "Boards", "Marks", "Score"}}
		for _, p := range s.Players {
			data = append(data, []string{p.Name, strconv.Itoa(p.Boards), strconv.Itoa(p.Marked), strconv.Itoa(p.Score)})
		}
		b.WriteString(renderTable(data))
		b.WriteString("\n")
	}
	winner := "None yet"
	if s.Winner != "" {
		winner = fmt.Sprintf("%s (%s)", s.Winner, s.Pattern)
	}
	b.WriteString(fmt.Sprintf("Winner: %s\n", winner))
	return b.String()
}

func renderStats(s stats.Snapshot) string {
	var b strings.Builder
	b.WriteString(pterm.DefaultSection.Sprint("Lotería Statistics"))
	b.WriteString(fmt.Sprintf("Total games played: %d\n", s.Games))
	if len(s.Leaderboard) == 0 {
		b.WriteString("No wins recorded yet.\n")
	} else {
		data := pterm.TableData{{"Player", "Wins", "Played", "Win rate"}}
		for _, st := range s.Leaderboard {
			data = append(data, []string{st.Name, strconv.Itoa(st.Wins), strconv.Itoa(st.Played),
				fmt.Sprintf("%.0f%%", st.WinRate*100)})
		}
		b.WriteString(renderTable(data))
		b.WriteString("\n")
	}
	if s.MostCalled != nil {
		b.WriteString(fmt.Sprintf("Most frequently called card: %s (called %d times)\n",
			s.MostCalled.Card.SpanishName, s.MostCalled.Count))
	}
	return b.String()
}

func renderHistory(rows []storage.GameRow) string {
	data := pterm.TableData{{"Ended", "State", "Winner", "Pattern", "Calls", "Duration", "Players"}}
	for _, g := range rows {
		winner := g.Winner
		if winner == "" {
			winner = "-"
		}
		data = append(data, []string{
			g.EndedAt.Local().Format(time.DateTime),
			g.State,
			winner,
			g.Pattern,
			strconv.Itoa(g.CardsCalled),
			g.Duration.Round(time.Second).String(),
			strings.Join(g.Players, ", "),
		})
	}
	return renderTable(data)
}

func renderPatterns(entries []pattern.Entry) string {
	data := pterm.TableData{{"Key", "Pattern", "Kind", "Points", "Cells"}}
	for _, e := range entries {
		data = append(data, []string{
			e.Key,
			e.Pattern.Name(),
			string(e.Pattern.Kind()),
			strconv.Itoa(e.Pattern.Points()),
			strconv.Itoa(len(e.Pattern.Positions())),
		})
	}
	return renderTable(data)
}
