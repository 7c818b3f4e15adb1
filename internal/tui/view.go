// internal/tui/view.go
//
// Rendering for the game screens. The board is drawn as a 3x3 frame of
// 3x3 boxes; cell styling encodes state: givens cyan, player digits
// white, clashes red, checked mistakes underlined red, the hinted cell
// yellow, and every cell holding the cursor's digit bold.

package tui

import (
	"fmt"
	"strings"

	"github.com/numgrid/sudoku/internal/sudoku"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		if m.flash != "" {
			return m.flash + "\n"
		}
		return "Bye!\n"
	}
	switch m.screen {
	case screenResume:
		return m.viewResume()
	case screenMenu:
		return m.viewMenu()
	case screenPlay:
		return m.viewPlay()
	case screenWin:
		return m.viewWin()
	}
	return ""
}

func (m Model) viewResume() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("sudoku") + "\n\n")
	b.WriteString(fmt.Sprintf("Found a saved %s game (%s played, %d moves).\n\n",
		m.saved.Difficulty, m.saved.ClockString(), m.saved.MoveCount))
	b.WriteString("Resume it? " + statusStyle.Render("y resume / n start fresh / q quit") + "\n")
	return b.String()
}

func (m Model) viewMenu() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("sudoku") + "\n\n")
	if m.generating {
		b.WriteString(fmt.Sprintf("Generating a %s puzzle...\n", sudoku.Difficulties[m.menuIdx]))
		return b.String()
	}
	b.WriteString("Pick a difficulty:\n\n")
	for i, d := range sudoku.Difficulties {
		if i == m.menuIdx {
			b.WriteString(menuCursorStyle.Render("> "+string(d)) + "\n")
		} else {
			b.WriteString("  " + string(d) + "\n")
		}
	}
	b.WriteString("\n" + statusStyle.Render("up/down move, enter select, q quit") + "\n")
	return b.String()
}

func (m Model) viewPlay() string {
	var b strings.Builder
	b.WriteString(m.viewHeader() + "\n\n")

	switch {
	case m.showHelp:
		b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
		b.WriteString("\n\n" + statusStyle.Render("? closes help; the clock is stopped") + "\n")
	case m.paused:
		b.WriteString("Paused. The board is hidden and the clock is stopped.\n\n")
		b.WriteString(statusStyle.Render("p resumes, q saves and quits") + "\n")
	case m.confirmNew:
		b.WriteString(m.viewBoard())
		b.WriteString("\n" + flashStyle.Render("Start a new game? Current progress is lost. (y/n)") + "\n")
	default:
		b.WriteString(m.viewBoard())
		b.WriteString(m.viewDigits() + "\n\n")
		if m.flash != "" {
			b.WriteString(flashStyle.Render(m.flash) + "\n")
		}
		b.WriteString(m.help.View(m.keys) + "\n")
	}
	return b.String()
}

func (m Model) viewWin() string {
	var b strings.Builder
	b.WriteString(m.viewHeader() + "\n\n")
	b.WriteString(m.viewBoard())
	b.WriteString("\n" + winStyle.Render("Solved!") + "\n")
	b.WriteString(fmt.Sprintf("%s on the clock, %d moves, %d hints.\n\n",
		m.sess.ClockString(), m.sess.MoveCount, m.sess.Hints))
	b.WriteString(statusStyle.Render("n new game, q quit") + "\n")
	return b.String()
}

func (m Model) viewHeader() string {
	return titleStyle.Render("sudoku") + "  " +
		statusStyle.Render(fmt.Sprintf("%s  %s  moves %d  hints %d",
			m.sess.Difficulty, m.sess.ClockString(), m.sess.MoveCount, m.sess.Hints))
}

// viewDigits shows how many of each digit are still missing. Digits already
// placed nine times are dimmed out.
func (m Model) viewDigits() string {
	var counts [10]int
	for r := 0; r < sudoku.Size; r++ {
		for c := 0; c < sudoku.Size; c++ {
			counts[m.sess.Board[r][c]]++
		}
	}
	parts := make([]string, 0, 9)
	for d := 1; d <= 9; d++ {
		left := sudoku.Size - counts[d]
		if left <= 0 {
			parts = append(parts, emptyStyle.Render(fmt.Sprintf("%d:0", d)))
			continue
		}
		parts = append(parts, fmt.Sprintf("%d:%d", d, left))
	}
	return statusStyle.Render("left ") + strings.Join(parts, " ")
}

func (m Model) viewBoard() string {
	var b strings.Builder
	seg := strings.Repeat("─", 7)
	hline := func(l, mid, r string) {
		b.WriteString(frameStyle.Render(l+seg+mid+seg+mid+seg+r) + "\n")
	}
	bar := frameStyle.Render("│")

	hline("┌", "┬", "┐")
	for r := 0; r < sudoku.Size; r++ {
		if r == 3 || r == 6 {
			hline("├", "┼", "┤")
		}
		b.WriteString(bar)
		for c := 0; c < sudoku.Size; c++ {
			b.WriteString(" " + m.renderCell(r, c))
			if c == 2 || c == 5 {
				b.WriteString(" " + bar)
			}
		}
		b.WriteString(" " + bar + "\n")
	}
	hline("└", "┴", "┘")
	return b.String()
}

func (m Model) renderCell(r, c int) string {
	v := m.sess.Board[r][c]
	ch := "."
	if v != 0 {
		ch = string(rune('0' + v))
	}

	st := emptyStyle
	switch {
	case v != 0 && m.sess.Board.HasConflicts(r, c):
		st = conflictStyle
	case m.mistakes[sudoku.Coord{Row: r, Col: c}]:
		st = mistakeStyle
	case m.sess.Givens[r][c]:
		st = givenStyle
	case v != 0:
		st = entryStyle
	}
	if m.hintCell != nil && m.hintCell.Row == r && m.hintCell.Col == c {
		st = hintStyle
	}

	cur := m.sess.Cursor
	if v != 0 && !(cur.Row == r && cur.Col == c) && m.sess.Board[cur.Row][cur.Col] == v {
		st = sameStyle.Inherit(st)
	}
	if cur.Row == r && cur.Col == c {
		st = cursorStyle.Inherit(st)
	}
	return st.Render(ch)
}
