// Package cli implements a command-line UI for the game: board rendering, the winner banner
// and a Human player that reads its moves from the terminal.
package cli

import (
	"bufio"
	"fmt"
	"github.com/charmbracelet/lipgloss"
	"github.com/janpfeifer/bkgGo/internal/players"
	. "github.com/janpfeifer/bkgGo/internal/state"
	"golang.org/x/term"
	"io"
	"os"
	"strings"
)

const (
	// MaxStackRows is the number of rows used to draw a column: taller stacks show their count
	// on the last row.
	MaxStackRows = 5

	// CharsPerColumn is the width of a column in the rendered board.
	CharsPerColumn = 3
)

// UI renders boards to a writer.
type UI struct {
	color, clearScreen bool
	out                io.Writer
	pieceStyles        [NumColors]lipgloss.Style
	frameStyle         lipgloss.Style
}

// New creates a UI printing to os.Stdout.
func New(color bool, clearScreen bool) *UI {
	return NewWithWriter(os.Stdout, color, clearScreen)
}

// NewWithWriter creates a UI printing to out.
func NewWithWriter(out io.Writer, color bool, clearScreen bool) *UI {
	ui := &UI{color: color, clearScreen: clearScreen, out: out}
	ui.frameStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	if color {
		ui.pieceStyles[White] = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("9"))
		ui.pieceStyles[Black] = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("10"))
		ui.frameStyle = ui.frameStyle.BorderForeground(lipgloss.Color("13"))
	}
	return ui
}

// terminalWidth returns the width of the terminal, or 0 if out is not a terminal.
func (ui *UI) terminalWidth() int {
	f, ok := ui.out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

// printCentered prints the block centered in the terminal.
func (ui *UI) printCentered(block string) {
	indent := max((ui.terminalWidth()-lipgloss.Width(block))/2, 0)
	for _, line := range strings.Split(block, "\n") {
		if len(line) == 0 {
			_, _ = fmt.Fprintln(ui.out)
			continue
		}
		_, _ = fmt.Fprintf(ui.out, "%s%s\n", strings.Repeat(" ", indent), line)
	}
}

func centerString(s string, fit int) string {
	if len(s) >= fit {
		return s
	}
	marginLeft := (fit - len(s)) / 2
	marginRight := fit - len(s) - marginLeft
	return strings.Repeat(" ", marginLeft) + s + strings.Repeat(" ", marginRight)
}

// PlayerName returns the colored name of the player of the given color.
func (ui *UI) PlayerName(c Color) string {
	name := fmt.Sprintf("%s (%s)", c, c.Symbol())
	if !ui.color {
		return name
	}
	return ui.pieceStyles[c].Render(name)
}

// cell renders one row of a column: a piece symbol, the count of a tall stack, or empty.
func (ui *UI) cell(col Column, row int) string {
	if col.Count <= row {
		return strings.Repeat(" ", CharsPerColumn)
	}
	text := col.Color.Symbol()
	if row == MaxStackRows-1 && col.Count > MaxStackRows {
		text = fmt.Sprintf("%d", col.Count)
	}
	text = centerString(text, CharsPerColumn)
	if !ui.color {
		return text
	}
	return ui.pieceStyles[col.Color].Render(text)
}

// indices renders the column numbers of a half board.
func indices(columns []int) string {
	var sb strings.Builder
	for _, ii := range columns {
		sb.WriteString(centerString(fmt.Sprintf("%d", ii), CharsPerColumn))
	}
	return sb.String()
}

// RenderBoard returns the board drawn as text: columns from numColumns/2 to numColumns-1
// on the top half, growing down, and columns numColumns/2-1 to 0 on the bottom half,
// growing up. White moves left to right on the bottom half, then right to left on the top.
func (ui *UI) RenderBoard(board *Board) string {
	n := board.NumColumns()
	top := make([]int, 0, n/2)
	for ii := n - 1; ii >= n/2; ii-- {
		top = append(top, ii)
	}
	bottom := make([]int, 0, n/2)
	for ii := range n / 2 {
		bottom = append(bottom, ii)
	}

	var lines []string
	lines = append(lines, indices(top))
	for row := range MaxStackRows {
		var sb strings.Builder
		for _, ii := range top {
			sb.WriteString(ui.cell(board.Column(ii), row))
		}
		lines = append(lines, sb.String())
	}
	lines = append(lines, strings.Repeat("─", CharsPerColumn*len(top)))
	for row := MaxStackRows - 1; row >= 0; row-- {
		var sb strings.Builder
		for _, ii := range bottom {
			sb.WriteString(ui.cell(board.Column(ii), row))
		}
		lines = append(lines, sb.String())
	}
	lines = append(lines, indices(bottom))

	var status []string
	for _, c := range Colors {
		status = append(status, fmt.Sprintf("%s: bar=%d out=%d/%d pips=%d",
			ui.PlayerName(c), board.Bar(c), board.Out(c), board.NumPieces(c), board.PipCount(c)))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		ui.frameStyle.Render(strings.Join(lines, "\n")),
		strings.Join(status, "\n"))
}

// PrintBoard prints the board centered in the terminal.
func (ui *UI) PrintBoard(board *Board) {
	if ui.clearScreen {
		_, _ = fmt.Fprint(ui.out, "\033c")
	}
	ui.printCentered(ui.RenderBoard(board))
}

// PrintWinner prints a banner announcing the winner.
func (ui *UI) PrintWinner(winner Color) {
	_, _ = fmt.Fprintln(ui.out)
	banner := fmt.Sprintf("*** %s PLAYER WINS!! Congratulations! ***", strings.ToUpper(winner.String()))
	if ui.color {
		banner = lipgloss.NewStyle().
			Background(lipgloss.Color("13")).
			Foreground(lipgloss.Color("0")).
			Padding(1, 2).
			Render(banner)
	}
	ui.printCentered(banner)
	_, _ = fmt.Fprintln(ui.out)
}

// Human is a players.Player that shows the board and asks the user to choose among the
// legal moves.
type Human struct {
	ui     *UI
	reader *bufio.Reader
}

// Assert Human is a players.Player.
var _ players.Player = (*Human)(nil)

// NewHuman creates a Human player that prints with ui and reads its choices from in.
func NewHuman(ui *UI, in io.Reader) *Human {
	return &Human{ui: ui, reader: bufio.NewReader(in)}
}

// String implements fmt.Stringer.
func (h *Human) String() string { return "human" }

// maxReadAttempts before giving up reading a choice.
const maxReadAttempts = 3

// SelectMove implements players.Player. The board is shown from the human's perspective:
// its pieces are always White (o).
func (h *Human) SelectMove(board *Board, moves []Move) (move Move, ok bool) {
	if len(moves) == 0 {
		return nil, false
	}
	ui := h.ui
	ui.PrintBoard(board)
	_, _ = fmt.Fprintf(ui.out, "\nYou play %s. Available moves:\n", ui.PlayerName(White))
	for ii, m := range moves {
		_, _ = fmt.Fprintf(ui.out, "  %3d: %s\n", ii+1, m)
	}
	for range maxReadAttempts {
		_, _ = fmt.Fprintf(ui.out, "Move [1-%d] > ", len(moves))
		text, err := h.reader.ReadString('\n')
		text = strings.TrimSpace(text)
		var choice int
		if _, scanErr := fmt.Sscanf(text, "%d", &choice); scanErr == nil && choice >= 1 && choice <= len(moves) {
			return moves[choice-1], true
		}
		if err != nil {
			_, _ = fmt.Fprintf(ui.out, "\n* Failed to read move: %v\n", err)
			return nil, false
		}
		_, _ = fmt.Fprintf(ui.out, "* Invalid choice %q, please type a number from 1 to %d.\n", text, len(moves))
	}
	_, _ = fmt.Fprintf(ui.out, "* Failed to read a valid move %d times, passing.\n", maxReadAttempts)
	return nil, false
}
