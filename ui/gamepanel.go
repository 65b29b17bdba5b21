package ui

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"

	"termgomoku/notation"
	"termgomoku/types"
)

// GameInfoPanel displays game information and the move list alongside the board.
type GameInfoPanel struct {
	box   *tview.TextView
	snap  types.Snapshot
	moves []types.Move
}

// NewGameInfoPanel creates a new game info panel.
func NewGameInfoPanel() *GameInfoPanel {
	panel := &GameInfoPanel{
		box: tview.NewTextView(),
	}

	panel.box.SetDynamicColors(true)
	panel.box.SetBorder(false)
	panel.box.SetTextAlign(tview.AlignLeft)

	return panel
}

// Box returns the underlying tview component.
func (p *GameInfoPanel) Box() *tview.TextView {
	return p.box
}

// SetState updates the panel with the current game.
func (p *GameInfoPanel) SetState(snap types.Snapshot, moves []types.Move) {
	p.snap = snap
	p.moves = moves
	p.box.SetText(panelText(snap, moves))
}

const maxVisibleMoves = 14

func panelText(snap types.Snapshot, moves []types.Move) string {
	if snap.Size == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("[white::b]Game Info[-:-:-]\n")
	b.WriteString("[dimgray]──────────────────────[-:-:-]\n")
	fmt.Fprintf(&b, "[white]Board:[-:-:-] %dx%d\n", snap.Size, snap.Size)
	fmt.Fprintf(&b, "[white]Rule:[-:-:-]  %d in a row\n", snap.WinLength)
	fmt.Fprintf(&b, "[white]Move:[-:-:-]  %d\n", snap.MoveNumber)
	fmt.Fprintf(&b, "[white]Undo:[-:-:-]  %d  [white]Redo:[-:-:-] %d\n", snap.UndoCount, snap.RedoCount)

	if snap.Finished() {
		fmt.Fprintf(&b, "\n[yellow::b]%s wins[-:-:-]\n[dimgray]%s line[-]\n", snap.Outcome.Winner, snap.Outcome.Axis)
	} else {
		fmt.Fprintf(&b, "\n[white]%s to move[-]\n", snap.CurrentPlayer)
	}

	if len(moves) == 0 {
		return b.String()
	}

	b.WriteString("\n[white::b]Moves[-:-:-]\n")
	b.WriteString("[dimgray]──────────────────────[-:-:-]\n")

	start := 0
	if len(moves) > maxVisibleMoves {
		start = len(moves) - maxVisibleMoves
	}
	for i := start; i < len(moves); i++ {
		m := moves[i]

		colorStr := "[white]B[-]"
		if m.Player == types.White {
			colorStr = "[dimgray]W[-]"
		}

		marker := " "
		if i == len(moves)-1 {
			marker = "[white]>[-]"
		}

		fmt.Fprintf(&b, "%s[dimgray]%3d.[-] %s %s\n", marker, i+1, colorStr, notation.Format(m.Row, m.Col, snap.Size))
	}
	if start > 0 {
		fmt.Fprintf(&b, "[dimgray]  ··· %d earlier[-]\n", start)
	}
	return b.String()
}

// CreateGameLayout creates the main game layout: board and side panel on
// top, the control bar and the status line below.
func CreateGameLayout(board *GomokuBoardUI, hint *tview.TextView) *tview.Flex {
	infoPanel := NewGameInfoPanel()
	board.infoPanel = infoPanel
	board.refresh()

	boardRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	boardRow.AddItem(board.Box, 0, 1, true)
	boardRow.AddItem(infoPanel.Box(), 26, 0, false)

	mainFlex := tview.NewFlex().SetDirection(tview.FlexRow)
	mainFlex.AddItem(boardRow, 0, 1, true)
	mainFlex.AddItem(board.Controls, 1, 0, false)
	mainFlex.AddItem(hint, 4, 0, false)

	return mainFlex
}

// Centered places p in the middle of the screen with the given size.
func Centered(p tview.Primitive, width, height int) *tview.Flex {
	row := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(nil, 0, 1, false).
		AddItem(p, width, 0, true).
		AddItem(nil, 0, 1, false)

	return tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(nil, 0, 1, false).
		AddItem(row, height, 0, true).
		AddItem(nil, 0, 1, false)
}
