package ui

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"termgomoku/sgf"
	"termgomoku/types"
)

// writeRecord saves moves as an SGF file in dir and returns its path.
func writeRecord(t *testing.T, dir string, size, winLength int, moves []types.Move) string {
	t.Helper()
	path := filepath.Join(dir, "2026-03-01_120000_game.sgf")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, sgf.Encode(f, sgf.NewHeader(size, winLength, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)), moves))
	return path
}

var threeInARow = []types.Move{
	{Row: 1, Col: 1, Player: types.Black},
	{Row: 2, Col: 1, Player: types.White},
	{Row: 1, Col: 2, Player: types.Black},
	{Row: 2, Col: 2, Player: types.White},
	{Row: 1, Col: 3, Player: types.Black},
}

func TestReplay_ReachesRecordedOutcome(t *testing.T) {
	dir := t.TempDir()
	writeRecord(t, dir, 9, 3, threeInARow)
	games, err := sgf.ListGames(dir)
	require.NoError(t, err)
	require.Len(t, games, 1)

	snap, err := replay(games[0])

	require.NoError(t, err)
	assert.True(t, snap.Finished())
	assert.Equal(t, types.Black, snap.Outcome.Winner)
	assert.Equal(t, types.Horizontal, snap.Outcome.Axis)
	assert.Equal(t, 5, snap.MoveNumber)
	assert.Len(t, winningRun(snap), 3)
}

func TestReplay_StopsAtRejectedMove(t *testing.T) {
	dir := t.TempDir()
	writeRecord(t, dir, 9, 5, []types.Move{
		{Row: 5, Col: 5, Player: types.Black},
		{Row: 5, Col: 5, Player: types.White},
		{Row: 6, Col: 6, Player: types.Black},
	})
	games, err := sgf.ListGames(dir)
	require.NoError(t, err)
	require.Len(t, games, 1)

	snap, err := replay(games[0])

	require.NoError(t, err)
	assert.Equal(t, 1, snap.MoveNumber)
	assert.Equal(t, types.None, snap.At(6, 6))
}

func TestHistoryBrowser_PreviewAndDelete(t *testing.T) {
	dir := t.TempDir()
	path := writeRecord(t, dir, 9, 3, threeInARow)
	done := 0
	hb := NewHistoryBrowser(dir, func() { done++ })
	require.Len(t, hb.games, 1)

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(60, 30)

	hb.drawPreview(screen, 0, 0, 60, 30)

	// (1,1) is drawn at the top left of the preview, (2,1) one row down
	ch, _, _, _ := screen.GetContent(2, 1)
	assert.Equal(t, '●', ch)
	ch, _, _, _ = screen.GetContent(2, 2)
	assert.Equal(t, '○', ch)
	assert.Contains(t, hb.replays, path)

	assert.Nil(t, hb.handleInput(runeKey('d')))
	assert.NoFileExists(t, path)
	assert.Empty(t, hb.games)

	assert.Nil(t, hb.handleInput(key(tcell.KeyEscape)))
	assert.Equal(t, 1, done)
	assert.NotNil(t, hb.handleInput(key(tcell.KeyDown)), "list keys pass through")
}
