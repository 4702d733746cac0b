package keyboard_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/music_school_scheduler/internal/controller/keyboard"
)

func TestGrid(t *testing.T) {
	kb := keyboard.NewBuilder().
		Grid(2, keyboard.Button("a", "1"), keyboard.Button("b", "2"), keyboard.Button("c", "3")).
		Row(keyboard.ConfirmCancelButtons("ok", "no")...).
		Row().
		Build()

	require.Len(t, kb.InlineKeyboard, 3)
	require.Len(t, kb.InlineKeyboard[0], 2)
	require.Len(t, kb.InlineKeyboard[1], 1)
	require.Equal(t, "3", kb.InlineKeyboard[1][0].CallbackData)
	require.Equal(t, "no", kb.InlineKeyboard[2][1].CallbackData)
}

func TestPrevNextRow(t *testing.T) {
	row := keyboard.PrevNextRow("p", "15.01", "noop", "n")
	require.Len(t, row, 3)
	require.Equal(t, "p", row[0].CallbackData)
	require.Equal(t, "15.01", row[1].Text)
	require.Equal(t, "n", row[2].CallbackData)
}
