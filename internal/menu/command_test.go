package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoIgnoresMenuCommandsWhileRunning(t *testing.T) {
	f := newFixture(t)

	for _, cmd := range []Command{CmdUp, CmdDown, CmdLeft, CmdRight, CmdActivate, CmdClose, CmdBack, CmdForward} {
		require.NoError(t, f.menu.Do(cmd), cmd.String())
	}
	assert.False(t, f.menu.Paused())
	assert.False(t, f.stack.Active())
}

func TestDoDrivesTheMenu(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.menu.Do(CmdTogglePause))
	require.True(t, f.menu.Paused())

	require.NoError(t, f.menu.Do(CmdDown))
	require.NoError(t, f.menu.Do(CmdActivate))
	assert.Equal(t, PanelSettings, f.menu.Current().Name())

	require.NoError(t, f.menu.Do(CmdLeft))
	assert.InDelta(t, 0.95, f.settings.Get().Volume, 1e-4)

	require.NoError(t, f.menu.Do(CmdBack))
	assert.Equal(t, PanelMain, f.menu.Current().Name())
	require.NoError(t, f.menu.Do(CmdBack), "exhausted history is swallowed")
	require.NoError(t, f.menu.Do(CmdForward))
	assert.Equal(t, PanelSettings, f.menu.Current().Name())
	require.NoError(t, f.menu.Do(CmdForward))

	require.NoError(t, f.menu.Do(CmdClose))
	require.NoError(t, f.menu.Do(CmdClose))
	assert.False(t, f.menu.Paused())

	require.NoError(t, f.menu.Do(CmdQuit))
	assert.True(t, f.game.QuitRequested())
}

func TestCommandString(t *testing.T) {
	assert.Equal(t, "toggle-pause", CmdTogglePause.String())
	assert.Equal(t, "unknown", Command(99).String())
}
