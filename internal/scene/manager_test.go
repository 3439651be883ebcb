package scene

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPauseEmitsBeforeTimeStops(t *testing.T) {
	m := NewManager(nil, nil)
	var scaleAtPause, scaleAtResume float64

	m.OnPause.Subscribe(func(struct{}) { scaleAtPause = m.TimeScale() })
	m.OnResume.Subscribe(func(struct{}) { scaleAtResume = m.TimeScale() })

	m.Pause()
	assert.True(t, m.Paused())
	assert.Equal(t, 0.0, m.TimeScale())
	assert.Equal(t, 1.0, scaleAtPause)

	m.Resume()
	assert.False(t, m.Paused())
	assert.Equal(t, 1.0, m.TimeScale())
	assert.Equal(t, 1.0, scaleAtResume)
}

func TestPauseTwiceEmitsOnce(t *testing.T) {
	m := NewManager(nil, nil)
	pauses, resumes := 0, 0
	m.OnPause.Subscribe(func(struct{}) { pauses++ })
	m.OnResume.Subscribe(func(struct{}) { resumes++ })

	m.Pause()
	m.Pause()
	m.Resume()
	m.Resume()
	m.TogglePause()

	assert.Equal(t, 2, pauses)
	assert.Equal(t, 1, resumes)
	assert.True(t, m.Paused())
}

func TestQuit(t *testing.T) {
	m := NewManager(nil, nil)
	assert.False(t, m.QuitRequested())
	m.Quit()
	m.Quit()
	assert.True(t, m.QuitRequested())
}

func TestGoToSceneActivatesOnUpdate(t *testing.T) {
	reg := NewRegistry()
	activated := false
	reg.Register("Hideout", func(ctx context.Context, progress Progress) (Activate, error) {
		progress(0.45)
		progress(0.9)
		return func() { activated = true }, nil
	})
	m := NewManager(nil, reg)
	var loaded []string
	m.OnSceneLoaded.Subscribe(func(name string) { loaded = append(loaded, name) })

	load, err := m.GoToScene(context.Background(), "hideout")
	require.NoError(t, err)
	require.NoError(t, load.Wait(context.Background()))

	assert.Equal(t, 1.0, load.Progress())
	assert.False(t, activated, "activation waits for the main loop")

	assert.True(t, m.Update())
	assert.True(t, activated)
	assert.True(t, load.Activated())
	assert.Equal(t, "hideout", m.CurrentScene())
	assert.Equal(t, []string{"hideout"}, loaded)
	assert.Nil(t, m.Pending())
	assert.False(t, m.Update())
}

func TestGoToSceneRejectsConcurrentLoad(t *testing.T) {
	reg := NewRegistry()
	release := make(chan struct{})
	reg.Register("yard", func(ctx context.Context, progress Progress) (Activate, error) {
		<-release
		return nil, nil
	})
	m := NewManager(nil, reg)

	first, err := m.GoToScene(context.Background(), "yard")
	require.NoError(t, err)
	_, err = m.GoToScene(context.Background(), "yard")
	assert.ErrorIs(t, err, ErrLoadInProgress)
	assert.False(t, m.Update())

	close(release)
	require.NoError(t, first.Wait(context.Background()))
	assert.True(t, m.Update())
}

func TestGoToSceneLoaderFailure(t *testing.T) {
	reg := NewRegistry()
	boom := errors.New("boom")
	reg.Register("yard", func(ctx context.Context, progress Progress) (Activate, error) {
		return nil, boom
	})
	m := NewManager(nil, reg)

	load, err := m.GoToScene(context.Background(), "yard")
	require.NoError(t, err)
	assert.ErrorIs(t, load.Wait(context.Background()), boom)
	assert.ErrorIs(t, load.Err(), boom)

	assert.False(t, m.Update())
	assert.Empty(t, m.CurrentScene())
	assert.Nil(t, m.Pending())
}

func TestGoToUnknownSceneSuggestsName(t *testing.T) {
	reg := NewRegistry()
	noop := func(ctx context.Context, progress Progress) (Activate, error) { return nil, nil }
	reg.Register("courtyard", noop)
	reg.Register("hideout", noop)
	m := NewManager(nil, reg)

	_, err := m.GoToScene(context.Background(), "hidout")

	require.ErrorIs(t, err, ErrUnknownScene)
	var unknown *UnknownSceneError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "hideout", unknown.Suggestion)
	assert.Contains(t, err.Error(), "did you mean")

	_, err = m.GoToScene(context.Background(), "basement")
	require.ErrorAs(t, err, &unknown)
	assert.Empty(t, unknown.Suggestion)
}

func TestLoadWaitHonoursContext(t *testing.T) {
	reg := NewRegistry()
	release := make(chan struct{})
	defer close(release)
	reg.Register("slow", func(ctx context.Context, progress Progress) (Activate, error) {
		<-release
		return nil, nil
	})
	m := NewManager(nil, reg)

	load, err := m.GoToScene(context.Background(), "slow")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, load.Wait(ctx), context.DeadlineExceeded)
	assert.NoError(t, load.Err())
}

func TestLoadReportNormalisesProgress(t *testing.T) {
	l := newLoad("x")
	assert.InDelta(t, 0.5, l.report(0.45), 1e-9)
	assert.Equal(t, 1.0, l.report(0.95))
	assert.Equal(t, 0.0, l.report(-1))
}

func TestCloseResetsSubscribers(t *testing.T) {
	m := NewManager(nil, nil)
	m.OnPause.Subscribe(func(struct{}) {})
	m.OnResume.Subscribe(func(struct{}) {})
	m.OnSceneLoaded.Subscribe(func(string) {})

	m.Close()

	assert.Equal(t, 0, m.OnPause.Len())
	assert.Equal(t, 0, m.OnResume.Len())
	assert.Equal(t, 0, m.OnSceneLoaded.Len())
}

func TestPauseSignalsAreTheManagersOwn(t *testing.T) {
	m := NewManager(nil, nil)
	onPause, onResume := m.PauseSignals()

	got := 0
	sub := onPause.Subscribe(func(struct{}) { got++ })
	m.TogglePause()
	assert.Equal(t, 1, got)
	assert.Same(t, &m.OnResume, onResume)

	sub.Unsubscribe()
	m.TogglePause()
	m.TogglePause()
	assert.Equal(t, 1, got)
}
