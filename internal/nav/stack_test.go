package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScreen struct {
	name    string
	visible bool
	shows   int
	hides   int
}

func (f *fakeScreen) Name() string { return f.name }
func (f *fakeScreen) Show()        { f.visible = true; f.shows++ }
func (f *fakeScreen) Hide()        { f.visible = false; f.hides++ }

func screens(names ...string) []*fakeScreen {
	out := make([]*fakeScreen, len(names))
	for i, n := range names {
		out[i] = &fakeScreen{name: n}
	}
	return out
}

func visibleNames(all ...*fakeScreen) []string {
	var out []string
	for _, s := range all {
		if s.visible {
			out = append(out, s.name)
		}
	}
	return out
}

func TestStartThenEndHidesScreen(t *testing.T) {
	st := NewStack(nil)
	a := &fakeScreen{name: "a"}

	require.NoError(t, st.StartNewInteraction(a))
	assert.True(t, a.visible)
	assert.True(t, st.Active())
	assert.Equal(t, 0, st.Cursor())
	assert.NotEmpty(t, st.InteractionID())

	st.EndInteraction()
	assert.False(t, a.visible)
	assert.False(t, st.Active())
	assert.Equal(t, 0, st.Len())
	assert.Empty(t, st.InteractionID())
}

func TestStartOnActiveStackIsInvalidState(t *testing.T) {
	st := NewStack(nil)
	s := screens("a", "b")

	require.NoError(t, st.StartNewInteraction(s[0]))
	err := st.StartNewInteraction(s[1])

	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Equal(t, 1, st.Len())
	assert.Same(t, s[0], st.Current())
	assert.False(t, s[1].visible)
}

func TestOpenThenCloseRestoresPrevious(t *testing.T) {
	st := NewStack(nil)
	s := screens("a", "b")

	require.NoError(t, st.StartNewInteraction(s[0]))
	require.NoError(t, st.OpenNewMenu(s[1]))
	assert.Equal(t, []string{"b"}, visibleNames(s...))
	assert.Equal(t, 1, st.Cursor())

	closed, err := st.CloseCurrentMenu()
	require.NoError(t, err)
	assert.Same(t, s[1], closed)
	assert.Equal(t, 0, st.Cursor())
	assert.Equal(t, 1, st.Len())
	assert.Equal(t, []string{"a"}, visibleNames(s...))
}

func TestCloseLastMenuExhaustsHistory(t *testing.T) {
	st := NewStack(nil)
	a := &fakeScreen{name: "a"}

	require.NoError(t, st.StartNewInteraction(a))
	closed, err := st.CloseCurrentMenu()

	assert.True(t, IsExhausted(err))
	assert.Same(t, a, closed)
	assert.False(t, a.visible)
	assert.False(t, st.Active())
}

func TestCloseOnEmptyIsInvalidState(t *testing.T) {
	st := NewStack(nil)

	closed, err := st.CloseCurrentMenu()

	assert.Nil(t, closed)
	assert.ErrorIs(t, err, ErrInvalidState)
	var opErr *OpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "close", opErr.Op)
	assert.Equal(t, 0, st.Len())
}

func TestOpenOnEmptyIsInvalidState(t *testing.T) {
	st := NewStack(nil)
	b := &fakeScreen{name: "b"}

	err := st.OpenNewMenu(b)

	assert.ErrorIs(t, err, ErrInvalidState)
	assert.False(t, b.visible)
	assert.Equal(t, 0, st.Len())
}

func TestNilScreenRejected(t *testing.T) {
	st := NewStack(nil)
	err := st.StartNewInteraction(nil)
	assert.ErrorIs(t, err, ErrNilScreen)
	var op *OpError
	require.ErrorAs(t, err, &op)
	assert.Equal(t, "start", op.Op)

	require.NoError(t, st.StartNewInteraction(&fakeScreen{name: "a"}))
	err = st.OpenNewMenu(nil)
	assert.ErrorIs(t, err, ErrNilScreen)
	require.ErrorAs(t, err, &op)
	assert.Equal(t, "open", op.Op)
	assert.Equal(t, 1, st.Len())
}

func TestGoBackWalksPreviousChainWithoutPopping(t *testing.T) {
	st := NewStack(nil)
	s := screens("a", "b", "c")

	require.NoError(t, st.StartNewInteraction(s[0]))
	require.NoError(t, st.OpenNewMenu(s[1]))
	require.NoError(t, st.OpenNewMenu(s[2]))

	require.NoError(t, st.GoBack())
	assert.Equal(t, []string{"b"}, visibleNames(s...))
	assert.Equal(t, 1, st.Cursor())
	assert.Equal(t, 3, st.Len())

	require.NoError(t, st.GoBack())
	assert.Equal(t, []string{"a"}, visibleNames(s...))
	assert.Equal(t, 0, st.Cursor())
	assert.Equal(t, 3, st.Len())

	assert.True(t, IsExhausted(st.GoBack()))
	assert.Equal(t, []string{"a"}, visibleNames(s...))
}

func TestGoForwardRetracesGoBack(t *testing.T) {
	st := NewStack(nil)
	s := screens("a", "b", "c")

	require.NoError(t, st.StartNewInteraction(s[0]))
	require.NoError(t, st.OpenNewMenu(s[1]))
	require.NoError(t, st.OpenNewMenu(s[2]))
	require.NoError(t, st.GoBack())
	require.NoError(t, st.GoBack())

	require.NoError(t, st.GoForward())
	assert.Equal(t, []string{"b"}, visibleNames(s...))
	assert.Same(t, s[1], st.Current())

	require.NoError(t, st.GoForward())
	assert.Equal(t, []string{"c"}, visibleNames(s...))
	assert.Equal(t, 2, st.Cursor())

	assert.True(t, IsExhausted(st.GoForward()))
	assert.Equal(t, 3, st.Len())
}

func TestBackAndForwardOnShortHistoryMutateNothing(t *testing.T) {
	st := NewStack(nil)
	assert.True(t, IsExhausted(st.GoBack()))
	assert.True(t, IsExhausted(st.GoForward()))
	assert.Equal(t, 0, st.Len())

	a := &fakeScreen{name: "a"}
	require.NoError(t, st.StartNewInteraction(a))
	shows, hides := a.shows, a.hides

	assert.True(t, IsExhausted(st.GoBack()))
	assert.True(t, IsExhausted(st.GoForward()))
	assert.Equal(t, 1, st.Len())
	assert.Equal(t, 0, st.Cursor())
	assert.Equal(t, shows, a.shows)
	assert.Equal(t, hides, a.hides)
	assert.True(t, a.visible)
}

func TestOpenAfterGoBackDropsForwardHistory(t *testing.T) {
	st := NewStack(nil)
	s := screens("a", "b", "c", "d")

	require.NoError(t, st.StartNewInteraction(s[0]))
	require.NoError(t, st.OpenNewMenu(s[1]))
	require.NoError(t, st.OpenNewMenu(s[2]))
	require.NoError(t, st.GoBack())

	require.NoError(t, st.OpenNewMenu(s[3]))
	assert.Equal(t, []string{"d"}, visibleNames(s...))
	assert.Equal(t, 3, st.Len())
	assert.Equal(t, 2, st.Cursor())

	nodes := st.Nodes()
	assert.Same(t, s[1], nodes[2].Previous)
	assert.Same(t, s[3], nodes[2].Next)
}

func TestCloseAfterGoBackClosesVisibleScreen(t *testing.T) {
	st := NewStack(nil)
	s := screens("a", "b", "c")

	require.NoError(t, st.StartNewInteraction(s[0]))
	require.NoError(t, st.OpenNewMenu(s[1]))
	require.NoError(t, st.OpenNewMenu(s[2]))
	require.NoError(t, st.GoBack())

	closed, err := st.CloseCurrentMenu()
	require.NoError(t, err)
	assert.Same(t, s[1], closed)
	assert.Equal(t, []string{"a"}, visibleNames(s...))
	assert.Equal(t, 1, st.Len())
	assert.Equal(t, 0, st.Cursor())
}

func TestEndInteractionIsIdempotent(t *testing.T) {
	st := NewStack(nil)
	s := screens("a", "b", "c")

	require.NoError(t, st.StartNewInteraction(s[0]))
	require.NoError(t, st.OpenNewMenu(s[1]))
	require.NoError(t, st.OpenNewMenu(s[2]))
	require.NoError(t, st.GoBack())

	st.EndInteraction()
	hides := []int{s[0].hides, s[1].hides, s[2].hides}
	st.EndInteraction()

	assert.Empty(t, visibleNames(s...))
	assert.False(t, st.Active())
	assert.Equal(t, hides, []int{s[0].hides, s[1].hides, s[2].hides})
	assert.Nil(t, st.Current())
}

func TestNodePreviousLinksToPriorNext(t *testing.T) {
	st := NewStack(nil)
	s := screens("a", "b", "c")

	require.NoError(t, st.StartNewInteraction(s[0]))
	require.NoError(t, st.OpenNewMenu(s[1]))
	require.NoError(t, st.OpenNewMenu(s[2]))

	nodes := st.Nodes()
	require.Len(t, nodes, 3)
	assert.Nil(t, nodes[0].Previous)
	for i := 1; i < len(nodes); i++ {
		assert.Same(t, nodes[i-1].Next, nodes[i].Previous)
	}
}

func TestAtMostOneScreenVisible(t *testing.T) {
	st := NewStack(nil)
	s := screens("a", "b", "c", "d")

	steps := []func(){
		func() { _ = st.StartNewInteraction(s[0]) },
		func() { _ = st.OpenNewMenu(s[1]) },
		func() { _ = st.OpenNewMenu(s[2]) },
		func() { _ = st.GoBack() },
		func() { _ = st.GoBack() },
		func() { _ = st.GoBack() },
		func() { _ = st.GoForward() },
		func() { _ = st.OpenNewMenu(s[3]) },
		func() { _ = st.GoBack() },
		func() { _, _ = st.CloseCurrentMenu() },
		func() { _ = st.GoForward() },
		func() { _, _ = st.CloseCurrentMenu() },
		func() { _, _ = st.CloseCurrentMenu() },
		func() { _ = st.StartNewInteraction(s[2]) },
		func() { st.EndInteraction() },
	}
	for i, step := range steps {
		step()
		visible := visibleNames(s...)
		assert.LessOrEqual(t, len(visible), 1, "step %d: %v", i, visible)
		if st.Active() {
			require.Len(t, visible, 1, "step %d", i)
			assert.Equal(t, st.Current().Name(), visible[0], "step %d", i)
		}
	}
}
