package gesture

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counts struct{ pull, release, bottom int }

func watch(s Strategy) *counts {
	c := &counts{}
	s.OnPullDown(func() { c.pull++ })
	s.OnRelease(func() { c.release++ })
	s.OnReachBottom(func() { c.bottom++ })
	return c
}

func build(t *testing.T, name Name) Strategy {
	t.Helper()
	s, err := DefaultRegistry().New(name, true, Options{Threshold: 4, BottomMargin: 2, ReleaseStep: 2})
	require.NoError(t, err)
	s.SetPullDownEnabled(true)
	s.SetReachBottomEnabled(true)
	return s
}

func up(n int) Motion { return Motion{Kind: Scroll, Delta: -n, AtTop: true, Remaining: 10} }

func isClosed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

func TestSelectWithoutNativeAlwaysSimulated(t *testing.T) {
	for _, n := range []Name{PullDown, SwipeDown, SlideDown, Simulated, "unknown-xyz"} {
		got, f, err := Select(n, false)
		require.NoError(t, err)
		assert.Equal(t, Simulated, got)
		assert.Equal(t, Simulated, f(DefaultOptions()).Name())
	}
}

func TestSelectUnknownBeforeConstruction(t *testing.T) {
	built := 0
	r := Registry{Simulated: func(o Options) Strategy { built++; return newSimulated(o) }}
	s, err := r.New("unknown-xyz", true, DefaultOptions())
	require.Error(t, err)
	assert.Nil(t, s)
	assert.Zero(t, built)

	var unk *UnknownStrategyError
	require.True(t, errors.As(err, &unk))
	assert.Equal(t, "unknown-xyz", unk.Name)
}

func TestSelectNative(t *testing.T) {
	got, _, err := Select(SwipeDown, true)
	require.NoError(t, err)
	assert.Equal(t, SwipeDown, got)
}

func TestDefaultFor(t *testing.T) {
	assert.Equal(t, SwipeDown, DefaultFor("android"))
	assert.Equal(t, SlideDown, DefaultFor("Windows"))
	assert.Equal(t, PullDown, DefaultFor("linux"))
}

func TestNamesSorted(t *testing.T) {
	assert.Equal(t, []Name{PullDown, Simulated, SlideDown, SwipeDown}, DefaultRegistry().Names())
}

func TestPullDownFiresOnSettle(t *testing.T) {
	s := build(t, PullDown)
	c := watch(s)
	s.Feed(up(2))
	s.Feed(up(2))
	assert.Equal(t, Pending, s.Phase())
	assert.Zero(t, c.pull)
	s.Feed(Motion{Kind: Settle})
	assert.Equal(t, 1, c.pull)
	assert.Equal(t, Active, s.Phase())
}

func TestPullDownBackOut(t *testing.T) {
	s := build(t, PullDown)
	c := watch(s)
	s.Feed(up(2))
	s.Feed(Motion{Kind: Settle})
	assert.Zero(t, c.pull)
	assert.Equal(t, Idle, s.Phase())
	assert.Zero(t, s.Offset())
}

func TestSwipeDownFiresAtThreshold(t *testing.T) {
	s := build(t, SwipeDown)
	c := watch(s)
	s.Feed(up(3))
	assert.Zero(t, c.pull)
	s.Feed(up(1))
	assert.Equal(t, 1, c.pull)
	s.Feed(up(5))
	assert.Equal(t, 1, c.pull, "no re-fire while active")
}

func TestSlideDownHalfThresholdAndEarlyBottom(t *testing.T) {
	s := build(t, SlideDown)
	c := watch(s)
	s.Feed(up(2))
	assert.Equal(t, 1, c.pull)

	s2 := build(t, SlideDown)
	c2 := watch(s2)
	s2.Feed(Motion{Kind: Scroll, Delta: 1, Remaining: 2})
	assert.Equal(t, 1, c2.bottom)
}

func TestSimulatedDrag(t *testing.T) {
	s := build(t, Simulated)
	c := watch(s)
	s.Feed(Motion{Kind: Press, Y: 1, AtTop: true})
	s.Feed(Motion{Kind: Drag, Y: 6})
	s.Feed(Motion{Kind: Settle})
	assert.Zero(t, c.pull, "settle is ignored while pressed")
	s.Feed(Motion{Kind: Lift})
	assert.Equal(t, 1, c.pull)
}

func TestPointerIgnoredByNativeStrategies(t *testing.T) {
	s := build(t, SwipeDown)
	c := watch(s)
	s.Feed(Motion{Kind: Press, Y: 1, AtTop: true})
	s.Feed(Motion{Kind: Drag, Y: 20, Remaining: 5})
	s.Feed(Motion{Kind: Lift})
	assert.Zero(t, c.pull)
}

func TestDisabledChannelsNeverTrigger(t *testing.T) {
	s := build(t, SwipeDown)
	c := watch(s)
	s.SetPullDownEnabled(false)
	s.SetReachBottomEnabled(false)
	s.Feed(up(10))
	s.Feed(Motion{Kind: Scroll, Delta: 1, Remaining: 0})
	assert.Zero(t, c.pull)
	assert.Zero(t, c.bottom)
}

func TestReachBottomOncePerArrival(t *testing.T) {
	s := build(t, PullDown)
	c := watch(s)
	s.Feed(Motion{Kind: Scroll, Delta: 1, Remaining: 0})
	s.Feed(Motion{Kind: Scroll, Delta: 1, Remaining: 0})
	assert.Equal(t, 1, c.bottom)

	s.Feed(Motion{Kind: Scroll, Delta: -1, Remaining: 3})
	s.Feed(Motion{Kind: Scroll, Delta: 1, Remaining: 0})
	assert.Equal(t, 2, c.bottom)

	<-s.Release()
	s.Feed(Motion{Kind: Scroll, Delta: 1, Remaining: 0})
	assert.Equal(t, 3, c.bottom)
}

func TestReleaseIdleResolvesImmediately(t *testing.T) {
	s := build(t, PullDown)
	c := watch(s)
	assert.True(t, isClosed(s.Release()))
	assert.Equal(t, 1, c.release)
}

func TestReleaseAnimates(t *testing.T) {
	s := build(t, SwipeDown)
	c := watch(s)
	s.Feed(up(4))
	require.Equal(t, Active, s.Phase())

	done := s.Release()
	again := s.Release()
	assert.False(t, isClosed(done))
	assert.Equal(t, Releasing, s.Phase())

	assert.True(t, s.Step())
	assert.False(t, s.Step())
	assert.True(t, isClosed(done))
	assert.True(t, isClosed(again))
	assert.Equal(t, Idle, s.Phase())
	assert.Equal(t, 1, c.release)
}

func TestPendingRelease(t *testing.T) {
	s := build(t, PullDown)
	s.PendingRelease()
	assert.Equal(t, Active, s.Phase())
	assert.Equal(t, 4, s.Offset())
}

func TestDisposeMidGesture(t *testing.T) {
	s := build(t, SwipeDown)
	c := watch(s)
	s.Feed(up(4))
	done := s.Release()
	s.Dispose()
	s.Dispose()
	assert.True(t, isClosed(done))
	assert.False(t, s.Step())

	s.Feed(up(10))
	s.SetPullDownEnabled(false)
	s.PendingRelease()
	assert.True(t, isClosed(s.Release()))
	assert.Equal(t, 0, c.release)
}

func TestSubscriptionCancel(t *testing.T) {
	var sig Signal
	n := 0
	sub := sig.Subscribe(func() { n++ })
	sig.Subscribe(func() { n += 10 })
	sig.Emit()
	sub.Cancel()
	sub.Cancel()
	sig.Emit()
	assert.Equal(t, 21, n)
	assert.Equal(t, 1, sig.Len())

	var zero Subscription
	zero.Cancel()
}

func TestSubscriptionCancelDuringEmit(t *testing.T) {
	var sig Signal
	n := 0
	var second Subscription
	sig.Subscribe(func() { second.Cancel() })
	second = sig.Subscribe(func() { n++ })
	sig.Emit()
	assert.Zero(t, n)
}
