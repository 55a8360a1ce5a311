package gesture

func newSwipeDown(opts Options) Strategy {
	return newSensor(SwipeDown, policy{pullFactor: 100}, opts)
}
