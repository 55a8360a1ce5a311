package gesture

// newSlideDown commits at half the pull threshold and treats the last
// BottomMargin rows as the bottom edge.
func newSlideDown(opts Options) Strategy {
	return newSensor(SlideDown, policy{pullFactor: 50, earlyBottom: true}, opts)
}
