package gesture

// newSimulated does not rely on mouse reporting: key scrolling and pointer
// drags are both turned into pull distance, and the pull commits when it
// settles or the pointer lifts.
func newSimulated(opts Options) Strategy {
	return newSensor(Simulated, policy{pullFactor: 100, fireOnSettle: true, pointer: true}, opts)
}
