package gesture

// newPullDown waits for the pull to settle before committing, so the user
// can back out by scrolling down again.
func newPullDown(opts Options) Strategy {
	return newSensor(PullDown, policy{pullFactor: 100, fireOnSettle: true}, opts)
}
