package coordinator

import "edgescroll/internal/gesture"

// Change is a typed configuration change delivered through Apply.
type Change interface {
	isChange()
}

// HandlerChanged attaches (Handler != nil) or detaches a channel's callback.
type HandlerChanged struct {
	Channel Channel
	Handler func()
}

// StrategyChanged rebuilds the strategy.
type StrategyChanged struct {
	Name   gesture.Name
	Native bool
}

// GestureOptionsChanged rebuilds the strategy with new tuning.
type GestureOptionsChanged struct {
	Options gesture.Options
}

// AuthoringModeChanged enters or leaves non-interactive authoring mode.
type AuthoringModeChanged struct {
	Enabled bool
}

// ReachBottomTextChanged updates the bottom pocket label.
type ReachBottomTextChanged struct {
	Text string
}

func (HandlerChanged) isChange()         {}
func (StrategyChanged) isChange()        {}
func (GestureOptionsChanged) isChange()  {}
func (AuthoringModeChanged) isChange()   {}
func (ReachBottomTextChanged) isChange() {}
