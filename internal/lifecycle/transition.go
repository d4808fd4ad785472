package lifecycle

// Transition is a requested status change resolved to its folder roots.
type Transition struct {
	From     Status
	To       Status
	FromRoot RootID
	ToRoot   RootID
}

// ResolveTransition maps both statuses to their roots.
func ResolveTransition(current, requested Status) (Transition, error) {
	fromRoot, err := RootFor(current)
	if err != nil {
		return Transition{}, err
	}
	toRoot, err := RootFor(requested)
	if err != nil {
		return Transition{}, err
	}
	return Transition{
		From:     current,
		To:       requested,
		FromRoot: fromRoot,
		ToRoot:   toRoot,
	}, nil
}

// IsNoOp reports whether the folder stays where it is.
func (t Transition) IsNoOp() bool {
	return t.FromRoot == t.ToRoot
}

// IsAward reports whether the transition moves the folder from RFPs to Current.
func (t Transition) IsAward() bool {
	return IsAward(t.FromRoot, t.ToRoot)
}

// IsAward reports whether moving a folder from one root to another is an award.
// Only RFPs -> Current qualifies; Inactive -> Current is a reactivation.
func IsAward(from, to RootID) bool {
	return from == RootRFPs && to == RootCurrent
}
