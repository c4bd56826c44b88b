package affectation

// ValideeEvent is published after an affectation has been committed.
type ValideeEvent struct {
	Result Affectation
	Actor  string
}

// TermineeEvent is published after a validated affectation has been closed.
type TermineeEvent struct {
	Result Affectation
	Actor  string
}
