package services

import "errors"

// ErrNoSolution reports an instance for which no assignment satisfies every constraint.
// It is an expected outcome, not a fault.
var ErrNoSolution = errors.New("no solution found")

// ErrInvalidInstance reports input that should have been rejected before solving.
var ErrInvalidInstance = errors.New("invalid instance")
