package atm

import "errors"

// Domain errors. All of them are recoverable: the machine reports them to the
// user by voice and leaves the session otherwise unchanged; none abort the run.
var (
	// ErrInvalidPin covers an incomplete PIN buffer as well as a mismatch
	// against the stored PIN.
	ErrInvalidPin = errors.New("invalid pin")

	// ErrInvalidAmount means the entered amount is not positive.
	ErrInvalidAmount = errors.New("amount must be > 0")

	// ErrInsufficientFunds means a withdrawal exceeds the balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrLimitExceeded means the amount exceeds the per-operation ceiling.
	ErrLimitExceeded = errors.New("limit exceeded")

	// ErrUnrecognized means no dictionary, amount or digit interpretation
	// matched a transcript.
	ErrUnrecognized = errors.New("unrecognized command")
)
