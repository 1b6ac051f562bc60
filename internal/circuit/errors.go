package circuit

import (
	"errors"
	"fmt"
	"strings"

	"github.com/povarna/generative-ai-agents/circuit-eval/internal/wiring"
)

var (
	ErrUndefinedSignal  = errors.New("undefined signal")
	ErrCyclicDefinition = errors.New("cyclic definition")
)

// UndefinedSignalError names the signal that has no definition. It is returned
// unchanged through every level of a resolution chain.
type UndefinedSignalError struct {
	Signal wiring.Signal
}

func (e *UndefinedSignalError) Error() string {
	return fmt.Sprintf("%v: %q", ErrUndefinedSignal, e.Signal)
}

func (e *UndefinedSignalError) Unwrap() error {
	return ErrUndefinedSignal
}

// CycleError reports a signal that depends on itself. Path starts and ends with
// the same signal.
type CycleError struct {
	Path []wiring.Signal
}

func (e *CycleError) Error() string {
	names := make([]string, len(e.Path))
	for i, s := range e.Path {
		names[i] = string(s)
	}
	return fmt.Sprintf("%v: %s", ErrCyclicDefinition, strings.Join(names, " -> "))
}

func (e *CycleError) Unwrap() error {
	return ErrCyclicDefinition
}
