// Package circuit stores the definition of every signal and resolves signal
// values on demand. A resolved signal's definition is replaced by its value so
// each signal is computed at most once.
package circuit

import (
	"maps"
	"slices"

	"github.com/povarna/generative-ai-agents/circuit-eval/internal/wiring"
	"github.com/rs/zerolog"
)

// Circuit is not safe for concurrent use; Resolve mutates the store.
type Circuit struct {
	ops         map[wiring.Signal]wiring.Operation
	resolving   map[wiring.Signal]int
	stack       []wiring.Signal
	evaluations int
	logger      *zerolog.Logger
}

func NewCircuit(logger *zerolog.Logger) *Circuit {
	return &Circuit{
		ops:       make(map[wiring.Signal]wiring.Operation),
		resolving: make(map[wiring.Signal]int),
		logger:    logger,
	}
}

// FromWires builds a circuit from a parsed program. Later definitions of a
// signal replace earlier ones.
func FromWires(wires []wiring.Wire, logger *zerolog.Logger) *Circuit {
	c := NewCircuit(logger)
	for _, w := range wires {
		c.Set(w)
	}
	return c
}

// Define sets or replaces the operation driving signal. Only that signal's
// cached value is dropped; signals already resolved from it keep their values.
func (c *Circuit) Define(signal wiring.Signal, op wiring.Operation) {
	c.ops[signal] = op
}

func (c *Circuit) Set(w wiring.Wire) {
	c.Define(w.Target, w.Op)
}

// Lookup returns the current definition of signal without evaluating it.
func (c *Circuit) Lookup(signal wiring.Signal) (wiring.Operation, bool) {
	op, ok := c.ops[signal]
	return op, ok
}

func (c *Circuit) Len() int {
	return len(c.ops)
}

// Signals returns every defined signal in sorted order.
func (c *Circuit) Signals() []wiring.Signal {
	return slices.Sorted(maps.Keys(c.ops))
}

// Evaluations is the number of operator applications performed so far.
func (c *Circuit) Evaluations() int {
	return c.evaluations
}

// Clone copies the current definitions, resolved or not, into an independent circuit.
func (c *Circuit) Clone() *Circuit {
	clone := NewCircuit(c.logger)
	maps.Copy(clone.ops, c.ops)
	return clone
}

// Resolve returns the value of signal, computing and memoizing it and every
// signal it depends on.
func (c *Circuit) Resolve(signal wiring.Signal) (wiring.Value, error) {
	op, ok := c.ops[signal]
	if !ok {
		return 0, &UndefinedSignalError{Signal: signal}
	}
	if lit, ok := op.(wiring.Literal); ok {
		return lit.Value, nil
	}

	if start, busy := c.resolving[signal]; busy {
		path := slices.Clone(c.stack[start:])
		return 0, &CycleError{Path: append(path, signal)}
	}
	c.resolving[signal] = len(c.stack)
	c.stack = append(c.stack, signal)
	defer func() {
		delete(c.resolving, signal)
		c.stack = c.stack[:len(c.stack)-1]
	}()

	v, err := c.evaluate(op)
	if err != nil {
		return 0, err
	}

	c.evaluations++
	c.ops[signal] = wiring.Literal{Value: v}
	if c.logger != nil {
		c.logger.Debug().Str("signal", string(signal)).Uint16("value", uint16(v)).Msg("signal resolved")
	}
	return v, nil
}

func (c *Circuit) evaluate(op wiring.Operation) (wiring.Value, error) {
	switch o := op.(type) {
	case wiring.Literal:
		return o.Value, nil

	case wiring.PassThrough:
		return c.operand(o.Input)

	case wiring.Not:
		v, err := c.Resolve(o.Input)
		if err != nil {
			return 0, err
		}
		return ^v, nil

	case wiring.Binary:
		left, err := c.operand(o.Left)
		if err != nil {
			return 0, err
		}
		right, err := c.Resolve(o.Right)
		if err != nil {
			return 0, err
		}
		return o.Op.Apply(left, right), nil

	case wiring.Shift:
		v, err := c.Resolve(o.Input)
		if err != nil {
			return 0, err
		}
		return o.Op.Apply(v, o.Amount), nil
	}

	panic("circuit: unknown operation type")
}

func (c *Circuit) operand(o wiring.Operand) (wiring.Value, error) {
	if o.Literal {
		return o.Value, nil
	}
	return c.Resolve(o.Signal)
}
