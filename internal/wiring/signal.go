// Package wiring holds the instruction grammar of a logic circuit: signal names,
// 16-bit values, the operations that drive a signal and the parser that turns
// instruction text into wires.
package wiring

import "strconv"

// Signal is the name of a wire in the circuit.
type Signal string

// Value is the 16-bit unsigned quantity carried by every signal.
type Value uint16

// Operand is either a literal value or a reference to another signal.
type Operand struct {
	Literal bool
	Value   Value
	Signal  Signal
}

func LiteralOperand(v Value) Operand {
	return Operand{Literal: true, Value: v}
}

func SignalOperand(s Signal) Operand {
	return Operand{Signal: s}
}

func (o Operand) String() string {
	if o.Literal {
		return strconv.FormatUint(uint64(o.Value), 10)
	}
	return string(o.Signal)
}
