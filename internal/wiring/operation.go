package wiring

import "fmt"

// Operation is the expression driving a signal. The set of variants is closed:
// Literal, PassThrough, Not, Binary and Shift.
type Operation interface {
	fmt.Stringer
	operation()
}

type BinaryOperator string

const (
	And BinaryOperator = "AND"
	Or  BinaryOperator = "OR"
)

type ShiftOperator string

const (
	LeftShift  ShiftOperator = "LSHIFT"
	RightShift ShiftOperator = "RSHIFT"
)

// Literal drives a signal with a constant. A resolved signal is stored as a Literal.
type Literal struct {
	Value Value
}

// PassThrough copies its input, which may itself be a literal.
type PassThrough struct {
	Input Operand
}

// Not is the bitwise complement of a signal.
type Not struct {
	Input Signal
}

// Binary combines two inputs with AND or OR. Only the left input may be a literal.
type Binary struct {
	Op    BinaryOperator
	Left  Operand
	Right Signal
}

// Shift moves the bits of a signal by a fixed amount.
type Shift struct {
	Op     ShiftOperator
	Input  Signal
	Amount Value
}

func (Literal) operation()     {}
func (PassThrough) operation() {}
func (Not) operation()         {}
func (Binary) operation()      {}
func (Shift) operation()       {}

func (l Literal) String() string {
	return LiteralOperand(l.Value).String()
}

func (p PassThrough) String() string {
	return p.Input.String()
}

func (n Not) String() string {
	return fmt.Sprintf("NOT %s", n.Input)
}

func (b Binary) String() string {
	return fmt.Sprintf("%s %s %s", b.Left, b.Op, b.Right)
}

func (s Shift) String() string {
	return fmt.Sprintf("%s %s %d", s.Input, s.Op, s.Amount)
}

// Apply evaluates a binary operator.
func (op BinaryOperator) Apply(left, right Value) Value {
	if op == Or {
		return left | right
	}
	return left & right
}

// Apply evaluates a shift. Amounts of 16 or more shift every bit out.
func (op ShiftOperator) Apply(v, amount Value) Value {
	if op == RightShift {
		return v >> amount
	}
	return v << amount
}

// Inputs returns the signals an operation reads, in operand order.
func Inputs(op Operation) []Signal {
	switch o := op.(type) {
	case PassThrough:
		if !o.Input.Literal {
			return []Signal{o.Input.Signal}
		}
	case Not:
		return []Signal{o.Input}
	case Binary:
		if o.Left.Literal {
			return []Signal{o.Right}
		}
		return []Signal{o.Left.Signal, o.Right}
	case Shift:
		return []Signal{o.Input}
	}
	return nil
}

// Wire pairs an operation with the signal it drives.
type Wire struct {
	Target Signal
	Op     Operation
}

func (w Wire) String() string {
	return fmt.Sprintf("%s -> %s", w.Op, w.Target)
}
