package wiring

import (
	"strconv"
	"strings"
)

const arrow = "->"

// Parse reads one instruction of the form "<expression> -> <target>".
//
// The number of whitespace separated tokens on the left decides the operation:
// one token is a literal or a pass-through, two tokens must be "NOT x", and
// three tokens are a shift when the last token is a number and a binary gate
// otherwise.
func Parse(line string) (Wire, error) {
	parts := strings.Split(line, arrow)
	if len(parts) != 2 {
		return Wire{}, &ParseError{Kind: ErrMalformedInstruction, Input: line}
	}

	target, err := parseTarget(line, parts[1])
	if err != nil {
		return Wire{}, err
	}

	op, err := parseExpression(line, strings.Fields(parts[0]))
	if err != nil {
		return Wire{}, err
	}

	return Wire{Target: target, Op: op}, nil
}

// ParseProgram parses a sequence of instructions, skipping blank lines. The
// first failure is returned as a *LineError.
func ParseProgram(lines []string) ([]Wire, error) {
	wires := make([]Wire, 0, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		w, err := Parse(line)
		if err != nil {
			return nil, &LineError{Line: i + 1, Err: err}
		}
		wires = append(wires, w)
	}
	return wires, nil
}

func parseTarget(line, raw string) (Signal, error) {
	fields := strings.Fields(raw)
	switch len(fields) {
	case 0:
		return "", &ParseError{Kind: ErrEmptyTarget, Input: line}
	case 1:
		return Signal(fields[0]), nil
	default:
		return "", &ParseError{Kind: ErrMalformedInstruction, Input: line, Token: strings.TrimSpace(raw)}
	}
}

func parseExpression(line string, tokens []string) (Operation, error) {
	switch len(tokens) {
	case 1:
		in, err := parseOperand(line, tokens[0])
		if err != nil {
			return nil, err
		}
		if in.Literal {
			return Literal{Value: in.Value}, nil
		}
		return PassThrough{Input: in}, nil

	case 2:
		if tokens[0] == "NOT" {
			return Not{Input: Signal(tokens[1])}, nil
		}
		if isGateKeyword(tokens[1]) {
			// "x AND" is a gate missing its right operand.
			return nil, &ParseError{Kind: ErrInvalidArity, Input: line, Token: tokens[1]}
		}
		return nil, &ParseError{Kind: ErrUnrecognizedUnaryOperator, Input: line, Token: tokens[0]}

	case 3:
		if isNumeric(tokens[2]) {
			return parseShift(line, tokens)
		}
		return parseBinary(line, tokens)

	default:
		return nil, &ParseError{Kind: ErrInvalidArity, Input: line}
	}
}

func parseShift(line string, tokens []string) (Operation, error) {
	amount, err := parseValue(line, tokens[2])
	if err != nil {
		return nil, err
	}

	op := ShiftOperator(tokens[1])
	if op != LeftShift && op != RightShift {
		return nil, &ParseError{Kind: ErrUnrecognizedShiftOperator, Input: line, Token: tokens[1]}
	}

	return Shift{Op: op, Input: Signal(tokens[0]), Amount: amount}, nil
}

func parseBinary(line string, tokens []string) (Operation, error) {
	left, err := parseOperand(line, tokens[0])
	if err != nil {
		return nil, err
	}

	op := BinaryOperator(tokens[1])
	if op != And && op != Or {
		return nil, &ParseError{Kind: ErrUnrecognizedBinaryOperator, Input: line, Token: tokens[1]}
	}

	return Binary{Op: op, Left: left, Right: Signal(tokens[2])}, nil
}

func parseOperand(line, token string) (Operand, error) {
	if !isNumeric(token) {
		return SignalOperand(Signal(token)), nil
	}
	v, err := parseValue(line, token)
	if err != nil {
		return Operand{}, err
	}
	return LiteralOperand(v), nil
}

func parseValue(line, token string) (Value, error) {
	n, err := strconv.ParseUint(token, 10, 16)
	if err != nil {
		return 0, &ParseError{Kind: ErrInvalidNumber, Input: line, Token: token}
	}
	return Value(n), nil
}

func isNumeric(token string) bool {
	if token == "" {
		return false
	}
	for _, r := range token {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isGateKeyword(token string) bool {
	switch token {
	case string(And), string(Or), string(LeftShift), string(RightShift):
		return true
	}
	return false
}
