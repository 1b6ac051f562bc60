package circuit

import (
	"errors"
	"testing"

	"github.com/povarna/generative-ai-agents/circuit-eval/internal/wiring"
	"github.com/rs/zerolog"
)

var sampleProgram = []string{
	"123 -> x",
	"456 -> y",
	"x AND y -> d",
	"x OR y -> e",
	"x LSHIFT 2 -> f",
	"y RSHIFT 2 -> g",
	"NOT x -> h",
	"NOT y -> i",
}

func newTestCircuit(t *testing.T, lines []string) *Circuit {
	t.Helper()
	logger := zerolog.Nop()
	wires, err := wiring.ParseProgram(lines)
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	return FromWires(wires, &logger)
}

func TestResolveSample(t *testing.T) {
	want := map[wiring.Signal]wiring.Value{
		"d": 72,
		"e": 507,
		"f": 492,
		"g": 114,
		"h": 65412,
		"i": 65079,
		"x": 123,
		"y": 456,
	}

	c := newTestCircuit(t, sampleProgram)
	for signal, value := range want {
		t.Run(string(signal), func(t *testing.T) {
			got, err := c.Resolve(signal)
			if err != nil {
				t.Fatalf("Resolve(%q): %v", signal, err)
			}
			if got != value {
				t.Errorf("Resolve(%q) = %d, want %d", signal, got, value)
			}
		})
	}
}

func TestResolveOperators(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  wiring.Value
	}{
		{
			name:  "and",
			lines: []string{"12 -> p", "10 -> q", "p AND q -> r"},
			want:  0b1000,
		},
		{
			name:  "or",
			lines: []string{"12 -> p", "10 -> q", "p OR q -> r"},
			want:  0b1110,
		},
		{
			name:  "literal left operand",
			lines: []string{"7 -> q", "1 AND q -> r"},
			want:  1,
		},
		{
			name:  "lshift",
			lines: []string{"5 -> p", "p LSHIFT 2 -> r"},
			want:  0b10100,
		},
		{
			name:  "rshift",
			lines: []string{"20 -> p", "p RSHIFT 2 -> r"},
			want:  0b101,
		},
		{
			name:  "not",
			lines: []string{"5 -> p", "NOT p -> r"},
			want:  0b1111_1111_1111_1010,
		},
		{
			name:  "not zero",
			lines: []string{"0 -> p", "NOT p -> r"},
			want:  0xFFFF,
		},
		{
			name:  "lshift overflow truncates",
			lines: []string{"65535 -> p", "p LSHIFT 1 -> r"},
			want:  0xFFFE,
		},
		{
			name:  "shift by sixteen",
			lines: []string{"65535 -> p", "p LSHIFT 16 -> r"},
			want:  0,
		},
		{
			name:  "lshift by zero",
			lines: []string{"40961 -> p", "p LSHIFT 0 -> r"},
			want:  40961,
		},
		{
			name:  "rshift by zero",
			lines: []string{"40961 -> p", "p RSHIFT 0 -> r"},
			want:  40961,
		},
		{
			name:  "pass-through chain",
			lines: []string{"r1 -> r", "r2 -> r1", "42 -> r2"},
			want:  42,
		},
		{
			name:  "definitions in any order",
			lines: []string{"p AND q -> r", "q -> p", "3 -> q"},
			want:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCircuit(t, tt.lines)
			got, err := c.Resolve("r")
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if got != tt.want {
				t.Errorf("Resolve = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestResolveDoubleNotIsIdentity(t *testing.T) {
	logger := zerolog.Nop()
	base := NewCircuit(&logger)
	base.Define("q", wiring.Not{Input: "p"})
	base.Define("r", wiring.Not{Input: "q"})

	for v := range 1 << 16 {
		c := base.Clone()
		c.Define("p", wiring.Literal{Value: wiring.Value(v)})

		got, err := c.Resolve("r")
		if err != nil {
			t.Fatalf("Resolve(%d): %v", v, err)
		}
		if got != wiring.Value(v) {
			t.Fatalf("NOT NOT %d = %d", v, got)
		}
	}
}

func TestResolveMemoizes(t *testing.T) {
	c := newTestCircuit(t, sampleProgram)

	first, err := c.Resolve("d")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	evaluations := c.Evaluations()
	if evaluations != 1 {
		t.Errorf("expected 1 evaluation for d, got %d", evaluations)
	}

	op, _ := c.Lookup("d")
	if op != (wiring.Literal{Value: 72}) {
		t.Errorf("d should be stored as its value, got %v", op)
	}

	second, err := c.Resolve("d")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if second != first {
		t.Errorf("second Resolve = %d, want %d", second, first)
	}
	if c.Evaluations() != evaluations {
		t.Errorf("second Resolve evaluated again: %d evaluations", c.Evaluations())
	}
}

func TestResolveSharedDependencyOnce(t *testing.T) {
	// Each level reads the level below twice; without memoization this is exponential.
	lines := []string{"1 -> s0"}
	prev := "s0"
	for i := 1; i <= 40; i++ {
		next := "s" + string(rune('a'+i%26)) + string(rune('a'+i/26))
		lines = append(lines, prev+" OR "+prev+" -> "+next)
		prev = next
	}
	lines = append(lines, prev+" -> top")

	c := newTestCircuit(t, lines)
	got, err := c.Resolve("top")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != 1 {
		t.Errorf("Resolve = %d, want 1", got)
	}
	if c.Evaluations() != 41 {
		t.Errorf("Evaluations = %d, want 41", c.Evaluations())
	}
}

func TestResolveUndefined(t *testing.T) {
	tests := []struct {
		name   string
		lines  []string
		signal wiring.Signal
		want   wiring.Signal
	}{
		{name: "direct", lines: sampleProgram, signal: "zz", want: "zz"},
		{name: "deep", lines: []string{"b -> a", "c AND a2 -> b", "1 -> a2", "NOT missing -> c"}, signal: "a", want: "missing"},
		{name: "empty circuit", lines: nil, signal: "a", want: "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCircuit(t, tt.lines)
			_, err := c.Resolve(tt.signal)
			if !errors.Is(err, ErrUndefinedSignal) {
				t.Fatalf("expected ErrUndefinedSignal, got %v", err)
			}
			var undefined *UndefinedSignalError
			if !errors.As(err, &undefined) {
				t.Fatalf("expected *UndefinedSignalError, got %T", err)
			}
			if undefined.Signal != tt.want {
				t.Errorf("Signal = %q, want %q", undefined.Signal, tt.want)
			}
		})
	}
}

func TestResolveCycle(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []wiring.Signal
	}{
		{name: "self", lines: []string{"a -> a"}, want: []wiring.Signal{"a", "a"}},
		{name: "two signals", lines: []string{"b -> a", "NOT a -> b"}, want: []wiring.Signal{"a", "b", "a"}},
		{name: "behind a prefix", lines: []string{"c -> a", "d AND c -> c", "1 -> b", "c RSHIFT 1 -> d"}, want: []wiring.Signal{"c", "d", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCircuit(t, tt.lines)
			_, err := c.Resolve("a")
			var cycle *CycleError
			if !errors.As(err, &cycle) {
				t.Fatalf("expected *CycleError, got %v", err)
			}
			if !errors.Is(err, ErrCyclicDefinition) {
				t.Errorf("expected ErrCyclicDefinition in chain")
			}
			if len(cycle.Path) != len(tt.want) {
				t.Fatalf("Path = %v, want %v", cycle.Path, tt.want)
			}
			for i := range tt.want {
				if cycle.Path[i] != tt.want[i] {
					t.Errorf("Path = %v, want %v", cycle.Path, tt.want)
					break
				}
			}

			// The store stays usable after a failed resolution.
			c.Define("a", wiring.Literal{Value: 9})
			if v, err := c.Resolve("a"); err != nil || v != 9 {
				t.Errorf("Resolve after redefinition = %d, %v", v, err)
			}
		})
	}
}

func TestDefineOverridesCachedValue(t *testing.T) {
	c := newTestCircuit(t, sampleProgram)

	if _, err := c.Resolve("x"); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	c.Define("x", wiring.Literal{Value: 1})

	got, err := c.Resolve("x")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != 1 {
		t.Errorf("Resolve(x) = %d, want 1", got)
	}

	// d was never resolved, so it picks up the new x.
	d, err := c.Resolve("d")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if d != 1&456 {
		t.Errorf("Resolve(d) = %d, want %d", d, 1&456)
	}
}

func TestDefineKeepsDownstreamValues(t *testing.T) {
	c := newTestCircuit(t, sampleProgram)

	if _, err := c.Resolve("d"); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	c.Define("x", wiring.Literal{Value: 0})

	d, err := c.Resolve("d")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if d != 72 {
		t.Errorf("Resolve(d) = %d, want the memoized 72", d)
	}
}

func TestClone(t *testing.T) {
	base := newTestCircuit(t, sampleProgram)
	clone := base.Clone()

	clone.Define("x", wiring.Literal{Value: 0})
	got, err := clone.Resolve("d")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != 0 {
		t.Errorf("clone Resolve(d) = %d, want 0", got)
	}

	got, err = base.Resolve("d")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != 72 {
		t.Errorf("base Resolve(d) = %d, want 72", got)
	}
	if base.Evaluations() != 1 {
		t.Errorf("base Evaluations = %d, want 1", base.Evaluations())
	}
}

func TestSignals(t *testing.T) {
	c := newTestCircuit(t, sampleProgram)

	if c.Len() != 8 {
		t.Errorf("Len = %d, want 8", c.Len())
	}
	got := c.Signals()
	want := []wiring.Signal{"d", "e", "f", "g", "h", "i", "x", "y"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Signals = %v, want %v", got, want)
		}
	}
}
