package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/povarna/generative-ai-agents/circuit-eval/internal/solver"
	"github.com/povarna/generative-ai-agents/circuit-eval/internal/wiring"
)

func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("CIRCUIT_CONFIG_PATH", "")
	t.Setenv("CIRCUIT_TARGET", "")
	t.Setenv("CIRCUIT_OVERRIDE", "")
	t.Setenv("CIRCUIT_CACHE_DIR", "")
}

func TestRun(t *testing.T) {
	isolateEnv(t)

	var out bytes.Buffer
	if err := run(context.Background(), []string{"circuit", "testdata/override.txt"}, &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	want := "Part1: contents of a is 246\nPart2: contents of a is 492\n"
	if out.String() != want {
		t.Errorf("output:\n%s\nwant:\n%s", out.String(), want)
	}
}

func TestRun_TargetFromEnv(t *testing.T) {
	isolateEnv(t)
	t.Setenv("CIRCUIT_TARGET", "h")
	t.Setenv("CIRCUIT_OVERRIDE", "x")

	var out bytes.Buffer
	if err := run(context.Background(), []string{"circuit", "testdata/sample.txt"}, &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	want := "Part1: contents of h is 65412\nPart2: contents of h is 123\n"
	if out.String() != want {
		t.Errorf("output:\n%s\nwant:\n%s", out.String(), want)
	}
}

func TestRun_Answers(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		target string
		want   string
	}{
		{
			name:   "sample wire d",
			file:   "testdata/sample.txt",
			target: "d",
			want:   "Part1: contents of d is 72\nPart2: contents of d is 72\n",
		},
		{
			name: "undefined signal the target never reads",
			file: "testdata/stray_undefined.txt",
			want: "Part1: contents of a is 1\nPart2: contents of a is 1\n",
		},
		{
			name: "loop the target never reads",
			file: "testdata/stray_cycle.txt",
			want: "Part1: contents of a is 1\nPart2: contents of a is 1\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateEnv(t)
			if tt.target != "" {
				t.Setenv("CIRCUIT_TARGET", tt.target)
			}

			var out bytes.Buffer
			if err := run(context.Background(), []string{"circuit", tt.file}, &out); err != nil {
				t.Fatalf("run failed: %v", err)
			}
			if out.String() != tt.want {
				t.Errorf("output:\n%s\nwant:\n%s", out.String(), tt.want)
			}
		})
	}
}

func TestRun_Errors(t *testing.T) {
	isolateEnv(t)

	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		return path
	}

	tests := []struct {
		name string
		args []string
		want error
	}{
		{name: "no argument", args: []string{"circuit"}, want: errMissingInput},
		{name: "missing file", args: []string{"circuit", filepath.Join(dir, "nope.txt")}, want: os.ErrNotExist},
		{name: "malformed line", args: []string{"circuit", write("bad.txt", "1 -> a\nx XOR y -> b\n")}, want: wiring.ErrUnrecognizedBinaryOperator},
		{name: "undefined target", args: []string{"circuit", write("undef.txt", "1 -> b\n")}, want: solver.ErrChecksFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := run(context.Background(), tt.args, &out)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if out.Len() != 0 {
				t.Errorf("expected no answers on stdout, got %q", out.String())
			}
		})
	}
}
