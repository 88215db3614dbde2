package ui

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

func TestLineReadsAndTrims(t *testing.T) {
	var out bytes.Buffer
	console := newConsoleFrom(strings.NewReader("  00123  \nnext\n"), &out)

	line, err := console.Line(context.Background(), "Enter the case number: ")
	if err != nil {
		t.Fatalf("Line() error = %v", err)
	}
	if line != "00123" {
		t.Errorf("Line() = %q, want %q", line, "00123")
	}

	if !strings.Contains(out.String(), "Enter the case number: ") {
		t.Errorf("Prompt not written to output: %q", out.String())
	}

	line, err = console.Line(context.Background(), "> ")
	if err != nil {
		t.Fatalf("Second Line() error = %v", err)
	}
	if line != "next" {
		t.Errorf("Second Line() = %q, want %q", line, "next")
	}
}

func TestLineReportsEOF(t *testing.T) {
	console := newConsoleFrom(strings.NewReader(""), io.Discard)

	_, err := console.Line(context.Background(), "> ")
	if !errors.Is(err, io.EOF) {
		t.Errorf("Line() error = %v, want io.EOF", err)
	}
}

func TestLineHonorsCancellation(t *testing.T) {
	// A reader that never produces input keeps the read blocked, so only
	// cancellation can release the call.
	blocked, _ := io.Pipe()
	console := newConsoleFrom(blocked, io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	done := make(chan error, 1)
	go func() {
		_, err := console.Line(ctx, "> ")
		done <- err
	}()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Line() error = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Line() did not return after cancellation")
	}
}

func TestPasswordFallsBackToLine(t *testing.T) {
	// Without a terminal on stdin the password prompt degrades to a plain
	// line read.
	console := newConsoleFrom(strings.NewReader("hunter2\n"), io.Discard)

	password, err := console.Password(context.Background(), "Enter your password: ")
	if err != nil {
		t.Fatalf("Password() error = %v", err)
	}
	if password != "hunter2" {
		t.Errorf("Password() = %q, want %q", password, "hunter2")
	}
}
