package main

import (
	"errors"
	"io"
	"testing"

	"github.com/chzyer/readline"
)

func TestClassifyReadlineError(t *testing.T) {
	cases := []struct {
		name     string
		line     string
		err      error
		expected readlineAction
	}{
		{"no-error", "search {}", nil, readlineUnhandled},
		{"interrupt", "", readline.ErrInterrupt, readlineContinue},
		{"eof-empty", "", io.EOF, readlineExit},
		{"eof-whitespace", "   ", io.EOF, readlineExit},
		{"eof-line", "hello", io.EOF, readlineContinue},
		{"other", "", errors.New("boom"), readlineExit},
	}

	for _, tc := range cases {
		if got := classifyReadlineError(tc.line, tc.err); got != tc.expected {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.expected, got)
		}
	}
}
