package jxa

import (
	"context"
	"strings"
	"testing"
	"time"

	apperrors "dtbridge/internal/errors"
)

// fakeInterpreter builds an Executor that runs a shell snippet instead of
// osascript. The script still arrives on stdin, as it would in production.
func fakeInterpreter(snippet string) *Executor {
	return &Executor{
		Command: "sh",
		Args:    []string{"-c", snippet},
	}
}

func TestRunReturnsJSONPayload(t *testing.T) {
	e := fakeInterpreter(`cat >/dev/null; printf '{"success": true, "uuid": "X"}\n'`)
	payload, err := e.Run(context.Background(), "ignored")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(payload), `"uuid": "X"`) {
		t.Errorf("payload lost: %s", payload)
	}
}

func TestRunSuccessFalseIsNotAnExecutorError(t *testing.T) {
	e := fakeInterpreter(`cat >/dev/null; printf '{"success": false, "error": "Database not found: NoSuchDB"}'`)
	payload, err := e.Run(context.Background(), "ignored")
	if err != nil {
		t.Fatalf("success:false must come back as a payload, got error: %v", err)
	}
	if !strings.Contains(string(payload), "Database not found") {
		t.Errorf("payload lost: %s", payload)
	}
}

func TestRunNonJSONOutputIsFatal(t *testing.T) {
	e := fakeInterpreter(`cat >/dev/null; echo "execution error: something broke"`)
	_, err := e.Run(context.Background(), "ignored")
	if err == nil {
		t.Fatal("expected error for non-JSON output")
	}
	if !apperrors.HasCode(err, apperrors.CodeExecution) {
		t.Errorf("expected execution code, got %q", apperrors.CodeOf(err))
	}
}

func TestRunEmptyOutputIsFatal(t *testing.T) {
	e := fakeInterpreter(`cat >/dev/null`)
	_, err := e.Run(context.Background(), "ignored")
	if err == nil {
		t.Fatal("expected error for empty output")
	}
	if !apperrors.HasCode(err, apperrors.CodeExecution) {
		t.Errorf("expected execution code, got %q", apperrors.CodeOf(err))
	}
}

func TestRunNonZeroExitIsFatal(t *testing.T) {
	e := fakeInterpreter(`cat >/dev/null; echo "syntax error near line 3" >&2; exit 1`)
	_, err := e.Run(context.Background(), "ignored")
	if err == nil {
		t.Fatal("expected error for interpreter failure")
	}
	if !strings.Contains(err.Error(), "syntax error") {
		t.Errorf("stderr detail should surface in the error: %v", err)
	}
}

func TestRunSpawnFailureIsFatal(t *testing.T) {
	e := &Executor{Command: "/nonexistent/interpreter", Args: []string{}}
	_, err := e.Run(context.Background(), "ignored")
	if err == nil {
		t.Fatal("expected spawn error")
	}
	if !apperrors.HasCode(err, apperrors.CodeExecution) {
		t.Errorf("expected execution code, got %q", apperrors.CodeOf(err))
	}
}

func TestRunTimeout(t *testing.T) {
	e := fakeInterpreter(`cat >/dev/null; sleep 5`)
	e.Timeout = 50 * time.Millisecond
	_, err := e.Run(context.Background(), "ignored")
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !strings.Contains(err.Error(), "timed out") {
		t.Errorf("expected timeout classification: %v", err)
	}
}

func TestRunScriptArrivesOnStdin(t *testing.T) {
	// Echo the script back wrapped in JSON so we can see it crossed.
	e := fakeInterpreter(`printf '{"success": true, "script": "'; tr -d '\n"\\' ; printf '"}'`)
	var out struct {
		Success bool   `json:"success"`
		Script  string `json:"script"`
	}
	if err := e.RunDecoded(context.Background(), "var marker = 1;", &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.Script, "var marker = 1;") {
		t.Errorf("script did not reach the interpreter stdin: %q", out.Script)
	}
}

func TestRunDecodedShapeMismatchIsFatal(t *testing.T) {
	e := fakeInterpreter(`cat >/dev/null; printf '["an","array"]'`)
	var out struct {
		Success bool `json:"success"`
	}
	err := e.RunDecoded(context.Background(), "ignored", &out)
	if err == nil {
		t.Fatal("expected shape mismatch error")
	}
	if !apperrors.HasCode(err, apperrors.CodeExecution) {
		t.Errorf("expected execution code, got %q", apperrors.CodeOf(err))
	}
}
