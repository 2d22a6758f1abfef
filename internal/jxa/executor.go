// Copyright (C) 2025 Dyne.org foundation
// designed, written and maintained by Denis Roio <jaromil@dyne.org>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package jxa

import (
	"bytes"
	"context"
	"encoding/json"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog"

	apperrors "dtbridge/internal/errors"
)

// DefaultInterpreter is the macOS automation interpreter.
const DefaultInterpreter = "osascript"

// defaultInterpreterArgs select the JavaScript dialect and read the
// program from stdin.
var defaultInterpreterArgs = []string{"-l", "JavaScript", "-"}

// Executor runs synthesized scripts through a fresh interpreter process
// per call. Nothing is pooled or reused; a handle mentioned in one script
// is dead once that process exits.
type Executor struct {
	// Command and Args override the interpreter invocation. Tests point
	// them at a shell; production leaves them empty for osascript.
	Command string
	Args    []string

	// Timeout bounds one interpreter run. Zero means no deadline beyond
	// the caller's context.
	Timeout time.Duration

	Logger zerolog.Logger
}

// Run executes the script and returns its single JSON document. Any
// failure here — spawn, crash, timeout, non-JSON output — is a coded
// execution error, which is a different animal from a well-formed
// {success:false} payload: that one comes back as a normal result.
func (e *Executor) Run(ctx context.Context, script string) (json.RawMessage, error) {
	command := e.Command
	if command == "" {
		command = DefaultInterpreter
	}
	args := e.Args
	if args == nil {
		args = defaultInterpreterArgs
	}

	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Stdin = strings.NewReader(script)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	e.Logger.Debug().
		Int("script_bytes", len(script)).
		Dur("duration_ms", time.Since(start)).
		Msg("Interpreter run finished")

	if ctx.Err() == context.DeadlineExceeded {
		return nil, apperrors.New(apperrors.CodeExecution, "script timed out")
	}
	if ctx.Err() == context.Canceled {
		return nil, apperrors.New(apperrors.CodeExecution, "script canceled")
	}
	if err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = err.Error()
		}
		return nil, apperrors.Wrap(apperrors.CodeExecution, "interpreter failed: "+detail, err)
	}

	payload := bytes.TrimSpace(stdout.Bytes())
	if len(payload) == 0 {
		return nil, apperrors.New(apperrors.CodeExecution, "interpreter produced no output")
	}
	if !json.Valid(payload) {
		return nil, apperrors.Newf(apperrors.CodeExecution,
			"interpreter output is not valid JSON: %s", excerpt(payload, 120))
	}
	return json.RawMessage(payload), nil
}

// RunDecoded executes the script and unmarshals the payload into out.
func (e *Executor) RunDecoded(ctx context.Context, script string, out interface{}) error {
	payload, err := e.Run(ctx, script)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return apperrors.Wrap(apperrors.CodeExecution, "unexpected result shape", err)
	}
	return nil
}

func excerpt(b []byte, max int) string {
	s := string(b)
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
