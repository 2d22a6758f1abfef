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

package tools

import (
	"errors"
	"fmt"

	apperrors "dtbridge/internal/errors"
)

// Common tool errors
var (
	// ErrToolNotFound indicates the requested tool doesn't exist in the
	// registry ("method not found" at the protocol layer).
	ErrToolNotFound = errors.New("tool not found")

	// ErrInvalidArguments indicates tool arguments are invalid or malformed.
	ErrInvalidArguments = errors.New("invalid tool arguments")

	// ErrDuplicateTool indicates two registrations under the same name.
	ErrDuplicateTool = errors.New("tool already registered")
)

// NewValidationError wraps an argument failure with the shared error code.
func NewValidationError(toolName string, err error) *apperrors.Error {
	return apperrors.Wrap(apperrors.CodeValidation,
		fmt.Sprintf("invalid arguments for tool %s", toolName), err)
}

// NewExecutionError wraps a tool execution failure with the shared error
// code. Errors already coded by the synthesizer or executor pass through
// so the original taxonomy survives.
func NewExecutionError(toolName string, err error) error {
	if apperrors.CodeOf(err) != "" {
		return err
	}
	return apperrors.Wrap(apperrors.CodeExecution, fmt.Sprintf("tool %s failed", toolName), err)
}
