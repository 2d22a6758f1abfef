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

// Package jxa synthesizes JavaScript for Automation source from typed
// input and runs it through osascript. Every caller-supplied value enters
// generated source exclusively through Quote or Format; anything else is
// a defect.
package jxa

import (
	"fmt"
	"strings"

	apperrors "dtbridge/internal/errors"
)

// IsSafe reports whether text may be interpolated into a generated script.
// Newlines, carriage returns and tabs are allowed (content fields carry
// them legitimately); all other C0 controls and DEL are rejected because
// the osascript reader treats them as protocol corruption.
func IsSafe(text string) bool {
	for _, r := range text {
		if r == '\n' || r == '\r' || r == '\t' {
			continue
		}
		if r < 0x20 || r == 0x7f {
			return false
		}
	}
	return true
}

// CheckField validates a single named input string before synthesis.
// Failures are validation errors: they never reach osascript.
func CheckField(field, value string) error {
	if IsSafe(value) {
		return nil
	}
	return apperrors.Newf(apperrors.CodeValidation,
		"field %q contains control characters that cannot be embedded in a script", field)
}

// Escape rewrites text so it is safe inside a double-quoted JXA string
// literal: backslash and quote are escaped, newline-class characters use
// their short escapes, and any remaining control or JS line separator
// (U+2028, U+2029 terminate string literals in older JavaScriptCore) is
// emitted as a \uXXXX sequence.
func Escape(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case ' ', ' ':
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\u%04x`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Quote returns text as a complete double-quoted JXA string literal.
func Quote(text string) string {
	return `"` + Escape(text) + `"`
}
