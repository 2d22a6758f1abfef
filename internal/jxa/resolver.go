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
	"github.com/google/uuid"

	apperrors "dtbridge/internal/errors"
)

// RecordRef is the identifier bundle addressing one record. At least one
// of UUID, ID or Path must be set; ID and Path are scoped to Database
// (empty means the currently active database). Resolution precedence is
// UUID > ID+Database > Path+Database.
type RecordRef struct {
	UUID     string
	ID       *int64
	Path     string
	Database string
}

// IsZero reports whether no identifier at all was supplied.
func (r RecordRef) IsZero() bool {
	return r.UUID == "" && r.ID == nil && r.Path == ""
}

// Validate checks the bundle before any script is synthesized.
func (r RecordRef) Validate() error {
	if r.IsZero() {
		return apperrors.New(apperrors.CodeValidation,
			"no record identifier provided: supply uuid, id or path")
	}
	if r.UUID != "" {
		if _, err := uuid.Parse(r.UUID); err != nil {
			return apperrors.Newf(apperrors.CodeValidation, "field %q is not a valid UUID", "uuid")
		}
	}
	if err := CheckField("path", r.Path); err != nil {
		return err
	}
	return CheckField("database", r.Database)
}

// SpecExpr renders the bundle as the JXA spec object consumed by
// dtGetRecord, through the bracket-assignment formatter.
func (r RecordRef) SpecExpr() string {
	spec := map[string]interface{}{}
	if r.UUID != "" {
		spec["uuid"] = r.UUID
	}
	if r.ID != nil {
		spec["id"] = *r.ID
	}
	if r.Path != "" {
		spec["path"] = r.Path
	}
	if r.Database != "" {
		spec["database"] = r.Database
	}
	return Format(spec)
}
