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
	"fmt"
	"strings"

	"dtbridge/internal/jxa"
)

// ValidationRule checks tool arguments and returns an error if invalid.
type ValidationRule func(args map[string]interface{}) error

// ChainValidation runs rules in order until the first error.
func ChainValidation(rules ...ValidationRule) ValidationRule {
	return func(args map[string]interface{}) error {
		for _, rule := range rules {
			if rule == nil {
				continue
			}
			if err := rule(args); err != nil {
				return err
			}
		}
		return nil
	}
}

// RequireStringArg ensures a string argument is present and non-empty.
func RequireStringArg(key, message string) ValidationRule {
	return func(args map[string]interface{}) error {
		value, ok := args[key]
		if !ok || value == nil {
			return fmt.Errorf("%s", message)
		}
		str, ok := value.(string)
		if !ok || strings.TrimSpace(str) == "" {
			return fmt.Errorf("%s", message)
		}
		return nil
	}
}

// RequireStringSliceArg ensures an argument is a non-empty array of
// non-empty strings.
func RequireStringSliceArg(key, message string) ValidationRule {
	return func(args map[string]interface{}) error {
		value, ok := args[key]
		if !ok || value == nil {
			return fmt.Errorf("%s", message)
		}
		items, ok := value.([]interface{})
		if !ok || len(items) == 0 {
			return fmt.Errorf("%s", message)
		}
		for _, item := range items {
			str, ok := item.(string)
			if !ok || strings.TrimSpace(str) == "" {
				return fmt.Errorf("%s", message)
			}
		}
		return nil
	}
}

// OneOfArg restricts an optional string argument to an enumerated set.
func OneOfArg(key string, allowed ...string) ValidationRule {
	return func(args map[string]interface{}) error {
		value, ok := args[key]
		if !ok || value == nil {
			return nil
		}
		str, isString := value.(string)
		if isString {
			for _, candidate := range allowed {
				if str == candidate {
					return nil
				}
			}
		}
		return fmt.Errorf("field %q must be one of: %s", key, strings.Join(allowed, ", "))
	}
}

// SafeStrings walks every string in the argument bag (recursing through
// arrays and nested objects) and rejects any value the sanitizer would
// refuse to interpolate. One rule covers every tool.
func SafeStrings() ValidationRule {
	return func(args map[string]interface{}) error {
		for key, value := range args {
			if err := checkSafe(key, value); err != nil {
				return err
			}
		}
		return nil
	}
}

func checkSafe(field string, value interface{}) error {
	switch v := value.(type) {
	case string:
		return jxa.CheckField(field, v)
	case []interface{}:
		for i, item := range v {
			if err := checkSafe(fmt.Sprintf("%s[%d]", field, i), item); err != nil {
				return err
			}
		}
	case map[string]interface{}:
		for key, item := range v {
			if err := checkSafe(field+"."+key, item); err != nil {
				return err
			}
		}
	}
	return nil
}
