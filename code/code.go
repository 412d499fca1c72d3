/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package code

import (
	"bytes"
	"encoding"
	"errors"
	"regexp"
	"strings"
)

// Code is the canonical representation of a squid error code.
//
// Structured errors accept any non-empty string as their code; this type is
// what registries, mappers and configuration use when they need a value that
// is known to be in canonical form.
type Code string

// MinLength and MaxLength define the allowed length range for a canonical
// code, including namespace separators.
const (
	// MinLength is the minimum length for a valid code. Two characters keep
	// short errno-style names like "EIO" and classes like "OK" representable.
	MinLength = 2

	// MaxLength is the maximum length for a valid code.
	MaxLength = 128
)

const (
	// codeFmt is the canonical pattern used to validate codes.
	//
	// A code is one to four dot-separated segments, each segment:
	//
	//	[A-Z]        - starts with an uppercase ASCII letter;
	//	[A-Z0-9_]*   - continues with uppercase letters, digits or underscore.
	//
	// Examples that match:
	//
	//	"NOT_FOUND"
	//	"ENOENT"
	//	"BILLING.INVOICE.NOT_FOUND"
	//
	// Examples that do not:
	//
	//	"not_found"      (lowercase, fixed by Normalize)
	//	"BILLING..X"     (empty segment)
	//	"1NOT_VALID"     (digit first)
	codeFmt = `^[A-Z][A-Z0-9_]*(\.[A-Z][A-Z0-9_]*){0,3}$`
)

var codeRe = regexp.MustCompile(codeFmt)

var (
	// ErrCodeInvalid is returned when a value does not match the code format.
	ErrCodeInvalid = errors.New("squid: invalid code")
	// ErrCodeInvalidLength is returned when a code is too short or too long.
	ErrCodeInvalidLength = errors.New("squid: invalid code length")
)

var (
	_ encoding.TextMarshaler   = (*Code)(nil)
	_ encoding.TextUnmarshaler = (*Code)(nil)
)

// Empty is the zero-value code. Structured errors never carry it: they fall
// back to NotSet instead.
var Empty Code = ""

// Parse normalizes and validates s. On success it returns a canonical Code.
func Parse(s string) (Code, error) {
	s = Normalize(s)
	if err := validate(s); err != nil {
		return Empty, err
	}
	return Code(s), nil
}

// MustParse is the panic-on-error variant of Parse, meant for package-level
// declarations.
func MustParse(s string) Code {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Normalize brings an arbitrary string closer to the canonical code form.
//
// Only obvious, non-lossy transformations are applied:
//
//   - surrounding spaces are trimmed;
//   - the value is upper-cased;
//   - '-' becomes '_';
//   - '/' becomes '.' (callers sometimes build namespaces from paths).
//
// The result is not guaranteed to be valid; call Parse or Validate.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = strings.ToUpper(s)
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", ".")
	return s
}

// Validate checks whether c is in canonical form. The empty code is invalid.
func Validate(c Code) error {
	return validate(string(c))
}

// Segments splits c into its dot-separated namespace segments.
func (c Code) Segments() []string {
	if c == Empty {
		return nil
	}
	return strings.Split(string(c), ".")
}

// Leaf returns the last segment of c, e.g. "NOT_FOUND" for
// "BILLING.INVOICE.NOT_FOUND". A code without namespace is its own leaf.
func (c Code) Leaf() Code {
	s := string(c)
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		return Code(s[i+1:])
	}
	return c
}

// String returns the canonical string representation of the code.
func (c Code) String() string {
	return string(c)
}

// MarshalText implements encoding.TextMarshaler.
func (c Code) MarshalText() ([]byte, error) {
	if err := Validate(c); err != nil {
		return nil, err
	}
	return []byte(c), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
//
// It normalizes and validates the provided text before assigning.
func (c *Code) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(bytes.TrimSpace(text)))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func validate(s string) error {
	if len(s) < MinLength || len(s) > MaxLength {
		return ErrCodeInvalidLength
	}
	if !codeRe.MatchString(s) {
		return ErrCodeInvalid
	}
	return nil
}
