// Package is provides common string format rules for attaching to
// generated schemas through [modelrest.FieldSchema] Extra:
//
//	schema["email"].Extra = append(schema["email"].Extra, is.Email)
//
// Violations from these rules report kind "format".
package is

import (
	"github.com/asaskevich/govalidator"

	"github.com/fadine/modelrest"
)

var (
	// Email checks if a string is a valid email address.
	Email = modelrest.NewStringRule(govalidator.IsEmail, "must be a valid email address")
	// URL checks if a string is a valid URL.
	URL = modelrest.NewStringRule(govalidator.IsURL, "must be a valid URL")
	// UUID checks if a string is a valid UUID of any version.
	UUID = modelrest.NewStringRule(govalidator.IsUUID, "must be a valid UUID")
	// UUIDv4 checks if a string is a valid version 4 UUID.
	UUIDv4 = modelrest.NewStringRule(govalidator.IsUUIDv4, "must be a valid UUID v4")
	// Alphanumeric checks if a string contains only letters and numbers.
	Alphanumeric = modelrest.NewStringRule(govalidator.IsAlphanumeric, "must contain only letters and numbers")
	// Numeric checks if a string contains only digits.
	Numeric = modelrest.NewStringRule(govalidator.IsNumeric, "must contain only digits")
	// LowerCase checks if a string is all lower case.
	LowerCase = modelrest.NewStringRule(govalidator.IsLowerCase, "must be lower case")
	// ASCII checks if a string contains only ASCII characters.
	ASCII = modelrest.NewStringRule(govalidator.IsASCII, "must contain only ASCII characters")
	// Host checks if a string is a valid IP address or DNS name.
	Host = modelrest.NewStringRule(govalidator.IsHost, "must be a valid IP address or DNS name")
)
