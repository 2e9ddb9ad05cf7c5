// Package common defines shared constants and sentinel errors used across
// Learnify components. Callers should use errors.Is to match these values.
package common

import "errors"

// ErrorMalformedData marks a slot whose content could not be decoded.
var ErrorMalformedData = errors.New("malformed persisted data")
