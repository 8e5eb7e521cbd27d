package contentguard

import "errors"

var (
	// ErrInvalidPattern is returned when the forbidden pattern does not compile.
	ErrInvalidPattern = errors.New("contentguard: invalid forbidden pattern")

	// ErrInvalidConfig is returned when the configuration cannot be loaded or is out of range.
	ErrInvalidConfig = errors.New("contentguard: invalid configuration")

	// ErrScanFailed is returned when the scanner itself fails, as opposed to finding forbidden content.
	ErrScanFailed = errors.New("contentguard: scan failed")
)
