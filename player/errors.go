// Copyright 2026 The Ted IPTV Player Authors
// SPDX-License-Identifier: GPL-3.0-only

package player

import (
	"fmt"
	"time"
)

// ErrorCode is the closed taxonomy of playback failures.
type ErrorCode string

const (
	ErrNetwork            ErrorCode = "NETWORK_ERROR"
	ErrMedia              ErrorCode = "MEDIA_ERROR"
	ErrDecode             ErrorCode = "DECODE_ERROR"
	ErrSourceNotSupported ErrorCode = "SOURCE_NOT_SUPPORTED"
	ErrDRM                ErrorCode = "DRM_ERROR"
	ErrManifest           ErrorCode = "MANIFEST_ERROR"
	ErrSegment            ErrorCode = "SEGMENT_ERROR"
	ErrTimeout            ErrorCode = "TIMEOUT_ERROR"
	ErrUnknown            ErrorCode = "UNKNOWN_ERROR"
)

// Error is a playback failure reported by the engine. Recoverable is
// engine-asserted; nothing downstream overrides it, only acts on it.
type Error struct {
	Code        ErrorCode
	Message     string
	Recoverable bool
	Cause       error
	Timestamp   time.Time
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError builds a stamped playback error.
func NewError(code ErrorCode, message string, recoverable bool, cause error) *Error {
	return &Error{
		Code:        code,
		Message:     message,
		Recoverable: recoverable,
		Cause:       cause,
		Timestamp:   time.Now(),
	}
}
