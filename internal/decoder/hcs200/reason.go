package hcs200

import "fmt"

// Reason classifies why a buffer was rejected.
type Reason int

const (
	// ReasonWrongLength means the row bit counts are not 12 and 66.
	ReasonWrongLength Reason = iota + 1
	// ReasonPreambleMismatch means row 0 is not the 0xFFF marker.
	ReasonPreambleMismatch
	// ReasonSanity means payload bytes 1 to 7 are all 0xFF.
	ReasonSanity
)

// Status codes shared with rtl_433 decoders.
const (
	codeAbortLength = -1
	codeAbortEarly  = -2
	codeFailSanity  = -4
)

func (r Reason) String() string {
	switch r {
	case ReasonWrongLength:
		return "wrong length"
	case ReasonPreambleMismatch:
		return "preamble mismatch"
	case ReasonSanity:
		return "failed sanity"
	default:
		return fmt.Sprintf("reason(%d)", int(r))
	}
}

// Error lets a Reason act as a sentinel for errors.Is.
func (r Reason) Error() string {
	return "hcs200: " + r.String()
}

// Code returns the rtl_433 decoder status code for the reason.
func (r Reason) Code() int {
	switch r {
	case ReasonWrongLength:
		return codeAbortLength
	case ReasonPreambleMismatch:
		return codeAbortEarly
	case ReasonSanity:
		return codeFailSanity
	default:
		return 0
	}
}

// RejectError is returned for every buffer that carries no usable event.
type RejectError struct {
	Reason Reason
	Detail string
}

func (e *RejectError) Error() string {
	if e.Detail == "" {
		return e.Reason.Error()
	}
	return fmt.Sprintf("%s: %s", e.Reason.Error(), e.Detail)
}

// Is matches the error against a bare Reason.
func (e *RejectError) Is(target error) bool {
	r, ok := target.(Reason)
	return ok && r == e.Reason
}

func reject(r Reason, format string, args ...any) *RejectError {
	return &RejectError{Reason: r, Detail: fmt.Sprintf(format, args...)}
}
