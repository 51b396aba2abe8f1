package models

import (
	"fmt"
	"strings"
)

// ErrorType represents different categories of errors
type ErrorType int

const (
	ErrConfigMissing ErrorType = iota
	ErrMalformedProjectSpec
	ErrChrootNotFound
	ErrDescriptorFetch
	ErrDescriptorParse
	ErrUnrecognizedDependency
	ErrFileOp
	ErrInvalidConfig
)

// String returns the string representation of ErrorType
func (e ErrorType) String() string {
	switch e {
	case ErrConfigMissing:
		return "ConfigMissing"
	case ErrMalformedProjectSpec:
		return "MalformedProjectSpec"
	case ErrChrootNotFound:
		return "ChrootNotFound"
	case ErrDescriptorFetch:
		return "DescriptorFetch"
	case ErrDescriptorParse:
		return "DescriptorParse"
	case ErrUnrecognizedDependency:
		return "UnrecognizedDependency"
	case ErrFileOp:
		return "FileOp"
	case ErrInvalidConfig:
		return "InvalidConfig"
	default:
		return "Unknown"
	}
}

// Fatal reports whether an error of this type aborts the running operation.
func (e ErrorType) Fatal() bool {
	return e != ErrConfigMissing && e != ErrUnrecognizedDependency
}

// CoprError represents an error while managing Copr repositories
type CoprError struct {
	Type    ErrorType
	Project string
	Err     error
}

// Error implements the error interface
func (e *CoprError) Error() string {
	if e.Project != "" {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Project, e.Err)
	}
	return fmt.Sprintf("[%s] %v", e.Type, e.Err)
}

// Unwrap returns the wrapped error
func (e *CoprError) Unwrap() error {
	return e.Err
}

// ChrootNotFoundError is returned when no chroot of a project matches the
// requested or detected one. Available is sorted.
type ChrootNotFoundError struct {
	// Chroot is the chroot that was asked for, empty when detection failed
	// before a candidate could be built.
	Chroot    string
	Available []string
}

// Error renders every available chroot on its own line.
func (e *ChrootNotFoundError) Error() string {
	var b strings.Builder
	if e.Chroot != "" {
		fmt.Fprintf(&b, "Chroot not found in the given Copr project (%s).", e.Chroot)
	} else {
		b.WriteString("Unable to detect chroot, specify it explicitly.")
	}
	b.WriteString(" You can choose one of the available chroots explicitly:\n")
	for i, available := range e.Available {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(" ")
		b.WriteString(available)
	}
	return b.String()
}
