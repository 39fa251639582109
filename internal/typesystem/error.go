package typesystem

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures of the strategy layer.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindInvalidPointer
	KindOutOfMemory
	KindDuplicateRegistration
	KindNoSuchMethod
	KindNoSuchOverload
	KindInvalidSignature
	KindTypeMismatch
	KindDuplicateType
	KindUnknownType
	KindIncompleteLifecycle
	KindFrozen
	KindNoSuchCast
)

var kindNames = map[ErrorKind]string{
	KindUnknown:               "unknown error",
	KindInvalidPointer:        "invalid pointer",
	KindOutOfMemory:           "out of memory",
	KindDuplicateRegistration: "duplicate registration",
	KindNoSuchMethod:          "no such method",
	KindNoSuchOverload:        "no such overload",
	KindInvalidSignature:      "invalid signature",
	KindTypeMismatch:          "type mismatch",
	KindDuplicateType:         "duplicate type",
	KindUnknownType:           "unknown type",
	KindIncompleteLifecycle:   "incomplete lifecycle",
	KindFrozen:                "strategy is frozen",
	KindNoSuchCast:            "no such cast",
}

func (k ErrorKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("error kind %d", int(k))
}

// Error is returned by every failing operation of the strategy layer.
type Error struct {
	Kind   ErrorKind
	Op     string // operation that failed, e.g. "add_method"
	Name   string // method, operator or type name involved, if any
	Detail string
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Name != "" {
		msg += " " + e.Name
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Is reports kind equality so that errors.Is works against the sentinels below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func NewError(kind ErrorKind, op, name string) *Error {
	return &Error{Kind: kind, Op: op, Name: name}
}

func Errorf(kind ErrorKind, op, name, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Op: op, Name: name, Detail: fmt.Sprintf(format, args...)}
}

// KindOf extracts the kind of err, or KindUnknown if err is not an *Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Sentinels for errors.Is.
var (
	ErrInvalidPointer        = &Error{Kind: KindInvalidPointer}
	ErrOutOfMemory           = &Error{Kind: KindOutOfMemory}
	ErrDuplicateRegistration = &Error{Kind: KindDuplicateRegistration}
	ErrNoSuchMethod          = &Error{Kind: KindNoSuchMethod}
	ErrNoSuchOverload        = &Error{Kind: KindNoSuchOverload}
	ErrInvalidSignature      = &Error{Kind: KindInvalidSignature}
	ErrTypeMismatch          = &Error{Kind: KindTypeMismatch}
	ErrDuplicateType         = &Error{Kind: KindDuplicateType}
	ErrUnknownType           = &Error{Kind: KindUnknownType}
	ErrIncompleteLifecycle   = &Error{Kind: KindIncompleteLifecycle}
	ErrFrozen                = &Error{Kind: KindFrozen}
	ErrNoSuchCast            = &Error{Kind: KindNoSuchCast}
)
