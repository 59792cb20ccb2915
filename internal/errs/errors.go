package errs

import (
	"errors"
	"fmt"
)

// Kind buckets every failure the dashboard can surface. The handlers map each
// kind to a different recovery policy: auth errors stay on the login form,
// permission errors force sign-out, transient errors show a retryable panel.
type Kind int

const (
	KindAuth Kind = iota
	KindPermission
	KindNotFound
	KindTransient
)

func (k Kind) String() string {
	switch k {
	case KindAuth:
		return "auth"
	case KindPermission:
		return "permission"
	case KindNotFound:
		return "not_found"
	case KindTransient:
		return "transient"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches two taxonomy errors by kind so callers can use
// errors.Is(err, errs.Permission("")) style sentinels.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return e.Kind == other.Kind
	}
	return false
}

func Auth(msg string) *Error       { return &Error{Kind: KindAuth, Msg: msg} }
func Permission(msg string) *Error { return &Error{Kind: KindPermission, Msg: msg} }
func NotFound(msg string) *Error   { return &Error{Kind: KindNotFound, Msg: msg} }
func Transient(msg string) *Error  { return &Error{Kind: KindTransient, Msg: msg} }

func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf reports the taxonomy kind of err, or ok=false for errors that never
// went through this package.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
