package auth

import "errors"

// Error codes reported by the authentication flows.
const (
	CodeInvalidEmail         = "invalid-email"
	CodeUserNotFound         = "user-not-found"
	CodeWrongPassword        = "wrong-password"
	CodeInvalidCredential    = "invalid-credential"
	CodeUserDisabled         = "user-disabled"
	CodeTooManyRequests      = "too-many-requests"
	CodeNetworkRequestFailed = "network-request-failed"
	CodeEmailAlreadyInUse    = "email-already-in-use"
	CodeWeakPassword         = "weak-password"
	CodePasswordsMismatch    = "passwords-mismatch"
)

var messages = map[string]string{
	CodeInvalidEmail:         "The email address is not valid",
	CodeUserNotFound:         "There is no account with this email address",
	CodeWrongPassword:        "Incorrect password",
	CodeInvalidCredential:    "Invalid credentials. Check your email and password",
	CodeUserDisabled:         "This account has been disabled",
	CodeTooManyRequests:      "Too many failed attempts. Try again later",
	CodeNetworkRequestFailed: "Connection error. Try again",
	CodeEmailAlreadyInUse:    "An account with this email address already exists",
	CodeWeakPassword:         "The password must be at least 6 characters long",
	CodePasswordsMismatch:    "The passwords do not match",
}

// GenericMessage is shown for errors outside the auth taxonomy.
const GenericMessage = "Unexpected error. Try again"

// Error is an authentication failure identified by its code.
type Error struct {
	Code string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return "auth/" + e.Code + ": " + e.Err.Error()
	}
	return "auth/" + e.Code
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error with the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return t.Code == e.Code
	}
	return false
}

var (
	ErrInvalidEmail         = &Error{Code: CodeInvalidEmail}
	ErrUserNotFound         = &Error{Code: CodeUserNotFound}
	ErrWrongPassword        = &Error{Code: CodeWrongPassword}
	ErrInvalidCredential    = &Error{Code: CodeInvalidCredential}
	ErrUserDisabled         = &Error{Code: CodeUserDisabled}
	ErrTooManyRequests      = &Error{Code: CodeTooManyRequests}
	ErrNetworkRequestFailed = &Error{Code: CodeNetworkRequestFailed}
	ErrEmailAlreadyInUse    = &Error{Code: CodeEmailAlreadyInUse}
	ErrWeakPassword         = &Error{Code: CodeWeakPassword}
	ErrPasswordsMismatch    = &Error{Code: CodePasswordsMismatch}
)

// Code returns the auth code carried by err, or "" if err is outside the taxonomy.
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Message resolves err to its fixed user-facing message.
func Message(err error) string {
	if msg, ok := messages[Code(err)]; ok {
		return msg
	}
	return GenericMessage
}

func networkError(err error) error {
	return &Error{Code: CodeNetworkRequestFailed, Err: err}
}
