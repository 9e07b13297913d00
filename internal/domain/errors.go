package domain

import "fmt"

type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindNotFound   ErrorKind = "not_found"
	KindConflict   ErrorKind = "conflict"
	KindAuth       ErrorKind = "auth"
	KindStorage    ErrorKind = "storage"
)

// Error carries a machine-readable code alongside the human message so
// callers can branch on failures without parsing text.
type Error struct {
	Kind    ErrorKind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is makes sentinel errors survive wrapping: two domain errors match
// when their codes match.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	return ok && other.Code == e.Code
}

var (
	ErrAccountNotFound    = &Error{Kind: KindNotFound, Code: "AccountNotFound", Message: "account not found"}
	ErrProductNotFound    = &Error{Kind: KindNotFound, Code: "ProductNotFound", Message: "product not found"}
	ErrEmptyCart          = &Error{Kind: KindValidation, Code: "EmptyCart", Message: "cart is empty"}
	ErrAlreadyPurchased   = &Error{Kind: KindConflict, Code: "AlreadyPurchased", Message: "product already purchased"}
	ErrDuplicateUsername  = &Error{Kind: KindConflict, Code: "DuplicateUsername", Message: "username is taken"}
	ErrInvalidCredentials = &Error{Kind: KindAuth, Code: "InvalidCredentials", Message: "wrong username or password"}
)

func Validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Code: "Validation", Message: fmt.Sprintf(format, args...)}
}

func StorageError(err error) *Error {
	return &Error{Kind: KindStorage, Code: "Storage", Message: "storage failure", Err: err}
}
