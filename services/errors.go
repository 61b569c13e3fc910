package services

import "fmt"

// The four error kinds every service returns. Controllers map them to
// 400 / 404 / 403 / 500; anything else is treated as a persistence failure.

type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("%s not found", e.Resource) }

type AuthorizationError struct {
	Msg string
}

func (e *AuthorizationError) Error() string { return e.Msg }

type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string { return fmt.Sprintf("storage failure: %v", e.Err) }

func (e *PersistenceError) Unwrap() error { return e.Err }

// Capability is the pre-resolved permission set handed to services by the
// controllers. Services never compare role strings themselves.
type Capability struct {
	IsOwner bool
	IsAdmin bool
}
