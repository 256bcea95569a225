package domain

import "errors"

var ErrUserNotFound = errors.New("usuário não encontrado")

// ConflictError indicates a unique field collision. Path names exactly one
// offending field ("email" or "phone"), email taking priority when both
// collide.
type ConflictError struct {
	Path    string
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func NewEmailConflict() *ConflictError {
	return &ConflictError{Path: "email", Message: "E-mail já foi utilizado"}
}

func NewPhoneConflict() *ConflictError {
	return &ConflictError{Path: "phone", Message: "Telefone já foi utilizado"}
}
