package model

import (
	"errors"
	"fmt"
)

const (
	ErrCodeAccountNotFound    = "ACC001"
	ErrCodeEmailExists        = "ACC002"
	ErrCodeInvalidCredentials = "ACC003"
	ErrCodeAccountLocked      = "ACC004"
)

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountLocked      = errors.New("account has been locked")
)

// User-facing messages
const (
	MsgInvalidCredentials = "Email ou mot de passe incorrect."
	MsgAccountLocked      = "Compte temporairement bloqué après plusieurs tentatives échouées. Réessayez plus tard."
	MsgEmailExists        = "Un compte existe déjà avec cet email."
)

type AccountError struct {
	Code    string
	Message string
	Err     error
}

func (e *AccountError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AccountError) Unwrap() error {
	return e.Err
}

func NewAccountNotFoundError() *AccountError {
	return &AccountError{Code: ErrCodeAccountNotFound, Message: "Utilisateur introuvable", Err: ErrAccountNotFound}
}

func NewEmailExistsError() *AccountError {
	return &AccountError{Code: ErrCodeEmailExists, Message: MsgEmailExists, Err: ErrEmailAlreadyExists}
}

func NewInvalidCredentialsError() *AccountError {
	return &AccountError{Code: ErrCodeInvalidCredentials, Message: MsgInvalidCredentials, Err: ErrInvalidCredentials}
}

func NewAccountLockedError() *AccountError {
	return &AccountError{Code: ErrCodeAccountLocked, Message: MsgAccountLocked, Err: ErrAccountLocked}
}
