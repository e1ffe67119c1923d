package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeAnimalNotFound = "ANI001"
	ErrCodeInvalidImage   = "ANI002"
	ErrCodeNoStorage      = "ANI003"
)

var (
	ErrAnimalNotFound     = errors.New("animal not found")
	ErrInvalidImage       = errors.New("invalid image")
	ErrStorageUnavailable = errors.New("photo storage is not configured")
)

// AnimalError carries a code and a user-facing message.
type AnimalError struct {
	Code    string
	Message string
	Err     error
}

func (e *AnimalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AnimalError) Unwrap() error {
	return e.Err
}

func NewAnimalNotFoundError() *AnimalError {
	return &AnimalError{
		Code:    ErrCodeAnimalNotFound,
		Message: "Animal introuvable",
		Err:     ErrAnimalNotFound,
	}
}

func NewInvalidImageError(reason string) *AnimalError {
	return &AnimalError{
		Code:    ErrCodeInvalidImage,
		Message: fmt.Sprintf("Image invalide : %s", reason),
		Err:     ErrInvalidImage,
	}
}

func NewStorageUnavailableError() *AnimalError {
	return &AnimalError{
		Code:    ErrCodeNoStorage,
		Message: "Le stockage des photos n'est pas configuré",
		Err:     ErrStorageUnavailable,
	}
}
