package model

import (
	"errors"
	"fmt"
)

const (
	ErrCodeRequestNotFound      = "ADO001"
	ErrCodeAlreadyRequested     = "ADO002"
	ErrCodeAlreadyProcessed     = "ADO003"
	ErrCodeAnimalAlreadyAdopted = "ADO004"
)

var (
	ErrRequestNotFound      = errors.New("adoption request not found")
	ErrAlreadyRequested     = errors.New("adoption already requested for this animal")
	ErrAlreadyProcessed     = errors.New("adoption request already processed")
	ErrAnimalAlreadyAdopted = errors.New("animal already adopted")
)

const (
	MsgRequestNotFound      = "Demande introuvable"
	MsgAlreadyRequested     = "Vous avez déjà fait une demande pour cet animal."
	MsgAlreadyProcessed     = "Cette demande a déjà été traitée."
	MsgAnimalAlreadyAdopted = "Cet animal a déjà été adopté."
	MsgSubmitted            = "Votre demande d'adoption a bien été envoyée !"
)

type AdoptionError struct {
	Code    string
	Message string
	Err     error
}

func (e *AdoptionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AdoptionError) Unwrap() error {
	return e.Err
}

func NewRequestNotFoundError() *AdoptionError {
	return &AdoptionError{Code: ErrCodeRequestNotFound, Message: MsgRequestNotFound, Err: ErrRequestNotFound}
}

func NewAlreadyRequestedError() *AdoptionError {
	return &AdoptionError{Code: ErrCodeAlreadyRequested, Message: MsgAlreadyRequested, Err: ErrAlreadyRequested}
}

func NewAlreadyProcessedError(status Status) *AdoptionError {
	return &AdoptionError{
		Code:    ErrCodeAlreadyProcessed,
		Message: fmt.Sprintf("%s (%s)", MsgAlreadyProcessed, status.Label()),
		Err:     ErrAlreadyProcessed,
	}
}

func NewAnimalAlreadyAdoptedError() *AdoptionError {
	return &AdoptionError{Code: ErrCodeAnimalAlreadyAdopted, Message: MsgAnimalAlreadyAdopted, Err: ErrAnimalAlreadyAdopted}
}
