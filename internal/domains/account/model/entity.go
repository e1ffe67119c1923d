package model

import (
	"strings"
	"time"
)

// Account is a registered user. Email is the login identifier.
type Account struct {
	ID             int64      `json:"id"`
	Email          string     `json:"email"`
	PasswordHash   string     `json:"-"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Phone          string     `json:"telephone"`
	Address        string     `json:"adresse"`
	IsStaff        bool       `json:"is_staff"`
	IsSuperuser    bool       `json:"is_superuser"`
	IsActive       bool       `json:"is_active"`
	FailedAttempts int        `json:"tentatives_connexion"`
	Locked         bool       `json:"compte_verrouille"`
	LastLogin      *time.Time `json:"last_login,omitempty"`
	RegisteredAt   time.Time  `json:"date_inscription"`
}

func (a *Account) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// AccountSummary is an account with the number of adoption requests it submitted.
type AccountSummary struct {
	Account
	RequestCount int `json:"nombre_demandes"`
}

// NormalizeEmail lower-cases and trims; emails are compared case-insensitively.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
