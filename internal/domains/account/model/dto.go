package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// RegisterRequest is the self-service registration form.
type RegisterRequest struct {
	FirstName string `form:"first_name" json:"first_name"`
	LastName  string `form:"last_name" json:"last_name"`
	Email     string `form:"email" json:"email"`
	Phone     string `form:"telephone" json:"telephone"`
	Address   string `form:"adresse" json:"adresse"`
	Password1 string `form:"password1" json:"password1"`
	Password2 string `form:"password2" json:"password2"`
}

func (r *RegisterRequest) Normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = NormalizeEmail(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Address = strings.TrimSpace(r.Address)
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName,
			validation.Required.Error("Le prénom est obligatoire."),
			validation.Length(1, 150),
		),
		validation.Field(&r.LastName,
			validation.Required.Error("Le nom est obligatoire."),
			validation.Length(1, 150),
		),
		validation.Field(&r.Email,
			validation.Required.Error("L'email est obligatoire."),
			is.EmailFormat.Error("Adresse email invalide."),
			validation.Length(3, 254),
		),
		validation.Field(&r.Phone,
			validation.Required.Error("Le téléphone est obligatoire."),
			validation.Length(1, 20).Error("20 caractères maximum."),
		),
		validation.Field(&r.Password1,
			validation.Required.Error("Le mot de passe est obligatoire."),
			validation.Length(8, 128).Error("Le mot de passe doit contenir au moins 8 caractères."),
		),
		validation.Field(&r.Password2,
			validation.Required.Error("Veuillez confirmer le mot de passe."),
			validation.In(r.Password1).Error("Les deux mots de passe ne correspondent pas."),
		),
	)
}

type LoginRequest struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required.Error("L'email est obligatoire.")),
		validation.Field(&r.Password, validation.Required.Error("Le mot de passe est obligatoire.")),
	)
}

// ListFilter narrows the staff account listing.
type ListFilter struct {
	Search string `form:"search"`
	Locked *bool  `form:"compte_verrouille"`
	Staff  *bool  `form:"is_staff"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

func (f *ListFilter) Normalize() {
	f.Search = strings.TrimSpace(f.Search)
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
}

func (f *ListFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}
