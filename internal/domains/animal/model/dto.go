package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	speciesValues     = []interface{}{SpeciesDog, SpeciesCat}
	sexValues         = []interface{}{SexMale, SexFemale}
	ageCategoryValues = []interface{}{AgeJunior, AgeAdult, AgeSenior}
)

// CreateAnimalRequest is the staff payload for a new animal.
type CreateAnimalRequest struct {
	Name        string      `json:"nom" form:"nom"`
	Species     Species     `json:"espece" form:"espece"`
	Breed       string      `json:"race" form:"race"`
	AgeYears    int         `json:"age_annees" form:"age_annees"`
	AgeMonths   int         `json:"age_mois" form:"age_mois"`
	AgeCategory AgeCategory `json:"categorie_age" form:"categorie_age"`
	Sex         Sex         `json:"sexe" form:"sexe"`
	Description string      `json:"description" form:"description"`
	Available   *bool       `json:"disponible" form:"disponible"`
}

func (r *CreateAnimalRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Breed = strings.TrimSpace(r.Breed)
	r.Description = strings.TrimSpace(r.Description)
}

func (r CreateAnimalRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Species, validation.Required, validation.In(speciesValues...)),
		validation.Field(&r.Breed, validation.Length(0, 100)),
		validation.Field(&r.AgeYears, validation.Min(0), validation.Max(40)),
		validation.Field(&r.AgeMonths, validation.Min(0), validation.Max(11)),
		validation.Field(&r.AgeCategory, validation.Required, validation.In(ageCategoryValues...)),
		validation.Field(&r.Sex, validation.Required, validation.In(sexValues...)),
	)
}

// ToAnimal builds the entity; Available defaults to true.
func (r *CreateAnimalRequest) ToAnimal() *Animal {
	available := true
	if r.Available != nil {
		available = *r.Available
	}
	return &Animal{
		Name:        r.Name,
		Species:     r.Species,
		Breed:       r.Breed,
		AgeYears:    r.AgeYears,
		AgeMonths:   r.AgeMonths,
		AgeCategory: r.AgeCategory,
		Sex:         r.Sex,
		Description: r.Description,
		Available:   available,
	}
}

// UpdateAnimalRequest replaces the editable fields. The arrival date is never editable.
type UpdateAnimalRequest struct {
	CreateAnimalRequest
}

func (r *UpdateAnimalRequest) Apply(a *Animal) {
	a.Name = r.Name
	a.Species = r.Species
	a.Breed = r.Breed
	a.AgeYears = r.AgeYears
	a.AgeMonths = r.AgeMonths
	a.AgeCategory = r.AgeCategory
	a.Sex = r.Sex
	a.Description = r.Description
	if r.Available != nil {
		a.Available = *r.Available
	}
}

type SetAvailabilityRequest struct {
	Available *bool `json:"disponible"`
}

func (r SetAvailabilityRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Available, validation.NotNil),
	)
}

// ListFilter narrows animal listings. Zero values mean "no filter".
type ListFilter struct {
	Search      string      `form:"q"`
	Species     Species     `form:"espece"`
	Sex         Sex         `form:"sexe"`
	AgeCategory AgeCategory `form:"categorie_age"`
	Available   *bool       `form:"disponible"`
	Page        int         `form:"page"`
	Limit       int         `form:"limit"`
}

// Validate drops unknown enum values and clamps pagination. Public filters never fail.
func (f *ListFilter) Validate() error {
	f.Search = strings.TrimSpace(f.Search)
	if validation.Validate(f.Species, validation.In(speciesValues...)) != nil {
		f.Species = ""
	}
	if validation.Validate(f.Sex, validation.In(sexValues...)) != nil {
		f.Sex = ""
	}
	if validation.Validate(f.AgeCategory, validation.In(ageCategoryValues...)) != nil {
		f.AgeCategory = ""
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 0 || f.Limit > 200 {
		f.Limit = 50
	}
	return nil
}

// Offset is meaningful only when Limit > 0.
func (f *ListFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

type AnimalResponse struct {
	*Animal
	AgeDisplay string `json:"age_display"`
	PhotoURL   string `json:"photo_url,omitempty"`
}

func ToAnimalResponse(a *Animal, photoURL string) AnimalResponse {
	return AnimalResponse{Animal: a, AgeDisplay: a.AgeDisplay(), PhotoURL: photoURL}
}
