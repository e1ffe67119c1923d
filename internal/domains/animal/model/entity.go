package model

import (
	"fmt"
	"time"
)

type Species string

const (
	SpeciesDog Species = "CHIEN"
	SpeciesCat Species = "CHAT"
)

func (s Species) Label() string {
	switch s {
	case SpeciesDog:
		return "Chien"
	case SpeciesCat:
		return "Chat"
	}
	return string(s)
}

type Sex string

const (
	SexMale   Sex = "M"
	SexFemale Sex = "F"
)

func (s Sex) Label() string {
	switch s {
	case SexMale:
		return "Mâle"
	case SexFemale:
		return "Femelle"
	}
	return string(s)
}

type AgeCategory string

const (
	AgeJunior AgeCategory = "junior"
	AgeAdult  AgeCategory = "adulte"
	AgeSenior AgeCategory = "senior"
)

func (a AgeCategory) Label() string {
	switch a {
	case AgeJunior:
		return "Junior"
	case AgeAdult:
		return "Adulte"
	case AgeSenior:
		return "Senior"
	}
	return string(a)
}

// Animal is an adoptable-animal record. Available is the only adoptability flag.
type Animal struct {
	ID          int64       `json:"id"`
	Name        string      `json:"nom"`
	Species     Species     `json:"espece"`
	Breed       string      `json:"race"`
	AgeYears    int         `json:"age_annees"`
	AgeMonths   int         `json:"age_mois"`
	AgeCategory AgeCategory `json:"categorie_age"`
	Sex         Sex         `json:"sexe"`
	Description string      `json:"description"`
	Photo       string      `json:"photo"`
	ArrivedAt   time.Time   `json:"date_arrivee"`
	Available   bool        `json:"disponible"`
}

// AgeDisplay renders the age the way the shelter shows it: "10 mois", "1 an", "5 ans", "2 ans et 3 mois".
func (a *Animal) AgeDisplay() string {
	if a.AgeYears == 0 {
		return fmt.Sprintf("%d mois", a.AgeMonths)
	}

	years := fmt.Sprintf("%d ans", a.AgeYears)
	if a.AgeYears == 1 {
		years = "1 an"
	}
	if a.AgeMonths == 0 {
		return years
	}
	return fmt.Sprintf("%s et %d mois", years, a.AgeMonths)
}

func (a *Animal) String() string {
	return fmt.Sprintf("%s (%s)", a.Name, a.Species.Label())
}
