package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending  Status = "EN_ATTENTE"
	StatusAccepted Status = "ACCEPTEE"
	StatusRefused  Status = "REFUSEE"
)

func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "En attente"
	case StatusAccepted:
		return "Acceptée"
	case StatusRefused:
		return "Refusée"
	}
	return string(s)
}

type HousingType string

const (
	HousingHouseGarden   HousingType = "maison_jardin"
	HousingHouseNoGarden HousingType = "maison_sans_jardin"
	HousingFlatBalcony   HousingType = "appartement_balcon"
	HousingFlatNoBalcony HousingType = "appartement_sans_balcon"
)

func (h HousingType) Label() string {
	switch h {
	case HousingHouseGarden:
		return "Maison avec jardin"
	case HousingHouseNoGarden:
		return "Maison sans jardin"
	case HousingFlatBalcony:
		return "Appartement avec balcon"
	case HousingFlatNoBalcony:
		return "Appartement sans balcon"
	}
	return string(h)
}

type HousingStatus string

const (
	HousingOwner  HousingStatus = "proprietaire"
	HousingTenant HousingStatus = "locataire"
)

func (h HousingStatus) Label() string {
	switch h {
	case HousingOwner:
		return "Propriétaire"
	case HousingTenant:
		return "Locataire"
	}
	return string(h)
}

type Availability string

const (
	AvailableThisWeek   Availability = "cette_semaine"
	AvailableInOneWeek  Availability = "dans_1_semaine"
	AvailableInTwoWeeks Availability = "dans_2_semaines"
	AvailableInOneMonth Availability = "dans_1_mois"
	AvailableFlexible   Availability = "flexible"
)

func (a Availability) Label() string {
	switch a {
	case AvailableThisWeek:
		return "Cette semaine"
	case AvailableInOneWeek:
		return "Dans 1 semaine"
	case AvailableInTwoWeeks:
		return "Dans 2 semaines"
	case AvailableInOneMonth:
		return "Dans 1 mois"
	case AvailableFlexible:
		return "Flexible"
	}
	return string(a)
}

// Choice is a value/label pair for form selects.
type Choice struct {
	Value string
	Label string
}

func HousingTypeChoices() []Choice {
	return []Choice{
		{string(HousingHouseGarden), HousingHouseGarden.Label()},
		{string(HousingHouseNoGarden), HousingHouseNoGarden.Label()},
		{string(HousingFlatBalcony), HousingFlatBalcony.Label()},
		{string(HousingFlatNoBalcony), HousingFlatNoBalcony.Label()},
	}
}

func HousingStatusChoices() []Choice {
	return []Choice{
		{string(HousingOwner), HousingOwner.Label()},
		{string(HousingTenant), HousingTenant.Label()},
	}
}

func AvailabilityChoices() []Choice {
	return []Choice{
		{string(AvailableThisWeek), AvailableThisWeek.Label()},
		{string(AvailableInOneWeek), AvailableInOneWeek.Label()},
		{string(AvailableInTwoWeeks), AvailableInTwoWeeks.Label()},
		{string(AvailableInOneMonth), AvailableInOneMonth.Label()},
		{string(AvailableFlexible), AvailableFlexible.Label()},
	}
}

// AdoptionRequest is one application for one animal. Status is canonical;
// Processed is always written together with it.
type AdoptionRequest struct {
	ID        int64  `json:"id"`
	AnimalID  int64  `json:"animal_id"`
	AccountID *int64 `json:"utilisateur_id,omitempty"`

	FullName string `json:"nom_complet"`
	Email    string `json:"email"`
	Phone    string `json:"telephone"`
	Address  string `json:"adresse"`

	HousingType   HousingType         `json:"type_logement"`
	HousingStatus HousingStatus       `json:"statut_logement"`
	Surface       decimal.NullDecimal `json:"superficie"`
	HasGarden     bool                `json:"a_jardin"`
	GardenSurface decimal.NullDecimal `json:"superficie_jardin"`

	HasExperience         bool   `json:"a_experience"`
	ExperienceDescription string `json:"description_experience"`
	HasOtherPets          bool   `json:"a_autres_animaux"`
	OtherPetsDetails      string `json:"details_autres_animaux"`
	Motivation            string `json:"motivation"`

	Availability        Availability `json:"disponibilite"`
	AvailabilityDetails string       `json:"precisions_disponibilite"`

	RequestedAt time.Time `json:"date_demande"`
	Status      Status    `json:"statut"`
	Processed   bool      `json:"traitee"`
	AdminNotes  string    `json:"notes_admin"`

	// Read-only, filled by listing queries
	AnimalName string `json:"animal_nom,omitempty"`
}

func (r *AdoptionRequest) IsPending() bool {
	return r.Status == StatusPending
}

// DispositionTarget is the locked state a disposition decision is taken on.
type DispositionTarget struct {
	RequestID       int64
	AnimalID        int64
	Status          Status
	AnimalAvailable bool
}
