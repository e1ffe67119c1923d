package model

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/shopspring/decimal"
)

const MaxBulkIDs = 100

var (
	housingTypeValues   = []interface{}{HousingHouseGarden, HousingHouseNoGarden, HousingFlatBalcony, HousingFlatNoBalcony}
	housingStatusValues = []interface{}{HousingOwner, HousingTenant}
	availabilityValues  = []interface{}{AvailableThisWeek, AvailableInOneWeek, AvailableInTwoWeeks, AvailableInOneMonth, AvailableFlexible}
	statusValues        = []interface{}{StatusPending, StatusAccepted, StatusRefused}
)

// SubmitRequest is the public adoption form. Surfaces are kept as text until
// validated, then parsed into decimals.
type SubmitRequest struct {
	FullName string `form:"nom_complet" json:"nom_complet"`
	Email    string `form:"email" json:"email"`
	Phone    string `form:"telephone" json:"telephone"`
	Address  string `form:"adresse" json:"adresse"`

	HousingType   HousingType   `form:"type_logement" json:"type_logement"`
	HousingStatus HousingStatus `form:"statut_logement" json:"statut_logement"`
	Surface       string        `form:"superficie" json:"superficie"`
	HasGarden     bool          `form:"a_jardin" json:"a_jardin"`
	GardenSurface string        `form:"superficie_jardin" json:"superficie_jardin"`

	HasExperience         bool   `form:"a_experience" json:"a_experience"`
	ExperienceDescription string `form:"description_experience" json:"description_experience"`
	HasOtherPets          bool   `form:"a_autres_animaux" json:"a_autres_animaux"`
	OtherPetsDetails      string `form:"details_autres_animaux" json:"details_autres_animaux"`
	Motivation            string `form:"motivation" json:"motivation"`

	Availability        Availability `form:"disponibilite" json:"disponibilite"`
	AvailabilityDetails string       `form:"precisions_disponibilite" json:"precisions_disponibilite"`
}

func (r *SubmitRequest) Normalize() {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Phone = strings.TrimSpace(r.Phone)
	r.Address = strings.TrimSpace(r.Address)
	r.Surface = normalizeDecimal(r.Surface)
	r.GardenSurface = normalizeDecimal(r.GardenSurface)
	r.ExperienceDescription = strings.TrimSpace(r.ExperienceDescription)
	r.OtherPetsDetails = strings.TrimSpace(r.OtherPetsDetails)
	r.Motivation = strings.TrimSpace(r.Motivation)
	r.AvailabilityDetails = strings.TrimSpace(r.AvailabilityDetails)
	if r.Availability == "" {
		r.Availability = AvailableFlexible
	}
}

// French forms use a decimal comma.
func normalizeDecimal(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
}

func (r SubmitRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FullName,
			validation.Required.Error("Le nom complet est obligatoire."),
			validation.Length(1, 200),
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
		validation.Field(&r.HousingType,
			validation.Required.Error("Le type de logement est obligatoire."),
			validation.In(housingTypeValues...).Error("Type de logement invalide."),
		),
		validation.Field(&r.HousingStatus,
			validation.Required.Error("Le statut du logement est obligatoire."),
			validation.In(housingStatusValues...).Error("Statut de logement invalide."),
		),
		validation.Field(&r.Surface, validation.By(nonNegativeDecimal)),
		validation.Field(&r.GardenSurface, validation.By(nonNegativeDecimal)),
		validation.Field(&r.Motivation, validation.Required.Error("La motivation est obligatoire.")),
		validation.Field(&r.Availability,
			validation.In(availabilityValues...).Error("Disponibilité invalide."),
		),
	)
}

func nonNegativeDecimal(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return errors.New("Veuillez saisir un nombre.")
	}
	if d.IsNegative() {
		return errors.New("La valeur doit être positive.")
	}
	return nil
}

func parseNullDecimal(s string) decimal.NullDecimal {
	if s == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

// ToAdoptionRequest builds a pending request. A garden without a surface gets 0.
func (r *SubmitRequest) ToAdoptionRequest(animalID int64, accountID *int64) *AdoptionRequest {
	garden := parseNullDecimal(r.GardenSurface)
	if r.HasGarden && !garden.Valid {
		garden = decimal.NewNullDecimal(decimal.Zero)
	}

	return &AdoptionRequest{
		AnimalID:              animalID,
		AccountID:             accountID,
		FullName:              r.FullName,
		Email:                 r.Email,
		Phone:                 r.Phone,
		Address:               r.Address,
		HousingType:           r.HousingType,
		HousingStatus:         r.HousingStatus,
		Surface:               parseNullDecimal(r.Surface),
		HasGarden:             r.HasGarden,
		GardenSurface:         garden,
		HasExperience:         r.HasExperience,
		ExperienceDescription: r.ExperienceDescription,
		HasOtherPets:          r.HasOtherPets,
		OtherPetsDetails:      r.OtherPetsDetails,
		Motivation:            r.Motivation,
		Availability:          r.Availability,
		AvailabilityDetails:   r.AvailabilityDetails,
		Status:                StatusPending,
	}
}

// ListFilter narrows the staff listing. Limit 0 means no pagination.
type ListFilter struct {
	Status    Status `form:"statut"`
	AnimalID  int64  `form:"animal_id"`
	Processed *bool  `form:"traitee"`
	Search    string `form:"search"`
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
}

func (f *ListFilter) Normalize() {
	f.Search = strings.TrimSpace(f.Search)
	if validation.Validate(f.Status, validation.In(statusValues...)) != nil {
		f.Status = ""
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 0 || f.Limit > 100 {
		f.Limit = 20
	}
}

func (f *ListFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

type BulkActionRequest struct {
	IDs []int64 `json:"ids"`
}

func (r BulkActionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.IDs,
			validation.Required.Error("Aucune demande sélectionnée."),
			validation.Length(1, MaxBulkIDs).Error("100 demandes maximum par action."),
		),
	)
}

type BulkOutcome string

const (
	OutcomeApplied BulkOutcome = "applied"
	OutcomeSkipped BulkOutcome = "skipped"
)

type BulkItem struct {
	ID      int64       `json:"id"`
	Outcome BulkOutcome `json:"outcome"`
	Reason  string      `json:"reason,omitempty"`
}

// BulkActionResult reports one outcome per distinct id, in request order.
type BulkActionResult struct {
	Requested int        `json:"requested"`
	Succeeded int        `json:"succeeded"`
	Failed    int        `json:"failed"`
	Items     []BulkItem `json:"items"`
}

type UpdateNotesRequest struct {
	Notes string `json:"notes_admin"`
}

func (r UpdateNotesRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Notes, validation.Length(0, 5000)),
	)
}
