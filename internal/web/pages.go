package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	adoptionModel "unispattes/internal/domains/adoption/model"
	animalModel "unispattes/internal/domains/animal/model"
	animalService "unispattes/internal/domains/animal/service"
	"unispattes/internal/shared/middleware"
)

func (h *Handler) cards(animals []*animalModel.Animal) []animalModel.AnimalResponse {
	out := make([]animalModel.AnimalResponse, 0, len(animals))
	for _, a := range animals {
		out = append(out, animalModel.ToAnimalResponse(a, h.animals.PhotoURL(a)))
	}
	return out
}

// Home shows the newest animals, adopted ones included.
func (h *Handler) Home(c *gin.Context) {
	animals, err := h.animals.ListRecent(c.Request.Context(), animalService.HomeListingSize)
	if err != nil {
		h.serverError(c, err)
		return
	}
	h.render(c, http.StatusOK, "index.html", gin.H{"Animals": h.cards(animals)})
}

// Animals lists every animal, most recent arrival first.
func (h *Handler) Animals(c *gin.Context) {
	var filter animalModel.ListFilter
	_ = c.ShouldBindQuery(&filter)
	_ = filter.Validate()
	filter.Available = nil
	filter.Page, filter.Limit = 1, 0

	animals, total, err := h.animals.List(c.Request.Context(), filter)
	if err != nil {
		h.serverError(c, err)
		return
	}

	h.render(c, http.StatusOK, "nos_animaux.html", gin.H{
		"Animals":       h.cards(animals),
		"Total":         total,
		"Filter":        filter,
		"Species":       []animalModel.Species{animalModel.SpeciesDog, animalModel.SpeciesCat},
		"Sexes":         []animalModel.Sex{animalModel.SexMale, animalModel.SexFemale},
		"AgeCategories": []animalModel.AgeCategory{animalModel.AgeJunior, animalModel.AgeAdult, animalModel.AgeSenior},
	})
}

// AnimalDetail shows one animal with the adoption form. Signed-in visitors get
// their name and email pre-filled.
func (h *Handler) AnimalDetail(c *gin.Context) {
	animal, ok := h.loadAnimal(c)
	if !ok {
		return
	}

	form := adoptionModel.SubmitRequest{Availability: adoptionModel.AvailableFlexible}
	if p := middleware.CurrentPrincipal(c); p != nil {
		form.FullName = p.FullName()
		form.Email = p.Email
	}
	h.renderDetail(c, http.StatusOK, animal, form, nil, "")
}

// SubmitRequest runs the intake for a signed-in visitor. RequireLogin has
// already turned anonymous posts away.
func (h *Handler) SubmitRequest(c *gin.Context) {
	animal, ok := h.loadAnimal(c)
	if !ok {
		return
	}
	principal := middleware.CurrentPrincipal(c)

	var form adoptionModel.SubmitRequest
	if err := c.ShouldBind(&form); err != nil {
		h.renderDetail(c, http.StatusBadRequest, animal, form, nil, "Le formulaire contient des valeurs invalides.")
		return
	}

	accountID := principal.AccountID
	_, err := h.adoptions.Submit(c.Request.Context(), animal.ID, &accountID, form)
	if err == nil {
		h.sessions.SetFlash(c, flashSubmitted)
		c.Redirect(http.StatusSeeOther, animalPath(animal.ID))
		return
	}

	if fields, ok := fieldErrors(err); ok {
		h.renderDetail(c, http.StatusBadRequest, animal, form, fields, "")
		return
	}

	var adoptionErr *adoptionModel.AdoptionError
	switch {
	case errors.Is(err, animalModel.ErrAnimalNotFound):
		h.NotFound(c)
	case errors.Is(err, adoptionModel.ErrAlreadyRequested) && errors.As(err, &adoptionErr):
		h.renderDetail(c, http.StatusConflict, animal, form, nil, adoptionErr.Message)
	default:
		h.serverError(c, err)
	}
}

func (h *Handler) About(c *gin.Context) {
	h.render(c, http.StatusOK, "a_propos.html", nil)
}

// Profile shows the signed-in account and its requests.
func (h *Handler) Profile(c *gin.Context) {
	principal := middleware.CurrentPrincipal(c)

	account, err := h.accounts.Get(c.Request.Context(), principal.AccountID)
	if err != nil {
		h.serverError(c, err)
		return
	}
	requests, err := h.adoptions.ListByAccount(c.Request.Context(), principal.AccountID)
	if err != nil {
		h.serverError(c, err)
		return
	}

	h.render(c, http.StatusOK, "profil.html", gin.H{"Account": account, "Requests": requests})
}

func (h *Handler) loadAnimal(c *gin.Context) (*animalModel.Animal, bool) {
	id, ok := parseID(c)
	if !ok {
		h.NotFound(c)
		return nil, false
	}

	animal, err := h.animals.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, animalModel.ErrAnimalNotFound) {
			h.NotFound(c)
		} else {
			h.serverError(c, err)
		}
		return nil, false
	}
	return animal, true
}

func (h *Handler) renderDetail(c *gin.Context, status int, animal *animalModel.Animal, form adoptionModel.SubmitRequest, fields map[string]string, formError string) {
	h.render(c, status, "detail_animal.html", gin.H{
		"Animal":          animalModel.ToAnimalResponse(animal, h.animals.PhotoURL(animal)),
		"Form":            form,
		"Errors":          fields,
		"FormError":       formError,
		"HousingTypes":    adoptionModel.HousingTypeChoices(),
		"HousingStatuses": adoptionModel.HousingStatusChoices(),
		"Availabilities":  adoptionModel.AvailabilityChoices(),
	})
}

func animalPath(id int64) string {
	return fmt.Sprintf("/animal/%d/", id)
}
