package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"unispattes/internal/domains/animal/model"
	"unispattes/internal/domains/animal/service"
	"unispattes/internal/shared/response"
)

const maxPhotoUpload = 6 << 20

// AnimalHandler serves the staff animal-management API.
type AnimalHandler struct {
	animalService service.ServiceInterface
}

func NewAnimalHandler(animalService service.ServiceInterface) *AnimalHandler {
	return &AnimalHandler{animalService: animalService}
}

func (h *AnimalHandler) toResponse(a *model.Animal) model.AnimalResponse {
	return model.ToAnimalResponse(a, h.animalService.PhotoURL(a))
}

// List GET /admin/animaux
func (h *AnimalHandler) List(c *gin.Context) {
	var filter model.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Paramètres de recherche invalides")
		return
	}
	if filter.Limit == 0 {
		filter.Limit = 20
	}
	_ = filter.Validate()

	animals, total, err := h.animalService.List(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	items := make([]model.AnimalResponse, 0, len(animals))
	for _, a := range animals {
		items = append(items, h.toResponse(a))
	}
	response.SuccessWithMeta(c, http.StatusOK, items, response.NewMeta(filter.Page, filter.Limit, total))
}

// Get GET /admin/animaux/:id
func (h *AnimalHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	animal, err := h.animalService.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, h.toResponse(animal))
}

// Create POST /admin/animaux
func (h *AnimalHandler) Create(c *gin.Context) {
	var req model.CreateAnimalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Corps de requête invalide")
		return
	}

	animal, err := h.animalService.Create(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, h.toResponse(animal))
}

// Update PUT /admin/animaux/:id
func (h *AnimalHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.UpdateAnimalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Corps de requête invalide")
		return
	}

	animal, err := h.animalService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, h.toResponse(animal))
}

// SetAvailability PATCH /admin/animaux/:id/disponible
func (h *AnimalHandler) SetAvailability(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.SetAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Corps de requête invalide")
		return
	}
	if err := req.Validate(); err != nil {
		h.handleError(c, err)
		return
	}

	if err := h.animalService.SetAvailability(c.Request.Context(), id, *req.Available); err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id, "disponible": *req.Available})
}

// UploadPhoto POST /admin/animaux/:id/photo (multipart field "photo")
func (h *AnimalHandler) UploadPhoto(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxPhotoUpload)
	fileHeader, err := c.FormFile("photo")
	if err != nil {
		response.BadRequest(c, "Fichier \"photo\" manquant ou trop volumineux")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "Fichier illisible")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.BadRequest(c, "Fichier illisible")
		return
	}

	animal, err := h.animalService.UploadPhoto(c.Request.Context(), id, data)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, h.toResponse(animal))
}

// Delete DELETE /admin/animaux/:id
func (h *AnimalHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.animalService.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.NotFound(c, "Animal introuvable")
		return 0, false
	}
	return id, true
}

func (h *AnimalHandler) handleError(c *gin.Context, err error) {
	var verrs validation.Errors
	var animalErr *model.AnimalError

	switch {
	case errors.As(err, &verrs):
		response.ValidationFailed(c, verrs)

	case errors.Is(err, model.ErrAnimalNotFound):
		response.NotFound(c, "Animal introuvable")

	case errors.Is(err, model.ErrInvalidImage) && errors.As(err, &animalErr):
		response.ErrorResponse(c, http.StatusBadRequest, animalErr.Code, animalErr.Message)

	case errors.Is(err, model.ErrStorageUnavailable):
		response.ServiceUnavailable(c, "Le stockage des photos n'est pas configuré")

	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("animal handler error")
		response.InternalServerError(c, "Erreur interne du serveur")
	}
}
