package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"unispattes/internal/domains/adoption/model"
	"unispattes/internal/domains/adoption/service"
	animalModel "unispattes/internal/domains/animal/model"
	"unispattes/internal/shared/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AdoptionHandler serves the staff back office for adoption requests.
type AdoptionHandler struct {
	adoptionService service.ServiceInterface
}

func NewAdoptionHandler(adoptionService service.ServiceInterface) *AdoptionHandler {
	return &AdoptionHandler{adoptionService: adoptionService}
}

// List GET /admin/demandes
func (h *AdoptionHandler) List(c *gin.Context) {
	var filter model.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Paramètres de recherche invalides")
		return
	}
	if filter.Limit == 0 {
		filter.Limit = 20
	}
	filter.Normalize()

	requests, total, err := h.adoptionService.List(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, requests, response.NewMeta(filter.Page, filter.Limit, total))
}

// Export GET /admin/demandes/export
func (h *AdoptionHandler) Export(c *gin.Context) {
	var filter model.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Paramètres de recherche invalides")
		return
	}

	data, err := h.adoptionService.Export(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	filename := fmt.Sprintf("demandes_adoption_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// Get GET /admin/demandes/:id
func (h *AdoptionHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	req, err := h.adoptionService.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, req)
}

// Accept POST /admin/demandes/:id/accepter/
func (h *AdoptionHandler) Accept(c *gin.Context) {
	h.dispose(c, h.adoptionService.Accept, model.StatusAccepted)
}

// Refuse POST /admin/demandes/:id/refuser/
func (h *AdoptionHandler) Refuse(c *gin.Context) {
	h.dispose(c, h.adoptionService.Refuse, model.StatusRefused)
}

// Reset POST /admin/demandes/:id/reinitialiser/
func (h *AdoptionHandler) Reset(c *gin.Context) {
	h.dispose(c, h.adoptionService.Reset, model.StatusPending)
}

func (h *AdoptionHandler) dispose(c *gin.Context, action func(ctx context.Context, id int64) error, status model.Status) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := action(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"id":      id,
		"statut":  status,
		"traitee": status != model.StatusPending,
	})
}

// UpdateNotes PATCH /admin/demandes/:id/notes
func (h *AdoptionHandler) UpdateNotes(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.UpdateNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Corps de requête invalide")
		return
	}

	if err := h.adoptionService.UpdateNotes(c.Request.Context(), id, req); err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id, "notes_admin": req.Notes})
}

// BulkAccept POST /admin/demandes/bulk/accepter
func (h *AdoptionHandler) BulkAccept(c *gin.Context) {
	h.bulk(c, h.adoptionService.BulkAccept)
}

// BulkRefuse POST /admin/demandes/bulk/refuser
func (h *AdoptionHandler) BulkRefuse(c *gin.Context) {
	h.bulk(c, h.adoptionService.BulkRefuse)
}

// BulkReset POST /admin/demandes/bulk/reinitialiser
func (h *AdoptionHandler) BulkReset(c *gin.Context) {
	h.bulk(c, h.adoptionService.BulkReset)
}

func (h *AdoptionHandler) bulk(c *gin.Context, action func(ctx context.Context, ids []int64) (*model.BulkActionResult, error)) {
	var req model.BulkActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Corps de requête invalide")
		return
	}

	result, err := action(c.Request.Context(), req.IDs)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.NotFound(c, model.MsgRequestNotFound)
		return 0, false
	}
	return id, true
}

func (h *AdoptionHandler) handleError(c *gin.Context, err error) {
	var verrs validation.Errors
	var adoptionErr *model.AdoptionError

	switch {
	case errors.As(err, &verrs):
		response.ValidationFailed(c, verrs)

	case errors.Is(err, model.ErrRequestNotFound):
		response.NotFound(c, model.MsgRequestNotFound)

	case errors.Is(err, animalModel.ErrAnimalNotFound):
		response.NotFound(c, "Animal introuvable")

	case errors.Is(err, model.ErrAlreadyRequested),
		errors.Is(err, model.ErrAlreadyProcessed),
		errors.Is(err, model.ErrAnimalAlreadyAdopted):
		errors.As(err, &adoptionErr)
		response.Conflict(c, adoptionErr.Code, adoptionErr.Message)

	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("adoption handler error")
		response.InternalServerError(c, "Erreur interne du serveur")
	}
}
