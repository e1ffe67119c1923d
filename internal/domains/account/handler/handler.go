package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"unispattes/internal/domains/account/model"
	"unispattes/internal/domains/account/service"
	"unispattes/internal/shared/response"
)

// AccountHandler serves the staff account API.
type AccountHandler struct {
	accountService service.ServiceInterface
}

func NewAccountHandler(accountService service.ServiceInterface) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// List GET /admin/utilisateurs
func (h *AccountHandler) List(c *gin.Context) {
	var filter model.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Paramètres de recherche invalides")
		return
	}
	filter.Normalize()

	accounts, total, err := h.accountService.List(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, accounts, response.NewMeta(filter.Page, filter.Limit, total))
}

// Unlock POST /admin/utilisateurs/:id/deverrouiller
func (h *AccountHandler) Unlock(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.NotFound(c, "Utilisateur introuvable")
		return
	}

	if err := h.accountService.Unlock(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id, "compte_verrouille": false})
}

func (h *AccountHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrAccountNotFound):
		response.NotFound(c, "Utilisateur introuvable")
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("account handler error")
		response.InternalServerError(c, "Erreur interne du serveur")
	}
}
