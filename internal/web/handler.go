package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	accountService "unispattes/internal/domains/account/service"
	adoptionModel "unispattes/internal/domains/adoption/model"
	adoptionService "unispattes/internal/domains/adoption/service"
	animalService "unispattes/internal/domains/animal/service"
	"unispattes/internal/shared/middleware"
	"unispattes/internal/shared/session"
)

// Flash codes carried across a redirect.
const (
	flashSubmitted  = "adoption_submitted"
	flashRegistered = "registered"
	flashWelcome    = "welcome"
	flashLoggedOut  = "logged_out"
)

const (
	msgRegistered = "Inscription réussie ! Bienvenue sur UniSpattes."
	msgLoggedOut  = "Vous avez été déconnecté avec succès."
)

// Handler serves the public HTML pages and the account forms.
type Handler struct {
	animals   animalService.ServiceInterface
	adoptions adoptionService.ServiceInterface
	accounts  accountService.ServiceInterface
	sessions  *session.Manager
}

func NewHandler(
	animals animalService.ServiceInterface,
	adoptions adoptionService.ServiceInterface,
	accounts accountService.ServiceInterface,
	sessions *session.Manager,
) *Handler {
	return &Handler{animals: animals, adoptions: adoptions, accounts: accounts, sessions: sessions}
}

// RegisterRoutes mounts the public site.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/", h.Home)
	r.GET("/nos-animaux/", h.Animals)
	r.GET("/animal/:id/", h.AnimalDetail)
	r.POST("/animal/:id/", middleware.RequireLogin(), h.SubmitRequest)
	r.GET("/a-propos/", h.About)

	compte := r.Group("/compte")
	{
		compte.GET("/inscription/", h.RegisterForm)
		compte.POST("/inscription/", h.Register)
		compte.GET("/connexion/", h.LoginForm)
		compte.POST("/connexion/", h.Login)
		compte.GET("/deconnexion/", middleware.RequireLogin(), h.Logout)
		compte.POST("/deconnexion/", middleware.RequireLogin(), h.Logout)
		compte.GET("/profil/", middleware.RequireLogin(), h.Profile)
	}
}

type flash struct {
	Level   string
	Message string
}

func (h *Handler) popFlash(c *gin.Context, principal *session.Principal) *flash {
	switch h.sessions.PopFlash(c) {
	case flashSubmitted:
		return &flash{Level: "success", Message: adoptionModel.MsgSubmitted}
	case flashRegistered:
		return &flash{Level: "success", Message: msgRegistered}
	case flashWelcome:
		if principal != nil {
			return &flash{Level: "success", Message: "Bienvenue " + principal.FirstName + " !"}
		}
	case flashLoggedOut:
		return &flash{Level: "info", Message: msgLoggedOut}
	}
	return nil
}

func (h *Handler) render(c *gin.Context, status int, page string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if _, ok := data["Errors"]; !ok {
		data["Errors"] = map[string]string{}
	}
	principal := middleware.CurrentPrincipal(c)
	data["User"] = principal
	data["Flash"] = h.popFlash(c, principal)
	data["Path"] = c.Request.URL.Path
	c.HTML(status, page, data)
}

// RenderError renders the 404 or 500 page. Used by NoRoute and the recovery middleware.
func (h *Handler) RenderError(c *gin.Context, status int) {
	page := "500.html"
	if status == http.StatusNotFound {
		page = "404.html"
	}
	h.render(c, status, page, nil)
}

func (h *Handler) NotFound(c *gin.Context) {
	h.RenderError(c, http.StatusNotFound)
}

func (h *Handler) serverError(c *gin.Context, err error) {
	log.Error().
		Err(err).
		Str("request_id", c.GetString(middleware.RequestIDKey)).
		Str("path", c.Request.URL.Path).
		Msg("Page failed")
	h.RenderError(c, http.StatusInternalServerError)
}

// fieldErrors flattens ozzo errors into field -> message for the templates.
func fieldErrors(err error) (map[string]string, bool) {
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return nil, false
	}
	out := make(map[string]string, len(verrs))
	for field, e := range verrs {
		out[field] = e.Error()
	}
	return out, true
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
