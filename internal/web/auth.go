package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	accountModel "unispattes/internal/domains/account/model"
	"unispattes/internal/shared/middleware"
)

func (h *Handler) RegisterForm(c *gin.Context) {
	if middleware.CurrentPrincipal(c) != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}
	h.render(c, http.StatusOK, "inscription.html", gin.H{"Form": accountModel.RegisterRequest{}})
}

// Register creates the account and signs it in straight away.
func (h *Handler) Register(c *gin.Context) {
	if middleware.CurrentPrincipal(c) != nil {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	var form accountModel.RegisterRequest
	_ = c.ShouldBind(&form)

	account, err := h.accounts.Register(c.Request.Context(), form)
	if err != nil {
		form.Password1, form.Password2 = "", ""
		if fields, ok := fieldErrors(err); ok {
			h.render(c, http.StatusBadRequest, "inscription.html", gin.H{"Form": form, "Errors": fields})
			return
		}
		h.serverError(c, err)
		return
	}

	if err := h.sessions.Start(c, account.ID); err != nil {
		h.serverError(c, err)
		return
	}
	h.sessions.SetFlash(c, flashRegistered)
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) LoginForm(c *gin.Context) {
	next := c.Query("next")
	if middleware.CurrentPrincipal(c) != nil {
		c.Redirect(http.StatusFound, safeNext(next))
		return
	}
	h.render(c, http.StatusOK, "connexion.html", gin.H{"Form": accountModel.LoginRequest{}, "Next": next})
}

// Login never says whether the email or the password was wrong.
func (h *Handler) Login(c *gin.Context) {
	var form accountModel.LoginRequest
	_ = c.ShouldBind(&form)
	next := c.PostForm("next")
	if next == "" {
		next = c.Query("next")
	}

	account, err := h.accounts.Login(c.Request.Context(), form, c.ClientIP())
	if err != nil {
		form.Password = ""
		data := gin.H{"Form": form, "Next": next}

		if fields, ok := fieldErrors(err); ok {
			data["Errors"] = fields
			h.render(c, http.StatusBadRequest, "connexion.html", data)
			return
		}

		var accountErr *accountModel.AccountError
		switch {
		case errors.Is(err, accountModel.ErrInvalidCredentials), errors.Is(err, accountModel.ErrAccountLocked):
			message := accountModel.MsgInvalidCredentials
			if errors.As(err, &accountErr) {
				message = accountErr.Message
			}
			data["FormError"] = message
			h.render(c, http.StatusUnauthorized, "connexion.html", data)
		default:
			h.serverError(c, err)
		}
		return
	}

	if err := h.sessions.Start(c, account.ID); err != nil {
		h.serverError(c, err)
		return
	}
	h.sessions.SetFlash(c, flashWelcome)
	c.Redirect(http.StatusSeeOther, safeNext(next))
}

func (h *Handler) Logout(c *gin.Context) {
	h.sessions.Destroy(c)
	h.sessions.SetFlash(c, flashLoggedOut)
	c.Redirect(http.StatusSeeOther, "/")
}

func safeNext(next string) string {
	if middleware.IsSafeNext(next) {
		return next
	}
	return "/"
}
