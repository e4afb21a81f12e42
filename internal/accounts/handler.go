package accounts

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"salaryscope/internal/session"
	"salaryscope/internal/shared/server/respond"
)

type Handler struct {
	Svc      *Service
	Sessions *session.Manager
}

func NewHandler(svc *Service, sessions *session.Manager) *Handler {
	return &Handler{Svc: svc, Sessions: sessions}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/signup", h.signUp)
	rg.POST("/auth/login", h.logIn)
	rg.POST("/auth/logout", h.logOut)
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	User     userBody `json:"user"`
	Redirect string   `json:"redirect"`
}

type userBody struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

func (h *Handler) signUp(c *gin.Context) {
	if h.alreadyAuthenticated(c) {
		return
	}
	req, ok := h.bindCredentials(c)
	if !ok {
		return
	}
	ident, err := h.Svc.SignUp(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			respond.Error(c, http.StatusConflict, "email_taken", "An account with this email already exists.", nil)
			return
		}
		respond.Error(c, http.StatusBadGateway, "profile_unavailable", "Could not create the account.", nil)
		return
	}
	if _, err := h.Sessions.SignIn(c, ident); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to start session", nil)
		return
	}
	respond.JSON(c, http.StatusCreated, authResponse{
		User:     userBody{ID: ident.ID, Username: ident.Username},
		Redirect: "/search",
	})
}

func (h *Handler) logIn(c *gin.Context) {
	if h.alreadyAuthenticated(c) {
		return
	}
	req, ok := h.bindCredentials(c)
	if !ok {
		return
	}
	ident, err := h.Svc.LogIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			respond.Error(c, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password.", nil)
			return
		}
		respond.Error(c, http.StatusBadGateway, "profile_unavailable", "Could not verify the account.", nil)
		return
	}
	if _, err := h.Sessions.SignIn(c, ident); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to start session", nil)
		return
	}
	respond.OK(c, authResponse{
		User:     userBody{ID: ident.ID, Username: ident.Username},
		Redirect: "/search",
	})
}

func (h *Handler) logOut(c *gin.Context) {
	_ = h.Sessions.SignOut(c)
	respond.OK(c, gin.H{"redirect": "/login"})
}

// alreadyAuthenticated short-circuits signup/login for a browser that
// already holds a live session, pointing it back at the search page.
func (h *Handler) alreadyAuthenticated(c *gin.Context) bool {
	if _, ok := h.Sessions.Current(c); !ok {
		return false
	}
	respond.OK(c, gin.H{"redirect": "/search"})
	return true
}

func (h *Handler) bindCredentials(c *gin.Context) (credentialsRequest, bool) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return credentialsRequest{}, false
	}
	req.Email = strings.TrimSpace(req.Email)
	var issues []map[string]string
	if req.Email == "" {
		issues = append(issues, map[string]string{"field": "email", "issue": "required"})
	}
	if req.Password == "" {
		issues = append(issues, map[string]string{"field": "password", "issue": "required"})
	}
	if len(issues) > 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "missing credentials", issues)
		return credentialsRequest{}, false
	}
	return req, true
}
