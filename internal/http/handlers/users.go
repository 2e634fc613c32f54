package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/geocoder89/accounthub/internal/account"
	"github.com/geocoder89/accounthub/internal/config"
	"github.com/geocoder89/accounthub/internal/domain/user"
	"github.com/geocoder89/accounthub/internal/http/middlewares"
	"github.com/geocoder89/accounthub/internal/observability"
	"github.com/geocoder89/accounthub/internal/security"
	"github.com/gin-gonic/gin"
)

type AccountService interface {
	Register(ctx context.Context, in account.RegisterInput) error
	Authenticate(ctx context.Context, email string, secret security.Secret) (string, error)
	Profile(ctx context.Context, email string) (user.Profile, error)
	UpdateProfile(ctx context.Context, email string, patch user.ProfilePatch) error
	ListAll(ctx context.Context) ([]user.User, error)
}

type UsersHandler struct {
	svc  AccountService
	prom *observability.Prom
}

func NewUsersHandler(svc AccountService, prom *observability.Prom) *UsersHandler {
	return &UsersHandler{
		svc:  svc,
		prom: prom,
	}
}

// The passwordHash field carries the plaintext secret on the way in; the name
// is a wire-compatibility artifact. It becomes a security.Secret immediately.
type RegisterRequest struct {
	Name         string `json:"name"`
	LastName     string `json:"lastName"`
	Username     string `json:"username"`
	Email        string `json:"email" binding:"required"`
	PasswordHash string `json:"passwordHash" binding:"required"`
}

type LoginRequest struct {
	Email        string `json:"email" binding:"required"`
	PasswordHash string `json:"passwordHash" binding:"required"`
}

// Username is bound for wire compatibility but is not updatable.
type UpdateRequest struct {
	Name     string  `json:"name" binding:"required"`
	LastName string  `json:"lastName" binding:"required"`
	Username string  `json:"username" binding:"required"`
	City     *string `json:"city"`
	Country  *string `json:"country"`
	State    *string `json:"state"`
}

func (h *UsersHandler) Register(ctx *gin.Context) {
	var req RegisterRequest

	if !BindJSON(ctx, &req, "Invalid request. Name, Email, and Password are required.") {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	err := h.svc.Register(cctx, account.RegisterInput{
		Email:    req.Email,
		Secret:   security.Secret(req.PasswordHash),
		Name:     req.Name,
		LastName: req.LastName,
		Username: req.Username,
	})

	if err != nil {
		switch {
		case errors.Is(err, account.ErrInvalidInput):
			RespondBadRequest(ctx, "Invalid request. Name, Email, and Password are required.")
		case errors.Is(err, user.ErrEmailTaken):
			RespondBadRequest(ctx, "Email is already in use.")
		default:
			RespondInternal(ctx, "Could not register user.")
		}
		return
	}

	RespondMessage(ctx, http.StatusOK, "User registered successfully!")
}

func (h *UsersHandler) Login(ctx *gin.Context) {
	var req LoginRequest

	if !BindJSON(ctx, &req, "Invalid login request.") {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	token, err := h.svc.Authenticate(cctx, req.Email, security.Secret(req.PasswordHash))

	if err != nil {
		switch {
		case errors.Is(err, account.ErrInvalidInput):
			h.countLogin("invalid")
			RespondBadRequest(ctx, "Invalid login request.")
		case errors.Is(err, user.ErrNotFound):
			// Deliberately distinct from a bad password: the client redirects
			// unknown emails to registration.
			h.countLogin("not_found")
			RespondNotFound(ctx, "User not found")
		case errors.Is(err, account.ErrInvalidCredentials):
			h.countLogin("bad_password")
			RespondUnauthorized(ctx, "Invalid credentials.")
		default:
			RespondInternal(ctx, "Could not log in.")
		}
		return
	}

	h.countLogin("ok")

	ctx.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *UsersHandler) Me(ctx *gin.Context) {
	email, _ := middlewares.EmailFromContext(ctx)

	cctx, cancel := config.WithTimeout(2 * time.Second)

	defer cancel()

	profile, err := h.svc.Profile(cctx, email)

	if err != nil {
		switch {
		case errors.Is(err, account.ErrUnauthorized):
			RespondUnauthorized(ctx, "Unauthorized request.")
		case errors.Is(err, user.ErrNotFound):
			RespondNotFound(ctx, "User not found.")
		default:
			RespondInternal(ctx, "Could not load profile.")
		}
		return
	}

	ctx.JSON(http.StatusOK, profile)
}

func (h *UsersHandler) UpdateMe(ctx *gin.Context) {
	email, _ := middlewares.EmailFromContext(ctx)

	var req UpdateRequest

	if !BindJSON(ctx, &req, "Invalid request body.") {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	err := h.svc.UpdateProfile(cctx, email, user.ProfilePatch{
		Name:     &req.Name,
		LastName: &req.LastName,
		City:     req.City,
		Country:  req.Country,
		State:    req.State,
	})

	if err != nil {
		switch {
		case errors.Is(err, account.ErrUnauthorized):
			RespondUnauthorized(ctx, "Unauthorized request.")
		case errors.Is(err, user.ErrNotFound):
			RespondNotFound(ctx, "User not found.")
		default:
			RespondInternal(ctx, "Could not update profile.")
		}
		return
	}

	RespondMessage(ctx, http.StatusOK, "Profile updated successfully!")
}

func (h *UsersHandler) List(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	users, err := h.svc.ListAll(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not list users.")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"users": users})
}

func (h *UsersHandler) countLogin(outcome string) {
	if h.prom != nil {
		h.prom.LoginsTotal.WithLabelValues(outcome).Inc()
	}
}
