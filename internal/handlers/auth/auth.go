package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator"
	"github.com/maisonshop/backend/internal/domain"
	"github.com/maisonshop/backend/internal/dto"
	"github.com/maisonshop/backend/internal/service/authservice"
	pkgauth "github.com/maisonshop/backend/pkg/auth"
	"github.com/maisonshop/backend/pkg/utils"
)

type Service interface {
	Register(ctx context.Context, email, password string, fullName, phone *string) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	VerifyToken(ctx context.Context, token string) (*domain.User, error)
	GenerateToken(user *domain.User) (string, error)
}

type AuthHandler struct {
	authService Service
	validate    *validator.Validate
}

func New(authService Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

func toUserDTO(user *domain.User) dto.UserDTO {
	return dto.UserDTO{
		ID:               user.ID,
		Email:            user.Email,
		FullName:         user.FullName,
		Role:             user.Role,
		TelegramID:       user.TelegramID,
		TelegramUsername: user.TelegramUsername,
	}
}

// Register godoc
//
//	@Summary		Register a new user
//	@Description	Create a user account and return a bearer token with the public user fields
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.RegisterRequestDTO	true	"Register request body"
//	@Success		200		{object}	dto.AuthResponseDTO
//	@Failure		400		{object}	utils.Response	"Missing fields or duplicate email"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Email and password required")
		return
	}
	user, err := h.authService.Register(r.Context(), req.Email, req.Password, req.FullName, req.Phone)
	if err != nil {
		if errors.Is(err, authservice.ErrEmailTaken) {
			utils.RespondWithError(w, http.StatusBadRequest, "User already exists")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	token, err := h.authService.GenerateToken(user)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error generating token")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.AuthResponseDTO{
		Token: token,
		User:  toUserDTO(user),
	})
}

// Login godoc
//
//	@Summary		Authenticate a user
//	@Description	Verify credentials and return a fresh bearer token
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.LoginRequestDTO	true	"Login request body"
//	@Success		200		{object}	dto.AuthResponseDTO
//	@Failure		400		{object}	utils.Response	"Missing fields"
//	@Failure		401		{object}	utils.Response	"Invalid credentials"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Email and password required")
		return
	}
	user, err := h.authService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, authservice.ErrInvalidCredentials) {
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	token, err := h.authService.GenerateToken(user)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error generating token")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.AuthResponseDTO{
		Token: token,
		User:  toUserDTO(user),
	})
}

// Verify godoc
//
//	@Summary		Verify a bearer token
//	@Description	Validate the X-Auth-Token header and return the current user
//	@Tags			Auth
//	@Produce		json
//	@Param			X-Auth-Token	header		string	true	"Bearer token"
//	@Success		200				{object}	dto.VerifyResponseDTO
//	@Failure		401				{object}	utils.Response	"Missing, expired or invalid token"
//	@Failure		500				{object}	utils.Response	"Internal server error"
//	@Router			/verify [get]
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get("X-Auth-Token")
	if token == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "No token provided")
		return
	}
	user, err := h.authService.VerifyToken(r.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, pkgauth.ErrTokenExpired):
			utils.RespondWithError(w, http.StatusUnauthorized, "Token expired")
		case errors.Is(err, pkgauth.ErrInvalidToken):
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
		case errors.Is(err, authservice.ErrUserNotFound):
			utils.RespondWithError(w, http.StatusUnauthorized, "User not found")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.VerifyResponseDTO{User: toUserDTO(user)})
}
