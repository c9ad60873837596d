package handlers

import (
	"errors"
	"strings"

	"libralend/internal/config"
	"libralend/internal/core/services"
	"libralend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
	}
}

// RefreshRequest represents a token refresh request body
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Login handles staff login
// @Summary Login staff user
// @Tags Auth
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req services.LoginInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.Username = strings.TrimSpace(req.Username)
	if err := validate.Struct(&req); err != nil {
		return response.UnprocessableEntity(c, validationMessage(err))
	}

	result, err := h.authService.Login(&req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			return response.Unauthorized(c, "Invalid username or password")
		case errors.Is(err, services.ErrUserInactive):
			return response.Forbidden(c, "User account is inactive")
		default:
			return response.InternalServerError(c, "Failed to login")
		}
	}

	return response.Success(c, "Login successful", result)
}

// RefreshToken handles token refresh
// @Summary Refresh access token
// @Tags Auth
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return response.UnprocessableEntity(c, validationMessage(err))
	}

	result, err := h.authService.Refresh(req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTokenRevoked):
			return response.Unauthorized(c, "Refresh token revoked, please login again")
		case errors.Is(err, services.ErrInvalidToken):
			return response.Unauthorized(c, "Invalid refresh token")
		case errors.Is(err, services.ErrUserInactive):
			return response.Forbidden(c, "User account is inactive")
		default:
			return response.InternalServerError(c, "Failed to refresh token")
		}
	}

	return response.Success(c, "Token refreshed successfully", result)
}

// Logout revokes every refresh token of the authenticated user
// @Summary Logout staff user
// @Tags Auth
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	h.authService.Logout(userID)
	return response.Success(c, "Logged out successfully", nil)
}

// CreateUser registers a new staff account
// @Summary Create staff user
// @Tags Auth
// @Security BearerAuth
// @Router /auth/users [post]
func (h *AuthHandler) CreateUser(c *fiber.Ctx) error {
	var req services.CreateUserInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.Username = strings.TrimSpace(req.Username)
	if err := validate.Struct(&req); err != nil {
		return response.UnprocessableEntity(c, validationMessage(err))
	}

	user, err := h.authService.CreateUser(&req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserAlreadyExists):
			return response.Conflict(c, "Username already exists")
		default:
			return response.InternalServerError(c, "Failed to create user")
		}
	}

	return response.Created(c, "User created successfully", user)
}

// Me returns the current user info
// @Summary Get current user
// @Tags Auth
// @Security BearerAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	username, _ := c.Locals("username").(string)
	role, _ := c.Locals("role").(string)

	return response.Success(c, "User retrieved successfully", services.UserResponse{
		ID:       userID,
		Username: username,
		Role:     role,
	})
}
