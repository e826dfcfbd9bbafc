package controller

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"pims/models"
	"pims/utils"
)

type AuthController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewAuthController(db *gorm.DB, logger *log.Logger) *AuthController {
	return &AuthController{
		DB:     db,
		Logger: logger,
	}
}

type LoginRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type AuthResponse struct {
	AccessToken  string            `json:"access_token"`
	RefreshToken string            `json:"refresh_token"`
	Principal    *models.Principal `json:"principal"`
}

// Login verifies credentials against the principal registry and issues an
// access/refresh pair. The principal payload carries id, username, names and
// the optional employee id / role attributes.
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidation, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidation, "Validation failed", err)
	}

	var principal models.Principal
	if err := ac.DB.Where("username = ?", req.Username).First(&principal).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, utils.CodeAuthFailed,
			"Invalid username or password", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(principal.PasswordHash), []byte(req.Password)); err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, utils.CodeAuthFailed,
			"Invalid username or password", nil)
	}

	if !principal.IsActive {
		return utils.ErrorResponse(c, fiber.StatusForbidden, utils.CodePermission,
			"Account is not active", nil)
	}

	accessToken, refreshToken, err := utils.GenerateTokenPair(&principal)
	if err != nil {
		return utils.ServerError(c, "Failed to generate tokens", err)
	}

	// Cookie so browser sessions reach the protected endpoints too.
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		Expires:  time.Now().Add(15 * time.Minute),
		HTTPOnly: true,
	})

	ac.Logger.Printf("principal %q logged in", principal.Username)

	return c.JSON(AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Principal:    &principal,
	})
}

// Refresh exchanges a valid refresh token for a new access token.
func (ac *AuthController) Refresh(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidation, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidation, "Validation failed", err)
	}

	accessToken, err := utils.RefreshAccessToken(ac.DB, req.RefreshToken)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, utils.CodeAuthFailed,
			"Invalid or expired refresh token", err)
	}

	return c.JSON(fiber.Map{"access_token": accessToken})
}
