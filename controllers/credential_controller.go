package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"pims/models"
	"pims/utils"
)

type CredentialController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewCredentialController(db *gorm.DB, logger *log.Logger) *CredentialController {
	return &CredentialController{
		DB:     db,
		Logger: logger,
	}
}

type credentialInput struct {
	ProjectID uint   `json:"project_id" validate:"required"`
	Key       string `json:"key" validate:"required,max=100"`
	Value     string `json:"value" validate:"required"`
}

func (cc *CredentialController) CreateCredential(c *fiber.Ctx) error {
	principal, err := actingPrincipal(c)
	if err != nil {
		return authenticationRequired(c, err)
	}

	var input credentialInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidation, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidation, "Validation failed", err)
	}

	var project models.Project
	if err := cc.DB.First(&project, input.ProjectID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNotFound, "Project not found", nil)
	}

	credential := models.ProjectCredential{
		ProjectID: input.ProjectID,
		Key:       input.Key,
		Value:     input.Value,
	}
	credential.StampCreate(principal.Username)

	if err := cc.DB.Create(&credential).Error; err != nil {
		return utils.ServerError(c, "Failed to create credential", err)
	}
	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(credential))
}

func (cc *CredentialController) GetCredentials(c *fiber.Ctx) error {
	query := cc.DB.Model(&models.ProjectCredential{})
	if projectID := c.Query("project_id"); projectID != "" {
		query = query.Where("project_id = ?", utils.ParseUint(projectID))
	}

	var credentials []models.ProjectCredential
	if err := query.Order("id").Find(&credentials).Error; err != nil {
		return utils.ServerError(c, "Failed to fetch credentials", err)
	}
	return c.JSON(utils.SuccessResponse(credentials))
}

func (cc *CredentialController) GetCredential(c *fiber.Ctx) error {
	var credential models.ProjectCredential
	if err := cc.DB.First(&credential, utils.ParseUint(c.Params("id"))).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNotFound, "Credential not found", nil)
	}
	return c.JSON(utils.SuccessResponse(credential))
}

func (cc *CredentialController) UpdateCredential(c *fiber.Ctx) error {
	principal, err := actingPrincipal(c)
	if err != nil {
		return authenticationRequired(c, err)
	}

	var credential models.ProjectCredential
	if err := cc.DB.First(&credential, utils.ParseUint(c.Params("id"))).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNotFound, "Credential not found", nil)
	}

	var input credentialInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidation, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidation, "Validation failed", err)
	}

	var project models.Project
	if err := cc.DB.First(&project, input.ProjectID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNotFound, "Project not found", nil)
	}

	credential.ProjectID = input.ProjectID
	credential.Key = input.Key
	credential.Value = input.Value
	credential.StampUpdate(principal.Username)

	if err := cc.DB.Save(&credential).Error; err != nil {
		return utils.ServerError(c, "Failed to update credential", err)
	}
	return c.JSON(utils.SuccessResponse(credential))
}

func (cc *CredentialController) DeleteCredential(c *fiber.Ctx) error {
	if _, err := actingPrincipal(c); err != nil {
		return authenticationRequired(c, err)
	}

	var credential models.ProjectCredential
	if err := cc.DB.First(&credential, utils.ParseUint(c.Params("id"))).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNotFound, "Credential not found", nil)
	}

	if err := cc.DB.Delete(&credential).Error; err != nil {
		return utils.ServerError(c, "Failed to delete credential", err)
	}
	return c.JSON(utils.SuccessResponse(fiber.Map{"deleted": credential.ID}))
}
