package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"pims/models"
	"pims/utils"
)

type ClientController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewClientController(db *gorm.DB, logger *log.Logger) *ClientController {
	return &ClientController{
		DB:     db,
		Logger: logger,
	}
}

type clientInput struct {
	Name   string `json:"name" validate:"required,max=100"`
	Status string `json:"status" validate:"omitempty,oneof=active inactive hot"`
}

// CreateClient creates a client stamped with the acting principal.
func (cc *ClientController) CreateClient(c *fiber.Ctx) error {
	principal, err := actingPrincipal(c)
	if err != nil {
		return authenticationRequired(c, err)
	}

	var input clientInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidation, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidation, "Validation failed", err)
	}

	client := models.Client{
		Name:   input.Name,
		Status: input.Status,
	}
	if client.Status == "" {
		client.Status = models.ClientStatusActive
	}
	client.StampCreate(principal.Username)

	if err := cc.DB.Create(&client).Error; err != nil {
		return utils.ServerError(c, "Failed to create client", err)
	}
	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(client))
}

// GetClients lists clients, optionally narrowed to one status.
func (cc *ClientController) GetClients(c *fiber.Ctx) error {
	query := cc.DB.Model(&models.Client{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var clients []models.Client
	if err := query.Order("id").Find(&clients).Error; err != nil {
		return utils.ServerError(c, "Failed to fetch clients", err)
	}
	return c.JSON(utils.SuccessResponse(clients))
}

func (cc *ClientController) GetClient(c *fiber.Ctx) error {
	var client models.Client
	if err := cc.DB.First(&client, utils.ParseUint(c.Params("id"))).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNotFound, "Client not found", nil)
	}
	return c.JSON(utils.SuccessResponse(client))
}

func (cc *ClientController) UpdateClient(c *fiber.Ctx) error {
	principal, err := actingPrincipal(c)
	if err != nil {
		return authenticationRequired(c, err)
	}

	var client models.Client
	if err := cc.DB.First(&client, utils.ParseUint(c.Params("id"))).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNotFound, "Client not found", nil)
	}

	var input clientInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidation, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidation, "Validation failed", err)
	}

	client.Name = input.Name
	if input.Status != "" {
		client.Status = input.Status
	}
	client.StampUpdate(principal.Username)

	if err := cc.DB.Save(&client).Error; err != nil {
		return utils.ServerError(c, "Failed to update client", err)
	}
	return c.JSON(utils.SuccessResponse(client))
}

// DeleteClient removes the client and cascades over its projects,
// credentials, activity logs and assignments in one transaction.
func (cc *ClientController) DeleteClient(c *fiber.Ctx) error {
	if _, err := actingPrincipal(c); err != nil {
		return authenticationRequired(c, err)
	}

	var client models.Client
	if err := cc.DB.First(&client, utils.ParseUint(c.Params("id"))).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNotFound, "Client not found", nil)
	}

	if err := models.DeleteClientCascade(cc.DB, client.ID); err != nil {
		return utils.ServerError(c, "Failed to delete client", err)
	}

	cc.Logger.Printf("deleted client %d and its dependent projects", client.ID)
	return c.JSON(utils.SuccessResponse(fiber.Map{"deleted": client.ID}))
}
