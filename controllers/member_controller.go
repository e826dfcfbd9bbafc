package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"pims/models"
	"pims/query"
	"pims/utils"
)

type MemberController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewMemberController(db *gorm.DB, logger *log.Logger) *MemberController {
	return &MemberController{
		DB:     db,
		Logger: logger,
	}
}

type memberInput struct {
	Name string `json:"name" validate:"required,max=100"`
	Role string `json:"role" validate:"required,max=50"`
}

func (mc *MemberController) CreateMember(c *fiber.Ctx) error {
	principal, err := actingPrincipal(c)
	if err != nil {
		return authenticationRequired(c, err)
	}

	var input memberInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidation, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidation, "Validation failed", err)
	}

	member := models.Member{
		Name: input.Name,
		Role: input.Role,
	}
	member.StampCreate(principal.Username)

	if err := mc.DB.Create(&member).Error; err != nil {
		return utils.ServerError(c, "Failed to create member", err)
	}
	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(member))
}

// GetMembers lists members. status=current / status=past selects one side of
// the partition, derived fresh from assignments and project statuses.
func (mc *MemberController) GetMembers(c *fiber.Ctx) error {
	status := c.Query("status")
	if status != "" && status != "current" && status != "past" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidation,
			"status must be current or past", nil)
	}
	if status == "current" || status == "past" {
		current, past, err := query.PartitionMembers(mc.DB)
		if err != nil {
			return utils.ServerError(c, "Failed to partition members", err)
		}
		if status == "current" {
			return c.JSON(utils.SuccessResponse(current))
		}
		return c.JSON(utils.SuccessResponse(past))
	}

	var members []models.Member
	if err := mc.DB.Order("id").Find(&members).Error; err != nil {
		return utils.ServerError(c, "Failed to fetch members", err)
	}
	return c.JSON(utils.SuccessResponse(members))
}

func (mc *MemberController) GetMember(c *fiber.Ctx) error {
	var member models.Member
	err := mc.DB.Preload("Teams").Preload("Assignments").
		First(&member, utils.ParseUint(c.Params("id"))).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNotFound, "Member not found", nil)
	}
	return c.JSON(utils.SuccessResponse(member))
}

func (mc *MemberController) UpdateMember(c *fiber.Ctx) error {
	principal, err := actingPrincipal(c)
	if err != nil {
		return authenticationRequired(c, err)
	}

	var member models.Member
	if err := mc.DB.First(&member, utils.ParseUint(c.Params("id"))).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNotFound, "Member not found", nil)
	}

	var input memberInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidation, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidation, "Validation failed", err)
	}

	member.Name = input.Name
	member.Role = input.Role
	member.StampUpdate(principal.Username)

	if err := mc.DB.Save(&member).Error; err != nil {
		return utils.ServerError(c, "Failed to update member", err)
	}
	return c.JSON(utils.SuccessResponse(member))
}

func (mc *MemberController) DeleteMember(c *fiber.Ctx) error {
	if _, err := actingPrincipal(c); err != nil {
		return authenticationRequired(c, err)
	}

	var member models.Member
	if err := mc.DB.First(&member, utils.ParseUint(c.Params("id"))).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNotFound, "Member not found", nil)
	}

	if err := models.DeleteMemberCascade(mc.DB, member.ID); err != nil {
		return utils.ServerError(c, "Failed to delete member", err)
	}
	return c.JSON(utils.SuccessResponse(fiber.Map{"deleted": member.ID}))
}
