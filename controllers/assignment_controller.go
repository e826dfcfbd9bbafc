package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"pims/models"
	"pims/utils"
)

type AssignmentController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewAssignmentController(db *gorm.DB, logger *log.Logger) *AssignmentController {
	return &AssignmentController{
		DB:     db,
		Logger: logger,
	}
}

type assignmentInput struct {
	MemberID     uint   `json:"member_id" validate:"required"`
	ProjectID    uint   `json:"project_id" validate:"required"`
	AssignedFrom string `json:"assigned_from" validate:"omitempty,datetime=2006-01-02"`
	AssignedTo   string `json:"assigned_to" validate:"omitempty,datetime=2006-01-02"`
	IsActive     *bool  `json:"is_active"`
}

// checkRefs verifies the referenced member and project exist before any row
// is written.
func (ac *AssignmentController) checkRefs(c *fiber.Ctx, input *assignmentInput) error {
	var member models.Member
	if err := ac.DB.First(&member, input.MemberID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNotFound, "Member not found", nil)
	}
	var project models.Project
	if err := ac.DB.First(&project, input.ProjectID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNotFound, "Project not found", nil)
	}
	return nil
}

func (ac *AssignmentController) CreateAssignment(c *fiber.Ctx) error {
	principal, err := actingPrincipal(c)
	if err != nil {
		return authenticationRequired(c, err)
	}

	var input assignmentInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidation, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidation, "Validation failed", err)
	}
	if err := ac.checkRefs(c, &input); err != nil {
		return err
	}

	assignment := models.MemberAssigned{
		MemberID:  input.MemberID,
		ProjectID: input.ProjectID,
		IsActive:  true,
	}
	assignment.AssignedFrom, _ = utils.ParseDate(input.AssignedFrom)
	assignment.AssignedTo, _ = utils.ParseDate(input.AssignedTo)
	if input.IsActive != nil {
		assignment.IsActive = *input.IsActive
	}
	assignment.StampCreate(principal.Username)

	if err := ac.DB.Create(&assignment).Error; err != nil {
		return utils.ServerError(c, "Failed to create assignment", err)
	}
	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(assignment))
}

func (ac *AssignmentController) GetAssignments(c *fiber.Ctx) error {
	query := ac.DB.Preload("Member").Preload("Project")
	if memberID := c.Query("member_id"); memberID != "" {
		query = query.Where("member_id = ?", utils.ParseUint(memberID))
	}
	if projectID := c.Query("project_id"); projectID != "" {
		query = query.Where("project_id = ?", utils.ParseUint(projectID))
	}

	var assignments []models.MemberAssigned
	if err := query.Order("id").Find(&assignments).Error; err != nil {
		return utils.ServerError(c, "Failed to fetch assignments", err)
	}
	return c.JSON(utils.SuccessResponse(assignments))
}

func (ac *AssignmentController) GetAssignment(c *fiber.Ctx) error {
	var assignment models.MemberAssigned
	err := ac.DB.Preload("Member").Preload("Project").
		First(&assignment, utils.ParseUint(c.Params("id"))).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNotFound, "Assignment not found", nil)
	}
	return c.JSON(utils.SuccessResponse(assignment))
}

func (ac *AssignmentController) UpdateAssignment(c *fiber.Ctx) error {
	principal, err := actingPrincipal(c)
	if err != nil {
		return authenticationRequired(c, err)
	}

	var assignment models.MemberAssigned
	if err := ac.DB.First(&assignment, utils.ParseUint(c.Params("id"))).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNotFound, "Assignment not found", nil)
	}

	var input assignmentInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidation, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidation, "Validation failed", err)
	}
	if err := ac.checkRefs(c, &input); err != nil {
		return err
	}

	assignment.MemberID = input.MemberID
	assignment.ProjectID = input.ProjectID
	assignment.AssignedFrom, _ = utils.ParseDate(input.AssignedFrom)
	assignment.AssignedTo, _ = utils.ParseDate(input.AssignedTo)
	if input.IsActive != nil {
		assignment.IsActive = *input.IsActive
	}
	assignment.StampUpdate(principal.Username)

	if err := ac.DB.Save(&assignment).Error; err != nil {
		return utils.ServerError(c, "Failed to update assignment", err)
	}
	return c.JSON(utils.SuccessResponse(assignment))
}

func (ac *AssignmentController) DeleteAssignment(c *fiber.Ctx) error {
	if _, err := actingPrincipal(c); err != nil {
		return authenticationRequired(c, err)
	}

	var assignment models.MemberAssigned
	if err := ac.DB.First(&assignment, utils.ParseUint(c.Params("id"))).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNotFound, "Assignment not found", nil)
	}

	if err := ac.DB.Delete(&assignment).Error; err != nil {
		return utils.ServerError(c, "Failed to delete assignment", err)
	}
	return c.JSON(utils.SuccessResponse(fiber.Map{"deleted": assignment.ID}))
}
