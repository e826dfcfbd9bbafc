package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"pims/models"
	"pims/utils"
)

type ActivityController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewActivityController(db *gorm.DB, logger *log.Logger) *ActivityController {
	return &ActivityController{
		DB:     db,
		Logger: logger,
	}
}

type activityInput struct {
	ProjectID    uint   `json:"project_id" validate:"required"`
	Status       string `json:"status" validate:"omitempty,oneof=started paused resumed completed on-hold"`
	ActivityFrom string `json:"activity_from" validate:"omitempty,datetime=2006-01-02"`
	ActivityTo   string `json:"activity_to" validate:"omitempty,datetime=2006-01-02"`
	Remarks      string `json:"remarks"`
}

func (ac *ActivityController) CreateActivity(c *fiber.Ctx) error {
	principal, err := actingPrincipal(c)
	if err != nil {
		return authenticationRequired(c, err)
	}

	var input activityInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidation, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidation, "Validation failed", err)
	}

	var project models.Project
	if err := ac.DB.First(&project, input.ProjectID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNotFound, "Project not found", nil)
	}

	activity := models.ProjectActivity{
		ProjectID: input.ProjectID,
		Status:    utils.OptionalString(input.Status),
		Remarks:   utils.OptionalString(input.Remarks),
	}
	activity.ActivityFrom, _ = utils.ParseDate(input.ActivityFrom)
	activity.ActivityTo, _ = utils.ParseDate(input.ActivityTo)
	activity.StampCreate(principal.Username)

	if err := ac.DB.Create(&activity).Error; err != nil {
		return utils.ServerError(c, "Failed to create activity", err)
	}
	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(activity))
}

func (ac *ActivityController) GetActivities(c *fiber.Ctx) error {
	query := ac.DB.Preload("Project")
	if projectID := c.Query("project_id"); projectID != "" {
		query = query.Where("project_id = ?", utils.ParseUint(projectID))
	}

	var activities []models.ProjectActivity
	if err := query.Order("id").Find(&activities).Error; err != nil {
		return utils.ServerError(c, "Failed to fetch activities", err)
	}
	return c.JSON(utils.SuccessResponse(activities))
}

func (ac *ActivityController) GetActivity(c *fiber.Ctx) error {
	var activity models.ProjectActivity
	err := ac.DB.Preload("Project").First(&activity, utils.ParseUint(c.Params("id"))).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNotFound, "Activity not found", nil)
	}
	return c.JSON(utils.SuccessResponse(activity))
}

func (ac *ActivityController) UpdateActivity(c *fiber.Ctx) error {
	principal, err := actingPrincipal(c)
	if err != nil {
		return authenticationRequired(c, err)
	}

	var activity models.ProjectActivity
	if err := ac.DB.First(&activity, utils.ParseUint(c.Params("id"))).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNotFound, "Activity not found", nil)
	}

	var input activityInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidation, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidation, "Validation failed", err)
	}

	var project models.Project
	if err := ac.DB.First(&project, input.ProjectID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNotFound, "Project not found", nil)
	}

	activity.ProjectID = input.ProjectID
	activity.Status = utils.OptionalString(input.Status)
	activity.Remarks = utils.OptionalString(input.Remarks)
	activity.ActivityFrom, _ = utils.ParseDate(input.ActivityFrom)
	activity.ActivityTo, _ = utils.ParseDate(input.ActivityTo)
	activity.StampUpdate(principal.Username)

	if err := ac.DB.Save(&activity).Error; err != nil {
		return utils.ServerError(c, "Failed to update activity", err)
	}
	return c.JSON(utils.SuccessResponse(activity))
}

func (ac *ActivityController) DeleteActivity(c *fiber.Ctx) error {
	if _, err := actingPrincipal(c); err != nil {
		return authenticationRequired(c, err)
	}

	var activity models.ProjectActivity
	if err := ac.DB.First(&activity, utils.ParseUint(c.Params("id"))).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNotFound, "Activity not found", nil)
	}

	if err := ac.DB.Delete(&activity).Error; err != nil {
		return utils.ServerError(c, "Failed to delete activity", err)
	}
	return c.JSON(utils.SuccessResponse(fiber.Map{"deleted": activity.ID}))
}
