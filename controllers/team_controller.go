package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"pims/models"
	"pims/utils"
)

type TeamController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewTeamController(db *gorm.DB, logger *log.Logger) *TeamController {
	return &TeamController{
		DB:     db,
		Logger: logger,
	}
}

type teamInput struct {
	TeamType  string `json:"team_type" validate:"required,max=50"`
	MemberIDs []uint `json:"member_ids"`
}

func (tc *TeamController) loadMembers(ids []uint) ([]models.Member, error) {
	var members []models.Member
	if len(ids) == 0 {
		return members, nil
	}
	if err := tc.DB.Where("id IN ?", ids).Find(&members).Error; err != nil {
		return nil, err
	}
	if len(members) != len(ids) {
		return nil, gorm.ErrRecordNotFound
	}
	return members, nil
}

// CreateTeam creates a team and sets its member associations.
func (tc *TeamController) CreateTeam(c *fiber.Ctx) error {
	principal, err := actingPrincipal(c)
	if err != nil {
		return authenticationRequired(c, err)
	}

	var input teamInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidation, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidation, "Validation failed", err)
	}

	members, err := tc.loadMembers(input.MemberIDs)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNotFound, "One or more members not found", nil)
		}
		return utils.ServerError(c, "Failed to resolve members", err)
	}

	team := models.Team{TeamType: input.TeamType}
	team.StampCreate(principal.Username)

	err = tc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&team).Error; err != nil {
			return err
		}
		if len(members) > 0 {
			return tx.Model(&team).Association("Members").Append(members)
		}
		return nil
	})
	if err != nil {
		return utils.ServerError(c, "Failed to create team", err)
	}

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(team))
}

func (tc *TeamController) GetTeams(c *fiber.Ctx) error {
	var teams []models.Team
	if err := tc.DB.Preload("Members").Order("id").Find(&teams).Error; err != nil {
		return utils.ServerError(c, "Failed to fetch teams", err)
	}
	return c.JSON(utils.SuccessResponse(teams))
}

func (tc *TeamController) GetTeam(c *fiber.Ctx) error {
	var team models.Team
	if err := tc.DB.Preload("Members").First(&team, utils.ParseUint(c.Params("id"))).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNotFound, "Team not found", nil)
	}
	return c.JSON(utils.SuccessResponse(team))
}

func (tc *TeamController) UpdateTeam(c *fiber.Ctx) error {
	principal, err := actingPrincipal(c)
	if err != nil {
		return authenticationRequired(c, err)
	}

	var team models.Team
	if err := tc.DB.First(&team, utils.ParseUint(c.Params("id"))).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNotFound, "Team not found", nil)
	}

	var input teamInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidation, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidation, "Validation failed", err)
	}

	members, err := tc.loadMembers(input.MemberIDs)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNotFound, "One or more members not found", nil)
		}
		return utils.ServerError(c, "Failed to resolve members", err)
	}

	team.TeamType = input.TeamType
	team.StampUpdate(principal.Username)

	err = tc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&team).Error; err != nil {
			return err
		}
		if input.MemberIDs != nil {
			return tx.Model(&team).Association("Members").Replace(members)
		}
		return nil
	})
	if err != nil {
		return utils.ServerError(c, "Failed to update team", err)
	}

	return c.JSON(utils.SuccessResponse(team))
}

func (tc *TeamController) DeleteTeam(c *fiber.Ctx) error {
	if _, err := actingPrincipal(c); err != nil {
		return authenticationRequired(c, err)
	}

	var team models.Team
	if err := tc.DB.First(&team, utils.ParseUint(c.Params("id"))).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNotFound, "Team not found", nil)
	}

	if err := models.DeleteTeamCascade(tc.DB, team.ID); err != nil {
		return utils.ServerError(c, "Failed to delete team", err)
	}
	return c.JSON(utils.SuccessResponse(fiber.Map{"deleted": team.ID}))
}
