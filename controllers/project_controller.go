package controller

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"pims/models"
	"pims/query"
	"pims/utils"
)

type ProjectController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewProjectController(db *gorm.DB, logger *log.Logger) *ProjectController {
	return &ProjectController{
		DB:     db,
		Logger: logger,
	}
}

type credentialPair struct {
	Key   string `json:"key" validate:"omitempty,max=100"`
	Value string `json:"value"`
}

type projectInput struct {
	Name            string           `json:"name" validate:"required,max=100"`
	ClientID        uint             `json:"client_id" validate:"required"`
	Type            string           `json:"type" validate:"required,oneof=internal client freelance"`
	Status          string           `json:"status" validate:"omitempty,oneof=active inactive hot dead"`
	StartDate       string           `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate         string           `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	HostingProvider string           `json:"hosting_provider" validate:"omitempty,max=100"`
	GithubRepo      string           `json:"github_repo" validate:"omitempty,url"`
	LiveURL         string           `json:"live_url" validate:"omitempty,url"`
	Description     string           `json:"description"`
	TeamIDs         []uint           `json:"team_ids"`
	Credentials     []credentialPair `json:"credentials" validate:"dive"`
}

// applyInput copies validated request fields onto the model. Dates were
// already format-checked by the validator.
func (pc *ProjectController) applyInput(project *models.Project, input *projectInput) {
	project.Name = input.Name
	project.ClientID = input.ClientID
	project.Type = input.Type
	project.Status = utils.OptionalString(input.Status)
	project.StartDate, _ = utils.ParseDate(input.StartDate)
	project.EndDate, _ = utils.ParseDate(input.EndDate)
	project.HostingProvider = utils.OptionalString(input.HostingProvider)
	project.GithubRepo = utils.OptionalString(input.GithubRepo)
	project.LiveURL = utils.OptionalString(input.LiveURL)
	project.Description = utils.OptionalString(input.Description)
}

// loadTeams resolves the requested team ids, failing when any id is unknown.
func (pc *ProjectController) loadTeams(ids []uint) ([]models.Team, error) {
	var teams []models.Team
	if len(ids) == 0 {
		return teams, nil
	}
	if err := pc.DB.Where("id IN ?", ids).Find(&teams).Error; err != nil {
		return nil, err
	}
	if len(teams) != len(ids) {
		return nil, gorm.ErrRecordNotFound
	}
	return teams, nil
}

// CreateProject creates a project, its optional team links and any inline
// credentials (blank key/value pairs are skipped, as the add form does).
func (pc *ProjectController) CreateProject(c *fiber.Ctx) error {
	principal, err := actingPrincipal(c)
	if err != nil {
		return authenticationRequired(c, err)
	}

	var input projectInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidation, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidation, "Validation failed", err)
	}

	var client models.Client
	if err := pc.DB.First(&client, input.ClientID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNotFound, "Client not found", nil)
	}

	teams, err := pc.loadTeams(input.TeamIDs)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNotFound, "One or more teams not found", nil)
		}
		return utils.ServerError(c, "Failed to resolve teams", err)
	}

	var project models.Project
	pc.applyInput(&project, &input)
	project.StampCreate(principal.Username)

	err = pc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&project).Error; err != nil {
			return err
		}
		if len(teams) > 0 {
			if err := tx.Model(&project).Association("Teams").Append(teams); err != nil {
				return err
			}
		}
		for _, pair := range input.Credentials {
			key := strings.TrimSpace(pair.Key)
			value := strings.TrimSpace(pair.Value)
			if key == "" || value == "" {
				continue
			}
			credential := models.ProjectCredential{
				ProjectID: project.ID,
				Key:       key,
				Value:     value,
			}
			credential.StampCreate(principal.Username)
			if err := tx.Create(&credential).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return utils.ServerError(c, "Failed to create project", err)
	}

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(project))
}

// parseProjectFilter builds the typed filter from request query parameters.
func parseProjectFilter(c *fiber.Ctx) (query.ProjectFilter, error) {
	filter := query.ProjectFilter{
		Status:  c.Query("status"),
		Type:    c.Query("type"),
		Client:  c.Query("client"),
		Hosting: c.Query("hosting"),
	}

	if v := c.Query("start_year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return filter, fmt.Errorf("start_year must be a number")
		}
		filter.StartYear = &year
	}
	if v := c.Query("github"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return filter, fmt.Errorf("github must be a boolean")
		}
		filter.Github = &b
	}
	if v := c.Query("deployed"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return filter, fmt.Errorf("deployed must be a boolean")
		}
		filter.Deployed = &b
	}

	var err error
	if filter.StartDateFrom, err = utils.ParseDate(c.Query("start_date")); err != nil {
		return filter, fmt.Errorf("start_date must be a date in YYYY-MM-DD format")
	}
	if filter.EndDateUntil, err = utils.ParseDate(c.Query("end_date")); err != nil {
		return filter, fmt.Errorf("end_date must be a date in YYYY-MM-DD format")
	}
	return filter, nil
}

// GetProjects lists projects with the composable conjunctive filters applied.
func (pc *ProjectController) GetProjects(c *fiber.Ctx) error {
	filter, err := parseProjectFilter(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidation, err.Error(), nil)
	}

	var projects []models.Project
	if err := pc.DB.Preload("Client").Preload("Teams").Order("id").Find(&projects).Error; err != nil {
		return utils.ServerError(c, "Failed to fetch projects", err)
	}

	return c.JSON(utils.SuccessResponse(filter.Apply(projects)))
}

func (pc *ProjectController) GetProject(c *fiber.Ctx) error {
	var project models.Project
	err := pc.DB.Preload("Client").Preload("Teams").
		First(&project, utils.ParseUint(c.Params("id"))).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNotFound, "Project not found", nil)
	}
	return c.JSON(utils.SuccessResponse(project))
}

func (pc *ProjectController) UpdateProject(c *fiber.Ctx) error {
	principal, err := actingPrincipal(c)
	if err != nil {
		return authenticationRequired(c, err)
	}

	var project models.Project
	if err := pc.DB.First(&project, utils.ParseUint(c.Params("id"))).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNotFound, "Project not found", nil)
	}

	var input projectInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidation, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidation, "Validation failed", err)
	}

	var client models.Client
	if err := pc.DB.First(&client, input.ClientID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNotFound, "Client not found", nil)
	}

	teams, err := pc.loadTeams(input.TeamIDs)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNotFound, "One or more teams not found", nil)
		}
		return utils.ServerError(c, "Failed to resolve teams", err)
	}

	pc.applyInput(&project, &input)
	project.StampUpdate(principal.Username)

	err = pc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&project).Error; err != nil {
			return err
		}
		if input.TeamIDs != nil {
			return tx.Model(&project).Association("Teams").Replace(teams)
		}
		return nil
	})
	if err != nil {
		return utils.ServerError(c, "Failed to update project", err)
	}

	return c.JSON(utils.SuccessResponse(project))
}

// DeleteProject cascades over credentials, activity logs, assignments and
// team links in one transaction.
func (pc *ProjectController) DeleteProject(c *fiber.Ctx) error {
	if _, err := actingPrincipal(c); err != nil {
		return authenticationRequired(c, err)
	}

	var project models.Project
	if err := pc.DB.First(&project, utils.ParseUint(c.Params("id"))).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNotFound, "Project not found", nil)
	}

	err := pc.DB.Transaction(func(tx *gorm.DB) error {
		return models.DeleteProjectCascade(tx, project.ID)
	})
	if err != nil {
		return utils.ServerError(c, "Failed to delete project", err)
	}

	pc.Logger.Printf("deleted project %d and its dependents", project.ID)
	return c.JSON(utils.SuccessResponse(fiber.Map{"deleted": project.ID}))
}
