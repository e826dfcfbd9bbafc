package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"pims/query"
	"pims/utils"
)

type DashboardController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewDashboardController(db *gorm.DB, logger *log.Logger) *DashboardController {
	return &DashboardController{
		DB:     db,
		Logger: logger,
	}
}

// GetOverview returns the dashboard aggregation, recomputed from current
// store state on every call.
func (dc *DashboardController) GetOverview(c *fiber.Ctx) error {
	overview, err := query.BuildOverview(dc.DB)
	if err != nil {
		return utils.ServerError(c, "Failed to build dashboard overview", err)
	}
	return c.JSON(utils.SuccessResponse(overview))
}
