package rest

import (
	"github.com/gofiber/fiber/v2"
	"github.com/studibuch/riona/config"
	"github.com/studibuch/riona/pkg/utils"
)

type Settings struct {
	Settings *config.Settings
}

func InitRestSettings(app fiber.Router, settings *config.Settings) Settings {
	rest := Settings{Settings: settings}
	app.Get("/settings/posting", rest.GetPosting)
	app.Put("/settings/posting", rest.UpdatePosting)
	app.Get("/settings/engagement", rest.GetEngagement)
	app.Put("/settings/engagement", rest.UpdateEngagement)
	return rest
}

func (controller *Settings) GetPosting(c *fiber.Ctx) error {
	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success fetch posting settings",
		Results: controller.Settings.Posting(),
	})
}

func (controller *Settings) UpdatePosting(c *fiber.Ctx) error {
	var request config.PostingSettings
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)

	updated := controller.Settings.UpdatePosting(request)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success update posting settings",
		Results: updated,
	})
}

func (controller *Settings) GetEngagement(c *fiber.Ctx) error {
	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success fetch engagement settings",
		Results: controller.Settings.Engagement(),
	})
}

func (controller *Settings) UpdateEngagement(c *fiber.Ctx) error {
	var request config.EngagementUpdate
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)

	updated := controller.Settings.UpdateEngagement(request)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success update engagement settings",
		Results: updated,
	})
}
