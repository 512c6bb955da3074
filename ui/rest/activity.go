package rest

import (
	"github.com/gofiber/fiber/v2"
	domainActivity "github.com/studibuch/riona/domains/activity"
	"github.com/studibuch/riona/pkg/utils"
)

type Activity struct {
	Log domainActivity.ILog
}

func InitRestActivity(app fiber.Router, log domainActivity.ILog) Activity {
	rest := Activity{Log: log}
	app.Get("/activities", rest.List)
	return rest
}

func (controller *Activity) List(c *fiber.Ctx) error {
	var (
		activities []domainActivity.Activity
		err        error
	)

	if kind := c.Query("kind"); kind != "" {
		activities, err = controller.Log.ListByKind(c.UserContext(), kind)
	} else {
		activities, err = controller.Log.List(c.UserContext())
	}
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success fetch activities",
		Results: activities,
	})
}
