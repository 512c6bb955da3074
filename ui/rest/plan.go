package rest

import (
	"github.com/gofiber/fiber/v2"
	domainPlan "github.com/studibuch/riona/domains/plan"
	"github.com/studibuch/riona/pkg/utils"
)

type Plan struct {
	Service domainPlan.IPlanUsecase
}

func InitRestPlan(app fiber.Router, service domainPlan.IPlanUsecase) Plan {
	rest := Plan{Service: service}
	app.Get("/plan", rest.List)
	app.Post("/plan/topic-post", rest.CreateTopicPost)
	app.Post("/plan/refresh", rest.Refresh)
	app.Put("/plan/:id/schedule", rest.UpdateSchedule)
	app.Put("/plan/:id/engagement", rest.UpdateEngagement)
	return rest
}

func (controller *Plan) List(c *fiber.Ctx) error {
	plan, err := controller.Service.List(c.UserContext())
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success fetch content plan",
		Results: plan,
	})
}

func (controller *Plan) CreateTopicPost(c *fiber.Ctx) error {
	var request domainPlan.CreateTopicPostRequest
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)

	post, err := controller.Service.CreateTopicPost(c.UserContext(), request)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success create topic post",
		Results: post,
	})
}

func (controller *Plan) Refresh(c *fiber.Ctx) error {
	added, err := controller.Service.RefreshFromArticles(c.UserContext())
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success refresh content plan",
		Results: map[string]int{"added": added},
	})
}

func (controller *Plan) UpdateSchedule(c *fiber.Ctx) error {
	var request domainPlan.UpdateScheduleRequest
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)
	request.PostID = c.Params("id")

	post, err := controller.Service.UpdatePostSchedule(c.UserContext(), request)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success update post schedule",
		Results: post,
	})
}

func (controller *Plan) UpdateEngagement(c *fiber.Ctx) error {
	var request domainPlan.UpdateEngagementRequest
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)
	request.PostID = c.Params("id")

	post, err := controller.Service.UpdatePostEngagement(c.UserContext(), request)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success update post engagement",
		Results: post,
	})
}
