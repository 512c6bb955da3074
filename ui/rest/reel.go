package rest

import (
	"github.com/gofiber/fiber/v2"
	domainArticle "github.com/studibuch/riona/domains/article"
	domainReel "github.com/studibuch/riona/domains/reel"
	"github.com/studibuch/riona/pkg/utils"
)

type Reel struct {
	Service  domainReel.IReelUsecase
	Articles domainArticle.IStore
}

func InitRestReel(app fiber.Router, service domainReel.IReelUsecase, articles domainArticle.IStore) Reel {
	rest := Reel{Service: service, Articles: articles}
	app.Get("/articles", rest.ListArticles)
	app.Post("/reels/from-article", rest.FromArticle)
	app.Post("/reels/from-topic", rest.FromTopic)
	app.Get("/reels/status/:id", rest.Status)
	app.Delete("/reels/:post_id", rest.Delete)
	return rest
}

func (controller *Reel) ListArticles(c *fiber.Ctx) error {
	articles, err := controller.Articles.List()
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success fetch articles",
		Results: articles,
	})
}

func (controller *Reel) FromArticle(c *fiber.Ctx) error {
	var request domainReel.FromArticleRequest
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)

	result, err := controller.Service.CreateFromArticle(c.UserContext(), request)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success publish reel from article",
		Results: result,
	})
}

func (controller *Reel) FromTopic(c *fiber.Ctx) error {
	var request domainReel.FromTopicRequest
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)

	result, err := controller.Service.CreateFromTopic(c.UserContext(), request)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success publish reel from topic",
		Results: result,
	})
}

func (controller *Reel) Status(c *fiber.Ctx) error {
	creationID := c.Params("id")
	if creationID == "" {
		return c.Status(400).JSON(utils.ResponseData{
			Status:  400,
			Code:    "BAD_REQUEST",
			Message: "id is required",
		})
	}

	status, err := controller.Service.Status(c.UserContext(), creationID)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success fetch reel status",
		Results: map[string]string{"status": status},
	})
}

func (controller *Reel) Delete(c *fiber.Ctx) error {
	postID := c.Params("post_id")
	if postID == "" {
		return c.Status(400).JSON(utils.ResponseData{
			Status:  400,
			Code:    "BAD_REQUEST",
			Message: "post_id is required",
		})
	}

	err := controller.Service.Delete(c.UserContext(), postID)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success delete reel",
	})
}
