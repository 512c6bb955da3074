package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	globalConfig "github.com/studibuch/riona/config"
	"github.com/studibuch/riona/ui/rest"
	"github.com/studibuch/riona/ui/rest/middleware"
)

var restCmd = &cobra.Command{
	Use:   "rest",
	Short: "Serve the content plan API over http",
	Long:  `Starts the REST API and the periodic magazine ingest.`,
	Run:   restServer,
}

func init() {
	rootCmd.AddCommand(restCmd)
}

func restServer(_ *cobra.Command, _ []string) {
	cfg := globalConfig.Global

	app := fiber.New(fiber.Config{
		Network:               "tcp",
		AppName:               "Riona Content Engine " + cfg.App.Version,
		DisableStartupMessage: false,
	})

	app.Use(requestid.New())
	app.Use(cors.New())
	app.Use(middleware.Recovery())
	if cfg.App.Debug {
		app.Use(logger.New())
	}

	apiGroup := app.Group(cfg.App.BasePath + "/api")

	rest.InitRestPlan(apiGroup, planUsecase)
	rest.InitRestReel(apiGroup, reelUsecase, articleStore)
	rest.InitRestActivity(apiGroup, activityLog)
	rest.InitRestSettings(apiGroup, appSettings)

	// 404 handler for the API group
	apiGroup.All("/*", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "API Endpoint not found",
			"path":  c.Path(),
		})
	})

	ingestCron := startIngestCron(cfg)

	// Graceful shutdown handler
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logrus.Info("[REST] Reception of termination signal, shutting down gracefully...")
		ctx := ingestCron.Stop()
		<-ctx.Done()
		if err := app.Shutdown(); err != nil {
			logrus.Errorf("[REST] Error during Fiber shutdown: %v", err)
		}
	}()

	if err := app.Listen(":" + cfg.App.Port); err != nil {
		logrus.Fatalln("Failed to start: ", err.Error())
	}
}

// startIngestCron schedules the periodic scrape-and-merge cycle. A run that
// fails only logs; the next tick tries again.
func startIngestCron(cfg *globalConfig.Config) *cron.Cron {
	runIngest := func() {
		added, err := planUsecase.RefreshFromArticles(context.Background())
		if err != nil {
			logrus.WithError(err).Error("[INGEST] scheduled refresh failed")
			return
		}
		logrus.Infof("[INGEST] scheduled refresh done, %d posts added", added)
	}

	c := cron.New()
	if _, err := c.AddFunc(cfg.Ingest.CronSpec, runIngest); err != nil {
		logrus.Fatalf("invalid ingest cron spec %q: %v", cfg.Ingest.CronSpec, err)
	}
	c.Start()

	if cfg.Ingest.RunOnStartup {
		go runIngest()
	}
	return c
}
