package cmd

import (
	"os"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	globalConfig "github.com/studibuch/riona/config"
	domainActivity "github.com/studibuch/riona/domains/activity"
	domainArticle "github.com/studibuch/riona/domains/article"
	domainPlan "github.com/studibuch/riona/domains/plan"
	domainReel "github.com/studibuch/riona/domains/reel"
	"github.com/studibuch/riona/infrastructure/activitylog"
	"github.com/studibuch/riona/infrastructure/articlestore"
	"github.com/studibuch/riona/infrastructure/creatomate"
	"github.com/studibuch/riona/infrastructure/instagram"
	"github.com/studibuch/riona/infrastructure/magazine"
	"github.com/studibuch/riona/infrastructure/planstore"
	"github.com/studibuch/riona/pkg/utils"
	"github.com/studibuch/riona/usecase"
)

var (
	appSettings *globalConfig.Settings

	planStore    domainPlan.IStore
	articleStore domainArticle.IStore
	activityLog  domainActivity.ILog

	planUsecase domainPlan.IPlanUsecase
	reelUsecase domainReel.IReelUsecase
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Short: "Instagram content automation for the studibuch magazine",
	Long: `Scrapes the studibuch magazine, keeps a scheduled content plan and
renders and publishes reels through Creatomate and the Instagram Graph API.`,
}

func init() {
	// Load environment variables first
	utils.LoadConfig(".")

	time.Local = time.UTC

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	cfg := globalConfig.LoadConfig()
	initFlags(cfg)

	cobra.OnInitialize(initApp)
}

func initFlags(cfg *globalConfig.Config) {
	rootCmd.PersistentFlags().StringVarP(
		&cfg.App.Port,
		"port", "p",
		cfg.App.Port,
		"change port number with --port <number> | example: --port=8080",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&cfg.App.Debug,
		"debug", "d",
		cfg.App.Debug,
		"hide or displaying log with --debug <true/false> | example: --debug=true",
	)
	rootCmd.PersistentFlags().StringVarP(
		&cfg.App.BasePath,
		"base-path", "",
		cfg.App.BasePath,
		`base path for subpath deployment --base-path <string> | example: --base-path="/riona"`,
	)
	rootCmd.PersistentFlags().StringVarP(
		&cfg.Scraper.MagazineURL,
		"magazine-url", "",
		cfg.Scraper.MagazineURL,
		`magazine index to scrape --magazine-url <string> | example: --magazine-url="https://studibuch.de/magazin/"`,
	)
	rootCmd.PersistentFlags().StringVarP(
		&cfg.Ingest.CronSpec,
		"ingest-cron", "",
		cfg.Ingest.CronSpec,
		`cron spec for the periodic article ingest --ingest-cron <string> | example: --ingest-cron="@every 12h"`,
	)
}

func initApp() {
	cfg := globalConfig.Global

	if cfg.App.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	//preparing folder if not exist
	err := utils.CreateFolder(cfg.Paths.Content, cfg.Paths.Images, cfg.Paths.Articles, cfg.Paths.Storages)
	if err != nil {
		logrus.Errorln(err)
	}

	appSettings = globalConfig.NewSettings()

	planStore = planstore.NewFileStore(cfg.Paths.Content)
	articleStore = articlestore.NewFileStore(cfg.Paths.Articles)

	activityLog, err = activitylog.New(cfg.Paths.Storages)
	if err != nil {
		logrus.Fatalf("failed to open activity log: %v", err)
	}

	scraper := magazine.NewScraper(cfg.Scraper, cfg.Paths.Images)
	renderClient := creatomate.NewClient(cfg.Creatomate)
	publishClient := instagram.NewClient(cfg.Instagram)

	captions := usecase.NewCaptionGenerator()
	images := usecase.NewImageProvider(cfg.OpenAI, cfg.Paths.Images)
	scheduler := usecase.NewScheduler(appSettings)

	planUsecase = usecase.NewPlanService(planStore, scraper, articleStore, captions, images, scheduler, activityLog)
	reelUsecase = usecase.NewReelService(renderClient, publishClient, renderClient, articleStore, planStore, images, activityLog)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
