package main

import (
	"context"
	"net/http"

	"cryptosocialbot/internal/bot"
	"cryptosocialbot/internal/composer"
	botconfig "cryptosocialbot/internal/config"
	"cryptosocialbot/internal/media"
	"cryptosocialbot/internal/news"
	"cryptosocialbot/internal/prompts"
	"cryptosocialbot/internal/twitter"
	"cryptosocialbot/pkg/config"
	"cryptosocialbot/pkg/llm"
	"cryptosocialbot/pkg/logging"
	"cryptosocialbot/pkg/monitoring"
	"cryptosocialbot/pkg/server"
	"cryptosocialbot/pkg/version"

	"github.com/gin-gonic/gin"
)

func main() {
	// Setup logger
	logger := logging.NewLoggerWithService("cryptosocialbot")

	// Load environment variables
	config.LoadEnv(logger)

	logger.Info("Starting CryptoSocialBot")

	cfg := botconfig.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("API credentials are not properly set")
	}

	// Setup monitoring
	healthChecker := monitoring.NewHealthChecker("cryptosocialbot", version.Version)
	metricsCollector := monitoring.NewMetricsCollector("cryptosocialbot", version.Version, version.GitCommit)

	// Add health checks
	healthChecker.AddCheck("config", monitoring.ConfigurationHealthCheck(map[string]string{
		"TWITTER_API_KEY":     cfg.TwitterAPIKey,
		"LLM_API_KEY":         cfg.LLM.APIKey,
		"CRYPTOPANIC_API_KEY": cfg.CryptoPanicAPIKey,
	}))
	healthChecker.AddCheck("images", monitoring.DirectoryHealthCheck("images", cfg.ImagesDir))

	llmProvider, err := llm.NewProvider(cfg.LLM)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize LLM provider")
	}

	headlineSource, err := news.NewCryptoPanicSource(cfg.CryptoPanicAPIKey, cfg.CryptoPanicAPIURL)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize CryptoPanic source")
	}

	promptLibrary := prompts.NewLibrary(prompts.Config{
		FedjaPath:   cfg.FedjaPromptsPath,
		GeneralPath: cfg.GeneralPromptsPath,
		Logger:      logger,
	})

	twitterClient := twitter.NewClient(twitter.Credentials{
		APIKey:            cfg.TwitterAPIKey,
		APISecretKey:      cfg.TwitterAPISecretKey,
		AccessToken:       cfg.TwitterAccessToken,
		AccessTokenSecret: cfg.TwitterAccessTokenSecret,
	})

	agent := bot.NewAgent(bot.AgentConfig{
		FedjaInterval:   cfg.FedjaInterval,
		GeneralInterval: cfg.GeneralInterval,
		Selector:        bot.NewSelector(cfg.FedjaProbability, nil),
		Composer: composer.NewComposer(composer.Config{
			LLM:       llmProvider,
			Prompts:   promptLibrary,
			Logger:    logger,
			MaxTokens: cfg.LLM.MaxTokens,
		}),
		Headlines: headlineSource,
		Media:     media.NewLibrary(cfg.ImagesDir, nil),
		Publisher: twitter.NewPublisher(twitterClient, logger),
		Metrics:   bot.NewMetrics(metricsCollector),
		Logger:    logger,
	})
	go agent.Start(context.Background())

	// Setup router with unified monitoring (health/metrics only)
	router := server.SetupServiceRouter(logger, "cryptosocialbot", healthChecker, metricsCollector)
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "CryptoSocialBot is running!")
	})

	// Start HTTP server with graceful shutdown
	serverConfig := server.DefaultConfig("cryptosocialbot", cfg.Port)
	if err := server.Start(serverConfig, router, logger); err != nil {
		logger.WithError(err).Fatal("Server startup failed")
	}
}
