package app

import (
	"database/sql"
	"fmt"
	"log"

	"salesflow/internal/config"
	"salesflow/internal/handlers"
	"salesflow/internal/pdf"
	"salesflow/internal/repositories"
	"salesflow/internal/routes"
	"salesflow/internal/services"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	_ "salesflow/docs"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("Ошибка подключения к БД: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка закрытия БД: %v", err)
		}
	}()

	// === Repos ===
	timeout := cfg.QueryTimeout()
	pipelineRepo := repositories.NewPipelineRepository(db, timeout)
	leadRepo := repositories.NewLeadRepository(db, timeout)
	transitionRepo := repositories.NewTransitionRepository(db, timeout)

	// === Services ===
	policy := services.NewStageProbabilityPolicy(
		cfg.Scoring.ValueCeiling,
		cfg.Scoring.ValueWeight,
		cfg.Scoring.StageProbabilities,
		cfg.Scoring.DefaultProbability,
	)

	var notifier services.Notifier
	{
		var emailSvc services.EmailService
		if cfg.Email.SMTPHost != "" && cfg.Email.NotifyTo != "" {
			emailSvc = services.NewEmailService(
				cfg.Email.SMTPHost,
				cfg.Email.SMTPPort,
				cfg.Email.SMTPUser,
				cfg.Email.SMTPPassword,
				cfg.Email.FromEmail,
			)
		}
		var telegramSvc *services.TelegramService
		if cfg.Telegram.BotToken != "" {
			telegramSvc, err = services.NewTelegramService(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
			if err != nil {
				log.Printf("Telegram не подключён: %v", err)
			}
		}
		if emailSvc != nil || telegramSvc != nil {
			notifier = services.NewCloseNotifier(emailSvc, cfg.Email.NotifyTo, telegramSvc)
		}
	}

	pipelineService := services.NewPipelineService(pipelineRepo)
	leadService := services.NewLeadService(leadRepo, pipelineRepo, transitionRepo, policy, notifier)
	reportService := services.NewReportService(leadRepo, pipelineRepo)

	// === Handlers ===
	pipelineHandler := handlers.NewPipelineHandler(pipelineService)
	leadHandler := handlers.NewLeadHandler(leadService, pipelineService, pdf.NewTimelineGenerator())
	reportHandler := handlers.NewReportHandler(reportService)

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Роуты (JWT — внутри SetupRoutes)
	routes.SetupRoutes(
		router,
		[]byte(cfg.Auth.JWTSecret),
		pipelineHandler,
		leadHandler,
		reportHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Сервер запущен на %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("Ошибка запуска сервера: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
