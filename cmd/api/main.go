package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/yourusername/hostpanel-api/internal/config"
	"github.com/yourusername/hostpanel-api/internal/handler"
	"github.com/yourusername/hostpanel-api/internal/middleware"
	pgRepo "github.com/yourusername/hostpanel-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/hostpanel-api/internal/repository/redis"
	"github.com/yourusername/hostpanel-api/internal/service"
	"github.com/yourusername/hostpanel-api/pkg/auth"
	"github.com/yourusername/hostpanel-api/pkg/database"
	"github.com/yourusername/hostpanel-api/pkg/storage"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Применяем миграции
	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к Redis с использованием унифицированной конфигурации
	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	log.Println("Successfully connected to Redis")

	// Инициализируем репозитории
	userRepo := pgRepo.NewUserRepo(db)
	partnerRepo := pgRepo.NewPartnerRepo(db)
	challengeRepo := pgRepo.NewOtpChallengeRepo(db)
	offeringRepo := pgRepo.NewOfferingRepo(db)
	purchaseRepo := pgRepo.NewPurchaseRepo(db)
	leadRepo := pgRepo.NewLeadRepo(db)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize CacheRepo: %v", err)
		os.Exit(1)
	}

	// Инициализируем JWT сервис
	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs)
	if err != nil {
		log.Printf("Failed to initialize JWTService: %v", err)
		os.Exit(1)
	}

	// Почтовый шлюз: Resend в проде, заглушка когда отправка выключена
	var emailService service.EmailService
	if cfg.Email.Enabled {
		emailService, err = service.NewResendEmailService(cfg.Email.ResendAPIKey, cfg.Email.From, cfg.Email.MaxRetries)
		if err != nil {
			log.Printf("Failed to initialize email service: %v", err)
			os.Exit(1)
		}
	} else {
		log.Println("Отправка почты выключена, используется NoopEmailService")
		emailService = &service.NoopEmailService{}
	}

	// Хранилище документов (счета, договоры)
	documentStore, err := storage.NewLocalDocumentStore(cfg.Documents.StoreDir, cfg.Documents.BaseURL)
	if err != nil {
		log.Printf("Failed to initialize document store: %v", err)
		os.Exit(1)
	}
	documentService, err := service.NewDocumentService(documentStore, cfg.Documents.TempDir)
	if err != nil {
		log.Printf("Failed to initialize document service: %v", err)
		os.Exit(1)
	}

	// Инициализируем сервисы
	registrationService, err := service.NewRegistrationService(
		userRepo, partnerRepo, challengeRepo, emailService,
		cfg.Otp.TTL, cfg.Otp.VerifiedWindow, cfg.Otp.MaxAttempts,
		cfg.Otp.ExposeCodeOnDeliveryFailure,
	)
	if err != nil {
		log.Printf("Failed to initialize RegistrationService: %v", err)
		os.Exit(1)
	}
	authService, err := service.NewAuthService(userRepo, jwtService)
	if err != nil {
		log.Printf("Failed to initialize AuthService: %v", err)
		os.Exit(1)
	}
	catalogService := service.NewCatalogService(offeringRepo, cacheRepo)
	purchaseService := service.NewPurchaseService(purchaseRepo, offeringRepo, userRepo, documentService)
	partnerService := service.NewPartnerService(partnerRepo, documentService)
	leadService := service.NewLeadService(leadRepo)

	// Создаем контекст с отменой для корректного завершения фоновых горутин
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Фоновая очистка истекших OTP challenge
	go func() {
		interval := cfg.Otp.SweepInterval
		if interval <= 0 {
			interval = time.Hour
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		log.Printf("Запуск периодической очистки истекших OTP кодов (каждые %s)", interval)

		for {
			select {
			case <-ticker.C:
				removed, err := registrationService.SweepExpired(ctx)
				if err != nil {
					log.Printf("Ошибка при очистке OTP кодов: %v", err)
				} else if removed > 0 {
					log.Printf("Очистка OTP кодов: удалено %d", removed)
				}
			case <-ctx.Done():
				log.Println("Завершение работы горутины очистки OTP кодов")
				return
			}
		}
	}()

	// Инициализируем обработчики
	registrationHandler := handler.NewRegistrationHandler(registrationService, authService)
	authHandler := handler.NewAuthHandler(authService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	purchaseHandler := handler.NewPurchaseHandler(purchaseService)
	partnerHandler := handler.NewPartnerHandler(partnerService)
	leadHandler := handler.NewLeadHandler(leadService)

	// Инициализируем middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService)
	rateLimiter := middleware.NewRateLimiter(redisClient)

	// Инициализируем роутер Gin
	router := gin.Default()

	// Настройка доверенных прокси для корректной работы c.ClientIP()
	isProduction := gin.Mode() == gin.ReleaseMode
	if isProduction {
		// Production: не доверять прокси-заголовкам.
		// Если используете load balancer, замените nil на []string{"IP_БАЛАНСИРОВЩИКА"}
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		// Development: доверяем localhost
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	// Настройка CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://hostpanel.vercel.app", "https://hostpaneladmin.vercel.app", "http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Сгенерированные документы (счета, договоры) раздаются статикой
	router.StaticFS(cfg.Documents.BaseURL, http.Dir(cfg.Documents.StoreDir))

	// Настраиваем маршруты API
	api := router.Group("/api")
	{
		// Регистрация с подтверждением email
		registration := api.Group("/registration")
		{
			otpLimited := registration.Group("")
			otpLimited.Use(rateLimiter.LimitByIP(middleware.OtpRateLimitConfig()))
			{
				otpLimited.POST("/request-code", registrationHandler.RequestCode)
				otpLimited.POST("/verify-code", registrationHandler.VerifyCode)
			}
			registration.POST("/user", registrationHandler.RegisterUser)
			registration.POST("/partner", registrationHandler.RegisterPartner)
		}

		// Аутентификация
		authGroup := api.Group("/auth")
		authGroup.Use(rateLimiter.LimitByIP(middleware.DefaultAuthRateLimitConfig()))
		{
			authGroup.POST("/login", authHandler.Login)
		}

		// Профиль
		users := api.Group("/users")
		users.Use(authMiddleware.RequireAuth())
		{
			users.GET("/me", authHandler.GetMe)
		}

		// Каталог услуг (публичная витрина)
		offerings := api.Group("/offerings")
		{
			offerings.GET("", catalogHandler.ListOfferings)

			offeringWithID := offerings.Group("/:id")
			offeringWithID.Use(middleware.ExtractUintParam("id", "offeringID"))
			{
				offeringWithID.GET("", catalogHandler.GetOffering)
			}
		}

		// Обращения с публичного сайта
		leads := api.Group("/leads")
		leads.Use(rateLimiter.LimitByIP(middleware.LeadRateLimitConfig()))
		{
			leads.POST("/demo", leadHandler.RequestDemo)
			leads.POST("/contact", leadHandler.Contact)
		}

		// Покупки (личный кабинет)
		purchases := api.Group("/purchases")
		purchases.Use(authMiddleware.RequireAuth())
		{
			purchases.POST("", purchaseHandler.CreatePurchase)
			purchases.GET("", purchaseHandler.ListMyPurchases)

			purchaseWithID := purchases.Group("/:id")
			purchaseWithID.Use(middleware.ExtractUintParam("id", "purchaseID"))
			{
				purchaseWithID.GET("", purchaseHandler.GetMyPurchase)
			}
		}

		// Админка
		admin := api.Group("/admin")
		admin.Use(authMiddleware.RequireAuth(), authMiddleware.AdminOnly())
		{
			adminOfferings := admin.Group("/offerings")
			{
				adminOfferings.GET("", catalogHandler.ListAllOfferings)
				adminOfferings.POST("", catalogHandler.CreateOffering)

				adminOfferingWithID := adminOfferings.Group("/:id")
				adminOfferingWithID.Use(middleware.ExtractUintParam("id", "offeringID"))
				{
					adminOfferingWithID.PUT("", catalogHandler.UpdateOffering)
					adminOfferingWithID.PUT("/deactivate", catalogHandler.DeactivateOffering)
				}
			}

			adminPurchases := admin.Group("/purchases")
			{
				adminPurchases.GET("", purchaseHandler.ListPurchases)

				adminPurchaseWithID := adminPurchases.Group("/:id")
				adminPurchaseWithID.Use(middleware.ExtractUintParam("id", "purchaseID"))
				{
					adminPurchaseWithID.PUT("/approve", purchaseHandler.ApprovePurchase)
					adminPurchaseWithID.PUT("/reject", purchaseHandler.RejectPurchase)
				}
			}

			adminPartners := admin.Group("/partners")
			{
				adminPartners.GET("", partnerHandler.ListPartners)

				adminPartnerWithID := adminPartners.Group("/:id")
				adminPartnerWithID.Use(middleware.ExtractUintParam("id", "partnerID"))
				{
					adminPartnerWithID.GET("", partnerHandler.GetPartner)
					adminPartnerWithID.PUT("/approve", partnerHandler.ApprovePartner)
					adminPartnerWithID.PUT("/reject", partnerHandler.RejectPartner)
				}
			}

			adminLeads := admin.Group("/leads")
			{
				adminLeads.GET("", leadHandler.ListLeads)
				adminLeads.GET("/export", leadHandler.ExportLeads)

				adminLeadWithID := adminLeads.Group("/:id")
				adminLeadWithID.Use(middleware.ExtractUintParam("id", "leadID"))
				{
					adminLeadWithID.PUT("/handled", leadHandler.MarkLeadHandled)
				}
			}
		}
	}

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Server started on port %s", cfg.Server.Port)

	// После получения сигнала SIGINT или SIGTERM вызываем cancel() для завершения горутин
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	cancel()

	// Создаем контекст с таймаутом для graceful shutdown сервера
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	log.Println("Server exited properly")
}
