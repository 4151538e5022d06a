package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"learnhub_backend/internal/config"
	"learnhub_backend/internal/controller"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/service"
	"learnhub_backend/pkg/database"
	"learnhub_backend/pkg/logger"
	"learnhub_backend/pkg/monitoring"
	"learnhub_backend/pkg/security"
	"learnhub_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	services *services
}

type repositories struct {
	user       *repository.UserRepository
	course     *repository.CourseRepository
	enrollment *repository.EnrollmentRepository
	activity   *repository.ActivityRepository
	streak     *repository.StreakRepository
	assessment *repository.AssessmentRepository
}

type services struct {
	auth       *service.AuthService
	storage    service.StorageProvider
	course     *service.CourseService
	activity   *service.ActivityService
	streak     *service.StreakService
	progress   *service.ProgressService
	dashboard  *service.DashboardService
	assessment *service.AssessmentService
	quiz       *service.QuizService
	sessions   *service.SessionManager
}

type controllers struct {
	auth       *controller.AuthController
	user       *controller.UserController
	course     *controller.CourseController
	dashboard  *controller.DashboardController
	quiz       *controller.QuizController
	assessment *controller.AssessmentController
	health     *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		course:     repository.NewCourseRepository(db),
		enrollment: repository.NewEnrollmentRepository(db),
		activity:   repository.NewActivityRepository(db),
		streak:     repository.NewStreakRepository(db),
		assessment: repository.NewAssessmentRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) (*services, error) {
	s := &services{}

	storage, err := service.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}
	s.storage = storage

	s.auth = service.NewAuthService(repos.user, cfg)
	s.course = service.NewCourseService(repos.course, repos.enrollment, rdb)
	s.streak = service.NewStreakService(repos.streak)
	s.activity = service.NewActivityService(repos.activity, repos.course, repos.enrollment, s.streak)
	s.progress = service.NewProgressService(repos.enrollment)
	s.dashboard = service.NewDashboardService(s.activity, s.progress, s.streak)
	s.assessment = service.NewAssessmentService(repos.assessment)

	s.quiz = service.NewQuizService()
	s.sessions = service.NewSessionManager(
		s.quiz,
		s.course,
		s.course,
		cfg.Quiz.TimeLimitSeconds,
		time.Duration(cfg.Quiz.SessionTTLHours)*time.Hour,
	)

	return s, nil
}

func (a *App) initControllers(s *services, repos *repositories, db *gorm.DB) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		user:       controller.NewUserController(repos.user, s.storage),
		course:     controller.NewCourseController(s.course),
		dashboard:  controller.NewDashboardController(s.dashboard, s.activity, s.progress, s.streak),
		quiz:       controller.NewQuizController(s.sessions),
		assessment: controller.NewAssessmentController(s.assessment),
		health:     controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services, err := app.initServices(repos, cfg, rdb)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
		log.Fatalf("Failed to initialize services: %v", err)
	}
	app.services = services
	controllers := app.initControllers(services, repos, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("learnhub-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// 停掉所有测验会话计时器
	if a.services != nil && a.services.sessions != nil {
		a.services.sessions.Shutdown()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
