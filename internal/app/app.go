package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"finlearn_backend/internal/config"
	"finlearn_backend/internal/controller"
	"finlearn_backend/internal/middleware"
	"finlearn_backend/internal/repository"
	"finlearn_backend/internal/service"
	"finlearn_backend/pkg/configwatcher"
	"finlearn_backend/pkg/database"
	"finlearn_backend/pkg/logger"
	"finlearn_backend/pkg/monitoring"
	"finlearn_backend/pkg/security"
	"finlearn_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client

	services    *services
	adminPolicy *middleware.AdminPolicy
	tracer      *sdktrace.TracerProvider
}

type repositories struct {
	course            *repository.CourseRepository
	unit              *repository.UnitRepository
	lesson            *repository.LessonRepository
	challenge         *repository.ChallengeRepository
	challengeProgress *repository.ChallengeProgressRepository
	userProgress      *repository.UserProgressRepository
	userSubscription  *repository.UserSubscriptionRepository
}

type services struct {
	course       *service.CourseService
	progress     *service.ProgressService
	userProgress *service.UserProgressService
	subscription *service.SubscriptionService
	leaderboard  *service.LeaderboardService
	storage      *service.StorageService
	seed         *service.SeedService
}

type controllers struct {
	course       *controller.CourseController
	progress     *controller.ProgressController
	userProgress *controller.UserProgressController
	subscription *controller.SubscriptionController
	leaderboard  *controller.LeaderboardController
	admin        *controller.AdminController
	health       *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		course:            repository.NewCourseRepository(db),
		unit:              repository.NewUnitRepository(db),
		lesson:            repository.NewLessonRepository(db),
		challenge:         repository.NewChallengeRepository(db),
		challengeProgress: repository.NewChallengeProgressRepository(db),
		userProgress:      repository.NewUserProgressRepository(db),
		userSubscription:  repository.NewUserSubscriptionRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*services, error) {
	storage, err := service.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}

	s := &services{}
	s.storage = storage
	s.course = service.NewCourseService(repos.course, rdb)
	s.subscription = service.NewSubscriptionService(repos.userSubscription, cfg.Billing.GracePeriod)
	s.progress = service.NewProgressService(repos.unit, repos.lesson, repos.userProgress)
	s.userProgress = service.NewUserProgressService(
		repos.userProgress,
		repos.course,
		repos.challenge,
		repos.challengeProgress,
		s.subscription,
	)
	s.leaderboard = service.NewLeaderboardService(repos.userProgress, rdb)
	s.seed = service.NewSeedService(db)
	return s, nil
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		course:       controller.NewCourseController(s.course, s.userProgress),
		progress:     controller.NewProgressController(s.progress, s.userProgress),
		userProgress: controller.NewUserProgressController(s.userProgress),
		subscription: controller.NewSubscriptionController(s.subscription),
		leaderboard:  controller.NewLeaderboardController(s.leaderboard),
		admin:        controller.NewAdminController(s.course, s.storage),
		health:       controller.NewHealthController(db),
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

	router.Use(middleware.RequestID())
	router.Use(middleware.RequestCache())

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// applyConfig 配置热更新入口：目前只有管理员白名单需要运行时替换
func (a *App) applyConfig(cfg *config.Config) {
	a.adminPolicy.Update(cfg.Auth.AdminIDs)
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config:      cfg,
		DB:          db,
		Redis:       rdb,
		adminPolicy: middleware.NewAdminPolicy(cfg.Auth.AdminIDs),
	}

	repos := app.initRepositories(db)
	svcs, err := app.initServices(repos, cfg, db, rdb)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
	}
	app.services = svcs
	ctrls := app.initControllers(svcs, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("finlearn-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	app.registerRoutes(router, ctrls, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	go configwatcher.WatchConfig("configs/config.yaml", app.applyConfig)

	return app
}

// Seed 一次性导入演示内容，由命令行 -seed 触发
func (a *App) Seed() error {
	return a.services.seed.Run()
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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	log.Println("Server exiting")
}
