package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"masomo_backend/internal/config"
	"masomo_backend/internal/controller"
	"masomo_backend/internal/repository"
	"masomo_backend/internal/service"
	"masomo_backend/pkg/database"
	"masomo_backend/pkg/logger"
	"masomo_backend/pkg/monitoring"
	"masomo_backend/pkg/security"
	"masomo_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user         *repository.UserRepository
	course       *repository.CourseRepository
	lesson       *repository.LessonRepository
	enrollment   *repository.EnrollmentRepository
	progress     *repository.ProgressRepository
	assignment   *repository.AssignmentRepository
	test         *repository.TestRepository
	achievement  *repository.AchievementRepository
	friendship   *repository.FriendshipRepository
	event        *repository.EventRepository
	notification *repository.NotificationRepository
	checkin      *repository.CheckinRepository
}

type services struct {
	storage      service.Storage
	auth         *service.AuthService
	user         *service.UserService
	course       *service.CourseService
	enrollment   *service.EnrollmentService
	progress     *service.ProgressService
	assignment   *service.AssignmentService
	test         *service.TestService
	gamification *service.GamificationService
	achievement  *service.AchievementService
	friendship   *service.FriendshipService
	event        *service.EventService
	notification *service.NotificationService
	dashboard    *service.DashboardService
}

type controllers struct {
	auth         *controller.AuthController
	user         *controller.UserController
	course       *controller.CourseController
	enrollment   *controller.EnrollmentController
	progress     *controller.ProgressController
	assignment   *controller.AssignmentController
	test         *controller.TestController
	achievement  *controller.AchievementController
	friendship   *controller.FriendshipController
	event        *controller.EventController
	notification *controller.NotificationController
	dashboard    *controller.DashboardController
	admin        *controller.AdminController
	health       *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) ConfigCallbacks() []func(*config.Config) {
	return a.configCallbacks
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	return &repositories{
		user:         repository.NewUserRepository(db),
		course:       repository.NewCourseRepository(db),
		lesson:       repository.NewLessonRepository(db),
		enrollment:   repository.NewEnrollmentRepository(db),
		progress:     repository.NewProgressRepository(db),
		assignment:   repository.NewAssignmentRepository(db),
		test:         repository.NewTestRepository(db),
		achievement:  repository.NewAchievementRepository(db),
		friendship:   repository.NewFriendshipRepository(db, rdb),
		event:        repository.NewEventRepository(db),
		notification: repository.NewNotificationRepository(db),
		checkin:      repository.NewCheckinRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*services, error) {
	s := &services{}

	storage, err := service.NewStorage(cfg)
	if err != nil {
		return nil, err
	}
	s.storage = storage

	s.gamification = service.NewGamificationService(repos.user, rdb)
	s.achievement = service.NewAchievementService(repos.achievement, repos.user, repos.notification, s.gamification, db)

	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user, repos.checkin, s.gamification, s.achievement)
	s.course = service.NewCourseService(repos.course, repos.lesson, repos.enrollment, repos.progress, s.storage, db)
	s.enrollment = service.NewEnrollmentService(repos.enrollment, repos.course, s.gamification, s.achievement, db)
	s.progress = service.NewProgressService(repos.progress, repos.enrollment, repos.lesson, repos.course, repos.user, s.gamification, s.achievement, db)
	s.assignment = service.NewAssignmentService(repos.assignment, repos.course, repos.enrollment, repos.user, s.gamification, s.achievement, db)
	s.test = service.NewTestService(repos.test, repos.course, repos.enrollment, s.gamification, s.achievement, db)
	s.friendship = service.NewFriendshipService(repos.friendship, repos.user, repos.notification, s.gamification, s.achievement)
	s.event = service.NewEventService(repos.event, repos.friendship)
	s.notification = service.NewNotificationService(repos.notification)
	s.dashboard = service.NewDashboardService(repos.user, repos.enrollment, repos.progress, s.assignment, repos.event, repos.notification, s.gamification, db)

	return s, nil
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:         controller.NewAuthController(s.auth),
		user:         controller.NewUserController(s.user, s.storage),
		course:       controller.NewCourseController(s.course, s.storage),
		enrollment:   controller.NewEnrollmentController(s.enrollment),
		progress:     controller.NewProgressController(s.progress),
		assignment:   controller.NewAssignmentController(s.assignment),
		test:         controller.NewTestController(s.test),
		achievement:  controller.NewAchievementController(s.achievement, s.gamification),
		friendship:   controller.NewFriendshipController(s.friendship),
		event:        controller.NewEventController(s.event),
		notification: controller.NewNotificationController(s.notification),
		dashboard:    controller.NewDashboardController(s.dashboard),
		admin:        controller.NewAdminController(s.user, s.course, s.achievement, s.dashboard),
		health:       controller.NewHealthController(db, rdb),
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

// startBackgroundTasks runs the hourly streak sweep so a missed day zeroes
// the user's streak without waiting for their next check-in.
func (a *App) startBackgroundTasks(repos *repositories) {
	go func() {
		ticker := time.NewTicker(time.Hour)
		for range ticker.C {
			cutoff := time.Now().AddDate(0, 0, -1)
			n, err := repos.user.ResetLapsedStreaks(cutoff)
			if err != nil {
				logger.Log.Error("streak sweep failed", zap.Error(err))
				continue
			}
			if n > 0 {
				logger.Log.Info("streak sweep reset lapsed streaks", zap.Int64("users", n))
			}
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("logger initialized")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// Leaderboard and friend caches degrade to DB reads without Redis.
		logger.Log.Warn("redis unavailable, running without cache", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db, rdb)
	services, err := app.initServices(repos, cfg, db, rdb)
	if err != nil {
		logger.Log.Fatal("failed to initialize services", zap.Error(err))
	}
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("masomo-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.startBackgroundTasks(repos)

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
