package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"millionaire_backend/internal/config"
	"millionaire_backend/internal/controller"
	"millionaire_backend/internal/repository"
	"millionaire_backend/internal/service"
	"millionaire_backend/pkg/database"
	"millionaire_backend/pkg/logger"
	"millionaire_backend/pkg/monitoring"
	"millionaire_backend/pkg/security"
	"millionaire_backend/pkg/tracing"

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
	Security        *security.Settings
	services        *services
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user     *repository.UserRepository
	question *repository.QuestionRepository
	game     *repository.GameRepository
}

type services struct {
	auth     *service.AuthService
	game     *service.GameService
	question *service.QuestionService
	user     *service.UserService
}

type controllers struct {
	auth     *controller.AuthController
	game     *controller.GameController
	question *controller.QuestionController
	user     *controller.UserController
	health   *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig runs every registered hot-reload callback.
func (a *App) ApplyConfig(cfg *config.Config) {
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:     repository.NewUserRepository(db),
		question: repository.NewQuestionRepository(db),
		game:     repository.NewGameRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.auth = service.NewAuthService(repos.user, cfg)
	s.game = service.NewGameService(repos.game, repos.user, repos.question, cfg, rdb, db)
	s.question = service.NewQuestionService(repos.question)
	s.user = service.NewUserService(repos.user, repos.game)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:     controller.NewAuthController(s.auth),
		game:     controller.NewGameController(s.game),
		question: controller.NewQuestionController(s.question),
		user:     controller.NewUserController(s.user, s.game),
		health:   controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	a.Security = security.NewSettings(
		cfg.CORS.AllowedOrigins,
		cfg.RateLimit.MaxRequests,
		time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute,
	)

	router.Use(security.CORS(a.Security))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(a.Security))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// startBackgroundTasks sweeps abandoned games past the time limit so
// profiles and balances settle without player interaction.
func (a *App) startBackgroundTasks(s *services) {
	go func() {
		ticker := time.NewTicker(time.Minute)
		for range ticker.C {
			swept, err := s.game.SweepExpiredGames()
			if err != nil {
				logger.Log.Error("expired game sweep error", zap.Error(err))
				continue
			}
			if swept > 0 {
				logger.Log.Info("expired games swept", zap.Int("count", swept))
			}
		}
	}()
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
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	app.services = services
	controllers := app.initControllers(services, db)

	monitoring.Init()

	gin.SetMode(ginMode(cfg.Server.Mode))
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("millionaire-game", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	// 配置热加载: CORS白名单与限流参数即时生效,游戏规则和数据库连接不变
	app.RegisterConfigCallback(func(newCfg *config.Config) {
		app.Security.Update(
			newCfg.CORS.AllowedOrigins,
			newCfg.RateLimit.MaxRequests,
			time.Duration(newCfg.RateLimit.WindowMinutes)*time.Minute,
		)
		logger.Log.Info("security settings reloaded",
			zap.Strings("allowed_origins", newCfg.CORS.AllowedOrigins),
			zap.Int("rate_limit_max_requests", newCfg.RateLimit.MaxRequests),
			zap.Int("rate_limit_window_minutes", newCfg.RateLimit.WindowMinutes))
	})

	app.startBackgroundTasks(services)

	return app
}

func ginMode(mode string) string {
	switch mode {
	case "release":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
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

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
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
