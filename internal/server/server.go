// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	_ "hackswipe/docs" // swagger docs
	"hackswipe/internal/config"
	"hackswipe/internal/database"
	"hackswipe/internal/featureflags"
	"hackswipe/internal/jobs"
	"hackswipe/internal/middleware"
	"hackswipe/internal/models"
	"hackswipe/internal/notifications"
	"hackswipe/internal/repository"
	"hackswipe/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	globalRateLimit  = 100
	globalRateWindow = time.Minute
	jobTimeout       = 2 * time.Minute
)

// Server holds all dependencies and provides handlers
type Server struct {
	config      *config.Config
	db          *gorm.DB
	redis       *redis.Client
	app         *fiber.App
	shutdownCtx context.Context
	shutdownFn  context.CancelFunc

	sessionRepo repository.SessionRepository

	notifier     *notifications.Notifier
	hub          *notifications.Hub
	tickets      *middleware.TicketIssuer
	featureFlags *featureflags.Manager
	scheduler    *jobs.Scheduler

	authService         *service.AuthService
	profileService      *service.ProfileService
	exploreService      *service.ExploreService
	swipeService        *service.SwipeService
	postService         *service.PostService
	inquiryService      *service.InquiryService
	matchService        *service.MatchService
	chatService         *service.ChatService
	notificationService *service.NotificationService
	overviewService     *service.OverviewService
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	if cfg == nil || db == nil {
		return nil, errors.New("server: config and database are required")
	}

	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	postRepo := repository.NewPostRepository(db)
	swipeRepo := repository.NewSwipeRepository(db)
	matchRepo := repository.NewMatchRepository(db)
	inquiryRepo := repository.NewInquiryRepository(db)
	chatRepo := repository.NewChatRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	s := &Server{
		config:       cfg,
		db:           db,
		redis:        redisClient,
		sessionRepo:  sessionRepo,
		notifier:     notifications.NewNotifier(redisClient),
		hub:          notifications.NewHub(),
		tickets:      middleware.NewTicketIssuer(cfg.WSTicketSecret, middleware.DefaultTicketTTL, redisClient),
		featureFlags: featureflags.NewManager(cfg.FeatureFlags),

		authService:    service.NewAuthService(userRepo, sessionRepo, profileRepo, cfg.SessionTTL()),
		profileService: service.NewProfileService(profileRepo),
		exploreService: service.NewExploreService(userRepo, postRepo, cfg.ExplorePageSize),
		swipeService:   service.NewSwipeService(swipeRepo, userRepo, postRepo),
		postService:    service.NewPostService(postRepo),
		inquiryService: service.NewInquiryService(inquiryRepo, postRepo, userRepo),
		matchService:   service.NewMatchService(matchRepo, userRepo),
		chatService:    service.NewChatService(chatRepo, userRepo),
		notificationService: service.NewNotificationService(
			matchRepo, inquiryRepo, chatRepo, userRepo, postRepo, notificationRepo),
		overviewService: service.NewOverviewService(userRepo, postRepo, matchRepo, swipeRepo, inquiryRepo),
	}

	return s, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.TracingMiddleware())
	app.Use(middleware.ContextMiddleware())
	app.Use(middleware.MetricsMiddleware())
	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	// CORS runs before the limiter so rejected requests still carry CORS headers.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:3000,http://localhost:5173,http://127.0.0.1:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, Upgrade, Connection, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        globalRateLimit,
		Expiration: globalRateWindow,
		Next: func(c *fiber.Ctx) bool {
			// Load runs come from a single address.
			return c.Method() == fiber.MethodOptions || s.config.Env == "stress"
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(models.ErrorResponse{
				Error: "Too many requests, please try again later.",
				Code:  models.CodeRateLimited,
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	api := app.Group("/api")
	api.Get("/", s.HealthCheck)
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "HackSwipe API Metrics Dashboard",
	}))
	api.Get("/swagger/*", swagger.HandlerDefault)

	auth := api.Group("/auth")
	auth.Post("/register", middleware.RateLimit(s.redis, 5, 10*time.Minute, "register"), s.Register)
	auth.Post("/login", middleware.RateLimit(s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Post("/logout", s.Logout)
	auth.Get("/me", s.AuthRequired(), s.Me)

	// Websocket upgrade authenticates with a ticket, not the bearer header.
	api.Get("/ws", requireUpgrade, middleware.TicketRequired(s.tickets), s.WebsocketHandler())

	protected := api.Group("", s.AuthRequired())

	protected.Get("/profile", s.GetProfile)
	protected.Put("/profile", s.PutProfile)
	protected.Patch("/profile", s.PatchProfile)

	protected.Get("/explore/people", s.ExplorePeople)
	protected.Get("/explore/:kind", s.ExplorePosts)
	protected.Get("/random-project", s.RandomProject)
	protected.Post("/swipe", middleware.RateLimit(s.redis, 120, time.Minute, "swipe"), s.Swipe)

	posts := protected.Group("/posts")
	posts.Post("/", middleware.RateLimit(s.redis, 10, 5*time.Minute, "create_post"), s.CreatePost)
	// Specific routes before the generic /:id routes.
	posts.Get("/my-posts", s.MyPosts)
	posts.Put("/:id", s.UpdatePost)
	posts.Delete("/:id", s.DeletePost)

	protected.Get("/matches", s.ListMatches)
	protected.Get("/inquiries", s.ListInquiries)
	protected.Patch("/inquiries/:id", s.DecideInquiry)

	conversations := protected.Group("/conversations")
	conversations.Get("/", s.GetConversations)
	conversations.Post("/", s.CreateConversation)
	conversations.Get("/:id/messages", s.GetMessages)
	protected.Post("/messages", middleware.RateLimit(s.redis, 30, time.Minute, "send_message"), s.SendMessage)

	notificationRoutes := protected.Group("/notifications")
	notificationRoutes.Get("/", s.GetNotifications)
	notificationRoutes.Post("/read-all", s.MarkAllNotificationsRead)
	notificationRoutes.Post("/:id/read", s.MarkNotificationRead)

	protected.Get("/streak", s.GetStreak)
	protected.Get("/overview", s.GetOverview)
	protected.Post("/dummy-data", s.LoadDummyData)
	protected.Post("/ws/ticket", s.IssueWSTicket)
	protected.Get("/feature-flags", s.GetFeatureFlags)
}

// NotFound is the catch-all for unmatched routes.
func (s *Server) NotFound(c *fiber.Ctx) error {
	return models.RespondWithError(c, fiber.StatusNotFound, models.NewNotFoundMessage("Not found"))
}

// errorHandler converts errors that escaped a handler into a 500 JSON body.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code == fiber.StatusNotFound {
		return s.NotFound(c)
	}
	middleware.Logger.ErrorContext(c.UserContext(), "unhandled request error",
		slog.String("path", c.Path()),
		slog.String("error", err.Error()),
	)
	return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
}

// NewApp builds the Fiber app with middleware, routes and the 404 fallback.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "HackSwipe API",
		ErrorHandler: s.errorHandler,
	})
	// /metrics is registered ahead of the middleware chain so scrapes skip the limiter.
	middleware.InitMetrics(app, "hackswipe-api")
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	app.Use(s.NotFound)
	s.app = app
	return app
}

// HealthCheck is a simple alias for ReadinessCheck
// @Summary API health
// @Tags health
// @Produce json
// @Success 200 {object} object{status=string}
// @Router / [get]
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	return s.ReadinessCheck(c)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests. Redis is optional, so
// only the database decides readiness.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "unavailable"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"message": "HackSwipe API",
		"version": "1.0.0",
		"status":  overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// AuthRequired resolves the bearer session and stores the user id in locals.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized, models.NewUnauthenticatedError())
		}

		userID, err := s.authService.Authenticate(c.UserContext(), token)
		if err != nil {
			return s.respondError(c, err)
		}

		c.Locals("userID", userID)
		c.Locals("sessionToken", token)
		c.SetUserContext(middleware.WithUserID(c.UserContext(), userID))
		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) string {
	scheme, token, ok := strings.Cut(c.Get(fiber.HeaderAuthorization), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// startBackground wires the hub to Redis and schedules maintenance jobs.
func (s *Server) startBackground() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.shutdownCtx = ctx
	s.shutdownFn = cancel

	if s.notifier.Enabled() {
		go func() {
			if err := s.hub.StartWiring(s.shutdownCtx, s.notifier); err != nil {
				middleware.Logger.Error("failed to start hub wiring",
					slog.String("hub", s.hub.Name()), slog.String("error", err.Error()))
			}
		}()
	}

	if spec := s.config.SessionSweepSchedule; spec != "" {
		s.scheduler = jobs.NewScheduler(jobTimeout)
		if err := s.scheduler.Register(spec, jobs.NewSessionSweeper(s.sessionRepo)); err != nil {
			return err
		}
		s.scheduler.Start()
	}
	return nil
}

// Start starts the server
func (s *Server) Start() error {
	app := s.NewApp()
	if err := s.startBackground(); err != nil {
		return err
	}

	middleware.Logger.Info("Server starting", slog.String("port", s.config.Port))
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.shutdownFn != nil {
		s.shutdownFn()
	}

	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", slog.String("error", err.Error()))
		}
	}

	if s.scheduler != nil {
		s.scheduler.Stop()
	}

	if err := s.hub.Shutdown(ctx); err != nil {
		middleware.Logger.Error("error shutting down hub", slog.String("hub", s.hub.Name()), slog.String("error", err.Error()))
	}

	if err := database.Close(s.db); err != nil {
		middleware.Logger.Error("error closing database", slog.String("error", err.Error()))
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			middleware.Logger.Error("error closing redis", slog.String("error", err.Error()))
		}
	}

	middleware.Logger.Info("Server shutdown complete")
	return nil
}
