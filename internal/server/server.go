package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskman/internal/access"
	"taskman/internal/config"
	"taskman/internal/handler"
	"taskman/internal/middleware"
	"taskman/internal/model"
	"taskman/internal/repository"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
}

func Init(cfg *config.Config) (*Server, error) {
	// Setup GORM
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("❌ failed to connect to DB: %w", err)
	}
	log.Println("✅ Connected to database")

	if err := db.AutoMigrate(
		&model.User{},
		&model.Board{},
		&model.BoardAccess{},
		&model.Stage{},
		&model.Task{},
		&model.Tag{},
	); err != nil {
		return nil, fmt.Errorf("❌ failed to migrate schema: %w", err)
	}

	// Setup Gin
	r := gin.Default()
	r.Use(cors.Default())

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	accessRepo := repository.NewBoardAccessRepository(db)
	stageRepo := repository.NewStageRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	tagRepo := repository.NewTagRepository(db)

	// Initialize the access-control engine
	resolver := access.NewResolver(boardRepo, stageRepo, taskRepo, tagRepo, accessRepo)
	evaluator := access.NewEvaluator(boardRepo, accessRepo)
	gate := access.NewGate(resolver, evaluator, access.DefaultPolicies())
	scoper := access.NewScoper()

	// Initialize handlers
	userHandler := handler.NewUserHandler(userRepo)
	boardHandler := handler.NewBoardHandler(boardRepo, gate, evaluator, scoper)
	boardAccessHandler := handler.NewBoardAccessHandler(accessRepo, userRepo, gate)
	stageHandler := handler.NewStageHandler(stageRepo, gate, scoper)
	taskHandler := handler.NewTaskHandler(taskRepo, tagRepo, gate, resolver, scoper)
	tagHandler := handler.NewTagHandler(tagRepo, gate, scoper)

	// Public routes
	r.POST("/register", userHandler.Register)
	r.POST("/login", userHandler.Login)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes - require authentication
	authorized := r.Group("/")
	authorized.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	{
		// User routes: "me" addresses the authenticated user, the
		// collection is never listable
		authorized.GET("/users", userHandler.List)
		authorized.GET("/users/me", userHandler.Me)
		authorized.PATCH("/users/me", userHandler.UpdateMe)
		authorized.DELETE("/users/me", userHandler.DeleteMe)
		authorized.GET("/users/:id", userHandler.GetByID)

		// Board routes
		authorized.POST("/boards", boardHandler.Create)
		authorized.GET("/boards", boardHandler.List)
		authorized.GET("/boards/:id", boardHandler.GetByID)
		authorized.PATCH("/boards/:id", boardHandler.Update)
		authorized.DELETE("/boards/:id", boardHandler.Delete)

		// Board access routes
		authorized.POST("/boards/:id/accesses", boardAccessHandler.Grant)
		authorized.GET("/boards/:id/accesses", boardAccessHandler.List)
		authorized.PATCH("/accesses/:id", boardAccessHandler.Update)
		authorized.DELETE("/accesses/:id", boardAccessHandler.Delete)

		// Stage routes
		authorized.POST("/boards/:id/stages", stageHandler.Create)
		authorized.GET("/boards/:id/stages", stageHandler.List)
		authorized.GET("/stages/:id", stageHandler.GetByID)
		authorized.PATCH("/stages/:id", stageHandler.Update)
		authorized.DELETE("/stages/:id", stageHandler.Delete)

		// Task routes
		authorized.POST("/stages/:id/tasks", taskHandler.Create)
		authorized.GET("/stages/:id/tasks", taskHandler.List)
		authorized.GET("/tasks/:id", taskHandler.GetByID)
		authorized.PATCH("/tasks/:id", taskHandler.Update)
		authorized.DELETE("/tasks/:id", taskHandler.Delete)
		authorized.POST("/tasks/:id/tags/:tag_id", taskHandler.AddTag)
		authorized.DELETE("/tasks/:id/tags/:tag_id", taskHandler.RemoveTag)
		authorized.GET("/tasks/:id/tags", taskHandler.GetTags)

		// Tag routes
		authorized.POST("/boards/:id/tags", tagHandler.Create)
		authorized.GET("/boards/:id/tags", tagHandler.List)
		authorized.GET("/tags/:id", tagHandler.GetByID)
		authorized.PATCH("/tags/:id", tagHandler.Update)
		authorized.DELETE("/tags/:id", tagHandler.Delete)
	}
	return &Server{
		Engine: r,
		DB:     db,
		Config: cfg,
	}, nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		log.Printf("🚀 Server running on port %s\n", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %s", err)
	}

	log.Println("✅ Server exited properly")
}
