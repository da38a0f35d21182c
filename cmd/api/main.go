package main

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"user-service-backend/internal/domain/repository"
	"user-service-backend/internal/infrastructure/config"
	"user-service-backend/internal/infrastructure/database/inmemory"
	"user-service-backend/internal/infrastructure/database/jsonfile"
	"user-service-backend/internal/infrastructure/database/postgres"
	httpHandler "user-service-backend/internal/interface/http/handler"
	"user-service-backend/internal/interface/presenter"
	"user-service-backend/internal/usecase"
)

// main wires dependencies (dependency injection) and starts the HTTP server.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	userRepo := mustBuildRepository(cfg)
	userPresenter := presenter.NewUserPresenter()
	userUsecase := usecase.NewUserService(userRepo)
	userHandler := httpHandler.NewUserHandler(userUsecase, userPresenter)

	app := fiber.New()
	setupCORS(app)
	app.Use(requestLogger)

	app.Get("/health", func(c *fiber.Ctx) error {
		count, err := userUsecase.Count(c.UserContext())
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "unhealthy"})
		}
		return c.JSON(fiber.Map{
			"status":      "healthy",
			"storage":     cfg.Storage,
			"total_users": count,
		})
	})

	userHandler.RegisterRoutes(app)

	log.Printf("starting server on %s (storage=%s)", cfg.Addr, cfg.Storage)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func mustBuildRepository(cfg config.Config) repository.UserRepository {
	switch cfg.Storage {
	case config.StorageMemory:
		return inmemory.NewUserRepository()
	case config.StorageFile:
		repo, err := jsonfile.NewUserRepository(cfg.FilePath)
		if err != nil {
			log.Fatalf("file storage: %v", err)
		}
		return repo
	case config.StoragePostgres:
		db := mustOpenDB(cfg.DatabaseURL)
		if err := postgres.EnsureSchema(context.Background(), db); err != nil {
			log.Fatalf("postgres storage: %v", err)
		}
		return postgres.NewUserRepository(db)
	default:
		log.Fatalf("unknown storage kind %q", cfg.Storage)
		return nil
	}
}

func mustOpenDB(url string) *sql.DB {
	if url == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", url)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}

	if err := db.Ping(); err != nil {
		log.Fatalf("ping database: %v", err)
	}

	return db
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
}

func requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	log.Printf("%s %s -> %d (%v)", c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start))
	return err
}
