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

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/gmodebadze/edu_platform/internal/config"
	"github.com/gmodebadze/edu_platform/internal/es"
	"github.com/gmodebadze/edu_platform/internal/handlers"
	"github.com/gmodebadze/edu_platform/internal/logging"
	mwauth "github.com/gmodebadze/edu_platform/internal/middleware/auth"
	loggingmw "github.com/gmodebadze/edu_platform/internal/middleware/logging"
	"github.com/gmodebadze/edu_platform/internal/mykafka"
	"github.com/gmodebadze/edu_platform/internal/repo"
	"github.com/gmodebadze/edu_platform/internal/service"
	"github.com/gmodebadze/edu_platform/internal/tokens"
	httpserver "github.com/gmodebadze/edu_platform/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	prod, err := mykafka.NewProducer([]string{configuration.KAFKA_ADDRESS})
	if err != nil {
		log.Printf("kafka disabled: %v", err)
		prod = nil
	}

	esClient, err := es.NewClient(configuration)
	if err != nil {
		log.Printf("elasticsearch disabled: %v", err)
		esClient = nil
	}

	tokenSvc := tokens.New([]byte(configuration.JWT_SECRET))
	users := &repo.UserRepo{DB: db}
	roles := &repo.RoleRepo{DB: db}
	courses := &repo.CourseRepo{DB: db}

	authSvc := &service.AuthService{Users: users, Roles: roles, Tokens: tokenSvc}
	courseSvc := &service.CourseService{Courses: courses}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), loggingmw.RequestLogger(logger))

	deps := httpserver.Deps{
		DB:            db,
		AuthHandler:   &handlers.AuthHandler{Svc: authSvc, Producer: prod},
		UserHandler:   &handlers.UserHandler{Svc: authSvc, Producer: prod, UploadDir: configuration.UPLOAD_DIR},
		CourseHandler: &handlers.CourseHandler{Svc: courseSvc, Producer: prod, ES: esClient, Index: "course", UploadDir: configuration.UPLOAD_DIR},
		SearchHandler: &handlers.SearchHandler{ES: esClient, Index: "course"},
		Auth:          &mwauth.Middleware{Tokens: tokenSvc, Users: users},
		UploadDir:     configuration.UPLOAD_DIR,
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + configuration.PORT,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := prod.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
