package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Ishangupta-cyber/BookStoreManagement/internal/books"
	"github.com/Ishangupta-cyber/BookStoreManagement/internal/config"
	"github.com/Ishangupta-cyber/BookStoreManagement/internal/httpx"
	kafkax "github.com/Ishangupta-cyber/BookStoreManagement/internal/kafka"
	"github.com/Ishangupta-cyber/BookStoreManagement/internal/orders"
	"github.com/Ishangupta-cyber/BookStoreManagement/internal/postgres"
	"github.com/Ishangupta-cyber/BookStoreManagement/internal/redisx"
	"github.com/Ishangupta-cyber/BookStoreManagement/internal/users"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producer
	prod := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderPlaced, 1024)
	prod.Start(ctx)

	// Repos & services
	userRepo := &users.Repo{DB: db}
	auth := &users.Auth{Repo: userRepo, Secret: []byte(cfg.JWTSecret)}
	bookRepo := &books.Repo{DB: db}
	ledger := &books.Ledger{DB: db}
	orderRepo := &orders.Repo{DB: db}
	engine := &orders.Engine{Catalog: ledger, Store: orderRepo}
	query := &orders.Query{Source: orderRepo}

	// Router & handlers
	router := httpx.NewRouter()
	authmw := &httpx.AuthMiddleware{Auth: auth, Users: userRepo}

	uh := &httpx.UsersHandler{Auth: auth, Repo: userRepo}
	uh.Register(router, authmw.Authorize)

	bh := &httpx.BooksHandler{Repo: bookRepo, Redis: rdb}
	bh.Register(router, authmw.Authorize)

	oh := &httpx.OrdersHandler{
		Engine:   engine,
		Query:    query,
		Producer: prod,
		Redis:    rdb,
		Service:  cfg.ServiceName,
	}
	oh.Register(router, authmw.Authorize)

	// HTTP server
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	// graceful shutdown
	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	// wait signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	prod.Close()      // tutup inbox -> flush & close writer
	prod.WaitClosed() // drain
}
