package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Ishangupta-cyber/BookStoreManagement/internal/books"
	"github.com/Ishangupta-cyber/BookStoreManagement/internal/config"
	kafkax "github.com/Ishangupta-cyber/BookStoreManagement/internal/kafka"
	"github.com/Ishangupta-cyber/BookStoreManagement/internal/orders"
	"github.com/Ishangupta-cyber/BookStoreManagement/internal/postgres"
	"github.com/Ishangupta-cyber/BookStoreManagement/internal/redisx"
	"github.com/Ishangupta-cyber/BookStoreManagement/internal/stockwatch"
)

func mustAtoi(s, def string) int {
	if s == "" {
		s = def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 1
	}
	return i
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Producer alert stok rendah
	prod := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicStockLow, 1024)
	prod.Start(ctx)

	// Service
	svc := &stockwatch.Service{
		Catalog:     &books.Ledger{DB: db},
		Redis:       rdb,
		Producer:    prod,
		ServiceName: cfg.ServiceName + "-stockwatch",
		Threshold:   mustAtoi(os.Getenv("STOCK_LOW_THRESHOLD"), "5"),
	}

	// Consumer
	group := getenv("STOCKWATCH_GROUP", "stockwatch-svc")
	workers := mustAtoi(os.Getenv("STOCKWATCH_WORKERS"), "8")
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, group, orders.TopicOrderPlaced, workers)

	go func() {
		log.Printf("stockwatch consumer started: group=%s topic=%s workers=%d", group, orders.TopicOrderPlaced, workers)
		if err := cons.Start(ctx, svc.HandleOrderPlaced); err != nil {
			log.Printf("consumer exit: %v", err)
			cancel()
		}
	}()

	// graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down consumer...")
	cancel() // producer loop nge-flush inbox lalu exit
	time.Sleep(500 * time.Millisecond)
	prod.WaitClosed()
}
