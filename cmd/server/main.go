package main

import (
	"database/sql"
	"log"
	"net/http"

	"toko-be/internal/cart"
	"toko-be/internal/config"
	"toko-be/internal/db"
	"toko-be/internal/httpapi"
	"toko-be/internal/inventory"
	"toko-be/internal/logger"
	"toko-be/internal/metrics"
	"toko-be/internal/notify"
	"toko-be/internal/order"
	"toko-be/internal/product"
	"toko-be/internal/review"
	"toko-be/internal/user"

	"go.uber.org/zap"
)

// Seams for tests.
var (
	initDBFunc      = db.InitDB
	startServerFunc = http.ListenAndServe
)

func newServer(database *sql.DB) *httpapi.Server {
	stats := &metrics.Store{}
	mailer := notify.NewLogSender()

	invRepo := inventory.NewRepository(database)

	userSvc := user.NewService(user.NewRepository(database))
	productSvc := product.NewService(product.NewRepository(database))
	cartSvc := cart.NewService(cart.NewRepository(database))
	reviewSvc := review.NewService(review.NewRepository(database))
	invSvc := inventory.NewService(invRepo)
	orderSvc := order.NewService(order.NewRepository(database, invRepo), stats, mailer)

	return httpapi.NewServer(httpapi.Deps{
		Users:    userSvc,
		Products: productSvc,
		Carts:    cartSvc,
		Orders:   orderSvc,
		Reviews:  reviewSvc,
		Stock:    invSvc,
		Mailer:   mailer,
		Stats:    stats,
	})
}

func run() error {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	srv := newServer(database)

	logger.L().Info("server listening", zap.String("port", cfg.AppPort))
	return startServerFunc(":"+cfg.AppPort, srv.Engine())
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
