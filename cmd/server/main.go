package main

import (
	"tilemart-be/internal/activity"
	"tilemart-be/internal/address"
	"tilemart-be/internal/cart"
	"tilemart-be/internal/config"
	"tilemart-be/internal/db"
	"tilemart-be/internal/handler"
	"tilemart-be/internal/logger"
	"tilemart-be/internal/order"
	"tilemart-be/internal/product"
	"tilemart-be/internal/sales"
	"tilemart-be/internal/stock"
	"tilemart-be/internal/user"
	"tilemart-be/internal/verification"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	activityRepo := activity.NewRepository(database)
	activitySvc := activity.NewService(activityRepo)

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo)

	cartRepo := cart.NewRepository(database)
	cartSvc := cart.NewService(cartRepo, productRepo)

	addressRepo := address.NewRepository(database)
	addressSvc := address.NewService(addressRepo, activitySvc)

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo, activitySvc)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, addressRepo, activitySvc)

	stockRepo := stock.NewRepository(database)
	stockSvc := stock.NewService(stockRepo)

	salesRepo := sales.NewRepository(database)
	salesSvc := sales.NewService(salesRepo)

	verificationRepo := verification.NewRepository(database)
	verificationSvc := verification.NewService(verificationRepo, userSvc, verification.NewSMTPSender(cfg))

	h := handler.New(
		userSvc, productSvc, cartSvc, addressSvc,
		orderSvc, stockSvc, salesSvc, activitySvc, verificationSvc,
	)

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	h.RegisterRoutes(r)

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}

	logger.L().Info("server starting", zap.String("port", port))
	if err := r.Run(":" + port); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}
