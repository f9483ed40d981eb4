package main

import (
	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/server"
	"app/internal/usecase"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	//.envはあれば読む
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	var logger *zap.Logger
	if cfg.GoEnv == "prod" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		logger.Fatal("db connect failed", zap.Error(err))
	}
	if err := gormDB.AutoMigrate(
		&model.Customer{},
		&model.Item{},
		&model.Order{},
		&model.OrderLine{},
	); err != nil {
		logger.Fatal("migrate failed", zap.Error(err))
	}

	//Repository（GORM実装）生成
	customerRepo := infraRepo.NewCustomerGormRepository(gormDB)
	itemRepo := infraRepo.NewItemGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//Usecase生成
	customerUC := usecase.NewCustomerUsecase(customerRepo)
	itemUC := usecase.NewItemUsecase(itemRepo)
	orderUC := usecase.NewOrderUsecase(txManager, usecase.NewLineExpander())

	//Handler生成
	customerH := handler.NewCustomerHandler(customerUC)
	itemH := handler.NewItemHandler(itemUC)
	orderH := handler.NewOrderHandler(orderUC)

	//Server起動
	addr := ":" + cfg.Port
	logger.Info("starting api", zap.String("addr", addr))
	if err := server.Start(addr, logger, customerH, itemH, orderH); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
