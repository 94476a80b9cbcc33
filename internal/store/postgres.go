package store

import (
	"github.com/Nehal2048/book-hive/configs"
	"github.com/Nehal2048/book-hive/internal/logger"
	"github.com/Nehal2048/book-hive/internal/models"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func NewDB() {
	dsn := configs.AppConfig.DB.DSN
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: false,
	}), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Log.Fatal("failed to connect to database", zap.Error(err))
	}
	DB = db
	logger.Log.Info("connected to the database")
}

func DBMigrate() {
	DB.AutoMigrate(
		&models.User{},
		&models.Listing{},
		&models.BorrowRecord{},
		&models.ExchangeRecord{},
		&models.Order{},
		&models.OrderedItem{},
		&models.Transaction{},
	)
	logger.Log.Info("migrations loaded")
}
