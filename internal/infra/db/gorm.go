package db

import (
	"github.com/Ysaidd/proyectoAnfer-sub000/internal/domain/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect はDBに接続して *gorm.DB を返す。
func Connect(dsn string, debug bool) (*gorm.DB, error) {
	level := logger.Warn
	if debug {
		level = logger.Info
	}
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
}

// Migrate はレシート台帳のテーブルを作る。
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&model.Receipt{}, &model.ReceiptLine{})
}
