package database

import (
	"fmt"
	"time"

	"github.com/Nicoczyruk/standburg-project-sub000/internal/config"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/logger"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) error {
	db, err := Open(postgres.Open(cfg.DatabaseDSN), cfg)
	if err != nil {
		return err
	}
	if err := Migrate(db); err != nil {
		return err
	}

	DB = db
	zap.L().Info("Conexión a la base de datos establecida, migración completa")
	return nil
}

// Open abre el pool sobre el dialector dado y aplica los límites de config.
func Open(dialector gorm.Dialector, cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.NewGormLogger(zap.L(), logger.GormLevel(cfg.LogLevel)),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("no se pudo conectar a la base de datos: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("no se pudo obtener sql.DB: %w", err)
	}
	if cfg.DBMaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	}
	if cfg.DBMaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	}
	if cfg.DBConnMaxLifetimeM > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.DBConnMaxLifetimeM) * time.Minute)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Table{},
		&models.Shift{},
		&models.Arqueo{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
		&models.CashMovement{},
		&models.Expense{},
		&models.AuditLog{},
	)
	if err != nil {
		return fmt.Errorf("AutoMigrate falló: %w", err)
	}
	return nil
}

// Ping verifica la conexión, lo usa /api/health.
func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// SumAmount suma la columna amount de la consulta q, redondeada a centavos.
func SumAmount(q *gorm.DB) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := q.Select("COALESCE(SUM(amount), 0)").Row().Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total.Round(2), nil
}
