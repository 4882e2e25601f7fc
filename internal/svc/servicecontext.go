package svc

import (
	"log"
	"time"

	"walletpool/internal/chain"
	"walletpool/internal/config"
	"walletpool/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type ServiceContext struct {
	Config   config.Config
	Registry model.WalletRegistry
	Chains   chain.Factory
}

func NewServiceContext(c config.Config) *ServiceContext {
	// 配置了 Postgres 就用数据库注册表，否则用 JSON 文件注册表
	var registry model.WalletRegistry
	if c.Postgres.DSN != "" {
		db, err := initDB(c.Postgres.DSN)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		registry = model.NewWalletsDao(db)
	} else {
		registry = model.NewFileRegistry(c.Registry.Path)
	}

	return &ServiceContext{
		Config:   c,
		Registry: registry,
		Chains:   chain.NewFactory(c.Chains),
	}
}

func initDB(dsn string) (*gorm.DB, error) {
	newLogger := logger.New(
		log.New(log.Writer(), "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Silent,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&model.Wallets{}); err != nil {
		return nil, err
	}

	// 设置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	return db, nil
}
