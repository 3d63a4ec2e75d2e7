package main

import (
	"time"

	"github.com/shopworks/storefront/internal/config"
	"github.com/shopworks/storefront/internal/constants"
	"github.com/shopworks/storefront/internal/logger"
	"github.com/shopworks/storefront/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加商品
	products := []models.Product{
		{
			Name:        "无线蓝牙耳机",
			Description: "高品质音质，长续航，佩戴舒适。",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(99.99)),
			Stock:       120,
			IsActive:    true,
		},
		{
			Name:        "机械键盘",
			Description: "87 键热插拔轴体，PBT 键帽。",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(249.00)),
			Stock:       60,
			IsActive:    true,
		},
		{
			Name:        "便携保温杯",
			Description: "500ml 不锈钢真空保温。",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(39.90)),
			Stock:       200,
			IsActive:    true,
		},
		{
			Name:        "智能手表",
			Description: "心率监测，7 天续航。",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(599.00)),
			Stock:       30,
			IsActive:    true,
		},
		{
			Name:        "限量手办",
			Description: "已停售的收藏款。",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(899.00)),
			Stock:       0,
			IsActive:    false,
		},
	}

	for _, product := range products {
		var existing models.Product
		if err := models.DB.Where("name = ?", product.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&product).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", product.Name, err)
			} else {
				stdLog.Printf("Created product: %s", product.Name)
			}
		} else {
			stdLog.Printf("Product already exists: %s", product.Name)
		}
	}

	// 添加折扣码
	now := time.Now()
	monthLater := now.AddDate(0, 1, 0)
	lastMonth := now.AddDate(0, -1, 0)
	promotions := []models.Promotion{
		{
			Code:     "WELCOME10",
			Type:     constants.PromotionTypePercent,
			Value:    models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
			StartsAt: &now,
			EndsAt:   &monthLater,
			IsActive: true,
		},
		{
			Code:     "SAVE50",
			Type:     constants.PromotionTypeFixed,
			Value:    models.NewMoneyFromDecimal(decimal.NewFromInt(50)),
			IsActive: true,
		},
		{
			Code:     "EXPIRED20",
			Type:     constants.PromotionTypePercent,
			Value:    models.NewMoneyFromDecimal(decimal.NewFromInt(20)),
			StartsAt: &lastMonth,
			EndsAt:   &now,
			IsActive: false,
		},
	}

	for _, promotion := range promotions {
		var existing models.Promotion
		if err := models.DB.Where("code = ?", promotion.Code).First(&existing).Error; err != nil {
			if err := models.DB.Create(&promotion).Error; err != nil {
				stdLog.Printf("Failed to create promotion %s: %v", promotion.Code, err)
			} else {
				stdLog.Printf("Created promotion: %s", promotion.Code)
			}
		} else {
			stdLog.Printf("Promotion already exists: %s", promotion.Code)
		}
	}

	stdLog.Println("Seed completed")
}
