package main

import (
	"github.com/skigrip-bot/internal/config"
	"github.com/skigrip-bot/internal/logger"
	"github.com/skigrip-bot/internal/models"
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
		stdLog.Fatalf("数据库连接失败: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("数据库迁移失败: %v", err)
	}

	products := []models.Product{
		{Name: "绑板带 35cm", Quantity: 20, Price: models.NewMoneyFromInt(650)},
		{Name: "绑板带 50cm", Quantity: 15, Price: models.NewMoneyFromInt(650)},
		{Name: "绑板带儿童款 25cm", Quantity: 10, Price: models.NewMoneyFromInt(650)},
	}
	for i := range products {
		var count int64
		if err := models.DB.Model(&models.Product{}).Where("name = ?", products[i].Name).Count(&count).Error; err != nil {
			stdLog.Fatalf("查询商品失败: %v", err)
		}
		if count > 0 {
			stdLog.Printf("商品已存在，跳过: %s", products[i].Name)
			continue
		}
		if err := models.DB.Create(&products[i]).Error; err != nil {
			stdLog.Fatalf("创建商品失败: %v", err)
		}
		stdLog.Printf("商品已创建: %s (ID %d)", products[i].Name, products[i].ID)
	}

	if err := models.InitDefaultAdmin(cfg.Admin.Username, cfg.Admin.Password); err != nil {
		stdLog.Fatalf("初始化管理员失败: %v", err)
	}

	stdLog.Printf("数据初始化完成")
}
