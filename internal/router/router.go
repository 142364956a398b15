package router

import (
	"fmt"
	"strings"

	"github.com/skigrip-bot/internal/cache"
	"github.com/skigrip-bot/internal/config"
	adminhandlers "github.com/skigrip-bot/internal/http/handlers/admin"
	publichandlers "github.com/skigrip-bot/internal/http/handlers/public"
	"github.com/skigrip-bot/internal/http/response"
	"github.com/skigrip-bot/internal/logger"
	"github.com/skigrip-bot/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "skigrip"
	}
	redisClient := cache.Client()
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	{
		// 用户侧接口，身份由接入层透传
		apiV1.GET("/products", publicHandler.ListProducts)
		apiV1.GET("/products/:id", publicHandler.GetProduct)
		apiV1.GET("/pricing/tiers", publicHandler.GetPriceTiers)

		apiV1.GET("/cart", publicHandler.GetCart)
		apiV1.POST("/cart/items", publicHandler.AddCartItem)
		apiV1.POST("/cart/items/remove", publicHandler.RemoveCartItem)
		apiV1.DELETE("/cart", publicHandler.ClearCart)

		apiV1.POST("/orders", publicHandler.CreateOrder)

		apiV1.GET("/session", publicHandler.GetSession)
		apiV1.POST("/session/transition", publicHandler.TransitionSession)
		apiV1.POST("/session/reset", publicHandler.ResetSession)

		// 管理端接口
		adminGroup := apiV1.Group("/admin")
		{
			adminGroup.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIP), adminHandler.Login)

			authed := adminGroup.Group("")
			authed.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo))
			{
				authed.GET("/products", adminHandler.GetAdminProducts)
				authed.POST("/products", adminHandler.CreateProduct)
				authed.PUT("/products/:id/quantity", adminHandler.UpdateProductQuantity)
				authed.PUT("/products/:id/price", adminHandler.UpdateProductPrice)
				authed.PUT("/products/:id/photo", adminHandler.UpdateProductPhoto)
				authed.DELETE("/products/:id", adminHandler.DeleteProduct)

				authed.GET("/orders", adminHandler.GetAdminOrders)
				authed.GET("/orders/:id", adminHandler.GetAdminOrder)

				authed.GET("/stats", adminHandler.GetDashboardStats)
			}
		}
	}

	r.GET("/healthz", func(ctx *gin.Context) {
		response.Success(ctx, gin.H{"status": "ok"})
	})

	r.NoRoute(func(ctx *gin.Context) {
		response.NotFound(ctx, "接口不存在")
	})

	return r
}
