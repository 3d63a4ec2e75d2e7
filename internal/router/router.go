package router

import (
	"fmt"
	"strings"

	"github.com/shopworks/storefront/internal/cache"
	"github.com/shopworks/storefront/internal/config"
	adminhandlers "github.com/shopworks/storefront/internal/http/handlers/admin"
	publichandlers "github.com/shopworks/storefront/internal/http/handlers/public"
	"github.com/shopworks/storefront/internal/logger"
	"github.com/shopworks/storefront/internal/provider"
	"github.com/shopworks/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "sf"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	apiV1.Use(OptionalUserMiddleware(cfg.JWT.SecretKey))
	apiV1.Use(PageViewTrackMiddleware(c.PageViewService))
	{
		// 用户认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.Register)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.Login)
		}

		// 商品浏览接口（无需登录）
		apiV1.GET("/products", publicHandler.ListProducts)
		apiV1.GET("/products/:id", publicHandler.GetProduct)

		// 用户接口（需鉴权）
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo))
		{
			user.POST("/auth/logout", publicHandler.Logout)
			user.GET("/me", publicHandler.Profile)
			user.PUT("/me/profile", publicHandler.UpdateProfile)
			user.PUT("/me/password", publicHandler.ChangePassword)

			user.GET("/cart", publicHandler.GetCart)
			user.POST("/cart/items", publicHandler.AddCartItem)
			user.PUT("/cart/items/:id", publicHandler.UpdateCartItem)
			user.DELETE("/cart/items/:id", publicHandler.DeleteCartItem)
			user.DELETE("/cart", publicHandler.ClearCart)
			user.POST("/cart/merge", publicHandler.MergeCart)
			user.POST("/cart/checkout", publicHandler.Checkout)

			user.GET("/promotions/:code/validate", publicHandler.ValidatePromotion)

			user.GET("/cards", publicHandler.ListCards)
			user.POST("/cards", publicHandler.CreateCard)
			user.POST("/cards/:id/default", publicHandler.SetDefaultCard)
			user.DELETE("/cards/:id", publicHandler.DeleteCard)

			user.GET("/orders", publicHandler.ListOrders)
			user.GET("/orders/:id", publicHandler.GetOrder)
			user.POST("/orders/:id/cancel", publicHandler.CancelOrder)
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		admin.Use(UserJWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo), AdminRBACMiddleware(c.AuthzService))
		{
			// 仪表盘
			admin.GET("/dashboard/overview", adminHandler.Dashboard)
			admin.GET("/page-views", adminHandler.ListPageViews)

			// 商品管理
			admin.GET("/products", adminHandler.ListProducts)
			admin.GET("/products/:id", adminHandler.GetProduct)
			admin.POST("/products", adminHandler.CreateProduct)
			admin.PUT("/products/:id", adminHandler.UpdateProduct)
			admin.DELETE("/products/:id", adminHandler.DeleteProduct)

			// 优惠码管理
			admin.GET("/promotions", adminHandler.ListPromotions)
			admin.GET("/promotions/:id", adminHandler.GetPromotion)
			admin.POST("/promotions", adminHandler.CreatePromotion)
			admin.PUT("/promotions/:id", adminHandler.UpdatePromotion)
			admin.DELETE("/promotions/:id", adminHandler.DeletePromotion)

			// 订单管理
			admin.GET("/orders", adminHandler.ListOrders)
			admin.GET("/orders/:id", adminHandler.GetOrder)
			admin.PATCH("/orders/:id", adminHandler.UpdateOrderStatus)

			// 用户管理
			admin.GET("/users", adminHandler.ListUsers)
			admin.GET("/users/:id", adminHandler.GetUser)
			admin.PUT("/users/:id/status", adminHandler.UpdateUserStatus)
			admin.POST("/users/:id/roles", adminHandler.AssignUserRole)
			admin.DELETE("/users/:id/roles/:role", adminHandler.RevokeUserRole)
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

// PageViewTrackMiddleware 页面访问采集中间件，只采集前台 GET 请求
func PageViewTrackMiddleware(pageViewService *service.PageViewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if pageViewService == nil {
			return
		}
		if c.Request.Method != "GET" {
			return
		}
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/api/v1/admin") {
			return
		}
		if c.Writer.Status() >= 400 {
			return
		}

		var userID *uint
		if value, ok := c.Get("user_id"); ok {
			if id, ok := value.(uint); ok && id > 0 {
				userID = &id
			}
		}
		pageViewService.Record(userID, path, c.ClientIP(), c.Request.UserAgent())
	}
}
