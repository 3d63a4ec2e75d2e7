package provider

import (
	"github.com/shopworks/storefront/internal/authz"
	"github.com/shopworks/storefront/internal/cache"
	"github.com/shopworks/storefront/internal/config"
	"github.com/shopworks/storefront/internal/logger"
	"github.com/shopworks/storefront/internal/models"
	"github.com/shopworks/storefront/internal/queue"
	"github.com/shopworks/storefront/internal/repository"
	"github.com/shopworks/storefront/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo      repository.UserRepository
	ProductRepo   repository.ProductRepository
	CartRepo      repository.CartRepository
	OrderRepo     repository.OrderRepository
	CardRepo      repository.CardRepository
	PromotionRepo repository.PromotionRepository
	PageViewRepo  repository.PageViewRepository
	DashboardRepo repository.DashboardRepository

	// Services
	AuthzService          *authz.Service
	AuthService           *service.AuthService
	ProductService        *service.ProductService
	CartService           *service.CartService
	PromotionService      *service.PromotionService
	PromotionAdminService *service.PromotionAdminService
	CardService           *service.CardService
	CheckoutService       *service.CheckoutService
	OrderService          *service.OrderService
	DashboardService      *service.DashboardService
	PageViewService       *service.PageViewService
	UserAdminService      *service.UserAdminService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.CardRepo = repository.NewCardRepository(db)
	c.PromotionRepo = repository.NewPromotionRepository(db)
	c.PageViewRepo = repository.NewPageViewRepository(db)
	c.DashboardRepo = repository.NewDashboardRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.AuthService = service.NewAuthService(c.Config, c.UserRepo)
	c.ProductService = service.NewProductService(c.ProductRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo)
	c.PromotionService = service.NewPromotionService(c.PromotionRepo)
	c.PromotionAdminService = service.NewPromotionAdminService(c.PromotionRepo)
	c.CardService = service.NewCardService(c.CardRepo)
	c.CheckoutService = service.NewCheckoutService(c.CartRepo, c.ProductRepo, c.OrderRepo, c.CardRepo, c.PromotionService, c.QueueClient)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.ProductRepo, c.QueueClient)
	c.DashboardService = service.NewDashboardService(c.DashboardRepo)
	c.PageViewService = service.NewPageViewService(c.PageViewRepo, c.QueueClient)
	c.UserAdminService = service.NewUserAdminService(c.UserRepo, c.AuthzService)
}
