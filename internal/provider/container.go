package provider

import (
	"time"

	"github.com/skigrip-bot/internal/cache"
	"github.com/skigrip-bot/internal/config"
	"github.com/skigrip-bot/internal/logger"
	"github.com/skigrip-bot/internal/models"
	"github.com/skigrip-bot/internal/queue"
	"github.com/skigrip-bot/internal/repository"
	"github.com/skigrip-bot/internal/service"
	"github.com/skigrip-bot/internal/session"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo   repository.AdminRepository
	ProductRepo repository.ProductRepository
	CartRepo    repository.CartRepository
	OrderRepo   repository.OrderRepository

	// Services
	AuthService         *service.AuthService
	ProductService      *service.ProductService
	CartService         *service.CartService
	OrderService        *service.OrderService
	DashboardService    *service.DashboardService
	NotificationService *service.NotificationService

	// Session
	SessionManager *session.Manager
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
	c.initSession()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
}

func (c *Container) initServices() {
	telegramSender := service.NewTelegramNotifyService(c.Config.Notify)
	c.NotificationService = service.NewNotificationService(c.OrderRepo, c.QueueClient, telegramSender)

	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.ProductService = service.NewProductService(c.ProductRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.ProductRepo, c.CartRepo, c.NotificationService)
	c.DashboardService = service.NewDashboardService(c.ProductRepo, c.OrderRepo)
}

func (c *Container) initSession() {
	ttl := time.Duration(c.Config.Session.TTLMinutes) * time.Minute
	var store session.Store
	if cache.Enabled() {
		store = session.NewRedisStore()
	} else {
		store = session.NewMemoryStore()
	}
	c.SessionManager = session.NewManager(store, ttl)
}
