package provider

import (
	"github.com/shopnext/internal/cache"
	"github.com/shopnext/internal/config"
	"github.com/shopnext/internal/logger"
	"github.com/shopnext/internal/models"
	"github.com/shopnext/internal/queue"
	"github.com/shopnext/internal/repository"
	"github.com/shopnext/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo         repository.UserRepository
	AddressRepo      repository.AddressRepository
	CategoryRepo     repository.CategoryRepository
	ProductRepo      repository.ProductRepository
	CartRepo         repository.CartRepository
	OrderRepo        repository.OrderRepository
	CouponRepo       repository.CouponRepository
	CouponUsageRepo  repository.CouponUsageRepository
	HeroRepo         repository.HeroRepository
	PromoRepo        repository.PromoRepository
	BannerRepo       repository.BannerRepository
	ReviewRepo       repository.ReviewRepository
	TestimonialRepo  repository.TestimonialRepository
	WishlistRepo     repository.WishlistRepository
	ActivityRepo     repository.ActivityRepository
	InventoryLogRepo repository.InventoryLogRepository

	// Services
	ContentActivator   *service.ContentActivator
	ActivityService    *service.ActivityService
	AuthService        *service.AuthService
	AddressService     *service.AddressService
	CategoryService    *service.CategoryService
	ProductService     *service.ProductService
	CartService        *service.CartService
	CouponService      *service.CouponService
	OrderService       *service.OrderService
	HeroService        *service.HeroService
	PromoService       *service.PromoService
	BannerService      *service.BannerService
	ReviewService      *service.ReviewService
	TestimonialService *service.TestimonialService
	WishlistService    *service.WishlistService
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

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.AddressRepo = repository.NewAddressRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.CouponRepo = repository.NewCouponRepository(db)
	c.CouponUsageRepo = repository.NewCouponUsageRepository(db)
	c.HeroRepo = repository.NewHeroRepository(db)
	c.PromoRepo = repository.NewPromoRepository(db)
	c.BannerRepo = repository.NewBannerRepository(db)
	c.ReviewRepo = repository.NewReviewRepository(db)
	c.TestimonialRepo = repository.NewTestimonialRepository(db)
	c.WishlistRepo = repository.NewWishlistRepository(db)
	c.ActivityRepo = repository.NewActivityRepository(db)
	c.InventoryLogRepo = repository.NewInventoryLogRepository(db)
}

func (c *Container) initServices() {
	c.ContentActivator = service.NewContentActivator(c.Config.Content.ActivationCooldownSeconds, nil)
	c.ActivityService = service.NewActivityService(c.ActivityRepo)
	c.AuthService = service.NewAuthService(c.Config, c.UserRepo)
	c.AddressService = service.NewAddressService(c.AddressRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, c.CategoryRepo, c.InventoryLogRepo, c.ActivityService)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo)
	c.CouponService = service.NewCouponService(c.CouponRepo, c.CouponUsageRepo)
	c.OrderService = service.NewOrderService(
		c.OrderRepo,
		c.CartRepo,
		c.ProductRepo,
		c.AddressRepo,
		c.InventoryLogRepo,
		c.CouponService,
		c.ActivityService,
		c.QueueClient,
		service.NewPricingRule(&c.Config.Order),
	)
	c.HeroService = service.NewHeroService(c.HeroRepo, c.ContentActivator, c.ActivityService)
	c.PromoService = service.NewPromoService(c.PromoRepo, c.ContentActivator, c.ActivityService)
	c.BannerService = service.NewBannerService(c.BannerRepo)
	c.ReviewService = service.NewReviewService(c.ReviewRepo, c.ProductRepo, c.ProductService)
	c.TestimonialService = service.NewTestimonialService(c.TestimonialRepo)
	c.WishlistService = service.NewWishlistService(c.WishlistRepo, c.ProductRepo)
}
