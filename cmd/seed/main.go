package main

import (
	"time"

	"github.com/shopnext/internal/config"
	"github.com/shopnext/internal/constants"
	"github.com/shopnext/internal/logger"
	"github.com/shopnext/internal/models"

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

	// 默认管理员
	if err := models.InitDefaultAdmin("", ""); err != nil {
		stdLog.Printf("Failed to init default admin: %v", err)
	}

	// 添加分类
	categories := []models.Category{
		{Name: "Electronics", Slug: "electronics", Description: "Phones, audio and smart devices", IsActive: true, SortOrder: 1},
		{Name: "Fashion", Slug: "fashion", Description: "Apparel and footwear", IsActive: true, SortOrder: 2},
		{Name: "Home & Living", Slug: "home-living", Description: "Furniture and home essentials", IsActive: true, SortOrder: 3},
	}
	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Slug, err)
			} else {
				stdLog.Printf("Created category: %s", cat.Slug)
			}
		} else {
			stdLog.Printf("Category already exists: %s", cat.Slug)
		}
	}

	// 获取分类ID
	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Where("slug IN ?", []string{"electronics", "fashion", "home-living"}).Find(&categoryList).Error; err != nil {
		stdLog.Printf("Failed to load categories: %v", err)
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Slug] = cat.ID
	}

	// 添加商品
	products := []models.Product{
		{
			CategoryID:        categoryIDs["electronics"],
			Name:              "Wireless Earbuds Pro",
			Slug:              "wireless-earbuds-pro",
			Description:       "Active noise cancellation, 24h battery life, Bluetooth 5.3.",
			Price:             models.NewMoneyFromDecimal(decimal.NewFromFloat(2999)),
			ComparePrice:      models.NewMoneyFromDecimal(decimal.NewFromFloat(3999)),
			Images:            models.StringArray{"https://images.unsplash.com/photo-1590658268037-6bf12165a8df?w=800"},
			Stock:             120,
			LowStockThreshold: 10,
			IsActive:          true,
			SortOrder:         1,
		},
		{
			CategoryID:        categoryIDs["electronics"],
			Name:              "Smart Watch S2",
			Slug:              "smart-watch-s2",
			Description:       "AMOLED display, heart-rate tracking, 7-day battery.",
			Price:             models.NewMoneyFromDecimal(decimal.NewFromFloat(5499)),
			ComparePrice:      models.NewMoneyFromDecimal(decimal.NewFromFloat(6999)),
			Images:            models.StringArray{"https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=800"},
			Stock:             80,
			LowStockThreshold: 8,
			IsActive:          true,
			SortOrder:         2,
		},
		{
			CategoryID:        categoryIDs["fashion"],
			Name:              "Classic Denim Jacket",
			Slug:              "classic-denim-jacket",
			Description:       "Unisex fit, stone-washed cotton denim.",
			Price:             models.NewMoneyFromDecimal(decimal.NewFromFloat(1899)),
			Images:            models.StringArray{"https://images.unsplash.com/photo-1551537482-f2075a1d41f2?w=800"},
			Stock:             60,
			LowStockThreshold: 5,
			IsActive:          true,
			SortOrder:         3,
		},
		{
			CategoryID:        categoryIDs["home-living"],
			Name:              "Ceramic Table Lamp",
			Slug:              "ceramic-table-lamp",
			Description:       "Hand-glazed ceramic base with a linen shade.",
			Price:             models.NewMoneyFromDecimal(decimal.NewFromFloat(1299)),
			Images:            models.StringArray{"https://images.unsplash.com/photo-1507473885765-e6ed057f782c?w=800"},
			Stock:             40,
			LowStockThreshold: 5,
			IsActive:          true,
			SortOrder:         4,
		},
	}
	for _, p := range products {
		if p.CategoryID == 0 {
			stdLog.Printf("Skip product %s: category missing", p.Slug)
			continue
		}
		var existing models.Product
		if err := models.DB.Where("slug = ?", p.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&p).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", p.Slug, err)
			} else {
				stdLog.Printf("Created product: %s", p.Slug)
			}
		} else {
			stdLog.Printf("Product already exists: %s", p.Slug)
		}
	}

	// 添加优惠码
	endOfMonth := time.Now().AddDate(0, 1, 0)
	coupons := []models.Coupon{
		{
			Code:        "WELCOME10",
			Type:        constants.CouponTypePercentage,
			Value:       models.NewMoneyFromInt(10),
			MinAmount:   models.NewMoneyFromInt(500),
			MaxDiscount: models.NewMoneyFromInt(200),
			IsReusable:  false,
			IsActive:    true,
			EndsAt:      &endOfMonth,
		},
		{
			Code:       "FLAT100",
			Type:       constants.CouponTypeFixed,
			Value:      models.NewMoneyFromInt(100),
			MinAmount:  models.NewMoneyFromInt(1000),
			UsageLimit: 500,
			IsReusable: true,
			IsActive:   true,
		},
	}
	for _, coupon := range coupons {
		var existing models.Coupon
		if err := models.DB.Where("code = ?", coupon.Code).First(&existing).Error; err != nil {
			if err := models.DB.Create(&coupon).Error; err != nil {
				stdLog.Printf("Failed to create coupon %s: %v", coupon.Code, err)
			} else {
				stdLog.Printf("Created coupon: %s", coupon.Code)
			}
		} else {
			stdLog.Printf("Coupon already exists: %s", coupon.Code)
		}
	}

	// 营销内容：首页 Hero（至多一条激活）
	var heroCount int64
	models.DB.Model(&models.Hero{}).Count(&heroCount)
	if heroCount == 0 {
		hero := models.Hero{
			Title:    "New Season, New Gear",
			Subtitle: "Up to 40% off on electronics",
			CTAText:  "Shop Now",
			CTALink:  "/products?category=electronics",
			Image:    "https://images.unsplash.com/photo-1441986300917-64674bd600d8?w=1600",
			IsActive: true,
		}
		if err := models.DB.Create(&hero).Error; err != nil {
			stdLog.Printf("Failed to create hero: %v", err)
		} else {
			stdLog.Printf("Created hero: %s", hero.Title)
		}
	}

	// 营销内容：促销条（至多一条激活）
	var promoCount int64
	models.DB.Model(&models.Promo{}).Count(&promoCount)
	if promoCount == 0 {
		promo := models.Promo{
			Title:        "Welcome Offer",
			Description:  "10% off your first order",
			DiscountText: "10% OFF",
			Code:         "WELCOME10",
			ExpiresAt:    &endOfMonth,
			IsActive:     true,
		}
		if err := models.DB.Create(&promo).Error; err != nil {
			stdLog.Printf("Failed to create promo: %v", err)
		} else {
			stdLog.Printf("Created promo: %s", promo.Title)
		}
	}

	// 首页 Banner
	var bannerCount int64
	models.DB.Model(&models.Banner{}).Count(&bannerCount)
	if bannerCount == 0 {
		banners := []models.Banner{
			{
				Title:     "Summer Sale",
				Subtitle:  "Save big on fashion",
				Image:     "https://images.unsplash.com/photo-1483985988355-763728e1935b?w=1600",
				LinkType:  constants.BannerLinkTypeInternal,
				LinkValue: "/products?category=fashion",
				IsActive:  true,
				SortOrder: 1,
			},
			{
				Title:     "Free Shipping",
				Subtitle:  "On orders above the threshold",
				Image:     "https://images.unsplash.com/photo-1607082348824-0a96f2a4b9da?w=1600",
				LinkType:  constants.BannerLinkTypeNone,
				IsActive:  true,
				SortOrder: 2,
			},
		}
		for _, banner := range banners {
			if err := models.DB.Create(&banner).Error; err != nil {
				stdLog.Printf("Failed to create banner %s: %v", banner.Title, err)
			} else {
				stdLog.Printf("Created banner: %s", banner.Title)
			}
		}
	}

	// 用户评价展示
	var testimonialCount int64
	models.DB.Model(&models.Testimonial{}).Count(&testimonialCount)
	if testimonialCount == 0 {
		testimonials := []models.Testimonial{
			{Name: "Ananya S.", Role: "Verified Buyer", Content: "Fast delivery and the earbuds sound amazing.", Rating: 5, IsApproved: true, SortOrder: 1},
			{Name: "Rahul M.", Role: "Verified Buyer", Content: "Great prices, the coupon worked perfectly at checkout.", Rating: 4, IsApproved: true, SortOrder: 2},
		}
		for _, item := range testimonials {
			if err := models.DB.Create(&item).Error; err != nil {
				stdLog.Printf("Failed to create testimonial %s: %v", item.Name, err)
			} else {
				stdLog.Printf("Created testimonial: %s", item.Name)
			}
		}
	}

	stdLog.Printf("Seed completed")
}
