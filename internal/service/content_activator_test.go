package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopnext/internal/models"
	"github.com/shopnext/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func setupContentTest(t *testing.T) (*gorm.DB, *fakeClock, *ContentActivator) {
	t.Helper()
	dsn := fmt.Sprintf("file:content_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Hero{}, &models.Promo{}, &models.Activity{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	clock := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	activator := NewContentActivator(3, clock)
	return db, clock, activator
}

func seedHeroes(t *testing.T, db *gorm.DB, count int) []models.Hero {
	t.Helper()
	heroes := make([]models.Hero, 0, count)
	for i := 1; i <= count; i++ {
		hero := models.Hero{Title: fmt.Sprintf("hero-%d", i)}
		if err := db.Create(&hero).Error; err != nil {
			t.Fatalf("create hero failed: %v", err)
		}
		heroes = append(heroes, hero)
	}
	return heroes
}

func activeHeroIDs(t *testing.T, db *gorm.DB) []uint {
	t.Helper()
	var heroes []models.Hero
	if err := db.Where("is_active = ?", true).Find(&heroes).Error; err != nil {
		t.Fatalf("load active heroes failed: %v", err)
	}
	ids := make([]uint, 0, len(heroes))
	for _, h := range heroes {
		ids = append(ids, h.ID)
	}
	return ids
}

func TestActivatorExclusiveActivation(t *testing.T) {
	db, clock, activator := setupContentTest(t)
	repo := repository.NewHeroRepository(db)
	heroes := seedHeroes(t, db, 3)

	if err := activator.Activate(repo, heroes[0].ID); err != nil {
		t.Fatalf("activate first failed: %v", err)
	}
	clock.Advance(5 * time.Second)
	if err := activator.Activate(repo, heroes[1].ID); err != nil {
		t.Fatalf("activate second failed: %v", err)
	}

	ids := activeHeroIDs(t, db)
	if len(ids) != 1 || ids[0] != heroes[1].ID {
		t.Fatalf("exactly hero %d should be active, got %v", heroes[1].ID, ids)
	}
}

func TestActivatorThrottleWindow(t *testing.T) {
	db, clock, activator := setupContentTest(t)
	repo := repository.NewHeroRepository(db)
	heroes := seedHeroes(t, db, 2)

	if err := activator.Activate(repo, heroes[0].ID); err != nil {
		t.Fatalf("activate first failed: %v", err)
	}

	// 冷却窗口内的第二次激活被拒绝，第一条保持激活
	clock.Advance(2 * time.Second)
	if err := activator.Activate(repo, heroes[1].ID); !errors.Is(err, ErrActivationThrottled) {
		t.Fatalf("want ErrActivationThrottled got %v", err)
	}
	ids := activeHeroIDs(t, db)
	if len(ids) != 1 || ids[0] != heroes[0].ID {
		t.Fatalf("first hero should stay active, got %v", ids)
	}

	// 被拒绝的请求不刷新窗口：再过 1 秒即满 3 秒，放行
	clock.Advance(time.Second)
	if err := activator.Activate(repo, heroes[1].ID); err != nil {
		t.Fatalf("activate after cooldown failed: %v", err)
	}
	ids = activeHeroIDs(t, db)
	if len(ids) != 1 || ids[0] != heroes[1].ID {
		t.Fatalf("second hero should be active after cooldown, got %v", ids)
	}
}

func TestActivatorThrottlePerKind(t *testing.T) {
	db, _, activator := setupContentTest(t)
	heroRepo := repository.NewHeroRepository(db)
	promoRepo := repository.NewPromoRepository(db)
	heroes := seedHeroes(t, db, 1)
	promo := models.Promo{Title: "promo-1"}
	if err := db.Create(&promo).Error; err != nil {
		t.Fatalf("create promo failed: %v", err)
	}

	if err := activator.Activate(heroRepo, heroes[0].ID); err != nil {
		t.Fatalf("activate hero failed: %v", err)
	}
	// 不同内容类型各自计窗，互不拦截
	if err := activator.Activate(promoRepo, promo.ID); err != nil {
		t.Fatalf("activate promo should not be throttled by hero window: %v", err)
	}
}

func TestActivatorUnknownID(t *testing.T) {
	db, _, activator := setupContentTest(t)
	repo := repository.NewHeroRepository(db)

	if err := activator.Activate(repo, 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing id want ErrNotFound got %v", err)
	}
	if err := activator.Deactivate(repo, 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing id want ErrNotFound got %v", err)
	}
}

func TestActivatorDeactivate(t *testing.T) {
	db, _, activator := setupContentTest(t)
	repo := repository.NewHeroRepository(db)
	heroes := seedHeroes(t, db, 1)

	if err := activator.Activate(repo, heroes[0].ID); err != nil {
		t.Fatalf("activate failed: %v", err)
	}
	if err := activator.Deactivate(repo, heroes[0].ID); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	if ids := activeHeroIDs(t, db); len(ids) != 0 {
		t.Fatalf("no hero should be active, got %v", ids)
	}
	// 对已停用行重复停用不报错
	if err := activator.Deactivate(repo, heroes[0].ID); err != nil {
		t.Fatalf("deactivate idempotent failed: %v", err)
	}
}

func TestHeroCreateActiveIsExclusiveAndUnthrottled(t *testing.T) {
	db, _, activator := setupContentTest(t)
	models.DB = db
	repo := repository.NewHeroRepository(db)
	activitySvc := NewActivityService(repository.NewActivityRepository(db))
	svc := NewHeroService(repo, activator, activitySvc)

	active := true
	// 连续两次带激活标记的创建都应放行（创建/更新不经过节流窗口）
	if _, err := svc.Create(HeroInput{Title: "first", IsActive: &active}); err != nil {
		t.Fatalf("create first failed: %v", err)
	}
	second, err := svc.Create(HeroInput{Title: "second", IsActive: &active})
	if err != nil {
		t.Fatalf("create second failed: %v", err)
	}

	ids := activeHeroIDs(t, db)
	if len(ids) != 1 || ids[0] != second.ID {
		t.Fatalf("latest created hero should be the only active one, got %v", ids)
	}
}
