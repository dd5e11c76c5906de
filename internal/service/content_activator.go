package service

import (
	"sync"
	"time"

	"github.com/shopnext/internal/constants"
	"github.com/shopnext/internal/repository"
)

// Clock 可注入时钟，测试中用于控制节流窗口
type Clock interface {
	Now() time.Time
}

// SystemClock 真实时钟
type SystemClock struct{}

// Now 返回当前时间
func (SystemClock) Now() time.Time {
	return time.Now()
}

// ContentActivator 独占激活状态机。
// 同一内容类型先全量停用、再激活目标行，保证任一时刻至多一条激活；
// 两步之间不保证原子，崩溃落在中间会出现零激活行，由下一次激活自愈。
// 每种内容类型共享一个激活节流窗口，用于拦截管理端的风暴式重复提交。
type ContentActivator struct {
	cooldown time.Duration
	clock    Clock

	mu             sync.Mutex
	lastActivation map[string]time.Time
}

// NewContentActivator 创建激活器
func NewContentActivator(cooldownSeconds int, clock Clock) *ContentActivator {
	if cooldownSeconds <= 0 {
		cooldownSeconds = constants.ContentActivationCooldownSeconds
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &ContentActivator{
		cooldown:       time.Duration(cooldownSeconds) * time.Second,
		clock:          clock,
		lastActivation: make(map[string]time.Time),
	}
}

// Activate 带节流的激活：冷却窗口内的重复请求直接拒绝，
// 放行后先停用该类型全部行，再激活目标行。
func (a *ContentActivator) Activate(repo repository.SingletonContentRepository, id uint) error {
	exists, err := repo.Exists(id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}

	if err := a.acquire(repo.Kind()); err != nil {
		return err
	}

	if err := repo.DeactivateAll(); err != nil {
		return err
	}
	return repo.SetActive(id, true)
}

// Deactivate 无条件停用目标行，对已停用行不做保护
func (a *ContentActivator) Deactivate(repo repository.SingletonContentRepository, id uint) error {
	exists, err := repo.Exists(id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	return repo.SetActive(id, false)
}

// EnsureExclusive 创建/更新携带激活标记时使用：只做全量停用，不经过节流
func (a *ContentActivator) EnsureExclusive(repo repository.SingletonContentRepository) error {
	return repo.DeactivateAll()
}

// acquire 以检查并置位的方式更新该类型的最近放行时间；
// 两个并发请求不会同时通过窗口判定。
func (a *ContentActivator) acquire(kind string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.clock.Now()
	if last, ok := a.lastActivation[kind]; ok && now.Sub(last) < a.cooldown {
		return ErrActivationThrottled
	}
	a.lastActivation[kind] = now
	return nil
}
