package repository

// SingletonContentRepository 独占激活内容的通用数据访问契约。
// 激活器通过它执行"先全部停用、再激活目标行"的状态机，
// hero 与 promo 各有一份 GORM 实现。
type SingletonContentRepository interface {
	Kind() string
	Exists(id uint) (bool, error)
	DeactivateAll() error
	SetActive(id uint, active bool) error
	CountActive() (int64, error)
}
