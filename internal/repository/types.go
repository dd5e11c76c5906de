package repository

import "time"

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page         int
	PageSize     int
	CategoryID   uint
	Search       string
	MinPrice     *float64
	MaxPrice     *float64
	OnlyActive   bool
	OnlyInStock  bool
	WithCategory bool
	OrderBy      string
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	Status      string
	OrderNo     string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// UserListFilter 查询用户列表的过滤条件
type UserListFilter struct {
	Page     int
	PageSize int
	Keyword  string
	Role     string
	Status   string
}

// ReviewListFilter 查询评价列表的过滤条件
type ReviewListFilter struct {
	Page      int
	PageSize  int
	ProductID uint
	UserID    uint
}

// ActivityListFilter 查询操作日志列表的过滤条件
type ActivityListFilter struct {
	Page        int
	PageSize    int
	Type        string
	UserID      uint
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// BannerListFilter 查询轮播图列表的过滤条件
type BannerListFilter struct {
	Page     int
	PageSize int
	IsActive *bool
}
