package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表；库存只允许通过原子增量修改
type Product struct {
	ID                uint           `gorm:"primarykey" json:"id"`                                       // 主键
	CategoryID        uint           `gorm:"not null;index" json:"category_id"`                          // 分类ID
	Name              string         `gorm:"not null" json:"name"`                                       // 名称
	Slug              string         `gorm:"uniqueIndex;not null" json:"slug"`                           // 唯一标识
	Description       string         `gorm:"type:text" json:"description"`                               // 描述
	Price             Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`         // 售价
	ComparePrice      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"compare_price"` // 划线价
	Images            StringArray    `gorm:"type:json" json:"images"`                                    // 图片数组
	Stock             int            `gorm:"not null;default:0" json:"stock"`                            // 库存
	LowStockThreshold int            `gorm:"not null;default:5" json:"low_stock_threshold"`              // 低库存阈值
	InStock           bool           `gorm:"-" json:"in_stock"`                                          // 是否有货（stock>0，读取时计算）
	RatingAvg         float64        `gorm:"not null;default:0" json:"rating_avg"`                       // 平均评分
	RatingCount       int            `gorm:"not null;default:0" json:"rating_count"`                     // 评价数量
	IsActive          bool           `gorm:"default:true;index" json:"is_active"`                        // 是否上架
	SortOrder         int            `gorm:"default:0;index" json:"sort_order"`                          // 排序权重
	CreatedAt         time.Time      `gorm:"index" json:"created_at"`                                    // 创建时间
	UpdatedAt         time.Time      `json:"updated_at"`                                                 // 更新时间
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`                                             // 软删除时间

	// 关联
	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 分类信息
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// AfterFind 读取后填充派生字段
func (p *Product) AfterFind(*gorm.DB) error {
	p.InStock = p.Stock > 0
	return nil
}
