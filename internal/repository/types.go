package repository

import "time"

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page       int
	PageSize   int
	Search     string
	OnlyActive bool
	InStock    bool
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

// PromotionListFilter 查询折扣码列表的过滤条件
type PromotionListFilter struct {
	Page     int
	PageSize int
	Code     string
	IsActive *bool
}

// UserListFilter 查询用户列表的过滤条件
type UserListFilter struct {
	Page     int
	PageSize int
	Keyword  string
	Status   string
}

// PageViewListFilter 查询页面访问记录的过滤条件
type PageViewListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	PageURL     string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}
