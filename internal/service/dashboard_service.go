package service

import (
	"time"

	"github.com/shopworks/storefront/internal/constants"
	"github.com/shopworks/storefront/internal/models"
	"github.com/shopworks/storefront/internal/repository"
)

// DashboardOverview 管理后台概览指标
type DashboardOverview struct {
	UserCount     int64                     `json:"user_count"`
	ProductCount  int64                     `json:"product_count"`
	OrderCount    int64                     `json:"order_count"`
	PendingOrders int64                     `json:"pending_orders"`
	PaidOrders    int64                     `json:"paid_orders"`
	TotalSales    models.Money              `json:"total_sales"`
	PageViews7d   int64                     `json:"page_views_7d"`
	TopPages7d    []repository.PageViewStat `json:"top_pages_7d"`
}

// DashboardService 管理后台概览服务
type DashboardService struct {
	dashboardRepo repository.DashboardRepository
}

// NewDashboardService 创建概览服务
func NewDashboardService(dashboardRepo repository.DashboardRepository) *DashboardService {
	return &DashboardService{dashboardRepo: dashboardRepo}
}

// Overview 汇总概览指标
func (s *DashboardService) Overview() (*DashboardOverview, error) {
	overview := &DashboardOverview{TopPages7d: []repository.PageViewStat{}}

	var err error
	if overview.UserCount, err = s.dashboardRepo.CountUsers(); err != nil {
		return nil, err
	}
	if overview.ProductCount, err = s.dashboardRepo.CountProducts(); err != nil {
		return nil, err
	}
	if overview.OrderCount, err = s.dashboardRepo.CountOrders(); err != nil {
		return nil, err
	}
	if overview.PendingOrders, err = s.dashboardRepo.CountOrdersByStatus(constants.OrderStatusPending); err != nil {
		return nil, err
	}
	if overview.PaidOrders, err = s.dashboardRepo.CountOrdersByStatus(constants.OrderStatusPaid); err != nil {
		return nil, err
	}
	if overview.TotalSales, err = s.dashboardRepo.SumPaidSales(); err != nil {
		return nil, err
	}

	since := time.Now().AddDate(0, 0, -7)
	if overview.PageViews7d, err = s.dashboardRepo.CountPageViewsSince(since); err != nil {
		return nil, err
	}
	topPages, err := s.dashboardRepo.TopPagesSince(since, 10)
	if err != nil {
		return nil, err
	}
	if topPages != nil {
		overview.TopPages7d = topPages
	}
	return overview, nil
}
