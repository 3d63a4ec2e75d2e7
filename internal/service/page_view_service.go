package service

import (
	"strings"

	"github.com/shopworks/storefront/internal/logger"
	"github.com/shopworks/storefront/internal/models"
	"github.com/shopworks/storefront/internal/queue"
	"github.com/shopworks/storefront/internal/repository"
)

// PageViewService 页面访问记录服务
// 队列可用时异步入库，否则同步写库
type PageViewService struct {
	pageViewRepo repository.PageViewRepository
	queueClient  *queue.Client
}

// NewPageViewService 创建页面访问记录服务
func NewPageViewService(pageViewRepo repository.PageViewRepository, queueClient *queue.Client) *PageViewService {
	return &PageViewService{
		pageViewRepo: pageViewRepo,
		queueClient:  queueClient,
	}
}

// Record 记录一次页面访问
func (s *PageViewService) Record(userID *uint, pageURL, ipAddress, userAgent string) {
	trimmed := strings.TrimSpace(pageURL)
	if trimmed == "" {
		return
	}
	if s.queueClient.Enabled() {
		payload := queue.PageViewTrackPayload{
			UserID:    userID,
			PageURL:   trimmed,
			IPAddress: ipAddress,
			UserAgent: userAgent,
		}
		err := s.queueClient.EnqueuePageViewTrack(payload)
		if err == nil {
			return
		}
		logger.Debugw("page_view_enqueue_failed_fallback_sync", "page_url", trimmed, "error", err)
	}
	view := &models.PageView{
		UserID:    userID,
		PageURL:   trimmed,
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}
	if err := s.pageViewRepo.Create(view); err != nil {
		logger.Warnw("page_view_create_failed", "page_url", trimmed, "error", err)
	}
}

// List 管理侧访问记录查询
func (s *PageViewService) List(filter repository.PageViewListFilter) ([]models.PageView, int64, error) {
	return s.pageViewRepo.List(filter)
}
