package service

import (
	"github.com/shopnext/internal/logger"
	"github.com/shopnext/internal/models"
	"github.com/shopnext/internal/repository"
)

// ActivityService 操作日志服务（仅追加的审计写入口）
type ActivityService struct {
	repo repository.ActivityRepository
}

// NewActivityService 创建操作日志服务
func NewActivityService(repo repository.ActivityRepository) *ActivityService {
	return &ActivityService{repo: repo}
}

// Record 追加一条操作日志；写入失败只告警，不影响业务主流程
func (s *ActivityService) Record(activityType string, userID, refID uint, message string, detail models.JSON) {
	entry := &models.Activity{
		Type:       activityType,
		UserID:     userID,
		RefID:      refID,
		Message:    message,
		DetailJSON: detail,
	}
	if err := s.repo.Create(entry); err != nil {
		logger.Warnw("activity_record_failed",
			"type", activityType,
			"user_id", userID,
			"ref_id", refID,
			"error", err,
		)
	}
}

// List 获取操作日志列表（管理端）
func (s *ActivityService) List(filter repository.ActivityListFilter) ([]models.Activity, int64, error) {
	return s.repo.List(filter)
}
