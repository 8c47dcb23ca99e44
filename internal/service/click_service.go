package service

import (
	"context"
	"errors"
	"time"

	"github.com/linkgrove/link-page-service/internal/domain"
	"github.com/linkgrove/link-page-service/internal/dto"
	"github.com/linkgrove/link-page-service/pkg/code"
	"github.com/linkgrove/link-page-service/pkg/logger"
	"github.com/linkgrove/link-page-service/pkg/workerpool"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 异步点击写入的单次落库超时
const clickWriteTimeout = 10 * time.Second

// ClickService 定义点击跟踪业务服务接口
type ClickService interface {
	// Track 记录一次公开页点击
	// 节点存在性同步校验，落库与计数走异步工作池
	Track(ctx context.Context, params *dto.ClickTrackRequest, clientIP, userAgent string) error

	// PurgeOlderThan 清理早于保留期的点击记录，返回删除行数
	PurgeOlderThan(ctx context.Context, before time.Time) (int64, error)
}

// clickService 实现 ClickService 接口
type clickService struct {
	clickRepo domain.ClickRepository
	linkRepo  domain.LinkRepository
	pool      *workerpool.Pool
	logger    *zap.Logger
}

// NewClickService 创建 ClickService 实例
func NewClickService(clickRepo domain.ClickRepository, linkRepo domain.LinkRepository, pool *workerpool.Pool, logger *zap.Logger) ClickService {
	return &clickService{
		clickRepo: clickRepo,
		linkRepo:  linkRepo,
		pool:      pool,
		logger:    logger,
	}
}

var _ ClickService = (*clickService)(nil)

// Track 记录一次公开页点击
func (s *clickService) Track(ctx context.Context, params *dto.ClickTrackRequest, clientIP, userAgent string) error {
	link, err := s.linkRepo.GetAnyByID(ctx, params.LinkID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.ErrorLinkNotFound.WithDetails(params.LinkID)
		}
		return code.ErrorDBQuery.WithDetails(err.Error())
	}
	if link.IsArchived {
		return code.ErrorLinkNotFound.WithDetails(params.LinkID)
	}

	click := &domain.Click{
		LinkID:    link.ID,
		UID:       link.UID,
		IP:        clientIP,
		UserAgent: userAgent,
	}

	// 响应不等待写入；请求上下文结束后任务仍需完成
	err = s.pool.Submit(context.Background(), func(taskCtx context.Context) error {
		bgCtx, cancel := context.WithTimeout(taskCtx, clickWriteTimeout)
		defer cancel()

		if err := s.clickRepo.Create(bgCtx, click); err != nil {
			return err
		}
		return s.linkRepo.IncrClicks(bgCtx, click.LinkID)
	})
	if err != nil {
		// 池满时丢弃本次计数，点击跟踪是尽力而为的
		s.logger.Warn("clickService.Track pool reject", zap.String(logger.FieldLinkID, click.LinkID), zap.Error(err))
	}
	return nil
}

// PurgeOlderThan 清理早于保留期的点击记录
func (s *clickService) PurgeOlderThan(ctx context.Context, before time.Time) (int64, error) {
	n, err := s.clickRepo.DeleteOlderThan(ctx, before)
	if err != nil {
		return 0, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return n, nil
}
