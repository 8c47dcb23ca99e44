package dao

import (
	"context"
	"time"

	"github.com/linkgrove/link-page-service/internal/domain"
	"github.com/linkgrove/link-page-service/internal/model"
	"github.com/linkgrove/link-page-service/pkg/timex"
)

// clickRepository 实现 domain.ClickRepository 接口
type clickRepository struct {
	dao *Dao
}

// NewClickRepository 创建 ClickRepository 实例
func NewClickRepository(dao *Dao) domain.ClickRepository {
	dao.useModel("Click")
	return &clickRepository{dao: dao}
}

// Create 写入一条点击记录
func (r *clickRepository) Create(ctx context.Context, click *domain.Click) error {
	m := &model.Click{
		LinkID:    click.LinkID,
		UID:       click.UID,
		IP:        click.IP,
		UserAgent: click.UserAgent,
		CreatedAt: timex.Now(),
	}
	return r.dao.orm(ctx).Create(m).Error
}

// DeleteByLinkID 删除指定链接的全部点击记录
func (r *clickRepository) DeleteByLinkID(ctx context.Context, linkID string) error {
	return r.dao.orm(ctx).
		Where("link_id = ?", linkID).
		Delete(&model.Click{}).Error
}

// DeleteByLinkIDs 批量删除多个链接的点击记录
func (r *clickRepository) DeleteByLinkIDs(ctx context.Context, linkIDs []string) error {
	if len(linkIDs) == 0 {
		return nil
	}
	return r.dao.orm(ctx).
		Where("link_id IN ?", linkIDs).
		Delete(&model.Click{}).Error
}

// DeleteOlderThan 删除早于指定时间的点击记录，返回删除行数
func (r *clickRepository) DeleteOlderThan(ctx context.Context, before time.Time) (int64, error) {
	result := r.dao.orm(ctx).
		Where("created_at < ?", timex.Time(before)).
		Delete(&model.Click{})
	return result.RowsAffected, result.Error
}
