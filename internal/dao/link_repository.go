package dao

import (
	"context"
	"time"

	"github.com/linkgrove/link-page-service/internal/domain"
	"github.com/linkgrove/link-page-service/internal/model"
	"github.com/linkgrove/link-page-service/pkg/timex"

	"gorm.io/gorm"
)

// linkRepository 实现 domain.LinkRepository 接口
type linkRepository struct {
	dao *Dao
}

// NewLinkRepository 创建 LinkRepository 实例
func NewLinkRepository(dao *Dao) domain.LinkRepository {
	dao.useModel("Link")
	return &linkRepository{dao: dao}
}

// toDomain 将数据库模型转换为领域模型
func (r *linkRepository) toDomain(m *model.Link) *domain.Link {
	if m == nil {
		return nil
	}
	return &domain.Link{
		ID:            m.ID,
		UID:           m.UID,
		ParentID:      m.ParentID,
		Position:      m.Position,
		Kind:          domain.LinkKind(m.Kind),
		Title:         m.Title,
		URL:           m.URL,
		Image:         m.Image,
		Layout:        m.Layout,
		Highlight:     m.Highlight,
		EmbedType:     m.EmbedType,
		Subtitle:      m.Subtitle,
		Platform:      m.Platform,
		VideoURL:      m.VideoURL,
		IsActive:      m.IsActive,
		IsArchived:    m.IsArchived,
		ScheduleStart: timePtr(m.ScheduleStart),
		ScheduleEnd:   timePtr(m.ScheduleEnd),
		Clicks:        m.Clicks,
		CreatedAt:     time.Time(m.CreatedAt),
		UpdatedAt:     time.Time(m.UpdatedAt),
	}
}

// toModel 将领域模型转换为数据库模型
func (r *linkRepository) toModel(l *domain.Link) *model.Link {
	if l == nil {
		return nil
	}
	return &model.Link{
		ID:            l.ID,
		UID:           l.UID,
		ParentID:      l.ParentID,
		Position:      l.Position,
		Kind:          string(l.Kind),
		Title:         l.Title,
		URL:           l.URL,
		Image:         l.Image,
		Layout:        l.Layout,
		Highlight:     l.Highlight,
		EmbedType:     l.EmbedType,
		Subtitle:      l.Subtitle,
		Platform:      l.Platform,
		VideoURL:      l.VideoURL,
		IsActive:      l.IsActive,
		IsArchived:    l.IsArchived,
		ScheduleStart: timexPtr(l.ScheduleStart),
		ScheduleEnd:   timexPtr(l.ScheduleEnd),
		Clicks:        l.Clicks,
		CreatedAt:     timex.Time(l.CreatedAt),
		UpdatedAt:     timex.Time(l.UpdatedAt),
	}
}

// GetByID 根据ID获取节点
func (r *linkRepository) GetByID(ctx context.Context, id string, uid int64) (*domain.Link, error) {
	var m model.Link
	err := r.dao.orm(ctx).
		Where("id = ? AND uid = ?", id, uid).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// GetAnyByID 根据ID获取节点，不限定所有者
func (r *linkRepository) GetAnyByID(ctx context.Context, id string) (*domain.Link, error) {
	var m model.Link
	err := r.dao.orm(ctx).
		Where("id = ?", id).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// ListByUID 获取用户全部未归档节点
// 按 position、id 排序保证输出稳定
func (r *linkRepository) ListByUID(ctx context.Context, uid int64) ([]*domain.Link, error) {
	var ms []*model.Link
	err := r.dao.orm(ctx).
		Where("uid = ? AND is_archived = ?", uid, false).
		Order("position ASC, id ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	links := make([]*domain.Link, 0, len(ms))
	for _, m := range ms {
		links = append(links, r.toDomain(m))
	}
	return links, nil
}

// ListArchivedByUID 获取用户全部已归档节点
func (r *linkRepository) ListArchivedByUID(ctx context.Context, uid int64) ([]*domain.Link, error) {
	var ms []*model.Link
	err := r.dao.orm(ctx).
		Where("uid = ? AND is_archived = ?", uid, true).
		Order("position ASC, id ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	links := make([]*domain.Link, 0, len(ms))
	for _, m := range ms {
		links = append(links, r.toDomain(m))
	}
	return links, nil
}

// ListIDsByUID 获取用户全部未归档节点的ID集合
func (r *linkRepository) ListIDsByUID(ctx context.Context, uid int64) ([]string, error) {
	var ids []string
	err := r.dao.orm(ctx).
		Model(&model.Link{}).
		Where("uid = ? AND is_archived = ?", uid, false).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// Create 创建节点
func (r *linkRepository) Create(ctx context.Context, link *domain.Link) (*domain.Link, error) {
	m := r.toModel(link)
	m.CreatedAt = timex.Now()
	m.UpdatedAt = timex.Now()

	if err := r.dao.orm(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// Update 更新节点
// 点击计数不在更新列内，只由 IncrClicks 修改
func (r *linkRepository) Update(ctx context.Context, link *domain.Link) (*domain.Link, error) {
	m := r.toModel(link)
	m.UpdatedAt = timex.Now()

	err := r.dao.orm(ctx).
		Model(&model.Link{}).
		Where("id = ? AND uid = ?", m.ID, m.UID).
		Select("parent_id", "position", "kind", "title", "url", "image", "layout",
			"highlight", "embed_type", "subtitle", "platform", "video_url",
			"is_active", "schedule_start", "schedule_end", "updated_at").
		Updates(m).Error
	if err != nil {
		return nil, err
	}
	link.UpdatedAt = time.Time(m.UpdatedAt)
	return link, nil
}

// UpdateArchived 更新节点归档状态
func (r *linkRepository) UpdateArchived(ctx context.Context, id string, uid int64, archived bool) error {
	return r.dao.orm(ctx).
		Model(&model.Link{}).
		Where("id = ? AND uid = ?", id, uid).
		Updates(map[string]interface{}{
			"is_archived": archived,
			"updated_at":  timex.Now(),
		}).Error
}

// IncrClicks 点击计数加一
func (r *linkRepository) IncrClicks(ctx context.Context, id string) error {
	return r.dao.orm(ctx).
		Model(&model.Link{}).
		Where("id = ?", id).
		UpdateColumn("clicks", gorm.Expr("clicks + ?", 1)).Error
}

// Delete 物理删除节点
func (r *linkRepository) Delete(ctx context.Context, id string, uid int64) error {
	return r.dao.orm(ctx).
		Where("id = ? AND uid = ?", id, uid).
		Delete(&model.Link{}).Error
}

// DeleteBatch 批量物理删除节点
func (r *linkRepository) DeleteBatch(ctx context.Context, ids []string, uid int64) error {
	if len(ids) == 0 {
		return nil
	}
	return r.dao.orm(ctx).
		Where("id IN ? AND uid = ?", ids, uid).
		Delete(&model.Link{}).Error
}

func timePtr(t *timex.Time) *time.Time {
	if t == nil {
		return nil
	}
	tt := time.Time(*t)
	return &tt
}

func timexPtr(t *time.Time) *timex.Time {
	if t == nil {
		return nil
	}
	tt := timex.Time(*t)
	return &tt
}
