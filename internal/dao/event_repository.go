package dao

import (
	"context"
	"time"

	"github.com/linkgrove/link-page-service/internal/domain"
	"github.com/linkgrove/link-page-service/internal/model"
	"github.com/linkgrove/link-page-service/pkg/timex"
)

// eventRepository 实现 domain.EventRepository 接口
type eventRepository struct {
	dao *Dao
}

// NewEventRepository 创建 EventRepository 实例
func NewEventRepository(dao *Dao) domain.EventRepository {
	dao.useModel("Event")
	return &eventRepository{dao: dao}
}

func (r *eventRepository) toDomain(m *model.Event) *domain.Event {
	if m == nil {
		return nil
	}
	return &domain.Event{
		ID:           m.ID,
		CollectionID: m.CollectionID,
		UID:          m.UID,
		Title:        m.Title,
		Date:         timePtr(m.Date),
		Location:     m.Location,
		URL:          m.URL,
		Status:       m.Status,
		Position:     m.Position,
		CreatedAt:    time.Time(m.CreatedAt),
		UpdatedAt:    time.Time(m.UpdatedAt),
	}
}

func (r *eventRepository) toModel(e *domain.Event) *model.Event {
	if e == nil {
		return nil
	}
	return &model.Event{
		ID:           e.ID,
		CollectionID: e.CollectionID,
		UID:          e.UID,
		Title:        e.Title,
		Date:         timexPtr(e.Date),
		Location:     e.Location,
		URL:          e.URL,
		Status:       e.Status,
		Position:     e.Position,
		CreatedAt:    timex.Time(e.CreatedAt),
		UpdatedAt:    timex.Time(e.UpdatedAt),
	}
}

// GetByID 根据ID获取事件
func (r *eventRepository) GetByID(ctx context.Context, id string, uid int64) (*domain.Event, error) {
	var m model.Event
	err := r.dao.orm(ctx).
		Where("id = ? AND uid = ?", id, uid).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// ListByCollection 获取集合下全部事件
func (r *eventRepository) ListByCollection(ctx context.Context, collectionID string, uid int64) ([]*domain.Event, error) {
	var ms []*model.Event
	err := r.dao.orm(ctx).
		Where("collection_id = ? AND uid = ?", collectionID, uid).
		Order("position ASC, id ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	events := make([]*domain.Event, 0, len(ms))
	for _, m := range ms {
		events = append(events, r.toDomain(m))
	}
	return events, nil
}

// ListByUID 获取用户全部事件
func (r *eventRepository) ListByUID(ctx context.Context, uid int64) ([]*domain.Event, error) {
	var ms []*model.Event
	err := r.dao.orm(ctx).
		Where("uid = ?", uid).
		Order("position ASC, id ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	events := make([]*domain.Event, 0, len(ms))
	for _, m := range ms {
		events = append(events, r.toDomain(m))
	}
	return events, nil
}

// Create 创建事件
func (r *eventRepository) Create(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	m := r.toModel(event)
	m.CreatedAt = timex.Now()
	m.UpdatedAt = timex.Now()

	if err := r.dao.orm(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// Update 更新事件
func (r *eventRepository) Update(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	m := r.toModel(event)
	m.UpdatedAt = timex.Now()

	err := r.dao.orm(ctx).
		Model(&model.Event{}).
		Where("id = ? AND uid = ?", m.ID, m.UID).
		Select("title", "date", "location", "url", "status", "position", "updated_at").
		Updates(m).Error
	if err != nil {
		return nil, err
	}
	event.UpdatedAt = time.Time(m.UpdatedAt)
	return event, nil
}

// Delete 物理删除事件
func (r *eventRepository) Delete(ctx context.Context, id string, uid int64) error {
	return r.dao.orm(ctx).
		Where("id = ? AND uid = ?", id, uid).
		Delete(&model.Event{}).Error
}

// DeleteByCollection 删除集合下全部事件
func (r *eventRepository) DeleteByCollection(ctx context.Context, collectionID string, uid int64) error {
	return r.dao.orm(ctx).
		Where("collection_id = ? AND uid = ?", collectionID, uid).
		Delete(&model.Event{}).Error
}

// DeleteByCollections 批量删除多个集合下的全部事件
func (r *eventRepository) DeleteByCollections(ctx context.Context, collectionIDs []string, uid int64) error {
	if len(collectionIDs) == 0 {
		return nil
	}
	return r.dao.orm(ctx).
		Where("collection_id IN ? AND uid = ?", collectionIDs, uid).
		Delete(&model.Event{}).Error
}
