package service

import (
	"context"
	"errors"

	"github.com/linkgrove/link-page-service/internal/domain"
	"github.com/linkgrove/link-page-service/internal/dto"
	"github.com/linkgrove/link-page-service/pkg/code"
	"github.com/linkgrove/link-page-service/pkg/logger"
	"github.com/linkgrove/link-page-service/pkg/timex"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EventService 定义日程事件业务服务接口
type EventService interface {
	// List 获取集合下全部事件
	List(ctx context.Context, uid int64, collectionID string) ([]*dto.EventDTO, error)

	// Replace 按集合全量替换事件
	// 与链接树对账不同：先删全部再重建，提交的ID被忽略，每次分配新ID
	Replace(ctx context.Context, uid int64, params *dto.EventBulkReplaceRequest) ([]*dto.EventDTO, error)

	// Create 创建单个事件，追加到集合末尾
	Create(ctx context.Context, uid int64, params *dto.EventCreateRequest) (*dto.EventDTO, error)

	// Update 更新单个事件
	Update(ctx context.Context, uid int64, params *dto.EventUpdateRequest) (*dto.EventDTO, error)

	// Delete 删除单个事件
	Delete(ctx context.Context, uid int64, id string) error
}

// eventService 实现 EventService 接口
type eventService struct {
	eventRepo domain.EventRepository
	linkRepo  domain.LinkRepository
	tx        domain.TxManager
	logger    *zap.Logger
}

// NewEventService 创建 EventService 实例
func NewEventService(eventRepo domain.EventRepository, linkRepo domain.LinkRepository, tx domain.TxManager, logger *zap.Logger) EventService {
	return &eventService{
		eventRepo: eventRepo,
		linkRepo:  linkRepo,
		tx:        tx,
		logger:    logger,
	}
}

var _ EventService = (*eventService)(nil)

// eventDomainToDTO 将事件领域模型转换为 DTO
func eventDomainToDTO(e *domain.Event) *dto.EventDTO {
	if e == nil {
		return nil
	}
	return &dto.EventDTO{
		ID:           e.ID,
		CollectionID: e.CollectionID,
		Title:        e.Title,
		Date:         timexFromTime(e.Date),
		Location:     e.Location,
		URL:          e.URL,
		Status:       e.Status,
		Position:     e.Position,
		CreatedAt:    timex.Time(e.CreatedAt),
		UpdatedAt:    timex.Time(e.UpdatedAt),
	}
}

// requireAgenda 校验集合存在、属于当前用户且为日程类型
func (s *eventService) requireAgenda(ctx context.Context, collectionID string, uid int64) error {
	link, err := s.linkRepo.GetByID(ctx, collectionID, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.ErrorCollectionNotFound.WithDetails(collectionID)
		}
		return code.ErrorDBQuery.WithDetails(err.Error())
	}
	if !link.Kind.CanHaveEvents() {
		return code.ErrorCollectionKind.WithDetails(string(link.Kind))
	}
	return nil
}

// List 获取集合下全部事件
func (s *eventService) List(ctx context.Context, uid int64, collectionID string) ([]*dto.EventDTO, error) {
	if err := s.requireAgenda(ctx, collectionID, uid); err != nil {
		return nil, err
	}
	events, err := s.eventRepo.ListByCollection(ctx, collectionID, uid)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	out := make([]*dto.EventDTO, 0, len(events))
	for _, e := range events {
		out = append(out, eventDomainToDTO(e))
	}
	return out, nil
}

// Replace 按集合全量替换事件
func (s *eventService) Replace(ctx context.Context, uid int64, params *dto.EventBulkReplaceRequest) ([]*dto.EventDTO, error) {
	if err := s.requireAgenda(ctx, params.CollectionID, uid); err != nil {
		return nil, err
	}

	// 客户端断开不中断替换
	ctx = context.WithoutCancel(ctx)

	out := make([]*dto.EventDTO, 0, len(params.Events))
	err := s.tx.Transaction(ctx, func(txCtx context.Context) error {
		if err := s.eventRepo.DeleteByCollection(txCtx, params.CollectionID, uid); err != nil {
			return err
		}
		for i, e := range params.Events {
			event := &domain.Event{
				ID:           uuid.NewString(), // 提交的ID被忽略
				CollectionID: params.CollectionID,
				UID:          uid,
				Title:        e.Title,
				Date:         timeFromTimex(e.Date),
				Location:     e.Location,
				URL:          e.URL,
				Status:       e.Status,
				Position:     i,
			}
			created, err := s.eventRepo.Create(txCtx, event)
			if err != nil {
				return err
			}
			out = append(out, eventDomainToDTO(created))
		}
		return nil
	})
	if err != nil {
		s.logger.Error("eventService.Replace rollback",
			zap.Int64(logger.FieldUID, uid), zap.String(logger.FieldCollectionID, params.CollectionID), zap.Error(err))
		return nil, code.ErrorTreeSyncAborted.WithDetails(err.Error())
	}
	return out, nil
}

// Create 创建单个事件
func (s *eventService) Create(ctx context.Context, uid int64, params *dto.EventCreateRequest) (*dto.EventDTO, error) {
	if err := s.requireAgenda(ctx, params.CollectionID, uid); err != nil {
		return nil, err
	}

	existing, err := s.eventRepo.ListByCollection(ctx, params.CollectionID, uid)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	event := &domain.Event{
		ID:           uuid.NewString(),
		CollectionID: params.CollectionID,
		UID:          uid,
		Title:        params.Title,
		Date:         timeFromTimex(params.Date),
		Location:     params.Location,
		URL:          params.URL,
		Status:       params.Status,
		Position:     len(existing),
	}
	created, err := s.eventRepo.Create(ctx, event)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return eventDomainToDTO(created), nil
}

// Update 更新单个事件
func (s *eventService) Update(ctx context.Context, uid int64, params *dto.EventUpdateRequest) (*dto.EventDTO, error) {
	event, err := s.eventRepo.GetByID(ctx, params.ID, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorEventNotFound.WithDetails(params.ID)
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	if params.Title != nil {
		event.Title = *params.Title
	}
	if params.Date != nil {
		event.Date = timeFromTimex(params.Date)
	}
	if params.Location != nil {
		event.Location = *params.Location
	}
	if params.URL != nil {
		event.URL = *params.URL
	}
	if params.Status != nil {
		event.Status = *params.Status
	}

	updated, err := s.eventRepo.Update(ctx, event)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return eventDomainToDTO(updated), nil
}

// Delete 删除单个事件
func (s *eventService) Delete(ctx context.Context, uid int64, id string) error {
	if _, err := s.eventRepo.GetByID(ctx, id, uid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.ErrorEventNotFound.WithDetails(id)
		}
		return code.ErrorDBQuery.WithDetails(err.Error())
	}
	if err := s.eventRepo.Delete(ctx, id, uid); err != nil {
		return code.ErrorDBQuery.WithDetails(err.Error())
	}
	return nil
}
