package service

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/linkgrove/link-page-service/internal/domain"
	"github.com/linkgrove/link-page-service/internal/dto"
	"github.com/linkgrove/link-page-service/pkg/code"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// fullEventRepo 为事件服务补全 memEventRepo 缺少的方法
type fullEventRepo struct {
	memEventRepo
}

func (r *fullEventRepo) GetByID(ctx context.Context, id string, uid int64) (*domain.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if e, ok := r.s.events[id]; ok && e.UID == uid {
		cp := *e
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fullEventRepo) ListByCollection(ctx context.Context, collectionID string, uid int64) ([]*domain.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*domain.Event
	for _, e := range r.s.events {
		if e.CollectionID == collectionID && e.UID == uid {
			cp := *e
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (r *fullEventRepo) Create(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *event
	r.s.events[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *fullEventRepo) Update(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.events[event.ID]; !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *event
	r.s.events[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *fullEventRepo) Delete(ctx context.Context, id string, uid int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.events, id)
	return nil
}

func (r *fullEventRepo) DeleteByCollection(ctx context.Context, collectionID string, uid int64) error {
	return r.DeleteByCollections(ctx, []string{collectionID}, uid)
}

func newTestEventService(s *memStore) EventService {
	return NewEventService(
		&fullEventRepo{memEventRepo{s: s}},
		&memLinkRepo{s: s},
		&memTx{s: s},
		zap.NewNop(),
	)
}

func seedAgenda(s *memStore, uid int64) string {
	id := uuid.NewString()
	s.links[id] = &domain.Link{ID: id, UID: uid, Kind: domain.KindAgenda, Title: "Tour", IsActive: true}
	return id
}

func TestEventReplace_FreshIDsAndPositions(t *testing.T) {
	s := newMemStore()
	svc := newTestEventService(s)
	ctx := context.Background()
	uid := int64(1)
	agendaID := seedAgenda(s, uid)

	first, err := svc.Replace(ctx, uid, &dto.EventBulkReplaceRequest{
		CollectionID: agendaID,
		Events: []*dto.EventDTO{
			{Title: "Opening"},
			{Title: "Closing"},
		},
	})
	if err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("event count = %d, want 2", len(first))
	}
	for i, e := range first {
		if e.Position != i {
			t.Errorf("event %d position = %d, want %d", i, e.Position, i)
		}
		if uuid.Validate(e.ID) != nil {
			t.Errorf("event %d id %q not assigned by server", i, e.ID)
		}
	}

	// 全量替换不保持身份：提交原有ID也会重新分配
	second, err := svc.Replace(ctx, uid, &dto.EventBulkReplaceRequest{
		CollectionID: agendaID,
		Events:       first,
	})
	if err != nil {
		t.Fatalf("second Replace failed: %v", err)
	}
	if second[0].ID == first[0].ID || second[1].ID == first[1].ID {
		t.Error("replace must churn event ids")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.events) != 2 {
		t.Errorf("storage has %d events, want 2", len(s.events))
	}
}

func TestEventReplace_RequiresAgendaCollection(t *testing.T) {
	s := newMemStore()
	svc := newTestEventService(s)
	ctx := context.Background()
	uid := int64(1)

	plainID := uuid.NewString()
	s.links[plainID] = &domain.Link{ID: plainID, UID: uid, Kind: domain.KindLink, Title: "Plain", URL: "https://p", IsActive: true}

	tests := []struct {
		name         string
		collectionID string
		wantCode     int
	}{
		{"missing collection", uuid.NewString(), code.ErrorCollectionNotFound.Code()},
		{"non agenda kind", plainID, code.ErrorCollectionKind.Code()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Replace(ctx, uid, &dto.EventBulkReplaceRequest{
				CollectionID: tt.collectionID,
				Events:       []*dto.EventDTO{{Title: "X"}},
			})
			var c *code.Code
			if !errors.As(err, &c) || c.Code() != tt.wantCode {
				t.Fatalf("err = %v, want code %d", err, tt.wantCode)
			}
		})
	}
}

func TestEventReplace_ForeignOwnerRejected(t *testing.T) {
	s := newMemStore()
	svc := newTestEventService(s)
	ctx := context.Background()
	agendaID := seedAgenda(s, 1)

	// 他人的集合按不存在处理
	_, err := svc.Replace(ctx, 2, &dto.EventBulkReplaceRequest{
		CollectionID: agendaID,
		Events:       []*dto.EventDTO{{Title: "X"}},
	})
	var c *code.Code
	if !errors.As(err, &c) || c.Code() != code.ErrorCollectionNotFound.Code() {
		t.Fatalf("err = %v, want ErrorCollectionNotFound", err)
	}
}

func TestEventCreate_AppendsToEnd(t *testing.T) {
	s := newMemStore()
	svc := newTestEventService(s)
	ctx := context.Background()
	uid := int64(1)
	agendaID := seedAgenda(s, uid)

	first, err := svc.Create(ctx, uid, &dto.EventCreateRequest{CollectionID: agendaID, Title: "One"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	second, err := svc.Create(ctx, uid, &dto.EventCreateRequest{CollectionID: agendaID, Title: "Two"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if first.Position != 0 || second.Position != 1 {
		t.Errorf("positions = %d, %d, want 0, 1", first.Position, second.Position)
	}
}

func TestEventUpdateDelete(t *testing.T) {
	s := newMemStore()
	svc := newTestEventService(s)
	ctx := context.Background()
	uid := int64(1)
	agendaID := seedAgenda(s, uid)

	created, err := svc.Create(ctx, uid, &dto.EventCreateRequest{CollectionID: agendaID, Title: "One"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	title := "Renamed"
	updated, err := svc.Update(ctx, uid, &dto.EventUpdateRequest{ID: created.ID, Title: &title})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Title != "Renamed" {
		t.Errorf("title = %s, want Renamed", updated.Title)
	}

	if err := svc.Delete(ctx, uid, created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	err = svc.Delete(ctx, uid, created.ID)
	var c *code.Code
	if !errors.As(err, &c) || c.Code() != code.ErrorEventNotFound.Code() {
		t.Fatalf("err = %v, want ErrorEventNotFound", err)
	}
}
