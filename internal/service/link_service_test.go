package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/linkgrove/link-page-service/internal/domain"
	"github.com/linkgrove/link-page-service/internal/dto"
	"github.com/linkgrove/link-page-service/pkg/code"
	"github.com/linkgrove/link-page-service/pkg/timex"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// memStore 内存存储，四个仓储接口共用
// 事务通过快照/恢复模拟回滚
type memStore struct {
	mu     sync.Mutex
	links  map[string]*domain.Link
	events map[string]*domain.Event
	clicks []*domain.Click

	createCalls int
	updateCalls int
	deleteCalls int

	// failCreateAt 第 N 次 Create 时返回错误，0 表示不注入
	failCreateAt int
	failErr      error
}

func newMemStore() *memStore {
	return &memStore{
		links:  make(map[string]*domain.Link),
		events: make(map[string]*domain.Event),
	}
}

func (s *memStore) snapshot() map[string]*domain.Link {
	snap := make(map[string]*domain.Link, len(s.links))
	for id, l := range s.links {
		cp := *l
		snap[id] = &cp
	}
	return snap
}

// ---- LinkRepository ----

type memLinkRepo struct {
	domain.LinkRepository
	s *memStore
}

func (r *memLinkRepo) GetByID(ctx context.Context, id string, uid int64) (*domain.Link, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if l, ok := r.s.links[id]; ok && l.UID == uid {
		cp := *l
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memLinkRepo) GetAnyByID(ctx context.Context, id string) (*domain.Link, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if l, ok := r.s.links[id]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memLinkRepo) ListByUID(ctx context.Context, uid int64) ([]*domain.Link, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*domain.Link
	for _, l := range r.s.links {
		if l.UID == uid && !l.IsArchived {
			cp := *l
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *memLinkRepo) ListIDsByUID(ctx context.Context, uid int64) ([]string, error) {
	links, _ := r.ListByUID(ctx, uid)
	ids := make([]string, 0, len(links))
	for _, l := range links {
		ids = append(ids, l.ID)
	}
	return ids, nil
}

func (r *memLinkRepo) Create(ctx context.Context, link *domain.Link) (*domain.Link, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.createCalls++
	if r.s.failCreateAt > 0 && r.s.createCalls == r.s.failCreateAt {
		return nil, r.s.failErr
	}
	cp := *link
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = time.Now()
	r.s.links[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *memLinkRepo) Update(ctx context.Context, link *domain.Link) (*domain.Link, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.updateCalls++
	existing, ok := r.s.links[link.ID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *link
	cp.Clicks = existing.Clicks // 点击计数不被更新路径触碰
	cp.CreatedAt = existing.CreatedAt
	cp.UpdatedAt = time.Now()
	r.s.links[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *memLinkRepo) UpdateArchived(ctx context.Context, id string, uid int64, archived bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if l, ok := r.s.links[id]; ok && l.UID == uid {
		l.IsArchived = archived
	}
	return nil
}

func (r *memLinkRepo) IncrClicks(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if l, ok := r.s.links[id]; ok {
		l.Clicks++
	}
	return nil
}

func (r *memLinkRepo) DeleteBatch(ctx context.Context, ids []string, uid int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, id := range ids {
		if l, ok := r.s.links[id]; ok && l.UID == uid {
			delete(r.s.links, id)
			r.s.deleteCalls++
		}
	}
	return nil
}

// ---- EventRepository ----

type memEventRepo struct {
	domain.EventRepository
	s *memStore
}

func (r *memEventRepo) ListByUID(ctx context.Context, uid int64) ([]*domain.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*domain.Event
	for _, e := range r.s.events {
		if e.UID == uid {
			cp := *e
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *memEventRepo) DeleteByCollections(ctx context.Context, collectionIDs []string, uid int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, cid := range collectionIDs {
		for id, e := range r.s.events {
			if e.CollectionID == cid && e.UID == uid {
				delete(r.s.events, id)
			}
		}
	}
	return nil
}

// ---- ClickRepository ----

type memClickRepo struct {
	domain.ClickRepository
	s *memStore
}

func (r *memClickRepo) Create(ctx context.Context, click *domain.Click) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *click
	r.s.clicks = append(r.s.clicks, &cp)
	return nil
}

func (r *memClickRepo) DeleteByLinkIDs(ctx context.Context, linkIDs []string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	drop := make(map[string]struct{}, len(linkIDs))
	for _, id := range linkIDs {
		drop[id] = struct{}{}
	}
	var kept []*domain.Click
	for _, c := range r.s.clicks {
		if _, ok := drop[c.LinkID]; !ok {
			kept = append(kept, c)
		}
	}
	r.s.clicks = kept
	return nil
}

// ---- TxManager ----

// memTx 出错时恢复快照，模拟数据库回滚
type memTx struct {
	s *memStore
}

func (t *memTx) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.s.mu.Lock()
	snapLinks := t.s.snapshot()
	snapClicks := append([]*domain.Click{}, t.s.clicks...)
	t.s.mu.Unlock()

	if err := fn(ctx); err != nil {
		t.s.mu.Lock()
		t.s.links = snapLinks
		t.s.clicks = snapClicks
		t.s.mu.Unlock()
		return err
	}
	return nil
}

func newTestLinkService(s *memStore) LinkService {
	return NewLinkService(
		&memLinkRepo{s: s},
		&memEventRepo{s: s},
		&memClickRepo{s: s},
		&memTx{s: s},
		zap.NewNop(),
	)
}

func collectPositions(s *memStore, uid int64) map[string][]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	groups := make(map[string][]int)
	for _, l := range s.links {
		if l.UID == uid && !l.IsArchived {
			groups[l.ParentID] = append(groups[l.ParentID], l.Position)
		}
	}
	for _, ps := range groups {
		sort.Ints(ps)
	}
	return groups
}

func newNode(kind, title, url string) *dto.LinkNodeDTO {
	return &dto.LinkNodeDTO{Kind: kind, Title: title, URL: url, IsActive: true}
}

func timexOf(t time.Time) *timex.Time {
	tt := timex.Time(t)
	return &tt
}

func TestSaveTree_CreatesWithDensePositions(t *testing.T) {
	s := newMemStore()
	svc := newTestLinkService(s)
	ctx := context.Background()
	uid := int64(1)

	coll := newNode("collection", "Projects", "")
	coll.Children = []*dto.LinkNodeDTO{
		newNode("link", "One", "https://one.example"),
		newNode("link", "Two", "https://two.example"),
	}
	req := &dto.LinkBulkSaveRequest{Links: []*dto.LinkNodeDTO{
		newNode("link", "Blog", "https://blog.example"),
		coll,
		newNode("social", "Clip", "https://v.example"),
	}}

	tree, err := svc.SaveTree(ctx, uid, req)
	if err != nil {
		t.Fatalf("SaveTree failed: %v", err)
	}

	if len(tree) != 3 {
		t.Fatalf("root count = %d, want 3", len(tree))
	}
	if len(tree[1].Children) != 2 {
		t.Fatalf("children count = %d, want 2", len(tree[1].Children))
	}
	for _, node := range tree {
		if node.ID == "" || uuid.Validate(node.ID) != nil {
			t.Errorf("node %q has no server-assigned id", node.Title)
		}
	}

	for parent, ps := range collectPositions(s, uid) {
		for i, p := range ps {
			if p != i {
				t.Errorf("parent %q positions not dense: %v", parent, ps)
				break
			}
		}
	}
}

func TestSaveTree_IdentityPreservation(t *testing.T) {
	s := newMemStore()
	svc := newTestLinkService(s)
	ctx := context.Background()
	uid := int64(1)

	first, err := svc.SaveTree(ctx, uid, &dto.LinkBulkSaveRequest{Links: []*dto.LinkNodeDTO{
		newNode("link", "A", "https://a"),
		newNode("link", "B", "https://b"),
	}})
	if err != nil {
		t.Fatalf("first SaveTree failed: %v", err)
	}

	s.mu.Lock()
	s.createCalls = 0
	s.deleteCalls = 0
	s.mu.Unlock()

	// 原样重提交：只有更新，没有插入和删除
	second, err := svc.SaveTree(ctx, uid, &dto.LinkBulkSaveRequest{Links: first})
	if err != nil {
		t.Fatalf("second SaveTree failed: %v", err)
	}

	if s.createCalls != 0 {
		t.Errorf("resubmit caused %d creates, want 0", s.createCalls)
	}
	if s.deleteCalls != 0 {
		t.Errorf("resubmit caused %d deletes, want 0", s.deleteCalls)
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("node %d id changed: %s -> %s", i, first[i].ID, second[i].ID)
		}
	}
}

func TestSaveTree_RemovedNodeCascades(t *testing.T) {
	s := newMemStore()
	svc := newTestLinkService(s)
	ctx := context.Background()
	uid := int64(1)

	tree, err := svc.SaveTree(ctx, uid, &dto.LinkBulkSaveRequest{Links: []*dto.LinkNodeDTO{
		newNode("link", "A", "https://a"),
		newNode("link", "B", "https://b"),
		newNode("link", "C", "https://c"),
	}})
	if err != nil {
		t.Fatalf("SaveTree failed: %v", err)
	}
	dropped := tree[1]

	s.mu.Lock()
	s.clicks = append(s.clicks, &domain.Click{LinkID: dropped.ID, UID: uid})
	s.clicks = append(s.clicks, &domain.Click{LinkID: tree[0].ID, UID: uid})
	s.mu.Unlock()

	// 去掉中间节点，加入一个新节点
	result, err := svc.SaveTree(ctx, uid, &dto.LinkBulkSaveRequest{Links: []*dto.LinkNodeDTO{
		tree[0],
		tree[2],
		newNode("link", "D", "https://d"),
	}})
	if err != nil {
		t.Fatalf("second SaveTree failed: %v", err)
	}

	if len(result) != 3 {
		t.Fatalf("result count = %d, want 3", len(result))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.links[dropped.ID]; ok {
		t.Errorf("dropped node %s still in storage", dropped.ID)
	}
	for _, c := range s.clicks {
		if c.LinkID == dropped.ID {
			t.Errorf("click row for dropped node %s survived", dropped.ID)
		}
	}
	if len(s.clicks) != 1 {
		t.Errorf("clicks of surviving nodes must stay, got %d rows", len(s.clicks))
	}
}

func TestSaveTree_DroppedParentRemovesChildren(t *testing.T) {
	s := newMemStore()
	svc := newTestLinkService(s)
	ctx := context.Background()
	uid := int64(1)

	coll := newNode("collection", "Group", "")
	coll.Children = []*dto.LinkNodeDTO{
		newNode("link", "Child1", "https://c1"),
		newNode("link", "Child2", "https://c2"),
	}
	tree, err := svc.SaveTree(ctx, uid, &dto.LinkBulkSaveRequest{Links: []*dto.LinkNodeDTO{
		newNode("link", "Solo", "https://solo"),
		coll,
	}})
	if err != nil {
		t.Fatalf("SaveTree failed: %v", err)
	}

	// 省略集合即省略其全部子节点
	result, err := svc.SaveTree(ctx, uid, &dto.LinkBulkSaveRequest{Links: []*dto.LinkNodeDTO{tree[0]}})
	if err != nil {
		t.Fatalf("second SaveTree failed: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("result count = %d, want 1", len(result))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.links) != 1 {
		t.Errorf("storage has %d nodes, want 1", len(s.links))
	}
}

func TestSaveTree_ForeignIDRejected(t *testing.T) {
	s := newMemStore()
	svc := newTestLinkService(s)
	ctx := context.Background()

	_, err := svc.SaveTree(ctx, 1, &dto.LinkBulkSaveRequest{Links: []*dto.LinkNodeDTO{
		newNode("link", "Mine", "https://mine"),
	}})
	if err != nil {
		t.Fatalf("SaveTree failed: %v", err)
	}

	// 格式合法但属于他人的ID必须按不存在拒绝
	foreign := newNode("link", "Stolen", "https://stolen")
	foreign.ID = uuid.NewString()
	_, err = svc.SaveTree(ctx, 2, &dto.LinkBulkSaveRequest{Links: []*dto.LinkNodeDTO{foreign}})
	var c *code.Code
	if !errors.As(err, &c) || c.Code() != code.ErrorLinkNotFound.Code() {
		t.Fatalf("err = %v, want ErrorLinkNotFound", err)
	}
}

func TestSaveTree_ClientPlaceholderIDTreatedAsNew(t *testing.T) {
	s := newMemStore()
	svc := newTestLinkService(s)
	ctx := context.Background()

	node := newNode("link", "New", "https://new")
	node.ID = "tmp-123" // 客户端临时占位符
	tree, err := svc.SaveTree(ctx, 1, &dto.LinkBulkSaveRequest{Links: []*dto.LinkNodeDTO{node}})
	if err != nil {
		t.Fatalf("SaveTree failed: %v", err)
	}
	if tree[0].ID == "tmp-123" {
		t.Error("placeholder id survived, server must assign identity")
	}
	if uuid.Validate(tree[0].ID) != nil {
		t.Errorf("assigned id %q is not well formed", tree[0].ID)
	}
}

func TestSaveTree_StorageErrorRollsBack(t *testing.T) {
	s := newMemStore()
	svc := newTestLinkService(s)
	ctx := context.Background()
	uid := int64(1)

	tree, err := svc.SaveTree(ctx, uid, &dto.LinkBulkSaveRequest{Links: []*dto.LinkNodeDTO{
		newNode("link", "Keep", "https://keep"),
	}})
	if err != nil {
		t.Fatalf("SaveTree failed: %v", err)
	}

	s.mu.Lock()
	s.failCreateAt = s.createCalls + 2 // 第二个新节点落库时失败
	s.failErr = errors.New("disk full")
	s.mu.Unlock()

	_, err = svc.SaveTree(ctx, uid, &dto.LinkBulkSaveRequest{Links: []*dto.LinkNodeDTO{
		tree[0],
		newNode("link", "New1", "https://n1"),
		newNode("link", "New2", "https://n2"),
	}})
	var c *code.Code
	if !errors.As(err, &c) || c.Code() != code.ErrorTreeSyncAborted.Code() {
		t.Fatalf("err = %v, want ErrorTreeSyncAborted", err)
	}

	// 回滚到调用前：只剩原有节点
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.links) != 1 {
		t.Errorf("storage has %d nodes after rollback, want 1", len(s.links))
	}
	if _, ok := s.links[tree[0].ID]; !ok {
		t.Error("pre-existing node lost by rollback")
	}
}

func TestSaveTree_ValidationRejectsBeforeMutation(t *testing.T) {
	tests := []struct {
		name     string
		links    []*dto.LinkNodeDTO
		wantCode int
	}{
		{
			name: "plain link missing url",
			links: []*dto.LinkNodeDTO{
				{Kind: "link", Title: "No URL", IsActive: true},
			},
			wantCode: code.ErrorLinkTitleRequired.Code(),
		},
		{
			name: "children under plain link",
			links: []*dto.LinkNodeDTO{
				{Kind: "link", Title: "A", URL: "https://a", IsActive: true,
					Children: []*dto.LinkNodeDTO{newNode("link", "B", "https://b")}},
			},
			wantCode: code.ErrorLinkKindChildren.Code(),
		},
		{
			name: "three levels deep",
			links: []*dto.LinkNodeDTO{
				{Kind: "collection", Title: "L1", IsActive: true,
					Children: []*dto.LinkNodeDTO{
						{Kind: "collection", Title: "L2", IsActive: true,
							Children: []*dto.LinkNodeDTO{newNode("link", "L3", "https://l3")}},
					}},
			},
			wantCode: code.ErrorLinkTreeTooDeep.Code(),
		},
		{
			name: "videoUrl on non social",
			links: []*dto.LinkNodeDTO{
				{Kind: "link", Title: "A", URL: "https://a", VideoURL: "https://v", IsActive: true},
			},
			wantCode: code.ErrorLinkKindFields.Code(),
		},
		{
			name: "unknown kind",
			links: []*dto.LinkNodeDTO{
				{Kind: "banner", Title: "A", IsActive: true},
			},
			wantCode: code.ErrorInvalidParams.Code(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newMemStore()
			svc := newTestLinkService(s)

			_, err := svc.SaveTree(context.Background(), 1, &dto.LinkBulkSaveRequest{Links: tt.links})
			var c *code.Code
			if !errors.As(err, &c) || c.Code() != tt.wantCode {
				t.Fatalf("err = %v, want code %d", err, tt.wantCode)
			}
			// 校验失败不触碰存储
			if s.createCalls != 0 || s.updateCalls != 0 || s.deleteCalls != 0 {
				t.Errorf("validation error mutated storage: c=%d u=%d d=%d",
					s.createCalls, s.updateCalls, s.deleteCalls)
			}
		})
	}
}

func TestSaveTree_ScheduleEndBeforeStart(t *testing.T) {
	s := newMemStore()
	svc := newTestLinkService(s)

	start := timexOf(time.Now())
	end := timexOf(time.Now().Add(-time.Hour))
	node := newNode("link", "Win", "https://w")
	node.ScheduleStart = start
	node.ScheduleEnd = end

	_, err := svc.SaveTree(context.Background(), 1, &dto.LinkBulkSaveRequest{Links: []*dto.LinkNodeDTO{node}})
	var c *code.Code
	if !errors.As(err, &c) || c.Code() != code.ErrorLinkSchedule.Code() {
		t.Fatalf("err = %v, want ErrorLinkSchedule", err)
	}
}

func TestPublicTree_VisibilityScenario(t *testing.T) {
	s := newMemStore()
	svc := newTestLinkService(s)
	ctx := context.Background()
	uid := int64(1)
	now := time.Now()

	a := newNode("link", "A", "https://a")
	b := newNode("link", "B", "https://b")
	b.ScheduleStart = timexOf(now.Add(24 * time.Hour))
	c := newNode("link", "C", "https://c")
	c.ScheduleEnd = timexOf(now.Add(-24 * time.Hour))
	d := newNode("link", "D", "https://d")
	d.ScheduleStart = timexOf(now.Add(-24 * time.Hour))
	d.ScheduleEnd = timexOf(now.Add(24 * time.Hour))

	ownerTree, err := svc.SaveTree(ctx, uid, &dto.LinkBulkSaveRequest{Links: []*dto.LinkNodeDTO{a, b, c, d}})
	if err != nil {
		t.Fatalf("SaveTree failed: %v", err)
	}

	// 所有者视图：全部 4 个，提交顺序
	if len(ownerTree) != 4 {
		t.Fatalf("owner view count = %d, want 4", len(ownerTree))
	}
	for i, want := range []string{"A", "B", "C", "D"} {
		if ownerTree[i].Title != want {
			t.Errorf("owner view [%d] = %s, want %s", i, ownerTree[i].Title, want)
		}
	}

	// 公开视图：只有 A、D，保持相对顺序
	public, err := svc.GetPublicTree(ctx, uid, now)
	if err != nil {
		t.Fatalf("GetPublicTree failed: %v", err)
	}
	if len(public) != 2 {
		t.Fatalf("public view count = %d, want 2", len(public))
	}
	if public[0].Title != "A" || public[1].Title != "D" {
		t.Errorf("public view = [%s, %s], want [A, D]", public[0].Title, public[1].Title)
	}
}

func TestPublicTree_SingleInstantWindowVisible(t *testing.T) {
	s := newMemStore()
	svc := newTestLinkService(s)
	ctx := context.Background()
	uid := int64(1)
	at := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	node := newNode("link", "Flash", "https://f")
	node.ScheduleStart = timexOf(at)
	node.ScheduleEnd = timexOf(at)
	if _, err := svc.SaveTree(ctx, uid, &dto.LinkBulkSaveRequest{Links: []*dto.LinkNodeDTO{node}}); err != nil {
		t.Fatalf("SaveTree failed: %v", err)
	}

	// 两端都是闭区间，单点窗口在该时刻可见
	public, err := svc.GetPublicTree(ctx, uid, at)
	if err != nil {
		t.Fatalf("GetPublicTree failed: %v", err)
	}
	if len(public) != 1 {
		t.Fatalf("single-instant window hidden, want visible")
	}
}

func TestPublicTree_HiddenParentDropsChildren(t *testing.T) {
	s := newMemStore()
	svc := newTestLinkService(s)
	ctx := context.Background()
	uid := int64(1)

	coll := newNode("collection", "Hidden", "")
	coll.IsActive = false
	coll.Children = []*dto.LinkNodeDTO{newNode("link", "Visible Child", "https://vc")}
	if _, err := svc.SaveTree(ctx, uid, &dto.LinkBulkSaveRequest{Links: []*dto.LinkNodeDTO{
		newNode("link", "Root", "https://r"),
		coll,
	}}); err != nil {
		t.Fatalf("SaveTree failed: %v", err)
	}

	// 父节点被过滤时子节点被丢弃，不提升为根
	public, err := svc.GetPublicTree(ctx, uid, time.Now())
	if err != nil {
		t.Fatalf("GetPublicTree failed: %v", err)
	}
	if len(public) != 1 || public[0].Title != "Root" {
		t.Fatalf("public view = %v, want only Root", titles(public))
	}
}

func TestTree_AgendaEventsAttached(t *testing.T) {
	s := newMemStore()
	svc := newTestLinkService(s)
	ctx := context.Background()
	uid := int64(1)

	tree, err := svc.SaveTree(ctx, uid, &dto.LinkBulkSaveRequest{Links: []*dto.LinkNodeDTO{
		newNode("agenda", "Tour", ""),
	}})
	if err != nil {
		t.Fatalf("SaveTree failed: %v", err)
	}
	agendaID := tree[0].ID

	// 日程节点没有事件时返回空切片而不是 null
	if tree[0].Events == nil || len(tree[0].Events) != 0 {
		t.Errorf("agenda without events: got %v, want empty slice", tree[0].Events)
	}

	s.mu.Lock()
	s.events["e1"] = &domain.Event{ID: "e1", CollectionID: agendaID, UID: uid, Title: "Show 1", Position: 0}
	s.events["e2"] = &domain.Event{ID: "e2", CollectionID: agendaID, UID: uid, Title: "Show 2", Position: 1}
	s.mu.Unlock()

	got, err := svc.GetTree(ctx, uid)
	if err != nil {
		t.Fatalf("GetTree failed: %v", err)
	}
	if len(got[0].Events) != 2 {
		t.Fatalf("events attached = %d, want 2", len(got[0].Events))
	}
	if got[0].Events[0].Title != "Show 1" || got[0].Events[1].Title != "Show 2" {
		t.Errorf("events out of order: %s, %s", got[0].Events[0].Title, got[0].Events[1].Title)
	}
}

func TestSaveTree_RoundTrip(t *testing.T) {
	s := newMemStore()
	svc := newTestLinkService(s)
	ctx := context.Background()
	uid := int64(1)

	coll := newNode("collection", "Col", "")
	coll.Children = []*dto.LinkNodeDTO{
		newNode("link", "C1", "https://c1"),
		newNode("social", "C2", "https://c2"),
	}
	submitted := []*dto.LinkNodeDTO{
		newNode("link", "R1", "https://r1"),
		coll,
		newNode("agenda", "R3", ""),
	}

	saved, err := svc.SaveTree(ctx, uid, &dto.LinkBulkSaveRequest{Links: submitted})
	if err != nil {
		t.Fatalf("SaveTree failed: %v", err)
	}
	read, err := svc.GetTree(ctx, uid)
	if err != nil {
		t.Fatalf("GetTree failed: %v", err)
	}

	assertSameShape(t, saved, read)
}

func assertSameShape(t *testing.T, a, b []*dto.LinkNodeDTO) {
	t.Helper()
	if len(a) != len(b) {
		t.Fatalf("level size %d != %d", len(a), len(b))
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].Title != b[i].Title || a[i].Kind != b[i].Kind {
			t.Errorf("node %d differs: (%s %s %s) vs (%s %s %s)",
				i, a[i].ID, a[i].Kind, a[i].Title, b[i].ID, b[i].Kind, b[i].Title)
		}
		assertSameShape(t, a[i].Children, b[i].Children)
	}
}

func titles(nodes []*dto.LinkNodeDTO) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Title)
	}
	return out
}
