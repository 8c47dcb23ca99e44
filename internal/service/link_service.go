package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/linkgrove/link-page-service/internal/domain"
	"github.com/linkgrove/link-page-service/internal/dto"
	"github.com/linkgrove/link-page-service/pkg/code"
	"github.com/linkgrove/link-page-service/pkg/logger"
	"github.com/linkgrove/link-page-service/pkg/timex"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// LinkService 定义链接树业务服务接口
type LinkService interface {
	// GetTree 获取用户完整链接树（所有者视图，不做可见性过滤）
	GetTree(ctx context.Context, uid int64) ([]*dto.LinkNodeDTO, error)

	// GetPublicTree 获取公开视图链接树，按 asOf 时刻做可见性过滤
	GetPublicTree(ctx context.Context, uid int64, asOf time.Time) ([]*dto.LinkNodeDTO, error)

	// SaveTree 全量树同步：与存量树做最小差异对账
	// 保留已有节点身份，新节点插入，缺失节点连同点击与事件级联删除
	SaveTree(ctx context.Context, uid int64, params *dto.LinkBulkSaveRequest) ([]*dto.LinkNodeDTO, error)

	// Create 创建单个节点，追加到目标层级末尾
	Create(ctx context.Context, uid int64, params *dto.LinkCreateRequest) (*dto.LinkNodeDTO, error)

	// Update 更新单个节点的展示属性
	Update(ctx context.Context, uid int64, params *dto.LinkUpdateRequest) (*dto.LinkNodeDTO, error)

	// Delete 删除单个节点及其子节点、点击记录和事件
	Delete(ctx context.Context, uid int64, id string) error

	// Archive 切换节点归档状态
	Archive(ctx context.Context, uid int64, id string, archived bool) error
}

// linkService 实现 LinkService 接口
type linkService struct {
	linkRepo  domain.LinkRepository
	eventRepo domain.EventRepository
	clickRepo domain.ClickRepository
	tx        domain.TxManager
	sf        *singleflight.Group
	logger    *zap.Logger
}

// NewLinkService 创建 LinkService 实例
func NewLinkService(linkRepo domain.LinkRepository, eventRepo domain.EventRepository, clickRepo domain.ClickRepository, tx domain.TxManager, logger *zap.Logger) LinkService {
	return &linkService{
		linkRepo:  linkRepo,
		eventRepo: eventRepo,
		clickRepo: clickRepo,
		tx:        tx,
		sf:        &singleflight.Group{},
		logger:    logger,
	}
}

var _ LinkService = (*linkService)(nil)

// ---------------- Mapper ----------------

// dtoToDomain 将外部节点表示转换为存储表示
// 纯函数；ParentID 与 Position 由对账过程覆盖，客户端提交值不生效
func (s *linkService) dtoToDomain(node *dto.LinkNodeDTO, uid int64) *domain.Link {
	return &domain.Link{
		UID:           uid,
		Kind:          domain.LinkKind(node.Kind),
		Title:         node.Title,
		URL:           node.URL,
		Image:         node.Image,
		Layout:        node.Layout,
		Highlight:     node.Highlight,
		EmbedType:     node.EmbedType,
		Subtitle:      node.Subtitle,
		Platform:      node.Platform,
		VideoURL:      node.VideoURL,
		IsActive:      node.IsActive,
		ScheduleStart: timeFromTimex(node.ScheduleStart),
		ScheduleEnd:   timeFromTimex(node.ScheduleEnd),
	}
}

// domainToDTO 将存储表示转换为外部节点表示
// 属主与父指针不对外暴露，树形关系由嵌套结构表达
func (s *linkService) domainToDTO(link *domain.Link) *dto.LinkNodeDTO {
	return &dto.LinkNodeDTO{
		ID:            link.ID,
		Kind:          string(link.Kind),
		Title:         link.Title,
		URL:           link.URL,
		Image:         link.Image,
		Layout:        link.Layout,
		Highlight:     link.Highlight,
		EmbedType:     link.EmbedType,
		Subtitle:      link.Subtitle,
		Platform:      link.Platform,
		VideoURL:      link.VideoURL,
		IsActive:      link.IsActive,
		ScheduleStart: timexFromTime(link.ScheduleStart),
		ScheduleEnd:   timexFromTime(link.ScheduleEnd),
		Clicks:        link.Clicks,
		CreatedAt:     timex.Time(link.CreatedAt),
		UpdatedAt:     timex.Time(link.UpdatedAt),
	}
}

// ---------------- Tree Assembler ----------------

// assemble 将扁平节点集与事件集组装为嵌套树
// 过滤先于建树且仅基于节点自身属性；父节点被过滤或缺失时
// 子节点被静默丢弃，不提升到根层级
func (s *linkService) assemble(links []*domain.Link, events []*domain.Event, filter bool, asOf time.Time) []*dto.LinkNodeDTO {

	eventsByCollection := make(map[string][]*dto.EventDTO)
	for _, e := range events {
		eventsByCollection[e.CollectionID] = append(eventsByCollection[e.CollectionID], eventDomainToDTO(e))
	}

	type entry struct {
		link *domain.Link
		node *dto.LinkNodeDTO
	}

	index := make(map[string]*dto.LinkNodeDTO, len(links))
	ordered := make([]entry, 0, len(links))
	for _, link := range links {
		if filter && !link.IsVisible(asOf) {
			continue
		}
		node := s.domainToDTO(link)
		if link.Kind.CanHaveEvents() {
			node.Events = []*dto.EventDTO{}
			if evs, ok := eventsByCollection[link.ID]; ok {
				node.Events = evs
			}
		}
		index[link.ID] = node
		ordered = append(ordered, entry{link: link, node: node})
	}

	roots := make([]*dto.LinkNodeDTO, 0, len(ordered))
	for _, e := range ordered {
		if e.link.IsRoot() {
			roots = append(roots, e.node)
			continue
		}
		if parent, ok := index[e.link.ParentID]; ok {
			parent.Children = append(parent.Children, e.node)
		}
	}
	return roots
}

// fetchFlat 并发获取用户的节点集与事件集
func (s *linkService) fetchFlat(ctx context.Context, uid int64) ([]*domain.Link, []*domain.Event, error) {
	var (
		links  []*domain.Link
		events []*domain.Event
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		links, err = s.linkRepo.ListByUID(gctx, uid)
		return err
	})
	g.Go(func() error {
		var err error
		events, err = s.eventRepo.ListByUID(gctx, uid)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return links, events, nil
}

// GetTree 获取用户完整链接树
func (s *linkService) GetTree(ctx context.Context, uid int64) ([]*dto.LinkNodeDTO, error) {
	links, events, err := s.fetchFlat(ctx, uid)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return s.assemble(links, events, false, time.Time{}), nil
}

// GetPublicTree 获取公开视图链接树
// singleflight 合并同一用户的并发公开读
func (s *linkService) GetPublicTree(ctx context.Context, uid int64, asOf time.Time) ([]*dto.LinkNodeDTO, error) {
	type flat struct {
		links  []*domain.Link
		events []*domain.Event
	}
	v, err, _ := s.sf.Do(fmt.Sprintf("public_tree_%d", uid), func() (interface{}, error) {
		links, events, err := s.fetchFlat(ctx, uid)
		if err != nil {
			return nil, err
		}
		return &flat{links: links, events: events}, nil
	})
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	f := v.(*flat)
	return s.assemble(f.links, f.events, true, asOf), nil
}

// ---------------- Validation ----------------

// validateTree 在任何写入前校验提交树
// 两层限制、类型与字段约束、调度窗口顺序
func (s *linkService) validateTree(nodes []*dto.LinkNodeDTO) error {
	return s.validateLevel(nodes, 1)
}

func (s *linkService) validateLevel(nodes []*dto.LinkNodeDTO, depth int) error {
	for _, node := range nodes {
		if err := s.validateNode(node); err != nil {
			return err
		}
		if len(node.Children) == 0 {
			continue
		}
		if !domain.LinkKind(node.Kind).CanHaveChildren() {
			return code.ErrorLinkKindChildren.WithDetails(node.Title)
		}
		if depth >= 2 {
			return code.ErrorLinkTreeTooDeep.WithDetails(node.Title)
		}
		if err := s.validateLevel(node.Children, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (s *linkService) validateNode(node *dto.LinkNodeDTO) error {
	kind := domain.LinkKind(node.Kind)
	if !kind.Valid() {
		return code.ErrorInvalidParams.WithDetails("unknown kind: " + node.Kind)
	}
	if kind == domain.KindLink && (node.Title == "" || node.URL == "") {
		return code.ErrorLinkTitleRequired
	}
	if node.VideoURL != "" && kind != domain.KindSocial {
		return code.ErrorLinkKindFields.WithDetails("videoUrl")
	}
	if len(node.Events) > 0 && !kind.CanHaveEvents() {
		return code.ErrorCollectionKind.WithDetails(node.Title)
	}
	if node.ScheduleStart != nil && node.ScheduleEnd != nil {
		if node.ScheduleEnd.Time().Before(node.ScheduleStart.Time()) {
			return code.ErrorLinkSchedule
		}
	}
	return nil
}

// ---------------- Tree Reconciler ----------------

// SaveTree 全量树同步
// 全部 upsert 与随后的级联删除在一个事务内执行；任何一步失败
// 整体回滚到调用前的树，错误码区分校验失败与存储回滚
func (s *linkService) SaveTree(ctx context.Context, uid int64, params *dto.LinkBulkSaveRequest) ([]*dto.LinkNodeDTO, error) {
	if err := s.validateTree(params.Links); err != nil {
		return nil, err
	}

	// 客户端断开不中断同步，避免树停留在半同步状态
	ctx = context.WithoutCancel(ctx)

	existingIDs, err := s.linkRepo.ListIDsByUID(ctx, uid)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	existing := make(map[string]struct{}, len(existingIDs))
	for _, id := range existingIDs {
		existing[id] = struct{}{}
	}
	touched := make(map[string]struct{}, len(existingIDs))

	err = s.tx.Transaction(ctx, func(txCtx context.Context) error {
		if err := s.upsertLevel(txCtx, uid, params.Links, "", existing, touched); err != nil {
			return err
		}

		// 删除在全部 upsert 成功之后执行，绝不交错
		toDelete := make([]string, 0)
		for id := range existing {
			if _, ok := touched[id]; !ok {
				toDelete = append(toDelete, id)
			}
		}
		if len(toDelete) == 0 {
			return nil
		}
		sort.Strings(toDelete)

		if err := s.clickRepo.DeleteByLinkIDs(txCtx, toDelete); err != nil {
			return err
		}
		if err := s.eventRepo.DeleteByCollections(txCtx, toDelete, uid); err != nil {
			return err
		}
		return s.linkRepo.DeleteBatch(txCtx, toDelete, uid)
	})
	if err != nil {
		var c *code.Code
		if errors.As(err, &c) {
			return nil, err
		}
		s.logger.Error("linkService.SaveTree rollback",
			zap.Int64(logger.FieldUID, uid), zap.Error(err))
		return nil, code.ErrorTreeSyncAborted.WithDetails(err.Error())
	}

	return s.GetTree(ctx, uid)
}

// upsertLevel 逐层处理提交树：先当前层再子层
// 父节点先落库拿到ID，子节点才能引用它作为 parentID
// 同层 position 取提交顺序的序号，客户端提交值不生效
func (s *linkService) upsertLevel(ctx context.Context, uid int64, nodes []*dto.LinkNodeDTO, parentID string, existing, touched map[string]struct{}) error {
	for i, node := range nodes {
		link := s.dtoToDomain(node, uid)
		link.ParentID = parentID
		link.Position = i

		if isStorageID(node.ID) {
			// 格式合法但不属于该用户的ID按不存在拒绝，防止跨属主覆写
			if _, ok := existing[node.ID]; !ok {
				return code.ErrorLinkNotFound.WithDetails(node.ID)
			}
			link.ID = node.ID
			if _, err := s.linkRepo.Update(ctx, link); err != nil {
				return err
			}
		} else {
			// 客户端临时占位符或空ID视为新节点，由服务端分配身份
			link.ID = uuid.NewString()
			if _, err := s.linkRepo.Create(ctx, link); err != nil {
				return err
			}
		}
		touched[link.ID] = struct{}{}

		if len(node.Children) > 0 {
			if err := s.upsertLevel(ctx, uid, node.Children, link.ID, existing, touched); err != nil {
				return err
			}
		}
	}
	return nil
}

// isStorageID 判断一个提交ID是否符合存储层的ID格式
func isStorageID(id string) bool {
	if id == "" {
		return false
	}
	return uuid.Validate(id) == nil
}

// ---------------- Single node operations ----------------

// Create 创建单个节点
func (s *linkService) Create(ctx context.Context, uid int64, params *dto.LinkCreateRequest) (*dto.LinkNodeDTO, error) {
	isActive := true
	if params.IsActive != nil {
		isActive = *params.IsActive
	}
	node := &dto.LinkNodeDTO{
		Kind:          params.Kind,
		Title:         params.Title,
		URL:           params.URL,
		Image:         params.Image,
		Layout:        params.Layout,
		Highlight:     params.Highlight,
		EmbedType:     params.EmbedType,
		Subtitle:      params.Subtitle,
		Platform:      params.Platform,
		VideoURL:      params.VideoURL,
		IsActive:      isActive,
		ScheduleStart: params.ScheduleStart,
		ScheduleEnd:   params.ScheduleEnd,
	}
	if err := s.validateNode(node); err != nil {
		return nil, err
	}

	if params.ParentID != "" {
		parent, err := s.linkRepo.GetByID(ctx, params.ParentID, uid)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, code.ErrorLinkNotFound.WithDetails(params.ParentID)
			}
			return nil, code.ErrorDBQuery.WithDetails(err.Error())
		}
		if !parent.Kind.CanHaveChildren() {
			return nil, code.ErrorLinkKindChildren
		}
		if !parent.IsRoot() {
			return nil, code.ErrorLinkTreeTooDeep
		}
	}

	link := s.dtoToDomain(node, uid)
	link.ID = uuid.NewString()
	link.ParentID = params.ParentID

	// 追加到同层级末尾，保持位置稠密
	siblings, err := s.linkRepo.ListByUID(ctx, uid)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	position := 0
	for _, sib := range siblings {
		if sib.ParentID == params.ParentID {
			position++
		}
	}
	link.Position = position

	created, err := s.linkRepo.Create(ctx, link)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return s.domainToDTO(created), nil
}

// Update 更新单个节点
// 只更新请求中出现的字段，位置与父子关系不在此路径调整
func (s *linkService) Update(ctx context.Context, uid int64, params *dto.LinkUpdateRequest) (*dto.LinkNodeDTO, error) {
	link, err := s.linkRepo.GetByID(ctx, params.ID, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorLinkNotFound.WithDetails(params.ID)
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	if params.Title != nil {
		link.Title = *params.Title
	}
	if params.URL != nil {
		link.URL = *params.URL
	}
	if params.Image != nil {
		link.Image = *params.Image
	}
	if params.Layout != nil {
		link.Layout = *params.Layout
	}
	if params.Highlight != nil {
		link.Highlight = *params.Highlight
	}
	if params.EmbedType != nil {
		link.EmbedType = *params.EmbedType
	}
	if params.Subtitle != nil {
		link.Subtitle = *params.Subtitle
	}
	if params.Platform != nil {
		link.Platform = *params.Platform
	}
	if params.VideoURL != nil {
		link.VideoURL = *params.VideoURL
	}
	if params.IsActive != nil {
		link.IsActive = *params.IsActive
	}
	if params.ScheduleStart != nil {
		link.ScheduleStart = timeFromTimex(params.ScheduleStart)
	}
	if params.ScheduleEnd != nil {
		link.ScheduleEnd = timeFromTimex(params.ScheduleEnd)
	}

	if err := s.validateNode(s.domainToDTO(link)); err != nil {
		return nil, err
	}

	updated, err := s.linkRepo.Update(ctx, link)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return s.domainToDTO(updated), nil
}

// Delete 删除单个节点
// 两层模型下子节点随父节点删除，点击与事件一并清理
func (s *linkService) Delete(ctx context.Context, uid int64, id string) error {
	if _, err := s.linkRepo.GetByID(ctx, id, uid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.ErrorLinkNotFound.WithDetails(id)
		}
		return code.ErrorDBQuery.WithDetails(err.Error())
	}

	links, err := s.linkRepo.ListByUID(ctx, uid)
	if err != nil {
		return code.ErrorDBQuery.WithDetails(err.Error())
	}
	toDelete := []string{id}
	for _, l := range links {
		if l.ParentID == id {
			toDelete = append(toDelete, l.ID)
		}
	}

	ctx = context.WithoutCancel(ctx)
	err = s.tx.Transaction(ctx, func(txCtx context.Context) error {
		if err := s.clickRepo.DeleteByLinkIDs(txCtx, toDelete); err != nil {
			return err
		}
		if err := s.eventRepo.DeleteByCollections(txCtx, toDelete, uid); err != nil {
			return err
		}
		return s.linkRepo.DeleteBatch(txCtx, toDelete, uid)
	})
	if err != nil {
		return code.ErrorDBQuery.WithDetails(err.Error())
	}
	return nil
}

// Archive 切换节点归档状态
func (s *linkService) Archive(ctx context.Context, uid int64, id string, archived bool) error {
	if _, err := s.linkRepo.GetByID(ctx, id, uid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.ErrorLinkNotFound.WithDetails(id)
		}
		return code.ErrorDBQuery.WithDetails(err.Error())
	}
	if err := s.linkRepo.UpdateArchived(ctx, id, uid, archived); err != nil {
		return code.ErrorDBQuery.WithDetails(err.Error())
	}
	return nil
}

func timeFromTimex(t *timex.Time) *time.Time {
	if t == nil {
		return nil
	}
	tt := t.Time()
	if tt.IsZero() {
		return nil
	}
	return &tt
}

func timexFromTime(t *time.Time) *timex.Time {
	if t == nil {
		return nil
	}
	tt := timex.Time(*t)
	return &tt
}
