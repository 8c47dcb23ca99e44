package api_router

import (
	"github.com/linkgrove/link-page-service/internal/app"
	"github.com/linkgrove/link-page-service/internal/dto"
	pkgapp "github.com/linkgrove/link-page-service/pkg/app"
	"github.com/linkgrove/link-page-service/pkg/code"
	apperrors "github.com/linkgrove/link-page-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LinkHandler link tree API router handler
// LinkHandler 链接树 API 路由处理器
// Uses App Container to inject dependencies, supports unified error handling
// 使用 App Container 注入依赖，支持统一错误处理
type LinkHandler struct {
	*Handler
}

// NewLinkHandler creates LinkHandler instance
// NewLinkHandler 创建 LinkHandler 实例
func NewLinkHandler(a *app.App) *LinkHandler {
	return &LinkHandler{
		Handler: NewHandler(a),
	}
}

// Tree retrieves the full link tree of the current user
// @Summary Get link tree (owner view)
// @Description Return the complete link tree of the current user, including inactive and scheduled-out nodes.
// @Description 返回当前用户的完整链接树，包含停用节点和未到发布时段的节点。
// @Tags Link
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Produce json
// @Success 200 {object} pkgapp.Res{data=[]dto.LinkNodeDTO} "Success"
// @Failure 401 {object} pkgapp.Res "Unauthorized"
// @Router /api/links [get]
func (h *LinkHandler) Tree(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("LinkHandler.Tree err uid=0")
		response.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	tree, err := h.App.LinkService.GetTree(ctx, uid)
	if err != nil {
		h.logError(ctx, "LinkHandler.Tree", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(tree))
}

// SaveTree reconciles the submitted tree against the stored one
// @Summary Bulk save link tree
// @Description Reconcile the submitted tree with the stored tree in one transaction: existing nodes keep their identity, new nodes are inserted, missing nodes are deleted with their clicks and events. Returns the stored tree after reconciliation.
// @Description 全量提交链接树并与存量树对账：已有节点保留身份，新节点插入，缺失节点连同点击与事件级联删除。返回对账后的存量树。
// @Tags Link
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Accept json
// @Produce json
// @Param params body dto.LinkBulkSaveRequest true "Full tree"
// @Success 200 {object} pkgapp.Res{data=[]dto.LinkNodeDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Parameters / Tree Validation Failed"
// @Failure 401 {object} pkgapp.Res "Unauthorized"
// @Failure 502 {object} pkgapp.Res "Sync Aborted, Storage Rolled Back"
// @Router /api/links [post]
func (h *LinkHandler) SaveTree(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.LinkBulkSaveRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("LinkHandler.SaveTree.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("LinkHandler.SaveTree err uid=0")
		response.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	tree, err := h.App.LinkService.SaveTree(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "LinkHandler.SaveTree", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(tree))
}

// Create creates a single link node
// @Summary Create link node
// @Description Create a single node and append it to the end of the target level.
// @Description 创建单个节点并追加到目标层级末尾。
// @Tags Link
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Accept json
// @Produce json
// @Param params body dto.LinkCreateRequest true "Create Parameters"
// @Success 200 {object} pkgapp.Res{data=dto.LinkNodeDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Parameters"
// @Failure 401 {object} pkgapp.Res "Unauthorized"
// @Router /api/link [post]
func (h *LinkHandler) Create(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.LinkCreateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("LinkHandler.Create.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("LinkHandler.Create err uid=0")
		response.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	node, err := h.App.LinkService.Create(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "LinkHandler.Create", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(node))
}

// Update updates display attributes of a single node
// @Summary Update link node
// @Description Update display attributes of a single node. Position and parent are owned by the bulk save flow and are not touched here.
// @Description 更新单个节点的展示属性。排序与父子关系由全量提交流程维护，此处不修改。
// @Tags Link
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Accept json
// @Produce json
// @Param params body dto.LinkUpdateRequest true "Update Parameters"
// @Success 200 {object} pkgapp.Res{data=dto.LinkNodeDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Parameters / Link Not Found"
// @Failure 401 {object} pkgapp.Res "Unauthorized"
// @Router /api/link [put]
func (h *LinkHandler) Update(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.LinkUpdateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("LinkHandler.Update.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("LinkHandler.Update err uid=0")
		response.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	node, err := h.App.LinkService.Update(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "LinkHandler.Update", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(node))
}

// Delete removes a single node with its children, clicks and events
// @Summary Delete link node
// @Description Delete a single node together with its children, click records and agenda events.
// @Description 删除单个节点及其子节点、点击记录和日程事件。
// @Tags Link
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Accept json
// @Produce json
// @Param params body dto.LinkDeleteRequest true "Delete Parameters"
// @Success 200 {object} pkgapp.Res "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Parameters / Link Not Found"
// @Failure 401 {object} pkgapp.Res "Unauthorized"
// @Router /api/link [delete]
func (h *LinkHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.LinkDeleteRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("LinkHandler.Delete.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("LinkHandler.Delete err uid=0")
		response.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	if err := h.App.LinkService.Delete(ctx, uid, params.ID); err != nil {
		h.logError(ctx, "LinkHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}

// Archive toggles the archived flag of a node
// @Summary Archive or restore link node
// @Description Toggle the archived flag. Archived nodes are hidden from both views and excluded from bulk save reconciliation, but keep their click counts.
// @Description 切换节点归档状态。归档节点在两种视图中均不可见，也不参与全量提交对账，但保留点击计数。
// @Tags Link
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Accept json
// @Produce json
// @Param params body dto.LinkArchiveRequest true "Archive Parameters"
// @Success 200 {object} pkgapp.Res "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Parameters / Link Not Found"
// @Failure 401 {object} pkgapp.Res "Unauthorized"
// @Router /api/link/archive [put]
func (h *LinkHandler) Archive(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.LinkArchiveRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("LinkHandler.Archive.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("LinkHandler.Archive err uid=0")
		response.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	if err := h.App.LinkService.Archive(ctx, uid, params.ID, *params.Archived); err != nil {
		h.logError(ctx, "LinkHandler.Archive", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}
