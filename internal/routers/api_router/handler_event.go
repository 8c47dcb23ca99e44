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

// EventHandler agenda event API router handler
// EventHandler 日程事件 API 路由处理器
type EventHandler struct {
	*Handler
}

// NewEventHandler creates EventHandler instance
// NewEventHandler 创建 EventHandler 实例
func NewEventHandler(a *app.App) *EventHandler {
	return &EventHandler{
		Handler: NewHandler(a),
	}
}

// List retrieves all events of one agenda collection
// @Summary List agenda events
// @Description Return all events of one agenda collection, ordered by position.
// @Description 返回某个日程集合下的全部事件，按排序位置返回。
// @Tags Event
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Produce json
// @Param collectionId query string true "Agenda collection ID"
// @Success 200 {object} pkgapp.Res{data=[]dto.EventDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Parameters / Collection Not Found"
// @Failure 401 {object} pkgapp.Res "Unauthorized"
// @Router /api/events [get]
func (h *EventHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.EventListRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("EventHandler.List.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("EventHandler.List err uid=0")
		response.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	events, err := h.App.EventService.List(ctx, uid, params.CollectionID)
	if err != nil {
		h.logError(ctx, "EventHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(events))
}

// Replace replaces all events of one agenda collection
// @Summary Bulk replace agenda events
// @Description Replace all events of one collection in a single transaction. Submitted IDs are ignored, every event gets a fresh ID.
// @Description 在单个事务内全量替换某个集合的全部事件。提交的 ID 会被忽略，每个事件都分配新 ID。
// @Tags Event
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Accept json
// @Produce json
// @Param params body dto.EventBulkReplaceRequest true "Replace Parameters"
// @Success 200 {object} pkgapp.Res{data=[]dto.EventDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Parameters / Collection Not Found / Wrong Collection Kind"
// @Failure 401 {object} pkgapp.Res "Unauthorized"
// @Failure 502 {object} pkgapp.Res "Sync Aborted, Storage Rolled Back"
// @Router /api/events [post]
func (h *EventHandler) Replace(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.EventBulkReplaceRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("EventHandler.Replace.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("EventHandler.Replace err uid=0")
		response.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	events, err := h.App.EventService.Replace(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "EventHandler.Replace", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(events))
}

// Create creates a single agenda event
// @Summary Create agenda event
// @Description Create a single event and append it to the end of the collection.
// @Description 创建单个事件并追加到集合末尾。
// @Tags Event
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Accept json
// @Produce json
// @Param params body dto.EventCreateRequest true "Create Parameters"
// @Success 200 {object} pkgapp.Res{data=dto.EventDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Parameters / Collection Not Found"
// @Failure 401 {object} pkgapp.Res "Unauthorized"
// @Router /api/event [post]
func (h *EventHandler) Create(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.EventCreateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("EventHandler.Create.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("EventHandler.Create err uid=0")
		response.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	event, err := h.App.EventService.Create(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "EventHandler.Create", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(event))
}

// Update updates a single agenda event
// @Summary Update agenda event
// @Description Update attributes of a single event.
// @Description 更新单个事件的属性。
// @Tags Event
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Accept json
// @Produce json
// @Param params body dto.EventUpdateRequest true "Update Parameters"
// @Success 200 {object} pkgapp.Res{data=dto.EventDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Parameters / Event Not Found"
// @Failure 401 {object} pkgapp.Res "Unauthorized"
// @Router /api/event [put]
func (h *EventHandler) Update(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.EventUpdateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("EventHandler.Update.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("EventHandler.Update err uid=0")
		response.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	event, err := h.App.EventService.Update(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "EventHandler.Update", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(event))
}

// Delete removes a single agenda event
// @Summary Delete agenda event
// @Description Delete a single event.
// @Description 删除单个事件。
// @Tags Event
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Accept json
// @Produce json
// @Param params body dto.EventDeleteRequest true "Delete Parameters"
// @Success 200 {object} pkgapp.Res "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Parameters / Event Not Found"
// @Failure 401 {object} pkgapp.Res "Unauthorized"
// @Router /api/event [delete]
func (h *EventHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.EventDeleteRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("EventHandler.Delete.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("EventHandler.Delete err uid=0")
		response.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	if err := h.App.EventService.Delete(ctx, uid, params.ID); err != nil {
		h.logError(ctx, "EventHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}
