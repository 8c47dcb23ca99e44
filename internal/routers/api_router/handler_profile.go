package api_router

import (
	"time"

	"github.com/linkgrove/link-page-service/internal/app"
	"github.com/linkgrove/link-page-service/internal/dto"
	pkgapp "github.com/linkgrove/link-page-service/pkg/app"
	"github.com/linkgrove/link-page-service/pkg/code"
	apperrors "github.com/linkgrove/link-page-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProfileHandler public profile API router handler
// ProfileHandler 公开主页 API 路由处理器
// 无需认证，访客视角返回可见链接树并接收点击上报
type ProfileHandler struct {
	*Handler
}

// NewProfileHandler creates ProfileHandler instance
// NewProfileHandler 创建 ProfileHandler 实例
func NewProfileHandler(a *app.App) *ProfileHandler {
	return &ProfileHandler{
		Handler: NewHandler(a),
	}
}

// Profile retrieves the public profile page of one user
// @Summary Get public profile
// @Description Return the public profile by username: display info plus the visible link tree. Visibility is evaluated against the current server time, so inactive, scheduled-out and archived nodes never appear.
// @Description 按用户名返回公开主页：展示信息加可见链接树。可见性按服务器当前时间判定，停用、未到发布时段和归档的节点不会出现。
// @Tags Profile
// @Produce json
// @Param username path string true "Profile username"
// @Success 200 {object} pkgapp.Res{data=dto.ProfileDTO} "Success"
// @Failure 400 {object} pkgapp.Res "User Not Found"
// @Router /api/profile/{username} [get]
func (h *ProfileHandler) Profile(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	username := c.Param("username")

	ctx := c.Request.Context()

	profile, uid, err := h.App.UserService.GetPublicProfile(ctx, username)
	if err != nil {
		h.logError(ctx, "ProfileHandler.Profile", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	links, err := h.App.LinkService.GetPublicTree(ctx, uid, time.Now())
	if err != nil {
		h.logError(ctx, "ProfileHandler.Profile.GetPublicTree", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	profile.Links = links

	response.ToResponse(code.Success.WithData(profile))
}

// Click records one visitor click on a public link
// @Summary Track link click
// @Description Record one click on a public link. Existence is checked synchronously, the write itself is asynchronous and best-effort.
// @Description 记录公开链接的一次点击。同步校验链接存在性，写入本身异步且尽力而为。
// @Tags Profile
// @Accept json
// @Produce json
// @Param params body dto.ClickTrackRequest true "Click Parameters"
// @Success 200 {object} pkgapp.Res "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Parameters / Link Not Found"
// @Router /api/click [post]
func (h *ProfileHandler) Click(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.ClickTrackRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("ProfileHandler.Click.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()

	err := h.App.ClickService.Track(ctx, params, pkgapp.GetRequestIP(c), c.Request.UserAgent())
	if err != nil {
		h.logError(ctx, "ProfileHandler.Click", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}
