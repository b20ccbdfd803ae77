package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Spencerzone/cal-sub000/internal/dto"
	"github.com/Spencerzone/cal-sub000/internal/service"
	pkgerrors "github.com/Spencerzone/cal-sub000/pkg/errors"
	"github.com/Spencerzone/cal-sub000/pkg/response"
)

// TermHandler 学期配置模块 HTTP 处理器
type TermHandler struct {
	termSvc service.TermService
}

// NewTermHandler 创建 TermHandler
func NewTermHandler(termSvc service.TermService) *TermHandler {
	return &TermHandler{termSvc: termSvc}
}

// SaveTermYear 保存学年学期配置（同学年覆盖更新）
// PUT /api/v1/terms
func (h *TermHandler) SaveTermYear(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SaveTermYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	resp, err := h.termSvc.Save(c.Request.Context(), userID, &req)
	if err != nil {
		handleTermError(c, err)
		return
	}
	response.OK(c, resp)
}

// ListTermYears 查询学年学期配置
// GET /api/v1/terms
func (h *TermHandler) ListTermYears(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	resp, err := h.termSvc.List(c.Request.Context(), userID)
	if err != nil {
		handleTermError(c, err)
		return
	}
	response.OK(c, resp)
}

// DeleteTermYear 删除学年学期配置
// DELETE /api/v1/terms/:id
func (h *TermHandler) DeleteTermYear(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.termSvc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		handleTermError(c, err)
		return
	}
	response.OK(c, nil)
}

// handleTermError 统一学期模块错误映射
func handleTermError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTermNotFound):
		response.NotFound(c, 14001, err.Error())
	case errors.Is(err, service.ErrTermBadInterval):
		response.BadRequest(c, 14002, err.Error())
	case errors.Is(err, service.ErrBadDate):
		response.BadRequest(c, 14003, err.Error())
	case errors.Is(err, service.ErrNoPermission):
		response.Forbidden(c, 14004, "无权操作")
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Error(c, http.StatusConflict, 14005, "配置已被其他请求修改，请重试")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/term_handler.go
