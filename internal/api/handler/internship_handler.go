package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"intern-hub/backend/internal/dto"
	"intern-hub/backend/internal/service"
	"intern-hub/backend/pkg/response"
)

// InternshipHandler 实习岗位模块 HTTP 处理器
type InternshipHandler struct {
	internshipSvc service.InternshipService
}

// NewInternshipHandler 创建 InternshipHandler
func NewInternshipHandler(internshipSvc service.InternshipService) *InternshipHandler {
	return &InternshipHandler{internshipSvc: internshipSvc}
}

// ListInternships 岗位目录
// GET /api/v1/internships
func (h *InternshipHandler) ListInternships(c *gin.Context) {
	var req dto.InternshipListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	internships, total, err := h.internshipSvc.List(c.Request.Context(), &req, IsAdmin(c))
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OKPage(c, internships, total, req.GetPage(), req.GetPageSize())
}

// GetInternship 岗位详情
// GET /api/v1/internships/:id
func (h *InternshipHandler) GetInternship(c *gin.Context) {
	internship, err := h.internshipSvc.Get(c.Request.Context(), c.Param("id"), IsAdmin(c))
	if err != nil {
		if errors.Is(err, service.ErrInternshipNotFound) {
			response.NotFound(c, 13001, "实习岗位不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, internship)
}

// CreateInternship 创建岗位（管理员）
// POST /api/v1/internships
func (h *InternshipHandler) CreateInternship(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateInternshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	internship, err := h.internshipSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.writeInternshipError(c, err)
		return
	}
	response.Created(c, internship)
}

// UpdateInternship 更新岗位（管理员）
// PUT /api/v1/internships/:id
func (h *InternshipHandler) UpdateInternship(c *gin.Context) {
	var req dto.UpdateInternshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	internship, err := h.internshipSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.writeInternshipError(c, err)
		return
	}
	response.OK(c, internship)
}

// DeleteInternship 删除岗位（管理员）
// DELETE /api/v1/internships/:id
func (h *InternshipHandler) DeleteInternship(c *gin.Context) {
	err := h.internshipSvc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInternshipNotFound):
			response.NotFound(c, 13001, "实习岗位不存在")
		case errors.Is(err, service.ErrInternshipHasApplications):
			response.Conflict(c, 13002, "岗位已有申请记录，不能删除")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, nil)
}

func (h *InternshipHandler) writeInternshipError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInternshipNotFound):
		response.NotFound(c, 13001, "实习岗位不存在")
	case errors.Is(err, service.ErrCampusNotFound):
		response.BadRequest(c, 16002, "校区不存在")
	case errors.Is(err, service.ErrDeptNotFound):
		response.BadRequest(c, 16004, "院系不存在")
	case errors.Is(err, service.ErrTagNotFound):
		response.BadRequest(c, 16005, "标签不存在")
	case errors.Is(err, service.ErrInvalidStatus):
		response.BadRequest(c, 13003, "未知的状态值")
	default:
		response.InternalError(c)
	}
}
