package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"intern-hub/backend/internal/dto"
	"intern-hub/backend/internal/service"
	"intern-hub/backend/pkg/response"
)

// ReferenceHandler 参考数据（校区 / 院系 / 标签）HTTP 处理器
type ReferenceHandler struct {
	refSvc service.ReferenceService
}

// NewReferenceHandler 创建 ReferenceHandler
func NewReferenceHandler(refSvc service.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{refSvc: refSvc}
}

// ListCampuses 校区列表
// GET /api/v1/campuses
func (h *ReferenceHandler) ListCampuses(c *gin.Context) {
	campuses, err := h.refSvc.ListCampuses(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, campuses)
}

// CreateCampus 创建校区（管理员）
// POST /api/v1/campuses
func (h *ReferenceHandler) CreateCampus(c *gin.Context) {
	var req dto.CreateCampusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	campus, err := h.refSvc.CreateCampus(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrCampusExists) {
			response.Conflict(c, 16001, "校区代码已存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.Created(c, campus)
}

// ListDepartments 院系列表，可按校区过滤
// GET /api/v1/departments?campus_id=
func (h *ReferenceHandler) ListDepartments(c *gin.Context) {
	depts, err := h.refSvc.ListDepartments(c.Request.Context(), c.Query("campus_id"))
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, depts)
}

// CreateDepartment 创建院系（管理员）
// POST /api/v1/departments
func (h *ReferenceHandler) CreateDepartment(c *gin.Context) {
	var req dto.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	dept, err := h.refSvc.CreateDepartment(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrCampusNotFound) {
			response.BadRequest(c, 16002, "校区不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.Created(c, dept)
}

// ListTags 标签列表，可按类别过滤
// GET /api/v1/tags?category=
func (h *ReferenceHandler) ListTags(c *gin.Context) {
	tags, err := h.refSvc.ListTags(c.Request.Context(), c.Query("category"))
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, tags)
}

// CreateTag 创建标签（管理员）
// POST /api/v1/tags
func (h *ReferenceHandler) CreateTag(c *gin.Context) {
	var req dto.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	tag, err := h.refSvc.CreateTag(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrTagExists) {
			response.Conflict(c, 16003, "标签名称已存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.Created(c, tag)
}
