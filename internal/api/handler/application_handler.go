package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"intern-hub/backend/internal/dto"
	"intern-hub/backend/internal/service"
	"intern-hub/backend/pkg/response"
)

// ApplicationHandler 申请模块 HTTP 处理器
type ApplicationHandler struct {
	appSvc      service.ApplicationService
	calendarSvc service.CalendarService
}

// NewApplicationHandler 创建 ApplicationHandler
func NewApplicationHandler(appSvc service.ApplicationService, calendarSvc service.CalendarService) *ApplicationHandler {
	return &ApplicationHandler{appSvc: appSvc, calendarSvc: calendarSvc}
}

// Apply 提交申请（学生）
// POST /api/v1/applications
func (h *ApplicationHandler) Apply(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	app, err := h.appSvc.Apply(c.Request.Context(), actor, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInternshipNotFound):
			response.NotFound(c, 13001, "实习岗位不存在")
		case errors.Is(err, service.ErrInternshipInactive):
			response.BadRequest(c, 14001, "实习岗位未开放申请")
		case errors.Is(err, service.ErrAlreadyApplied):
			response.Conflict(c, 14002, "已申请过该岗位")
		default:
			response.InternalError(c)
		}
		return
	}
	response.Created(c, app)
}

// GetApplication 申请详情
// GET /api/v1/applications/:id
func (h *ApplicationHandler) GetApplication(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	app, err := h.appSvc.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		h.writeApplicationError(c, err)
		return
	}
	response.OK(c, app)
}

// UpdateApplication 学生修改申请内容
// PUT /api/v1/applications/:id
func (h *ApplicationHandler) UpdateApplication(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.UpdateApplicationContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	app, err := h.appSvc.UpdateContent(c.Request.Context(), actor, c.Param("id"), &req)
	if err != nil {
		h.writeApplicationError(c, err)
		return
	}
	response.OK(c, app)
}

// ReviewApplication 管理员评审
// PUT /api/v1/applications/:id/status
func (h *ApplicationHandler) ReviewApplication(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.ReviewApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	app, err := h.appSvc.ReviewStatus(c.Request.Context(), actor, c.Param("id"), &req)
	if err != nil {
		h.writeApplicationError(c, err)
		return
	}
	response.OK(c, app)
}

// WithdrawApplication 学生撤回申请
// DELETE /api/v1/applications/:id
func (h *ApplicationHandler) WithdrawApplication(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	if err := h.appSvc.Withdraw(c.Request.Context(), actor, c.Param("id")); err != nil {
		h.writeApplicationError(c, err)
		return
	}
	response.OK(c, nil)
}

// ListMyApplications 学生查询自己的申请
// GET /api/v1/applications/me
func (h *ApplicationHandler) ListMyApplications(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.MyApplicationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	apps, total, err := h.appSvc.ListMine(c.Request.Context(), userID, &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OKPage(c, apps, total, req.GetPage(), req.GetPageSize())
}

// ListApplications 管理员跨学生查询申请
// GET /api/v1/applications
func (h *ApplicationHandler) ListApplications(c *gin.Context) {
	var req dto.ApplicationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	apps, total, err := h.appSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OKPage(c, apps, total, req.GetPage(), req.GetPageSize())
}

// MyApplicationStats 学生本人申请状态统计
// GET /api/v1/applications/me/stats
func (h *ApplicationHandler) MyApplicationStats(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	stats, err := h.appSvc.MyStats(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, stats)
}

// InterviewCalendar 下载面试日历 (.ics)
// GET /api/v1/applications/:id/interview.ics
func (h *ApplicationHandler) InterviewCalendar(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	buf, filename, err := h.calendarSvc.InterviewICS(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoInterviewDate):
			response.NotFound(c, 14003, "该申请未安排面试")
		default:
			h.writeApplicationError(c, err)
		}
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", buf.Bytes())
}

func (h *ApplicationHandler) writeApplicationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrApplicationNotFound):
		response.NotFound(c, 14004, "申请不存在")
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, 10003, "无权限访问")
	case errors.Is(err, service.ErrApplicationNotEditable):
		response.BadRequest(c, 14005, "申请已进入评审流程，不能修改")
	case errors.Is(err, service.ErrApplicationFinal):
		response.BadRequest(c, 14006, "申请已是终态，不能撤回")
	case errors.Is(err, service.ErrInvalidStatus):
		response.BadRequest(c, 14007, "未知的状态值")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/application_handler.go
