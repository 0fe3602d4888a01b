package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"intern-hub/backend/internal/model"
	"intern-hub/backend/internal/service"
	"intern-hub/backend/pkg/response"
)

// AdminHandler 管理后台 HTTP 处理器
type AdminHandler struct {
	adminSvc  service.AdminService
	exportSvc service.ExportService
}

// NewAdminHandler 创建 AdminHandler
func NewAdminHandler(adminSvc service.AdminService, exportSvc service.ExportService) *AdminHandler {
	return &AdminHandler{adminSvc: adminSvc, exportSvc: exportSvc}
}

// DashboardStats 仪表盘统计
// GET /api/v1/admin/stats
func (h *AdminHandler) DashboardStats(c *gin.Context) {
	stats, err := h.adminSvc.DashboardStats(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, stats)
}

// ApplicationStats 申请状态分布统计
// GET /api/v1/admin/applications/stats
func (h *AdminHandler) ApplicationStats(c *gin.Context) {
	stats, err := h.adminSvc.ApplicationStats(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, stats)
}

// ExportApplications 导出申请记录为 Excel
// GET /api/v1/admin/applications/export?internship_id=&status=
func (h *AdminHandler) ExportApplications(c *gin.Context) {
	status := model.ApplicationStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		response.BadRequest(c, 14007, "未知的状态值")
		return
	}

	buf, filename, err := h.exportSvc.ExportApplications(c.Request.Context(), c.Query("internship_id"), status)
	if err != nil {
		if errors.Is(err, service.ErrExportNoApplications) {
			response.NotFound(c, 16006, "没有符合条件的申请记录")
			return
		}
		response.InternalError(c)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
