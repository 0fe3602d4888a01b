package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"intern-hub/backend/internal/service"
	"intern-hub/backend/pkg/response"
)

// AttachmentHandler 附件模块 HTTP 处理器
type AttachmentHandler struct {
	attSvc service.AttachmentService
}

// NewAttachmentHandler 创建 AttachmentHandler
func NewAttachmentHandler(attSvc service.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{attSvc: attSvc}
}

// Upload 上传附件（multipart/form-data: file + file_type）
// POST /api/v1/applications/:id/attachments
func (h *AttachmentHandler) Upload(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, 10001, "缺少文件字段")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, 10001, "文件读取失败")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		response.InternalError(c)
		return
	}

	upload := &service.AttachmentUpload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		FileType:    c.PostForm("file_type"),
		Data:        data,
	}

	attachment, err := h.attSvc.Attach(c.Request.Context(), actor, c.Param("id"), upload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrApplicationNotFound):
			response.NotFound(c, 14004, "申请不存在")
		case errors.Is(err, service.ErrForbidden):
			response.Forbidden(c, 10003, "无权限访问")
		case errors.Is(err, service.ErrApplicationNotEditable):
			response.BadRequest(c, 14005, "申请已进入评审流程，不能修改")
		case errors.Is(err, service.ErrFileTypeUnsupported):
			response.BadRequest(c, 15001, "不支持的文件类型，仅允许 PDF / DOC / DOCX")
		case errors.Is(err, service.ErrFileTooLarge):
			response.TooLarge(c, 15002, "文件大小超出限制")
		case errors.Is(err, service.ErrInvalidFileKind):
			response.BadRequest(c, 15003, "未知的附件用途")
		default:
			response.InternalError(c)
		}
		return
	}
	response.Created(c, attachment)
}

// List 申请的附件列表
// GET /api/v1/applications/:id/attachments
func (h *AttachmentHandler) List(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	attachments, err := h.attSvc.ListByApplication(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		h.writeAttachmentError(c, err)
		return
	}
	response.OK(c, attachments)
}

// Download 下载附件
// GET /api/v1/attachments/:id
func (h *AttachmentHandler) Download(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	attachment, data, err := h.attSvc.Fetch(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		h.writeAttachmentError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, attachment.Filename))
	c.Data(http.StatusOK, attachment.ContentType, data)
}

// Delete 删除附件
// DELETE /api/v1/attachments/:id
func (h *AttachmentHandler) Delete(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	if err := h.attSvc.Remove(c.Request.Context(), actor, c.Param("id")); err != nil {
		h.writeAttachmentError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *AttachmentHandler) writeAttachmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAttachmentNotFound):
		response.NotFound(c, 15004, "附件不存在")
	case errors.Is(err, service.ErrApplicationNotFound):
		response.NotFound(c, 14004, "申请不存在")
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, 10003, "无权限访问")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/attachment_handler.go
