package dto

// ── 附件模块 DTO ──

// AttachmentResponse 附件元数据（不暴露 blob key）
type AttachmentResponse struct {
	ID          string `json:"id"`
	FileName    string `json:"file_name"`
	FileType    string `json:"file_type"`
	FileSize    int64  `json:"file_size"`
	ContentType string `json:"content_type"`
	CreatedAt   string `json:"created_at"`
}
