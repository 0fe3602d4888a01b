package model

// AttachmentType 附件用途，封闭枚举
type AttachmentType string

const (
	AttachmentResume      AttachmentType = "resume"
	AttachmentPortfolio   AttachmentType = "portfolio"
	AttachmentCoverLetter AttachmentType = "cover_letter"
)

// Valid 判断是否为已知附件用途
func (t AttachmentType) Valid() bool {
	switch t {
	case AttachmentResume, AttachmentPortfolio, AttachmentCoverLetter:
		return true
	}
	return false
}

// Attachment 附件表 — 对应 attachments
// blob_key 指向 blob 存储中的实际内容；登记行与 blob 分属两个存储
type Attachment struct {
	AttachmentID  string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"attachment_id"`
	ApplicationID string         `gorm:"type:uuid;not null"                             json:"application_id"`
	UploadedByID  string         `gorm:"type:uuid;not null"                             json:"uploaded_by_id"`
	Filename      string         `gorm:"type:varchar(255);not null"                     json:"filename"`
	BlobKey       string         `gorm:"type:varchar(255);not null;uniqueIndex"         json:"-"`
	FileType      AttachmentType `gorm:"type:varchar(20);not null"                      json:"file_type"`
	ContentType   string         `gorm:"type:varchar(100);not null"                     json:"content_type"`
	FileSize      int64          `gorm:"not null"                                       json:"file_size"`
	BaseModel

	// 关联
	Application *Application `gorm:"foreignKey:ApplicationID;references:ApplicationID" json:"application,omitempty"`
}

// TableName 指定表名
func (Attachment) TableName() string { return "attachments" }
