package repository

import (
	"context"

	"gorm.io/gorm"

	"intern-hub/backend/internal/model"
)

// AttachmentRepository 附件登记数据访问接口
type AttachmentRepository interface {
	Create(ctx context.Context, attachment *model.Attachment) error
	GetByID(ctx context.Context, id string) (*model.Attachment, error)
	ListByApplication(ctx context.Context, applicationID string) ([]model.Attachment, error)
	Delete(ctx context.Context, id string) error
}

// attachmentRepo AttachmentRepository 的 GORM 实现
type attachmentRepo struct {
	db *gorm.DB
}

// NewAttachmentRepo 创建 AttachmentRepository 实例
func NewAttachmentRepo(db *gorm.DB) AttachmentRepository {
	return &attachmentRepo{db: db}
}

func (r *attachmentRepo) Create(ctx context.Context, attachment *model.Attachment) error {
	return r.db.WithContext(ctx).Create(attachment).Error
}

func (r *attachmentRepo) GetByID(ctx context.Context, id string) (*model.Attachment, error) {
	var attachment model.Attachment
	err := r.db.WithContext(ctx).
		Preload("Application").
		Where("attachment_id = ?", id).
		First(&attachment).Error
	if err != nil {
		return nil, err
	}
	return &attachment, nil
}

func (r *attachmentRepo) ListByApplication(ctx context.Context, applicationID string) ([]model.Attachment, error) {
	var attachments []model.Attachment
	err := r.db.WithContext(ctx).
		Where("application_id = ?", applicationID).
		Order("created_at ASC").
		Find(&attachments).Error
	return attachments, err
}

func (r *attachmentRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("attachment_id = ?", id).
		Delete(&model.Attachment{}).Error
}
