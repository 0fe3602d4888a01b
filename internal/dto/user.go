package dto

// ── 用户模块 DTO ──

// UserResponse 用户信息响应（脱敏）
type UserResponse struct {
	ID        string   `json:"id"`
	Email     string   `json:"email"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	StudentID string   `json:"student_id,omitempty"`
	Course    string   `json:"course,omitempty"`
	GPA       *float64 `json:"gpa,omitempty"`
	Phone     string   `json:"phone,omitempty"`
	Role      string   `json:"role"`
	IsActive  bool     `json:"is_active"`
	CreatedAt string   `json:"created_at"`
}

// UpdateProfileRequest 本人资料更新请求（部分更新：缺省字段不变）
type UpdateProfileRequest struct {
	FirstName *string  `json:"first_name" binding:"omitempty,min=1,max=100"`
	LastName  *string  `json:"last_name"  binding:"omitempty,min=1,max=100"`
	Course    *string  `json:"course"     binding:"omitempty,max=100"`
	GPA       *float64 `json:"gpa"        binding:"omitempty,min=0,max=5"`
	Phone     *string  `json:"phone"      binding:"omitempty,max=30"`
}

// UserListRequest 用户列表查询参数（仅管理员）
type UserListRequest struct {
	PaginationRequest
	Role    string `form:"role"    binding:"omitempty,oneof=student admin"`
	Keyword string `form:"keyword" binding:"omitempty,max=100"`
}

// ToggleActiveResponse 激活状态切换响应
type ToggleActiveResponse struct {
	ID       string `json:"id"`
	IsActive bool   `json:"is_active"`
}
