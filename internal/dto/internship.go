package dto

// ── 实习岗位模块 DTO ──

// InternshipListRequest 岗位列表查询参数
// include_all 仅对管理员生效（Service 层判定）；默认只返回 active 岗位
type InternshipListRequest struct {
	PaginationRequest
	Search       string `form:"search"        binding:"omitempty,max=100"`
	CampusID     string `form:"campus_id"     binding:"omitempty,uuid"`
	DepartmentID string `form:"department_id" binding:"omitempty,uuid"`
	IncludeAll   bool   `form:"include_all"`
}

// CreateInternshipRequest 创建岗位请求（仅管理员）
type CreateInternshipRequest struct {
	Title            string   `json:"title"             binding:"required,min=3,max=200"`
	Description      string   `json:"description"       binding:"required"`
	Requirements     string   `json:"requirements"      binding:"omitempty"`
	Responsibilities string   `json:"responsibilities"  binding:"omitempty"`
	Benefits         string   `json:"benefits"          binding:"omitempty"`
	Location         string   `json:"location"          binding:"omitempty,max=200"`
	Duration         string   `json:"duration"          binding:"omitempty,max=100"`
	Salary           string   `json:"salary"            binding:"omitempty,max=50"`
	Deadline         *string  `json:"deadline"          binding:"omitempty"` // RFC3339
	ContactName      string   `json:"contact_name"      binding:"omitempty,max=100"`
	ContactEmail     string   `json:"contact_email"     binding:"omitempty,email"`
	ContactPhone     string   `json:"contact_phone"     binding:"omitempty,max=30"`
	Status           string   `json:"status"            binding:"omitempty,oneof=draft active expired"`
	CampusID         string   `json:"campus_id"         binding:"required,uuid"`
	DepartmentID     string   `json:"department_id"     binding:"required,uuid"`
	TagIDs           []string `json:"tag_ids"           binding:"omitempty,dive,uuid"`
}

// UpdateInternshipRequest 更新岗位请求（部分更新）
// TagIDs 非 nil 时整体替换标签集合（不做合并），nil 时不动
type UpdateInternshipRequest struct {
	Title            *string   `json:"title"            binding:"omitempty,min=3,max=200"`
	Description      *string   `json:"description"      binding:"omitempty"`
	Requirements     *string   `json:"requirements"     binding:"omitempty"`
	Responsibilities *string   `json:"responsibilities" binding:"omitempty"`
	Benefits         *string   `json:"benefits"         binding:"omitempty"`
	Location         *string   `json:"location"         binding:"omitempty,max=200"`
	Duration         *string   `json:"duration"         binding:"omitempty,max=100"`
	Salary           *string   `json:"salary"           binding:"omitempty,max=50"`
	Deadline         *string   `json:"deadline"         binding:"omitempty"` // RFC3339
	ContactName      *string   `json:"contact_name"     binding:"omitempty,max=100"`
	ContactEmail     *string   `json:"contact_email"    binding:"omitempty,email"`
	ContactPhone     *string   `json:"contact_phone"    binding:"omitempty,max=30"`
	Status           *string   `json:"status"           binding:"omitempty,oneof=draft active expired"`
	CampusID         *string   `json:"campus_id"        binding:"omitempty,uuid"`
	DepartmentID     *string   `json:"department_id"    binding:"omitempty,uuid"`
	TagIDs           *[]string `json:"tag_ids"          binding:"omitempty,dive,uuid"`
}

// InternshipResponse 岗位详情
type InternshipResponse struct {
	ID               string              `json:"id"`
	Title            string              `json:"title"`
	Description      string              `json:"description"`
	Requirements     string              `json:"requirements,omitempty"`
	Responsibilities string              `json:"responsibilities,omitempty"`
	Benefits         string              `json:"benefits,omitempty"`
	Location         string              `json:"location,omitempty"`
	Duration         string              `json:"duration,omitempty"`
	Salary           string              `json:"salary,omitempty"`
	Deadline         string              `json:"deadline,omitempty"`
	ContactName      string              `json:"contact_name,omitempty"`
	ContactEmail     string              `json:"contact_email,omitempty"`
	ContactPhone     string              `json:"contact_phone,omitempty"`
	Status           string              `json:"status"`
	Campus           *CampusResponse     `json:"campus,omitempty"`
	Department       *DepartmentResponse `json:"department,omitempty"`
	Tags             []TagResponse       `json:"tags,omitempty"`
	CreatedAt        string              `json:"created_at"`
}

// InternshipStatsResponse 岗位统计（仅管理员）
type InternshipStatsResponse struct {
	Total   int64 `json:"total"`
	Active  int64 `json:"active"`
	Draft   int64 `json:"draft"`
	Expired int64 `json:"expired"`
}
