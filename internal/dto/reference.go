package dto

// ── 参考数据（校区 / 院系 / 标签）DTO ──

// CampusResponse 校区信息
type CampusResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	Address     string `json:"address,omitempty"`
	Description string `json:"description,omitempty"`
}

// CreateCampusRequest 创建校区请求（仅管理员）
type CreateCampusRequest struct {
	Name        string `json:"name"        binding:"required,min=1,max=100"`
	Code        string `json:"code"        binding:"required,min=1,max=50"`
	Address     string `json:"address"     binding:"omitempty,max=255"`
	Description string `json:"description" binding:"omitempty,max=2000"`
}

// DepartmentResponse 院系信息
type DepartmentResponse struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Campus *CampusResponse `json:"campus,omitempty"`
}

// CreateDepartmentRequest 创建院系请求（仅管理员）
type CreateDepartmentRequest struct {
	Name     string `json:"name"      binding:"required,min=1,max=150"`
	CampusID string `json:"campus_id" binding:"required,uuid"`
}

// TagResponse 标签信息
type TagResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// CreateTagRequest 创建标签请求（仅管理员）
type CreateTagRequest struct {
	Name     string `json:"name"     binding:"required,min=1,max=50"`
	Category string `json:"category" binding:"required,min=1,max=50"`
}
