package dto

// ── 认证模块 DTO ──

// RegisterRequest 学生注册请求
// 邮箱必须匹配校内域名后缀（Service 层校验）；角色固定为 student
type RegisterRequest struct {
	Email     string   `json:"email"      binding:"required,email"`
	Password  string   `json:"password"   binding:"required,min=8,max=64"`
	FirstName string   `json:"first_name" binding:"required,min=1,max=100"`
	LastName  string   `json:"last_name"  binding:"required,min=1,max=100"`
	StudentID string   `json:"student_id" binding:"required,min=4,max=20"`
	Course    string   `json:"course"     binding:"omitempty,max=100"`
	GPA       *float64 `json:"gpa"        binding:"omitempty,min=0,max=5"`
	Phone     string   `json:"phone"      binding:"omitempty,max=30"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest 刷新 Token 请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// TokenResponse Token 对响应
type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"` // Access Token 有效期（秒）
	User         UserResponse `json:"user"`
}
