package model

// Department 院系表 — 对应 departments；每个院系隶属一个校区
type Department struct {
	DepartmentID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"department_id"`
	Name         string `gorm:"type:varchar(150);not null"                     json:"name"`
	CampusID     string `gorm:"type:uuid;not null"                             json:"campus_id"`
	BaseModel

	// 关联
	Campus *Campus `gorm:"foreignKey:CampusID;references:CampusID" json:"campus,omitempty"`
}

// TableName 指定表名
func (Department) TableName() string { return "departments" }
