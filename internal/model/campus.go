package model

// Campus 校区表 — 对应 campuses
type Campus struct {
	CampusID    string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"campus_id"`
	Name        string `gorm:"type:varchar(100);not null"                     json:"name"`
	Code        string `gorm:"type:varchar(50);not null;uniqueIndex"          json:"code"`
	Address     string `gorm:"type:varchar(255)"                              json:"address,omitempty"`
	Description string `gorm:"type:text"                                      json:"description,omitempty"`
	BaseModel
}

// TableName 指定表名
func (Campus) TableName() string { return "campuses" }
