package model

// Tag 标签表 — 对应 tags；按 category 分组，挂接到实习岗位（多对多）
type Tag struct {
	TagID    string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"tag_id"`
	Name     string `gorm:"type:varchar(50);not null;uniqueIndex"          json:"name"`
	Category string `gorm:"type:varchar(50);not null"                      json:"category"`
	BaseModel
}

// TableName 指定表名
func (Tag) TableName() string { return "tags" }
