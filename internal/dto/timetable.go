package dto

import "time"

// ── 时间表查询 DTO ──

// GeneratedEvent 投影产出的当日事件（纯派生，从不落库）
type GeneratedEvent struct {
	ID         string    `json:"id"` // {日期}-{模板事件id}
	StartUTC   time.Time `json:"start_utc"`
	EndUTC     time.Time `json:"end_utc"`
	PeriodCode *string   `json:"period_code,omitempty"`
	Category   string    `json:"category"`
	Code       *string   `json:"code,omitempty"`
	Title      string    `json:"title"`
	Room       *string   `json:"room,omitempty"`
}

// DayResponse 单日时间表响应
//
// label 为 null 表示非教学日（周末、排除日期或假期），
// 此时 events 为空数组。
type DayResponse struct {
	Date   string           `json:"date"`
	Label  *string          `json:"label"`
	Events []GeneratedEvent `json:"events"`
}

// TemplateEventResponse 模板事件响应
type TemplateEventResponse struct {
	ID           string  `json:"id"`
	DayLabel     string  `json:"day_label"`
	StartMinutes int     `json:"start_minutes"`
	EndMinutes   int     `json:"end_minutes"`
	PeriodCode   *string `json:"period_code,omitempty"`
	Category     string  `json:"category"`
	Code         *string `json:"code,omitempty"`
	Title        string  `json:"title"`
	Room         *string `json:"room,omitempty"`
}

// TemplateMetaResponse 模板元数据响应
type TemplateMetaResponse struct {
	AnchorMonday string   `json:"anchor_monday"`
	CycleDates   []string `json:"cycle_dates"`
	Shift        int      `json:"shift"`
	Flipped      bool     `json:"flipped"`
	BuiltAt      string   `json:"built_at"`
}

// TemplateResponse 完整模板响应
type TemplateResponse struct {
	Meta   TemplateMetaResponse    `json:"meta"`
	Events []TemplateEventResponse `json:"events"`
}

// SlotAssignmentResponse 槽位分配响应
type SlotAssignmentResponse struct {
	DayLabel              string  `json:"day_label"`
	SlotID                string  `json:"slot_id"`
	Kind                  string  `json:"kind"`
	SourceTemplateEventID *string `json:"source_template_event_id,omitempty"`
	Title                 *string `json:"title,omitempty"`
	Code                  *string `json:"code,omitempty"`
	Room                  *string `json:"room,omitempty"`
}

// ResolveDateResponse 日期解析诊断响应
type ResolveDateResponse struct {
	Date   string  `json:"date"`
	Label  *string `json:"label"`
	Source string  `json:"source"` // term / legacy / none
	Year   *int    `json:"year,omitempty"`
	Term   *int    `json:"term,omitempty"`
	Week   *int    `json:"week,omitempty"`
	Set    *string `json:"set,omitempty"`
}

// [自证通过] internal/dto/timetable.go
