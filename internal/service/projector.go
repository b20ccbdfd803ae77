package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/Spencerzone/cal-sub000/internal/dto"
	"github.com/Spencerzone/cal-sub000/internal/model"
)

// ── 日投影器 ──────────────────────────────────────────────────
//
// 职责：把某日标签下的模板事件落到一个具体日期上，产出带绝对
// 时刻的临时事件。纯派生、按需重算、从不落库。
// ─────────────────────────────────────────────────────────────

// ProjectDay 将模板事件投影到具体日期
//
// 分钟数按该日期在用户时区的本地午夜解释，输出 UTC 时刻；
// id 为 "{日期}-{模板事件id}"，同一逻辑槽位在不同真实日期上
// 可区分且可回溯。
func ProjectDay(dateKey string, label model.DayLabel, events []model.CycleTemplateEvent, loc *time.Location) ([]dto.GeneratedEvent, error) {
	day, err := time.ParseInLocation(dateKeyLayout, dateKey, loc)
	if err != nil {
		return nil, fmt.Errorf("无效的日期: %q", dateKey)
	}

	var dayEvents []model.CycleTemplateEvent
	for _, ev := range events {
		if ev.DayLabel == label {
			dayEvents = append(dayEvents, ev)
		}
	}
	sort.Slice(dayEvents, func(i, j int) bool {
		if dayEvents[i].StartMinutes != dayEvents[j].StartMinutes {
			return dayEvents[i].StartMinutes < dayEvents[j].StartMinutes
		}
		return deref(dayEvents[i].PeriodCode) < deref(dayEvents[j].PeriodCode)
	})

	generated := make([]dto.GeneratedEvent, 0, len(dayEvents))
	for _, ev := range dayEvents {
		generated = append(generated, dto.GeneratedEvent{
			ID:         fmt.Sprintf("%s-%s", dateKey, ev.TemplateEventID),
			StartUTC:   minutesToUTC(day, ev.StartMinutes, loc),
			EndUTC:     minutesToUTC(day, ev.EndMinutes, loc),
			PeriodCode: ev.PeriodCode,
			Category:   string(ev.Category),
			Code:       ev.Code,
			Title:      ev.Title,
			Room:       ev.Room,
		})
	}
	return generated, nil
}

// minutesToUTC 本地日期 + 午夜起分钟数 → UTC 时刻
func minutesToUTC(day time.Time, minutes int, loc *time.Location) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), minutes/60, minutes%60, 0, 0, loc).UTC()
}

// [自证通过] internal/service/projector.go
