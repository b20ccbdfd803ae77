package service

import (
	"testing"
	"time"

	"github.com/Spencerzone/cal-sub000/internal/model"
)

// testMeta 2025-02-03 起 10 个教学日的模板元数据
func testMeta(shift int, flipped bool) *model.TemplateMeta {
	dates := make(model.DateArray, 0, 10)
	for day := 3; day <= 14; day++ {
		d := time.Date(2025, 2, day, 0, 0, 0, 0, time.UTC)
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		dates = append(dates, d)
	}
	return &model.TemplateMeta{
		UserID:       "user-1",
		AnchorMonday: dates[0],
		CycleDates:   dates,
		Shift:        shift,
		Flipped:      flipped,
	}
}

func TestPreviewMapping_IdentityReproducesBuild(t *testing.T) {
	entries := PreviewMapping(testMeta(0, false), 0, false)
	if len(entries) != 10 {
		t.Fatalf("期望 10 条预览，实际=%d", len(entries))
	}
	for i, e := range entries {
		want := model.CanonicalDayLabels[i]
		if e.Label != want {
			t.Errorf("位置 %d 期望 %s，实际=%s", i, want, e.Label)
		}
	}
	if got := entries[5].Date.Format(dateKeyLayout); got != "2025-02-10" {
		t.Errorf("第 6 条预览日期应为 2025-02-10，实际=%s", got)
	}
}

func TestPreviewMapping_ShiftAndFlip(t *testing.T) {
	meta := testMeta(0, false)

	shifted := PreviewMapping(meta, 1, false)
	if shifted[0].Label != model.DayTueA {
		t.Errorf("shift=1 时位置 0 期望 TueA，实际=%s", shifted[0].Label)
	}
	if shifted[9].Label != model.DayMonA {
		t.Errorf("shift=1 时位置 9 应回绕到 MonA，实际=%s", shifted[9].Label)
	}

	flipped := PreviewMapping(meta, 0, true)
	if flipped[0].Label != model.DayMonB {
		t.Errorf("flip 时位置 0 期望 MonB，实际=%s", flipped[0].Label)
	}

	both := PreviewMapping(meta, 5, true)
	// 位置 0 → 规范位置 5 (MonB) → 翻转 → MonA
	if both[0].Label != model.DayMonA {
		t.Errorf("shift=5+flip 时位置 0 期望 MonA，实际=%s", both[0].Label)
	}
}

func TestRelabelTemplate_OverwriteNotAccumulate(t *testing.T) {
	meta := testMeta(0, false)
	events := []model.CycleTemplateEvent{
		{TemplateEventID: "MonA-abc", UserID: "user-1", DayLabel: model.DayMonA, Title: "Maths"},
		{TemplateEventID: "TueA-def", UserID: "user-1", DayLabel: model.DayTueA, Title: "Science"},
	}

	relabeled, changed := RelabelTemplate(meta, events, 5, false)
	if changed != 2 {
		t.Errorf("期望 2 个事件被重标注，实际=%d", changed)
	}
	if relabeled[0].DayLabel != model.DayMonB {
		t.Errorf("MonA 在 shift=5 下应变为 MonB，实际=%s", relabeled[0].DayLabel)
	}
	if relabeled[0].TemplateEventID != "MonB-abc" {
		t.Errorf("id 前缀应重写为新标签，实际=%s", relabeled[0].TemplateEventID)
	}

	// 元数据更新后重复应用同一目标：无进一步变更（幂等）
	meta.Shift = 5
	again, changedAgain := RelabelTemplate(meta, relabeled, 5, false)
	if changedAgain != 0 {
		t.Errorf("重复应用同一纠正应无变更，实际=%d", changedAgain)
	}
	if again[0].DayLabel != model.DayMonB {
		t.Errorf("幂等应用后标签应保持 MonB，实际=%s", again[0].DayLabel)
	}

	// 在已应用 shift=5 的基础上改为 shift=0：回到原始标注（覆盖而非累加）
	back, _ := RelabelTemplate(meta, again, 0, false)
	if back[0].DayLabel != model.DayMonA {
		t.Errorf("shift 回零应恢复 MonA，实际=%s", back[0].DayLabel)
	}
	if back[0].TemplateEventID != "MonA-abc" {
		t.Errorf("id 应恢复原始前缀，实际=%s", back[0].TemplateEventID)
	}
}

func TestRelabelTemplate_FlipOnly(t *testing.T) {
	meta := testMeta(0, false)
	events := []model.CycleTemplateEvent{
		{TemplateEventID: "FriB-xyz", UserID: "user-1", DayLabel: model.DayFriB, Title: "Duty"},
	}
	relabeled, changed := RelabelTemplate(meta, events, 0, true)
	if changed != 1 {
		t.Errorf("期望 1 个事件被重标注，实际=%d", changed)
	}
	if relabeled[0].DayLabel != model.DayFriA {
		t.Errorf("翻转后 FriB 应变为 FriA，实际=%s", relabeled[0].DayLabel)
	}
}

func TestNormalizeShift(t *testing.T) {
	cases := []struct{ in, want int }{
		{0, 0}, {3, 3}, {10, 0}, {12, 2}, {-1, 9}, {-10, 0}, {-13, 7},
	}
	for _, c := range cases {
		if got := NormalizeShift(c.in); got != c.want {
			t.Errorf("NormalizeShift(%d) 期望 %d，实际=%d", c.in, c.want, got)
		}
	}
}

// [自证通过] internal/service/mapping_test.go
