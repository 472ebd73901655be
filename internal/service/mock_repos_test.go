package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"lavtracker/backend/internal/model"
	"lavtracker/backend/internal/repository"
	"lavtracker/backend/pkg/mailer"
)

// ── 测试聚合 ──

type mockStore struct {
	branch     *mockBranchRepo
	location   *mockLocationRepo
	bathroom   *mockBathroomRepo
	task       *mockTaskRepo
	cleaning   *mockCleaningRepo
	inspection *mockInspectionRepo
	user       *mockUserRepo
	setting    *mockAppSettingRepo
}

// newMockRepository 组装全部内存 mock 的 Repository 聚合
func newMockRepository() (*repository.Repository, *mockStore) {
	st := &mockStore{
		branch:     newMockBranchRepo(),
		location:   newMockLocationRepo(),
		task:       newMockTaskRepo(),
		cleaning:   newMockCleaningRepo(),
		inspection: newMockInspectionRepo(),
		user:       newMockUserRepo(),
		setting:    &mockAppSettingRepo{},
	}
	st.bathroom = newMockBathroomRepo(st)
	st.location.store = st
	st.inspection.store = st

	repo := &repository.Repository{
		Branch:     st.branch,
		Location:   st.location,
		Bathroom:   st.bathroom,
		Task:       st.task,
		Cleaning:   st.cleaning,
		Inspection: st.inspection,
		User:       st.user,
		AppSetting: st.setting,
	}
	return repo, st
}

// ── Mock BranchRepository ──

type mockBranchRepo struct {
	branches map[uint]*model.Branch
	nextID   uint
}

func newMockBranchRepo() *mockBranchRepo {
	return &mockBranchRepo{branches: make(map[uint]*model.Branch)}
}

func (m *mockBranchRepo) Create(_ context.Context, branch *model.Branch) error {
	m.nextID++
	branch.BranchID = m.nextID
	cp := *branch
	m.branches[branch.BranchID] = &cp
	return nil
}

func (m *mockBranchRepo) GetByID(_ context.Context, id uint) (*model.Branch, error) {
	if b, ok := m.branches[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBranchRepo) Update(_ context.Context, branch *model.Branch) error {
	cp := *branch
	m.branches[branch.BranchID] = &cp
	return nil
}

func (m *mockBranchRepo) Delete(_ context.Context, id uint) error {
	delete(m.branches, id)
	return nil
}

func (m *mockBranchRepo) ListActiveTree(_ context.Context) ([]model.Branch, error) {
	result := make([]model.Branch, 0, len(m.branches))
	for _, b := range m.branches {
		if b.Active {
			result = append(result, *b)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// ── Mock LocationRepository ──

type mockLocationRepo struct {
	store     *mockStore
	locations map[uint]*model.Location
	nextID    uint
}

func newMockLocationRepo() *mockLocationRepo {
	return &mockLocationRepo{locations: make(map[uint]*model.Location)}
}

func (m *mockLocationRepo) Create(_ context.Context, loc *model.Location) error {
	m.nextID++
	loc.LocationID = m.nextID
	cp := *loc
	m.locations[loc.LocationID] = &cp
	return nil
}

func (m *mockLocationRepo) GetByID(_ context.Context, id uint) (*model.Location, error) {
	if l, ok := m.locations[id]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLocationRepo) ListActiveByBranch(_ context.Context, branchID uint) ([]model.Location, error) {
	var result []model.Location
	for _, l := range m.locations {
		if l.BranchID == branchID && l.Active {
			result = append(result, *l)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockLocationRepo) Update(_ context.Context, loc *model.Location) error {
	cp := *loc
	m.locations[loc.LocationID] = &cp
	return nil
}

func (m *mockLocationRepo) Deactivate(_ context.Context, id uint) error {
	if l, ok := m.locations[id]; ok {
		l.Active = false
	}
	return nil
}

// ── Mock BathroomRepository（内存实现排序维护）──

type mockBathroomRepo struct {
	store     *mockStore
	bathrooms map[uint]*model.Bathroom
	tasks     map[uint][]uint
	nextID    uint
}

func newMockBathroomRepo(st *mockStore) *mockBathroomRepo {
	return &mockBathroomRepo{
		store:     st,
		bathrooms: make(map[uint]*model.Bathroom),
		tasks:     make(map[uint][]uint),
	}
}

func (m *mockBathroomRepo) Create(_ context.Context, b *model.Bathroom) error {
	m.nextID++
	b.BathroomID = m.nextID
	cp := *b
	m.bathrooms[b.BathroomID] = &cp
	return nil
}

func (m *mockBathroomRepo) GetByID(_ context.Context, id uint) (*model.Bathroom, error) {
	if b, ok := m.bathrooms[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBathroomRepo) GetWithBranch(ctx context.Context, id uint) (*model.Bathroom, error) {
	b, err := m.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if loc, err := m.store.location.GetByID(ctx, b.LocationID); err == nil {
		if branch, err := m.store.branch.GetByID(ctx, loc.BranchID); err == nil {
			loc.Branch = branch
		}
		b.Location = loc
	}
	return b, nil
}

func (m *mockBathroomRepo) Update(_ context.Context, b *model.Bathroom) error {
	cur, ok := m.bathrooms[b.BathroomID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	cur.Name = b.Name
	cur.Gender = b.Gender
	cur.Order = b.Order
	cur.NotificationEmail = b.NotificationEmail
	return nil
}

func (m *mockBathroomRepo) UpdateStatus(_ context.Context, id uint, status string) error {
	if b, ok := m.bathrooms[id]; ok {
		b.Status = status
	}
	return nil
}

func (m *mockBathroomRepo) Delete(_ context.Context, id uint) error {
	delete(m.bathrooms, id)
	delete(m.tasks, id)
	return nil
}

func (m *mockBathroomRepo) MaxOrder(_ context.Context, locationID uint) (int, error) {
	maxOrder := 0
	for _, b := range m.bathrooms {
		if b.LocationID == locationID && b.Active && b.Order > maxOrder {
			maxOrder = b.Order
		}
	}
	return maxOrder, nil
}

func (m *mockBathroomRepo) ShiftOrders(_ context.Context, locationID uint, from, to, delta int) error {
	for _, b := range m.bathrooms {
		if b.LocationID == locationID && b.Active && b.Order >= from && b.Order <= to {
			b.Order += delta
		}
	}
	return nil
}

func (m *mockBathroomRepo) Resequence(_ context.Context, locationID uint) error {
	for i, b := range m.activeSorted(locationID) {
		m.bathrooms[b.BathroomID].Order = i + 1
	}
	return nil
}

func (m *mockBathroomRepo) ReplaceTasks(_ context.Context, bathroomID uint, taskIDs []uint) error {
	m.tasks[bathroomID] = append([]uint(nil), taskIDs...)
	return nil
}

func (m *mockBathroomRepo) ListByLocation(_ context.Context, locationID uint) ([]model.Bathroom, error) {
	list := m.activeSorted(locationID)
	for i := range list {
		m.decorate(&list[i])
	}
	return list, nil
}

func (m *mockBathroomRepo) GetView(ctx context.Context, id uint) (*model.Bathroom, error) {
	b, err := m.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	m.decorate(b)
	return b, nil
}

func (m *mockBathroomRepo) activeSorted(locationID uint) []model.Bathroom {
	var list []model.Bathroom
	for _, b := range m.bathrooms {
		if b.LocationID == locationID && b.Active {
			list = append(list, *b)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Order != list[j].Order {
			return list[i].Order < list[j].Order
		}
		return list[i].BathroomID < list[j].BathroomID
	})
	return list
}

func (m *mockBathroomRepo) decorate(b *model.Bathroom) {
	b.BathroomTasks = nil
	for _, id := range m.tasks[b.BathroomID] {
		link := model.BathroomTask{BathroomID: b.BathroomID, TaskID: id}
		if t, ok := m.store.task.tasks[id]; ok {
			cp := *t
			link.Task = &cp
		}
		b.BathroomTasks = append(b.BathroomTasks, link)
	}
	b.Cleanings, _ = m.store.cleaning.ListRecentByBathroom(context.Background(), b.BathroomID, 10)
}

// ── Mock TaskRepository ──

type mockTaskRepo struct {
	tasks  map[uint]*model.Task
	nextID uint
}

func newMockTaskRepo() *mockTaskRepo {
	return &mockTaskRepo{tasks: make(map[uint]*model.Task)}
}

func (m *mockTaskRepo) Create(_ context.Context, task *model.Task) error {
	m.nextID++
	task.TaskID = m.nextID
	cp := *task
	m.tasks[task.TaskID] = &cp
	return nil
}

func (m *mockTaskRepo) GetByID(_ context.Context, id uint) (*model.Task, error) {
	if t, ok := m.tasks[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTaskRepo) List(_ context.Context) ([]model.Task, error) {
	result := make([]model.Task, 0, len(m.tasks))
	for _, t := range m.tasks {
		result = append(result, *t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockTaskRepo) Update(_ context.Context, task *model.Task) error {
	cp := *task
	m.tasks[task.TaskID] = &cp
	return nil
}

func (m *mockTaskRepo) Delete(_ context.Context, id uint) error {
	delete(m.tasks, id)
	return nil
}

func (m *mockTaskRepo) CountByIDs(_ context.Context, ids []uint) (int64, error) {
	var count int64
	for _, id := range ids {
		if _, ok := m.tasks[id]; ok {
			count++
		}
	}
	return count, nil
}

// ── Mock CleaningRepository ──

type mockCleaningRepo struct {
	cleanings []model.Cleaning
	nextID    uint
	failNext  error
}

func newMockCleaningRepo() *mockCleaningRepo {
	return &mockCleaningRepo{}
}

func (m *mockCleaningRepo) Create(_ context.Context, c *model.Cleaning) error {
	if m.failNext != nil {
		err := m.failNext
		m.failNext = nil
		return err
	}
	m.nextID++
	c.CleaningID = m.nextID
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	for i := range c.Tasks {
		c.Tasks[i].CleaningID = c.CleaningID
	}
	m.cleanings = append(m.cleanings, *c)
	return nil
}

func (m *mockCleaningRepo) ListRecentByBathroom(_ context.Context, bathroomID uint, limit int) ([]model.Cleaning, error) {
	var result []model.Cleaning
	for i := len(m.cleanings) - 1; i >= 0 && len(result) < limit; i-- {
		if m.cleanings[i].BathroomID == bathroomID {
			result = append(result, m.cleanings[i])
		}
	}
	return result, nil
}

func (m *mockCleaningRepo) ListForExport(_ context.Context, _ uint, _, _ *time.Time) ([]model.Cleaning, error) {
	return m.cleanings, nil
}

// ── Mock InspectionRepository ──

type mockInspectionRepo struct {
	store       *mockStore
	inspections []model.Inspection
	touched     map[uint]time.Time
	nextID      uint
	failNext    error
}

func newMockInspectionRepo() *mockInspectionRepo {
	return &mockInspectionRepo{touched: make(map[uint]time.Time)}
}

func (m *mockInspectionRepo) Create(_ context.Context, insp *model.Inspection) error {
	if m.failNext != nil {
		err := m.failNext
		m.failNext = nil
		return err
	}
	m.nextID++
	insp.InspectionID = m.nextID
	for i := range insp.Items {
		insp.Items[i].InspectionID = insp.InspectionID
	}
	m.inspections = append(m.inspections, *insp)
	return nil
}

func (m *mockInspectionRepo) ListStale(ctx context.Context, before time.Time) ([]model.Inspection, error) {
	var result []model.Inspection
	for _, insp := range m.inspections {
		if insp.InspectionDate.After(before) {
			continue
		}
		if b, err := m.store.bathroom.GetWithBranch(ctx, insp.BathroomID); err == nil {
			insp.Bathroom = b
		}
		result = append(result, insp)
	}
	return result, nil
}

func (m *mockInspectionRepo) Touch(_ context.Context, id uint, at time.Time) error {
	m.touched[id] = at
	return nil
}

func (m *mockInspectionRepo) ListForExport(_ context.Context, _ uint) ([]model.Inspection, error) {
	return m.inspections, nil
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users  map[uint]*model.User
	nextID uint
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uint]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	m.nextID++
	user.UserID = m.nextID
	cp := *user
	m.users[user.UserID] = &cp
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uint) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByCode(_ context.Context, code string) (*model.User, error) {
	for _, u := range m.users {
		if u.Code != nil && *u.Code == code {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	cp := *user
	m.users[user.UserID] = &cp
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id uint) error {
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) List(_ context.Context) ([]model.User, error) {
	result := make([]model.User, 0, len(m.users))
	for _, u := range m.users {
		result = append(result, *u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Username < result[j].Username })
	return result, nil
}

func (m *mockUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.users)), nil
}

// ── Mock AppSettingRepository ──

type mockAppSettingRepo struct {
	setting *model.AppSetting
	writes  int
}

func (m *mockAppSettingRepo) Get(_ context.Context) (*model.AppSetting, error) {
	if m.setting == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *m.setting
	return &cp, nil
}

func (m *mockAppSettingRepo) Upsert(_ context.Context, setting *model.AppSetting) error {
	cp := *setting
	cp.Singleton = true
	m.setting = &cp
	m.writes++
	return nil
}

// ── Mock 邮件发送器 ──

type mockSender struct {
	mu       sync.Mutex
	messages []*mailer.Message
	failTo   map[string]bool
}

func newMockSender() *mockSender {
	return &mockSender{failTo: make(map[string]bool)}
}

func (m *mockSender) Send(_ context.Context, msg *mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, to := range msg.To {
		if m.failTo[to] {
			return errors.New("smtp unavailable")
		}
	}
	m.messages = append(m.messages, msg)
	return nil
}

func (m *mockSender) sent() []*mailer.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*mailer.Message(nil), m.messages...)
}

// ── Mock 照片存储 ──

type mockPhotoStore struct {
	saved   []string
	removed []string
	err     error
}

func (m *mockPhotoStore) Save(_ context.Context, image string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	path := "/inspections/photo-" + string(rune('a'+len(m.saved))) + ".png"
	m.saved = append(m.saved, path)
	return path, nil
}

func (m *mockPhotoStore) Remove(_ context.Context, publicPath string) error {
	m.removed = append(m.removed, publicPath)
	return nil
}

// ── Mock 提醒锁 ──

type mockLocker struct {
	held     bool
	acquired int
	released int
	err      error
}

func (m *mockLocker) AcquireLock(_ context.Context, _ string, _ time.Duration) (string, bool, error) {
	if m.err != nil {
		return "", false, m.err
	}
	if m.held {
		return "", false, nil
	}
	m.held = true
	m.acquired++
	return "token", true, nil
}

func (m *mockLocker) ReleaseLock(_ context.Context, _, _ string) error {
	m.held = false
	m.released++
	return nil
}
