// Package memstore хранилище в памяти для тестов use case и сервисов.
// Реализует интерфейсы репозиториев и менеджер транзакций: транзакции выполняются
// строго по одной, при ошибке состояние откатывается к снимку.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/salon-booking-service/internal/domain"
	appointmentRepo "github.com/m04kA/salon-booking-service/internal/infra/storage/appointment"
	blockRepo "github.com/m04kA/salon-booking-service/internal/infra/storage/block"
	catalogRepo "github.com/m04kA/salon-booking-service/internal/infra/storage/catalog"
	settingsRepo "github.com/m04kA/salon-booking-service/internal/infra/storage/settings"
	staffRepo "github.com/m04kA/salon-booking-service/internal/infra/storage/staff"
	workingHoursRepo "github.com/m04kA/salon-booking-service/internal/infra/storage/workinghours"
)

type txKey struct{}

// Store состояние хранилища
type Store struct {
	txMu sync.Mutex
	mu   sync.Mutex

	options      map[string]domain.BookableOption
	config       *domain.SchedulingConfig
	staff        []domain.Staff
	hours        []domain.WorkingHours
	blocks       []domain.Block
	appointments []domain.Appointment
	clients      []domain.Client

	// Reads количество обращений к репозиториям (для проверки "без обращения к данным")
	Reads int
	// Err если задана, возвращается всеми репозиториями
	Err error
}

// New создает пустое хранилище
func New() *Store {
	return &Store{options: make(map[string]domain.BookableOption)}
}

// AddOption добавляет опцию вместе с услугой
func (s *Store) AddOption(service domain.Service, option domain.ServiceOption) {
	s.mu.Lock()
	defer s.mu.Unlock()
	option.ServiceID = service.ID
	s.options[option.ID] = domain.BookableOption{Option: option, Service: service}
}

// SetConfig задает настройки расписания
func (s *Store) SetConfig(c domain.SchedulingConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = &c
}

// AddStaff добавляет мастера
func (s *Store) AddStaff(st domain.Staff) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.staff = append(s.staff, st)
}

// AddWorkingHours добавляет график
func (s *Store) AddWorkingHours(h domain.WorkingHours) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	s.hours = append(s.hours, h)
}

// AddBlock добавляет блокировку
func (s *Store) AddBlock(b domain.Block) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	s.blocks = append(s.blocks, b)
}

// AddAppointment добавляет запись напрямую, минуя проверки
func (s *Store) AddAppointment(a domain.Appointment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	s.appointments = append(s.appointments, a)
}

// AllAppointments снимок всех записей
func (s *Store) AllAppointments() []domain.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Appointment(nil), s.appointments...)
}

// AllClients снимок всех клиентов
func (s *Store) AllClients() []domain.Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Client(nil), s.clients...)
}

// Config текущие настройки
func (s *Store) Config() *domain.SchedulingConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.config == nil {
		return nil
	}
	c := *s.config
	return &c
}

func (s *Store) read() error {
	s.Reads++
	return s.Err
}

type snapshot struct {
	config       *domain.SchedulingConfig
	hours        []domain.WorkingHours
	blocks       []domain.Block
	appointments []domain.Appointment
	clients      []domain.Client
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := snapshot{
		hours:        append([]domain.WorkingHours(nil), s.hours...),
		blocks:       append([]domain.Block(nil), s.blocks...),
		appointments: append([]domain.Appointment(nil), s.appointments...),
		clients:      append([]domain.Client(nil), s.clients...),
	}
	if s.config != nil {
		c := *s.config
		snap.config = &c
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = snap.config
	s.hours = snap.hours
	s.blocks = snap.blocks
	s.appointments = snap.appointments
	s.clients = snap.clients
}

// TxManager менеджер транзакций поверх Store
type TxManager struct {
	s *Store
	// Calls количество открытых транзакций верхнего уровня
	Calls int
}

// TxManager возвращает менеджер транзакций
func (s *Store) TxManager() *TxManager {
	return &TxManager{s: s}
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	m.s.txMu.Lock()
	defer m.s.txMu.Unlock()
	m.Calls++

	snap := m.s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		m.s.restore(snap)
		return err
	}
	return nil
}

func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.Do(ctx, fn)
}

func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.Do(ctx, fn)
}

// Catalog репозиторий каталога
type Catalog struct{ s *Store }

func (s *Store) Catalog() *Catalog { return &Catalog{s: s} }

func (c *Catalog) GetOption(_ context.Context, optionID string) (*domain.BookableOption, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	if err := c.s.read(); err != nil {
		return nil, err
	}
	o, ok := c.s.options[optionID]
	if !ok {
		return nil, catalogRepo.ErrOptionNotFound
	}
	return &o, nil
}

func (c *Catalog) GetDefaultOption(_ context.Context, serviceID string) (*domain.BookableOption, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	if err := c.s.read(); err != nil {
		return nil, err
	}
	var best *domain.BookableOption
	for _, o := range c.s.options {
		if o.Service.ID != serviceID || !o.Option.Active {
			continue
		}
		o := o
		if best == nil || domain.OptionTypeOrder(o.Option.Type) < domain.OptionTypeOrder(best.Option.Type) {
			best = &o
		}
	}
	if best == nil {
		return nil, catalogRepo.ErrOptionNotFound
	}
	return best, nil
}

func (c *Catalog) ListActiveServices(_ context.Context) ([]*domain.Service, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	if err := c.s.read(); err != nil {
		return nil, err
	}
	index := make(map[string]*domain.Service)
	result := make([]*domain.Service, 0)
	for _, o := range c.s.options {
		if !o.Option.Active || !o.Service.Active {
			continue
		}
		svc, ok := index[o.Service.ID]
		if !ok {
			s := o.Service
			s.Options = nil
			svc = &s
			index[s.ID] = svc
			result = append(result, svc)
		}
		svc.Options = append(svc.Options, o.Option)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	for _, svc := range result {
		sort.Slice(svc.Options, func(i, j int) bool {
			return domain.OptionTypeOrder(svc.Options[i].Type) < domain.OptionTypeOrder(svc.Options[j].Type)
		})
	}
	return result, nil
}

// Settings репозиторий настроек
type Settings struct{ s *Store }

func (s *Store) Settings() *Settings { return &Settings{s: s} }

func (r *Settings) Get(_ context.Context) (*domain.SchedulingConfig, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.read(); err != nil {
		return nil, err
	}
	if r.s.config == nil {
		return nil, settingsRepo.ErrConfigNotFound
	}
	c := *r.s.config
	return &c, nil
}

func (r *Settings) Create(_ context.Context, c *domain.SchedulingConfig) (*domain.SchedulingConfig, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	if r.s.config != nil {
		return nil, settingsRepo.ErrConfigExists
	}
	created := *c
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	r.s.config = &created
	return &created, nil
}

func (r *Settings) Update(_ context.Context, c *domain.SchedulingConfig) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if r.s.config == nil {
		return settingsRepo.ErrConfigNotFound
	}
	updated := *c
	r.s.config = &updated
	return nil
}

// Staff репозиторий мастеров
type Staff struct{ s *Store }

func (s *Store) Staff() *Staff { return &Staff{s: s} }

func (r *Staff) GetByID(_ context.Context, id string) (*domain.Staff, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.read(); err != nil {
		return nil, err
	}
	for _, st := range r.s.staff {
		if st.ID == id {
			st := st
			return &st, nil
		}
	}
	return nil, staffRepo.ErrStaffNotFound
}

func (r *Staff) GetFirstActive(_ context.Context) (*domain.Staff, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.read(); err != nil {
		return nil, err
	}
	var first *domain.Staff
	for _, st := range r.s.staff {
		if !st.Active {
			continue
		}
		st := st
		if first == nil || st.CreatedAt.Before(first.CreatedAt) ||
			(st.CreatedAt.Equal(first.CreatedAt) && st.ID < first.ID) {
			first = &st
		}
	}
	if first == nil {
		return nil, staffRepo.ErrStaffNotFound
	}
	return first, nil
}

func (r *Staff) ListActive(_ context.Context) ([]*domain.Staff, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.read(); err != nil {
		return nil, err
	}
	result := make([]*domain.Staff, 0)
	for _, st := range r.s.staff {
		if st.Active {
			st := st
			result = append(result, &st)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// WorkingHours репозиторий графиков
type WorkingHours struct{ s *Store }

func (s *Store) WorkingHours() *WorkingHours { return &WorkingHours{s: s} }

func (r *WorkingHours) GetByStaffAndWeekday(_ context.Context, staffID string, weekday int) (*domain.WorkingHours, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.read(); err != nil {
		return nil, err
	}
	for _, h := range r.s.hours {
		if h.StaffID == staffID && h.Weekday == weekday && h.Active {
			h := h
			return &h, nil
		}
	}
	return nil, workingHoursRepo.ErrWorkingHoursNotFound
}

func (r *WorkingHours) ListByStaff(_ context.Context, staffID string) ([]*domain.WorkingHours, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.read(); err != nil {
		return nil, err
	}
	result := make([]*domain.WorkingHours, 0)
	for _, h := range r.s.hours {
		if h.StaffID == staffID {
			h := h
			result = append(result, &h)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Weekday < result[j].Weekday })
	return result, nil
}

func (r *WorkingHours) ReplaceForStaff(_ context.Context, staffID string, hours []domain.WorkingHours) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	kept := r.s.hours[:0:0]
	for _, h := range r.s.hours {
		if h.StaffID != staffID {
			kept = append(kept, h)
		}
	}
	for _, h := range hours {
		if h.ID == "" {
			h.ID = uuid.NewString()
		}
		h.StaffID = staffID
		kept = append(kept, h)
	}
	r.s.hours = kept
	return nil
}

// Blocks репозиторий блокировок
type Blocks struct{ s *Store }

func (s *Store) Blocks() *Blocks { return &Blocks{s: s} }

func (r *Blocks) ListOverlapping(ctx context.Context, staffID string, from, to time.Time) ([]*domain.Block, error) {
	return r.List(ctx, domain.BlocksFilter{StaffID: &staffID, From: &from, To: &to})
}

func (r *Blocks) List(_ context.Context, filter domain.BlocksFilter) ([]*domain.Block, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.read(); err != nil {
		return nil, err
	}
	result := make([]*domain.Block, 0)
	for _, b := range r.s.blocks {
		if filter.StaffID != nil && b.StaffID != *filter.StaffID {
			continue
		}
		if filter.To != nil && !b.StartAt.Before(*filter.To) {
			continue
		}
		if filter.From != nil && !b.EndAt.After(*filter.From) {
			continue
		}
		b := b
		result = append(result, &b)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartAt.Before(result[j].StartAt) })
	return result, nil
}

func (r *Blocks) Create(_ context.Context, b *domain.Block) (*domain.Block, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	created := *b
	created.CreatedAt = time.Now()
	r.s.blocks = append(r.s.blocks, created)
	return &created, nil
}

func (r *Blocks) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	for i, b := range r.s.blocks {
		if b.ID == id {
			r.s.blocks = append(r.s.blocks[:i:i], r.s.blocks[i+1:]...)
			return nil
		}
	}
	return blockRepo.ErrBlockNotFound
}

// Appointments репозиторий записей
// Create повторяет exclusion constraint БД: пересечение занимающих календарь записей мастера отклоняется
type Appointments struct{ s *Store }

func (s *Store) Appointments() *Appointments { return &Appointments{s: s} }

func (r *Appointments) Create(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	if a.Status.Occupies() && r.s.overlapsLocked(a.ID, a.StaffID, a.StartAt, a.EndAt) {
		return nil, appointmentRepo.ErrSlotNotAvailable
	}
	created := *a
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	r.s.appointments = append(r.s.appointments, created)
	return &created, nil
}

func (r *Appointments) GetByID(_ context.Context, id string) (*domain.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.read(); err != nil {
		return nil, err
	}
	for _, a := range r.s.appointments {
		if a.ID == id {
			a := a
			return &a, nil
		}
	}
	return nil, appointmentRepo.ErrAppointmentNotFound
}

func (r *Appointments) GetDetails(ctx context.Context, id string) (*domain.AppointmentDetails, error) {
	a, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.detailsLocked(*a), nil
}

func (r *Appointments) ListOccupying(_ context.Context, staffID string, from, to time.Time) ([]*domain.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.read(); err != nil {
		return nil, err
	}
	result := make([]*domain.Appointment, 0)
	for _, a := range r.s.appointments {
		if a.StaffID == staffID && a.Status.Occupies() && a.StartAt.Before(to) && a.EndAt.After(from) {
			a := a
			result = append(result, &a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartAt.Before(result[j].StartAt) })
	return result, nil
}

func (r *Appointments) List(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.AppointmentDetails, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.read(); err != nil {
		return nil, err
	}
	result := make([]*domain.AppointmentDetails, 0)
	for _, a := range r.s.appointments {
		if filter.From != nil && a.StartAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !a.StartAt.Before(*filter.To) {
			continue
		}
		if filter.StaffID != nil && a.StaffID != *filter.StaffID {
			continue
		}
		if filter.Status != nil && a.Status != *filter.Status {
			continue
		}
		result = append(result, r.s.detailsLocked(a))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartAt.Before(result[j].StartAt) })
	return result, nil
}

func (r *Appointments) UpdateStatus(_ context.Context, id string, status domain.AppointmentStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	for i, a := range r.s.appointments {
		if a.ID != id {
			continue
		}
		if status.Occupies() && !a.Status.Occupies() && r.s.overlapsLocked(a.ID, a.StaffID, a.StartAt, a.EndAt) {
			return appointmentRepo.ErrSlotNotAvailable
		}
		r.s.appointments[i].Status = status
		return nil
	}
	return appointmentRepo.ErrAppointmentNotFound
}

func (r *Appointments) UpdateInternalNotes(_ context.Context, id string, notes *string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	for i, a := range r.s.appointments {
		if a.ID == id {
			r.s.appointments[i].InternalNotes = notes
			return nil
		}
	}
	return appointmentRepo.ErrAppointmentNotFound
}

func (s *Store) overlapsLocked(id, staffID string, start, end time.Time) bool {
	for _, other := range s.appointments {
		if other.ID == id || other.StaffID != staffID || !other.Status.Occupies() {
			continue
		}
		if start.Before(other.EndAt) && end.After(other.StartAt) {
			return true
		}
	}
	return false
}

func (s *Store) detailsLocked(a domain.Appointment) *domain.AppointmentDetails {
	d := &domain.AppointmentDetails{Appointment: a}
	if o, ok := s.options[a.ServiceOptionID]; ok {
		d.ServiceName = o.Service.Name
		d.OptionType = o.Option.Type
	}
	for _, st := range s.staff {
		if st.ID == a.StaffID {
			d.StaffName = st.Name
		}
	}
	for _, c := range s.clients {
		if c.ID == a.ClientID {
			d.ClientName = c.Name
			d.ClientPhone = c.Phone
		}
	}
	return d
}

// Clients репозиторий клиентов
type Clients struct{ s *Store }

func (s *Store) Clients() *Clients { return &Clients{s: s} }

func (r *Clients) FindOrCreateByPhone(_ context.Context, c *domain.Client) (*domain.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	for _, existing := range r.s.clients {
		if existing.Phone == c.Phone {
			existing := existing
			return &existing, nil
		}
	}
	created := *c
	created.CreatedAt = time.Now()
	r.s.clients = append(r.s.clients, created)
	return &created, nil
}
