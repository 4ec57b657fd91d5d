package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"planetarium-booking/internal/data/entity"
	"planetarium-booking/internal/data/repository"
	"planetarium-booking/internal/event"

	"github.com/google/uuid"
)

// memStore backs the repositories the reservation engine touches. It keeps
// the ticket uniqueness rule and the cascades of the real schema.
type memStore struct {
	mu           sync.Mutex
	domes        map[uuid.UUID]*entity.Dome
	sessions     map[uuid.UUID]*entity.ShowSession
	reservations map[uuid.UUID]*entity.Reservation
	tickets      []*entity.Ticket
	clock        time.Time
}

func newMemStore() *memStore {
	return &memStore{
		domes:        make(map[uuid.UUID]*entity.Dome),
		sessions:     make(map[uuid.UUID]*entity.ShowSession),
		reservations: make(map[uuid.UUID]*entity.Reservation),
		clock:        time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

// repository returns a Repository over the store with a snapshotting UoW.
func (m *memStore) repository() *repository.Repository {
	repo := m.txRepository()
	repo.UoW = &memUoW{store: m}
	return repo
}

func (m *memStore) txRepository() *repository.Repository {
	return &repository.Repository{
		Dome:        memDomes{m},
		ShowSession: memSessions{m},
		Reservation: memReservations{m},
		Ticket:      memTickets{m},
	}
}

func (m *memStore) addDome(rows, seats int) *entity.Dome {
	d := &entity.Dome{
		Record: entity.Record{ID: uuid.New()},
		Name:         fmt.Sprintf("Dome %dx%d", rows, seats),
		Rows:         rows,
		SeatsInRow:   seats,
	}
	m.domes[d.ID] = d
	return d
}

func (m *memStore) addSession(dome *entity.Dome) *entity.ShowSession {
	s := &entity.ShowSession{
		Record:    entity.Record{ID: uuid.New()},
		AstronomyShowID: uuid.New(),
		DomeID:          dome.ID,
		ShowTime:        m.clock.Add(48 * time.Hour),
	}
	m.sessions[s.ID] = s
	return s
}

func (m *memStore) ticketCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tickets)
}

func (m *memStore) reservationCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.reservations)
}

type memUoW struct {
	store *memStore
}

// Do restores the reservations and tickets as they were when fn fails.
func (u *memUoW) Do(ctx context.Context, fn func(ctx context.Context, tx *repository.Repository, after func(repository.AfterCommit)) error) error {
	m := u.store

	m.mu.Lock()
	reservations := make(map[uuid.UUID]*entity.Reservation, len(m.reservations))
	for k, v := range m.reservations {
		reservations[k] = v
	}
	tickets := append([]*entity.Ticket(nil), m.tickets...)
	m.mu.Unlock()

	var hooks []repository.AfterCommit
	err := fn(ctx, m.txRepository(), func(h repository.AfterCommit) {
		hooks = append(hooks, h)
	})
	if err != nil {
		m.mu.Lock()
		m.reservations = reservations
		m.tickets = tickets
		m.mu.Unlock()
		return err
	}

	for _, h := range hooks {
		h(ctx)
	}
	return nil
}

type memDomes struct{ m *memStore }

func (r memDomes) Create(_ context.Context, d *entity.Dome) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.domes[d.ID] = d
	return nil
}

func (r memDomes) FindByID(_ context.Context, id uuid.UUID) (*entity.Dome, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	d, ok := r.m.domes[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r memDomes) FindAll(context.Context) ([]*entity.Dome, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := make([]*entity.Dome, 0, len(r.m.domes))
	for _, d := range r.m.domes {
		out = append(out, d)
	}
	return out, nil
}

func (r memDomes) Update(_ context.Context, d *entity.Dome) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.domes[d.ID]; !ok {
		return repository.ErrNotFound
	}
	r.m.domes[d.ID] = d
	return nil
}

func (r memDomes) Delete(_ context.Context, id uuid.UUID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	delete(r.m.domes, id)
	return nil
}

type memSessions struct{ m *memStore }

func (r memSessions) Create(_ context.Context, s *entity.ShowSession) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.sessions[s.ID] = s
	return nil
}

func (r memSessions) FindByID(_ context.Context, id uuid.UUID) (*entity.ShowSession, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	s, ok := r.m.sessions[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r memSessions) FindViewByID(_ context.Context, id uuid.UUID) (*entity.ShowSessionView, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return r.view(id), nil
}

func (r memSessions) view(id uuid.UUID) *entity.ShowSessionView {
	s, ok := r.m.sessions[id]
	if !ok {
		return nil
	}
	d := r.m.domes[s.DomeID]

	sold := 0
	for _, t := range r.m.tickets {
		if t.ShowSessionID == id {
			sold++
		}
	}

	return &entity.ShowSessionView{
		ShowSession:    *s,
		DomeName:       d.Name,
		DomeRows:       d.Rows,
		DomeSeatsInRow: d.SeatsInRow,
		TicketsSold:    sold,
	}
}

func (r memSessions) FindAll(_ context.Context, _ repository.SessionFilter) ([]*entity.ShowSessionView, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := make([]*entity.ShowSessionView, 0, len(r.m.sessions))
	for id := range r.m.sessions {
		out = append(out, r.view(id))
	}
	return out, nil
}

func (r memSessions) TakenPlaces(_ context.Context, id uuid.UUID) ([]entity.Place, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []entity.Place
	for _, t := range r.m.tickets {
		if t.ShowSessionID == id {
			out = append(out, entity.Place{Row: t.Row, Seat: t.Seat})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Seat < out[j].Seat
	})
	return out, nil
}

func (r memSessions) Update(_ context.Context, s *entity.ShowSession) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.sessions[s.ID] = s
	return nil
}

func (r memSessions) Delete(_ context.Context, id uuid.UUID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	delete(r.m.sessions, id)
	return nil
}

type memReservations struct{ m *memStore }

func (r memReservations) Create(_ context.Context, res *entity.Reservation) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.clock = r.m.clock.Add(time.Second)
	res.CreatedAt = r.m.clock
	cp := *res
	r.m.reservations[res.ID] = &cp
	return nil
}

func (r memReservations) FindByID(_ context.Context, id uuid.UUID) (*entity.Reservation, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	res, ok := r.m.reservations[id]
	if !ok {
		return nil, nil
	}
	cp := *res
	return &cp, nil
}

func (r memReservations) FindByUserID(_ context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Reservation, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*entity.Reservation
	for _, res := range r.m.reservations {
		if res.UserID == userID {
			out = append(out, res)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r memReservations) CountByUserID(_ context.Context, userID uuid.UUID) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var n int64
	for _, res := range r.m.reservations {
		if res.UserID == userID {
			n++
		}
	}
	return n, nil
}

// Delete cascades to the reservation's tickets.
func (r memReservations) Delete(_ context.Context, id uuid.UUID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.reservations[id]; !ok {
		return fmt.Errorf("delete reservation: %w", repository.ErrNotFound)
	}
	delete(r.m.reservations, id)

	kept := r.m.tickets[:0:0]
	for _, t := range r.m.tickets {
		if t.ReservationID != id {
			kept = append(kept, t)
		}
	}
	r.m.tickets = kept
	return nil
}

type memTickets struct{ m *memStore }

func (r memTickets) Create(_ context.Context, t *entity.Ticket) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if _, ok := r.m.sessions[t.ShowSessionID]; !ok {
		return fmt.Errorf("create ticket: %w", repository.ErrForeignKey)
	}
	for _, existing := range r.m.tickets {
		if existing.ShowSessionID == t.ShowSessionID && existing.Row == t.Row && existing.Seat == t.Seat {
			return fmt.Errorf("create ticket: %w", repository.ErrConflict)
		}
	}

	cp := *t
	r.m.tickets = append(r.m.tickets, &cp)
	return nil
}

func (r memTickets) FindByReservationIDs(_ context.Context, ids []uuid.UUID) ([]*entity.TicketView, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	want := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}

	var out []*entity.TicketView
	for _, t := range r.m.tickets {
		if !want[t.ReservationID] {
			continue
		}
		v := &entity.TicketView{Ticket: *t}
		if s, ok := r.m.sessions[t.ShowSessionID]; ok {
			v.ShowTime = s.ShowTime
			v.DomeName = r.m.domes[s.DomeID].Name
		}
		out = append(out, v)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].ReservationID != out[j].ReservationID {
			return out[i].ReservationID.String() < out[j].ReservationID.String()
		}
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Seat < out[j].Seat
	})
	return out, nil
}

// recordingPublisher keeps every published event. With err set it records
// the attempt and fails.
type recordingPublisher struct {
	mu     sync.Mutex
	events []event.ReservationCreated
	err    error
}

func (p *recordingPublisher) PublishReservationCreated(_ context.Context, ev event.ReservationCreated) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}
