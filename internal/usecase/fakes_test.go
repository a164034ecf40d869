package usecase

import (
	"context"
	"io"
	"io/fs"
	"sort"
	"sync"
	"time"

	"hypnos-booking/internal/data/entity"
	"hypnos-booking/internal/data/repository"

	"github.com/google/uuid"
)

// --- Mock RoomRepository ---

type mockRoomRepo struct {
	findByIDFn func(ctx context.Context, id uuid.UUID) (*entity.Room, error)
}

func (m *mockRoomRepo) Create(ctx context.Context, room *entity.Room) error { return nil }
func (m *mockRoomRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockRoomRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.Room, error) {
	return nil, nil
}
func (m *mockRoomRepo) CountAll(ctx context.Context) (int64, error) { return 0, nil }
func (m *mockRoomRepo) FindByFacilityID(ctx context.Context, facilityID uuid.UUID) ([]*entity.Room, error) {
	return nil, nil
}
func (m *mockRoomRepo) Update(ctx context.Context, room *entity.Room) error { return nil }

func roomsWith(rooms ...*entity.Room) *mockRoomRepo {
	byID := make(map[uuid.UUID]*entity.Room, len(rooms))
	for _, r := range rooms {
		byID[r.ID] = r
	}
	return &mockRoomRepo{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
			return byID[id], nil
		},
	}
}

// --- In-memory BookingRepository ---

// memBookingRepo serializes ReserveRoom with a mutex, standing in for the
// per-room advisory lock of the postgres implementation.
type memBookingRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*entity.Booking
	emails   map[uuid.UUID]string
}

func newMemBookingRepo() *memBookingRepo {
	return &memBookingRepo{
		bookings: make(map[uuid.UUID]*entity.Booking),
		emails:   make(map[uuid.UUID]string),
	}
}

func (m *memBookingRepo) add(b *entity.Booking) *entity.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	m.bookings[b.ID] = b
	return b
}

func (m *memBookingRepo) detail(b *entity.Booking) *entity.BookingDetail {
	return &entity.BookingDetail{Booking: *b, UserEmail: m.emails[b.UserID]}
}

func (m *memBookingRepo) sorted(keep func(*entity.Booking) bool) []*entity.Booking {
	var out []*entity.Booking
	for _, b := range m.bookings {
		if keep(b) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out
}

func (m *memBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.BookingDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, nil
	}
	return m.detail(b), nil
}

func (m *memBookingRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.BookingDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.BookingDetail
	for _, b := range m.sorted(func(*entity.Booking) bool { return true }) {
		out = append(out, m.detail(b))
	}
	return page(out, limit, offset), nil
}

func (m *memBookingRepo) CountAll(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.bookings)), nil
}

func (m *memBookingRepo) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.BookingDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.BookingDetail
	for _, b := range m.sorted(func(b *entity.Booking) bool { return b.UserID == userID }) {
		out = append(out, m.detail(b))
	}
	return page(out, limit, offset), nil
}

func (m *memBookingRepo) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.sorted(func(b *entity.Booking) bool { return b.UserID == userID }))), nil
}

func (m *memBookingRepo) FindActiveByRoomID(ctx context.Context, roomID uuid.UUID) ([]*entity.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.activeFor(roomID), nil
}

func (m *memBookingRepo) activeFor(roomID uuid.UUID) []*entity.Booking {
	var out []*entity.Booking
	for _, b := range m.sorted(func(b *entity.Booking) bool { return b.RoomID == roomID && !b.IsDeleted }) {
		cp := *b
		out = append(out, &cp)
	}
	return out
}

func (m *memBookingRepo) ReserveRoom(ctx context.Context, roomID uuid.UUID, decide repository.ReserveFunc) (*entity.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	booking, err := decide(m.activeFor(roomID))
	if err != nil {
		return nil, err
	}
	m.bookings[booking.ID] = booking
	return booking, nil
}

func (m *memBookingRepo) MarkDeleted(ctx context.Context, id uuid.UUID, updatedAt time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok || b.IsDeleted {
		return false, nil
	}
	b.IsDeleted = true
	b.UpdatedAt = updatedAt
	return true, nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// --- Mock EventPublisher ---

type publishedEvent struct {
	key   string
	event BookingEvent
}

type mockPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (m *mockPublisher) PublishJSON(ctx context.Context, key string, v any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, publishedEvent{key: key, event: v.(BookingEvent)})
	return nil
}

func (m *mockPublisher) published() []publishedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]publishedEvent(nil), m.events...)
}

// --- Mock UserRepository ---

type memUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newMemUserRepo(users ...*entity.User) *memUserRepo {
	repo := &memUserRepo{users: make(map[uuid.UUID]*entity.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (m *memUserRepo) Create(ctx context.Context, user *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if !u.IsDeleted && u.Email == user.Email {
			return repository.ErrEmailTaken
		}
	}
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *memUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok || u.IsDeleted {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *memUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if !u.IsDeleted && u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUserRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.User
	for _, u := range m.users {
		if !u.IsDeleted {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return page(out, limit, offset), nil
}

func (m *memUserRepo) CountAll(ctx context.Context) (int64, error) {
	all, _ := m.FindAll(ctx, 1<<30, 0)
	return int64(len(all)), nil
}

func (m *memUserRepo) Update(ctx context.Context, user *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, u := range m.users {
		if id != user.ID && !u.IsDeleted && u.Email == user.Email {
			return repository.ErrEmailTaken
		}
	}
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *memUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		u.IsDeleted = true
	}
	return nil
}

// --- Mock FileStore ---

type memStore struct {
	mu      sync.Mutex
	files   map[string][]byte
	removed []string
	saveErr error
}

func newMemStore() *memStore {
	return &memStore{files: make(map[string][]byte)}
}

func (m *memStore) Save(filename string, r io.Reader) (string, error) {
	if m.saveErr != nil {
		return "", m.saveErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	path := "uploads/" + filename
	if _, ok := m.files[path]; ok {
		return "", fs.ErrExist
	}
	m.files[path] = data
	return path, nil
}

func (m *memStore) Remove(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, path)
	m.removed = append(m.removed, path)
	return nil
}
