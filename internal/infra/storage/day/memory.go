package day

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// MemoryRepository хранилище дней в памяти процесса.
// Каждая операция атомарна; ReplaceSlot удаляет и создает слоты под одной блокировкой,
// поэтому читатели никогда не видят частично записанный день.
type MemoryRepository struct {
	mu         sync.RWMutex
	days       map[string]*domain.Day // ключ - дата YYYY-MM-DD
	slots      map[int64][]domain.TimeSlot
	nextDayID  int64
	nextSlotID int64
	now        func() time.Time
}

// NewMemoryRepository создает пустое хранилище
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		days:  make(map[string]*domain.Day),
		slots: make(map[int64][]domain.TimeSlot),
		now:   time.Now,
	}
}

// CreateDay создает рабочий день без слотов
func (r *MemoryRepository) CreateDay(_ context.Context, day *domain.Day) (*domain.Day, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := day.DateString()
	if _, exists := r.days[key]; exists {
		return nil, fmt.Errorf("%w: %s", ErrDayAlreadyExists, key)
	}

	r.nextDayID++
	stored := *day
	stored.ID = r.nextDayID
	stored.CreatedAt = r.now()
	stored.UpdatedAt = stored.CreatedAt
	r.days[key] = &stored

	result := stored
	return &result, nil
}

// GetDayByDate получает рабочий день по дате
func (r *MemoryRepository) GetDayByDate(_ context.Context, date time.Time) (*domain.Day, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	day, ok := r.days[date.Format(domain.DateFormat)]
	if !ok {
		return nil, ErrDayNotFound
	}
	result := *day
	return &result, nil
}

// GetDayByDateForUpdate совпадает с GetDayByDate; сериализацию записи по дню обеспечивает daylock
func (r *MemoryRepository) GetDayByDateForUpdate(ctx context.Context, date time.Time) (*domain.Day, error) {
	return r.GetDayByDate(ctx, date)
}

// ListVisibleDays возвращает видимые дни строго после указанной даты, по возрастанию
func (r *MemoryRepository) ListVisibleDays(_ context.Context, after time.Time) ([]*domain.Day, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	threshold := after.Format(domain.DateFormat)
	days := make([]*domain.Day, 0)
	for key, day := range r.days {
		if !day.IsVisible || key <= threshold {
			continue
		}
		result := *day
		days = append(days, &result)
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].DateString() < days[j].DateString()
	})

	return days, nil
}

// UpdateDayFlags обновляет флаги видимости и выходного дня
func (r *MemoryRepository) UpdateDayFlags(_ context.Context, date time.Time, update FlagsUpdate) (*domain.Day, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	day, ok := r.days[date.Format(domain.DateFormat)]
	if !ok {
		return nil, ErrDayNotFound
	}

	if update.IsVisible != nil {
		day.IsVisible = *update.IsVisible
	}
	if update.IsWeekend != nil {
		day.IsWeekend = *update.IsWeekend
	}
	if !update.IsEmpty() {
		day.UpdatedAt = r.now()
	}

	result := *day
	return &result, nil
}

// ListSlots возвращает все слоты дня по возрастанию времени начала
func (r *MemoryRepository) ListSlots(_ context.Context, dayID int64) ([]domain.TimeSlot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.copySlots(dayID, func(domain.TimeSlot) bool { return true }), nil
}

// ListAvailableSlots возвращает слоты дня с available = true
func (r *MemoryRepository) ListAvailableSlots(_ context.Context, dayID int64) ([]domain.TimeSlot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.copySlots(dayID, func(s domain.TimeSlot) bool { return s.Available }), nil
}

// ListRequesterSlots возвращает слоты клиента в днях с датой не раньше from
func (r *MemoryRepository) ListRequesterSlots(_ context.Context, requesterID int64, from time.Time) ([]DatedSlot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	threshold := from.Format(domain.DateFormat)
	dates := make([]string, 0, len(r.days))
	for key := range r.days {
		if key >= threshold {
			dates = append(dates, key)
		}
	}
	sort.Strings(dates)

	result := make([]DatedSlot, 0)
	for _, key := range dates {
		day := r.days[key]
		slots := r.copySlots(day.ID, func(s domain.TimeSlot) bool {
			return !s.Cancelled && s.IsOwnedBy(requesterID)
		})
		for _, slot := range slots {
			result = append(result, DatedSlot{Date: day.Date, Slot: slot})
		}
	}

	return result, nil
}

// CreateSlot создает слот дня
func (r *MemoryRepository) CreateSlot(_ context.Context, slot *domain.TimeSlot) (*domain.TimeSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.hasDay(slot.DayID) {
		return nil, ErrDayNotFound
	}

	r.insert(slot)
	result := *slot
	return &result, nil
}

// DeleteSlot удаляет слот по ID
func (r *MemoryRepository) DeleteSlot(_ context.Context, slotID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for dayID, slots := range r.slots {
		for i, s := range slots {
			if s.ID == slotID {
				r.slots[dayID] = append(slots[:i:i], slots[i+1:]...)
				return nil
			}
		}
	}
	return ErrSlotNotFound
}

// ReplaceSlot удаляет свободный (или транзитный) слот, начинающийся в start, и создает слоты created
func (r *MemoryRepository) ReplaceSlot(_ context.Context, dayID int64, start types.TimeString, created []domain.TimeSlot) ([]domain.TimeSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	slots := r.slots[dayID]
	idx := -1
	for i, s := range slots {
		if s.IsBookable() && s.StartTime.Equal(start) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: day %d, start %s", ErrSlotNotFound, dayID, start)
	}

	r.slots[dayID] = append(slots[:idx:idx], slots[idx+1:]...)

	saved := make([]domain.TimeSlot, 0, len(created))
	for i := range created {
		slot := created[i]
		slot.DayID = dayID
		r.insert(&slot)
		saved = append(saved, slot)
	}

	return saved, nil
}

func (r *MemoryRepository) hasDay(dayID int64) bool {
	for _, day := range r.days {
		if day.ID == dayID {
			return true
		}
	}
	return false
}

// insert присваивает ID и добавляет копию слота с сохранением порядка по времени начала
func (r *MemoryRepository) insert(slot *domain.TimeSlot) {
	r.nextSlotID++
	slot.ID = r.nextSlotID

	slots := append(r.slots[slot.DayID], *slot)
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].StartTime.IsBefore(slots[j].StartTime)
	})
	r.slots[slot.DayID] = slots
}

func (r *MemoryRepository) copySlots(dayID int64, keep func(domain.TimeSlot) bool) []domain.TimeSlot {
	result := make([]domain.TimeSlot, 0, len(r.slots[dayID]))
	for _, s := range r.slots[dayID] {
		if keep(s) {
			result = append(result, s)
		}
	}
	return result
}
