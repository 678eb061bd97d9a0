package day

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBookingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SalonBookingService/pkg/txmanager"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

const uniqueViolation = "23505"

// queryErr оборачивает ошибку выполнения запроса; ошибки сериализации получают ErrSerialization
func queryErr(base error, op string, err error) error {
	if txmanager.IsSerializationFailure(err) {
		return fmt.Errorf("%w: %s: %v", ErrSerialization, op, err)
	}
	return fmt.Errorf("%w: %s: %v", base, op, err)
}

var dayColumns = []string{
	"id",
	"date",
	"work_hour_start",
	"work_hour_end",
	"is_visible",
	"is_weekend",
	"created_at",
	"updated_at",
}

var slotColumns = []string{
	"id",
	"day_id",
	"start_time",
	"end_time",
	"procedure",
	"requester_id",
	"available",
	"cancelled",
}

// Repository репозиторий рабочих дней и их слотов в PostgreSQL
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateDay создает рабочий день без слотов.
// Слоты создаются лениво при первом обращении к дню.
func (r *Repository) CreateDay(ctx context.Context, day *domain.Day) (*domain.Day, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("days").
		Columns(
			"date",
			"work_hour_start",
			"work_hour_end",
			"is_visible",
			"is_weekend",
		).
		Values(
			day.Date.Format(domain.DateFormat),
			day.WorkHourStart,
			day.WorkHourEnd,
			day.IsVisible,
			day.IsWeekend,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateDay - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&day.ID, &createdAt, &updatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, fmt.Errorf("%w: %s", ErrDayAlreadyExists, day.DateString())
		}
		return nil, fmt.Errorf("%w: CreateDay - execute insert: %v", ErrExecQuery, err)
	}

	day.CreatedAt = createdAt.Time
	day.UpdatedAt = updatedAt.Time

	return day, nil
}

// GetDayByDate получает рабочий день по дате
func (r *Repository) GetDayByDate(ctx context.Context, date time.Time) (*domain.Day, error) {
	return r.getDay(ctx, date, false)
}

// GetDayByDateForUpdate получает рабочий день и блокирует строку до конца транзакции.
// Вне транзакции работает как GetDayByDate.
func (r *Repository) GetDayByDateForUpdate(ctx context.Context, date time.Time) (*domain.Day, error) {
	return r.getDay(ctx, date, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) getDay(ctx context.Context, date time.Time, forUpdate bool) (*domain.Day, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(dayColumns...).
		From("days").
		Where(squirrel.Eq{"date": date.Format(domain.DateFormat)})

	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetDayByDate - build select query: %v", ErrBuildQuery, err)
	}

	day, err := scanDay(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDayNotFound
	}
	if err != nil {
		return nil, queryErr(ErrScanRow, "GetDayByDate - scan day", err)
	}

	return day, nil
}

// ListVisibleDays возвращает видимые дни строго после указанной даты, по возрастанию
func (r *Repository) ListVisibleDays(ctx context.Context, after time.Time) ([]*domain.Day, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(dayColumns...).
		From("days").
		Where(squirrel.Eq{"is_visible": true}).
		Where(squirrel.Gt{"date": after.Format(domain.DateFormat)}).
		OrderBy("date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListVisibleDays - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListVisibleDays - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	days := make([]*domain.Day, 0)
	for rows.Next() {
		day, err := scanDay(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListVisibleDays - scan day: %v", ErrScanRow, err)
		}
		days = append(days, day)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListVisibleDays - rows error: %v", ErrScanRow, err)
	}

	return days, nil
}

// UpdateDayFlags обновляет флаги видимости и выходного дня
func (r *Repository) UpdateDayFlags(ctx context.Context, date time.Time, update FlagsUpdate) (*domain.Day, error) {
	if update.IsEmpty() {
		return r.GetDayByDate(ctx, date)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("days").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"date": date.Format(domain.DateFormat)})

	if update.IsVisible != nil {
		updateBuilder = updateBuilder.Set("is_visible", *update.IsVisible)
	}
	if update.IsWeekend != nil {
		updateBuilder = updateBuilder.Set("is_weekend", *update.IsWeekend)
	}

	query, args, err := updateBuilder.
		Suffix("RETURNING " + strings.Join(dayColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateDayFlags - build update query: %v", ErrBuildQuery, err)
	}

	day, err := scanDay(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDayNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateDayFlags - scan day: %v", ErrScanRow, err)
	}

	return day, nil
}

// ListSlots возвращает все слоты дня по возрастанию времени начала
func (r *Repository) ListSlots(ctx context.Context, dayID int64) ([]domain.TimeSlot, error) {
	return r.listSlots(ctx, squirrel.Eq{"day_id": dayID})
}

// ListAvailableSlots возвращает слоты дня с available = true
func (r *Repository) ListAvailableSlots(ctx context.Context, dayID int64) ([]domain.TimeSlot, error) {
	return r.listSlots(ctx, squirrel.Eq{"day_id": dayID, "available": true})
}

func (r *Repository) listSlots(ctx context.Context, where squirrel.Eq) ([]domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("time_slots").
		Where(where).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, queryErr(ErrExecQuery, "ListSlots - execute query", err)
	}
	defer rows.Close()

	slots := make([]domain.TimeSlot, 0)
	for rows.Next() {
		var slot domain.TimeSlot
		var procedure sql.NullString
		var requesterID sql.NullInt64

		err := rows.Scan(
			&slot.ID,
			&slot.DayID,
			&slot.StartTime,
			&slot.EndTime,
			&procedure,
			&requesterID,
			&slot.Available,
			&slot.Cancelled,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListSlots - scan row: %v", ErrScanRow, err)
		}

		if procedure.Valid {
			slot.Procedure = &procedure.String
		}
		if requesterID.Valid {
			slot.RequesterID = &requesterID.Int64
		}

		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// CreateSlot создает слот дня
func (r *Repository) CreateSlot(ctx context.Context, slot *domain.TimeSlot) (*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("time_slots").
		Columns(
			"day_id",
			"start_time",
			"end_time",
			"procedure",
			"requester_id",
			"available",
			"cancelled",
		).
		Values(
			slot.DayID,
			slot.StartTime,
			slot.EndTime,
			slot.Procedure,
			slot.RequesterID,
			slot.Available,
			slot.Cancelled,
		).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateSlot - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&slot.ID); err != nil {
		return nil, queryErr(ErrExecQuery, "CreateSlot - execute insert", err)
	}

	return slot, nil
}

// DeleteSlot удаляет слот по ID
func (r *Repository) DeleteSlot(ctx context.Context, slotID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("time_slots").
		Where(squirrel.Eq{"id": slotID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteSlot - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteSlot - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteSlot - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// ReplaceSlot удаляет свободный (или транзитный) слот, начинающийся в start,
// и создает вместо него слоты created одной транзакцией.
// Если транзакция уже есть в контексте, используется она.
func (r *Repository) ReplaceSlot(ctx context.Context, dayID int64, start types.TimeString, created []domain.TimeSlot) ([]domain.TimeSlot, error) {
	if dbmetrics.IsInTransaction(ctx) {
		return r.replaceSlot(ctx, dayID, start, created)
	}

	beginner, ok := r.db.(TxBeginner)
	if !ok {
		return nil, fmt.Errorf("%w: ReplaceSlot - executor does not support transactions", ErrTransaction)
	}

	tx, err := beginner.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, fmt.Errorf("%w: ReplaceSlot - begin: %v", ErrTransaction, err)
	}

	result, err := r.replaceSlot(dbmetrics.WithTx(ctx, tx), dayID, start, created)
	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, queryErr(ErrTransaction, "ReplaceSlot - commit", err)
	}

	return result, nil
}

func (r *Repository) replaceSlot(ctx context.Context, dayID int64, start types.TimeString, created []domain.TimeSlot) ([]domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("time_slots").
		Where(squirrel.Eq{
			"day_id":     dayID,
			"start_time": start,
			"available":  true,
			"cancelled":  false,
		}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ReplaceSlot - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, queryErr(ErrExecQuery, "ReplaceSlot - execute delete", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%w: ReplaceSlot - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return nil, fmt.Errorf("%w: day %d, start %s", ErrSlotNotFound, dayID, start)
	}

	saved := make([]domain.TimeSlot, 0, len(created))
	for i := range created {
		slot := created[i]
		slot.DayID = dayID
		if _, err := r.CreateSlot(ctx, &slot); err != nil {
			return nil, err
		}
		saved = append(saved, slot)
	}

	return saved, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDay(row rowScanner) (*domain.Day, error) {
	var day domain.Day
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&day.ID,
		&day.Date,
		&day.WorkHourStart,
		&day.WorkHourEnd,
		&day.IsVisible,
		&day.IsWeekend,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	day.CreatedAt = createdAt.Time
	day.UpdatedAt = updatedAt.Time

	return &day, nil
}

// ListRequesterSlots возвращает слоты клиента в днях с датой не раньше from,
// упорядоченные по дате и времени начала
func (r *Repository) ListRequesterSlots(ctx context.Context, requesterID int64, from time.Time) ([]DatedSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	columns := make([]string, 0, len(slotColumns)+1)
	columns = append(columns, "d.date")
	for _, c := range slotColumns {
		columns = append(columns, "s."+c)
	}

	query, args, err := psqlbuilder.Select(columns...).
		From("time_slots s").
		Join("days d ON d.id = s.day_id").
		Where(squirrel.Eq{"s.requester_id": requesterID, "s.cancelled": false}).
		Where(squirrel.GtOrEq{"d.date": from.Format(domain.DateFormat)}).
		OrderBy("d.date ASC", "s.start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListRequesterSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListRequesterSlots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]DatedSlot, 0)
	for rows.Next() {
		var item DatedSlot
		var procedure sql.NullString
		var requester sql.NullInt64

		err := rows.Scan(
			&item.Date,
			&item.Slot.ID,
			&item.Slot.DayID,
			&item.Slot.StartTime,
			&item.Slot.EndTime,
			&procedure,
			&requester,
			&item.Slot.Available,
			&item.Slot.Cancelled,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListRequesterSlots - scan row: %v", ErrScanRow, err)
		}

		if procedure.Valid {
			item.Slot.Procedure = &procedure.String
		}
		if requester.Valid {
			item.Slot.RequesterID = &requester.Int64
		}

		result = append(result, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListRequesterSlots - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}
