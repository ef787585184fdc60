package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с парковочными сессиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория сессий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var sessionColumns = []string{
	"id",
	"vehicle_id",
	"slot_id",
	"number_plate",
	"entry_time",
	"exit_time",
	"status",
	"billing_type",
	"billing_amount",
	"day_pass_date",
	"overstay_notified",
	"duration_minutes",
	"operator_id",
	"notes",
	"created_at",
	"updated_at",
}

// Create создает новую сессию
// Если в контексте есть активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, s *domain.ParkingSession) (*domain.ParkingSession, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("parking_sessions").
		Columns(
			"vehicle_id",
			"slot_id",
			"number_plate",
			"entry_time",
			"status",
			"billing_type",
			"billing_amount",
			"day_pass_date",
			"overstay_notified",
			"operator_id",
			"notes",
		).
		Values(
			s.VehicleID,
			s.SlotID,
			s.NumberPlate,
			s.EntryTime,
			s.Status,
			s.BillingType,
			s.BillingAmount,
			s.DayPassDate,
			s.OverstayNotified,
			s.OperatorID,
			s.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// GetByID получает сессию по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ParkingSession, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetOpenByPlate получает открытую сессию (active или overstay) по госномеру
// Guard инварианта "максимум одна открытая сессия на госномер":
// внутри транзакции блокирует строку (FOR UPDATE)
func (r *Repository) GetOpenByPlate(ctx context.Context, numberPlate string) (*domain.ParkingSession, error) {
	return r.getOne(ctx,
		squirrel.And{
			squirrel.Eq{"number_plate": numberPlate},
			squirrel.Eq{"status": openStatusStrings()},
		},
	)
}

// GetOpenByID получает открытую сессию (active или overstay) по ID
func (r *Repository) GetOpenByID(ctx context.Context, id int64) (*domain.ParkingSession, error) {
	return r.getOne(ctx,
		squirrel.And{
			squirrel.Eq{"id": id},
			squirrel.Eq{"status": openStatusStrings()},
		},
	)
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Sqlizer) (*domain.ParkingSession, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(sessionColumns...).
		From("parking_sessions").
		Where(where)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.ParkingSession
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.VehicleID,
		&s.SlotID,
		&s.NumberPlate,
		&s.EntryTime,
		&s.ExitTime,
		&s.Status,
		&s.BillingType,
		&s.BillingAmount,
		&s.DayPassDate,
		&s.OverstayNotified,
		&s.DurationMinutes,
		&s.OperatorID,
		&s.Notes,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - scan session: %v", ErrScanRow, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// Complete закрывает сессию: статус completed, время выезда, сумма, длительность
func (r *Repository) Complete(ctx context.Context, id int64, exitTime time.Time, billingAmount float64, durationMinutes int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("parking_sessions").
		Set("status", domain.SessionStatusCompleted).
		Set("exit_time", exitTime).
		Set("billing_amount", billingAmount).
		Set("duration_minutes", durationMinutes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Complete - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Complete - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Complete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// FindOverstayCandidates получает активные сессии старше cutoff,
// по которым еще не было уведомления. Внутри транзакции блокирует
// строки (FOR UPDATE), чтобы параллельные sweep'ы не пересеклись
func (r *Repository) FindOverstayCandidates(ctx context.Context, cutoff time.Time) ([]*domain.ParkingSession, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(sessionColumns...).
		From("parking_sessions").
		Where(squirrel.Eq{"status": domain.SessionStatusActive}).
		Where(squirrel.Lt{"entry_time": cutoff}).
		Where(squirrel.Eq{"overstay_notified": false}).
		OrderBy("entry_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverstayCandidates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverstayCandidates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSessions(rows, "FindOverstayCandidates")
}

// MarkOverstay помечает сессии как overstay одним пакетным запросом
// Выставляет overstay_notified, защищающий от повторного срабатывания
func (r *Repository) MarkOverstay(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("parking_sessions").
		Set("status", domain.SessionStatusOverstay).
		Set("overstay_notified", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": ids}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkOverstay - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: MarkOverstay - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// ListOpen получает открытые сессии с данными ТС и слота для дашборда
// Сортировка: недавние заезды первыми
func (r *Repository) ListOpen(ctx context.Context) ([]*domain.ActiveSessionInfo, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"s.id",
		"s.number_plate",
		"v.vehicle_type",
		"p.slot_number",
		"p.floor",
		"s.entry_time",
		"s.status",
		"s.billing_type",
	).
		From("parking_sessions s").
		Join("vehicles v ON v.id = s.vehicle_id").
		Join("parking_slots p ON p.id = s.slot_id").
		Where(squirrel.Eq{"s.status": openStatusStrings()}).
		OrderBy("s.entry_time DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListOpen - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOpen - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	infos := make([]*domain.ActiveSessionInfo, 0)
	for rows.Next() {
		var info domain.ActiveSessionInfo
		err := rows.Scan(
			&info.SessionID,
			&info.NumberPlate,
			&info.VehicleType,
			&info.SlotNumber,
			&info.Floor,
			&info.EntryTime,
			&info.Status,
			&info.BillingType,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListOpen - scan row: %v", ErrScanRow, err)
		}
		infos = append(infos, &info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListOpen - rows error: %v", ErrScanRow, err)
	}

	return infos, nil
}

// Summarize агрегирует завершенные сессии за период по exit_time:
// общая выручка, количество сессий и разбивка по типам биллинга
// Средний чек считается на стороне сервиса (guard деления на ноль)
func (r *Repository) Summarize(ctx context.Context, startTime, endTime time.Time) (*domain.BillingSummary, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"COALESCE(SUM(billing_amount), 0) AS total_revenue",
		"COUNT(*) AS total_sessions",
		"COALESCE(SUM(billing_amount) FILTER (WHERE billing_type = 'HOURLY'), 0) AS hourly_revenue",
		"COUNT(*) FILTER (WHERE billing_type = 'HOURLY') AS hourly_sessions",
		"COALESCE(SUM(billing_amount) FILTER (WHERE billing_type = 'DAY_PASS'), 0) AS day_pass_revenue",
		"COUNT(*) FILTER (WHERE billing_type = 'DAY_PASS') AS day_pass_sessions",
	).
		From("parking_sessions").
		Where(squirrel.Eq{"status": domain.SessionStatusCompleted}).
		Where(squirrel.GtOrEq{"exit_time": startTime}).
		Where(squirrel.Lt{"exit_time": endTime}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Summarize - build select query: %v", ErrBuildQuery, err)
	}

	var summary domain.BillingSummary
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&summary.TotalRevenue,
		&summary.TotalSessions,
		&summary.Hourly.Revenue,
		&summary.Hourly.Sessions,
		&summary.DayPass.Revenue,
		&summary.DayPass.Sessions,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Summarize - scan summary: %v", ErrScanRow, err)
	}

	return &summary, nil
}

// ListCompleted получает страницу завершенных сессий за период,
// отсортированных по времени выезда (недавние первыми), с данными ТС и слота
func (r *Repository) ListCompleted(ctx context.Context, filter domain.BillingFilter) ([]*domain.CompletedTransaction, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"s.id",
		"s.number_plate",
		"v.vehicle_type",
		"p.slot_number",
		"s.billing_type",
		"s.billing_amount",
		"s.entry_time",
		"s.exit_time",
		"s.duration_minutes",
	).
		From("parking_sessions s").
		Join("vehicles v ON v.id = s.vehicle_id").
		Join("parking_slots p ON p.id = s.slot_id").
		Where(squirrel.Eq{"s.status": domain.SessionStatusCompleted}).
		Where(squirrel.GtOrEq{"s.exit_time": filter.StartTime}).
		Where(squirrel.Lt{"s.exit_time": filter.EndTime}).
		OrderBy("s.exit_time DESC").
		Offset(uint64(filter.Offset())).
		Limit(uint64(filter.Limit)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListCompleted - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListCompleted - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	transactions := make([]*domain.CompletedTransaction, 0)
	for rows.Next() {
		var t domain.CompletedTransaction
		err := rows.Scan(
			&t.SessionID,
			&t.NumberPlate,
			&t.VehicleType,
			&t.SlotNumber,
			&t.BillingType,
			&t.BillingAmount,
			&t.EntryTime,
			&t.ExitTime,
			&t.DurationMins,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListCompleted - scan row: %v", ErrScanRow, err)
		}
		transactions = append(transactions, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListCompleted - rows error: %v", ErrScanRow, err)
	}

	return transactions, nil
}

// scanSessions сканирует результаты запроса в слайс сессий
func (r *Repository) scanSessions(rows *sql.Rows, op string) ([]*domain.ParkingSession, error) {
	sessions := make([]*domain.ParkingSession, 0)

	for rows.Next() {
		var s domain.ParkingSession
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&s.ID,
			&s.VehicleID,
			&s.SlotID,
			&s.NumberPlate,
			&s.EntryTime,
			&s.ExitTime,
			&s.Status,
			&s.BillingType,
			&s.BillingAmount,
			&s.DayPassDate,
			&s.OverstayNotified,
			&s.DurationMinutes,
			&s.OperatorID,
			&s.Notes,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}

		s.CreatedAt = createdAt.Time
		s.UpdatedAt = updatedAt.Time

		sessions = append(sessions, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return sessions, nil
}

// openStatusStrings возвращает открытые статусы для squirrel.Eq (IN)
func openStatusStrings() []string {
	statuses := make([]string, len(domain.OpenSessionStatuses))
	for i, s := range domain.OpenSessionStatuses {
		statuses[i] = string(s)
	}
	return statuses
}
