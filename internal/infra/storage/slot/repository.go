package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
)

// Код ошибки PostgreSQL: нарушение уникального ограничения
const pqUniqueViolation = "23505"

// Repository репозиторий для работы с парковочными слотами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый слот
// Номер слота должен быть нормализован вызывающей стороной
func (r *Repository) Create(ctx context.Context, s *domain.ParkingSlot) (*domain.ParkingSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("parking_slots").
		Columns(
			"slot_number",
			"floor",
			"slot_type",
			"status",
			"has_charger",
			"is_accessible",
		).
		Values(
			s.SlotNumber,
			s.Floor,
			s.SlotType,
			s.Status,
			s.HasCharger,
			s.IsAccessible,
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
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return nil, ErrDuplicateSlotNumber
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// GetByID получает слот по ID
// Внутри транзакции блокирует строку (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ParkingSlot, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, "GetByID")
}

// GetBySlotNumber получает слот по номеру (формат FLOOR-NUMBER)
// Внутри транзакции блокирует строку (FOR UPDATE)
func (r *Repository) GetBySlotNumber(ctx context.Context, slotNumber string) (*domain.ParkingSlot, error) {
	return r.getOne(ctx, squirrel.Eq{"slot_number": slotNumber}, "GetBySlotNumber")
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq, op string) (*domain.ParkingSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"slot_number",
		"floor",
		"slot_type",
		"status",
		"has_charger",
		"is_accessible",
		"maintenance_reason",
		"maintenance_start_time",
		"created_at",
		"updated_at",
	).
		From("parking_slots").
		Where(where)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var s domain.ParkingSlot
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.SlotNumber,
		&s.Floor,
		&s.SlotType,
		&s.Status,
		&s.HasCharger,
		&s.IsAccessible,
		&s.MaintenanceReason,
		&s.MaintenanceStartTime,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan slot: %v", ErrScanRow, op, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// GetAvailableByTypes получает доступные слоты указанных типов
// Сортировка по этажу и номеру выполняется вызывающей стороной ("nearest slot")
// Внутри транзакции блокирует строки (FOR UPDATE), чтобы два параллельных
// check-in не разобрали один и тот же слот
func (r *Repository) GetAvailableByTypes(ctx context.Context, slotTypes []domain.SlotType) ([]*domain.ParkingSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	typeStrings := make([]string, len(slotTypes))
	for i, t := range slotTypes {
		typeStrings[i] = string(t)
	}

	selectBuilder := psqlbuilder.Select(
		"id",
		"slot_number",
		"floor",
		"slot_type",
		"status",
		"has_charger",
		"is_accessible",
		"maintenance_reason",
		"maintenance_start_time",
		"created_at",
		"updated_at",
	).
		From("parking_slots").
		Where(squirrel.Eq{"status": domain.SlotStatusAvailable}).
		Where(squirrel.Eq{"slot_type": typeStrings})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetAvailableByTypes - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAvailableByTypes - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows, "GetAvailableByTypes")
}

// ListAll получает все слоты, отсортированные по этажу и номеру
func (r *Repository) ListAll(ctx context.Context) ([]*domain.ParkingSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"slot_number",
		"floor",
		"slot_type",
		"status",
		"has_charger",
		"is_accessible",
		"maintenance_reason",
		"maintenance_start_time",
		"created_at",
		"updated_at",
	).
		From("parking_slots").
		OrderBy("floor ASC, slot_number ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows, "ListAll")
}

// UpdateStatus обновляет статус слота (occupied <-> available)
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.SlotStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("parking_slots").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// SetMaintenance переводит слот в режим обслуживания с указанием причины
func (r *Repository) SetMaintenance(ctx context.Context, id int64, reason string, startTime time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("parking_slots").
		Set("status", domain.SlotStatusMaintenance).
		Set("maintenance_reason", reason).
		Set("maintenance_start_time", startTime).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetMaintenance - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetMaintenance - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetMaintenance - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// ClearMaintenance возвращает слот из обслуживания в available
// Причина и время начала обслуживания очищаются
func (r *Repository) ClearMaintenance(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("parking_slots").
		Set("status", domain.SlotStatusAvailable).
		Set("maintenance_reason", nil).
		Set("maintenance_start_time", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ClearMaintenance - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: ClearMaintenance - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ClearMaintenance - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// CountByStatus получает счетчики слотов по статусам одним запросом
func (r *Repository) CountByStatus(ctx context.Context) (*domain.SlotCounts, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"COUNT(*) AS total",
		"COUNT(*) FILTER (WHERE status = 'AVAILABLE') AS available",
		"COUNT(*) FILTER (WHERE status = 'OCCUPIED') AS occupied",
		"COUNT(*) FILTER (WHERE status = 'MAINTENANCE') AS maintenance",
	).
		From("parking_slots").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - build select query: %v", ErrBuildQuery, err)
	}

	var counts domain.SlotCounts
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&counts.Total,
		&counts.Available,
		&counts.Occupied,
		&counts.Maintenance,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - scan counts: %v", ErrScanRow, err)
	}

	return &counts, nil
}

// scanSlots сканирует результаты запроса в слайс слотов
func (r *Repository) scanSlots(rows *sql.Rows, op string) ([]*domain.ParkingSlot, error) {
	slots := make([]*domain.ParkingSlot, 0)

	for rows.Next() {
		var s domain.ParkingSlot
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&s.ID,
			&s.SlotNumber,
			&s.Floor,
			&s.SlotType,
			&s.Status,
			&s.HasCharger,
			&s.IsAccessible,
			&s.MaintenanceReason,
			&s.MaintenanceStartTime,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}

		s.CreatedAt = createdAt.Time
		s.UpdatedAt = updatedAt.Time

		slots = append(slots, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return slots, nil
}
