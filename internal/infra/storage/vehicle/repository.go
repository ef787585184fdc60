package vehicle

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
)

// Код ошибки PostgreSQL: нарушение уникального ограничения
const pqUniqueViolation = "23505"

// Repository репозиторий для работы с транспортными средствами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория ТС
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое ТС
// Госномер должен быть нормализован вызывающей стороной
// Если в контексте есть активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("vehicles").
		Columns("number_plate", "vehicle_type").
		Values(v.NumberPlate, v.VehicleType).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&v.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return nil, ErrDuplicatePlate
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	v.CreatedAt = createdAt.Time
	v.UpdatedAt = updatedAt.Time

	return v, nil
}

// GetByPlate получает ТС по нормализованному госномеру
// Внутри транзакции блокирует строку (FOR UPDATE)
func (r *Repository) GetByPlate(ctx context.Context, numberPlate string) (*domain.Vehicle, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"number_plate",
		"vehicle_type",
		"created_at",
		"updated_at",
	).
		From("vehicles").
		Where(squirrel.Eq{"number_plate": numberPlate})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPlate - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanVehicle(executor.QueryRowContext(ctx, query, args...), "GetByPlate")
}

// GetByID получает ТС по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"number_plate",
		"vehicle_type",
		"created_at",
		"updated_at",
	).
		From("vehicles").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanVehicle(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// scanVehicle сканирует одну строку в domain.Vehicle
func (r *Repository) scanVehicle(row *sql.Row, op string) (*domain.Vehicle, error) {
	var v domain.Vehicle
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&v.ID,
		&v.NumberPlate,
		&v.VehicleType,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrVehicleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan vehicle: %v", ErrScanRow, op, err)
	}

	v.CreatedAt = createdAt.Time
	v.UpdatedAt = updatedAt.Time

	return &v, nil
}
