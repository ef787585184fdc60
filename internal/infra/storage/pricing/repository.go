package pricing

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
)

// Repository репозиторий версионированных тарифных конфигураций
// Слябы хранятся в JSONB-колонке hourly_slabs
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория тарифов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// hourlySlabRecord формат одного сляба в JSONB
type hourlySlabRecord struct {
	MinHours int     `json:"minHours"`
	MaxHours int     `json:"maxHours"`
	Price    float64 `json:"price"`
}

// Create создает новую версию тарифной конфигурации
func (r *Repository) Create(ctx context.Context, cfg *domain.PricingConfig) (*domain.PricingConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	slabs, err := encodeSlabs(cfg.HourlySlabs)
	if err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Insert("pricing_configs").
		Columns(
			"vehicle_type",
			"billing_type",
			"is_active",
			"hourly_slabs",
			"day_pass_price",
			"effective_from",
			"effective_to",
		).
		Values(
			cfg.VehicleType,
			cfg.BillingType,
			cfg.IsActive,
			slabs,
			cfg.DayPassPrice,
			cfg.EffectiveFrom,
			cfg.EffectiveTo,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return cfg, nil
}

// ListEffective получает конфигурации, действующие на указанный момент
// Для каждой пары (vehicle_type, billing_type) берется самая свежая
// по effective_from версия
func (r *Repository) ListEffective(ctx context.Context, at time.Time) ([]*domain.PricingConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"DISTINCT ON (vehicle_type, billing_type) id",
		"vehicle_type",
		"billing_type",
		"is_active",
		"hourly_slabs",
		"day_pass_price",
		"effective_from",
		"effective_to",
		"created_at",
		"updated_at",
	).
		From("pricing_configs").
		Where(squirrel.Eq{"is_active": true}).
		Where(squirrel.LtOrEq{"effective_from": at}).
		Where(squirrel.Or{
			squirrel.Eq{"effective_to": nil},
			squirrel.GtOrEq{"effective_to": at},
		}).
		OrderBy("vehicle_type", "billing_type", "effective_from DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListEffective - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListEffective - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	configs := make([]*domain.PricingConfig, 0)
	for rows.Next() {
		cfg, err := scanConfig(rows)
		if err != nil {
			return nil, err
		}
		configs = append(configs, cfg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListEffective - rows error: %v", ErrScanRow, err)
	}

	return configs, nil
}

func scanConfig(rows *sql.Rows) (*domain.PricingConfig, error) {
	var cfg domain.PricingConfig
	var slabsRaw []byte
	var createdAt, updatedAt sql.NullTime

	err := rows.Scan(
		&cfg.ID,
		&cfg.VehicleType,
		&cfg.BillingType,
		&cfg.IsActive,
		&slabsRaw,
		&cfg.DayPassPrice,
		&cfg.EffectiveFrom,
		&cfg.EffectiveTo,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: scanConfig - scan row: %v", ErrScanRow, err)
	}

	if len(slabsRaw) > 0 {
		var records []hourlySlabRecord
		if err := json.Unmarshal(slabsRaw, &records); err != nil {
			return nil, fmt.Errorf("%w: scanConfig - decode hourly slabs: %v", ErrScanRow, err)
		}
		cfg.HourlySlabs = make([]domain.HourlySlab, len(records))
		for i, rec := range records {
			cfg.HourlySlabs[i] = domain.HourlySlab{
				MinHours: rec.MinHours,
				MaxHours: rec.MaxHours,
				Price:    rec.Price,
			}
		}
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return &cfg, nil
}

func encodeSlabs(slabs []domain.HourlySlab) ([]byte, error) {
	if len(slabs) == 0 {
		return nil, nil
	}

	records := make([]hourlySlabRecord, len(slabs))
	for i, s := range slabs {
		records[i] = hourlySlabRecord{
			MinHours: s.MinHours,
			MaxHours: s.MaxHours,
			Price:    s.Price,
		}
	}

	raw, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncodeSlabs, err)
	}
	return raw, nil
}
