package postgres

import (
	"context"
	"log/slog"

	"github.com/lexicard/lexicard-api/internal/domain"
	"github.com/lexicard/lexicard-api/internal/store"
)

const deviceColumns = `id, device_id, user_id, key_hash, is_active, created_at, updated_at`

// PostgresDeviceStore implements store.DeviceStore.
type PostgresDeviceStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresDeviceStore creates a device store on db.
func NewPostgresDeviceStore(db store.DBTX, logger *slog.Logger) *PostgresDeviceStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresDeviceStore{
		db:     db,
		logger: logger.With(slog.String("component", "device_store")),
	}
}

var _ store.DeviceStore = (*PostgresDeviceStore)(nil)

// Upsert implements store.DeviceStore. Re-pairing a known device moves it to
// the new owner and replaces its key.
func (s *PostgresDeviceStore) Upsert(ctx context.Context, d *domain.Device) error {
	if err := d.Validate(); err != nil {
		return err
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO devices (`+deviceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (device_id) DO UPDATE SET
			user_id = EXCLUDED.user_id,
			key_hash = EXCLUDED.key_hash,
			is_active = EXCLUDED.is_active,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at`,
		d.ID, d.DeviceID, d.UserID, d.KeyHash, d.IsActive, d.CreatedAt, d.UpdatedAt,
	)
	if err := row.Scan(&d.ID, &d.CreatedAt); err != nil {
		s.logger.Error("failed to upsert device",
			slog.String("device_id", d.DeviceID),
			slog.String("error", err.Error()))
		return MapError(err, nil)
	}
	return nil
}

func (s *PostgresDeviceStore) getOne(ctx context.Context, where string, arg any) (*domain.Device, error) {
	var d domain.Device
	err := s.db.QueryRowContext(ctx, `SELECT `+deviceColumns+` FROM devices WHERE `+where, arg).
		Scan(&d.ID, &d.DeviceID, &d.UserID, &d.KeyHash, &d.IsActive, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, MapError(err, store.ErrDeviceNotFound)
	}
	return &d, nil
}

// GetByDeviceID implements store.DeviceStore.
func (s *PostgresDeviceStore) GetByDeviceID(ctx context.Context, deviceID string) (*domain.Device, error) {
	return s.getOne(ctx, "device_id = $1", deviceID)
}

// GetByKeyHash implements store.DeviceStore.
func (s *PostgresDeviceStore) GetByKeyHash(ctx context.Context, keyHash string) (*domain.Device, error) {
	return s.getOne(ctx, "key_hash = $1", keyHash)
}

// Delete implements store.DeviceStore.
func (s *PostgresDeviceStore) Delete(ctx context.Context, deviceID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM devices WHERE device_id = $1`, deviceID)
	if err != nil {
		return MapError(err, store.ErrDeviceNotFound)
	}
	return CheckRowsAffected(result, store.ErrDeviceNotFound)
}
