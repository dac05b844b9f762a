package infra

import (
	"fmt"

	"pizzapos/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the idempotent SQL patches that GORM
// cannot express (partial indexes, CHECK constraints).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations applies AutoMigrate plus the schema patches. Exposed separately
// so integration tests can migrate a throwaway container database.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Empleado{},
		&model.MetodoPago{},
		&model.SesionCaja{},
		&model.MovimientoCaja{},
		&model.Venta{},
		&model.Compra{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot express.
// Each statement is guarded by an existence check so re-running on an
// already-patched schema is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		// At most one open session at a time. The service layer checks first,
		// but two concurrent opens can both pass the check; the partial unique
		// index makes the database the final arbiter.
		{"partial unique index: single open session", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'uniq_sesion_caja_abierta') THEN
    CREATE UNIQUE INDEX uniq_sesion_caja_abierta
        ON sesiones_caja ((estado))
        WHERE estado = 'abierta';
  END IF;
END $$`},
		// Movement amounts are strictly positive; the sign lives in tipo.
		{"check constraint: positive movement amount", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_movimientos_caja_monto_positivo') THEN
    ALTER TABLE movimientos_caja
      ADD CONSTRAINT chk_movimientos_caja_monto_positivo CHECK (monto > 0);
  END IF;
END $$`},
		// The ledger query pattern is "all movements of one session, oldest first".
		{"index: movements by session and time", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_movimientos_caja_sesion_created') THEN
    CREATE INDEX idx_movimientos_caja_sesion_created
        ON movimientos_caja (sesion_caja_id, created_at);
  END IF;
END $$`},
		// Payment method names are matched case-insensitively at registration.
		{"unique index: metodo pago lower(nombre)", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'uniq_metodos_pago_nombre_lower') THEN
    CREATE UNIQUE INDEX uniq_metodos_pago_nombre_lower
        ON metodos_pago (LOWER(nombre));
  END IF;
END $$`},
	}

	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("schema patch %q: %w", p.descr, err)
		}
	}
	return nil
}
