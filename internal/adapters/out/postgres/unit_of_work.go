// Package postgres provides the GORM-based Unit of Work tying the ledger,
// batch, and directory repositories to one database transaction.
//
// Each business operation gets a fresh unit of work from the factory:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	if err := uow.ScanEventRepository().Add(ctx, event); err != nil {
//	    return err
//	}
//	if err := uow.OrderDirectory().UpdateLifecycleStatus(ctx, orderID, status); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Rollback after a successful commit returns gorm.ErrInvalidTransaction and
// is safe to ignore, which keeps the deferred-rollback pattern above simple.
// Instances are not safe for concurrent use; concurrent operations take
// their own unit of work.
package postgres

import (
	"context"

	"shopfloor/internal/adapters/out/postgres/batchrepo"
	"shopfloor/internal/adapters/out/postgres/directoryrepo"
	"shopfloor/internal/adapters/out/postgres/scaneventrepo"
	"shopfloor/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one GORM
// connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work
// instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork with its own transaction state.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork coordinates one database transaction across the ledger,
// batch, and directory repositories.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin starts a new database transaction. Calling Begin again on an
// instance with an open transaction is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		return uow.tx.Error
	}

	return nil
}

// Commit finalizes the current transaction.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the current transaction.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// ScanEventRepository returns a ledger repository bound to the current
// transaction, or to the main connection when no transaction is open.
func (uow *GormUnitOfWork) ScanEventRepository() ports.ScanEventRepository {
	return scaneventrepo.NewGormScanEventRepository(uow.conn())
}

// BatchRepository returns a batch repository bound to the current
// transaction.
func (uow *GormUnitOfWork) BatchRepository() ports.BatchRepository {
	return batchrepo.NewGormBatchRepository(uow.conn())
}

// OrderDirectory returns a directory adapter bound to the current
// transaction, so lifecycle write-backs commit atomically with ledger
// appends.
func (uow *GormUnitOfWork) OrderDirectory() ports.OrderDirectory {
	return directoryrepo.NewGormOrderDirectory(uow.conn())
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
