package employee

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, empl *Employee) error
	FindAll(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Employee, error)
	FindByEmail(ctx context.Context, email string) (*Employee, error)
	Update(ctx context.Context, empl *Employee) error
	Delete(ctx context.Context, id uuid.UUID) error
	Transaction(ctx context.Context, fn func(txRepo Repository, tx *sql.Tx) error) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Create assigns the identifier: id generation belongs to the store, the
// caller hands in an entity without one.
func (r *repository) Create(ctx context.Context, empl *Employee) error {
	if empl.ID == uuid.Nil {
		empl.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(empl).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var empls []Employee
	err := r.db.WithContext(ctx).Find(&empls).Error
	return empls, err
}

// FindByID returns (nil, nil) when no record exists: a lookup miss is
// data for the caller to act on, not a failure.
func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).First(&empl, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).First(&empl, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Save(empl).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&Employee{}, "id = ?", id).Error
}

// Transaction runs fn against a transaction-scoped repository. The raw
// sql.Tx is handed out as well so other tables, like the outbox, can join
// the same commit. fn returning an error rolls everything back.
func (r *repository) Transaction(ctx context.Context, fn func(txRepo Repository, tx *sql.Tx) error) error {
	return r.db.WithContext(ctx).Transaction(func(gtx *gorm.DB) error {
		tx, ok := gtx.Statement.ConnPool.(*sql.Tx)
		if !ok {
			return errors.New("store connection does not expose a sql transaction")
		}
		return fn(&repository{db: gtx}, tx)
	})
}
