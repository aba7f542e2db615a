package check

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=check_repo.go -destination=mock/check_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, c *Check) error
	FindByUserAndDate(ctx context.Context, userID, dayKey string) (*Check, error)
	FindAllByUser(ctx context.Context, userID string) ([]Check, error)
	FindAll(ctx context.Context) ([]Check, error)
	Update(ctx context.Context, c *Check) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, c *Check) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) FindByUserAndDate(ctx context.Context, userID, dayKey string) (*Check, error) {
	var c Check
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("check_date = ?", dayKey).
		First(&c).Error
	return &c, err
}

func (r *repository) FindAllByUser(ctx context.Context, userID string) ([]Check, error) {
	var rows []Check
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("check_date DESC, check_in DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAll(ctx context.Context) ([]Check, error) {
	var rows []Check
	err := r.db.WithContext(ctx).
		Order("check_date DESC, check_in DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, c *Check) error {
	return r.db.WithContext(ctx).Save(c).Error
}
