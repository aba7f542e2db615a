package check

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"time"

	checkerrors "github.com/juanesscobar/taskok/internal/check/errors"
	"github.com/juanesscobar/taskok/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=check_service.go -destination=mock/check_service_mock.go -package=mock
type Service interface {
	CheckIn(ctx context.Context, userID string) (CheckResponse, error)
	CheckOut(ctx context.Context, userID string) (CheckResponse, error)
	History(ctx context.Context, userID string) ([]CheckResponse, error)
	GetAll(ctx context.Context) ([]CheckResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("check.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("check.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) CheckIn(ctx context.Context, userID string) (CheckResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return CheckResponse{}, checkerrors.ErrInvalidUserID
	}

	rid := contextutil.GetRequestID(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return CheckResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := time.Now()
	dayKey := now.Format(DayKeyLayout)

	existing, err := qtx.FindByUserAndDate(ctx, userID, dayKey)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return CheckResponse{}, err
	}
	if err == nil && existing != nil {
		return CheckResponse{}, checkerrors.ErrAlreadyCheckedIn
	}

	row := &Check{
		ID:        uuid.New(),
		UserID:    uid,
		CheckDate: dayKey,
		CheckIn:   now,
	}

	if err := qtx.Create(ctx, row); err != nil {
		// Two concurrent check-ins race on the query above; the unique index
		// on (user_id, check_date) decides the loser.
		return CheckResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return CheckResponse{}, err
	}

	s.logger.Info("check-in recorded",
		zap.String("request_id", rid),
		zap.String("user_id", userID),
		zap.String("date", dayKey),
	)
	return mapToResponse(*row), nil
}

func (s *service) CheckOut(ctx context.Context, userID string) (CheckResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return CheckResponse{}, checkerrors.ErrInvalidUserID
	}

	rid := contextutil.GetRequestID(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return CheckResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := time.Now()
	dayKey := now.Format(DayKeyLayout)

	row, err := qtx.FindByUserAndDate(ctx, userID, dayKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CheckResponse{}, checkerrors.ErrNoCheckIn
		}
		return CheckResponse{}, err
	}

	// A repeated check-out is not rejected: it overwrites the previous one
	// and recomputes worked hours from the original check-in.
	row.CheckOut = &now
	hours := roundHours(now.Sub(row.CheckIn))
	row.WorkedHours = &hours

	if err := qtx.Update(ctx, row); err != nil {
		return CheckResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return CheckResponse{}, err
	}

	s.logger.Info("check-out recorded",
		zap.String("request_id", rid),
		zap.String("user_id", userID),
		zap.String("date", dayKey),
		zap.Float64("worked_hours", hours),
	)
	return mapToResponse(*row), nil
}

func (s *service) History(ctx context.Context, userID string) ([]CheckResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, checkerrors.ErrInvalidUserID
	}

	rows, err := s.repo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetAll(ctx context.Context) ([]CheckResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

// roundHours converts an elapsed duration to hours with 2-decimal precision.
func roundHours(d time.Duration) float64 {
	hours := float64(d.Milliseconds()) / 3600000
	return math.Round(hours*100) / 100
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return checkerrors.ErrNoCheckIn
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_checks_user_date" {
			return checkerrors.ErrAlreadyCheckedIn
		}
	}

	return err
}
