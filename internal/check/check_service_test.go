package check

import (
	"context"
	"database/sql"
	"testing"
	"time"

	checkerrors "github.com/juanesscobar/taskok/internal/check/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	withTxFn            func(tx *sql.Tx) Repository
	createFn            func(ctx context.Context, c *Check) error
	findByUserAndDateFn func(ctx context.Context, userID, dayKey string) (*Check, error)
	findAllByUserFn     func(ctx context.Context, userID string) ([]Check, error)
	findAllFn           func(ctx context.Context) ([]Check, error)
	updateFn            func(ctx context.Context, c *Check) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository          { return f.withTxFn(tx) }
func (f *fakeRepo) Create(ctx context.Context, c *Check) error { return f.createFn(ctx, c) }
func (f *fakeRepo) FindByUserAndDate(ctx context.Context, userID, dayKey string) (*Check, error) {
	return f.findByUserAndDateFn(ctx, userID, dayKey)
}
func (f *fakeRepo) FindAllByUser(ctx context.Context, userID string) ([]Check, error) {
	return f.findAllByUserFn(ctx, userID)
}
func (f *fakeRepo) FindAll(ctx context.Context) ([]Check, error) { return f.findAllFn(ctx) }
func (f *fakeRepo) Update(ctx context.Context, c *Check) error   { return f.updateFn(ctx, c) }

func TestService_CheckInAndCheckOut(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	userID := uuid.New().String()
	ctx := context.Background()

	var saved Check
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.createFn = func(ctx context.Context, c *Check) error { saved = *c; return nil }
	repo.updateFn = func(ctx context.Context, c *Check) error { saved = *c; return nil }
	repo.findByUserAndDateFn = func(ctx context.Context, userID, dayKey string) (*Check, error) {
		if saved.ID == uuid.Nil {
			return nil, gorm.ErrRecordNotFound
		}
		return &saved, nil
	}

	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()
	inResp, err := svc.CheckIn(ctx, userID)
	assert.NoError(t, err)
	assert.NotEmpty(t, inResp.ID)
	assert.Equal(t, time.Now().Format(DayKeyLayout), inResp.Date)
	assert.Nil(t, inResp.CheckOut)
	assert.Nil(t, inResp.WorkedHours)

	mock.ExpectBegin()
	mock.ExpectCommit()
	outResp, err := svc.CheckOut(ctx, userID)
	assert.NoError(t, err)
	assert.NotNil(t, outResp.CheckOut)
	assert.NotNil(t, outResp.WorkedHours)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_CheckIn_Duplicate(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	userID := uuid.New().String()

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByUserAndDateFn = func(ctx context.Context, userID, dayKey string) (*Check, error) {
		return &Check{ID: uuid.New()}, nil
	}

	svc := NewService(db, repo)
	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.CheckIn(context.Background(), userID)
	assert.ErrorIs(t, err, checkerrors.ErrAlreadyCheckedIn)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_CheckOut_NoCheckIn(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByUserAndDateFn = func(ctx context.Context, userID, dayKey string) (*Check, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc := NewService(db, repo)
	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.CheckOut(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, checkerrors.ErrNoCheckIn)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_CheckOut_WorkedHours(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	userID := uuid.New()
	// Check-in happened 1.5 hours ago.
	existing := Check{
		ID:        uuid.New(),
		UserID:    userID,
		CheckDate: time.Now().Format(DayKeyLayout),
		CheckIn:   time.Now().Add(-90 * time.Minute),
	}

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByUserAndDateFn = func(ctx context.Context, userID, dayKey string) (*Check, error) {
		c := existing
		return &c, nil
	}
	repo.updateFn = func(ctx context.Context, c *Check) error { return nil }

	svc := NewService(db, repo)
	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.CheckOut(context.Background(), userID.String())
	assert.NoError(t, err)
	assert.NotNil(t, resp.WorkedHours)
	assert.InDelta(t, 1.5, *resp.WorkedHours, 0.01)
}

func TestService_CheckOut_Repeated_RecomputesFromOriginalCheckIn(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	userID := uuid.New()
	stored := Check{
		ID:        uuid.New(),
		UserID:    userID,
		CheckDate: time.Now().Format(DayKeyLayout),
		CheckIn:   time.Now().Add(-time.Hour),
	}

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByUserAndDateFn = func(ctx context.Context, userID, dayKey string) (*Check, error) {
		c := stored
		return &c, nil
	}
	repo.updateFn = func(ctx context.Context, c *Check) error { stored = *c; return nil }

	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()
	first, err := svc.CheckOut(context.Background(), userID.String())
	assert.NoError(t, err)
	assert.NotNil(t, first.WorkedHours)

	// A second check-out is not rejected: it overwrites the previous one,
	// still measured from the original check-in.
	mock.ExpectBegin()
	mock.ExpectCommit()
	second, err := svc.CheckOut(context.Background(), userID.String())
	assert.NoError(t, err)
	assert.NotNil(t, second.WorkedHours)
	assert.GreaterOrEqual(t, *second.WorkedHours, *first.WorkedHours)
	assert.InDelta(t, 1.0, *second.WorkedHours, 0.01)
}

func TestService_History(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	userID := uuid.New()
	repo := &fakeRepo{}
	repo.findAllByUserFn = func(ctx context.Context, uid string) ([]Check, error) {
		assert.Equal(t, userID.String(), uid)
		return []Check{
			{ID: uuid.New(), UserID: userID, CheckDate: "2026-08-29", CheckIn: time.Now()},
			{ID: uuid.New(), UserID: userID, CheckDate: "2026-08-28", CheckIn: time.Now().Add(-24 * time.Hour)},
		}, nil
	}

	svc := NewService(db, repo)
	rows, err := svc.History(context.Background(), userID.String())
	assert.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestRoundHours(t *testing.T) {
	assert.Equal(t, 1.5, roundHours(5400000*time.Millisecond))
	assert.Equal(t, 1.67, roundHours(100*time.Minute))
	assert.Equal(t, 0.0, roundHours(time.Second))
	assert.Equal(t, 8.0, roundHours(8*time.Hour))
}

func TestMapRepositoryError_UniqueViolation(t *testing.T) {
	err := mapRepositoryError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_checks_user_date"})
	assert.ErrorIs(t, err, checkerrors.ErrAlreadyCheckedIn)
}
