package task

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/juanesscobar/taskok/internal/events"
	"github.com/juanesscobar/taskok/internal/messaging/kafka"
	"github.com/juanesscobar/taskok/internal/shared/contextutil"
	taskerrors "github.com/juanesscobar/taskok/internal/task/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const summaryKeyPrefix = "tasks:summary:"

func summaryKey(userID string) string {
	return summaryKeyPrefix + userID
}

//go:generate mockgen -source=task_service.go -destination=mock/task_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, userID string, req CreateTaskRequest) (TaskResponse, error)
	List(ctx context.Context, userID, status string) ([]TaskResponse, error)
	GetByID(ctx context.Context, userID, id string) (TaskResponse, error)
	Update(ctx context.Context, userID, id string, req UpdateTaskRequest) (TaskResponse, error)
	UpdateStatus(ctx context.Context, userID, id, status string) (TaskResponse, error)
	Delete(ctx context.Context, userID, id string) error
	Summary(ctx context.Context, userID string) (SummaryResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, rdb, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("task.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("task.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outboxRepo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, userID string, req CreateTaskRequest) (TaskResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return TaskResponse{}, taskerrors.ErrInvalidUserID
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return TaskResponse{}, taskerrors.ErrTitleRequired
	}

	// Creation coerces an unknown status to the default instead of
	// rejecting it; updates are stricter. Kept as-is on purpose.
	status := StatusPending
	if ValidStatus(req.Status) {
		status = req.Status
	}

	rid := contextutil.GetRequestID(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TaskResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	row := &Task{
		ID:          uuid.New(),
		UserID:      uid,
		Title:       title,
		Description: trimPtr(req.Description),
		Link:        trimPtr(req.Link),
		Status:      status,
		CreatedAt:   time.Now(),
	}

	if err := qtx.Create(ctx, row); err != nil {
		s.logger.Error("create task persist failed", zap.String("request_id", rid), zap.Error(err))
		return TaskResponse{}, err
	}

	if row.Status == StatusCompleted {
		if err := s.queueCompletedEvent(ctx, tx, rid, row); err != nil {
			return TaskResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return TaskResponse{}, err
	}

	s.invalidateSummary(ctx, userID)
	s.logger.Info("task created",
		zap.String("request_id", rid),
		zap.String("task_id", row.ID.String()),
		zap.String("status", row.Status),
	)
	return mapToResponse(*row), nil
}

func (s *service) List(ctx context.Context, userID, status string) ([]TaskResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, taskerrors.ErrInvalidUserID
	}

	// Unknown filter values are ignored rather than rejected, so the list
	// endpoint never 400s on a stale query string.
	if !ValidStatus(status) {
		status = ""
	}

	rows, err := s.repo.FindAllByUser(ctx, userID, status)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetByID(ctx context.Context, userID, id string) (TaskResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return TaskResponse{}, taskerrors.ErrTaskNotFound
	}

	row, err := s.repo.FindByIDAndUser(ctx, userID, id)
	if err != nil {
		return TaskResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*row), nil
}

func (s *service) Update(ctx context.Context, userID, id string, req UpdateTaskRequest) (TaskResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return TaskResponse{}, taskerrors.ErrTaskNotFound
	}

	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return TaskResponse{}, taskerrors.ErrTitleRequired
	}
	if req.Status != nil && !ValidStatus(*req.Status) {
		return TaskResponse{}, taskerrors.ErrInvalidStatus
	}

	rid := contextutil.GetRequestID(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TaskResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	row, err := qtx.FindByIDAndUser(ctx, userID, id)
	if err != nil {
		return TaskResponse{}, mapRepositoryError(err)
	}

	prevStatus := row.Status

	if req.Title != nil {
		row.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		row.Description = trimPtr(req.Description)
	}
	if req.Link != nil {
		row.Link = trimPtr(req.Link)
	}
	if req.Status != nil {
		row.Status = *req.Status
	}

	if err := qtx.Update(ctx, row); err != nil {
		s.logger.Error("update task persist failed", zap.String("request_id", rid), zap.Error(err))
		return TaskResponse{}, err
	}

	if prevStatus != StatusCompleted && row.Status == StatusCompleted {
		if err := s.queueCompletedEvent(ctx, tx, rid, row); err != nil {
			return TaskResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return TaskResponse{}, err
	}

	s.invalidateSummary(ctx, userID)
	return mapToResponse(*row), nil
}

func (s *service) UpdateStatus(ctx context.Context, userID, id, status string) (TaskResponse, error) {
	if !ValidStatus(status) {
		return TaskResponse{}, taskerrors.ErrInvalidStatus
	}
	return s.Update(ctx, userID, id, UpdateTaskRequest{Status: &status})
}

func (s *service) Delete(ctx context.Context, userID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return taskerrors.ErrTaskNotFound
	}

	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return mapRepositoryError(err)
	}

	s.invalidateSummary(ctx, userID)
	return nil
}

func (s *service) Summary(ctx context.Context, userID string) (SummaryResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return SummaryResponse{}, taskerrors.ErrInvalidUserID
	}

	cacheKey := summaryKey(userID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp SummaryResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// Board refreshes arrive in bursts; singleflight keeps one count query
	// in flight per user.
	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		counts, err := s.repo.CountByStatus(ctx, userID)
		if err != nil {
			return nil, err
		}

		resp := SummaryResponse{
			Pending:    counts[StatusPending],
			InProgress: counts[StatusInProgress],
			Completed:  counts[StatusCompleted],
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, 30*time.Second)
			}
		}

		return resp, nil
	})
	if err != nil {
		return SummaryResponse{}, err
	}

	return v.(SummaryResponse), nil
}

func (s *service) queueCompletedEvent(ctx context.Context, tx *sql.Tx, rid string, row *Task) error {
	if s.outbox == nil {
		return nil
	}

	event := events.TaskCompletedEvent{
		EventType:  "task_completed",
		RequestID:  rid,
		TaskID:     row.ID.String(),
		UserID:     row.UserID.String(),
		Title:      row.Title,
		OccurredAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	outboxRepo := s.outbox.WithTx(tx)
	if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "task",
		AggregateID:   row.ID.String(),
		EventType:     event.EventType,
		Topic:         events.TaskLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("task completed outbox persist failed",
			zap.String("task_id", row.ID.String()),
			zap.Error(err),
		)
		return err
	}

	return nil
}

func (s *service) invalidateSummary(ctx context.Context, userID string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, summaryKey(userID)).Err(); err != nil {
		s.logger.Error("failed to invalidate task summary cache",
			zap.Error(err),
			zap.String("key", summaryKey(userID)),
		)
	}
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return taskerrors.ErrTaskNotFound
	}
	return err
}
