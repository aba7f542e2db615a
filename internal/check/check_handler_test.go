package check_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/juanesscobar/taskok/internal/check"
	checkerrors "github.com/juanesscobar/taskok/internal/check/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	checkInFn  func(ctx context.Context, userID string) (check.CheckResponse, error)
	checkOutFn func(ctx context.Context, userID string) (check.CheckResponse, error)
	historyFn  func(ctx context.Context, userID string) ([]check.CheckResponse, error)
	getAllFn   func(ctx context.Context) ([]check.CheckResponse, error)
}

func (f *fakeService) CheckIn(ctx context.Context, userID string) (check.CheckResponse, error) {
	return f.checkInFn(ctx, userID)
}
func (f *fakeService) CheckOut(ctx context.Context, userID string) (check.CheckResponse, error) {
	return f.checkOutFn(ctx, userID)
}
func (f *fakeService) History(ctx context.Context, userID string) ([]check.CheckResponse, error) {
	return f.historyFn(ctx, userID)
}
func (f *fakeService) GetAll(ctx context.Context) ([]check.CheckResponse, error) {
	return f.getAllFn(ctx)
}

func TestHandler_CheckIn(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New().String()

	svc := &fakeService{
		checkInFn: func(ctx context.Context, uid string) (check.CheckResponse, error) {
			assert.Equal(t, userID, uid)
			return check.CheckResponse{ID: uuid.New().String(), UserID: uid, Date: "2026-08-29"}, nil
		},
	}
	h := check.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id", userID)
	c.Request = httptest.NewRequest(http.MethodPost, "/check/in", nil)
	h.CheckIn(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID)
}

func TestHandler_CheckIn_Duplicate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		checkInFn: func(ctx context.Context, uid string) (check.CheckResponse, error) {
			return check.CheckResponse{}, checkerrors.ErrAlreadyCheckedIn
		},
	}
	h := check.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id", uuid.New().String())
	c.Request = httptest.NewRequest(http.MethodPost, "/check/in", nil)
	h.CheckIn(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Already checked in today")
}

func TestHandler_CheckOut_NoCheckIn(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		checkOutFn: func(ctx context.Context, uid string) (check.CheckResponse, error) {
			return check.CheckResponse{}, checkerrors.ErrNoCheckIn
		},
	}
	h := check.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id", uuid.New().String())
	c.Request = httptest.NewRequest(http.MethodPost, "/check/out", nil)
	h.CheckOut(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_History(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New().String()

	svc := &fakeService{
		historyFn: func(ctx context.Context, uid string) ([]check.CheckResponse, error) {
			return []check.CheckResponse{
				{ID: uuid.New().String(), UserID: uid, Date: "2026-08-29"},
				{ID: uuid.New().String(), UserID: uid, Date: "2026-08-28"},
			}, nil
		},
	}
	h := check.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id", userID)
	c.Request = httptest.NewRequest(http.MethodGet, "/check/history", nil)
	h.History(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "2026-08-28")
}
