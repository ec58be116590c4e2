package api

import (
	"context"
	"io"
	"time"

	"github.com/AleXx313/shareit/internal/config"
	"github.com/AleXx313/shareit/internal/export"
	"github.com/AleXx313/shareit/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
)

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) Create(ctx context.Context, user *models.User) (*models.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserService) Update(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserService) List(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *mockUserService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockItemService struct {
	mock.Mock
}

func (m *mockItemService) Create(ctx context.Context, ownerID int64, item *models.Item) (*models.Item, error) {
	args := m.Called(ctx, ownerID, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}

func (m *mockItemService) Update(ctx context.Context, ownerID, itemID int64, patch models.ItemPatch) (*models.Item, error) {
	args := m.Called(ctx, ownerID, itemID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}

func (m *mockItemService) GetByID(ctx context.Context, itemID, viewerID int64) (*models.ItemSnapshot, error) {
	args := m.Called(ctx, itemID, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ItemSnapshot), args.Error(1)
}

func (m *mockItemService) ListByOwner(ctx context.Context, ownerID int64, from, size int) ([]models.ItemSnapshot, error) {
	args := m.Called(ctx, ownerID, from, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ItemSnapshot), args.Error(1)
}

func (m *mockItemService) Search(ctx context.Context, text string, from, size int) ([]models.Item, error) {
	args := m.Called(ctx, text, from, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Item), args.Error(1)
}

func (m *mockItemService) SaveComment(ctx context.Context, itemID, authorID int64, text string) (*models.Comment, error) {
	args := m.Called(ctx, itemID, authorID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

type mockBookingService struct {
	mock.Mock
}

func (m *mockBookingService) Create(ctx context.Context, bookerID, itemID int64, start, end time.Time) (*models.Booking, error) {
	args := m.Called(ctx, bookerID, itemID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *mockBookingService) Decide(ctx context.Context, bookingID, actingUserID int64, approve bool) (*models.Booking, error) {
	args := m.Called(ctx, bookingID, actingUserID, approve)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *mockBookingService) GetByID(ctx context.Context, bookingID, requestingUserID int64) (*models.Booking, error) {
	args := m.Called(ctx, bookingID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *mockBookingService) ListByBooker(ctx context.Context, userID int64, state string, from, size int) ([]models.Booking, error) {
	args := m.Called(ctx, userID, state, from, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *mockBookingService) ListByOwner(ctx context.Context, userID int64, state string, from, size int) ([]models.Booking, error) {
	args := m.Called(ctx, userID, state, from, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}

type mockRequestService struct {
	mock.Mock
}

func (m *mockRequestService) Create(ctx context.Context, requesterID int64, description string) (*models.ItemRequest, error) {
	args := m.Called(ctx, requesterID, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ItemRequest), args.Error(1)
}

func (m *mockRequestService) ListOwn(ctx context.Context, requesterID int64) ([]models.ItemRequest, error) {
	args := m.Called(ctx, requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ItemRequest), args.Error(1)
}

func (m *mockRequestService) ListOthers(ctx context.Context, viewerID int64, from, size int) ([]models.ItemRequest, error) {
	args := m.Called(ctx, viewerID, from, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ItemRequest), args.Error(1)
}

func (m *mockRequestService) GetByID(ctx context.Context, requestID, viewerID int64) (*models.ItemRequest, error) {
	args := m.Called(ctx, requestID, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ItemRequest), args.Error(1)
}

type testEnv struct {
	users    *mockUserService
	items    *mockItemService
	bookings *mockBookingService
	requests *mockRequestService
	router   *gin.Engine
}

func newTestEnv() *testEnv {
	gin.SetMode(gin.TestMode)
	logger := zerolog.New(io.Discard)

	env := &testEnv{
		users:    new(mockUserService),
		items:    new(mockItemService),
		bookings: new(mockBookingService),
		requests: new(mockRequestService),
	}

	handlers := NewHandlers(env.users, env.items, env.bookings, env.requests,
		export.NewBookingExporter("", &logger), &logger)
	cfg := &config.Config{}
	env.router = newRouter(cfg, handlers, &logger)
	return env
}
