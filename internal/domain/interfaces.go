package domain

import (
	"context"
	"time"

	"github.com/AleXx313/shareit/internal/models"
)

// Repository is the entity store surface the services depend on. The
// sqlite implementation lives in internal/database.
type Repository interface {
	CreateUser(ctx context.Context, user *models.User) error
	UpdateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)
	DeleteUser(ctx context.Context, id int64) error
	UserExists(ctx context.Context, id int64) (bool, error)

	CreateItem(ctx context.Context, item *models.Item) error
	UpdateItem(ctx context.Context, item *models.Item) error
	GetItemByID(ctx context.Context, id int64) (*models.Item, error)
	GetItemsByOwner(ctx context.Context, ownerID int64, from, size int) ([]models.Item, error)
	SearchItems(ctx context.Context, text string, from, size int) ([]models.Item, error)
	GetItemsByRequest(ctx context.Context, requestID int64) ([]models.Item, error)

	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	UpdateBookingStatus(ctx context.Context, id int64, fromStatus, toStatus string) error
	GetBookingsByBooker(ctx context.Context, bookerID int64, state models.ListState, now time.Time, from, size int) ([]models.Booking, error)
	GetBookingsByOwner(ctx context.Context, ownerID int64, state models.ListState, now time.Time, from, size int) ([]models.Booking, error)
	GetNextBooking(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error)
	GetLastBooking(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error)
	HasCompletedBooking(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error)

	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentsByItem(ctx context.Context, itemID int64) ([]models.Comment, error)

	CreateRequest(ctx context.Context, request *models.ItemRequest) error
	GetRequestByID(ctx context.Context, id int64) (*models.ItemRequest, error)
	GetRequestsByRequester(ctx context.Context, requesterID int64) ([]models.ItemRequest, error)
	GetRequestsExcept(ctx context.Context, requesterID int64, from, size int) ([]models.ItemRequest, error)
}

// SearchCache caches item search pages. Implementations must treat a
// miss and an error alike as "go to the store".
type SearchCache interface {
	Get(ctx context.Context, text string, from, size int) ([]models.Item, bool, error)
	Set(ctx context.Context, text string, from, size int, items []models.Item) error
	Invalidate(ctx context.Context) error
}

type UserService interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	Update(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Delete(ctx context.Context, id int64) error
}

type ItemService interface {
	Create(ctx context.Context, ownerID int64, item *models.Item) (*models.Item, error)
	Update(ctx context.Context, ownerID, itemID int64, patch models.ItemPatch) (*models.Item, error)
	GetByID(ctx context.Context, itemID, viewerID int64) (*models.ItemSnapshot, error)
	ListByOwner(ctx context.Context, ownerID int64, from, size int) ([]models.ItemSnapshot, error)
	Search(ctx context.Context, text string, from, size int) ([]models.Item, error)
	SaveComment(ctx context.Context, itemID, authorID int64, text string) (*models.Comment, error)
}

type BookingService interface {
	Create(ctx context.Context, bookerID, itemID int64, start, end time.Time) (*models.Booking, error)
	Decide(ctx context.Context, bookingID, actingUserID int64, approve bool) (*models.Booking, error)
	GetByID(ctx context.Context, bookingID, requestingUserID int64) (*models.Booking, error)
	ListByBooker(ctx context.Context, userID int64, state string, from, size int) ([]models.Booking, error)
	ListByOwner(ctx context.Context, userID int64, state string, from, size int) ([]models.Booking, error)
}

type RequestService interface {
	Create(ctx context.Context, requesterID int64, description string) (*models.ItemRequest, error)
	ListOwn(ctx context.Context, requesterID int64) ([]models.ItemRequest, error)
	ListOthers(ctx context.Context, viewerID int64, from, size int) ([]models.ItemRequest, error)
	GetByID(ctx context.Context, requestID, viewerID int64) (*models.ItemRequest, error)
}
