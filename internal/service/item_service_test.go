package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/AleXx313/shareit/internal/apperr"
	"github.com/AleXx313/shareit/internal/database"
	"github.com/AleXx313/shareit/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newItemService(repo *mockRepo, cache *mockCache) *ItemService {
	logger := zerolog.New(io.Discard)
	return NewItemService(repo, cache, &logger)
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func TestItemServiceCreate(t *testing.T) {
	ctx := context.Background()
	owner := &models.User{ID: 1, Name: "Owner", Email: "o@example.com"}

	t.Run("owner not found", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetUserByID", mock.Anything, int64(1)).Return(nil, database.ErrNotFound)
		svc := newItemService(repo, new(mockCache))

		_, err := svc.Create(ctx, 1, &models.Item{Name: "Drill", Description: "d", Available: true})
		assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	})

	t.Run("unknown request reference", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetUserByID", mock.Anything, int64(1)).Return(owner, nil)
		repo.On("GetRequestByID", mock.Anything, int64(7)).Return(nil, database.ErrNotFound)
		svc := newItemService(repo, new(mockCache))

		_, err := svc.Create(ctx, 1, &models.Item{Name: "Drill", Description: "d", Available: true, RequestID: 7})
		assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	})

	t.Run("blank name rejected", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetUserByID", mock.Anything, int64(1)).Return(owner, nil)
		svc := newItemService(repo, new(mockCache))

		_, err := svc.Create(ctx, 1, &models.Item{Name: "   ", Description: "d", Available: true})
		assert.True(t, apperr.IsKind(err, apperr.KindInvalidRequest))
	})

	t.Run("success invalidates search cache", func(t *testing.T) {
		repo := new(mockRepo)
		cache := new(mockCache)
		repo.On("GetUserByID", mock.Anything, int64(1)).Return(owner, nil)
		repo.On("CreateItem", mock.Anything, mock.AnythingOfType("*models.Item")).Run(func(args mock.Arguments) {
			args.Get(1).(*models.Item).ID = 10
		}).Return(nil)
		cache.On("Invalidate", mock.Anything).Return(nil)
		svc := newItemService(repo, cache)

		item, err := svc.Create(ctx, 1, &models.Item{Name: "Drill", Description: "d", Available: true})
		require.NoError(t, err)
		assert.Equal(t, int64(10), item.ID)
		assert.Equal(t, int64(1), item.OwnerID)
		cache.AssertExpectations(t)
	})
}

func TestItemServiceUpdate(t *testing.T) {
	ctx := context.Background()
	current := func() *models.Item {
		return &models.Item{ID: 10, OwnerID: 1, Name: "Drill", Description: "old", Available: true}
	}

	t.Run("stranger gets not found", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetItemByID", mock.Anything, int64(10)).Return(current(), nil)
		svc := newItemService(repo, new(mockCache))

		_, err := svc.Update(ctx, 99, 10, models.ItemPatch{Name: strPtr("Hammer")})
		assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
		repo.AssertNotCalled(t, "UpdateItem", mock.Anything, mock.Anything)
	})

	t.Run("partial patch keeps the rest", func(t *testing.T) {
		repo := new(mockRepo)
		cache := new(mockCache)
		repo.On("GetItemByID", mock.Anything, int64(10)).Return(current(), nil)
		repo.On("UpdateItem", mock.Anything, mock.MatchedBy(func(i *models.Item) bool {
			return i.Name == "Drill" && i.Description == "new" && i.Available
		})).Return(nil)
		cache.On("Invalidate", mock.Anything).Return(nil)
		svc := newItemService(repo, cache)

		item, err := svc.Update(ctx, 1, 10, models.ItemPatch{Description: strPtr("new")})
		require.NoError(t, err)
		assert.Equal(t, "Drill", item.Name)
		assert.Equal(t, "new", item.Description)
		repo.AssertExpectations(t)
	})

	t.Run("identical patch is a no-op", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetItemByID", mock.Anything, int64(10)).Return(current(), nil)
		svc := newItemService(repo, new(mockCache))

		item, err := svc.Update(ctx, 1, 10, models.ItemPatch{
			Name:      strPtr("Drill"),
			Available: boolPtr(true),
		})
		require.NoError(t, err)
		assert.Equal(t, "Drill", item.Name)
		repo.AssertNotCalled(t, "UpdateItem", mock.Anything, mock.Anything)
	})

	t.Run("availability toggle", func(t *testing.T) {
		repo := new(mockRepo)
		cache := new(mockCache)
		repo.On("GetItemByID", mock.Anything, int64(10)).Return(current(), nil)
		repo.On("UpdateItem", mock.Anything, mock.MatchedBy(func(i *models.Item) bool {
			return !i.Available
		})).Return(nil)
		cache.On("Invalidate", mock.Anything).Return(nil)
		svc := newItemService(repo, cache)

		item, err := svc.Update(ctx, 1, 10, models.ItemPatch{Available: boolPtr(false)})
		require.NoError(t, err)
		assert.False(t, item.Available)
	})
}

func TestItemServiceGetByID(t *testing.T) {
	ctx := context.Background()
	item := &models.Item{ID: 10, OwnerID: 1, Name: "Drill", Available: true}
	next := &models.Booking{ID: 3, BookerID: 2, Status: models.StatusApproved}
	last := &models.Booking{ID: 2, BookerID: 4, Status: models.StatusApproved}

	t.Run("owner sees booking briefs", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetItemByID", mock.Anything, int64(10)).Return(item, nil)
		repo.On("GetNextBooking", mock.Anything, int64(10), mock.Anything).Return(next, nil)
		repo.On("GetLastBooking", mock.Anything, int64(10), mock.Anything).Return(last, nil)
		repo.On("GetCommentsByItem", mock.Anything, int64(10)).Return([]models.Comment{{ID: 1, Text: "fine"}}, nil)
		svc := newItemService(repo, new(mockCache))

		snapshot, err := svc.GetByID(ctx, 10, 1)
		require.NoError(t, err)
		require.NotNil(t, snapshot.NextBooking)
		require.NotNil(t, snapshot.LastBooking)
		assert.Equal(t, int64(3), snapshot.NextBooking.ID)
		assert.Equal(t, int64(2), snapshot.LastBooking.ID)
		assert.Len(t, snapshot.Comments, 1)
	})

	t.Run("other viewers get no briefs", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetItemByID", mock.Anything, int64(10)).Return(item, nil)
		repo.On("GetCommentsByItem", mock.Anything, int64(10)).Return(nil, nil)
		svc := newItemService(repo, new(mockCache))

		snapshot, err := svc.GetByID(ctx, 10, 2)
		require.NoError(t, err)
		assert.Nil(t, snapshot.NextBooking)
		assert.Nil(t, snapshot.LastBooking)
		assert.NotNil(t, snapshot.Comments)
		assert.Empty(t, snapshot.Comments)
		repo.AssertNotCalled(t, "GetNextBooking", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing item", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetItemByID", mock.Anything, int64(404)).Return(nil, database.ErrNotFound)
		svc := newItemService(repo, new(mockCache))

		_, err := svc.GetByID(ctx, 404, 1)
		assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	})
}

func TestItemServiceSearch(t *testing.T) {
	ctx := context.Background()
	found := []models.Item{{ID: 10, Name: "Drill", Available: true}}

	t.Run("blank text short-circuits", func(t *testing.T) {
		repo := new(mockRepo)
		svc := newItemService(repo, new(mockCache))

		items, err := svc.Search(ctx, "   ", 0, 10)
		require.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
		repo.AssertNotCalled(t, "SearchItems", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("cache hit skips the store", func(t *testing.T) {
		repo := new(mockRepo)
		cache := new(mockCache)
		cache.On("Get", mock.Anything, "drill", 0, 10).Return(found, true, nil)
		svc := newItemService(repo, cache)

		items, err := svc.Search(ctx, "DRILL", 0, 10)
		require.NoError(t, err)
		assert.Equal(t, found, items)
		repo.AssertNotCalled(t, "SearchItems", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("cache miss hits the store and fills the cache", func(t *testing.T) {
		repo := new(mockRepo)
		cache := new(mockCache)
		cache.On("Get", mock.Anything, "drill", 0, 10).Return(nil, false, nil)
		repo.On("SearchItems", mock.Anything, "drill", 0, 10).Return(found, nil)
		cache.On("Set", mock.Anything, "drill", 0, 10, found).Return(nil)
		svc := newItemService(repo, cache)

		items, err := svc.Search(ctx, "drill", 0, 10)
		require.NoError(t, err)
		assert.Equal(t, found, items)
		cache.AssertExpectations(t)
	})

	t.Run("cache failure degrades to the store", func(t *testing.T) {
		repo := new(mockRepo)
		cache := new(mockCache)
		cache.On("Get", mock.Anything, "drill", 0, 10).Return(nil, false, assert.AnError)
		repo.On("SearchItems", mock.Anything, "drill", 0, 10).Return(found, nil)
		cache.On("Set", mock.Anything, "drill", 0, 10, found).Return(assert.AnError)
		svc := newItemService(repo, cache)

		items, err := svc.Search(ctx, "drill", 0, 10)
		require.NoError(t, err)
		assert.Equal(t, found, items)
	})

	t.Run("bad pagination", func(t *testing.T) {
		svc := newItemService(new(mockRepo), new(mockCache))

		_, err := svc.Search(ctx, "drill", -1, 10)
		assert.True(t, apperr.IsKind(err, apperr.KindInvalidRequest))
	})
}

func TestItemServiceSaveComment(t *testing.T) {
	ctx := context.Background()
	item := &models.Item{ID: 10, OwnerID: 1, Name: "Drill"}
	author := &models.User{ID: 2, Name: "Booker", Email: "b@example.com"}

	t.Run("blank text", func(t *testing.T) {
		svc := newItemService(new(mockRepo), new(mockCache))

		_, err := svc.SaveComment(ctx, 10, 2, "  ")
		assert.True(t, apperr.IsKind(err, apperr.KindInvalidRequest))
	})

	t.Run("no completed booking", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetItemByID", mock.Anything, int64(10)).Return(item, nil)
		repo.On("GetUserByID", mock.Anything, int64(2)).Return(author, nil)
		repo.On("HasCompletedBooking", mock.Anything, int64(10), int64(2), mock.Anything).Return(false, nil)
		svc := newItemService(repo, new(mockCache))

		_, err := svc.SaveComment(ctx, 10, 2, "great drill")
		assert.True(t, apperr.IsKind(err, apperr.KindInvalidOperation))
	})

	t.Run("success stamps author and time", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetItemByID", mock.Anything, int64(10)).Return(item, nil)
		repo.On("GetUserByID", mock.Anything, int64(2)).Return(author, nil)
		repo.On("HasCompletedBooking", mock.Anything, int64(10), int64(2), mock.Anything).Return(true, nil)
		repo.On("CreateComment", mock.Anything, mock.MatchedBy(func(c *models.Comment) bool {
			return c.ItemID == 10 && c.AuthorID == 2 && c.Text == "great drill" && !c.CreatedAt.IsZero()
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*models.Comment).ID = 77
		}).Return(nil)
		svc := newItemService(repo, new(mockCache))

		comment, err := svc.SaveComment(ctx, 10, 2, "great drill")
		require.NoError(t, err)
		assert.Equal(t, int64(77), comment.ID)
		assert.Equal(t, "Booker", comment.AuthorName)
		assert.WithinDuration(t, time.Now(), comment.CreatedAt, time.Minute)
	})
}
