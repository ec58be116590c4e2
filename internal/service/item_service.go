package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/AleXx313/shareit/internal/apperr"
	"github.com/AleXx313/shareit/internal/domain"
	"github.com/AleXx313/shareit/internal/metrics"
	"github.com/AleXx313/shareit/internal/models"

	"github.com/rs/zerolog"
)

type ItemService struct {
	repo   domain.Repository
	cache  domain.SearchCache
	logger *zerolog.Logger
}

func NewItemService(repo domain.Repository, cache domain.SearchCache, logger *zerolog.Logger) *ItemService {
	return &ItemService{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// validateItem is the single validation gate applied before any item
// write. It returns an error instead of mutating anything.
func validateItem(item *models.Item) error {
	if strings.TrimSpace(item.Name) == "" {
		return apperr.InvalidRequest("item name must not be blank")
	}
	if strings.TrimSpace(item.Description) == "" {
		return apperr.InvalidRequest("item description must not be blank")
	}
	return nil
}

func (s *ItemService) Create(ctx context.Context, ownerID int64, item *models.Item) (*models.Item, error) {
	if _, err := s.repo.GetUserByID(ctx, ownerID); err != nil {
		return nil, userErr(err, ownerID)
	}
	if item.RequestID != 0 {
		if _, err := s.repo.GetRequestByID(ctx, item.RequestID); err != nil {
			return nil, requestErr(err, item.RequestID)
		}
	}

	item.OwnerID = ownerID
	if err := validateItem(item); err != nil {
		return nil, err
	}

	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}

	s.invalidateSearchCache(ctx)
	s.logger.Info().
		Int64("item_id", item.ID).
		Int64("owner_id", ownerID).
		Str("name", item.Name).
		Msg("item created")

	return item, nil
}

// Update patches an item. Only the owner may do so; a stranger gets a
// not-found answer rather than a forbidden one. Fields are overwritten
// only when present in the patch and different from the current value.
func (s *ItemService) Update(ctx context.Context, ownerID, itemID int64, patch models.ItemPatch) (*models.Item, error) {
	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, itemErr(err, itemID)
	}
	if item.OwnerID != ownerID {
		return nil, apperr.NotFound("item with id %d not found", itemID)
	}

	changed := false
	if patch.Name != nil && *patch.Name != item.Name {
		item.Name = *patch.Name
		changed = true
	}
	if patch.Description != nil && *patch.Description != item.Description {
		item.Description = *patch.Description
		changed = true
	}
	if patch.Available != nil && *patch.Available != item.Available {
		item.Available = *patch.Available
		changed = true
	}
	if !changed {
		return item, nil
	}

	if err := validateItem(item); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}

	s.invalidateSearchCache(ctx)
	s.logger.Info().Int64("item_id", item.ID).Msg("item updated")

	return item, nil
}

// GetByID assembles the item snapshot for a viewer: the owner sees the
// nearest upcoming and the most recently started approved bookings,
// everyone sees the comments.
func (s *ItemService) GetByID(ctx context.Context, itemID, viewerID int64) (*models.ItemSnapshot, error) {
	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, itemErr(err, itemID)
	}
	return s.buildSnapshot(ctx, item, viewerID)
}

func (s *ItemService) ListByOwner(ctx context.Context, ownerID int64, from, size int) ([]models.ItemSnapshot, error) {
	if err := validatePaging(from, size); err != nil {
		return nil, err
	}

	items, err := s.repo.GetItemsByOwner(ctx, ownerID, from, size)
	if err != nil {
		return nil, fmt.Errorf("list items by owner: %w", err)
	}

	snapshots := make([]models.ItemSnapshot, 0, len(items))
	for i := range items {
		snapshot, err := s.buildSnapshot(ctx, &items[i], ownerID)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, *snapshot)
	}
	return snapshots, nil
}

func (s *ItemService) buildSnapshot(ctx context.Context, item *models.Item, viewerID int64) (*models.ItemSnapshot, error) {
	snapshot := &models.ItemSnapshot{Item: *item}

	if item.OwnerID == viewerID {
		now := time.Now()
		next, err := s.repo.GetNextBooking(ctx, item.ID, now)
		if err != nil {
			return nil, fmt.Errorf("get next booking: %w", err)
		}
		last, err := s.repo.GetLastBooking(ctx, item.ID, now)
		if err != nil {
			return nil, fmt.Errorf("get last booking: %w", err)
		}
		snapshot.NextBooking = toBrief(next)
		snapshot.LastBooking = toBrief(last)
	}

	comments, err := s.repo.GetCommentsByItem(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("get comments: %w", err)
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	snapshot.Comments = comments

	return snapshot, nil
}

func toBrief(booking *models.Booking) *models.BookingBrief {
	if booking == nil {
		return nil
	}
	return &models.BookingBrief{
		ID:       booking.ID,
		BookerID: booking.BookerID,
		Start:    booking.Start,
		End:      booking.End,
	}
}

// Search returns available items matching the text. Blank text
// short-circuits to an empty result without touching the store.
func (s *ItemService) Search(ctx context.Context, text string, from, size int) ([]models.Item, error) {
	if err := validatePaging(from, size); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return []models.Item{}, nil
	}

	key := strings.ToLower(strings.TrimSpace(text))
	if cached, ok, err := s.cache.Get(ctx, key, from, size); err == nil && ok {
		metrics.IncSearchCache("hit")
		return cached, nil
	} else if err != nil {
		s.logger.Warn().Err(err).Msg("search cache get failed")
	}
	metrics.IncSearchCache("miss")

	items, err := s.repo.SearchItems(ctx, key, from, size)
	if err != nil {
		return nil, fmt.Errorf("search items: %w", err)
	}
	if items == nil {
		items = []models.Item{}
	}

	if err := s.cache.Set(ctx, key, from, size, items); err != nil {
		s.logger.Warn().Err(err).Msg("search cache set failed")
	}
	return items, nil
}

// SaveComment lets a user comment on an item they have actually rented:
// an approved booking that already ended is required.
func (s *ItemService) SaveComment(ctx context.Context, itemID, authorID int64, text string) (*models.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperr.InvalidRequest("comment text must not be blank")
	}

	if _, err := s.repo.GetItemByID(ctx, itemID); err != nil {
		return nil, itemErr(err, itemID)
	}
	author, err := s.repo.GetUserByID(ctx, authorID)
	if err != nil {
		return nil, userErr(err, authorID)
	}

	now := time.Now()
	completed, err := s.repo.HasCompletedBooking(ctx, itemID, authorID, now)
	if err != nil {
		return nil, fmt.Errorf("check booking history: %w", err)
	}
	if !completed {
		return nil, apperr.InvalidOperation("user with id %d has never booked item with id %d", authorID, itemID)
	}

	comment := &models.Comment{
		ItemID:     itemID,
		AuthorID:   authorID,
		AuthorName: author.Name,
		Text:       text,
		CreatedAt:  now,
	}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	s.logger.Info().
		Int64("comment_id", comment.ID).
		Int64("item_id", itemID).
		Int64("author_id", authorID).
		Msg("comment saved")

	return comment, nil
}

func (s *ItemService) invalidateSearchCache(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("search cache invalidation failed")
	}
}
