package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/AleXx313/shareit/internal/apperr"
	"github.com/AleXx313/shareit/internal/domain"
	"github.com/AleXx313/shareit/internal/models"

	"github.com/rs/zerolog"
)

type RequestService struct {
	repo   domain.Repository
	logger *zerolog.Logger
}

func NewRequestService(repo domain.Repository, logger *zerolog.Logger) *RequestService {
	return &RequestService{
		repo:   repo,
		logger: logger,
	}
}

func (s *RequestService) Create(ctx context.Context, requesterID int64, description string) (*models.ItemRequest, error) {
	if strings.TrimSpace(description) == "" {
		return nil, apperr.InvalidRequest("request description must not be blank")
	}
	if _, err := s.repo.GetUserByID(ctx, requesterID); err != nil {
		return nil, userErr(err, requesterID)
	}

	request := &models.ItemRequest{
		Description: description,
		RequesterID: requesterID,
	}
	if err := s.repo.CreateRequest(ctx, request); err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	s.logger.Info().
		Int64("request_id", request.ID).
		Int64("requester_id", requesterID).
		Msg("item request created")

	return request, nil
}

func (s *RequestService) ListOwn(ctx context.Context, requesterID int64) ([]models.ItemRequest, error) {
	if _, err := s.repo.GetUserByID(ctx, requesterID); err != nil {
		return nil, userErr(err, requesterID)
	}

	requests, err := s.repo.GetRequestsByRequester(ctx, requesterID)
	if err != nil {
		return nil, fmt.Errorf("list own requests: %w", err)
	}
	return s.attachItems(ctx, requests)
}

func (s *RequestService) ListOthers(ctx context.Context, viewerID int64, from, size int) ([]models.ItemRequest, error) {
	if err := validatePaging(from, size); err != nil {
		return nil, err
	}

	requests, err := s.repo.GetRequestsExcept(ctx, viewerID, from, size)
	if err != nil {
		return nil, fmt.Errorf("list other requests: %w", err)
	}
	return s.attachItems(ctx, requests)
}

func (s *RequestService) GetByID(ctx context.Context, requestID, viewerID int64) (*models.ItemRequest, error) {
	if _, err := s.repo.GetUserByID(ctx, viewerID); err != nil {
		return nil, userErr(err, viewerID)
	}

	request, err := s.repo.GetRequestByID(ctx, requestID)
	if err != nil {
		return nil, requestErr(err, requestID)
	}

	attached, err := s.attachItems(ctx, []models.ItemRequest{*request})
	if err != nil {
		return nil, err
	}
	return &attached[0], nil
}

func (s *RequestService) attachItems(ctx context.Context, requests []models.ItemRequest) ([]models.ItemRequest, error) {
	result := make([]models.ItemRequest, 0, len(requests))
	for _, request := range requests {
		items, err := s.repo.GetItemsByRequest(ctx, request.ID)
		if err != nil {
			return nil, fmt.Errorf("get items for request %d: %w", request.ID, err)
		}
		if items == nil {
			items = []models.Item{}
		}
		request.Items = items
		result = append(result, request)
	}
	return result, nil
}
