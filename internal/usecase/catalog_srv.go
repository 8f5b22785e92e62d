package usecase

import (
	"context"
	"time"

	"camp-booking/internal/data/repository"
	"camp-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CatalogService interface {
	ListPackages(ctx context.Context, eventID string) ([]*response.PackageResponse, error)
	GetAvailability(ctx context.Context, eventID string) ([]*response.AvailabilityResponse, error)

	// ValidatePromo previews a code against an optional total; an
	// unknown or expired code reports valid=false, never an error.
	ValidatePromo(ctx context.Context, code string, total int64) (*response.PromoValidationResponse, error)
}

type catalogService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCatalogService(repo *repository.Repository, log *zap.Logger) CatalogService {
	return &catalogService{
		repo: repo,
		log:  log.With(zap.String("service", "catalog")),
	}
}

// resolveEventID falls back to the active event when no id is given.
func (s *catalogService) resolveEventID(ctx context.Context, eventID string) (uuid.UUID, error) {
	if eventID == "" {
		event, err := s.repo.Event.FindActive(ctx)
		if err != nil {
			return uuid.Nil, err
		}
		if event == nil {
			return uuid.Nil, newError(KindNotFound, "no active event")
		}
		return event.ID, nil
	}

	id, err := uuid.Parse(eventID)
	if err != nil {
		return uuid.Nil, wrapError(KindValidation, "invalid event ID format", err)
	}
	return id, nil
}

func (s *catalogService) ListPackages(ctx context.Context, eventID string) ([]*response.PackageResponse, error) {
	id, err := s.resolveEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	packages, err := s.repo.Package.FindActiveByEventID(ctx, id)
	if err != nil {
		return nil, err
	}

	items := make([]*response.PackageResponse, 0, len(packages))
	for _, p := range packages {
		resp := response.PackageToResponse(p)
		items = append(items, &resp)
	}
	return items, nil
}

func (s *catalogService) GetAvailability(ctx context.Context, eventID string) ([]*response.AvailabilityResponse, error) {
	id, err := s.resolveEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.Unit.AvailabilitySummary(ctx, id)
	if err != nil {
		return nil, err
	}

	items := make([]*response.AvailabilityResponse, 0, len(rows))
	for _, row := range rows {
		items = append(items, &response.AvailabilityResponse{
			PropertyID:   row.PropertyID.String(),
			PropertyName: row.PropertyName,
			UnitTypeID:   row.UnitTypeID.String(),
			UnitTypeName: row.UnitTypeName,
			FreeUnits:    row.FreeUnits,
			FreeCapacity: row.FreeCapacity,
		})
	}
	return items, nil
}

func (s *catalogService) ValidatePromo(ctx context.Context, code string, total int64) (*response.PromoValidationResponse, error) {
	if code == "" {
		return nil, newError(KindValidation, "promo code is required")
	}

	promo, err := s.repo.Promo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	live := ValidatePromoCode(promo, time.Now())
	if live == nil {
		return &response.PromoValidationResponse{Code: code, Valid: false}, nil
	}

	resp := &response.PromoValidationResponse{
		Code:  live.Code,
		Valid: true,
		Kind:  string(live.Kind),
		Value: live.Value,
	}

	if total > 0 {
		breakdown, err := ApplyPromo(total, live)
		if err != nil {
			return nil, err
		}
		resp.Discount = breakdown.Discount
		resp.Final = breakdown.Final
	}

	s.log.Debug("Promo validated",
		zap.String("code", code),
		zap.Bool("valid", resp.Valid),
		zap.Int64("total", total),
	)

	return resp, nil
}
