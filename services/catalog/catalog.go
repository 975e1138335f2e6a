package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bookify/database/adapter"
	"bookify/models"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Model names used with the persistence adapter.
const (
	ServiceModel = "services"
	BookingModel = "bookings"
)

// ErrServiceNotFound is returned when no active service matches.
var ErrServiceNotFound = errors.New("service not found")

// ErrServiceHasBookings blocks deletion of a service that still has
// confirmed bookings.
var ErrServiceHasBookings = errors.New("service has active bookings")

// ServiceFilters narrow a catalog listing. Active defaults to true when nil.
type ServiceFilters struct {
	Active   *bool
	Category string
	Type     string
}

// CatalogService exposes service catalog lookups and admin CRUD.
type CatalogService interface {
	GetServiceByID(ctx context.Context, id string) (*models.Service, error)
	GetServices(ctx context.Context, filters ServiceFilters) ([]models.Service, error)
	CreateService(ctx context.Context, svc models.Service) (*models.Service, error)
	UpdateService(ctx context.Context, id string, patch map[string]any) (*models.Service, error)
	DeleteService(ctx context.Context, id string) error
}

const (
	serviceCachePrefix = "service:"
	serviceCacheTTL    = 5 * time.Minute
)

// DefaultCatalogService implements CatalogService over the generic adapter.
// Cache is optional; when set, single-service lookups go through Redis.
type DefaultCatalogService struct {
	Adapter adapter.Adapter
	Cache   *redis.Client
	Logger  *zap.Logger
}

// GetServiceByID resolves an active service. Inactive or missing services
// both come back as ErrServiceNotFound: the catalog is read-only from the
// booking core's perspective and inactive services are not bookable.
func (s *DefaultCatalogService) GetServiceByID(ctx context.Context, id string) (*models.Service, error) {
	if s.Cache != nil {
		cached, err := s.Cache.Get(ctx, serviceCachePrefix+id).Result()
		if err == nil {
			var svc models.Service
			if err := json.Unmarshal([]byte(cached), &svc); err == nil {
				return &svc, nil
			}
		} else if err != redis.Nil {
			s.Logger.Warn("Service cache lookup failed", zap.String("serviceId", id), zap.Error(err))
		}
	}

	var svc models.Service
	found, err := s.Adapter.FindOne(ctx, ServiceModel, []adapter.Where{
		adapter.Eq("id", id),
		adapter.Eq("isActive", true),
	}, &svc)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch service %s: %w", id, err)
	}
	if !found {
		return nil, ErrServiceNotFound
	}

	if s.Cache != nil {
		if data, err := json.Marshal(&svc); err == nil {
			_ = s.Cache.Set(ctx, serviceCachePrefix+id, data, serviceCacheTTL).Err()
		}
	}
	return &svc, nil
}

// invalidateCache drops the cached copy of a service after a write.
func (s *DefaultCatalogService) invalidateCache(ctx context.Context, id string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(ctx, serviceCachePrefix+id).Err(); err != nil {
		s.Logger.Warn("Service cache invalidation failed", zap.String("serviceId", id), zap.Error(err))
	}
}

// GetServices lists services, active-only unless the filter says otherwise.
// The type filter is applied after the fetch.
func (s *DefaultCatalogService) GetServices(ctx context.Context, filters ServiceFilters) ([]models.Service, error) {
	active := true
	if filters.Active != nil {
		active = *filters.Active
	}
	where := []adapter.Where{adapter.Eq("isActive", active)}
	if filters.Category != "" {
		where = append(where, adapter.Eq("category", filters.Category))
	}

	var services []models.Service
	if err := s.Adapter.FindMany(ctx, ServiceModel, where, &services); err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}

	if filters.Type == "" {
		return services, nil
	}
	filtered := services[:0]
	for _, svc := range services {
		if svc.Type == filters.Type {
			filtered = append(filtered, svc)
		}
	}
	return filtered, nil
}

// CreateService assigns an ID and timestamps and persists the service.
func (s *DefaultCatalogService) CreateService(ctx context.Context, svc models.Service) (*models.Service, error) {
	if svc.Duration <= 0 {
		return nil, fmt.Errorf("service duration must be positive")
	}
	if svc.Price < 0 {
		return nil, fmt.Errorf("service price cannot be negative")
	}
	if len(svc.Currency) != 3 {
		return nil, fmt.Errorf("currency must be a 3-letter code")
	}

	svc.ID = uuid.New().String()
	now := time.Now()
	svc.CreatedAt = now
	svc.UpdatedAt = now

	if err := s.Adapter.Create(ctx, ServiceModel, &svc); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	s.Logger.Info("Service created", zap.String("serviceId", svc.ID), zap.String("name", svc.Name))
	return &svc, nil
}

// UpdateService applies the patch fields and bumps updatedAt.
func (s *DefaultCatalogService) UpdateService(ctx context.Context, id string, patch map[string]any) (*models.Service, error) {
	patch["updatedAt"] = time.Now()
	err := s.Adapter.Update(ctx, ServiceModel, []adapter.Where{adapter.Eq("id", id)}, patch)
	if errors.Is(err, adapter.ErrNotFound) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update service %s: %w", id, err)
	}

	s.invalidateCache(ctx, id)

	var svc models.Service
	found, err := s.Adapter.FindOne(ctx, ServiceModel, []adapter.Where{adapter.Eq("id", id)}, &svc)
	if err != nil || !found {
		return nil, fmt.Errorf("failed to reload service %s after update: %w", id, err)
	}
	return &svc, nil
}

// DeleteService removes a service unless confirmed bookings still reference
// it.
func (s *DefaultCatalogService) DeleteService(ctx context.Context, id string) error {
	var active []models.Booking
	err := s.Adapter.FindMany(ctx, BookingModel, []adapter.Where{
		adapter.Eq("serviceId", id),
		adapter.Eq("status", models.BookingStatusConfirmed),
	}, &active)
	if err != nil {
		return fmt.Errorf("failed to check bookings for service %s: %w", id, err)
	}
	if len(active) > 0 {
		return ErrServiceHasBookings
	}

	if err := s.Adapter.Delete(ctx, ServiceModel, []adapter.Where{adapter.Eq("id", id)}); err != nil {
		return fmt.Errorf("failed to delete service %s: %w", id, err)
	}
	s.invalidateCache(ctx, id)
	s.Logger.Info("Service deleted", zap.String("serviceId", id))
	return nil
}
