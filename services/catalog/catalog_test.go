package catalog

import (
	"context"
	"errors"
	"testing"

	"bookify/database/adapter"
	"bookify/models"

	"go.uber.org/zap"
)

func newCatalogFixture(t *testing.T) (*DefaultCatalogService, *adapter.MemoryAdapter) {
	t.Helper()
	store := adapter.NewMemoryAdapter()
	return &DefaultCatalogService{Adapter: store, Logger: zap.NewNop()}, store
}

func seedService(t *testing.T, store *adapter.MemoryAdapter, id, category, svcType string, active bool) {
	t.Helper()
	svc := models.Service{
		ID:       id,
		Name:     "Service " + id,
		Duration: 60,
		Price:    5000,
		Currency: "USD",
		Category: category,
		Type:     svcType,
		IsActive: active,
	}
	if err := store.Create(context.Background(), ServiceModel, &svc); err != nil {
		t.Fatalf("expected seed to succeed, got %v", err)
	}
}

func TestGetServiceByIDActiveOnly(t *testing.T) {
	cat, store := newCatalogFixture(t)
	seedService(t, store, "svc-1", "wellness", "appointment", true)
	seedService(t, store, "svc-2", "wellness", "appointment", false)

	svc, err := cat.GetServiceByID(context.Background(), "svc-1")
	if err != nil {
		t.Fatalf("expected active service, got %v", err)
	}
	if svc.ID != "svc-1" {
		t.Fatalf("expected svc-1, got %s", svc.ID)
	}

	if _, err := cat.GetServiceByID(context.Background(), "svc-2"); !errors.Is(err, ErrServiceNotFound) {
		t.Fatalf("expected ErrServiceNotFound for inactive service, got %v", err)
	}
	if _, err := cat.GetServiceByID(context.Background(), "missing"); !errors.Is(err, ErrServiceNotFound) {
		t.Fatalf("expected ErrServiceNotFound for missing service, got %v", err)
	}
}

func TestGetServicesFilters(t *testing.T) {
	cat, store := newCatalogFixture(t)
	seedService(t, store, "svc-1", "wellness", "appointment", true)
	seedService(t, store, "svc-2", "wellness", "course", true)
	seedService(t, store, "svc-3", "sports", "appointment", true)
	seedService(t, store, "svc-4", "wellness", "appointment", false)

	// Active defaults to true.
	all, err := cat.GetServices(context.Background(), ServiceFilters{})
	if err != nil {
		t.Fatalf("expected list to succeed, got %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 active services, got %d", len(all))
	}

	wellness, err := cat.GetServices(context.Background(), ServiceFilters{Category: "wellness"})
	if err != nil {
		t.Fatalf("expected list to succeed, got %v", err)
	}
	if len(wellness) != 2 {
		t.Fatalf("expected 2 wellness services, got %d", len(wellness))
	}

	appointments, err := cat.GetServices(context.Background(), ServiceFilters{Category: "wellness", Type: "appointment"})
	if err != nil {
		t.Fatalf("expected list to succeed, got %v", err)
	}
	if len(appointments) != 1 || appointments[0].ID != "svc-1" {
		t.Fatalf("expected only svc-1, got %+v", appointments)
	}

	inactive := false
	disabled, err := cat.GetServices(context.Background(), ServiceFilters{Active: &inactive})
	if err != nil {
		t.Fatalf("expected list to succeed, got %v", err)
	}
	if len(disabled) != 1 || disabled[0].ID != "svc-4" {
		t.Fatalf("expected only svc-4, got %+v", disabled)
	}
}

func TestCreateServiceValidation(t *testing.T) {
	cat, _ := newCatalogFixture(t)

	base := models.Service{Name: "Yoga", Duration: 60, Price: 2000, Currency: "USD", IsActive: true}

	created, err := cat.CreateService(context.Background(), base)
	if err != nil {
		t.Fatalf("expected create to succeed, got %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected generated service ID")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Fatalf("expected timestamps to be set")
	}

	bad := base
	bad.Duration = 0
	if _, err := cat.CreateService(context.Background(), bad); err == nil {
		t.Fatalf("expected zero duration to be rejected")
	}

	bad = base
	bad.Price = -1
	if _, err := cat.CreateService(context.Background(), bad); err == nil {
		t.Fatalf("expected negative price to be rejected")
	}

	bad = base
	bad.Currency = "usdollar"
	if _, err := cat.CreateService(context.Background(), bad); err == nil {
		t.Fatalf("expected bad currency code to be rejected")
	}
}

func TestUpdateService(t *testing.T) {
	cat, store := newCatalogFixture(t)
	seedService(t, store, "svc-1", "wellness", "appointment", true)

	updated, err := cat.UpdateService(context.Background(), "svc-1", map[string]any{"name": "Renamed"})
	if err != nil {
		t.Fatalf("expected update to succeed, got %v", err)
	}
	if updated.Name != "Renamed" {
		t.Fatalf("expected renamed service, got %q", updated.Name)
	}
	if updated.UpdatedAt.IsZero() {
		t.Fatalf("expected updatedAt to be bumped")
	}

	if _, err := cat.UpdateService(context.Background(), "missing", map[string]any{"name": "x"}); !errors.Is(err, ErrServiceNotFound) {
		t.Fatalf("expected ErrServiceNotFound, got %v", err)
	}
}

func TestDeleteServiceBlockedByConfirmedBookings(t *testing.T) {
	cat, store := newCatalogFixture(t)
	seedService(t, store, "svc-1", "wellness", "appointment", true)

	b := models.Booking{ID: "b-1", ServiceID: "svc-1", UserID: "user-1", Status: models.BookingStatusConfirmed}
	if err := store.Create(context.Background(), BookingModel, &b); err != nil {
		t.Fatalf("expected booking seed to succeed, got %v", err)
	}

	if err := cat.DeleteService(context.Background(), "svc-1"); !errors.Is(err, ErrServiceHasBookings) {
		t.Fatalf("expected ErrServiceHasBookings, got %v", err)
	}

	// Cancelled bookings don't block deletion.
	if err := store.Update(context.Background(), BookingModel, []adapter.Where{adapter.Eq("id", "b-1")}, map[string]any{"status": models.BookingStatusCancelled}); err != nil {
		t.Fatalf("expected booking update to succeed, got %v", err)
	}
	if err := cat.DeleteService(context.Background(), "svc-1"); err != nil {
		t.Fatalf("expected delete to succeed, got %v", err)
	}
	if _, err := cat.GetServiceByID(context.Background(), "svc-1"); !errors.Is(err, ErrServiceNotFound) {
		t.Fatalf("expected service to be gone, got %v", err)
	}
}
