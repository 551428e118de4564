package session

import (
	"context"
	"errors"
	"testing"
)

func TestCredentialRepository_RoundTrip(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	if err := repo.Store(ctx, "192.168.1.100", "hue-user-1"); err != nil {
		t.Fatalf("Store() error = %v", err)
	}

	ref, err := repo.Get(ctx, "192.168.1.100")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ref != "hue-user-1" {
		t.Errorf("Get() = %q, want %q", ref, "hue-user-1")
	}
}

func TestCredentialRepository_NotFound(t *testing.T) {
	repo := testRepo(t)

	_, err := repo.Get(context.Background(), "10.0.0.1")
	if !errors.Is(err, ErrCredentialNotFound) {
		t.Errorf("Get() error = %v, want ErrCredentialNotFound", err)
	}

	has, err := repo.Has(context.Background(), "10.0.0.1")
	if err != nil {
		t.Fatalf("Has() error = %v", err)
	}
	if has {
		t.Error("Has() = true for unknown endpoint")
	}
}

func TestCredentialRepository_Overwrite(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	if err := repo.Store(ctx, "192.168.1.100", "hue-user-1"); err != nil {
		t.Fatalf("first Store() error = %v", err)
	}
	if err := repo.Store(ctx, "192.168.1.100", "hue-user-2"); err != nil {
		t.Fatalf("second Store() error = %v", err)
	}

	ref, err := repo.Get(ctx, "192.168.1.100")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ref != "hue-user-2" {
		t.Errorf("Get() = %q, want latest credential %q", ref, "hue-user-2")
	}

	count, err := repo.CountEndpoints(ctx)
	if err != nil {
		t.Fatalf("CountEndpoints() error = %v", err)
	}
	if count != 1 {
		t.Errorf("CountEndpoints() = %d, want 1 after overwrite", count)
	}
}

func TestCredentialRepository_Delete(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	if err := repo.Store(ctx, "192.168.1.100", "hue-user-1"); err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	if err := repo.Delete(ctx, "192.168.1.100"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	has, err := repo.Has(ctx, "192.168.1.100")
	if err != nil {
		t.Fatalf("Has() error = %v", err)
	}
	if has {
		t.Error("Has() = true after Delete()")
	}

	// Deleting an unknown endpoint is a no-op.
	if err := repo.Delete(ctx, "10.0.0.1"); err != nil {
		t.Errorf("Delete(unknown) error = %v", err)
	}
}
