package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/msomdec/house-rentals/internal/domain"
)

func TestListingRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@example.com")
	repo := db.Listings()
	ctx := context.Background()

	l := &domain.Listing{
		Title:       "Lakeview Park Villa",
		Description: "Three storeys by the lake.",
		Price:       45000,
		Location:    "Pune",
		Bedrooms:    4,
		Bathrooms:   3,
		Area:        2400,
		ImageURL:    "https://example.com/villa.jpg",
		OwnerID:     owner.ID,
	}
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if l.ID == "" {
		t.Fatal("expected generated ID")
	}

	got, err := repo.GetByID(ctx, l.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != l.Title || got.Location != l.Location || got.Price != l.Price {
		t.Fatalf("round trip mismatch: got %+v", got)
	}
	if got.Bedrooms != 4 || got.Bathrooms != 3 || got.Area != 2400 {
		t.Fatalf("unexpected room counts: %+v", got)
	}
}

func TestListingRepository_GetByID_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Listings().GetByID(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListingRepository_ListNewestFirst(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@example.com")
	repo := db.Listings()
	ctx := context.Background()

	for _, title := range []string{"First", "Second", "Third"} {
		if err := repo.Create(ctx, &domain.Listing{Title: title, Location: "Pune", OwnerID: owner.ID}); err != nil {
			t.Fatalf("Create %s: %v", title, err)
		}
	}

	listings, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(listings) != 3 {
		t.Fatalf("expected 3 listings, got %d", len(listings))
	}
	if listings[0].Title != "Third" || listings[2].Title != "First" {
		t.Fatalf("expected newest first, got %q..%q", listings[0].Title, listings[2].Title)
	}
}

func TestListingRepository_ListByOwner(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice@example.com")
	bob := seedUser(t, db, "bob@example.com")
	repo := db.Listings()
	ctx := context.Background()

	repo.Create(ctx, &domain.Listing{Title: "A1", Location: "Goa", OwnerID: alice.ID})
	repo.Create(ctx, &domain.Listing{Title: "B1", Location: "Goa", OwnerID: bob.ID})
	repo.Create(ctx, &domain.Listing{Title: "A2", Location: "Goa", OwnerID: alice.ID})

	listings, err := repo.ListByOwner(ctx, alice.ID)
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(listings) != 2 {
		t.Fatalf("expected 2 listings for alice, got %d", len(listings))
	}
	for _, l := range listings {
		if l.OwnerID != alice.ID {
			t.Fatalf("listing %q belongs to %d", l.Title, l.OwnerID)
		}
	}
}

func TestListingRepository_Update(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@example.com")
	repo := db.Listings()
	ctx := context.Background()

	l := &domain.Listing{Title: "Hilltop", Location: "Parker Road", Price: 12000, OwnerID: owner.ID}
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}

	l.Price = 15000
	l.Title = "Hilltop Cottage"
	if err := repo.Update(ctx, l); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := repo.GetByID(ctx, l.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Price != 15000 || got.Title != "Hilltop Cottage" {
		t.Fatalf("update not persisted: %+v", got)
	}
}

func TestListingRepository_Update_NotFound(t *testing.T) {
	db := newTestDB(t)

	err := db.Listings().Update(context.Background(), &domain.Listing{ID: "missing", Title: "x", Location: "y"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
