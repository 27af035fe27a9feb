package store

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"spicehouse/internal/models"
)

func TestOrderStoreCreateAndFind(t *testing.T) {
	db := testDB(t)
	products := NewProductStore(db)
	orders := NewOrderStore(db)

	p := &models.Product{
		Name:     uniqueName("Green Cardamom"),
		Category: models.CategoryCardamom,
		Price:    decimal.NewNullDecimal(decimal.RequireFromString("12.00")),
		IsActive: true,
	}
	if err := products.Save(ctx, p); err != nil {
		t.Fatalf("Save product: %v", err)
	}

	o := &models.Order{
		Name:   "Buyer",
		Email:  "buyer@example.com",
		Phone:  "123",
		Status: models.OrderStatusCompleted,
		Items: []models.OrderItem{
			{ProductID: p.ID, Quantity: 3, Price: p.Price},
		},
	}
	if err := orders.Create(ctx, o); err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() {
		db.Exec("DELETE FROM orders WHERE id = $1", o.ID)
		cleanProducts(t, db, p.ID)
	})

	if o.Status != models.OrderStatusPending {
		t.Errorf("status = %q, want pending", o.Status)
	}

	got, err := orders.FindByID(ctx, o.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got == nil || len(got.Items) != 1 {
		t.Fatalf("FindByID = %+v", got)
	}
	if got.Items[0].ProductName != p.Name {
		t.Errorf("product name = %q, want %q", got.Items[0].ProductName, p.Name)
	}
	if !got.Total().Equal(decimal.RequireFromString("36")) {
		t.Errorf("total = %s, want 36", got.Total())
	}

	if err := orders.UpdateStatus(ctx, o.ID, models.OrderStatusCancelled); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if err := orders.UpdateStatus(ctx, o.ID, models.OrderStatusPending); err != nil {
		t.Fatalf("UpdateStatus back to pending: %v", err)
	}
}

func TestOrderStoreFindMissing(t *testing.T) {
	db := testDB(t)
	got, err := NewOrderStore(db).FindByID(ctx, uuid.New())
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got != nil {
		t.Error("expected nil for an unknown order")
	}
}

func TestOrderStoreValidation(t *testing.T) {
	s := NewOrderStore(nil)
	if err := s.Create(ctx, &models.Order{Name: "x"}); err == nil {
		t.Error("expected an error for an order without items")
	}
	if err := s.UpdateStatus(ctx, uuid.New(), "shipped"); err == nil {
		t.Error("expected an error for an invalid status")
	}
}
