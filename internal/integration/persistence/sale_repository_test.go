package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/field-console/backend/internal/application/adapter"
	"github.com/field-console/backend/internal/domain/entity"
	domainerror "github.com/field-console/backend/internal/domain/error"
)

func seedSale(t *testing.T, repo adapter.SaleRepository, memberID uuid.UUID, saleID string, dofa int, saleDate time.Time, products []*entity.ProductEntry) {
	t.Helper()

	row := &entity.SaleRow{
		SaleTransactionID: saleID,
		Dofa:              dofa,
		SaleDate:          saleDate,
		Products:          products,
	}
	if err := repo.Create(context.Background(), memberID, row); err != nil {
		t.Fatalf("failed to seed sale %s: %v", saleID, err)
	}
}

func productEntry(saleID string, n int, name string, total int64, paid int64, installments int) *entity.ProductEntry {
	distID := entity.NewDistributionID(saleID, n)
	return &entity.ProductEntry{
		ProductName:          name,
		TotalAmount:          decimal.NewFromInt(total),
		TotalInstallments:    installments,
		InstallmentFrequency: entity.FrequencyDaily,
		DistributionID:       &distID,
		PaidAmount:           decimal.NewFromInt(paid),
	}
}

func TestSaleRepository_CreateAndFindRows(t *testing.T) {
	db := openTestDB(t)
	repo := NewSaleRepository(db)
	ctx := context.Background()

	collectorID := seedCollector(t, db)
	memberID := seedMember(t, db, collectorID, "Amina")

	later := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	earlier := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	seedSale(t, repo, memberID, "S-2000", 2, later, []*entity.ProductEntry{
		productEntry("S-2000", 1, "Blender", 2000, 0, 8),
	})
	seedSale(t, repo, memberID, "S-1000", 1, earlier, []*entity.ProductEntry{
		productEntry("S-1000", 1, "Rice Cooker", 3000, 0, 10),
		productEntry("S-1000", 2, "Kettle", 1200, 0, 10),
	})

	rows, err := repo.FindRowsByMember(ctx, memberID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	t.Run("rows come back in sale date order", func(t *testing.T) {
		if rows[0].SaleTransactionID != "S-1000" || rows[1].SaleTransactionID != "S-2000" {
			t.Errorf("expected order [S-1000 S-2000], got [%s %s]", rows[0].SaleTransactionID, rows[1].SaleTransactionID)
		}
	})

	t.Run("product entries keep their positions", func(t *testing.T) {
		first := rows[0]
		if len(first.Products) != 2 {
			t.Fatalf("expected 2 products, got %d", len(first.Products))
		}
		if first.Products[0].ProductName != "Rice Cooker" || first.Products[1].ProductName != "Kettle" {
			t.Errorf("expected product order [Rice Cooker Kettle], got [%s %s]",
				first.Products[0].ProductName, first.Products[1].ProductName)
		}
		if !first.TotalAmount().Equal(decimal.NewFromInt(4200)) {
			t.Errorf("expected row total 4200, got %s", first.TotalAmount())
		}
	})

	t.Run("rows carry their distribution IDs", func(t *testing.T) {
		ids := rows[0].DistributionIDs()
		if len(ids) != 2 || ids[0] != "DIST-S-1000-1" || ids[1] != "DIST-S-1000-2" {
			t.Errorf("unexpected distribution IDs: %v", ids)
		}
	})
}

func TestSaleRepository_FindRowBySaleTransactionID(t *testing.T) {
	db := openTestDB(t)
	repo := NewSaleRepository(db)
	ctx := context.Background()

	collectorID := seedCollector(t, db)
	memberID := seedMember(t, db, collectorID, "Amina")
	saleDate := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	seedSale(t, repo, memberID, "S-1000", 1, saleDate, []*entity.ProductEntry{
		productEntry("S-1000", 1, "Rice Cooker", 3000, 0, 10),
	})

	row, err := repo.FindRowBySaleTransactionID(ctx, memberID, "S-1000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if row.Dofa != 1 {
		t.Errorf("expected dofa 1, got %d", row.Dofa)
	}

	_, err = repo.FindRowBySaleTransactionID(ctx, memberID, "S-9999")
	if !errors.Is(err, domainerror.ErrSaleNotFound) {
		t.Errorf("expected ErrSaleNotFound, got %v", err)
	}
}

func TestSaleRepository_NextDofa(t *testing.T) {
	db := openTestDB(t)
	repo := NewSaleRepository(db)
	ctx := context.Background()

	collectorID := seedCollector(t, db)
	memberID := seedMember(t, db, collectorID, "Amina")

	next, err := repo.NextDofa(ctx, memberID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next != 1 {
		t.Errorf("expected first dofa 1, got %d", next)
	}

	saleDate := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	seedSale(t, repo, memberID, "S-1000", 3, saleDate, []*entity.ProductEntry{
		productEntry("S-1000", 1, "Rice Cooker", 3000, 0, 10),
	})

	next, err = repo.NextDofa(ctx, memberID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next != 4 {
		t.Errorf("expected next dofa 4, got %d", next)
	}
}

func TestSaleRepository_GetOutstandingTotals(t *testing.T) {
	db := openTestDB(t)
	repo := NewSaleRepository(db)
	ctx := context.Background()

	collectorID := seedCollector(t, db)
	memberID := seedMember(t, db, collectorID, "Amina")
	otherCollectorID := seedCollector(t, db)
	otherMemberID := seedMember(t, db, otherCollectorID, "Karim")

	saleDate := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	seedSale(t, repo, memberID, "S-1000", 1, saleDate, []*entity.ProductEntry{
		productEntry("S-1000", 1, "Rice Cooker", 3000, 300, 10),
	})
	seedSale(t, repo, memberID, "S-2000", 2, saleDate, []*entity.ProductEntry{
		productEntry("S-2000", 1, "Blender", 2000, 2000, 8),
	})
	seedSale(t, repo, otherMemberID, "S-3000", 1, saleDate, []*entity.ProductEntry{
		productEntry("S-3000", 1, "Fan", 5000, 0, 10),
	})

	totals, err := repo.GetOutstandingTotals(ctx, collectorID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !totals.TotalSold.Equal(decimal.NewFromInt(5000)) {
		t.Errorf("expected total sold 5000, got %s", totals.TotalSold)
	}
	if !totals.TotalCollected.Equal(decimal.NewFromInt(2300)) {
		t.Errorf("expected total collected 2300, got %s", totals.TotalCollected)
	}
	if !totals.TotalOutstanding.Equal(decimal.NewFromInt(2700)) {
		t.Errorf("expected outstanding 2700, got %s", totals.TotalOutstanding)
	}
	if totals.ActiveSales != 1 {
		t.Errorf("expected 1 active sale, got %d", totals.ActiveSales)
	}
}
