package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/field-console/backend/internal/domain/entity"
	domainerror "github.com/field-console/backend/internal/domain/error"
	"github.com/field-console/backend/internal/domain/valueobject"
	"github.com/field-console/backend/internal/integration/persistence/model"
)

func TestMemberRepository_CreateAndFind(t *testing.T) {
	db := openTestDB(t)
	repo := NewMemberRepository(db)
	ctx := context.Background()
	collectorID := seedCollector(t, db)

	first := entity.NewMember(collectorID, "Rahima", "01700000001", "Block A", valueobject.ScheduleDaily)
	second := entity.NewMember(collectorID, "Amina", "01700000002", "Block B", valueobject.ScheduleDaily)

	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("failed to create member: %v", err)
	}
	if err := repo.Create(ctx, second); err != nil {
		t.Fatalf("failed to create member: %v", err)
	}

	t.Run("FindByID returns the member", func(t *testing.T) {
		found, err := repo.FindByID(ctx, first.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if found.Name != "Rahima" {
			t.Errorf("expected name Rahima, got %s", found.Name)
		}
	})

	t.Run("FindByID of a missing member returns the domain error", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		if !errors.Is(err, domainerror.ErrMemberNotFound) {
			t.Errorf("expected ErrMemberNotFound, got %v", err)
		}
	})

	t.Run("FindByCollector orders members by name", func(t *testing.T) {
		members, err := repo.FindByCollector(ctx, collectorID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(members) != 2 {
			t.Fatalf("expected 2 members, got %d", len(members))
		}
		if members[0].Name != "Amina" || members[1].Name != "Rahima" {
			t.Errorf("expected name order [Amina Rahima], got [%s %s]", members[0].Name, members[1].Name)
		}
	})

	t.Run("FindByCollector excludes other collectors", func(t *testing.T) {
		members, err := repo.FindByCollector(ctx, uuid.New())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(members) != 0 {
			t.Errorf("expected no members, got %d", len(members))
		}
	})
}

func TestMemberRepository_AdjustTotalSavings(t *testing.T) {
	db := openTestDB(t)
	repo := NewMemberRepository(db)
	ctx := context.Background()
	collectorID := seedCollector(t, db)
	memberID := seedMember(t, db, collectorID, "Amina")

	if err := repo.AdjustTotalSavings(ctx, memberID, decimal.NewFromInt(50)); err != nil {
		t.Fatalf("failed to adjust savings: %v", err)
	}
	if err := repo.AdjustTotalSavings(ctx, memberID, decimal.NewFromInt(-20)); err != nil {
		t.Fatalf("failed to adjust savings: %v", err)
	}

	member, err := repo.FindByID(ctx, memberID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if member.TotalSavings == nil || !member.TotalSavings.Equal(decimal.NewFromInt(30)) {
		t.Errorf("expected total savings 30, got %v", member.TotalSavings)
	}

	t.Run("legacy members without a balance are untouched", func(t *testing.T) {
		legacyID := uuid.New()
		legacy := &model.MemberModel{
			ID:           legacyID,
			CollectorID:  collectorID,
			Name:         "Legacy",
			ScheduleMode: "daily",
		}
		if err := db.Create(legacy).Error; err != nil {
			t.Fatalf("failed to seed legacy member: %v", err)
		}

		if err := repo.AdjustTotalSavings(ctx, legacyID, decimal.NewFromInt(100)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		found, err := repo.FindByID(ctx, legacyID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if found.TotalSavings != nil {
			t.Errorf("expected nil total savings, got %v", found.TotalSavings)
		}
	})
}

func TestMemberRepository_ExistsByIDAndCollector(t *testing.T) {
	db := openTestDB(t)
	repo := NewMemberRepository(db)
	ctx := context.Background()
	collectorID := seedCollector(t, db)
	memberID := seedMember(t, db, collectorID, "Amina")

	exists, err := repo.ExistsByIDAndCollector(ctx, memberID, collectorID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exists {
		t.Error("expected member to belong to the collector")
	}

	exists, err = repo.ExistsByIDAndCollector(ctx, memberID, uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exists {
		t.Error("expected member not to belong to another collector")
	}
}
