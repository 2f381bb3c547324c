// Package sale contains product-sale use cases.
package sale

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/field-console/backend/internal/application/adapter"
	"github.com/field-console/backend/internal/domain/entity"
	domainerror "github.com/field-console/backend/internal/domain/error"
)

// ProductInput is one product entry of a sale submission.
type ProductInput struct {
	Name                 string
	TotalAmount          decimal.Decimal
	TotalInstallments    int
	InstallmentFrequency entity.InstallmentFrequency
	DeliveryDate         *time.Time
}

// RegisterSaleInput represents the input for registering a product sale.
type RegisterSaleInput struct {
	CollectorID uuid.UUID
	MemberID    uuid.UUID
	SaleDate    *time.Time
	Products    []ProductInput
}

// RegisterSaleOutput represents the output of registering a product sale.
type RegisterSaleOutput struct {
	SaleTransactionID string
	DistributionIDs   []string
	Row               *entity.SaleRow
}

// RegisterSaleUseCase handles registering a sale of one or more products on
// installment credit.
type RegisterSaleUseCase struct {
	memberRepo      adapter.MemberRepository
	saleRepo        adapter.SaleRepository
	transactionRepo adapter.TransactionRepository
}

// NewRegisterSaleUseCase creates a new RegisterSaleUseCase instance.
func NewRegisterSaleUseCase(
	memberRepo adapter.MemberRepository,
	saleRepo adapter.SaleRepository,
	transactionRepo adapter.TransactionRepository,
) *RegisterSaleUseCase {
	return &RegisterSaleUseCase{
		memberRepo:      memberRepo,
		saleRepo:        saleRepo,
		transactionRepo: transactionRepo,
	}
}

// Execute registers the sale. All products sold in one checkout share the
// generated sale transaction ID and get sequential distribution IDs. A
// sale-creation record is written alongside so the ledger shows the event;
// its note format keeps it out of payment attribution.
func (uc *RegisterSaleUseCase) Execute(ctx context.Context, input RegisterSaleInput) (*RegisterSaleOutput, error) {
	if len(input.Products) == 0 {
		return nil, domainerror.ErrEmptySaleProducts
	}
	for _, p := range input.Products {
		if p.TotalInstallments <= 0 {
			return nil, domainerror.ErrInvalidInstallmentCount
		}
		if !p.TotalAmount.IsPositive() {
			return nil, domainerror.ErrInvalidCollectionAmount
		}
	}

	owned, err := uc.memberRepo.ExistsByIDAndCollector(ctx, input.MemberID, input.CollectorID)
	if err != nil {
		return nil, fmt.Errorf("failed to check member ownership: %w", err)
	}
	if !owned {
		return nil, domainerror.ErrMemberNotOwnedByCollector
	}

	saleDate := time.Now().UTC()
	if input.SaleDate != nil {
		saleDate = input.SaleDate.UTC()
	}

	dofa, err := uc.saleRepo.NextDofa(ctx, input.MemberID)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate sale sequence: %w", err)
	}

	saleID := newSaleTransactionID()
	row := &entity.SaleRow{
		SaleTransactionID: saleID,
		Dofa:              dofa,
		SaleDate:          saleDate,
		Products:          make([]*entity.ProductEntry, 0, len(input.Products)),
	}

	distributionIDs := make([]string, 0, len(input.Products))
	for i, p := range input.Products {
		distID := entity.NewDistributionID(saleID, i+1)
		distributionIDs = append(distributionIDs, distID)
		row.Products = append(row.Products, &entity.ProductEntry{
			ProductName:          p.Name,
			TotalAmount:          p.TotalAmount,
			TotalInstallments:    p.TotalInstallments,
			InstallmentFrequency: p.InstallmentFrequency,
			DeliveryDate:         p.DeliveryDate,
			DistributionID:       &distID,
			PaidAmount:           decimal.Zero,
		})
	}

	if err := uc.saleRepo.Create(ctx, input.MemberID, row); err != nil {
		return nil, fmt.Errorf("failed to create sale: %w", err)
	}

	record := entity.NewCollectionRecord(
		input.MemberID,
		row.TotalAmount(),
		entity.RecordTypeExtra,
		entity.RecordStatusCollected,
		saleCreationNote(row),
		nil,
		&saleDate,
	)
	if err := uc.transactionRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create sale record: %w", err)
	}

	return &RegisterSaleOutput{
		SaleTransactionID: saleID,
		DistributionIDs:   distributionIDs,
		Row:               row,
	}, nil
}

// newSaleTransactionID generates a short sale transaction ID.
func newSaleTransactionID() string {
	return "S-" + strings.Split(uuid.NewString(), "-")[0]
}

// saleCreationNote builds the audit note of the sale event. The "Product
// Sale:" prefix and "SaleID:" marker identify it as a non-payment record.
func saleCreationNote(row *entity.SaleRow) string {
	return fmt.Sprintf("Product Sale: %s | SaleID: %s",
		strings.Join(row.ProductNames(), ", "), row.SaleTransactionID)
}
