package steps

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/field-console/backend/internal/domain/entity"
	"github.com/field-console/backend/internal/integration/persistence/model"
)

func (t *testContext) aCollectorExistsWithEmailAndPassword(email, password string) error {
	collectorID := uuid.New()
	t.currentCollectorID = collectorID
	t.currentCollectorEmail = email

	now := time.Now().UTC()
	collector := &model.CollectorModel{
		ID:           collectorID,
		Email:        email,
		Name:         "Test Collector",
		PasswordHash: hashPassword(password),
		Branch:       "Mirpur",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	return testDB.DbConn.Create(collector).Error
}

func hashPassword(password string) string {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(fmt.Sprintf("failed to hash password: %v", err))
	}
	return string(hashedBytes)
}

func (t *testContext) theCollectorIsLoggedIn() error {
	if t.currentCollectorID == uuid.Nil {
		return fmt.Errorf("no collector seeded")
	}

	pair, err := tokenService.GenerateTokenPair(context.Background(), t.currentCollectorID, t.currentCollectorEmail, false)
	if err != nil {
		return fmt.Errorf("failed to generate token pair: %w", err)
	}

	t.accessToken = pair.AccessToken
	t.refreshToken = pair.RefreshToken
	return nil
}

func (t *testContext) aMemberExistsNamedWithSchedule(name, scheduleMode string) error {
	memberID := uuid.New()
	t.currentMemberID = memberID

	weekday := 0
	if scheduleMode == "weekly" {
		weekday = int(time.Monday)
	}

	zero := decimal.Zero
	now := time.Now().UTC()
	member := &model.MemberModel{
		ID:              memberID,
		CollectorID:     t.currentCollectorID,
		Name:            name,
		Phone:           "01700000000",
		Area:            "Block C",
		TotalSavings:    &zero,
		ScheduleMode:    scheduleMode,
		ScheduleWeekday: weekday,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	return testDB.DbConn.Create(member).Error
}

func (t *testContext) theMemberHasAProductSale(product, total string, installments int, date string) error {
	saleDate, err := time.Parse("2006-01-02", date)
	if err != nil {
		return fmt.Errorf("invalid sale date: %w", err)
	}
	amount, err := decimal.NewFromString(total)
	if err != nil {
		return fmt.Errorf("invalid sale amount: %w", err)
	}

	saleID := "S-" + strings.Split(uuid.NewString(), "-")[0]
	distID := entity.NewDistributionID(saleID, 1)
	t.lastSaleID = saleID
	t.lastDistributionID = distID

	row := &entity.SaleRow{
		SaleTransactionID: saleID,
		Dofa:              1,
		SaleDate:          saleDate,
		Products: []*entity.ProductEntry{
			{
				ProductName:          product,
				TotalAmount:          amount,
				TotalInstallments:    installments,
				InstallmentFrequency: entity.FrequencyDaily,
				DistributionID:       &distID,
				PaidAmount:           decimal.Zero,
			},
		},
	}

	return testDB.DbConn.Create(model.ProductSaleFromEntity(t.currentMemberID, row)).Error
}

func (t *testContext) theMemberHasARecord(amount, note, date string) error {
	return t.seedRecord(amount, note, date, nil)
}

func (t *testContext) theMemberHasAnAttributedPayment(amount, date string) error {
	if t.lastDistributionID == "" {
		return fmt.Errorf("no sale seeded to attribute against")
	}
	distID := t.lastDistributionID
	return t.seedRecord(amount, "Product Loan Installment", date, &distID)
}

func (t *testContext) seedRecord(amount, note, date string, distributionID *string) error {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return fmt.Errorf("invalid record date: %w", err)
	}
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("invalid record amount: %w", err)
	}

	recordType := entity.RecordTypeRegular
	if strings.Contains(note, "Savings") || strings.Contains(note, "সঞ্চয়") {
		recordType = entity.RecordTypeExtra
	}

	record := &model.CollectionRecordModel{
		ID:             uuid.New(),
		MemberID:       t.currentMemberID,
		Amount:         value,
		PaidAmount:     &value,
		Type:           string(recordType),
		Status:         string(entity.RecordStatusCollected),
		Note:           note,
		DistributionID: distributionID,
		CollectionDate: &day,
		CreatedAt:      time.Now().UTC(),
	}

	return testDB.DbConn.Create(record).Error
}
