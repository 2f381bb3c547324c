// Package valueobject contains domain value objects for the Field Console system.
package valueobject

// RecordKind is the classification of a raw transaction record. Free-text
// notes are the primary signal; type and status tags alone conflate
// sale-creation, payment and savings events.
type RecordKind string

const (
	// KindProductSaleCreation is the record documenting a sale itself,
	// never a payment.
	KindProductSaleCreation RecordKind = "product_sale_creation"
	// KindLoanInstallmentPayment is an installment payment against a
	// product loan.
	KindLoanInstallmentPayment RecordKind = "loan_installment_payment"
	// KindSavingsDeposit is a savings collection or opening balance.
	KindSavingsDeposit RecordKind = "savings_deposit"
	// KindSavingsWithdrawal is a withdrawal from the savings ledger.
	KindSavingsWithdrawal RecordKind = "savings_withdrawal"
	// KindIgnorable is anything that must not contribute to aggregation.
	KindIgnorable RecordKind = "ignorable"
)

// ClassifierConfig holds the note phrases the classifier matches on.
// Configurable so rule behavior can be probed in tests without code changes.
type ClassifierConfig struct {
	ProductSalePhrase    string
	SaleIDMarker         string
	SavingsPhrase        string
	SavingsLocalePhrases []string
	WithdrawalPhrase     string
	InitialSavingsPhrase string
	LoanPaymentPhrases   []string
}

// DefaultClassifierConfig returns the phrases used by the production note
// formats.
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		ProductSalePhrase:    "Product Sale:",
		SaleIDMarker:         "SaleID:",
		SavingsPhrase:        "Savings Collection",
		SavingsLocalePhrases: []string{"সঞ্চয়"},
		WithdrawalPhrase:     "Savings Withdrawal",
		InitialSavingsPhrase: "Initial Savings",
		LoanPaymentPhrases:   []string{"Product Loan", "Installment", "Full Payment", "Partial Payment"},
	}
}
