// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/field-console/backend/internal/domain/entity"
)

// ProductSaleModel represents the product_sales table: one row per sale
// checkout. ProductNames is a denormalized listing column; the per-product
// figures live in sale_items.
type ProductSaleModel struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey"`
	MemberID          uuid.UUID      `gorm:"type:uuid;not null;index"`
	SaleTransactionID string         `gorm:"type:varchar(50);uniqueIndex;not null"`
	Dofa              int            `gorm:"type:integer;not null"`
	SaleDate          time.Time      `gorm:"not null;index"`
	ProductNames      pq.StringArray `gorm:"type:text[]"`
	CreatedAt         time.Time      `gorm:"not null"`

	Member *MemberModel     `gorm:"foreignKey:MemberID;references:ID"`
	Items  []*SaleItemModel `gorm:"foreignKey:SaleID;references:ID"`
}

// TableName returns the table name for the ProductSaleModel.
func (ProductSaleModel) TableName() string {
	return "product_sales"
}

// SaleItemModel represents the sale_items table: one row per product entry
// within a sale.
type SaleItemModel struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SaleID               uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName          string          `gorm:"type:varchar(100);not null"`
	TotalAmount          decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	TotalInstallments    int             `gorm:"type:integer;not null"`
	InstallmentFrequency string          `gorm:"type:varchar(10);not null"`
	DeliveryDate         *time.Time
	DistributionID       *string         `gorm:"type:varchar(100);index"`
	PaidAmount           decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Position             int             `gorm:"type:integer;not null"`
}

// TableName returns the table name for the SaleItemModel.
func (SaleItemModel) TableName() string {
	return "sale_items"
}

// ToEntity converts a ProductSaleModel with its items to a domain SaleRow.
func (m *ProductSaleModel) ToEntity() *entity.SaleRow {
	row := &entity.SaleRow{
		SaleTransactionID: m.SaleTransactionID,
		Dofa:              m.Dofa,
		SaleDate:          m.SaleDate,
		Products:          make([]*entity.ProductEntry, 0, len(m.Items)),
	}
	for _, item := range m.Items {
		row.Products = append(row.Products, &entity.ProductEntry{
			ProductName:          item.ProductName,
			TotalAmount:          item.TotalAmount,
			TotalInstallments:    item.TotalInstallments,
			InstallmentFrequency: entity.InstallmentFrequency(item.InstallmentFrequency),
			DeliveryDate:         item.DeliveryDate,
			DistributionID:       item.DistributionID,
			PaidAmount:           item.PaidAmount,
		})
	}
	return row
}

// ProductSaleFromEntity creates a ProductSaleModel with items from a domain
// SaleRow.
func ProductSaleFromEntity(memberID uuid.UUID, row *entity.SaleRow) *ProductSaleModel {
	saleID := uuid.New()
	model := &ProductSaleModel{
		ID:                saleID,
		MemberID:          memberID,
		SaleTransactionID: row.SaleTransactionID,
		Dofa:              row.Dofa,
		SaleDate:          row.SaleDate,
		ProductNames:      pq.StringArray(row.ProductNames()),
		CreatedAt:         time.Now().UTC(),
	}
	for i, product := range row.Products {
		model.Items = append(model.Items, &SaleItemModel{
			ID:                   uuid.New(),
			SaleID:               saleID,
			ProductName:          product.ProductName,
			TotalAmount:          product.TotalAmount,
			TotalInstallments:    product.TotalInstallments,
			InstallmentFrequency: string(product.InstallmentFrequency),
			DeliveryDate:         product.DeliveryDate,
			DistributionID:       product.DistributionID,
			PaidAmount:           product.PaidAmount,
			Position:             i,
		})
	}
	return model
}
