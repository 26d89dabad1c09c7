// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Maps order domain entities to relational database tables with proper indexing
// for efficient querying by status and partner assignment. The scheduled
// delivery time is stored as minutes since midnight.
type OrderDTO struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey"`
	OrderNumber     string         `gorm:"type:varchar(64);uniqueIndex;not null"`
	CustomerName    string         `gorm:"type:varchar(255);not null"`
	CustomerPhone   string         `gorm:"type:varchar(32);not null"`
	CustomerAddress string         `gorm:"type:varchar(512);not null"`
	Area            string         `gorm:"type:varchar(128);not null;index"`
	Items           []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	ScheduledFor    int            `gorm:"type:smallint;not null"`
	Status          string         `gorm:"type:varchar(16);not null;index"`
	PartnerID       *uuid.UUID     `gorm:"type:uuid;index"`
	TotalAmount     float64        `gorm:"type:numeric(12,2);not null"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents a single line item within an order.
// Links to the parent order via foreign key. Items are immutable once the
// order is created, so updates never touch this table.
type OrderItemDTO struct {
	ID       int64     `gorm:"primaryKey;autoIncrement"`
	OrderID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Name     string    `gorm:"type:varchar(255);not null"`
	Quantity int       `gorm:"type:int;not null"`
	Price    float64   `gorm:"type:numeric(12,2);not null"`
}

// TableName specifies the database table name for order line items.
// Overrides GORM's default naming convention to use "order_items".
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database representation.
// Maps all order attributes including line items and optional partner assignment.
func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()

	var partnerID *uuid.UUID
	if id := aggregate.Partner(); id != nil {
		raw := id.Bytes()
		partnerID = &raw
	}

	items := make([]OrderItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, OrderItemDTO{
			OrderID:  orderID,
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}

	customer := aggregate.Customer()
	return OrderDTO{
		ID:              orderID,
		OrderNumber:     aggregate.OrderNumber(),
		CustomerName:    customer.Name,
		CustomerPhone:   customer.Phone,
		CustomerAddress: customer.Address,
		Area:            aggregate.Area(),
		Items:           items,
		ScheduledFor:    aggregate.ScheduledFor().Minutes(),
		Status:          aggregate.Status().String(),
		PartnerID:       partnerID,
		TotalAmount:     aggregate.TotalAmount(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including status and partner assignment using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var partnerID *kernel.UUID
	if dto.PartnerID != nil {
		pID, partnerErr := kernel.UUIDFromBytes((*dto.PartnerID)[:])
		if partnerErr != nil {
			return nil, partnerErr
		}

		partnerID = &pID
	}

	scheduledFor, err := kernel.TimeOfDayFromMinutes(dto.ScheduledFor)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, item := range dto.Items {
		items = append(items, order.Item{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}

	return order.RestoreOrder(
		id,
		dto.OrderNumber,
		order.Customer{
			Name:    dto.CustomerName,
			Phone:   dto.CustomerPhone,
			Address: dto.CustomerAddress,
		},
		dto.Area,
		items,
		scheduledFor,
		status,
		partnerID,
		dto.TotalAmount,
	)
}
