package dto

import (
	"time"

	"aquaorders/internal/domain"
)

const dateLayout = "2006-01-02"

type OrderDTO struct {
	ID              uint      `json:"id"`
	AquaOrderNumber string    `json:"aquaOrderNumber"`
	CustomerID      string    `json:"customerId"`
	CustomerName    string    `json:"customerName"`
	OrderTypeID     string    `json:"orderTypeId"`
	OrderTypeName   string    `json:"orderTypeName"`
	ProductID       string    `json:"productId"`
	ProductName     string    `json:"productName"`
	Material        string    `json:"material"`
	Size            string    `json:"size"`
	IFSOrderNo      string    `json:"ifsOrderNo"`
	CustomerPO      string    `json:"customerPO"`
	Quantity        int       `json:"quantity"`
	ShipQty         *int      `json:"shipQty,omitempty"`
	Status          string    `json:"status"`
	StatusID        string    `json:"statusId"`
	DeliveryDate    string    `json:"deliveryDate,omitempty"`
	DeliveryWeek    string    `json:"deliveryWeek,omitempty"`
	CreatedBy       string    `json:"createdBy"`
	CreatedAt       time.Time `json:"createdAt"`
}

func NewOrderDTO(order domain.Order) OrderDTO {
	d := OrderDTO{
		ID:              order.ID,
		AquaOrderNumber: order.AquaOrderNumber,
		CustomerID:      order.CustomerID,
		CustomerName:    order.CustomerName,
		OrderTypeID:     order.OrderTypeID,
		OrderTypeName:   order.OrderTypeName,
		ProductID:       order.ProductID,
		ProductName:     order.ProductName,
		Material:        order.Material,
		Size:            order.Size,
		IFSOrderNo:      order.IFSOrderNo,
		CustomerPO:      order.CustomerPO,
		Quantity:        order.Quantity,
		ShipQty:         order.ShipQty,
		Status:          order.Status,
		StatusID:        order.StatusID,
		DeliveryWeek:    order.DeliveryWeek,
		CreatedBy:       order.CreatedBy,
		CreatedAt:       order.CreatedAt,
	}
	if order.DeliveryDate != nil {
		d.DeliveryDate = order.DeliveryDate.Format(dateLayout)
	}
	return d
}
