package dto

type CustomerGroupDTO struct {
	Customer string     `json:"customer"`
	Orders   []OrderDTO `json:"orders"`
}

type WeekScheduleResponse struct {
	Week      string             `json:"week"`
	Customers []CustomerGroupDTO `json:"customers"`
	Shipped   []OrderDTO         `json:"shipped"`
}

type ChangeDeliveryDateRequest struct {
	DeliveryDate string `json:"deliveryDate"`
}

type UpdateShipQtyRequest struct {
	ShipQty int `json:"shipQty"`
}
