package dto

type SubmitOrderRequest struct {
	CustomerID   string `json:"customerId"`
	OrderTypeID  string `json:"orderTypeId"`
	ProductID    string `json:"productId"`
	Material     string `json:"material"`
	IFSOrderNo   string `json:"ifsOrderNo"`
	CustomerPO   string `json:"customerPO"`
	Size         string `json:"size"`
	Quantity     int    `json:"quantity"`
	DeliveryDate string `json:"deliveryDate,omitempty"`
	CreatedBy    string `json:"createdBy"`
}

type AllocateRangeRequest struct {
	Category string `json:"category"`
	Quantity int    `json:"quantity"`
}

type AllocationResponse struct {
	Category string `json:"category"`
	First    int    `json:"first"`
	Last     int    `json:"last"`
	Display  string `json:"display"`
}
