package dto

type OrderItemResponse struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int64   `json:"quantity"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
}

type ShippingAddressResponse struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

type PaymentResultResponse struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	UpdateTime   string `json:"update_time"`
	EmailAddress string `json:"email_address"`
}

type OrderResponse struct {
	ID              int64                   `json:"id"`
	UserID          int64                   `json:"user_id"`
	UserName        string                  `json:"user_name,omitempty"`
	UserEmail       string                  `json:"user_email,omitempty"`
	OrderItems      []OrderItemResponse     `json:"order_items"`
	ShippingAddress ShippingAddressResponse `json:"shipping_address"`
	PaymentMethod   string                  `json:"payment_method"`
	ItemsPrice      float64                 `json:"items_price"`
	TaxPrice        float64                 `json:"tax_price"`
	ShippingPrice   float64                 `json:"shipping_price"`
	TotalPrice      float64                 `json:"total_price"`
	IsPaid          bool                    `json:"is_paid"`
	PaidAt          *int64                  `json:"paid_at"`
	PaymentResult   *PaymentResultResponse  `json:"payment_result,omitempty"`
	IsDelivered     bool                    `json:"is_delivered"`
	DeliveredAt     *int64                  `json:"delivered_at"`
	OrderStatus     string                  `json:"order_status"`
	CreatedAt       int64                   `json:"created_at"`
}

type PaymentIntentResponse struct {
	ClientSecret string `json:"client_secret"`
}

type OrderStatsResponse struct {
	TotalOrders  int64           `json:"total_orders"`
	TotalRevenue float64         `json:"total_revenue"`
	RecentOrders []OrderResponse `json:"recent_orders"`
}
