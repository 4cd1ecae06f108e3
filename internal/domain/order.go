package domain

const (
	PaymentMethodGateway = "Midtrans"
	PaymentMethodCOD     = "COD"
)

type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
)

var orderStatusRank = map[OrderStatus]int{
	OrderStatusProcessing: 0,
	OrderStatusShipped:    1,
	OrderStatusDelivered:  2,
}

func ParseOrderStatus(s string) (OrderStatus, bool) {
	status := OrderStatus(s)
	_, ok := orderStatusRank[status]
	return status, ok
}

// CanTransitionTo allows forward moves and re-assertions of the current
// status; backward transitions are rejected.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	from, ok := orderStatusRank[s]
	if !ok {
		return false
	}
	to, ok := orderStatusRank[next]
	if !ok {
		return false
	}
	return to >= from
}

type Order struct {
	ID                int64   `db:"id"`
	UserID            int64   `db:"user_id"`
	PaymentMethod     string  `db:"payment_method"`
	ItemsPrice        float64 `db:"items_price"`
	TaxPrice          float64 `db:"tax_price"`
	ShippingPrice     float64 `db:"shipping_price"`
	TotalPrice        float64 `db:"total_price"`
	ShippingStreet    string  `db:"shipping_street"`
	ShippingCity      string  `db:"shipping_city"`
	ShippingState     string  `db:"shipping_state"`
	ShippingZipCode   string  `db:"shipping_zip_code"`
	ShippingCountry   string  `db:"shipping_country"`
	IsPaid            bool    `db:"is_paid"`
	PaidAt            *int64  `db:"paid_at"`
	PaymentID         *string `db:"payment_id"`
	PaymentStatus     *string `db:"payment_status"`
	PaymentUpdateTime *string `db:"payment_update_time"`
	PaymentEmail      *string `db:"payment_email"`
	IsDelivered       bool    `db:"is_delivered"`
	DeliveredAt       *int64  `db:"delivered_at"`
	OrderStatus       string  `db:"order_status"`
	CreatedAt         int64   `db:"created_at"`
	UpdatedAt         int64   `db:"updated_at"`
	DeletedAt         *int64  `db:"deleted_at"`
	UserName          *string `db:"user_name"`
	UserEmail         *string `db:"user_email"`
	OrderItems        []OrderItem
}

// OrderItem is a value snapshot: later product edits must not alter
// historical orders.
type OrderItem struct {
	ID        int64   `db:"id"`
	OrderID   int64   `db:"order_id"`
	ProductID string  `db:"product_id"`
	Name      string  `db:"name"`
	Quantity  int64   `db:"quantity"`
	Price     float64 `db:"price"`
	Image     string  `db:"image"`
	CreatedAt int64   `db:"created_at"`
	UpdatedAt int64   `db:"updated_at"`
}
