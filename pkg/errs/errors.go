package errs

import (
	"errors"
	"net/http"
)

const (
	ErrStatusInternalServer   = http.StatusInternalServerError
	ErrStatusClient           = http.StatusBadRequest
	ErrStatusNotLoggedIn      = http.StatusUnauthorized
	ErrStatusNoPermission     = http.StatusForbidden
	ErrStatusUnauthorized     = http.StatusUnauthorized
	ErrStatusNotFound         = http.StatusNotFound
	ErrStatusEmailAlreadyUsed = http.StatusBadRequest
	ErrStatusBadGateway       = http.StatusBadGateway
)

var (
	ErrInternalServer          = errors.New("Internal server error")
	ErrClient                  = errors.New("Bad request")
	ErrNotLoggedIn             = errors.New("Not authorized, token failed")
	ErrInvalidCredentialsEmail = errors.New("Invalid email or password")
	ErrForbidden               = errors.New("Forbidden access")
	ErrNotFound                = errors.New("Resource not found")
	ErrAccountNotFound         = errors.New("Account not found")
	ErrEmailAlreadyUsed        = errors.New("Email has already been used")
	ErrWrongPassword           = errors.New("Current password is incorrect")
	ErrProductNotFound         = errors.New("Product not found")
	ErrOrderNotFound           = errors.New("Order not found")
	ErrNoOrderItems            = errors.New("No order items")
	ErrInsufficientStock       = errors.New("Insufficient stock")
	ErrAlreadyReviewed         = errors.New("Product already reviewed")
	ErrInvalidCategory         = errors.New("Invalid product category")
	ErrInvalidOrderStatus      = errors.New("Invalid order status")
	ErrPaymentGateway          = errors.New("Payment gateway error")
)

var errorMap = map[error]int{
	ErrInternalServer:          ErrStatusInternalServer,
	ErrClient:                  ErrStatusClient,
	ErrNotLoggedIn:             ErrStatusNotLoggedIn,
	ErrInvalidCredentialsEmail: ErrStatusUnauthorized,
	ErrForbidden:               ErrStatusNoPermission,
	ErrNotFound:                ErrStatusNotFound,
	ErrAccountNotFound:         ErrStatusNotFound,
	ErrEmailAlreadyUsed:        ErrStatusEmailAlreadyUsed,
	ErrWrongPassword:           ErrStatusUnauthorized,
	ErrProductNotFound:         ErrStatusNotFound,
	ErrOrderNotFound:           ErrStatusNotFound,
	ErrNoOrderItems:            ErrStatusClient,
	ErrInsufficientStock:       ErrStatusClient,
	ErrAlreadyReviewed:         ErrStatusClient,
	ErrInvalidCategory:         ErrStatusClient,
	ErrInvalidOrderStatus:      ErrStatusClient,
	ErrPaymentGateway:          ErrStatusBadGateway,
}

func GetErrorStatusCode(err error) int {
	for sentinel, statusCode := range errorMap {
		if errors.Is(err, sentinel) {
			return statusCode
		}
	}
	return ErrStatusInternalServer
}
