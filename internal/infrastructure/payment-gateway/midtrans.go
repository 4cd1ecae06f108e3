package paymentgateway

import (
	"context"

	"github.com/alimikegami/marketplace-service/config"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

// PaymentGateway creates a provider-side pending charge and returns the
// opaque token the client uses to complete payment directly with the
// provider. Card data never transits this service.
type PaymentGateway interface {
	CreatePaymentIntent(ctx context.Context, orderRef string, amount int64) (clientSecret string, err error)
}

type MidtransGateway struct {
	client snap.Client
}

func CreateMidtransGateway(config *config.Config) PaymentGateway {
	midtrans.ServerKey = config.MidtransConfig.ServerKey
	midtrans.Environment = midtrans.Sandbox // Use midtrans.Production for production

	g := &MidtransGateway{}
	g.client.New(midtrans.ServerKey, midtrans.Environment)

	return g
}

func (g *MidtransGateway) CreatePaymentIntent(ctx context.Context, orderRef string, amount int64) (string, error) {
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderRef,
			GrossAmt: amount,
		},
		CreditCard: &snap.CreditCardDetails{
			Secure: true,
		},
	}

	resp, midtransErr := g.client.CreateTransaction(req)
	if midtransErr != nil {
		return "", midtransErr
	}

	return resp.Token, nil
}
