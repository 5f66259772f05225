package test

import (
	"context"

	"github.com/storekit/orders/internal/domain/model"
)

// CatalogStub validates products for tests.
type CatalogStub struct {
	ValidateFn func(context.Context, []string) ([]model.Product, error)
	Products   []model.Product
	Err        error

	ValidateCalls [][]string
}

// Validate returns configured snapshot or echoes requested ids with defaults.
func (s *CatalogStub) Validate(ctx context.Context, ids []string) ([]model.Product, error) {
	s.ValidateCalls = append(s.ValidateCalls, ids)
	if s.ValidateFn != nil {
		return s.ValidateFn(ctx, ids)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Products != nil {
		return s.Products, nil
	}
	products := make([]model.Product, 0, len(ids))
	for _, id := range ids {
		products = append(products, model.Product{ID: id, Name: "Product " + id, Price: 1})
	}
	return products, nil
}

// PaymentsStub opens payment sessions for tests.
type PaymentsStub struct {
	CreateSessionFn func(context.Context, model.PaymentSessionRequest) (*model.PaymentSession, error)
	Session         *model.PaymentSession
	Err             error

	Requests []model.PaymentSessionRequest
}

// CreateSession returns configured session or a default handle.
func (s *PaymentsStub) CreateSession(ctx context.Context, req model.PaymentSessionRequest) (*model.PaymentSession, error) {
	s.Requests = append(s.Requests, req)
	if s.CreateSessionFn != nil {
		return s.CreateSessionFn(ctx, req)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Session != nil {
		return s.Session, nil
	}
	return &model.PaymentSession{ID: "sess-1", URL: "https://payments.local/sess-1"}, nil
}
