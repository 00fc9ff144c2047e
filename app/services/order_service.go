package services

import (
	"context"
	"fmt"
	"time"

	"github.com/lojas7/produtos/app/models"
	"github.com/lojas7/produtos/app/repositories"
	produtoshttp "github.com/lojas7/produtos/pkg/http"
	"github.com/lojas7/produtos/pkg/logger"
	"github.com/lojas7/produtos/pkg/metrics"
)

// OrderStatus is the terminal state of one forwarding run.
type OrderStatus int

const (
	OrderSent OrderStatus = iota
	OrderNotFound
	OrderFailed
)

func (s OrderStatus) String() string {
	switch s {
	case OrderSent:
		return "sent"
	case OrderNotFound:
		return "not_found"
	default:
		return "failed"
	}
}

// OrderOutcome is what Forward reports. Payload is set once the order has
// been built; Err only when Status is OrderFailed.
type OrderOutcome struct {
	Status  OrderStatus
	Payload *models.OrderPayload
	Err     error
}

// Downstream reports a failure of the order-intake call itself, as opposed
// to an internal one.
func (o OrderOutcome) Downstream() bool {
	return o.Status == OrderFailed && IsDownstream(o.Err)
}

// OrderService resolves product ids against the cache store and forwards
// the resulting order to the intake service in a single attempt.
type OrderService struct {
	repo      *repositories.ProductRepository
	intakeURL string
	timeout   time.Duration
	opts      options
}

func NewOrderService(repo *repositories.ProductRepository, intakeURL string, timeout time.Duration, opts ...Option) *OrderService {
	return &OrderService{
		repo:      repo,
		intakeURL: intakeURL,
		timeout:   timeout,
		opts:      buildOptions(opts),
	}
}

// Forward runs resolve, build and post once. Every failure, a panic
// included, comes back as an OrderFailed outcome.
func (s *OrderService) Forward(ctx context.Context, ids []int64) (out OrderOutcome) {
	log := logger.WithCtx(ctx).With("product_ids", ids)

	defer func() {
		if p := recover(); p != nil {
			out = OrderOutcome{Status: OrderFailed, Err: fmt.Errorf("services: forward order: %v", p)}
		}
		metrics.RecordOrderForward(out.Status.String())

		switch out.Status {
		case OrderSent:
			log.Info("order forwarded", "lines", len(out.Payload.Products))
		case OrderNotFound:
			log.Info("order not forwarded: no cached products")
		default:
			log.Error("order forwarding failed", "error", out.Err, "downstream", out.Downstream())
		}
	}()

	var resolved []models.ProductSummary
	err := s.repo.WithConnection(ctx, func(repo *repositories.ProductRepository) error {
		var err error
		resolved, err = repo.FindByIDs(ctx, ids)
		return err
	})
	if err != nil {
		return OrderOutcome{Status: OrderFailed, Err: err}
	}
	if len(resolved) == 0 {
		return OrderOutcome{Status: OrderNotFound}
	}

	payload := models.NewOrderPayload(resolved)
	if err := s.post(ctx, payload); err != nil {
		return OrderOutcome{Status: OrderFailed, Payload: &payload, Err: err}
	}
	return OrderOutcome{Status: OrderSent, Payload: &payload}
}

func (s *OrderService) post(ctx context.Context, payload models.OrderPayload) error {
	resp, err := produtoshttp.Post(s.intakeURL).
		WithContext(ctx).
		Timeout(s.timeout).
		Retry(1, 0).
		Using(s.opts.client).
		Body(payload).
		Send()
	if err != nil {
		return &DownstreamError{Err: err}
	}
	if err := resp.Throw(); err != nil {
		return &DownstreamError{Err: fmt.Errorf("%w: POST %s: %w", ErrDownstreamStatus, s.intakeURL, err)}
	}
	return nil
}
