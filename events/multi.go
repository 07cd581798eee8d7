// Package events fans order and delivery notifications out to vendor
// dashboards and message brokers.
package events

import (
	"context"
	"errors"

	"food-marketplace/models"
	"food-marketplace/services"
)

// Multi publishes to every sink and joins their errors. One failing sink
// does not stop the others.
type Multi []services.Publisher

func (m Multi) Publish(ctx context.Context, n models.Notification) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
