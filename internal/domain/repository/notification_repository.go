package repository

import (
	"context"

	"skyfare/internal/domain/entity"
)

// NotificationRepository delivers price drop messages
type NotificationRepository interface {
	Notify(ctx context.Context, drop entity.PriceDrop, text string) error
}
