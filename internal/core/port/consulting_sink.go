package port

import (
	"context"

	"listing-site/internal/core/domain"
)

// ConsultingSinkPort - получатель заявок на консультацию.
// Ответ получателя посетителю не показывается.
type ConsultingSinkPort interface {
	Name() string
	Deliver(ctx context.Context, req domain.ConsultingRequest) error
}
