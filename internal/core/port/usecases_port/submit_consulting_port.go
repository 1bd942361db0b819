package usecases_port

import (
	"context"

	"listing-site/internal/core/domain"
)

type SubmitConsultingUseCasePort interface {
	Execute(ctx context.Context, fields map[string][]string) (domain.ConsultingReceipt, error)
}
