package rabbitmq

import (
	"time"

	"github.com/google/uuid"
)

// ConsultingRequestDTO - тело события о новой заявке на консультацию
type ConsultingRequestDTO struct {
	ID          uuid.UUID           `json:"id"`
	Fields      map[string][]string `json:"fields"`
	SubmittedAt time.Time           `json:"submitted_at"`
	Source      string              `json:"source"`
}
