package domain

import (
	"time"

	"github.com/google/uuid"
)

// ConsultingRequest - заявка на консультацию в том виде, в каком ее отправил посетитель
type ConsultingRequest struct {
	ID          uuid.UUID           `json:"id"`
	Fields      map[string][]string `json:"fields"`
	SubmittedAt time.Time           `json:"submitted_at"`
	TraceID     string              `json:"trace_id,omitempty"`
}

// ConsultingReceipt - ответ посетителю. Всегда успешный: ответ внешней стороны не читается.
type ConsultingReceipt struct {
	ID          uuid.UUID `json:"id"`
	SubmittedAt time.Time `json:"submitted_at"`
	Message     string    `json:"message"`
}
