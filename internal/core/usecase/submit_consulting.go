package usecase

import (
	"context"
	"maps"
	"sync"
	"time"

	"listing-site/internal/contextkeys"
	"listing-site/internal/core/domain"
	"listing-site/internal/core/port"

	"github.com/google/uuid"
)

// SubmitConsultingUseCase передает заявку получателям в фоне и после короткой
// паузы сообщает об успехе. Ответы получателей не ждутся и не читаются.
type SubmitConsultingUseCase struct {
	sinks           []port.ConsultingSinkPort
	feedbackDelay   time.Duration
	deliveryTimeout time.Duration
	now             func() time.Time

	wg sync.WaitGroup
}

func NewSubmitConsultingUseCase(sinks []port.ConsultingSinkPort, feedbackDelay, deliveryTimeout time.Duration) *SubmitConsultingUseCase {
	return &SubmitConsultingUseCase{
		sinks:           sinks,
		feedbackDelay:   feedbackDelay,
		deliveryTimeout: deliveryTimeout,
		now:             time.Now,
	}
}

func (uc *SubmitConsultingUseCase) Execute(ctx context.Context, fields map[string][]string) (domain.ConsultingReceipt, error) {
	req := domain.ConsultingRequest{
		ID:          uuid.New(),
		Fields:      maps.Clone(fields),
		SubmittedAt: uc.now().UTC(),
		TraceID:     contextkeys.TraceIDFromContext(ctx),
	}
	if req.Fields == nil {
		req.Fields = map[string][]string{}
	}

	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "SubmitConsulting",
		"request_id": req.ID.String(),
	})
	ucLogger.Info("Use case started", port.Fields{"fields": len(req.Fields), "sinks": len(uc.sinks)})

	// доставка переживает завершение HTTP-запроса
	deliveryCtx := context.WithoutCancel(ctx)
	for _, sink := range uc.sinks {
		uc.wg.Add(1)
		go uc.deliver(deliveryCtx, sink, req, ucLogger)
	}

	if err := sleepCtx(ctx, uc.feedbackDelay); err != nil {
		return domain.ConsultingReceipt{}, err
	}

	ucLogger.Info("Use case finished successfully", nil)
	return domain.ConsultingReceipt{
		ID:          req.ID,
		SubmittedAt: req.SubmittedAt,
		Message:     domain.MessageConsultingSent,
	}, nil
}

func (uc *SubmitConsultingUseCase) deliver(ctx context.Context, sink port.ConsultingSinkPort, req domain.ConsultingRequest, logger port.LoggerPort) {
	defer uc.wg.Done()

	if uc.deliveryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.deliveryTimeout)
		defer cancel()
	}

	sinkLogger := logger.WithFields(port.Fields{"sink": sink.Name()})
	if err := sink.Deliver(ctx, req); err != nil {
		sinkLogger.Error("Consulting request delivery failed", err, nil)
		return
	}
	sinkLogger.Debug("Consulting request delivered", nil)
}

// Wait ждет завершения фоновых доставок или отмены ctx
func (uc *SubmitConsultingUseCase) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		uc.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
