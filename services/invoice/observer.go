package invoice

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Observer receives pipeline progress. Implementations must be safe for
// concurrent use since requests run in parallel.
type Observer interface {
	StepStarted(ctx context.Context, step Step)
	StepFinished(ctx context.Context, step Step, elapsed time.Duration, err error)
	// DocumentOrphaned fires when a document was stored but the booking
	// service never learned its URL.
	DocumentOrphaned(ctx context.Context, bookingID int64, invoiceNumber, documentURL string, err error)
}

// ZapObserver logs pipeline progress.
type ZapObserver struct {
	logger *zap.Logger
}

func NewZapObserver(logger *zap.Logger) *ZapObserver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapObserver{logger: logger}
}

func (o *ZapObserver) StepStarted(ctx context.Context, step Step) {
	o.logger.Debug("invoice step started", zap.String("step", string(step)))
}

func (o *ZapObserver) StepFinished(ctx context.Context, step Step, elapsed time.Duration, err error) {
	if err != nil {
		o.logger.Warn("invoice step failed",
			zap.String("step", string(step)),
			zap.Duration("elapsed", elapsed),
			zap.Error(err))
		return
	}
	o.logger.Info("invoice step completed",
		zap.String("step", string(step)),
		zap.Duration("elapsed", elapsed))
}

func (o *ZapObserver) DocumentOrphaned(ctx context.Context, bookingID int64, invoiceNumber, documentURL string, err error) {
	o.logger.Error("invoice stored but booking service was not notified",
		zap.Int64("bookingId", bookingID),
		zap.String("invoiceNumber", invoiceNumber),
		zap.String("documentUrl", documentURL),
		zap.Error(err))
}

type nopObserver struct{}

func (nopObserver) StepStarted(context.Context, Step)                              {}
func (nopObserver) StepFinished(context.Context, Step, time.Duration, error)       {}
func (nopObserver) DocumentOrphaned(context.Context, int64, string, string, error) {}
