package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"go-payroll/internal/events"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumers use.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type PayslipGenerator interface {
	GeneratePayslips(ctx context.Context, companyID, runID string) (int, error)
}

// ConsumePayrollPayslipRequested renders payslips for each requested run.
// Domain errors are committed and skipped; anything else leaves the offset
// uncommitted so the message is redelivered.
func ConsumePayrollPayslipRequested(
	ctx context.Context,
	reader MessageReader,
	generator PayslipGenerator,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.payroll_payslip")
	log.Info("payroll payslip consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("payroll payslip consumer stopped")
				return
			}
			log.Error("fetch payroll payslip message failed", zap.Error(err))
			continue
		}

		handlePayslipMessage(ctx, reader, generator, log, msg)
	}
}

func handlePayslipMessage(
	ctx context.Context,
	reader MessageReader,
	generator PayslipGenerator,
	log *zap.Logger,
	msg kafkago.Message,
) {
	var event events.PayrollPayslipRequestedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode payroll payslip event failed", zap.Error(err))
		commit(ctx, reader, log, msg)
		return
	}

	requestID := event.RequestID
	if requestID == "" {
		requestID = headerValue(msg, "request_id")
	}
	msgLog := log.With(
		zap.String("run_id", event.RunID),
		zap.String("company_id", event.CompanyID),
		zap.String("request_id", requestID),
	)
	msgCtx := contextutil.WithMetadata(ctx, contextutil.Metadata{RequestID: requestID, UserID: event.RequestedBy})
	msgCtx = contextutil.WithLogger(msgCtx, msgLog)

	count, err := generator.GeneratePayslips(msgCtx, event.CompanyID, event.RunID)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			msgLog.Warn("payslip request rejected", zap.String("code", appErr.Code), zap.Error(err))
			commit(ctx, reader, msgLog, msg)
			return
		}
		msgLog.Error("generate payslips failed", zap.Error(err))
		return
	}

	if commit(ctx, reader, msgLog, msg) {
		msgLog.Info("payroll payslips generated", zap.Int("count", count))
	}
}

func commit(ctx context.Context, reader MessageReader, log *zap.Logger, msg kafkago.Message) bool {
	if err := reader.CommitMessages(ctx, msg); err != nil {
		log.Error("commit payroll payslip message failed", zap.Error(err))
		return false
	}
	return true
}

func headerValue(msg kafkago.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
