package notify

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Notifier dispatches notifications off the request path. A slow or failing
// email must never delay or fail the payment response, so Dispatch returns
// immediately and failures are only logged.
type Notifier struct {
	sender  Sender
	timeout time.Duration
	logger  *zap.Logger
}

func NewNotifier(sender Sender, logger *zap.Logger) *Notifier {
	return &Notifier{
		sender:  sender,
		timeout: 15 * time.Second,
		logger:  logger,
	}
}

func (n *Notifier) Dispatch(note Notification) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		defer cancel()

		if err := n.sender.Send(ctx, note); err != nil {
			n.logger.Warn("notification email failed",
				zap.String("method", note.Method),
				zap.String("order_ref", note.OrderRef),
				zap.Error(err),
			)
			return
		}
		n.logger.Info("notification email sent",
			zap.String("method", note.Method),
			zap.String("order_ref", note.OrderRef),
		)
	}()
}
