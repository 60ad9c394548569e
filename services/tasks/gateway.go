package tasks

import (
	"encoding/json"

	"fleetdesk/services/ledger"

	"github.com/hibiken/asynq"
)

const TypeGatewayPayment = "ledger:gateway_payment"

// NewGatewayPaymentTask wraps an acknowledged webhook payload for background
// processing. The queue gives post-ack failures their internal retries
// without making the gateway redeliver.
func NewGatewayPaymentTask(req ledger.GatewayPaymentRequest) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(req)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeGatewayPayment, b)
	opts := []asynq.Option{asynq.MaxRetry(10)}

	return task, opts, nil
}
