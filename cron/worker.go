package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"fleetdesk/config"
	"fleetdesk/services/ledger"
	"fleetdesk/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// InitLedgerWorker runs the async worker in background. It drains the queue
// of acknowledged gateway payments; the webhook endpoint has already answered
// the gateway by the time these run, so failures retry here instead of
// triggering gateway redelivery.
func InitLedgerWorker(ledgerSvc ledger.LedgerService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisLedgerQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeGatewayPayment, handleGatewayPaymentTask(ledgerSvc))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[LedgerWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[LedgerWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[LedgerWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleGatewayPaymentTask(ledgerSvc ledger.LedgerService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var req ledger.GatewayPaymentRequest
		if err := json.Unmarshal(task.Payload(), &req); err != nil {
			log.Printf("[LedgerWorker] invalid payload: %v", err)
			return err
		}

		err := ledgerSvc.RecordGatewayPayment(ctx, req)
		if err == nil {
			return nil
		}

		// Bad payloads and unknown selections will not improve with retries;
		// they go to the operator via logs instead.
		if ledger.IsValidation(err) || ledger.IsNotFound(err) {
			log.Printf("[LedgerWorker] dropping unprocessable gateway payment %s: %v", req.TransactionID, err)
			return nil
		}

		log.Printf("[LedgerWorker] gateway payment %s failed, will retry: %v", req.TransactionID, err)
		return err
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisLedgerQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[LedgerWorker] redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
