// Package tasks defines the asynq task types shared by the API process,
// which enqueues them, and the worker, which handles them.
package tasks

import (
	"karigar/config"

	"github.com/hibiken/asynq"
)

// Enqueuer is the part of *asynq.Client the services use.
type Enqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// RedisOpt returns the connection options of the task queue database.
func RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}
