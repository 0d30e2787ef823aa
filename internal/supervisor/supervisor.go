// Copyright (c) 2026 Cereal. All rights reserved.
// Author: jordan.sekky@gmail.com

/*
Package supervisor keeps the long-running background tasks alive.

Each task is expected to run until the context is cancelled. A task that
returns early or panics is restarted after a short delay; cancellation is
the only clean exit.
*/
package supervisor

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/JordanSekky/cereal-convert/internal/platform/constants"
)

// Task is one supervised long-running loop.
type Task struct {
	// Name appears in restart logs.
	Name string
	// Run blocks until the context is cancelled.
	Run func(context context.Context) error
}

// Supervisor runs tasks and restarts the ones that die.
type Supervisor struct {
	tasks        []Task
	logger       *slog.Logger
	restartDelay time.Duration
}

// New constructs a new [Supervisor] over the given tasks.
func New(logger *slog.Logger, tasks ...Task) *Supervisor {
	return &Supervisor{
		tasks:        tasks,
		logger:       logger,
		restartDelay: constants.TaskRestartDelay,
	}
}

/*
Run supervises every task until the context is cancelled.

Description: Each task runs in its own goroutine. When a task returns or
panics while the context is still live, it is restarted after a fixed
delay. Once the context is cancelled, tasks are allowed to finish and their
final errors are discarded.

Returns:
  - error: nil once every task has stopped
*/
func (supervisor *Supervisor) Run(context context.Context) error {
	group, groupCtx := errgroup.WithContext(context)

	for _, task := range supervisor.tasks {
		group.Go(func() error {
			supervisor.supervise(groupCtx, task)
			return nil
		})
	}

	return group.Wait()
}

// supervise restarts one task until the context is cancelled.
func (supervisor *Supervisor) supervise(ctx context.Context, task Task) {
	for {
		err := supervisor.runTask(ctx, task)

		if ctx.Err() != nil {
			return
		}

		if err != nil {
			supervisor.logger.Error("task_crashed",
				slog.String("task", task.Name),
				slog.String("error", err.Error()),
			)
		} else {
			supervisor.logger.Warn("task_exited_early", slog.String("task", task.Name))
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(supervisor.restartDelay):
		}

		supervisor.logger.Info("task_restarted", slog.String("task", task.Name))
	}
}

// runTask invokes one task, converting panics into errors.
func (supervisor *Supervisor) runTask(ctx context.Context, task Task) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("panic: %v\n%s", recovered, debug.Stack())
		}
	}()

	return task.Run(ctx)
}
