// Command worker runs a Temporal worker hosting the evaluation workflow
// and its stage activities. Connection settings come from the
// TEMPORAL_HOST_PORT and TEMPORAL_TASK_QUEUE environment variables.
package main

import (
	"log/slog"
	"os"

	"go.temporal.io/sdk/client"
	sdkworker "go.temporal.io/sdk/worker"

	"github.com/ahrav/challenge-eval/internal/worker"
	"github.com/ahrav/challenge-eval/pkg/events"
)

// defaultTaskQueue is used when TEMPORAL_TASK_QUEUE is unset.
const defaultTaskQueue = "challenge-eval"

func main() {
	hostPort := os.Getenv("TEMPORAL_HOST_PORT")
	if hostPort == "" {
		hostPort = client.DefaultHostPort
	}
	taskQueue := os.Getenv("TEMPORAL_TASK_QUEUE")
	if taskQueue == "" {
		taskQueue = defaultTaskQueue
	}

	c, err := client.Dial(client.Options{HostPort: hostPort})
	if err != nil {
		slog.Error("failed to connect to Temporal", "host_port", hostPort, "error", err)
		os.Exit(1)
	}
	defer c.Close()

	w := sdkworker.New(c, taskQueue, sdkworker.Options{})
	worker.RegisterAll(w, events.NewNoOpEventSink())

	slog.Info("worker starting", "task_queue", taskQueue, "host_port", hostPort)
	if err := w.Run(sdkworker.InterruptCh()); err != nil {
		slog.Error("worker stopped", "error", err)
		os.Exit(1)
	}
}
