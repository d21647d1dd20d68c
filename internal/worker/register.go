// Package worker exposes helpers to register the evaluation workflow and
// its stage activities with a Temporal worker.
package worker

import (
	sdkworker "go.temporal.io/sdk/worker"

	"github.com/ahrav/challenge-eval/internal/evaluation"
	"github.com/ahrav/challenge-eval/internal/workflow"
	"github.com/ahrav/challenge-eval/pkg/activity"
	"github.com/ahrav/challenge-eval/pkg/events"
)

// RegisterAll registers the workflow and all activities with the Temporal
// worker. Call once during worker initialization before starting the
// worker; registration is not thread-safe.
func RegisterAll(w sdkworker.Worker, sink events.EventSink) {
	if sink == nil {
		sink = events.NewNoOpEventSink()
	}
	base := activity.NewBaseActivities(sink)
	activities := evaluation.NewActivities(base)

	w.RegisterWorkflow(workflow.EvaluationWorkflow)

	w.RegisterActivity(activities.ValidateSubmission)
	w.RegisterActivity(activities.ScoreSubmission)
}
