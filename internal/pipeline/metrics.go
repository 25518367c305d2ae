package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "genloom_pipeline_runs_total",
		Help: "Pipeline invocations by mode and outcome.",
	}, []string{"mode", "outcome"})

	stagesCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "genloom_pipeline_stages_completed_total",
		Help: "Successfully completed pipeline stages.",
	}, []string{"stage"})

	stageFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "genloom_pipeline_stage_failures_total",
		Help: "Failed pipeline stages.",
	}, []string{"stage"})
)
