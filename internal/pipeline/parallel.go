package pipeline

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/dock108/theoryline/internal/features"
	"github.com/dock108/theoryline/internal/models"
	"github.com/dock108/theoryline/internal/telemetry"
	"github.com/dock108/theoryline/internal/theory"
)

// EvalTask pairs one event with one micro-model for parallel evaluation.
type EvalTask struct {
	Event models.Event
	Model theory.MicroModel
}

// EvaluateAll evaluates every (event, model) task concurrently and returns
// the output rows of the tasks that triggered, in submission order. A task
// whose feature build fails, or that does not trigger, is dropped without
// affecting its neighbors. maxConcurrency <= 0 derives the cap from the CPU
// count.
func EvaluateAll(ctx context.Context, tasks []EvalTask, builder features.Builder, maxConcurrency int, logger *logrus.Logger) []models.ResultRow {
	slots := make([]models.ResultRow, len(tasks))
	sem := make(chan struct{}, telemetry.OptimalConcurrency(maxConcurrency))

	var wg sync.WaitGroup
	for i, task := range tasks {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, task EvalTask) {
			defer wg.Done()
			defer func() { <-sem }()
			defer func() {
				if r := recover(); r != nil {
					logger.WithFields(logrus.Fields{
						"event_id": task.Event.ID(),
						"theory":   task.Model.Name(),
						"panic":    r,
					}).Warn("evaluation task dropped")
				}
			}()
			slots[i] = evaluateOne(task, builder, logger)
		}(i, task)
	}
	wg.Wait()

	rows := make([]models.ResultRow, 0, len(tasks))
	for _, row := range slots {
		if row != nil {
			rows = append(rows, row)
		}
	}
	return rows
}

// evaluateOne runs the full trigger/EV/settlement cycle for a single task.
// It returns nil when the task produced nothing usable.
func evaluateOne(task EvalTask, builder features.Builder, logger *logrus.Logger) models.ResultRow {
	feats, err := builder.Build(task.Event)
	if err != nil {
		logger.WithError(err).WithFields(logrus.Fields{
			"event_id": task.Event.ID(),
			"theory":   task.Model.Name(),
		}).Warn("feature build failed, task dropped")
		return nil
	}
	if !task.Model.ShouldTrigger(task.Event, feats) {
		return nil
	}

	ev := task.Model.ComputeEV(task.Event, feats)
	settlement := task.Model.ComputeOutcome(task.Event.SettlementInput())
	return task.Model.OutputRow(task.Event, feats, ev, settlement)
}
