package pipeline

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/dock108/theoryline/internal/features"
	"github.com/dock108/theoryline/internal/models"
)

// MegaPipeline folds many micro-models' result rows together with closing
// odds and final scores into one flat training matrix. Each output row is the
// union of the result fields, the event's closing fields, its final-result
// fields, and the features rebuilt from those inputs, with later layers
// winning on key collisions.
type MegaPipeline struct {
	builder features.Builder
	logger  *logrus.Logger
}

// NewMegaPipeline wires the training-matrix aggregator.
func NewMegaPipeline(builder features.Builder, logger *logrus.Logger) *MegaPipeline {
	return &MegaPipeline{builder: builder, logger: logger}
}

// Run merges result rows with closing and final data keyed by event id.
// Rows without an event id pass through with only their own fields. A feature
// rebuild failure drops the feature layer for that row, never the row itself.
func (p *MegaPipeline) Run(ctx context.Context, results []models.ResultRow, closingByEvent, finalsByEvent map[string]map[string]any) (models.TrainingMatrix, error) {
	matrix := make([]models.ResultRow, 0, len(results))

	for _, result := range results {
		row := make(models.ResultRow, len(result))
		for k, v := range result {
			row[k] = v
		}

		eventID, _ := result["event_id"].(string)
		closing := closingByEvent[eventID]
		final := finalsByEvent[eventID]

		overlay(row, closing)
		overlay(row, final)

		if closing != nil || final != nil {
			event := models.Event{
				Closing:  closing,
				Result:   final,
				Metadata: map[string]any{"game_id": eventID},
			}
			feats, err := p.builder.Build(event)
			if err != nil {
				p.logger.WithError(err).WithField("event_id", eventID).Warn("feature rebuild failed, row kept without features")
			} else {
				overlay(row, feats)
			}
		}

		matrix = append(matrix, row)
	}

	p.logger.WithField("rows", len(matrix)).Info("training matrix assembled")
	return models.TrainingMatrix{Matrix: matrix, Rows: len(matrix)}, nil
}

// overlay copies non-nil values from src into dst, overwriting on collision.
func overlay(dst models.ResultRow, src map[string]any) {
	for k, v := range src {
		if v != nil {
			dst[k] = v
		}
	}
}
