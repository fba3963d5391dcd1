package features

import (
	"math"

	"github.com/dock108/theoryline/internal/models"
	"github.com/dock108/theoryline/internal/odds"
)

// Level2Builder computes the derived tier: edges, gaps, and rolling
// statistics over the lower tiers plus optional per-event history series.
type Level2Builder struct {
	mode Mode
}

// NewLevel2 builds a Level2Builder, rejecting invalid modes.
func NewLevel2(mode string) (*Level2Builder, error) {
	m, err := ParseMode(mode)
	if err != nil {
		return nil, err
	}
	return &Level2Builder{mode: m}, nil
}

func (b *Level2Builder) RequiredFields() []string {
	return []string{
		"closing_ml_home", "closing_ml_away",
		"closing_spread_home", "closing_total",
		"combined_score", "margin_of_victory",
	}
}

func (b *Level2Builder) BuildMinimal(ev models.Event) (Map, error) {
	feats := make(Map)

	homeProb := odds.ImpliedProbability(models.Float(ev.Closing, "closing_ml_home"))
	awayProb := odds.ImpliedProbability(models.Float(ev.Closing, "closing_ml_away"))
	if homeProb != nil && awayProb != nil {
		feats["implied_prob_edge"] = *homeProb - *awayProb
	}

	if spread := models.Float(ev.Lines, "closing_spread_home"); spread != nil {
		// Signed distance of the home line from pick'em.
		feats["spread_edge"] = -*spread
	}

	combined := models.Float(ev.Result, "combined_score")
	total := models.Float(ev.Lines, "closing_total")
	if combined != nil && total != nil {
		feats["total_gap"] = *combined - *total
	}

	return feats, nil
}

func (b *Level2Builder) BuildFull(ev models.Event) (Map, error) {
	feats, err := b.BuildMinimal(ev)
	if err != nil {
		return nil, err
	}

	for name, series := range ev.History {
		vol, z := seriesStats(series)
		if vol != nil {
			feats[name+"_volatility"] = *vol
		}
		if z != nil {
			feats[name+"_zscore"] = *z
		}
	}

	homeImplied := odds.ImpliedProbability(models.Float(ev.Closing, "closing_ml_home"))
	awayImplied := odds.ImpliedProbability(models.Float(ev.Closing, "closing_ml_away"))
	if trueProb := models.Float(ev.Projections, "home_true_prob"); trueProb != nil && homeImplied != nil {
		feats["home_prob_gap"] = *trueProb - *homeImplied
	}
	if trueProb := models.Float(ev.Projections, "away_true_prob"); trueProb != nil && awayImplied != nil {
		feats["away_prob_gap"] = *trueProb - *awayImplied
	}

	mov := models.Float(ev.Result, "margin_of_victory")
	spread := models.Float(ev.Lines, "closing_spread_home")
	if mov != nil && spread != nil {
		feats["cover_margin"] = *mov - *spread
	}
	combined := models.Float(ev.Result, "combined_score")
	total := models.Float(ev.Lines, "closing_total")
	if combined != nil && total != nil {
		feats["total_delta"] = *combined - *total
	}

	homeRating := models.Float(ev.Ratings, "home_rating")
	awayRating := models.Float(ev.Ratings, "away_rating")
	if homeRating != nil && awayRating != nil && *awayRating != 0 {
		feats["rating_ratio"] = *homeRating / *awayRating
	}

	return feats, nil
}

func (b *Level2Builder) Build(ev models.Event) (Map, error) {
	if b.mode == ModeFull {
		return b.BuildFull(ev)
	}
	return b.BuildMinimal(ev)
}

// seriesStats returns the population standard deviation of a series and the
// z-score of its latest sample. Both are absent for fewer than two samples;
// the z-score is additionally absent when the series has zero variance.
func seriesStats(series []float64) (volatility, zscore *float64) {
	if len(series) < 2 {
		return nil, nil
	}

	var sum float64
	for _, v := range series {
		sum += v
	}
	mean := sum / float64(len(series))

	var sq float64
	for _, v := range series {
		d := v - mean
		sq += d * d
	}
	std := math.Sqrt(sq / float64(len(series)))

	volatility = &std
	if std > 0 {
		z := (series[len(series)-1] - mean) / std
		zscore = &z
	}
	return volatility, zscore
}
