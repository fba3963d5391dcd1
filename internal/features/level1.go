package features

import "github.com/dock108/theoryline/internal/models"

// Level1Builder extracts the domain-projection tier: team ratings, point
// projections, and pace. These sub-maps may be absent entirely for leagues
// without a ratings feed; whatever is present is extracted.
type Level1Builder struct {
	mode Mode
}

// NewLevel1 builds a Level1Builder, rejecting invalid modes.
func NewLevel1(mode string) (*Level1Builder, error) {
	m, err := ParseMode(mode)
	if err != nil {
		return nil, err
	}
	return &Level1Builder{mode: m}, nil
}

func (b *Level1Builder) RequiredFields() []string {
	return []string{
		"home_rating", "away_rating",
		"proj_home_points", "proj_away_points",
		"pace_home", "pace_away",
	}
}

func (b *Level1Builder) BuildMinimal(ev models.Event) (Map, error) {
	feats := make(Map)

	putFloat(feats, ev.Ratings, "home_rating")
	putFloat(feats, ev.Ratings, "away_rating")

	putFloat(feats, ev.Projections, "proj_home_points")
	putFloat(feats, ev.Projections, "proj_away_points")
	putFloat(feats, ev.Projections, "home_true_prob")
	putFloat(feats, ev.Projections, "away_true_prob")

	putFloat(feats, ev.Pace, "pace_home")
	putFloat(feats, ev.Pace, "pace_away")

	return feats, nil
}

func (b *Level1Builder) BuildFull(ev models.Event) (Map, error) {
	feats, err := b.BuildMinimal(ev)
	if err != nil {
		return nil, err
	}

	// Trend and secondary-projection fields only matter for the full tier.
	putFloat(feats, ev.Ratings, "home_rating_trend")
	putFloat(feats, ev.Ratings, "away_rating_trend")
	putFloat(feats, ev.Projections, "proj_total")
	putFloat(feats, ev.Projections, "proj_spread")
	putFloat(feats, ev.Projections, "secondary_proj_home")
	putFloat(feats, ev.Projections, "secondary_proj_away")
	putFloat(feats, ev.Projections, "home_cover_prob")
	putFloat(feats, ev.Projections, "away_cover_prob")
	putFloat(feats, ev.Projections, "over_prob")
	putFloat(feats, ev.Projections, "under_prob")
	putFloat(feats, ev.Pace, "pace_trend")

	return feats, nil
}

func (b *Level1Builder) Build(ev models.Event) (Map, error) {
	if b.mode == ModeFull {
		return b.BuildFull(ev)
	}
	return b.BuildMinimal(ev)
}
