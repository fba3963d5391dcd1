package features

import "github.com/dock108/theoryline/internal/models"

// Level0Builder extracts the always-available tier: closing lines, the final
// result, and identifying metadata. Minimal and full modes are identical at
// this tier.
type Level0Builder struct {
	mode Mode
}

// NewLevel0 builds a Level0Builder, rejecting invalid modes.
func NewLevel0(mode string) (*Level0Builder, error) {
	m, err := ParseMode(mode)
	if err != nil {
		return nil, err
	}
	return &Level0Builder{mode: m}, nil
}

func (b *Level0Builder) RequiredFields() []string {
	return []string{
		"closing_ml_home", "closing_ml_away",
		"closing_spread_home", "closing_spread_home_price",
		"closing_total", "closing_total_price",
		"home_score", "away_score", "winner",
		"game_id", "league_id", "season",
	}
}

func (b *Level0Builder) BuildMinimal(ev models.Event) (Map, error) {
	feats := make(Map)

	putFloat(feats, ev.Closing, "closing_ml_home")
	putFloat(feats, ev.Closing, "closing_ml_away")

	putFloat(feats, ev.Lines, "closing_spread_home")
	putFloat(feats, ev.Lines, "closing_spread_home_price")
	putFloat(feats, ev.Lines, "closing_total")
	putFloat(feats, ev.Lines, "closing_total_price")

	putFloat(feats, ev.Result, "home_score")
	putFloat(feats, ev.Result, "away_score")
	putStr(feats, ev.Result, "winner")
	putBool(feats, ev.Result, "did_home_cover")
	putBool(feats, ev.Result, "did_away_cover")
	putFloat(feats, ev.Result, "margin_of_victory")
	putFloat(feats, ev.Result, "combined_score")

	putStr(feats, ev.Metadata, "season")
	putStr(feats, ev.Metadata, "league_id")
	putStr(feats, ev.Metadata, "game_id")
	putStr(feats, ev.Metadata, "game_date")
	putStr(feats, ev.Metadata, "home_team")
	putStr(feats, ev.Metadata, "away_team")

	return feats, nil
}

func (b *Level0Builder) BuildFull(ev models.Event) (Map, error) {
	return b.BuildMinimal(ev)
}

func (b *Level0Builder) Build(ev models.Event) (Map, error) {
	if b.mode == ModeFull {
		return b.BuildFull(ev)
	}
	return b.BuildMinimal(ev)
}
