package models

// PlayerSpec describes one roster entry when creating a game.
type PlayerSpec struct {
	ID              string `json:"id"`
	Name            string `json:"name" validate:"required,max=64"`
	PreferredDouble int    `json:"preferred_double" validate:"gte=0,lte=20"`
	LifeSegment     int    `json:"life_segment" validate:"gte=0,lte=20"`
	Computer        bool   `json:"computer"`
	Level           string `json:"level" validate:"omitempty,oneof=easy medium hard pro"`
}

type CreateGameRequest struct {
	Mode    string       `json:"mode" validate:"required"`
	Players []PlayerSpec `json:"players" validate:"required,min=1,max=8,dive"`

	StartScore   int    `json:"start_score" validate:"gte=0"`
	InRule       string `json:"in_rule" validate:"omitempty,oneof=single double masters"`
	OutRule      string `json:"out_rule" validate:"omitempty,oneof=single double masters"`
	ClockTargets string `json:"clock_targets" validate:"omitempty,oneof=1-20 1-200x2Cbull doubles triples"`
	Lives        int    `json:"lives" validate:"gte=0,lte=20"`
	TargetScore  int    `json:"target_score" validate:"gte=0"`
	Rounds       int    `json:"rounds" validate:"gte=0,lte=20"`
	LegsToWin    int    `json:"legs_to_win" validate:"gte=0,lte=50"`
	SetsToWin    int    `json:"sets_to_win" validate:"gte=0,lte=50"`
}

type ThrowRequest struct {
	PlayerID string `json:"player_id"`
	Ring     string `json:"ring" validate:"required"`
	Segment  int    `json:"segment" validate:"gte=0,lte=20"`
}

type CreateTournamentRequest struct {
	Name       string   `json:"name" validate:"required,max=128"`
	Format     string   `json:"format" validate:"required,oneof=single_elimination double_elimination"`
	Players    []string `json:"players" validate:"required,min=2,max=64,unique"`
	ThirdPlace bool     `json:"third_place"`
}

type MatchResultRequest struct {
	WinnerID string `json:"winner_id" validate:"required"`
}

type ImportGameRequest struct {
	Save string `json:"save" validate:"required"` // base64 of an exported game
}
