package models

import "time"

// ThrowEvent is the archive record for one dart, batched into ClickHouse
// by the worker pool.
type ThrowEvent struct {
	GameID     string    `json:"game_id"`
	Mode       string    `json:"mode"`
	LegNumber  int       `json:"leg_number"`
	Round      int       `json:"round"`
	PlayerID   string    `json:"player_id"`
	PlayerName string    `json:"player_name"`
	Ring       string    `json:"ring"`
	Segment    int       `json:"segment"`
	Points     int       `json:"points"`
	Outcome    string    `json:"outcome"`
	Timestamp  time.Time `json:"timestamp"`
}

// LegResult is the per-player summary row written to Postgres when a leg
// finishes.
type LegResult struct {
	GameID    string  `json:"game_id"`
	Mode      string  `json:"mode"`
	LegNumber int     `json:"leg_number"`
	PlayerID  string  `json:"player_id"`
	Won       bool    `json:"won"`
	Throws    int     `json:"throws"`
	Points    int     `json:"points"`
	Busts     int     `json:"busts"`
	Marks     int     `json:"marks"`
	BestTurn  int     `json:"best_turn"`
	Average   float64 `json:"average"`

	// darts thrown at a one-dart finish, and the share that hit
	CheckoutAttempts int     `json:"checkout_attempts"`
	Checkouts        int     `json:"checkouts"`
	CheckoutPercent  float64 `json:"checkout_percent"`

	EndedAt time.Time `json:"ended_at"`
}

// PlayerSummary bundles career aggregates with the most recent legs.
type PlayerSummary struct {
	Career PlayerCareer `json:"career"`
	Recent []LegResult  `json:"recent"`
}

// PlayerCareer aggregates a player's results across all stored legs.
type PlayerCareer struct {
	PlayerID   string  `json:"player_id"`
	LegsPlayed int     `json:"legs_played"`
	LegsWon    int     `json:"legs_won"`
	Throws     int     `json:"throws"`
	Points     int     `json:"points"`
	Busts      int     `json:"busts"`
	BestTurn   int     `json:"best_turn"`
	Average    float64 `json:"average"`

	CheckoutAttempts int     `json:"checkout_attempts"`
	Checkouts        int     `json:"checkouts"`
	CheckoutPercent  float64 `json:"checkout_percent"`
}
