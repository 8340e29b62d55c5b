package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
)

// Drives a full computer-vs-computer match through the public API and
// prints the outcome. Useful for smoke testing a running server.

type createGameRequest struct {
	Mode       string       `json:"mode"`
	StartScore int          `json:"start_score,omitempty"`
	OutRule    string       `json:"out_rule,omitempty"`
	LegsToWin  int          `json:"legs_to_win,omitempty"`
	Players    []playerSpec `json:"players"`
}

type playerSpec struct {
	Name     string `json:"name"`
	Computer bool   `json:"computer"`
	Level    string `json:"level,omitempty"`
}

type gameState struct {
	ID       string         `json:"id"`
	Mode     string         `json:"mode"`
	Status   string         `json:"status"`
	LegWins  map[string]int `json:"leg_wins"`
	WinnerID string         `json:"winner_id"`
	Leg      *struct {
		Players []struct {
			ID    string `json:"id"`
			Name  string `json:"name"`
			Score int    `json:"score"`
		} `json:"players"`
	} `json:"leg"`
}

func main() {
	apiURL := flag.String("url", "http://localhost:8080", "server base url")
	mode := flag.String("mode", "x01", "game mode")
	startScore := flag.Int("start", 501, "x01 start score")
	legs := flag.Int("legs", 3, "legs to win")
	levelA := flag.String("a", "pro", "first player level")
	levelB := flag.String("b", "medium", "second player level")
	flag.Parse()

	req := createGameRequest{
		Mode:       *mode,
		StartScore: *startScore,
		LegsToWin:  *legs,
		Players: []playerSpec{
			{Name: "Alpha", Computer: true, Level: *levelA},
			{Name: "Beta", Computer: true, Level: *levelB},
		},
	}

	payload, err := json.Marshal(req)
	if err != nil {
		log.Fatalf("Failed to marshal request: %v", err)
	}

	// an all-computer game plays itself to completion on create
	resp, err := http.Post(*apiURL+"/api/v1/games", "application/json", bytes.NewBuffer(payload))
	if err != nil {
		log.Fatalf("Failed to create game: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Fatalf("Failed to read response: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		log.Fatalf("Create returned %d: %s", resp.StatusCode, body)
	}

	var state gameState
	if err := json.Unmarshal(body, &state); err != nil {
		log.Fatalf("Failed to parse state: %v", err)
	}

	fmt.Printf("game %s (%s) finished: %s\n", state.ID, state.Mode, state.Status)
	fmt.Printf("winner: %s\n", state.WinnerID)
	for id, wins := range state.LegWins {
		fmt.Printf("  %s: %d legs\n", id, wins)
	}

	export, err := http.Get(*apiURL + "/api/v1/games/" + state.ID + "/export")
	if err != nil {
		log.Fatalf("Failed to export game: %v", err)
	}
	defer export.Body.Close()
	save, _ := io.ReadAll(export.Body)
	fmt.Printf("export: %d bytes (status %d)\n", len(save), export.StatusCode)
}
