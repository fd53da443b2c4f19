package models

import "time"

type Transfer struct {
	ID           int        `json:"id"`
	PlayerName   string     `json:"player_name"`
	Age          int        `json:"age"`
	FromTeam     string     `json:"from_team"`
	ToTeam       string     `json:"to_team"`
	LeagueName   string     `json:"league_name"`
	Fee          float64    `json:"fee"`
	TransferDate *time.Time `json:"transfer_date,omitempty"`
}
