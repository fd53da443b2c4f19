package models

type League struct {
	ID      int    `json:"league_id"`
	Name    string `json:"league_name"`
	Country string `json:"country"`
}

type Team struct {
	ID         int     `json:"team_id"`
	Name       string  `json:"team_name"`
	Stadium    *string `json:"stadium"`
	Logo       *string `json:"logo"`
	LeagueID   int     `json:"league_id,omitempty"`
	LeagueName string  `json:"league_name,omitempty"`
}
