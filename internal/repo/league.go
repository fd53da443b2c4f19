package repo

import (
	"context"
	"database/sql"

	"github.com/sidelines/sidelines/internal/models"
)

// LeagueRepo reads the league and team reference tables.
type LeagueRepo struct {
	DB *sql.DB
}

func NewLeagueRepo(db *sql.DB) *LeagueRepo {
	return &LeagueRepo{DB: db}
}

func (r *LeagueRepo) ListLeagues(ctx context.Context) ([]models.League, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT league_id, league_name, country FROM leagues ORDER BY league_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leagues := []models.League{}
	for rows.Next() {
		var l models.League
		if err := rows.Scan(&l.ID, &l.Name, &l.Country); err != nil {
			return nil, err
		}
		leagues = append(leagues, l)
	}
	return leagues, rows.Err()
}

func (r *LeagueRepo) ListTeams(ctx context.Context, leagueID int) ([]models.Team, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT team_id, team_name, stadium, logo FROM teams WHERE league_id = $1 ORDER BY team_name`,
		leagueID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := []models.Team{}
	for rows.Next() {
		var t models.Team
		var stadium, logo sql.NullString
		if err := rows.Scan(&t.ID, &t.Name, &stadium, &logo); err != nil {
			return nil, err
		}
		t.Stadium, t.Logo = nullString(stadium), nullString(logo)
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

// GetTeam returns a team with its league name, or ErrNotFound.
func (r *LeagueRepo) GetTeam(ctx context.Context, teamID int) (*models.Team, error) {
	var t models.Team
	var stadium, logo sql.NullString
	err := r.DB.QueryRowContext(ctx, `
		SELECT t.team_id, t.team_name, t.stadium, t.logo, t.league_id, l.league_name
		FROM teams t
		JOIN leagues l ON t.league_id = l.league_id
		WHERE t.team_id = $1`,
		teamID,
	).Scan(&t.ID, &t.Name, &stadium, &logo, &t.LeagueID, &t.LeagueName)
	if err != nil {
		return nil, translate(err)
	}
	t.Stadium, t.Logo = nullString(stadium), nullString(logo)
	return &t, nil
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
