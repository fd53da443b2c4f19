package repo

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestLeagueRepo_ListTeams(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT team_id, team_name, stadium, logo FROM teams WHERE league_id = \$1`).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"team_id", "team_name", "stadium", "logo"}).
			AddRow(5, "Arsenal", "Emirates Stadium", nil))

	repo := NewLeagueRepo(db)
	teams, err := repo.ListTeams(context.Background(), 2)
	if err != nil {
		t.Fatalf("ListTeams: %v", err)
	}
	if len(teams) != 1 || teams[0].Name != "Arsenal" || teams[0].Stadium == nil || teams[0].Logo != nil {
		t.Errorf("unexpected teams: %+v", teams)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestLeagueRepo_GetTeam_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`FROM teams t`).
		WithArgs(99).
		WillReturnError(sql.ErrNoRows)

	repo := NewLeagueRepo(db)
	if _, err := repo.GetTeam(context.Background(), 99); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
