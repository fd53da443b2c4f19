package repo

import (
	"context"
	"database/sql"

	"github.com/sidelines/sidelines/internal/models"
)

// TransferRepo serves the transfer market search.
type TransferRepo struct {
	DB *sql.DB
}

func NewTransferRepo(db *sql.DB) *TransferRepo {
	return &TransferRepo{DB: db}
}

// Filter runs the query produced by BuildTransferQuery.
func (r *TransferRepo) Filter(ctx context.Context, f TransferFilter) ([]models.Transfer, error) {
	query, args := BuildTransferQuery(f)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transfers := []models.Transfer{}
	for rows.Next() {
		var t models.Transfer
		var date sql.NullTime
		if err := rows.Scan(&t.ID, &t.PlayerName, &t.Age, &t.FromTeam, &t.ToTeam, &t.LeagueName, &t.Fee, &date); err != nil {
			return nil, err
		}
		if date.Valid {
			t.TransferDate = &date.Time
		}
		transfers = append(transfers, t)
	}
	return transfers, rows.Err()
}
