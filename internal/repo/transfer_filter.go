package repo

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/sidelines/sidelines/internal/apperr"
)

const (
	DefaultTransferLimit = 50
	MaxTransferLimit     = 200
)

// TransferFilter narrows a transfer search. Nil fields impose no constraint.
type TransferFilter struct {
	League  *string
	Team    *string
	AgeFrom *int
	AgeTo   *int
	FeeFrom *float64
	FeeTo   *float64
	Limit   *int
	Offset  *int
}

// ParseTransferFilter reads the filter from query parameters
// (league, team, ageFrom, ageTo, feeFrom, feeTo, limit, offset).
// Malformed numbers are rejected instead of being passed on to the database.
func ParseTransferFilter(q url.Values) (TransferFilter, error) {
	var f TransferFilter
	fields := make(map[string]string)

	if v := strings.TrimSpace(q.Get("league")); v != "" {
		f.League = &v
	}
	if v := strings.TrimSpace(q.Get("team")); v != "" {
		f.Team = &v
	}

	f.AgeFrom = parseIntParam(q, "ageFrom", fields)
	f.AgeTo = parseIntParam(q, "ageTo", fields)
	f.FeeFrom = parseFloatParam(q, "feeFrom", fields)
	f.FeeTo = parseFloatParam(q, "feeTo", fields)

	if l := parseIntParam(q, "limit", fields); l != nil {
		if *l < 0 {
			fields["limit"] = "must be a non-negative integer"
		} else {
			f.Limit = l
		}
	}
	if o := parseIntParam(q, "offset", fields); o != nil {
		if *o < 0 {
			fields["offset"] = "must be a non-negative integer"
		} else {
			f.Offset = o
		}
	}

	if len(fields) > 0 {
		return TransferFilter{}, apperr.Validation("invalid filter", fields)
	}
	return f, nil
}

func parseIntParam(q url.Values, key string, fields map[string]string) *int {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		fields[key] = "must be an integer"
		return nil
	}
	return &n
}

func parseFloatParam(q url.Values, key string, fields map[string]string) *float64 {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		fields[key] = "must be a number"
		return nil
	}
	return &n
}

// BuildTransferQuery turns f into query text and its bound parameters. Every
// value goes into the parameter list; the text only ever gains fixed
// predicates and $n placeholders, in the order league, team, age bounds,
// fee bounds, then LIMIT and OFFSET. Limit defaults to 50 (capped at 200) and
// offset to 0.
func BuildTransferQuery(f TransferFilter) (string, []any) {
	var b strings.Builder
	args := make([]any, 0, 8)

	bind := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	b.WriteString(`SELECT id, player_name, age, from_team, to_team, league_name, fee, transfer_date FROM transfers WHERE 1=1`)

	if f.League != nil {
		b.WriteString(" AND league_name = " + bind(*f.League))
	}
	if f.Team != nil {
		p := bind(*f.Team)
		b.WriteString(" AND (from_team = " + p + " OR to_team = " + p + ")")
	}
	if f.AgeFrom != nil {
		b.WriteString(" AND age >= " + bind(*f.AgeFrom))
	}
	if f.AgeTo != nil {
		b.WriteString(" AND age <= " + bind(*f.AgeTo))
	}
	if f.FeeFrom != nil {
		b.WriteString(" AND fee >= " + bind(*f.FeeFrom))
	}
	if f.FeeTo != nil {
		b.WriteString(" AND fee <= " + bind(*f.FeeTo))
	}

	limit, offset := DefaultTransferLimit, 0
	if f.Limit != nil {
		limit = min(max(*f.Limit, 0), MaxTransferLimit)
	}
	if f.Offset != nil {
		offset = max(*f.Offset, 0)
	}
	b.WriteString(" ORDER BY id LIMIT " + bind(limit))
	b.WriteString(" OFFSET " + bind(offset))

	return b.String(), args
}
