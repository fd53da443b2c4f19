package transfers

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sidelines/sidelines/cmd/cli/client"
	"github.com/sidelines/sidelines/cmd/cli/output"
	"github.com/sidelines/sidelines/cmd/cli/root"
	"github.com/sidelines/sidelines/internal/models"
)

// InitTransfers registers `transfers filter`.
func InitTransfers(rootCmd *cobra.Command) {
	transfersCmd := &cobra.Command{
		Use:   "transfers",
		Short: "Search player transfers",
	}
	transfersCmd.AddCommand(filterCmd())
	rootCmd.AddCommand(transfersCmd)
}

func filterCmd() *cobra.Command {
	var (
		league, team   string
		ageFrom, ageTo int
		feeFrom, feeTo float64
		limit, offset  int
	)

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Filter transfers by league, team, age and fee",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			if league != "" {
				q.Set("league", league)
			}
			if team != "" {
				q.Set("team", team)
			}
			setInt := func(name, key string, v int) {
				if cmd.Flags().Changed(name) {
					q.Set(key, strconv.Itoa(v))
				}
			}
			setFloat := func(name, key string, v float64) {
				if cmd.Flags().Changed(name) {
					q.Set(key, strconv.FormatFloat(v, 'f', -1, 64))
				}
			}
			setInt("age-from", "ageFrom", ageFrom)
			setInt("age-to", "ageTo", ageTo)
			setFloat("fee-from", "feeFrom", feeFrom)
			setFloat("fee-to", "feeTo", feeTo)
			setInt("limit", "limit", limit)
			setInt("offset", "offset", offset)

			path := "/api/transfers/filter"
			if len(q) > 0 {
				path += "?" + q.Encode()
			}

			var transfers []models.Transfer
			if err := client.Do(cmd.Context(), http.MethodGet, path, "", nil, &transfers); err != nil {
				return err
			}
			if root.WantsJSON(cmd) {
				return output.PrintJSON(cmd.OutOrStdout(), transfers)
			}

			rows := make([][]any, 0, len(transfers))
			for _, t := range transfers {
				date := ""
				if t.TransferDate != nil {
					date = t.TransferDate.Format("2006-01-02")
				}
				rows = append(rows, []any{t.PlayerName, t.Age, t.FromTeam, t.ToTeam, t.LeagueName, t.Fee, date})
			}
			output.RenderTable(cmd.OutOrStdout(), []string{"Player", "Age", "From", "To", "League", "Fee", "Date"}, rows)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&league, "league", "", "league name (exact match)")
	f.StringVar(&team, "team", "", "team name, matched against either side of the deal")
	f.IntVar(&ageFrom, "age-from", 0, "minimum player age")
	f.IntVar(&ageTo, "age-to", 0, "maximum player age")
	f.Float64Var(&feeFrom, "fee-from", 0, "minimum fee")
	f.Float64Var(&feeTo, "fee-to", 0, "maximum fee")
	f.IntVar(&limit, "limit", 0, "maximum rows")
	f.IntVar(&offset, "offset", 0, "rows to skip")
	return cmd
}
