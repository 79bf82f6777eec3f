package main

import (
	"github.com/spf13/cobra"

	"github.com/crimson-sun/newsdesk/internal/dashboard"
	"github.com/crimson-sun/newsdesk/internal/report"
)

func newReportCmd(a *app) *cobra.Command {
	v := report.DefaultView()

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the dashboard to the terminal",
		Long: `Runs the pipeline once and prints headline metrics, the category breakdown,
messages of one category, the hourly timeline per source, the top authors,
optional search results and the full filtered message table.`,
		Example: `  newsdesk report --from 6 --to 12
  newsdesk report --author "Reporter A" --category אזעקה
  newsdesk report --search חטופים --limit 20`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := v.Filter.Validate(); err != nil {
				return err
			}
			res := a.newPipeline(nil).Run(cmd.Context())
			return report.Render(cmd.OutOrStdout(), res, v, report.DefaultStyles())
		},
	}

	cmd.Flags().IntVar(&v.Filter.HourFrom, "from", v.Filter.HourFrom, "First hour to include (0-23)")
	cmd.Flags().IntVar(&v.Filter.HourTo, "to", v.Filter.HourTo, "Last hour to include (0-23)")
	cmd.Flags().StringVar(&v.Filter.Author, "author", dashboard.AllAuthors, "Only messages by this author")
	cmd.Flags().StringVar(&v.Filter.Search, "search", "", "Case-insensitive text to find in messages")
	cmd.Flags().StringVar(&v.Category, "category", "", "Category whose messages are listed (default: the fallback category)")
	cmd.Flags().IntVar(&v.Limit, "limit", 0, "Max rows per message table (0 for all)")
	return cmd
}
