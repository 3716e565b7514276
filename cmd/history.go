package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/cglab/imagefilter/imp"
	"github.com/cglab/imagefilter/models"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List the most recent runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		n, _ := cmd.Flags().GetInt("number")
		filter, _ := cmd.Flags().GetString("filter")

		path := viper.GetString("db")
		if path == "" {
			return errors.New("no history database configured")
		}
		db, err := models.Open(path)
		if err != nil {
			return err
		}
		defer db.Close()

		var runs []models.Run
		if filter != "" {
			f, lerr := imp.LookupFilter(filter)
			if lerr != nil {
				return lerr
			}
			runs, err = models.ListRunsByFilter(db, f.String(), n)
		} else {
			runs, err = models.ListRuns(db, n)
		}
		if err != nil {
			return err
		}
		return printRuns(os.Stdout, runs)
	},
}

func printRuns(out io.Writer, runs []models.Run) error {
	w := tabwriter.NewWriter(out, 5, 0, 3, ' ', 0)
	fmt.Fprintln(w, "DATE\tFILTER\tFROM\tINPUT\tOUTPUT\tSIZE\tTIME\tSTATUS\t")
	for _, r := range runs {
		status := "ok"
		if r.Failed() {
			status = r.Error
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%dx%d\t%v\t%s\t\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.Filter, r.Origin,
			r.Input, r.Output, r.Width, r.Height, r.Duration, status)
	}
	return w.Flush()
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntP("number", "n", 20, "number of runs to show")
	historyCmd.Flags().StringP("filter", "f", "", "only show runs of this filter")
}
