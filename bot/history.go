package bot

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/Necroforger/dgrouter/exrouter"
	"github.com/cglab/imagefilter/models"
)

const defaultHistorySize = 10

// List the last runs
func listRuns(ctx *exrouter.Context) {
	n := defaultHistorySize
	if arg := ctx.Args.Get(1); arg != "" {
		v, err := strconv.Atoi(arg)
		if err != nil || v <= 0 {
			sendUsage(ctx, "[count]")
			return
		}
		n = v
	}

	db, err := getDB(ctx)
	if err != nil {
		internalError(ctx, err)
		return
	}
	runs, err := models.ListRuns(db, n)
	if err != nil {
		internalError(ctx, err)
		return
	}
	if len(runs) == 0 {
		sendWarning(ctx, "No runs yet.")
		return
	}
	ctx.Reply("```" + formatRuns(runs) + "```")
}

func formatRuns(runs []models.Run) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 5, 0, 3, ' ', 0)
	fmt.Fprintln(w, "FILTER\tINPUT\tSIZE\tSTATUS\t")
	for _, r := range runs {
		status := "ok"
		if r.Failed() {
			status = "failed"
		}
		fmt.Fprintf(w, "%s\t%s\t%dx%d\t%s\t\n", r.Filter, r.Input, r.Width, r.Height, status)
	}
	w.Flush()
	return b.String()
}
