package bot

import (
	"errors"
	"fmt"
	"log"

	"github.com/Necroforger/dgrouter/exrouter"
	"github.com/cglab/imagefilter/imp"
	"github.com/cglab/imagefilter/models"
	"github.com/jinzhu/gorm"
	"github.com/spf13/viper"
)

var errNoDB = errors.New("couldn't get DB from context")

// React with a poopy (indicate failure)
func markPoop(ctx *exrouter.Context) {
	ctx.Ses.MessageReactionAdd(ctx.Msg.ChannelID, ctx.Msg.ID, "💩")
}

// React with a thumbs up (indicate success)
func markOk(ctx *exrouter.Context) {
	ctx.Ses.MessageReactionAdd(ctx.Msg.ChannelID, ctx.Msg.ID, "👍")
}

// Report an error
func sendError(ctx *exrouter.Context, err error) {
	ctx.Reply("📛 ", err)
}

// Report a warning
func sendWarning(ctx *exrouter.Context, args ...interface{}) {
	ctx.Reply("⚠️  ", fmt.Sprint(args...))
}

// Report an internal error
func internalError(ctx *exrouter.Context, err error) {
	sendError(ctx, fmt.Errorf("Internal error (`%w`)", err))
}

// Send correct command syntax
func sendUsage(ctx *exrouter.Context, syntax string) {
	sendWarning(ctx, fmt.Sprintf("syntax: `%s %s`", ctx.Args.Get(0), syntax))
}

// Get database instance from the context
func getDB(ctx *exrouter.Context) (db *gorm.DB, err error) {
	db, _ = ctx.Get("db").(*gorm.DB)
	if db == nil {
		err = errNoDB
	}
	return
}

// Save a run in the history, if the bot has one.
func record(ctx *exrouter.Context, run models.Run) {
	db, err := getDB(ctx)
	if err != nil {
		return
	}
	if err := run.Create(db); err != nil {
		log.Println("couldn't record run:", err)
	}
}

func jobOptions() []imp.Option {
	opts := []imp.Option{imp.Workers(viper.GetInt("workers"))}
	if viper.GetBool("histogram.strict") {
		opts = append(opts, imp.Strict())
	}
	return opts
}
