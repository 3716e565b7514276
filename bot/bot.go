// Package bot exposes the image filters as Discord commands: pictures
// attached to a command message are filtered and sent back to the channel.
package bot

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Necroforger/dgrouter/exrouter"
	"github.com/bwmarrin/discordgo"
	"github.com/cglab/imagefilter/imp"
	"github.com/cglab/imagefilter/models"
	"github.com/jinzhu/gorm"
	"github.com/spf13/viper"
)

// newRouter builds the command tree. db may be nil, in which case nothing is
// recorded and the history command reports an error.
func newRouter(db *gorm.DB) *exrouter.Route {
	router := exrouter.New()

	router.Group(func(r *exrouter.Route) {
		r.Use(logMiddleware)
		if db != nil {
			r.Use(dbMiddleware(db))
		}
		for _, f := range imp.Filters() {
			r.On(f.String(), filterHandler(f)).Desc(usage(f)).Alias(f.Aliases()...)
		}
		r.On("history", listRuns).Desc("list the last runs: history [count] (alias: hs)").Alias("hs")
	})

	router.Default = router.On("help", func(ctx *exrouter.Context) {
		var b strings.Builder
		for _, v := range router.Routes {
			b.WriteString(v.Name + ": " + v.Description + "\n")
		}
		ctx.Reply("```" + b.String() + "```")
	}).Desc("print this help menu (alias: h)").Alias("h")

	return router
}

func usage(f imp.Filter) string {
	text := f.Description()
	if f == imp.BlackWhite {
		text += " [level] [inverse]"
	}
	return fmt.Sprintf("%s (alias: %s)", text, strings.Join(f.Aliases(), ", "))
}

// Run runs the bot.
func Run() {
	dg, err := discordgo.New("Bot " + viper.GetString("bot.token"))
	if err != nil {
		fmt.Println("couldn't create Discord session:", err)
		return
	}

	var db *gorm.DB
	if path := viper.GetString("db"); path != "" {
		db, err = models.Open(path)
		if err != nil {
			fmt.Println("couldn't connect to db:", err)
			return
		}
		defer db.Close()
	}

	router := newRouter(db)
	prefix := viper.GetString("bot.prefix")

	dg.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		if m.Author.ID == s.State.User.ID {
			return
		}
		router.FindAndExecute(s, prefix, s.State.User.ID, m.Message)
	})

	err = dg.Open()
	if err != nil {
		fmt.Println("error opening connection:", err)
		return
	}

	fmt.Println("Up & running")
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	// Cleanly close down the Discord session.
	dg.Close()
}
