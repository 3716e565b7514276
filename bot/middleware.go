package bot

import (
	"log"

	"github.com/Necroforger/dgrouter/exrouter"
	"github.com/bwmarrin/discordgo"
	"github.com/jinzhu/gorm"
)

// Log a received message event to standard output
func logMsg(s *discordgo.Session, m *discordgo.Message) {
	channel := m.ChannelID
	if c, err := s.State.Channel(m.ChannelID); err == nil {
		channel = c.Name
	}
	log.Printf("[%s] %s: %s (%d attachment(s))\n", channel, m.Author.Username, m.Content, len(m.Attachments))
}

// Middleware that logs processed messages to stdout
func logMiddleware(fn exrouter.HandlerFunc) exrouter.HandlerFunc {
	return func(ctx *exrouter.Context) {
		logMsg(ctx.Ses, ctx.Msg)
		if fn != nil {
			fn(ctx)
		}
	}
}

// Middleware that adds the database to commands' context.
func dbMiddleware(db *gorm.DB) exrouter.MiddlewareFunc {
	return func(fn exrouter.HandlerFunc) exrouter.HandlerFunc {
		return func(ctx *exrouter.Context) {
			ctx.Set("db", db)
			if fn != nil {
				fn(ctx)
			}
		}
	}
}
