package bot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Necroforger/dgrouter/exrouter"
	"github.com/bwmarrin/discordgo"
	"github.com/cglab/imagefilter/imp"
	"github.com/cglab/imagefilter/models"
	"github.com/spf13/viper"
)

var errNoAttachment = errors.New("attach at least one picture to the command")

// parseThreshold reads the optional "[level] [inverse]" arguments of the
// threshold command. The level defaults to the configured threshold.
func parseThreshold(args exrouter.Args) (level int, inverse bool, err error) {
	level = viper.GetInt("threshold")
	if len(args) < 2 {
		return
	}
	for _, a := range args[1:] {
		switch strings.ToLower(a) {
		case "":
		case "inverse", "inv":
			inverse = true
		default:
			if level, err = strconv.Atoi(a); err != nil {
				return 0, false, fmt.Errorf("invalid level %q", a)
			}
		}
	}
	return
}

// filterHandler applies f to every attachment of the message and sends the
// results back to the channel.
func filterHandler(f imp.Filter) exrouter.HandlerFunc {
	return func(ctx *exrouter.Context) {
		j := imp.Job{Filter: f}
		if f == imp.BlackWhite {
			level, inverse, err := parseThreshold(ctx.Args)
			if err != nil {
				sendError(ctx, err)
				sendUsage(ctx, "[level] [inverse]")
				return
			}
			j.Threshold, j.Inverse = level, inverse
		}

		if len(ctx.Msg.Attachments) == 0 {
			sendError(ctx, errNoAttachment)
			return
		}

		ok := true
		for _, att := range ctx.Msg.Attachments {
			if err := filterAttachment(ctx, j, att); err != nil {
				sendWarning(ctx, fmt.Sprintf("While filtering <%s>: `%s`\n", att.Filename, err))
				ok = false
			}
		}
		if ok {
			markOk(ctx)
		} else {
			markPoop(ctx)
		}
	}
}

func filterAttachment(ctx *exrouter.Context, j imp.Job, att *discordgo.MessageAttachment) error {
	body, err := download(att.URL, att.Size)
	if err != nil {
		return err
	}
	defer body.Close()

	name := outputName(j.Filter, att.Filename)
	start := time.Now()
	out, d, err := apply(j, body, jobOptions()...)

	run := models.Run{
		Filter:   j.Filter.String(),
		Origin:   models.OriginDiscord,
		Input:    att.Filename,
		Output:   name,
		Width:    d.Width,
		Height:   d.Height,
		MaxValue: d.MaxValue,
		Duration: time.Since(start),
	}
	if j.Filter == imp.BlackWhite {
		run.Threshold = j.Threshold
	}
	if err != nil {
		run.Error = err.Error()
	}
	record(ctx, run)

	if err != nil {
		return err
	}
	_, err = ctx.Ses.ChannelFileSend(ctx.Msg.ChannelID, name, out)
	return err
}
