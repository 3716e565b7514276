package cmd

import (
	"github.com/cglab/imagefilter/bot"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var token string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Discord bot.",
	Run: func(cmd *cobra.Command, args []string) {
		migrateDB()
		if token != "" {
			viper.Set("bot.token", token)
		}
		bot.Run()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&token, "token", "t", "", "discord token")
	serveCmd.Flags().String("prefix", "!", "command prefix")
	viper.BindPFlag("bot.prefix", serveCmd.Flags().Lookup("prefix"))
}
