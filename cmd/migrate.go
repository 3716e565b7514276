package cmd

import (
	"log"

	"github.com/cglab/imagefilter/models"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Perform automatic database migration",
	Run: func(cmd *cobra.Command, args []string) {
		migrateDB()
	},
}

func migrateDB() {
	path := viper.GetString("db")
	if path == "" {
		return
	}
	db, err := models.Open(path)
	if err != nil {
		log.Fatal(err)
	}
	db.Close()
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
