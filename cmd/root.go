package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/cglab/imagefilter/imp"
	"github.com/spf13/cobra"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "imagefilter",
	Short: "Batch filters for PPM and PGM images",
	Long: `Apply simple pixel filters (negative, grayscale conversion, brightness
histogram, binarization) to PPM and PGM images.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Any error is fatal.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is $HOME/.imagefilter.yaml)")
	rootCmd.PersistentFlags().String("db", "imagefilter.sqlite", "history database, empty to disable")
	rootCmd.PersistentFlags().IntP("workers", "w", 1, "number of goroutines sharing the pixel loop")
	rootCmd.PersistentFlags().Bool("plain", false, "write plain (ASCII) PPM/PGM files")
	viper.BindPFlag("db", rootCmd.PersistentFlags().Lookup("db"))
	viper.BindPFlag("workers", rootCmd.PersistentFlags().Lookup("workers"))
	viper.BindPFlag("plain", rootCmd.PersistentFlags().Lookup("plain"))

	viper.SetDefault("report", "histogram.dat")
	viper.SetDefault("threshold", imp.DefaultThreshold)
	viper.SetDefault("bot.prefix", "!")
}

func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".imagefilter" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".imagefilter")
	}

	viper.AutomaticEnv() // read in environment variables that match
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.SetEnvPrefix("IMF")

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
