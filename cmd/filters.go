package cmd

import (
	"fmt"

	"github.com/cglab/imagefilter/imp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// negativeCmd represents the negative command
var negativeCmd = &cobra.Command{
	Use:     "negative",
	Aliases: imp.Negative.Aliases(),
	Short:   "Invert the colors of a PPM image",
	RunE: func(cmd *cobra.Command, args []string) error {
		input, output := ioFlags(cmd)
		return runJob(fileJob(imp.Negative, input, output), input, output)
	},
}

// grayscaleCmd represents the grayscale command
var grayscaleCmd = &cobra.Command{
	Use:     "grayscale",
	Aliases: imp.Grayscale.Aliases(),
	Short:   "Convert a PPM image to a PGM image",
	RunE: func(cmd *cobra.Command, args []string) error {
		input, output := ioFlags(cmd)
		return runJob(fileJob(imp.Grayscale, input, output), input, output)
	},
}

// histogramCmd represents the histogram command
var histogramCmd = &cobra.Command{
	Use:     "histogram",
	Aliases: imp.BrightnessHistogram.Aliases(),
	Short:   "Write the brightness histogram of a PGM image",
	Long: `Count the pixels of each brightness level of a PGM image and write one
"level count" line per level, from 0 to the max value of the image.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		input, _ := cmd.Flags().GetString("input")
		report := viper.GetString("report")

		f := &reportFile{path: report}
		defer f.Close()

		j := imp.Job{Filter: imp.BrightnessHistogram, Source: imp.File{Input: input}, Report: f}
		if err := runJob(j, input, report); err != nil {
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Println("Histogram saved to", report)
		return nil
	},
}

// thresholdCmd represents the threshold command
var thresholdCmd = &cobra.Command{
	Use:     "threshold",
	Aliases: imp.BlackWhite.Aliases(),
	Short:   "Binarize a PGM image",
	RunE: func(cmd *cobra.Command, args []string) error {
		input, output := ioFlags(cmd)
		inverse, _ := cmd.Flags().GetBool("inverse")

		j := fileJob(imp.BlackWhite, input, output)
		j.Threshold = viper.GetInt("threshold")
		j.Inverse = inverse
		if err := runJob(j, input, output); err != nil {
			return err
		}
		fmt.Println("Binary image saved to", output)
		return nil
	},
}

func ioFlags(cmd *cobra.Command) (input, output string) {
	input, _ = cmd.Flags().GetString("input")
	output, _ = cmd.Flags().GetString("output")
	return
}

func init() {
	for _, c := range []*cobra.Command{negativeCmd, grayscaleCmd, histogramCmd, thresholdCmd} {
		c.Flags().StringP("input", "i", "", "input image")
		c.MarkFlagRequired("input")
		if c != histogramCmd {
			c.Flags().StringP("output", "o", "", "output image (.ppm, .pgm, .pbm, .png, .jpg, ...)")
			c.MarkFlagRequired("output")
		}
		rootCmd.AddCommand(c)
	}

	histogramCmd.Flags().StringP("report", "r", "histogram.dat", "histogram report file")
	histogramCmd.Flags().Bool("strict", false, "fail on levels outside of the histogram instead of skipping them")
	viper.BindPFlag("report", histogramCmd.Flags().Lookup("report"))
	viper.BindPFlag("histogram.strict", histogramCmd.Flags().Lookup("strict"))

	thresholdCmd.Flags().IntP("threshold", "t", imp.DefaultThreshold, "binarization level")
	thresholdCmd.Flags().Bool("inverse", false, "map pixels at or above the level to 0")
	viper.BindPFlag("threshold", thresholdCmd.Flags().Lookup("threshold"))
}
