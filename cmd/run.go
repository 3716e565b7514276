package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cglab/imagefilter/imp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// jobConfig is an entry of the "jobs" configuration list.
type jobConfig struct {
	Filter    string `mapstructure:"filter"`
	Input     string `mapstructure:"input"`
	Output    string `mapstructure:"output"`
	Threshold *int   `mapstructure:"threshold"`
	Inverse   bool   `mapstructure:"inverse"`
}

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the jobs listed in the config file, in order",
	Long: `Run every job of the "jobs" list of the config file, in order, e.g.:

  jobs:
    - filter: negative
      input: in.ppm
      output: negative.ppm
    - filter: grayscale
      input: in.ppm
      output: gray.pgm
    - filter: histogram
      input: gray.pgm
      output: histogram.dat
    - filter: threshold
      input: gray.pgm
      output: bw.pgm
      threshold: 128

The histogram output is its report file, "report" by default.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		jobs, err := loadJobs(viper.GetViper())
		if err != nil {
			return err
		}
		for _, jc := range jobs {
			if err := runConfigured(jc); err != nil {
				return err
			}
		}
		return nil
	},
}

// loadJobs reads and validates the job list. All problems are reported at
// once, before anything runs.
func loadJobs(v *viper.Viper) ([]jobConfig, error) {
	var jobs []jobConfig
	if err := v.UnmarshalKey("jobs", &jobs); err != nil {
		return nil, fmt.Errorf("reading jobs: %w", err)
	}
	if len(jobs) == 0 {
		return nil, errors.New("no jobs configured")
	}

	var problems []string
	for i := range jobs {
		jc := &jobs[i]
		f, err := imp.LookupFilter(jc.Filter)
		if err != nil {
			problems = append(problems, fmt.Sprintf("job %d: %v", i+1, err))
			continue
		}
		jc.Filter = f.String()
		if jc.Input == "" {
			problems = append(problems, fmt.Sprintf("job %d: no input", i+1))
		}
		switch {
		case f == imp.BrightnessHistogram && jc.Output == "":
			jc.Output = v.GetString("report")
		case jc.Output == "":
			problems = append(problems, fmt.Sprintf("job %d: no output", i+1))
		}
		if jc.Threshold == nil {
			level := v.GetInt("threshold")
			jc.Threshold = &level
		}
	}
	if len(problems) > 0 {
		return nil, errors.New(strings.Join(problems, "\n"))
	}
	return jobs, nil
}

func runConfigured(jc jobConfig) error {
	f, err := imp.LookupFilter(jc.Filter)
	if err != nil {
		return err
	}
	if f != imp.BrightnessHistogram {
		j := fileJob(f, jc.Input, jc.Output)
		j.Threshold = *jc.Threshold
		j.Inverse = jc.Inverse
		return runJob(j, jc.Input, jc.Output)
	}

	report := &reportFile{path: jc.Output}
	defer report.Close()
	j := imp.Job{Filter: f, Source: imp.File{Input: jc.Input}, Report: report}
	if err := runJob(j, jc.Input, jc.Output); err != nil {
		return err
	}
	return report.Close()
}

func init() {
	rootCmd.AddCommand(runCmd)
}
