package keeloq

import "github.com/d21d3q/gokeeloq/internal/options"

// AnalyzeOptions configures decoding.
type AnalyzeOptions struct {
	// Profile names the registered profile; empty selects hcs200.
	Profile string
	// Workers bounds AnalyzeBatch concurrency; zero selects the default.
	Workers int
}

// OptionsFromFile loads a YAML configuration file into AnalyzeOptions.
func OptionsFromFile(path string) (AnalyzeOptions, error) {
	cfg, err := options.Load(path)
	if err != nil {
		return AnalyzeOptions{}, err
	}
	return AnalyzeOptions{Profile: cfg.Profile, Workers: cfg.Workers}, nil
}

func (opts AnalyzeOptions) profileName() string {
	if opts.Profile == "" {
		return options.DefaultProfile
	}
	return opts.Profile
}

func (opts AnalyzeOptions) workers() int {
	if opts.Workers <= 0 {
		return options.DefaultWorkers
	}
	return opts.Workers
}
