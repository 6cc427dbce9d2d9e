package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/d21d3q/gokeeloq/internal/decoder"
	"github.com/d21d3q/gokeeloq/internal/decoder/hcs200"
	"github.com/d21d3q/gokeeloq/internal/options"
	"github.com/d21d3q/gokeeloq/pkg/keeloq"
)

var (
	rootCmd = &cobra.Command{
		Use:   "keeloq-analyze [code]",
		Short: "Decode KeeLoq HCS200/HCS300 remote packets",
		Long: "keeloq-analyze decodes demodulated HCS200/HCS300 code words given in code notation,\n" +
			"e.g. \"{12}fff/{66}123456789abcde0f4\".",
		Args: cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := keeloq.AnalyzeOptions{Profile: cfg.Profile, Workers: cfg.Workers}
			p := printer{out: cmd.OutOrStdout(), format: cfg.Format}
			ctx := cmd.Context()
			switch {
			case inputFile != "":
				return runBatch(ctx, p, opts, inputFile)
			case len(args) == 0:
				return runInteractive(ctx, cmd.InOrStdin(), p, opts)
			default:
				return runAnalyze(ctx, p, opts, args[0])
			}
		},
	}

	profilesCmd = &cobra.Command{
		Use:   "profiles",
		Short: "List registered decoder profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listProfiles(cmd.OutOrStdout())
		},
	}

	cfg        = options.Default()
	configPath string
	inputFile  string
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "YAML configuration file")
	flags.StringVarP(&cfg.Profile, "profile", "p", options.DefaultProfile, "decoder profile (see the profiles command)")
	flags.StringVar(&cfg.LogLevel, "log-level", options.DefaultLogLevel, "log level (debug shows rejected frames)")
	flags.IntVarP(&cfg.Workers, "workers", "w", options.DefaultWorkers, "concurrent decoders in batch mode")
	flags.StringVar(&cfg.Format, "format", options.DefaultFormat, "output format: json or kv")
	rootCmd.Flags().StringVarP(&inputFile, "file", "f", "", "decode every code in a file, one per line")
	rootCmd.AddCommand(profilesCmd)
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	ctx := context.Background()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logrus.Fatal(err)
	}
}

// setup layers changed flags over the config file.
func setup(cmd *cobra.Command) error {
	fromFile, err := options.Load(configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if !flags.Changed("profile") {
		cfg.Profile = fromFile.Profile
	}
	if !flags.Changed("log-level") {
		cfg.LogLevel = fromFile.LogLevel
	}
	if !flags.Changed("workers") {
		cfg.Workers = fromFile.Workers
	}
	if !flags.Changed("format") {
		cfg.Format = fromFile.Format
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	lvl, err := cfg.Level()
	if err != nil {
		return err
	}
	logrus.SetLevel(lvl)
	return nil
}

// printer writes decoded results as indented JSON or labelled lines.
type printer struct {
	out    io.Writer
	format string
}

func (p printer) print(result keeloq.Result) {
	if p.format == options.FormatKV {
		fmt.Fprint(p.out, result.Text())
		fmt.Fprintln(p.out)
		return
	}
	fmt.Fprintln(p.out, result.String())
}

func runInteractive(ctx context.Context, in io.Reader, p printer, opts keeloq.AnalyzeOptions) error {
	scanner := bufio.NewScanner(in)
	logrus.Info("keeloq analyze mode. Paste a code and press Enter (Ctrl+D to exit).")
	for {
		fmt.Fprint(p.out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := runAnalyze(ctx, p, opts, line); err != nil {
			logFailure(line, err)
		}
	}
	return scanner.Err()
}

func runAnalyze(ctx context.Context, p printer, opts keeloq.AnalyzeOptions, code string) error {
	result, err := keeloq.AnalyzeCodeWithOptions(ctx, code, opts)
	if err != nil {
		return err
	}
	p.print(result)
	return nil
}

func runBatch(ctx context.Context, p printer, opts keeloq.AnalyzeOptions, path string) error {
	codes, err := readCodes(path)
	if err != nil {
		return err
	}
	items, err := keeloq.AnalyzeBatch(ctx, codes, opts)
	if err != nil {
		return err
	}
	var decoded int
	for i, item := range items {
		if item.Err != nil {
			logFailure(codes[i], item.Err)
			continue
		}
		decoded++
		p.print(item.Result)
	}
	logrus.WithFields(logrus.Fields{
		"codes":   len(codes),
		"decoded": decoded,
	}).Info("batch finished")
	return nil
}

// logFailure logs decoder rejections at debug level and other failures as warnings.
func logFailure(code string, err error) {
	entry := logrus.WithField("code", code)
	var rej *hcs200.RejectError
	if errors.As(err, &rej) {
		entry.WithField("reason", rej.Reason.String()).Debug("frame rejected")
		return
	}
	entry.WithError(err).Warn("failed to decode code")
}

func readCodes(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open codes: %w", err)
	}
	defer f.Close()
	var codes []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		codes = append(codes, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read codes: %w", err)
	}
	return codes, nil
}

func listProfiles(out io.Writer) error {
	for _, p := range decoder.Profiles() {
		if _, err := fmt.Fprintf(out, "%-12s %-8s threshold=%-6v %s\n  %s\n",
			p.Name, p.Modulation, p.Threshold(), p.FlexSpec(), p.Description); err != nil {
			return err
		}
	}
	return nil
}
