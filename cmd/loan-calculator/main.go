package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/iwvelando/loan-calculator/internal/config"
	"github.com/iwvelando/loan-calculator/internal/logging"
	"github.com/iwvelando/loan-calculator/internal/version"
	"github.com/iwvelando/loan-calculator/pkg/constants"
	"github.com/iwvelando/loan-calculator/pkg/export"
	"github.com/iwvelando/loan-calculator/pkg/loans"
	"github.com/iwvelando/loan-calculator/pkg/output"
	"github.com/iwvelando/loan-calculator/pkg/query"
	"github.com/iwvelando/loan-calculator/pkg/validation"
	"go.uber.org/zap"
)

var errNoResult = errors.New("no result for the supplied inputs")

// options carries the command-line overrides.
type options struct {
	outputFormat string
	outputDir    string
	loan         query.Params
	rawQuery     string
	shareBase    string
}

// loadConfiguration reads configPath. A missing file is only an error when
// the path was given explicitly.
func loadConfiguration(configPath string, explicit bool) (*config.Configuration, error) {
	if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) && !explicit {
		return config.Defaults()
	}
	return config.LoadConfiguration(configPath)
}

// resolveParams applies the precedence -query (when complete) > flags > config.
func resolveParams(conf *config.Configuration, opts options) (query.Params, error) {
	params := opts.loan.Merge(conf.Loan.Params)
	if opts.rawQuery == "" {
		return params, nil
	}

	fromQuery, complete, err := query.Parse(opts.rawQuery)
	if err != nil {
		return query.Params{}, fmt.Errorf("failed to parse query %q: %w", opts.rawQuery, err)
	}
	if complete {
		return fromQuery, nil
	}
	return params, nil
}

// run computes the schedule and writes it in the requested format.
func run(conf *config.Configuration, opts options, stdout io.Writer, logger *zap.Logger) error {
	outputFormat := conf.Output.Format
	if opts.outputFormat != "" {
		outputFormat = opts.outputFormat
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		return err
	}

	params, err := resolveParams(conf, opts)
	if err != nil {
		return err
	}

	for _, warning := range validation.LoanWarnings(params) {
		logger.Warn("Loan warning: "+warning,
			zap.String("op", "main"),
		)
	}

	in, ok := params.LoanInput()
	if !ok {
		return errNoResult
	}
	if err := validation.CheckTermLimit(in, maxTermMonths(conf)); err != nil {
		return err
	}
	doc, err := export.NewDocument(in, loans.Compute(in), params.Metadata())
	if err != nil {
		return errNoResult
	}

	shareURL := ""
	shareBase := conf.Share.BaseURL
	if opts.shareBase != "" {
		shareBase = opts.shareBase
	}
	if shareBase != "" && params.Complete() {
		shareURL = params.ShareURL(shareBase, conf.Share.Path)
		logger.Info("share link",
			zap.String("op", "main"),
			zap.String("url", shareURL),
		)
	}

	if !validation.IsFileFormat(outputFormat) {
		if outputFormat == constants.OutputFormatCSV {
			return output.CsvFormat(stdout, doc)
		}
		if err := output.PrettyFormat(stdout, doc); err != nil {
			return err
		}
		if shareURL != "" {
			_, err := fmt.Fprintf(stdout, "\nShare: %s\n", shareURL)
			return err
		}
		return nil
	}

	path, err := writeExport(doc, outputFormat, outputDirectory(conf, opts))
	if err != nil {
		return err
	}
	logger.Info("wrote export",
		zap.String("op", "main"),
		zap.String("format", outputFormat),
		zap.String("path", path),
	)
	_, err = fmt.Fprintln(stdout, path)
	return err
}

// maxTermMonths is the configured term limit, or the default when unset.
func maxTermMonths(conf *config.Configuration) int {
	if conf.Loan.MaxTermMonths > 0 {
		return conf.Loan.MaxTermMonths
	}
	return constants.DefaultMaxTermMonths
}

func outputDirectory(conf *config.Configuration, opts options) string {
	if opts.outputDir != "" {
		return opts.outputDir
	}
	if conf.Output.Directory != "" {
		return conf.Output.Directory
	}
	return "."
}

// writeExport renders doc into dir and returns the file path.
func writeExport(doc export.Document, formatName, dir string) (string, error) {
	format, err := export.Lookup(formatName)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, export.FileName(doc, format.Extension))

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := format.Write(file, doc); err != nil {
		_ = file.Close()
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", path, err)
	}
	return path, nil
}

func main() {
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, xlsx, png, pdf")
	outputDir := flag.String("output-dir", "", "directory for xlsx, png and pdf output")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	amount := flag.String("amount", "", "loan amount in VND")
	rate := flag.String("rate", "", "annual interest rate in percent")
	term := flag.String("term", "", "loan term in months")
	loanType := flag.String("type", "", "repayment method: equal-payment or decreasing-balance")
	bank := flag.String("bank", "", "bank shown on exports")
	banker := flag.String("banker", "", "banker shown on exports")
	contact := flag.String("contact", "", "contact shown on exports")
	rawQuery := flag.String("query", "", "share link or query string; used when all seven keys are present")
	shareBase := flag.String("share-base", "", "base URL for the printed share link")
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Get().String())
		return
	}

	explicitConfig := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			explicitConfig = true
		}
	})

	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load .env\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}

	conf, err := loadConfiguration(*configLocation, explicitConfig)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := logging.New(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	opts := options{
		outputFormat: *outputFormatFlag,
		outputDir:    *outputDir,
		loan: query.Params{
			Amount:  *amount,
			Rate:    *rate,
			Term:    *term,
			Type:    *loanType,
			Bank:    *bank,
			Banker:  *banker,
			Contact: *contact,
		},
		rawQuery:  *rawQuery,
		shareBase: *shareBase,
	}

	if err := run(conf, opts, os.Stdout, logger); err != nil {
		if errors.Is(err, errNoResult) {
			logger.Fatal(errNoResult.Error(),
				zap.String("op", "main"),
			)
		}
		logger.Fatal("failed to produce repayment schedule",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
