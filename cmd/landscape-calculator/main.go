package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/iwvelando/landscape-calculator/internal/calculator"
	"github.com/iwvelando/landscape-calculator/internal/catalog"
	"github.com/iwvelando/landscape-calculator/internal/config"
	"github.com/iwvelando/landscape-calculator/internal/store"
	"github.com/iwvelando/landscape-calculator/pkg/constants"
	"github.com/iwvelando/landscape-calculator/pkg/currency"
	"github.com/iwvelando/landscape-calculator/pkg/estimator"
	"github.com/iwvelando/landscape-calculator/pkg/output"
	"github.com/iwvelando/landscape-calculator/pkg/share"
	"github.com/iwvelando/landscape-calculator/pkg/validation"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	size := flag.Float64("size", 0, "landscape area in square meters")
	budget := flag.String("budget", string(catalog.Standard), "budget tier: economic, standard, highEnd, superHighEnd")
	features := flag.String("features", "", "comma-separated list of features to include")
	currencyFlag := flag.String("currency", "", "display currency override: AED, USD")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, json")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	shareBase := flag.String("share-base", "", "base URL used to print a share link")
	save := flag.Bool("save", false, "remember these inputs for the next run")
	compare := flag.Bool("compare", false, "compare the selection across all budget tiers")
	schedule := flag.Bool("schedule", false, "print the payment schedule of the popular plan")
	flag.Parse()

	// A missing .env file is not an error.
	_ = godotenv.Load()

	conf, err := loadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := config.NewLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// CLI overrides take precedence over config
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	displayCurrency := conf.Output.Currency
	if *currencyFlag != "" {
		displayCurrency = *currencyFlag
	}
	code, err := currency.ParseCode(displayCurrency)
	if err != nil {
		logger.Fatal("invalid display currency",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	cat, err := conf.BuildCatalog()
	if err != nil {
		logger.Fatal("failed to build pricing catalog",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	inputStore, err := store.New(logger, conf.Store)
	if err != nil {
		logger.Fatal("failed to open input store",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	storeKey := conf.Store.StoreKey()

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	var in estimator.Input
	if set["size"] || set["features"] || set["budget"] {
		in = buildInput(*size, *budget, *features)
	} else {
		in, err = store.LoadInputs(inputStore, storeKey)
		switch {
		case errors.Is(err, store.ErrNotFound):
			logger.Fatal("no inputs given and none stored; pass -size, -budget and -features",
				zap.String("op", "main"),
			)
		case err != nil:
			logger.Fatal("failed to load stored inputs",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		logger.Info("using stored inputs",
			zap.String("op", "main"),
			zap.String("key", storeKey),
		)
	}

	result, err := calculator.Calculate(logger, cat, in)
	if err != nil {
		logger.Fatal("failed to calculate estimate",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	if *save {
		if err := store.SaveInputs(inputStore, storeKey, in); err != nil {
			logger.Error("failed to save inputs",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}
	if closer, ok := inputStore.(interface{ Close() error }); ok {
		_ = closer.Close()
	}

	display := result.In(code)

	// Handle output.
	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(os.Stdout, display)
		if *schedule {
			if p, ok := display.Recommended(); ok {
				fmt.Println()
				output.PrettySchedule(os.Stdout, p, string(code))
			}
		}
		if *compare {
			results, err := calculator.CompareBudgets(logger, cat, in)
			if err != nil {
				logger.Fatal("failed to compare budgets",
					zap.String("op", "main"),
					zap.Error(err),
				)
			}
			for i := range results {
				results[i] = results[i].In(code)
			}
			fmt.Println()
			output.PrettyComparison(os.Stdout, results)
		}
	case constants.OutputFormatCSV:
		err = output.CsvFormat(os.Stdout, display)
	case constants.OutputFormatJSON:
		err = output.JSONFormat(os.Stdout, display)
	}
	if err != nil {
		logger.Fatal("failed to write output",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	base := conf.Output.ShareURL
	if *shareBase != "" {
		base = *shareBase
	}
	if base != "" {
		link, err := share.BuildURL(base, in)
		if err != nil {
			logger.Warn("failed to build share link",
				zap.String("op", "main"),
				zap.Error(err),
			)
			return
		}
		fmt.Fprintf(os.Stderr, "Share: %s\n", link)
	}
}

// loadConfiguration reads the config file, falling back to the built-in
// defaults when the file does not exist.
func loadConfiguration(path string) (*config.Configuration, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	return config.LoadConfiguration(path)
}

func buildInput(size float64, budget string, features string) estimator.Input {
	in := estimator.Input{
		AreaSize: size,
		Features: map[catalog.Feature]bool{},
		Budget:   catalog.BudgetTier(strings.TrimSpace(budget)),
	}
	for _, name := range strings.Split(features, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if f, ok := catalog.ParseFeature(name); ok {
			in.Features[f] = true
			continue
		}
		// Unknown names are kept so validation reports them.
		in.Features[catalog.Feature(name)] = true
	}
	if tier, ok := catalog.ParseBudgetTier(budget); ok {
		in.Budget = tier
	}
	return in
}
