package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"apikey-validator/internal/clients"
	"apikey-validator/internal/config"
	"apikey-validator/internal/keyfile"
	"apikey-validator/internal/report"
	"apikey-validator/internal/services"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	var (
		keyFlag     = flag.String("key", "", "Application key to validate")
		fileFlag    = flag.String("file", "", "File containing application keys (one per line, # for comments)")
		scopeFlag   = flag.String("scope", "", "Optional OAuth2 scope parameter")
		urlFlag     = flag.String("url", "", "Lookout API base URL (default "+config.DefaultBaseURL+")")
		outputFlag  = flag.String("output", "", "Save results to JSON file")
		skipTLSFlag = flag.Bool("skip-ssl-verify", false, "Skip TLS certificate verification (use with caution)")
		verboseFlag = flag.Bool("verbose", false, "Verbose output")
	)
	flag.Parse()

	initLogging(*verboseFlag)

	// Optional .env for local runs
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg("Loaded environment from .env")
	}

	cfg := config.NewConfig()
	if *urlFlag != "" {
		cfg.SetBaseURL(*urlFlag)
	}
	if *scopeFlag != "" {
		cfg.Validator.Scope = *scopeFlag
	}
	if *skipTLSFlag {
		cfg.API.SkipTLSVerify = true
	}
	if cfg.API.SkipTLSVerify {
		log.Warn().Msg("TLS certificate verification is DISABLED")
	}

	keys, err := resolveKeys(*keyFlag, *fileFlag)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load application keys")
	}
	if len(keys) == 0 {
		log.Fatal().Msg("No application keys provided")
	}

	log.Info().
		Str("base_url", cfg.API.BaseURL).
		Int("keys", len(keys)).
		Msg("Lookout API key validator starting")

	client := clients.NewLookoutClient(cfg)
	validator := services.NewKeyValidator(cfg, client)
	runner := services.NewBatchRunner(cfg, validator)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	summary := runner.Run(ctx, keys)

	report.WriteSummary(os.Stdout, summary)

	if *outputFlag != "" {
		// A failed write is reported but does not change the exit code
		if err := report.SaveJSON(*outputFlag, summary); err != nil {
			log.Error().Err(err).Msg("Failed to save results")
		}
	}

	if !summary.AllValid() {
		os.Exit(1)
	}
}

// resolveKeys determines the keys to validate from the file flag, the key
// flag, or the first positional argument, in that order of precedence.
func resolveKeys(keyFlag, fileFlag string) ([]string, error) {
	if fileFlag != "" {
		return keyfile.Load(fileFlag)
	}
	if keyFlag != "" {
		return []string{keyFlag}, nil
	}
	if flag.NArg() > 0 {
		return []string{flag.Arg(0)}, nil
	}
	return nil, nil
}

func initLogging(verbose bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
