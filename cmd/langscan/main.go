package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/wvell/langscan"
	"github.com/wvell/langscan/internal/config"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := rootCmd(config.Load()).Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	language  string
	srcDir    string
	langDir   string
	extension string
	exclude   []string
	progress  bool
	dryRun    bool
}

func rootCmd(cfg *config.Config) *cobra.Command {
	var opts options
	var logLevel string

	cmd := &cobra.Command{
		Use:   "langscan [language]",
		Short: "Scan a project for all texts that need translations",
		Long: `Langscan searches all source files of a project for __('text') and @lang('text') calls
and merges the texts into the JSON catalog of the given language (default ` + langscan.DefaultLanguage + `).

Existing translations are kept as they are, new texts are appended sorted with the text as translation.

    $ langscan pl --src ./ --lang-dir resources/lang`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setupLogging(logLevel, cfg.EnvFile); err != nil {
				return err
			}

			opts.language = langscan.DefaultLanguage
			if len(args) == 1 {
				opts.language = args[0]
			}

			return processTranslations(afero.NewOsFs(), opts, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.srcDir, "src", cfg.SourceDir, "The project directory. The search is recursive and includes all subdirectories.")
	flags.StringVar(&opts.langDir, "lang-dir", cfg.LangDir, "The directory that contains the translation files. A relative path is resolved against --src.")
	flags.StringVar(&opts.extension, "ext", cfg.Extension, "Only files with this extension are scanned.")
	flags.StringSliceVar(&opts.exclude, "exclude", cfg.Exclude, "Glob patterns of paths relative to --src that are skipped, e.g. vendor or storage/**.")
	flags.BoolVar(&opts.progress, "progress", cfg.Progress, "Show a progress bar while scanning.")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "Print the translation file instead of writing it.")
	flags.StringVar(&logLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn or error.")

	return cmd
}

// setupLogging applies the log level before anything about the configuration is logged.
func setupLogging(logLevel, envFile string) error {
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("parsing log level: %w", err)
	}
	zerolog.SetGlobalLevel(level)

	if envFile == "" {
		log.Debug().Msg("No .env file found, using environment variables")
	} else {
		log.Debug().Str("file", envFile).Msg("Loaded environment file")
	}

	return nil
}

func processTranslations(fs afero.Fs, opts options, out io.Writer) error {
	langDir := opts.langDir
	if !filepath.IsAbs(langDir) {
		langDir = filepath.Join(opts.srcDir, langDir)
	}

	outputFile, err := langscan.CatalogPath(langDir, opts.language)
	if err != nil {
		return err
	}

	extractor, err := langscan.NewExtractor(fs,
		langscan.WithExtension(opts.extension),
		langscan.WithExclude(opts.exclude...),
		langscan.WithLogger(log.Logger),
	)
	if err != nil {
		return err
	}

	files, err := extractor.Files(opts.srcDir)
	if err != nil {
		return fmt.Errorf("error listing source files: %w", err)
	}

	var progress langscan.Progress
	if opts.progress {
		bar := progressbar.NewOptions(len(files),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetDescription("scanning"),
			progressbar.OptionClearOnFinish(),
		)
		defer bar.Finish()
		progress = bar
	}

	keys, err := extractor.KeysFromFiles(files, progress)
	if err != nil {
		return fmt.Errorf("error reading translations from src: %w", err)
	}

	result, err := langscan.UpdateCatalog(fs, outputFile, keys, !opts.dryRun)
	if err != nil {
		return fmt.Errorf("error updating %s: %w", outputFile, err)
	}

	if opts.dryRun {
		_, err := out.Write(result.Content)
		return err
	}

	log.Info().
		Int("files", len(files)).
		Int("kept", result.Kept).
		Int("added", len(result.Added)).
		Msg("The output file has been created: " + result.Path)

	return nil
}
