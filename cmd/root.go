/*
Copyright © 2026 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/degportal/internal/iofs"
	"github.com/gnames/degportal/internal/iologger"
	app "github.com/gnames/degportal/pkg"
	"github.com/gnames/degportal/pkg/config"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir   string
	opts      []config.Option
	cfg       *config.Config
	logCloser io.Closer
)

// getRootCmd returns the root command with all subcommands attached.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "degportal",
		Short:   "DEGportal searches differential expression genes and publications",
		Long: `DEGportal is a terminal and HTTP front end for a genomic differential
expression portal. It loads gene and publication documents listed in
catalog.yaml, and lets you search, filter, sort, page and export them.

Commands:
  - genes: query genes and their per-dataset observations
  - publications: query the curated publication list
  - browse: interactive session over genes or publications
  - fetch: download catalog documents into the local cache
  - serve: run the HTTP bridge for the portal pages

Configuration: ~/.config/degportal/config.yaml
Catalog:       ~/.config/degportal/catalog.yaml
Environment variables with DEGPORTAL_ prefix override the config file.`,
		PersistentPreRunE: bootstrap,
		RunE:              runRoot,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "degportal version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for degportal")

	rootCmd.AddCommand(
		getGenesCmd(),
		getPublicationsCmd(),
		getBrowseCmd(),
		getFetchCmd(),
		getServeCmd(),
	)

	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.New().Log
	if err = initLogging(config.LogDir(homeDir), defaultLog, false); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureCatalogFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Reconfigure logging with user's settings, keeping bootstrap records
	if err = initLogging(config.LogDir(cfg.HomeDir), cfg.Log, true); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"command", cmd.Name(),
	)

	return nil
}

// initLogging replaces the global logger and releases the previous log
// file.
func initLogging(logDir string, lc config.LogConfig, append bool) error {
	closer, err := iologger.Init(logDir, lc, append)
	if err != nil {
		return err
	}
	if logCloser != nil {
		_ = logCloser.Close()
	}
	logCloser = closer
	return nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	gn.Info(
		"Configuration files are available at <em>%s</em>",
		config.ConfigDir(cfg.HomeDir),
	)
	return cmd.Help()
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	err := getRootCmd().Execute()
	if logCloser != nil {
		_ = logCloser.Close()
	}
	if err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// They match the fields included in config.ToOptions(), the persistent
	// configuration that can be stored in config.yaml.
	v.SetEnvPrefix("DEGPORTAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Significance thresholds
	_ = v.BindEnv("significance.p_value", "DEGPORTAL_SIGNIFICANCE_P_VALUE")
	_ = v.BindEnv("significance.log_fc", "DEGPORTAL_SIGNIFICANCE_LOG_FC")

	// Interactive views
	_ = v.BindEnv("browse.page_size", "DEGPORTAL_BROWSE_PAGE_SIZE")
	_ = v.BindEnv("browse.debounce_ms", "DEGPORTAL_BROWSE_DEBOUNCE_MS")

	// HTTP bridge
	_ = v.BindEnv("server.port", "DEGPORTAL_SERVER_PORT")

	// Document fetching
	_ = v.BindEnv("fetch.timeout_sec", "DEGPORTAL_FETCH_TIMEOUT_SEC")
	_ = v.BindEnv("fetch.use_cache", "DEGPORTAL_FETCH_USE_CACHE")

	// Log configuration
	_ = v.BindEnv("log.level", "DEGPORTAL_LOG_LEVEL")
	_ = v.BindEnv("log.format", "DEGPORTAL_LOG_FORMAT")
	_ = v.BindEnv("log.destination", "DEGPORTAL_LOG_DESTINATION")

	// General configuration
	_ = v.BindEnv("jobs_number", "DEGPORTAL_JOBS_NUMBER")

	v.AutomaticEnv()
}
