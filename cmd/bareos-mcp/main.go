package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/alucardeht/bareos-mcp/internal/bconsole"
	"github.com/alucardeht/bareos-mcp/internal/config"
	"github.com/alucardeht/bareos-mcp/internal/logger"
	"github.com/alucardeht/bareos-mcp/internal/mcp"
	"github.com/alucardeht/bareos-mcp/internal/tools"
	"github.com/alucardeht/bareos-mcp/pkg/version"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr, os.Getenv); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer, getenv func(string) string) error {
	var (
		configPath     string
		bconsolePath   string
		bconsoleConfig string
		encoding       string
		enabledTools   string
		logLevel       string
		logFormat      string
		showVersion    bool
	)

	flagSet := pflag.NewFlagSet(version.Name, pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&configPath, "config", "", "YAML config file (default: $"+config.EnvConfigFile+")")
	flagSet.StringVar(&bconsolePath, "bconsole", "", "bconsole binary (default: $"+config.EnvBconsolePath+" or bconsole from PATH)")
	flagSet.StringVar(&bconsoleConfig, "bconsole-config", "", "bconsole configuration file passed with -c")
	flagSet.StringVar(&encoding, "encoding", "", "charset of bconsole output: utf-8, auto, latin1, windows-1252, ...")
	flagSet.StringVar(&enabledTools, "tools", "", "comma-separated glob patterns of tools to expose (default: all)")
	flagSet.StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
	flagSet.StringVar(&logFormat, "log-format", "", "text or json")
	flagSet.BoolVar(&showVersion, "version", false, "print version and exit")
	flagSet.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [options]\n\n", version.Name)
		fmt.Fprintf(stderr, "MCP server answering Bareos queries through bconsole over stdio.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if showVersion {
		fmt.Fprintf(stderr, "%s v%s\n", version.Name, version.Version)
		return nil
	}

	cfg, err := config.Load(configPath, getenv)
	if err != nil {
		return err
	}
	applyFlags(cfg, flagSet, bconsolePath, bconsoleConfig, encoding, enabledTools, logLevel, logFormat)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logConfig := logger.DefaultConfig()
	logConfig.Level, _ = logger.ParseLevel(cfg.Log.Level)
	logConfig.Format = cfg.Log.Format
	logConfig.Output = stderr
	logger.Init(logConfig)
	log := logger.ForComponent("main")

	path, err := bconsole.ResolvePath(cfg.Bconsole.Path)
	if err != nil {
		log.Warn("bconsole not found, tool calls will fail until it is installed", "error", err)
	}

	client, err := bconsole.NewClient(bconsole.Config{
		Path:       path,
		ConfigFile: cfg.Bconsole.Config,
		Encoding:   cfg.Bconsole.Encoding,
	}, logger.ForComponent("bconsole"))
	if err != nil {
		return err
	}

	filter, err := tools.NewFilter(cfg.Tools.Enabled)
	if err != nil {
		return err
	}
	registry := tools.NewRegistry(client, filter)
	for _, tool := range tools.GetTools() {
		if err := registry.Register(tool); err != nil {
			return err
		}
	}

	log.Info("starting",
		"name", version.Name,
		"version", version.Version,
		"bconsole", client.Path(),
		"tools", len(registry.List()))

	server := mcp.NewServer(registry, logger.ForComponent("mcp"))
	if err := server.ProcessStream(context.Background(), stdin, stdout); err != nil {
		return fmt.Errorf("reading requests: %w", err)
	}

	log.Info("client disconnected")
	return nil
}

// applyFlags lets explicitly set flags override file and environment.
func applyFlags(cfg *config.Config, flagSet *pflag.FlagSet, bconsolePath, bconsoleConfig, encoding, enabledTools, logLevel, logFormat string) {
	if flagSet.Changed("bconsole") {
		cfg.Bconsole.Path = bconsolePath
	}
	if flagSet.Changed("bconsole-config") {
		cfg.Bconsole.Config = bconsoleConfig
	}
	if flagSet.Changed("encoding") {
		cfg.Bconsole.Encoding = encoding
	}
	if flagSet.Changed("tools") {
		cfg.SetEnabledTools(enabledTools)
	}
	if flagSet.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flagSet.Changed("log-format") {
		cfg.Log.Format = logFormat
	}
}
