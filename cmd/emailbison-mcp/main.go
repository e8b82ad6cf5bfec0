package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adrianliechti/emailbison-mcp/config"
	"github.com/adrianliechti/emailbison-mcp/pkg/installer"
	"github.com/adrianliechti/emailbison-mcp/pkg/otel"
	"github.com/adrianliechti/emailbison-mcp/server"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
)

var version = "dev"

func main() {
	installFlag := flag.Bool("install-claude", false, "register this binary with the Claude desktop app and exit")
	addrFlag := flag.String("addr", "", "serve streamable HTTP on this address instead of stdio")
	envFlag := flag.String("env-file", "", "path of the .env file holding "+config.KeyAPIKey)
	configFlag := flag.String("config", "", "path of the emailbison.yaml tuning file")
	versionFlag := flag.Bool("version", false, "print the version and exit")

	flag.Parse()

	if *versionFlag {
		fmt.Fprintln(os.Stderr, "emailbison-mcp", version)
		return
	}

	if *installFlag {
		os.Exit(install(*envFlag))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *addrFlag, *envFlag, *configFlag); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, addr, envFile, tuningFile string) error {
	logger := otel.SetupLogging(os.Stderr)

	shutdown, err := otel.Setup(ctx, "emailbison-mcp", version)

	if err != nil {
		logger.Warn("telemetry disabled", "error", err)
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			shutdown(ctx)
		}()
	}

	cfg, err := config.Load(ctx,
		config.WithEnvFile(envFile),
		config.WithTuningFile(tuningFile),
	)

	if err != nil {
		return err
	}

	if addr != "" {
		s, err := server.New(ctx, cfg, version)

		if err != nil {
			return err
		}

		return s.ListenAndServe(ctx, addr)
	}

	s, err := cfg.Server(version)

	if err != nil {
		return err
	}

	logger.Info("serving on stdio", "base_url", cfg.BaseURL, "degraded", cfg.Degraded)

	return s.Run(ctx)
}

func install(envFile string) int {
	path, err := installer.DefaultPath()

	if err != nil {
		ancli.Errf("failed to locate the Claude configuration directory: %v\n", err)
		return 1
	}

	var args []string

	if envFile != "" {
		args = append(args, "--env-file", envFile)
	}

	entry, err := installer.CurrentEntry(args, nil)

	if err != nil {
		ancli.Errf("failed to resolve the executable path: %v\n", err)
		return 1
	}

	result, err := installer.Install(path, installer.DefaultServerName, entry)

	if err != nil {
		if errors.Is(err, installer.ErrConfigCorrupt) {
			ancli.Errf("%v\nfix or remove the file and run --install-claude again\n", err)
		} else {
			ancli.Errf("installation failed: %v\n", err)
		}

		return 1
	}

	if result.Backup != "" {
		ancli.Noticef("previous configuration saved to %s\n", result.Backup)
	}

	if result.Replaced {
		ancli.Okf("updated %q in %s\n", installer.DefaultServerName, result.Path)
	} else {
		ancli.Okf("added %q to %s\n", installer.DefaultServerName, result.Path)
	}

	if os.Getenv(config.KeyAPIKey) == "" {
		ancli.PrintWarn("set " + config.KeyAPIKey + " or run the binary once in a terminal to store it in the .env file next to it\n")
	}

	ancli.PrintOK("restart the Claude desktop app to load the tools\n")

	return 0
}
