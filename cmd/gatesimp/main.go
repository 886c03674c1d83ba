package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/roach88/gatesimp/internal/cli"
)

// EnvLogLevel names the variable holding the slog level (debug, info,
// warn, error). Unset means warn.
const EnvLogLevel = "GATESIMP_LOG_LEVEL"

func main() {
	if err := loadEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "gatesimp: %v\n", err)
		os.Exit(cli.ExitCommandError)
	}

	cli.LogLevel.Set(slog.LevelWarn)
	if v := os.Getenv(EnvLogLevel); v != "" {
		if err := cli.LogLevel.UnmarshalText([]byte(v)); err != nil {
			fmt.Fprintf(os.Stderr, "gatesimp: %s: %v\n", EnvLogLevel, err)
			os.Exit(cli.ExitCommandError)
		}
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cli.LogLevel})))

	err := cli.NewRootCommand().Execute()
	reportError(os.Stderr, err)
	os.Exit(cli.GetExitCode(err))
}

// loadEnv loads path into the environment. A missing file is not an error.
func loadEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("%s: %w", path, err)
}

// reportError prints err unless a command already wrote it.
func reportError(w io.Writer, err error) {
	if err == nil || cli.IsReported(err) {
		return
	}
	fmt.Fprintf(w, "gatesimp: %v\n", err)
}
