// Command passwd sets or resets the finance tracker password directly in the
// database. It is the recovery path when the password is lost.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"
	"unicode/utf8"

	"finance-tracker/internal/repository"
	"finance-tracker/internal/service"
	"finance-tracker/pkg/auth"
	"finance-tracker/pkg/config"
	"finance-tracker/pkg/sqlite"

	"go.uber.org/zap"
	"golang.org/x/term"
)

const defaultDBPath = "./data/finance.db"

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("passwd", flag.ContinueOnError)
	fs.SetOutput(stderr)

	passwordFlag := fs.String("password", "", "New password (optional, will prompt if omitted)")
	dbPath := fs.String("db", defaultDBPath, "Path to database file")

	if err := fs.Parse(args); err != nil {
		return err
	}

	// DB_PATH applies unless -db was given explicitly.
	if path := os.Getenv("DB_PATH"); path != "" && *dbPath == defaultDBPath {
		*dbPath = path
	}

	password := *passwordFlag
	if password == "" {
		fmt.Fprint(stdout, "New password: ")
		var err error
		password, err = readPassword(stdin)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Fprintln(stdout)
	}

	if utf8.RuneCountInString(password) < service.MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", service.MinPasswordLength)
	}
	if len(password) > service.MaxPasswordBytes {
		return fmt.Errorf("password must be at most %d bytes", service.MaxPasswordBytes)
	}

	ctx := context.Background()
	logger := zap.NewNop()
	cfg := &config.DatabaseConfig{
		Path:         *dbPath,
		MaxOpenConns: 1,
		BusyTimeout:  5 * time.Second,
	}

	db, err := sqlite.Open(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := sqlite.Initialize(ctx, db, cfg, logger); err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := repository.NewSettingsRepository(db, logger).SetPasswordHash(ctx, hash); err != nil {
		return fmt.Errorf("failed to store password: %w", err)
	}

	fmt.Fprintf(stdout, "Password updated in %s\n", *dbPath)
	return nil
}

func readPassword(stdin io.Reader) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		bytePassword, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(bytePassword), nil
	}

	// Non-terminal input such as pipes and tests
	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
