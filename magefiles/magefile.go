//go:build mage

package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binary = "bin/employees"

// Build tidies deps, then compiles to ./bin/employees.
func Build() error {
	mg.Deps(Tidy)
	fmt.Println(">> Building binary...")
	return sh.Run("go", "build", "-o", binary, "./cmd/server")
}

// Backend builds then runs the development API.
func Backend() error {
	mg.Deps(Build)
	fmt.Println(">> Starting employee API...")
	return sh.RunV("./"+binary, "backend")
}

// UI builds then runs the web admin.
func UI() error {
	mg.Deps(Build)
	fmt.Println(">> Starting web admin...")
	return sh.RunV("./"+binary, "ui")
}

// Dev runs the API and the web admin together via go run. Ctrl-C stops both.
func Dev() error {
	start := func(sub string) (*exec.Cmd, error) {
		cmd := exec.Command("go", "run", "./cmd/server", sub)
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		cmd.Env = os.Environ()
		return cmd, cmd.Start()
	}

	fmt.Println(">> Starting API (go run)...")
	api, err := start("backend")
	if err != nil {
		return fmt.Errorf("start backend: %w", err)
	}
	fmt.Println(">> Starting web admin (go run)...")
	ui, err := start("ui")
	if err != nil {
		api.Process.Kill()
		return fmt.Errorf("start ui: %w", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\n>> Shutting down...")
	ui.Process.Kill()
	api.Process.Kill()
	return nil
}

// Tidy runs go mod tidy.
func Tidy() error {
	fmt.Println(">> go mod tidy...")
	return sh.Run("go", "mod", "tidy")
}

// Test runs all unit tests.
func Test() error {
	fmt.Println(">> Running tests...")
	return sh.Run("go", "test", "./...")
}

// Lint runs golangci-lint if available.
func Lint() error {
	if _, err := exec.LookPath("golangci-lint"); err != nil {
		fmt.Println(">> golangci-lint not found; skipping.")
		return nil
	}
	return sh.Run("golangci-lint", "run", "./...")
}

// Clean removes build artifacts and the local SQLite DB.
func Clean() error {
	fmt.Println(">> Cleaning...")
	db := os.Getenv("DB_PATH")
	if db == "" {
		db = "employees.db"
	}
	os.Remove(db)
	return os.RemoveAll("bin")
}

// Install builds and installs the binary to $GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	return sh.Run("go", "install", "./cmd/server")
}

func init() {
	err := godotenv.Load()
	if err != nil {
		slog.Warn("error loading .env file", "err", err)
	}
}
