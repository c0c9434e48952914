//go:build mage

package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binName = "fsort"

// Default target - build the binary
var Default = Build

// ldflags stamps version metadata into the binary.
func ldflags() string {
	commit, _ := sh.Output("git", "rev-parse", "--short", "HEAD")
	if commit == "" {
		commit = "unknown"
	}
	version, _ := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if version == "" {
		version = "dev"
	}
	date := time.Now().UTC().Format(time.RFC3339)
	return fmt.Sprintf("-s -w -X github.com/dkoosis/fsort/internal/version.Version=%s "+
		"-X github.com/dkoosis/fsort/internal/version.CommitHash=%s "+
		"-X github.com/dkoosis/fsort/internal/version.BuildDate=%s", version, commit, date)
}

// Build builds the fsort binary into bin/.
func Build() error {
	name := binName
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", "bin/"+name, "./cmd/fsort")
}

// Install installs fsort into GOPATH/bin.
func Install() error {
	return sh.RunV("go", "install", "-ldflags", ldflags(), "./cmd/fsort")
}

// Test runs the unit test suite.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// TestAll runs all tests with the race detector and coverage.
func TestAll() error {
	return sh.RunV("go", "test", "-race", "-coverprofile=coverage.out", "-covermode=atomic", "./...")
}

// CheckLocales runs the localization consistency test only.
func CheckLocales() error {
	return sh.RunV("go", "test", "-run", "TestCatalogParity", "./internal/locale/...")
}

// Format formats all Go source.
func Format() error {
	return sh.RunV("go", "fmt", "./...")
}

// FormatCheck fails when any file is not gofmt-clean.
func FormatCheck() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return err
	}
	if out != "" {
		return fmt.Errorf("files need formatting:\n%s", out)
	}
	return nil
}

// Lint runs go vet and golangci-lint.
func Lint() error {
	if err := sh.RunV("go", "vet", "./..."); err != nil {
		return err
	}
	if err := sh.RunV("golangci-lint", "run", "--timeout=5m", "./..."); err != nil {
		if isCommandNotFound(err) {
			fmt.Fprintln(os.Stderr, "golangci-lint not found (install: go install github.com/golangci/golangci-lint/cmd/golangci-lint@latest)")
			return nil
		}
		return err
	}
	return nil
}

// Security runs the gosec security scanner.
func Security() error {
	if err := sh.RunV("gosec", "-quiet", "./..."); err != nil {
		if isCommandNotFound(err) {
			fmt.Fprintln(os.Stderr, "gosec not found (install: go install github.com/securego/gosec/v2/cmd/gosec@latest)")
			return nil
		}
		return err
	}
	return nil
}

// Check runs the full quality gate: format check, lint, security.
func Check() error {
	mg.SerialDeps(FormatCheck, Lint, Security)
	return nil
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll("bin"); err != nil {
		return err
	}
	return sh.Rm("coverage.out")
}

func isCommandNotFound(err error) bool {
	if err == nil {
		return false
	}
	return os.IsNotExist(err) || sh.ExitStatus(err) == 127
}
