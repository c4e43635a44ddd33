//go:build mage
// +build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

var (
	binDir = "bin"
)

var Default = Test

// Tidy: go mod tidy
func Tidy() error {
	return sh.RunV("go", "mod", "tidy")
}

// Build: compile payctl and mockbackend into ./bin
func Build() error {
	mg.Deps(Tidy)
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return err
	}

	ext := ""
	if runtime.GOOS == "windows" {
		ext = ".exe"
	}

	targets := map[string]string{
		"payctl":      "./cmd/payctl",
		"mockbackend": "./cmd/tools/mockbackend",
	}
	for name, pkg := range targets {
		out := filepath.Join(binDir, name+ext)
		fmt.Printf("Building %s ...\n", out)
		if err := sh.RunV("go", "build", "-o", out, pkg); err != nil {
			return err
		}
	}
	return nil
}

// Test: run all tests
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Lint: golangci-lint if installed, otherwise go vet
func Lint() error {
	if err := sh.RunV("golangci-lint", "run"); err == nil {
		return nil
	}
	fmt.Println("golangci-lint not found, falling back to go vet")
	return sh.RunV("go", "vet", "./...")
}

// Mock: run the mock backend (needs MOCK_DB_DSN)
func Mock() error {
	return sh.RunV("go", "run", "./cmd/tools/mockbackend")
}

// Clean: remove build artifacts
func Clean() error {
	return os.RemoveAll(binDir)
}
