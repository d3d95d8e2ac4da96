//go:build mage

// Package main contains Mage build targets for the accu tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "accu"
	cmdPkg  = "./cmd/accu"
)

// sourceDirs are the directories holding module sources.
var sourceDirs = []string{"article", "bibliography", "cmd", "converter", "images", "magefiles", "markup", "membership", "web"}

// Default target when mage is run without arguments.
var Default = Build

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	version, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil {
		version = "dev"
	}
	if err := sh.RunV("go", "build", "-ldflags", "-X main.version="+version, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests with the race detector.
func Test() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Fuzz runs the converter fuzz targets for a short while.
func Fuzz() error {
	for _, target := range []struct{ pkg, name string }{
		{"./converter", "FuzzSanitizeRefID"},
		{"./markup", "FuzzConvertHTML"},
	} {
		if err := sh.RunV("go", "test", "-run", "^$", "-fuzz", "^"+target.name+"$", "-fuzztime", "30s", target.pkg); err != nil {
			return err
		}
	}
	return nil
}

// Lint runs go vet and checks formatting.
func Lint() error {
	if err := sh.RunV("go", "vet", "./..."); err != nil {
		return err
	}
	unformatted, err := sh.Output("gofmt", append([]string{"-l"}, sourceDirs...)...)
	if err != nil {
		return err
	}
	if unformatted != "" {
		return fmt.Errorf("files need gofmt:\n%s", unformatted)
	}
	return nil
}

// Check runs Lint and Test.
func Check() {
	mg.SerialDeps(Lint, Test)
}

// Clean removes build output.
func Clean() error {
	return os.RemoveAll(binDir)
}
