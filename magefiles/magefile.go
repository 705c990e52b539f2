//go:build mage

// Package main provides build targets for the glossary project using Mage.
//
// Usage:
//
//	mage build             Compile the glossary binary to bin/
//	mage test:all          Run all tests (unit + integration)
//	mage test:unit         Run only unit tests (exclude integration)
//	mage test:integration  Run only integration tests (builds first)
//	mage test:race         Run unit tests with the race detector
//	mage lint              Run golangci-lint
//	mage clean             Remove build artifacts
//	mage install           Install glossary to GOPATH/bin
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "glossary"
	binaryDir  = "bin"
	cmdDir     = "./cmd/glossary"
	cliPkg     = "github.com/mesh-intelligence/glossary/internal/cli"
)

// Build compiles the glossary binary to bin/. VERSION, when set, is
// stamped into the binary.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	args := []string{"build", "-v", "-o", filepath.Join(binaryDir, binaryName)}
	if v := os.Getenv("VERSION"); v != "" {
		args = append(args, "-ldflags", "-X "+cliPkg+".Version="+v)
	}
	return sh.RunV(binGo, append(args, cmdDir)...)
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}
