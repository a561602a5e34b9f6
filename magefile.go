// Copyright (C) 2021 Storj Labs, Inc.
// See LICENSE for copying information.

//go:build mage
// +build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
	"github.com/zeebo/errs"
)

// Test executes all unit and integration tests.
//nolint:deadcode
func Test() error {
	err := sh.RunV("go", "test", "./...")
	return err
}

// Coverage executes all unit test with coverage measurement.
//nolint:deadcode
func Coverage() error {
	fmt.Println("Executing tests and generate coverage information")
	if err := os.MkdirAll("tmp", 0o755); err != nil {
		return errs.Wrap(err)
	}
	err := sh.RunV("go", "test", "-coverprofile=./tmp/coverage.out", "./...")
	if err != nil {
		return err
	}
	return sh.RunV("go", "tool", "cover", "-html=./tmp/coverage.out", "-o", "./tmp/coverage.html")
}

// Lint executes all the linters with golangci-lint.
//nolint:deadcode
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Format reformats code automatically.
//nolint:deadcode
func Format() error {
	err := sh.RunV("gofmt", "-w", ".")
	if err != nil {
		return err
	}
	return sh.RunV("goimports", "-w", "-local=storj", ".")
}

// Contracts compiles the Solidity contracts into hardhat artifacts.
//nolint:deadcode
func Contracts() error {
	if _, err := os.Stat("hardhat.config.js"); os.IsNotExist(err) {
		return errs.New("hardhat.config.js not found, run from the contracts project root")
	}
	return sh.RunV("npx", "hardhat", "compile")
}

// Build builds the dtradeploy binary into ./build.
//nolint:deadcode
func Build() error {
	version, err := buildVersion()
	if err != nil {
		return err
	}
	return sh.RunV("go", "build",
		"-ldflags", "-X main.Version="+version,
		"-o", filepath.Join("build", "dtradeploy"),
		"./cmd/dtradeploy")
}

// Deploy compiles the contracts and deploys them with the environment configuration.
//nolint:deadcode
func Deploy() error {
	mg.SerialDeps(Contracts, Build)
	return sh.RunV(filepath.Join("build", "dtradeploy"), "deploy")
}

// Simulate deploys the compiled contracts to an in-memory chain.
//nolint:deadcode
func Simulate() error {
	mg.SerialDeps(Contracts, Build)
	return sh.RunV(filepath.Join("build", "dtradeploy"), "deploy", "--missing-credential=simulate")
}

// buildVersion returns the git description of HEAD, or a date based version outside of git.
func buildVersion() (string, error) {
	out, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil || strings.TrimSpace(out) == "" {
		return "dev-" + time.Now().Format("20060102"), nil
	}
	return strings.TrimSpace(out), nil
}
