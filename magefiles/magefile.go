//go:build mage

// Package main provides build targets for the linkdeck project using Mage.
//
// Usage:
//
//	mage build            Compile the linkdeck binary to bin/
//	mage test:all         Run all tests (unit + integration)
//	mage test:unit        Run only unit tests (exclude tests/)
//	mage test:integration Run only integration tests
//	mage test:coverage    Run tests with a coverage report
//	mage lint             Run golangci-lint
//	mage clean            Remove build artifacts
//	mage install          Install linkdeck to GOPATH/bin
package main

const (
	binGo      = "go"
	binaryName = "linkdeck"
	binaryDir  = "bin"
	cmdDir     = "./cmd/linkdeck"
)
