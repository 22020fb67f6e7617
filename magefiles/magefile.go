//go:build mage

// Package main provides build targets for the mockapi project using Mage.
//
// Usage:
//
//	mage build          Compile the mockapi binary to bin/
//	mage test:all       Run all tests
//	mage test:unit      Run tests that need no external services
//	mage test:services  Run the redis and postgres medium tests
//	mage lint           Run golangci-lint
//	mage clean          Remove build artifacts
//	mage install        Install mockapi to GOPATH/bin
package main
