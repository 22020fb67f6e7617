//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Environment variables that enable the external-service medium tests.
const (
	envRedisAddr   = "MOCKAPI_TEST_REDIS_ADDR"
	envPostgresDSN = "MOCKAPI_TEST_POSTGRES_DSN"
)

// servicePkgs hold tests that skip unless a live server is configured.
var servicePkgs = []string{"./internal/rediskv/...", "./internal/postgres/..."}

// Test groups test targets (all, unit, services).
type Test mg.Namespace

// All runs every test. Service tests skip when their server is not configured.
func (Test) All() error {
	return sh.RunV(binGo, "test", "-race", "./...")
}

// Unit runs the tests that need no external services.
func (Test) Unit() error {
	return sh.RunWithV(map[string]string{envRedisAddr: "", envPostgresDSN: ""},
		binGo, "test", "-race", "./...")
}

// Services runs the redis and postgres medium tests. At least one of
// MOCKAPI_TEST_REDIS_ADDR or MOCKAPI_TEST_POSTGRES_DSN must be set.
func (Test) Services() error {
	if os.Getenv(envRedisAddr) == "" && os.Getenv(envPostgresDSN) == "" {
		return fmt.Errorf("set %s or %s to run service tests", envRedisAddr, envPostgresDSN)
	}
	args := append([]string{"test", "-v", "-count=1"}, servicePkgs...)
	return sh.RunV(binGo, args...)
}
