// Package testutil holds mocks and fixtures shared by package tests.
package testutil
