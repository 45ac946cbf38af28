// Package testsupport builds git fixtures and executor stubs for repometa tests.
package testsupport
