// Package ui turns git command events into short console messages.
//
// It is attached to the shell executor when the console log format is
// selected, so users see which metadata query ran in which checkout.
package ui
