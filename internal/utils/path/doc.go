// Package pathutils normalizes user-supplied filesystem paths for commands.
package pathutils
