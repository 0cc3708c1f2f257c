// Package application runs the bootstrap sequence: it registers the root
// configuration's components and the auto-configured ones, refreshes and
// starts the container, serves until the context ends and then shuts
// everything down in reverse.
package application
