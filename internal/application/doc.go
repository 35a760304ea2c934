// Package application provides dependency wiring for the serve command. It
// resolves the site configuration once, stores the snapshot, and builds the
// API router, metrics endpoint and HTTP server around it, keeping the main
// package focused on CLI parsing and orchestration.
package application
