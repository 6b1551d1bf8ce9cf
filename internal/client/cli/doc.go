// Package cli provides the interactive onboarding command-line client.
//
// It stands in for the app's screens: a login prompt, registration and
// password-reset forms, "Sign in with Google", and a first-run onboarding
// walkthrough shown until the user presses "Get Started".
//
// Typical flow: start a background connectivity watcher, wait for the user
// to authenticate, fetch their profile and, if they have not seen it yet,
// walk them through the onboarding pages.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
