// Package notify formats user-facing CLI output.
//
// Message types are success (✔), error (✗), warning (⚠), info (ℹ), activity (►),
// generate (✚), skip (↷) and emoji-prefixed titles. [Printer] sends warnings and
// errors to a separate stream from everything else. [StageSeparatingWriter]
// inserts a blank line before each title after the first.
package notify
