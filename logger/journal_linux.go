// SPDX-License-Identifier: GPL-3.0-or-later

//go:build linux

package logger

import "github.com/coreos/go-systemd/v22/journal"

// isStderrConnectedToJournal reports whether stderr is attached to the
// systemd journal stream. Journal output gets neither colors nor an own
// time attribute.
func isStderrConnectedToJournal() bool {
	ok, _ := journal.StderrIsJournalStream()
	return ok
}
