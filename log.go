package triegraph

import (
	"io"

	"github.com/sirupsen/logrus"
)

// logger is the package-wide build-orchestration logger: BuildTrieGraphAuto
// reports the cc_starts/non_cc_starts location counts, the hit count, and
// the elapsed build time through it.
// Library code below the orchestration layer (the builders, TrieData,
// Presence) never logs. Defaults to a discarding logger so importing this
// package doesn't print anything until a caller opts in via SetLogger.
var logger logrus.FieldLogger = newDiscardLogger()

func newDiscardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// SetLogger installs the FieldLogger build orchestration reports through,
// letting a CLI or service thread its own logger (with its own level and
// output) into the library instead of getting library-owned log lines.
func SetLogger(l logrus.FieldLogger) {
	if l == nil {
		l = newDiscardLogger()
	}
	logger = l
}
