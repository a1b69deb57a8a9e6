package xfsx

/*
logging.go wires operational logging (spec §10.2): malformed-input
warnings during skip_zero/block_size recovery, auto-detection candidate
rejection, and edit-operation application are logged through a
package-level logrus.FieldLogger rather than the debug tracer
(trc_on.go/trc_off.go), which stays reserved for the build-tag-gated
structural trace.
*/

import "github.com/sirupsen/logrus"

// Log is the package-level logger. cmd/xfsx replaces it at startup with
// one configured for --log-format; library callers embedding this
// package may do the same.
var Log logrus.FieldLogger = logrus.StandardLogger()

// SetLogger replaces the package-level logger.
func SetLogger(l logrus.FieldLogger) { Log = l }

func logRecovery(kind, detail string, offset int64) {
	Log.WithFields(logrus.Fields{
		"kind":   kind,
		"offset": offset,
	}).Warn(detail)
}

func logDetectReject(name string, reason string) {
	Log.WithFields(logrus.Fields{
		"candidate": name,
	}).Debug("detector candidate rejected: " + reason)
}

func logEditApplied(op, path string) {
	Log.WithFields(logrus.Fields{
		"op":   op,
		"path": path,
	}).Info("edit operation applied")
}
