package dna

import (
	"go.uber.org/zap"

	"github.com/kismeter/blendfile/errors"
)

// ErrorPolicy directs how a single field read reacts to a schema mismatch:
// a field the file's DNA never declares, a shape conflict, or a primitive
// the destination cannot take.
type ErrorPolicy uint8

const (
	// Fail aborts the whole conversion.
	Fail ErrorPolicy = iota
	// Warn logs the mismatch and leaves the destination at its default.
	Warn
	// Ignore silently leaves the destination at its default.
	Ignore
)

var policyNames = [...]string{
	Fail:   "fail",
	Warn:   "warn",
	Ignore: "ignore",
}

func (p ErrorPolicy) String() string {
	if int(p) < len(policyNames) {
		return policyNames[p]
	}
	return "unknown"
}

// apply settles an error under the field's policy. Corruption errors pass
// through untouched no matter the policy; schema mismatches are fatal only
// under Fail. Warn logs through the package logger before swallowing.
func (p ErrorPolicy) apply(err error, structure, field string) error {
	if err == nil {
		return nil
	}
	if errors.IsFatal(err) {
		return err
	}
	switch p {
	case Fail:
		return err
	case Warn:
		Logger().Warn("field read failed",
			zap.String("structure", structure),
			zap.String("field", field),
			zap.Error(err))
	}
	return nil
}
