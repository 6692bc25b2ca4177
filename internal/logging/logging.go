// Package logging provides the structured logger interface shared by every
// component that can observe a runtime anomaly: an unimplemented opcode, a
// dropped DMA request, a save-file I/O failure, and so on.
package logging

import "github.com/sirupsen/logrus"

// Logger is the structured logging interface implemented by every backend.
// Components depend on this interface, never on logrus directly, so tests
// and headless tooling can swap in NewNull without pulling in a concrete
// backend.
type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

type logrusLogger struct {
	entry *logrus.Entry
}

// New returns a Logger backed by logrus, tagged with the given component
// name so multi-component log output can be filtered.
func New(component string) Logger {
	return &logrusLogger{entry: logrus.WithField("component", component)}
}

func (l *logrusLogger) Infof(format string, args ...interface{})  { l.entry.Infof(format, args...) }
func (l *logrusLogger) Warnf(format string, args ...interface{})  { l.entry.Warnf(format, args...) }
func (l *logrusLogger) Errorf(format string, args ...interface{}) { l.entry.Errorf(format, args...) }
func (l *logrusLogger) Debugf(format string, args ...interface{}) { l.entry.Debugf(format, args...) }

type nullLogger struct{}

// NewNull returns a Logger that discards everything, matching the
// teacher's pkg/log.NewNullLogger for headless and benchmark use.
func NewNull() Logger { return nullLogger{} }

func (nullLogger) Infof(string, ...interface{})  {}
func (nullLogger) Warnf(string, ...interface{})  {}
func (nullLogger) Errorf(string, ...interface{}) {}
func (nullLogger) Debugf(string, ...interface{}) {}
