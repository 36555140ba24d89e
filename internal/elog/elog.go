/*************************************************************************
 * Copyright 2017 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

// Package elog is a small leveled, RFC5424-structured logger used by the
// forensic decoder to report the error taxonomy in spec §7 without ever
// raising a fatal exception out of the core.
package elog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/crewjam/rfc5424"
	"github.com/google/uuid"
)

type Level int

const (
	OFF Level = iota
	DEBUG
	INFO
	WARN
	ERROR
	CRITICAL
)

func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	case CRITICAL:
		return "CRITICAL"
	}
	return "OFF"
}

func (l Level) priority() rfc5424.Priority {
	switch l {
	case DEBUG:
		return rfc5424.Debug
	case INFO:
		return rfc5424.Info
	case WARN:
		return rfc5424.Warning
	case ERROR:
		return rfc5424.Error
	case CRITICAL:
		return rfc5424.Crit
	}
	return rfc5424.Info
}

func LevelFromString(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "OFF":
		return OFF, nil
	case "DEBUG":
		return DEBUG, nil
	case "INFO":
		return INFO, nil
	case "WARN", "WARNING":
		return WARN, nil
	case "ERROR":
		return ERROR, nil
	case "CRITICAL":
		return CRITICAL, nil
	}
	return OFF, ErrInvalidLevel
}

var (
	ErrNotOpen      = errors.New("logger is not open")
	ErrInvalidLevel = errors.New("invalid log level")
)

const appName = "icqforensic"

// Logger writes leveled, RFC5424-structured lines carrying a per-run
// correlation id so that a forensic run's log output can be grepped back
// together (teacher pattern: ingest/log.Logger).
type Logger struct {
	mtx    sync.Mutex
	wtrs   []io.WriteCloser
	lvl    Level
	hot    bool
	runID  string
	hostnm string
}

func New(wtr io.WriteCloser) *Logger {
	hostnm, _ := os.Hostname()
	return &Logger{
		wtrs:   []io.WriteCloser{wtr},
		lvl:    INFO,
		hot:    true,
		runID:  uuid.NewString(),
		hostnm: hostnm,
	}
}

func NewDiscard() *Logger {
	return New(discardCloser{})
}

func (l *Logger) SetLevel(lvl Level) {
	l.mtx.Lock()
	l.lvl = lvl
	l.mtx.Unlock()
}

func (l *Logger) SetLevelString(s string) error {
	lvl, err := LevelFromString(s)
	if err != nil {
		return err
	}
	l.SetLevel(lvl)
	return nil
}

func (l *Logger) Close() error {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	if !l.hot {
		return ErrNotOpen
	}
	l.hot = false
	var err error
	for _, w := range l.wtrs {
		if cerr := w.Close(); cerr != nil {
			err = cerr
		}
	}
	return err
}

func (l *Logger) Debug(msg string, sds ...rfc5424.SDParam) { l.output(DEBUG, msg, sds...) }
func (l *Logger) Info(msg string, sds ...rfc5424.SDParam)  { l.output(INFO, msg, sds...) }
func (l *Logger) Warn(msg string, sds ...rfc5424.SDParam)  { l.output(WARN, msg, sds...) }
func (l *Logger) Error(msg string, sds ...rfc5424.SDParam) { l.output(ERROR, msg, sds...) }

func (l *Logger) Debugf(f string, args ...interface{}) { l.output(DEBUG, fmt.Sprintf(f, args...)) }
func (l *Logger) Infof(f string, args ...interface{})  { l.output(INFO, fmt.Sprintf(f, args...)) }
func (l *Logger) Warnf(f string, args ...interface{})  { l.output(WARN, fmt.Sprintf(f, args...)) }
func (l *Logger) Errorf(f string, args ...interface{}) { l.output(ERROR, fmt.Sprintf(f, args...)) }

func (l *Logger) output(lvl Level, msg string, sds ...rfc5424.SDParam) {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	if !l.hot || l.lvl == OFF || lvl < l.lvl {
		return
	}
	sds = append([]rfc5424.SDParam{{Name: "run", Value: l.runID}}, sds...)
	m := rfc5424.Message{
		Priority:  lvl.priority(),
		Timestamp: time.Now(),
		Hostname:  l.hostnm,
		AppName:   appName,
		Message:   []byte(msg),
		StructuredData: []rfc5424.StructuredData{
			{ID: "icq@1", Parameters: sds},
		},
	}
	b, err := m.MarshalBinary()
	if err != nil {
		return
	}
	for _, w := range l.wtrs {
		io.WriteString(w, string(b))
		io.WriteString(w, "\n")
	}
}

type discardCloser struct{}

func (discardCloser) Write(p []byte) (int, error) { return len(p), nil }
func (discardCloser) Close() error                { return nil }
