package util

import (
	"log"
)

// Logger is the minimal interface emitters and the CLI use to trace
// classification and emission decisions without depending on *log.Logger
// directly.
type Logger interface {
	Debugf(format string, args ...interface{})
}

// DontLog discards every message. It is config.Default()'s logger and the
// one NewFromCommand keeps when -v was not given.
type DontLog struct{}

func (DontLog) Debugf(string, ...interface{}) {
}

// StdLog forwards to the standard log package.
type StdLog struct{}

func (StdLog) Debugf(fmt string, args ...interface{}) {
	log.Printf(fmt, args...)
}

// VerbosityLevel is the -v/-vv/-vvv count parsed off the CLI, carried on
// config.EmitConfig to choose between StdLog and DontLog.
type VerbosityLevel uint8
