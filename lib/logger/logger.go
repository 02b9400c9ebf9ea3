package logger

import (
	"go.uber.org/zap"
)

var Log *zap.Logger

// Init builds the process-wide production logger.
func Init() *zap.Logger {
	l, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	Log = l
	return l
}
