package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// InitLogger configures logrus for the whole process. When LOG_FILE is set
// and writable the log goes there, otherwise to stdout.
func InitLogger() {
	logrus.SetOutput(os.Stdout)

	if logFilePath := os.Getenv("LOG_FILE"); logFilePath != "" {
		logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			logrus.Warnf("Failed to open log file (%s), using stdout: %v", logFilePath, err)
		} else {
			logrus.SetOutput(logFile)
		}
	}

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetLevel(logrus.InfoLevel)

	logrus.Info("Logger initialized")
}
