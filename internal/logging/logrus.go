package logging

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// LogrusLogger adapts a logrus.FieldLogger to Logger.
type LogrusLogger struct {
	l logrus.FieldLogger
}

func NewLogrusLogger(l logrus.FieldLogger) *LogrusLogger {
	return &LogrusLogger{l: l}
}

func (s *LogrusLogger) Debug(ctx context.Context, msg string, args ...any) {
	s.entry(ctx, args).Debug(msg)
}

func (s *LogrusLogger) Info(ctx context.Context, msg string, args ...any) {
	s.entry(ctx, args).Info(msg)
}

func (s *LogrusLogger) Warn(ctx context.Context, msg string, args ...any) {
	s.entry(ctx, args).Warn(msg)
}

func (s *LogrusLogger) Error(ctx context.Context, msg string, args ...any) {
	s.entry(ctx, args).Error(msg)
}

func (s *LogrusLogger) With(args ...any) Logger {
	return &LogrusLogger{l: s.l.WithFields(toFields(args))}
}

func (s *LogrusLogger) entry(ctx context.Context, args []any) *logrus.Entry {
	return s.l.WithFields(toFields(args)).WithContext(ctx)
}

// toFields pairs up slog-style key-value args. A trailing key without a value
// is kept under "!BADKEY", as slog does.
func toFields(args []any) logrus.Fields {
	fields := make(logrus.Fields, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		if i+1 >= len(args) {
			fields["!BADKEY"] = args[i]
			break
		}
		fields[fmt.Sprint(args[i])] = args[i+1]
	}
	return fields
}
