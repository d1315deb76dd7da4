// Package schedule triggers recurring backups.
package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"savekeeper/internal/logging"
)

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// Validate reports whether spec is a standard five-field cron line or a descriptor
// such as "@hourly" or "@every 30m".
func Validate(spec string) error {
	if _, err := parser.Parse(spec); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	return nil
}

// Watch calls trigger on every tick of spec until ctx is done. Triggers that are
// still running when ctx ends are waited for.
func Watch(ctx context.Context, spec string, logger logging.Logger, trigger func()) error {
	sched, err := parser.Parse(spec)
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", spec, err)
	}

	c := cron.New(cron.WithParser(parser), cron.WithChain(cron.Recover(cronLogger{logger})))
	c.Schedule(sched, cron.FuncJob(trigger))
	c.Start()
	logger.Infof("Watching on schedule %q, next run at %s", spec, sched.Next(time.Now()).Format("2006-01-02 15:04:05"))

	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}

// cronLogger adapts Logger to cron.Logger.
type cronLogger struct {
	logger logging.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Verbosef("cron: %s %v", msg, keysAndValues)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Warnf("cron: %s: %v %v", msg, err, keysAndValues)
}
