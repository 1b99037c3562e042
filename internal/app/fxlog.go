package app

import (
	"strings"

	"go.uber.org/fx/fxevent"

	"github.com/Epistemic-Technology/scholar-mcp/internal/logger"
)

// eventLogger reports fx lifecycle events through logger.Logger, so nothing
// reaches stdout when serving stdio.
type eventLogger struct {
	log logger.Logger
}

func (l *eventLogger) LogEvent(event fxevent.Event) {
	switch e := event.(type) {
	case *fxevent.Provided:
		if e.Err != nil {
			l.log.Error("[FX] provide %s failed: %v", e.ConstructorName, e.Err)
			return
		}
		l.log.Debug("[FX] provided %s", strings.Join(e.OutputTypeNames, ", "))
	case *fxevent.Invoked:
		if e.Err != nil {
			l.log.Error("[FX] invoke %s failed: %v", e.FunctionName, e.Err)
		}
	case *fxevent.OnStartExecuted:
		if e.Err != nil {
			l.log.Error("[FX] OnStart hook of %s failed: %v", e.CallerName, e.Err)
		}
	case *fxevent.OnStopExecuted:
		if e.Err != nil {
			l.log.Error("[FX] OnStop hook of %s failed: %v", e.CallerName, e.Err)
		}
	case *fxevent.RollingBack:
		l.log.Error("[FX] start failed, rolling back: %v", e.StartErr)
	case *fxevent.Started:
		if e.Err != nil {
			l.log.Error("[FX] start failed: %v", e.Err)
			return
		}
		l.log.Info("[FX] started")
	case *fxevent.Stopping:
		l.log.Info("[FX] received %s, stopping", strings.ToUpper(e.Signal.String()))
	case *fxevent.Stopped:
		if e.Err != nil {
			l.log.Error("[FX] stop failed: %v", e.Err)
		}
	case *fxevent.LoggerInitialized:
		if e.Err != nil {
			l.log.Error("[FX] custom logger initialization failed: %v", e.Err)
		}
	}
}
