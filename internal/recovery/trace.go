package recovery

import "fmt"

// tracer holds an optional trace listener, mirroring
// internal/ictiobus/parse/lr.go's RegisterTraceListener/notifyTrace
// pattern: the listener is a plain func(string), and trace lines are only
// formatted if a listener is actually registered, so that tracing costs
// nothing when nobody is listening.
type tracer struct {
	listener func(string)
}

// RegisterTraceListener installs fn to receive trace lines. Only CPCT+'s
// merges emit trace lines; search expansion, replay and the Corchuelo
// recoverer emit none. Passing nil disables tracing.
func (t *tracer) RegisterTraceListener(fn func(string)) {
	t.listener = fn
}

func (t *tracer) notifyTraceFn(fn func() string) {
	if t.listener != nil {
		t.listener(fn())
	}
}

func (t *tracer) notifyTrace(format string, args ...interface{}) {
	t.notifyTraceFn(func() string { return fmt.Sprintf(format, args...) })
}
