package outfit

import "time"

// TraceEvent is one staged step of a generation request.
type TraceEvent struct {
	Stage  string
	Detail string
	At     time.Time
}

// Trace is the request-scoped accumulator handed through the generation call
// chain. It replaces any process-global debug state: each request owns its
// own trace and the metrics sink gets it at the end.
type Trace struct {
	Strategy    string
	Events      []TraceEvent
	FailedRules []string
}

func (t *Trace) Add(stage, detail string) {
	if t == nil {
		return
	}
	t.Events = append(t.Events, TraceEvent{Stage: stage, Detail: detail, At: time.Now()})
}

func (t *Trace) Fail(rule string) {
	if t == nil {
		return
	}
	t.FailedRules = append(t.FailedRules, rule)
}
