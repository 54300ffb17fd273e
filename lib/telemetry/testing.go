package telemetry

import (
	"strings"
	"sync"
)

type ReportKind int

const (
	KindBroken ReportKind = iota
	KindWarning
	KindDebug
	KindCount
)

type Report struct {
	Kind   ReportKind
	Id     string
	Params []any
	Count  int64
}

// TestAPI is an API that records every report so tests can assert on them.
type TestAPI struct {
	lock    sync.Mutex
	reports []Report
}

func NewTestAPI() *TestAPI {
	return &TestAPI{}
}

func (t *TestAPI) record(r Report) {
	t.lock.Lock()
	defer t.lock.Unlock()
	t.reports = append(t.reports, r)
}

func (t *TestAPI) ReportBroken(id string, params ...any) {
	t.record(Report{Kind: KindBroken, Id: id, Params: params})
}

func (t *TestAPI) ReportWarning(id string, params ...any) {
	t.record(Report{Kind: KindWarning, Id: id, Params: params})
}

func (t *TestAPI) ReportDebug(msg string, params ...any) {
	t.record(Report{Kind: KindDebug, Id: msg, Params: params})
}

func (t *TestAPI) ReportCount(id string, count int64) {
	t.record(Report{Kind: KindCount, Id: id, Count: count})
}

// Reports returns the recorded reports of the given kind whose id contains `contains`.
func (t *TestAPI) Reports(kind ReportKind, contains string) []Report {
	t.lock.Lock()
	defer t.lock.Unlock()

	var out []Report
	for _, r := range t.reports {
		if r.Kind == kind && strings.Contains(r.Id, contains) {
			out = append(out, r)
		}
	}
	return out
}

// Count returns the last count reported under an id containing `contains`, -1 if there is none.
func (t *TestAPI) Count(contains string) int64 {
	counts := t.Reports(KindCount, contains)
	if len(counts) == 0 {
		return -1
	}
	return counts[len(counts)-1].Count
}
