package main

import (
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/progress"
)

// byteProgress renders a single go-pretty tracker measured in bytes.
type byteProgress struct {
	writer  progress.Writer
	tracker *progress.Tracker
	done    chan struct{}
}

func newByteProgress(out io.Writer, message string, total int64) *byteProgress {
	pw := progress.NewWriter()
	pw.SetOutputWriter(out)
	pw.SetAutoStop(false)
	pw.SetTrackerLength(30)
	pw.SetUpdateFrequency(100 * time.Millisecond)
	pw.SetStyle(progress.StyleDefault)
	pw.Style().Visibility.ETA = true
	pw.Style().Visibility.Value = true

	tracker := &progress.Tracker{
		Message: message,
		Total:   total,
		Units:   progress.UnitsBytes,
	}
	pw.AppendTracker(tracker)

	done := make(chan struct{})
	go func() {
		defer close(done)
		pw.Render()
	}()

	return &byteProgress{writer: pw, tracker: tracker, done: done}
}

func (p *byteProgress) Update(done int64) {
	p.tracker.SetValue(done)
}

// Finish marks the tracker complete and returns once the final frame is
// drawn. Stop is repeated because a render loop that has not started yet has
// nothing to cancel.
func (p *byteProgress) Finish(failed bool) {
	if failed {
		p.tracker.MarkAsErrored()
	} else {
		p.tracker.MarkAsDone()
	}
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	for {
		p.writer.Stop()
		select {
		case <-p.done:
			return
		case <-ticker.C:
		}
	}
}
