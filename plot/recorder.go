package plot

import "sync"

// Call is one recorded DrawScatterPlot.
type Call struct {
	Title  string
	XLabel string
	YLabel string
	Xs     []float64
	Ys     []float64
}

// Recorder keeps the plots in memory instead of drawing them.
type Recorder struct {
	mu    sync.Mutex
	calls []Call
}

func (r *Recorder) DrawScatterPlot(title, xLabel, yLabel string, xs, ys []float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, Call{
		Title:  title,
		XLabel: xLabel,
		YLabel: yLabel,
		Xs:     append([]float64(nil), xs...),
		Ys:     append([]float64(nil), ys...),
	})
}

// Calls returns a copy of the calls so far.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}
