package diagnostics

import "fmt"

// Findings accumulates the gaps and risks discovered during a single run, in
// discovery order. Each run owns its own Findings.
type Findings struct {
	gaps  []string
	risks []string
}

// NewFindings returns an empty collector.
func NewFindings() *Findings {
	return &Findings{gaps: []string{}, risks: []string{}}
}

// AddGap records missing data.
func (f *Findings) AddGap(gap string) {
	f.gaps = append(f.gaps, gap)
}

// AddRisk records a ratio that crossed a danger threshold.
func (f *Findings) AddRisk(format string, args ...interface{}) {
	f.risks = append(f.risks, fmt.Sprintf(format, args...))
}

// Gaps returns a copy of the recorded gaps.
func (f *Findings) Gaps() []string {
	return append([]string{}, f.gaps...)
}

// Risks returns a copy of the recorded risks.
func (f *Findings) Risks() []string {
	return append([]string{}, f.risks...)
}
