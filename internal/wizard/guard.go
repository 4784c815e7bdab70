package wizard

import "sync"

// AnalysisGuard tracks which dossiers currently have a matching analysis in
// flight. While one runs, every other mutating call against the same dossier
// is refused. Different dossiers never block each other.
type AnalysisGuard struct {
	mu       sync.Mutex
	inFlight map[string]bool
}

// NewAnalysisGuard builds an empty guard.
func NewAnalysisGuard() *AnalysisGuard {
	return &AnalysisGuard{inFlight: make(map[string]bool)}
}

// Acquire marks an analysis as running for the dossier. It reports false when
// one is already in flight.
func (g *AnalysisGuard) Acquire(dossierID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.inFlight[dossierID] {
		return false
	}
	g.inFlight[dossierID] = true
	return true
}

// Release clears the in-flight mark for the dossier.
func (g *AnalysisGuard) Release(dossierID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.inFlight, dossierID)
}

// Busy reports whether an analysis is currently running for the dossier.
func (g *AnalysisGuard) Busy(dossierID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.inFlight[dossierID]
}
