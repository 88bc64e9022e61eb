package verdict

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"memory-limit-workload/internal/memory"
)

// ParseStatus accepts either the full status name or its short form, in any
// case.
func ParseStatus(value string) (Status, error) {
	for s := Accepted; s <= RuntimeError; s++ {
		if strings.EqualFold(value, s.String()) || strings.EqualFold(value, s.Short()) {
			return s, nil
		}
	}

	return Accepted, errors.Errorf("unknown status %q", value)
}

// Summary accumulates the verdicts of repeated rounds against the same limits.
type Summary struct {
	SuccessRounds int
	CurrentRounds int
	TotalTime     time.Duration
	TotalMemory   memory.Memory

	worst *Verdict
}

func (s *Summary) Add(v *Verdict) {
	s.CurrentRounds++
	s.TotalTime += v.Duration
	s.TotalMemory += v.Memory

	if v.Accepted() {
		s.SuccessRounds++
	}

	if s.worst == nil || v.IsSevereThan(s.worst) {
		s.worst = v
	}
}

// Worst returns the most severe verdict seen so far, or nil before any round
// has been added.
func (s *Summary) Worst() *Verdict { return s.worst }

func (s *Summary) AverageTime() time.Duration {
	if s.CurrentRounds == 0 {
		return 0
	}

	return s.TotalTime / time.Duration(s.CurrentRounds)
}

func (s *Summary) AverageMemory() memory.Memory {
	if s.CurrentRounds == 0 {
		return 0
	}

	return s.TotalMemory / memory.Memory(s.CurrentRounds)
}

func (s *Summary) MarshalZerologObject(e *zerolog.Event) {
	e.Int("rounds", s.CurrentRounds).
		Int("accepted", s.SuccessRounds).
		Dur("averageDuration", s.AverageTime()).
		Str("averageMemory", s.AverageMemory().String())

	if s.worst != nil {
		e.Str("worst", s.worst.Status.String())
	}
}
