package repository

import (
	"strings"
	"time"

	"memory-limit-workload/internal/verdict"
	"memory-limit-workload/internal/workload"
)

type Execution struct {
	ID string `gorm:"primarykey"`

	Mode   string
	Status string

	PeakMemoryKb  int64
	MemoryLimitKb int64

	RuntimeMs   int64
	TimeLimitMs int64

	SentinelSeen bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewExecution flattens a judged run into the row stored for it.
func NewExecution(mode string, result *verdict.Verdict, limits verdict.Limits) *Execution {
	return &Execution{
		ID:            result.ID,
		Mode:          mode,
		Status:        result.Status.String(),
		PeakMemoryKb:  result.Memory.Kilobytes(),
		MemoryLimitKb: limits.Memory.Kilobytes(),
		RuntimeMs:     result.Duration.Milliseconds(),
		TimeLimitMs:   limits.Time.Milliseconds(),
		SentinelSeen:  strings.TrimRight(result.Output, " \t\r\n") == workload.Sentinel,
	}
}

func (c Client) InsertExecution(execution *Execution) error {
	result := c.DB.Create(execution)
	return result.Error
}

func (c Client) GetExecution(id string) (*Execution, error) {
	var execution Execution

	if result := c.DB.First(&execution, "id = ?", id); result.Error != nil {
		return nil, result.Error
	}

	return &execution, nil
}
