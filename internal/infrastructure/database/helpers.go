package database

import (
	"errors"
	"time"
)

// PoolStats is a snapshot of the pool counters exposed on /health.
type PoolStats struct {
	TotalConns      int32         `json:"total_conns"`
	IdleConns       int32         `json:"idle_conns"`
	AcquiredConns   int32         `json:"acquired_conns"`
	MaxConns        int32         `json:"max_conns"`
	AcquireCount    int64         `json:"acquire_count"`
	AvgAcquireDelay time.Duration `json:"avg_acquire_delay"`
}

func (db *PostgresDB) Stats() (*PoolStats, error) {
	if db.Pool == nil {
		return nil, errors.New("database pool is not initialized")
	}

	raw := db.Pool.Stat()
	stats := &PoolStats{
		TotalConns:    raw.TotalConns(),
		IdleConns:     raw.IdleConns(),
		AcquiredConns: raw.AcquiredConns(),
		MaxConns:      raw.MaxConns(),
		AcquireCount:  raw.AcquireCount(),
	}
	if stats.AcquireCount > 0 {
		stats.AvgAcquireDelay = raw.AcquireDuration() / time.Duration(stats.AcquireCount)
	}
	return stats, nil
}
