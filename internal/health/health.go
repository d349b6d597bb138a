package health

import (
	"context"
	"time"

	"comprobantes/internal/cache"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
	StatusDisabled  = "disabled"
)

type HealthChecker struct {
	db      *pgxpool.Pool
	records int
	started time.Time
}

type HealthStatus struct {
	Status   string          `json:"status"`
	Records  int             `json:"records"`
	Database ComponentHealth `json:"database"`
	Cache    ComponentHealth `json:"cache"`
}

type ComponentHealth struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"response_time_ms"`
}

type DetailedStatus struct {
	HealthStatus
	Uptime        string  `json:"uptime"`
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	DiskPercent   float64 `json:"disk_percent"`
}

// NewHealthChecker builds a checker. db is nil when records do not come from
// Postgres.
func NewHealthChecker(db *pgxpool.Pool, records int) *HealthChecker {
	return &HealthChecker{db: db, records: records, started: time.Now()}
}

func (h *HealthChecker) CheckBasic() HealthStatus {
	dbHealth := h.checkDatabase()
	cacheHealth := h.checkCache()

	status := StatusHealthy
	if dbHealth.Status == StatusUnhealthy || cacheHealth.Status == StatusUnhealthy {
		status = StatusUnhealthy
	}

	return HealthStatus{
		Status:   status,
		Records:  h.records,
		Database: dbHealth,
		Cache:    cacheHealth,
	}
}

// CheckDetailed adds host resource usage to the basic status
func (h *HealthChecker) CheckDetailed() DetailedStatus {
	d := DetailedStatus{
		HealthStatus: h.CheckBasic(),
		Uptime:       time.Since(h.started).Round(time.Second).String(),
	}

	if percents, err := cpu.Percent(200*time.Millisecond, false); err == nil && len(percents) > 0 {
		d.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		d.MemoryPercent = vm.UsedPercent
	}
	if du, err := disk.Usage("/"); err == nil {
		d.DiskPercent = du.UsedPercent
	}
	return d
}

func (h *HealthChecker) checkDatabase() ComponentHealth {
	if h.db == nil {
		return ComponentHealth{Status: StatusDisabled}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	start := time.Now()
	err := h.db.Ping(ctx)
	return result(err, time.Since(start))
}

func (h *HealthChecker) checkCache() ComponentHealth {
	if !cache.Enabled() {
		return ComponentHealth{Status: StatusDisabled}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	start := time.Now()
	err := cache.Ping(ctx)
	return result(err, time.Since(start))
}

func result(err error, elapsed time.Duration) ComponentHealth {
	status := StatusHealthy
	if err != nil {
		status = StatusUnhealthy
	}
	return ComponentHealth{Status: status, ResponseTime: elapsed.Milliseconds()}
}
