package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/aristath/quartermaster/internal/di"
	"github.com/aristath/quartermaster/internal/scheduler"
)

// SystemHandlers serves system monitoring endpoints and manual job
// triggers.
type SystemHandlers struct {
	log       zerolog.Logger
	dataDir   string
	container *di.Container
	jobs      *di.JobInstances
	sched     *scheduler.Scheduler
	startedAt time.Time
}

// NewSystemHandlers creates the system handlers
func NewSystemHandlers(
	log zerolog.Logger,
	dataDir string,
	container *di.Container,
	jobs *di.JobInstances,
	sched *scheduler.Scheduler,
	startedAt time.Time,
) *SystemHandlers {
	return &SystemHandlers{
		log:       log.With().Str("handler", "system").Logger(),
		dataDir:   dataDir,
		container: container,
		jobs:      jobs,
		sched:     sched,
		startedAt: startedAt,
	}
}

// HandleSystemStatus handles GET /api/system/status
func (h *SystemHandlers) HandleSystemStatus(w http.ResponseWriter, r *http.Request) {
	cpuPercent, memPercent := h.getSystemStats()

	catalogStatus := map[string]interface{}{"loaded": false}
	if snapshot, err := h.container.CatalogRepo.Current(); err == nil {
		catalogStatus = map[string]interface{}{
			"loaded":    true,
			"version":   snapshot.Version(),
			"loaded_at": snapshot.LoadedAt(),
			"fits":      snapshot.FitCount(),
		}
	}

	h.writeJSON(w, map[string]interface{}{
		"status":      "ok",
		"uptime":      time.Since(h.startedAt).Round(time.Second).String(),
		"data_dir":    h.dataDir,
		"cpu_percent": cpuPercent,
		"ram_percent": memPercent,
		"catalog":     catalogStatus,
		"missions":    h.container.MissionsRepo.Activities(),
	})
}

// HandleJobsStatus handles GET /api/system/jobs
func (h *SystemHandlers) HandleJobsStatus(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, map[string]interface{}{
		"jobs": []string{
			h.jobs.CatalogReload.Name(),
			h.jobs.PriceStaleness.Name(),
		},
	})
}

// HandleTriggerCatalogReload handles POST /api/system/jobs/catalog-reload
func (h *SystemHandlers) HandleTriggerCatalogReload(w http.ResponseWriter, r *http.Request) {
	h.triggerJob(w, h.jobs.CatalogReload)
}

// HandleTriggerPriceStaleness handles POST /api/system/jobs/price-staleness
func (h *SystemHandlers) HandleTriggerPriceStaleness(w http.ResponseWriter, r *http.Request) {
	h.triggerJob(w, h.jobs.PriceStaleness)
}

func (h *SystemHandlers) triggerJob(w http.ResponseWriter, job scheduler.Job) {
	h.log.Info().Str("job", job.Name()).Msg("Manual job trigger")

	if err := h.sched.RunNow(job); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		if encErr := json.NewEncoder(w).Encode(map[string]string{
			"status": "error",
			"job":    job.Name(),
			"error":  err.Error(),
		}); encErr != nil {
			h.log.Error().Err(encErr).Msg("Failed to encode JSON response")
		}
		return
	}

	h.writeJSON(w, map[string]string{
		"status": "ok",
		"job":    job.Name(),
	})
}

// getSystemStats returns CPU and RAM usage percentages. The CPU sample
// window is short so status calls stay fast.
func (h *SystemHandlers) getSystemStats() (float64, float64) {
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return 0, 0
	}

	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}

	return cpuAvg, memStat.UsedPercent
}

// writeJSON writes a JSON response
func (h *SystemHandlers) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
