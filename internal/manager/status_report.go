package manager

import (
	"time"

	"tourismd/pkg/types"
)

// Status reports the manager state. It never triggers a load and never fails.
func (m *Manager) Status() types.ModelInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()
	info := types.ModelInfo{
		Device:             m.device.String(),
		State:              string(StateUninitialized),
		PrimaryModel:       m.primaryModel,
		FallbackModel:      m.fallbackModel,
		FineTunedModelPath: m.fineTunedModelPath,
		LastError:          m.lastErr,
		LoadsTotal:         m.loads,
		FallbacksTotal:     m.fallbacks,
		UptimeSeconds:      int64(time.Since(m.startTime) / time.Second),
	}
	if m.loading {
		info.State = string(StateLoading)
	}
	if cur := m.cur; cur != nil {
		v := string(cur.variant)
		info.ModelType = &v
		info.ModelName = cur.modelName
		info.ModelLoaded = true
		info.State = string(StateReady)
		info.FallbackActive = cur.fallback
		info.LoadedAtUnix = cur.loadedAt.Unix()
		info.Inflight = cur.inflight.Load()
	}
	return info
}
