package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSchedulerConfig(t *testing.T) {
	config := DefaultSchedulerConfig()

	assert.True(t, config.Enabled)
	assert.Len(t, config.TaskConfigs, 1)

	rescan := config.TaskConfigs[TaskIDPDFRescan]
	assert.True(t, rescan.Enabled)
	assert.Equal(t, time.Hour, rescan.Interval)
}

func TestRescanSchedulerConfig_Disabled(t *testing.T) {
	config := RescanSchedulerConfig(0)

	assert.False(t, config.Enabled)
	assert.False(t, config.GetTaskConfig(TaskIDPDFRescan).Enabled)
}

func TestSchedulerConfig_GetTaskConfig(t *testing.T) {
	config := RescanSchedulerConfig(15 * time.Minute)

	rescan := config.GetTaskConfig(TaskIDPDFRescan)
	assert.True(t, rescan.Enabled)
	assert.Equal(t, 15*time.Minute, rescan.Interval)

	unknownCfg := config.GetTaskConfig("unknown-task")
	assert.False(t, unknownCfg.Enabled)
	assert.Equal(t, time.Duration(0), unknownCfg.Interval)
}

func TestSchedulerConfig_GetTaskConfig_NilMap(t *testing.T) {
	config := SchedulerConfig{
		Enabled:     true,
		TaskConfigs: nil,
	}

	cfg := config.GetTaskConfig("any-task")
	assert.False(t, cfg.Enabled)
	assert.Equal(t, time.Duration(0), cfg.Interval)
}

func TestTaskResult_Failed(t *testing.T) {
	now := time.Now()
	result := TaskResult{
		TaskID:    TaskIDPDFRescan,
		StartedAt: now.Add(-5 * time.Minute),
		EndedAt:   now,
		Success:   false,
		Error:     "root path error",
	}

	assert.False(t, result.Success)
	assert.Equal(t, "root path error", result.Error)
}
