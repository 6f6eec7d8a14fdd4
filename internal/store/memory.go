package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Speshl/gorrc_tx/internal/settings"
)

var ErrSlotOutOfRange = errors.New("model slot out of range")

// Memory keeps the records in memory only, used by the simulator and tests.
type Memory struct {
	lock       sync.RWMutex
	modelCount int
	global     *settings.GlobalSettings
	models     map[int]settings.ModelSettings

	GlobalSaves int
	ModelSaves  int
}

func NewMemory(modelCount int) *Memory {
	modelCount = max(modelCount, 1)
	return &Memory{
		modelCount: modelCount,
		models:     make(map[int]settings.ModelSettings, modelCount),
	}
}

func (m *Memory) LoadGlobal() (settings.GlobalSettings, bool, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	if m.global == nil {
		defaults := settings.DefaultGlobal()
		m.global = &defaults
		return defaults, true, nil
	}
	return *m.global, false, nil
}

func (m *Memory) SaveGlobal(global settings.GlobalSettings) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.global = &global
	m.GlobalSaves++
	return nil
}

func (m *Memory) LoadModel(slot int) (settings.ModelSettings, error) {
	if err := checkSlot(slot, m.modelCount); err != nil {
		return settings.DefaultModel(), err
	}

	m.lock.RLock()
	defer m.lock.RUnlock()
	model, ok := m.models[slot]
	if !ok {
		return settings.DefaultModel(), nil
	}
	return model, nil
}

func (m *Memory) SaveModel(slot int, model settings.ModelSettings) error {
	if err := checkSlot(slot, m.modelCount); err != nil {
		return err
	}

	m.lock.Lock()
	defer m.lock.Unlock()
	m.models[slot] = model
	m.ModelSaves++
	return nil
}

func (m *Memory) ModelName(slot int) string {
	model, _ := m.LoadModel(slot)
	return model.Name.String()
}

func (m *Memory) ModelCount() int {
	return m.modelCount
}

// Saved returns the stored record of a slot and whether one was ever written.
func (m *Memory) Saved(slot int) (settings.ModelSettings, bool) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	model, ok := m.models[slot]
	return model, ok
}

func checkSlot(slot, count int) error {
	if slot < 0 || slot >= count {
		return fmt.Errorf("slot %d of %d: %w", slot, count, ErrSlotOutOfRange)
	}
	return nil
}
