package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/Speshl/gorrc_tx/internal/settings"
)

const (
	globalFile = "global.json"
	modelFile  = "model_%02d.json"
)

// File keeps one json document per record under a directory.
type File struct {
	dir        string
	modelCount int
}

func NewFile(dir string, modelCount int) (*File, error) {
	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return nil, fmt.Errorf("failed creating store dir %s: %w", dir, err)
	}
	return &File{
		dir:        dir,
		modelCount: max(modelCount, 1),
	}, nil
}

// LoadGlobal returns true when no global record existed and defaults were written.
func (f *File) LoadGlobal() (settings.GlobalSettings, bool, error) {
	global := settings.DefaultGlobal()
	err := f.read(globalFile, &global)
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("no global settings found, writing defaults")
		return global, true, f.SaveGlobal(global)
	}
	if err != nil {
		return settings.DefaultGlobal(), true, err
	}
	return global, false, nil
}

func (f *File) SaveGlobal(global settings.GlobalSettings) error {
	return f.write(globalFile, global)
}

func (f *File) LoadModel(slot int) (settings.ModelSettings, error) {
	if err := checkSlot(slot, f.modelCount); err != nil {
		return settings.DefaultModel(), err
	}

	model := settings.DefaultModel()
	err := f.read(fmt.Sprintf(modelFile, slot), &model)
	if errors.Is(err, fs.ErrNotExist) {
		return settings.DefaultModel(), nil
	}
	if err != nil {
		return settings.DefaultModel(), err
	}
	return model, nil
}

func (f *File) SaveModel(slot int, model settings.ModelSettings) error {
	if err := checkSlot(slot, f.modelCount); err != nil {
		return err
	}
	return f.write(fmt.Sprintf(modelFile, slot), model)
}

func (f *File) ModelName(slot int) string {
	model, err := f.LoadModel(slot)
	if err != nil {
		log.Printf("warning: failed reading model %d name: %s\n", slot, err.Error())
	}
	return model.Name.String()
}

func (f *File) ModelCount() int {
	return f.modelCount
}

func (f *File) read(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(f.dir, name))
	if err != nil {
		return err
	}
	err = json.Unmarshal(data, v)
	if err != nil {
		return fmt.Errorf("failed decoding %s: %w", name, err)
	}
	return nil
}

func (f *File) write(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed encoding %s: %w", name, err)
	}

	path := filepath.Join(f.dir, name)
	tmp := path + ".tmp"
	err = os.WriteFile(tmp, data, 0o644)
	if err != nil {
		return fmt.Errorf("failed writing %s: %w", name, err)
	}
	err = os.Rename(tmp, path)
	if err != nil {
		return fmt.Errorf("failed replacing %s: %w", name, err)
	}
	return nil
}
