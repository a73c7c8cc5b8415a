package rmmv

import (
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Save contents keys owned by the preview.
const (
	SaveKey = "minimap"
	FadeKey = "followersFade"
)

// Save is the part of a save file the preview reads and writes.
type Save struct {
	Minimap []byte
	// FollowersFade is nil for saves written without the fade switch.
	FollowersFade *bool
}

// ErrNoMinimap is returned when a save has no minimap entry.
var ErrNoMinimap = errors.New("save has no minimap state")

// PutMinimap stores state under SaveKey in save, keeping every other key.
// An empty save starts a new object.
func PutMinimap(save, state []byte) ([]byte, error) {
	if len(save) == 0 {
		save = []byte("{}")
	}
	if !gjson.ValidBytes(state) {
		return nil, errors.New("minimap state is not valid JSON")
	}
	out, err := sjson.SetRawBytes(save, SaveKey, state)
	if err != nil {
		return nil, fmt.Errorf("write minimap state: %w", err)
	}
	return out, nil
}

// Minimap returns the raw minimap state of a save.
func Minimap(save []byte) ([]byte, error) {
	r := gjson.GetBytes(save, SaveKey)
	if !r.Exists() || r.Type == gjson.Null {
		return nil, ErrNoMinimap
	}
	return []byte(r.Raw), nil
}

// PutFollowersFade stores the followers fade switch under FadeKey in save.
func PutFollowersFade(save []byte, enabled bool) ([]byte, error) {
	if len(save) == 0 {
		save = []byte("{}")
	}
	out, err := sjson.SetBytes(save, FadeKey, enabled)
	if err != nil {
		return nil, fmt.Errorf("write followers fade: %w", err)
	}
	return out, nil
}

// FollowersFade returns the followers fade switch of a save. ok is false when
// the save has none.
func FollowersFade(save []byte) (enabled, ok bool) {
	r := gjson.GetBytes(save, FadeKey)
	if !r.IsBool() {
		return false, false
	}
	return r.Bool(), true
}

// WriteSave merges s into the save file at path, creating it when absent.
func WriteSave(path string, s Save) error {
	existing, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("read save %s: %w", path, err)
	}
	out, err := PutMinimap(existing, s.Minimap)
	if err != nil {
		return err
	}
	if s.FollowersFade != nil {
		if out, err = PutFollowersFade(out, *s.FollowersFade); err != nil {
			return err
		}
	}
	return os.WriteFile(path, out, 0o644)
}

// ReadSave returns the preview's part of the save file at path.
func ReadSave(path string) (Save, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Save{}, fmt.Errorf("read save %s: %w", path, err)
	}
	state, err := Minimap(b)
	if err != nil {
		return Save{}, err
	}
	s := Save{Minimap: state}
	if enabled, ok := FollowersFade(b); ok {
		s.FollowersFade = &enabled
	}
	return s, nil
}
