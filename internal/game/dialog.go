package game

import (
	"errors"

	"github.com/ncruces/zenity"
)

// Picker asks the user for a track path. An empty path means the user cancelled.
type Picker func() (string, error)

// OpenFileDialog is the native file picker.
func OpenFileDialog() (string, error) {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Audio File"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: []string{"*.wav", "*.mp3", "*.flac"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", nil
		}
		return "", err
	}
	return filename, nil
}
