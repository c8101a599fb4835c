package store

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"vibeandbuild/internal/content"
)

// ScanWeekThumbnails lists thumbnail filenames for a week following the
// {NN}.webp / {NN}-{n}.webp convention: base file first, then numbered
// variants in ascending suffix order. A missing directory degrades to an
// empty result; callers treat "no assets" as normal, not exceptional.
func ScanWeekThumbnails(dir string, week int) []string {
	if week <= 0 {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	padded := fmt.Sprintf("%02d", week)
	base := padded + ".webp"
	var names []string
	var haveBase bool
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		switch {
		case name == base:
			haveBase = true
		case strings.HasPrefix(name, padded+"-") && strings.HasSuffix(name, ".webp"):
			if content.ParseAssetSuffix(name) > 0 {
				names = append(names, name)
			}
		}
	}

	sort.Slice(names, func(i, j int) bool {
		return content.ParseAssetSuffix(names[i]) < content.ParseAssetSuffix(names[j])
	})
	if haveBase {
		names = append([]string{base}, names...)
	}
	return names
}
