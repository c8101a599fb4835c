// Package assets stores uploaded images and videos under the public tree
// using the filename conventions the static site resolves at render time.
// Sequence numbers are recomputed from directory contents on every call;
// concurrent ingests for the same owner can collide and the later write
// wins, mirroring the original site's accepted behavior.
package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"vibeandbuild/internal/config"
	"vibeandbuild/internal/content"
	"vibeandbuild/internal/services"
)

var projectIDPattern = regexp.MustCompile(`^project-(\d+)$`)

// Ingested describes a stored asset.
type Ingested struct {
	Path  string // public path the site references
	Name  string // bare filename on disk
	Index int    // zero-based position in the owner's images list
}

// Ingestor writes uploaded binaries into the public asset directories.
type Ingestor struct {
	publicDir string
}

// NewIngestor binds an ingestor to the public asset root.
func NewIngestor(publicDir string) *Ingestor {
	return &Ingestor{publicDir: publicDir}
}

// IngestProjectImage stores a project thumbnail. The first image for a week
// is {NN}.webp; once that exists, numbered variants {NN}-{n}.webp follow,
// with n one past the highest existing suffix.
func (in *Ingestor) IngestProjectImage(projectID string, data []byte) (Ingested, error) {
	match := projectIDPattern.FindStringSubmatch(strings.TrimSpace(projectID))
	if match == nil {
		return Ingested{}, services.Wrap(services.ErrValidation, "assets", "upload-image", fmt.Sprintf("invalid project id %q", projectID), nil)
	}
	week := match[1]
	if len(week) < 2 {
		week = "0" + week
	}

	dir := filepath.Join(in.publicDir, config.ThumbnailsSubdir)
	names, err := listDir(dir)
	if err != nil {
		return Ingested{}, err
	}

	filename := week + ".webp"
	if contains(names, filename) {
		counter := 1
		if max := maxSuffix(names, week); max > 0 {
			counter = max + 1
		}
		filename = fmt.Sprintf("%s-%d.webp", week, counter)
	}

	if err := writeAsset(dir, filename, data); err != nil {
		return Ingested{}, err
	}
	return Ingested{
		Path: path.Join("/", config.ThumbnailsSubdir, filename),
		Name: filename,
	}, nil
}

// IngestExperimentImage stores a gallery image as {NN}-{seq}.webp with the
// sequence zero-padded to two digits. The returned Index is seq-1, ready to
// append to the experiment's images list.
func (in *Ingestor) IngestExperimentImage(experimentID string, data []byte) (Ingested, error) {
	expNumber, err := experimentNumber(experimentID)
	if err != nil {
		return Ingested{}, err
	}

	dir := filepath.Join(in.publicDir, config.ExperimentImagesSubdir)
	names, err := listDir(dir)
	if err != nil {
		return Ingested{}, err
	}

	sequence := 1
	if max := maxSuffix(names, expNumber); max > 0 {
		sequence = max + 1
	}

	filename := fmt.Sprintf("%s-%02d.webp", expNumber, sequence)
	if err := writeAsset(dir, filename, data); err != nil {
		return Ingested{}, err
	}
	return Ingested{
		Path:  path.Join("/", config.ExperimentImagesSubdir, filename),
		Name:  filename,
		Index: sequence - 1,
	}, nil
}

// IngestExperimentVideo stores a video as {NN}.{ext}, keeping the uploaded
// extension (default mp4). One video per experiment; a re-upload replaces it.
func (in *Ingestor) IngestExperimentVideo(experimentID string, data []byte, uploadName string) (Ingested, error) {
	expNumber, err := experimentNumber(experimentID)
	if err != nil {
		return Ingested{}, err
	}

	ext := strings.TrimPrefix(filepath.Ext(uploadName), ".")
	if ext == "" {
		ext = "mp4"
	}

	dir := filepath.Join(in.publicDir, config.ExperimentVideosSubdir)
	filename := fmt.Sprintf("%s.%s", expNumber, ext)
	if err := writeAsset(dir, filename, data); err != nil {
		return Ingested{}, err
	}
	return Ingested{
		Path: path.Join("/", config.ExperimentVideosSubdir, filename),
		Name: filename,
	}, nil
}

// Delete removes an image by its public path. The path must resolve inside
// one of the image directories; anything else is rejected before touching
// the filesystem.
func (in *Ingestor) Delete(publicPath string) error {
	var subdir string
	switch {
	case strings.HasPrefix(publicPath, "/"+config.ThumbnailsSubdir+"/"):
		subdir = config.ThumbnailsSubdir
	case strings.HasPrefix(publicPath, "/"+config.ExperimentImagesSubdir+"/"):
		subdir = config.ExperimentImagesSubdir
	default:
		return services.Wrap(services.ErrValidation, "assets", "delete-image", fmt.Sprintf("path %q outside allowed roots", publicPath), nil)
	}

	// Base-name confinement: whatever the client sent, only the final
	// path element is looked up inside the allowed directory.
	filename := path.Base(publicPath)
	target := filepath.Join(in.publicDir, subdir, filename)
	if _, err := os.Stat(target); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return services.Wrap(services.ErrNotFound, "assets", "delete-image", fmt.Sprintf("%s does not exist", filename), nil)
		}
		return fmt.Errorf("stat %s: %w", filename, err)
	}
	if err := os.Remove(target); err != nil {
		return fmt.Errorf("delete %s: %w", filename, err)
	}
	return nil
}

func experimentNumber(experimentID string) (string, error) {
	trimmed := strings.TrimSpace(experimentID)
	number := strings.TrimPrefix(trimmed, content.ExperimentIDPrefix)
	if number == "" || number == trimmed {
		return "", services.Wrap(services.ErrValidation, "assets", "upload", fmt.Sprintf("invalid experiment id %q", experimentID), nil)
	}
	return number, nil
}

// maxSuffix returns the highest {owner}-{n}.webp suffix present, or 0.
func maxSuffix(names []string, owner string) int {
	max := 0
	for _, name := range names {
		if !strings.HasPrefix(name, owner+"-") || !strings.HasSuffix(name, ".webp") {
			continue
		}
		if n := content.ParseAssetSuffix(name); n > max {
			max = n
		}
	}
	return max
}

func contains(names []string, target string) bool {
	for _, name := range names {
		if name == target {
			return true
		}
	}
	return false
}

// listDir returns directory entries, treating a missing directory as empty.
func listDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

func writeAsset(dir, filename string, data []byte) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create asset directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, filename), data, 0o644); err != nil {
		return fmt.Errorf("write asset %s: %w", filename, err)
	}
	return nil
}
