package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/mgpai22/podmeta/internal/metadata"
	"github.com/mgpai22/podmeta/internal/subtitle"
	"github.com/mgpai22/podmeta/internal/transcript"
)

// manifest serialization
type ManifestFormat string

const (
	ManifestJSON ManifestFormat = "json"
	ManifestYAML ManifestFormat = "yaml"
)

// Manifest describes one run and the files it produced.
type Manifest struct {
	RunID       string    `json:"run_id" yaml:"run_id"`
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
	Source      string    `json:"source" yaml:"source"`
	Format      string    `json:"format" yaml:"format"`
	Segments    int       `json:"segments" yaml:"segments"`
	DurationMS  int64     `json:"duration_ms" yaml:"duration_ms"`
	Provider    string    `json:"provider,omitempty" yaml:"provider,omitempty"`
	Model       string    `json:"model,omitempty" yaml:"model,omitempty"`
	Files       []string  `json:"files" yaml:"files"`
	Warnings    []string  `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// NewManifest starts a manifest for tr with a fresh run ID.
func NewManifest(tr *transcript.Transcript) *Manifest {
	return &Manifest{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC().Truncate(time.Second),
		Source:      tr.FilePath,
		Format:      tr.Format.String(),
		Segments:    len(tr.Segments),
		DurationMS:  tr.DurationMS(),
		Files:       []string{},
	}
}

// Writer places every output for one source next to each other as
// <Dir>/<BaseName>.<suffix>.
type Writer struct {
	Dir            string
	BaseName       string
	ManifestFormat ManifestFormat
}

// NewWriter derives the base name from source; an empty dir means the
// source's own directory.
func NewWriter(dir, source string, format ManifestFormat) *Writer {
	if dir == "" {
		dir = filepath.Dir(source)
	}
	base := filepath.Base(source)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if format == "" {
		format = ManifestJSON
	}
	return &Writer{Dir: dir, BaseName: base, ManifestFormat: format}
}

// Path returns the output path for suffix, e.g. "titles.txt".
func (w *Writer) Path(suffix string) string {
	return filepath.Join(w.Dir, w.BaseName+"."+suffix)
}

func (w *Writer) WriteTitles(titles []string) (string, error) {
	var sb strings.Builder
	for i, title := range titles {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, title)
	}
	return w.write("titles.txt", sb.String())
}

func (w *Writer) WriteDescription(description string) (string, error) {
	return w.write("description.md", strings.TrimSpace(description)+"\n")
}

func (w *Writer) WriteChapters(chapters []metadata.Chapter) (string, error) {
	return w.write("chapters.txt", metadata.FormatYouTubeChapters(chapters)+"\n")
}

// WriteSubtitles writes encoded subtitle content with the format's extension.
func (w *Writer) WriteSubtitles(content string, format subtitle.Format) (string, error) {
	path := filepath.Join(w.Dir, w.BaseName+subtitle.GetExtensionForFormat(format))
	if err := subtitle.WriteFile(path, content); err != nil {
		return "", err
	}
	return path, nil
}

// WriteResult writes whichever parts of res are present and returns their paths.
func (w *Writer) WriteResult(res *metadata.Result) ([]string, error) {
	var files []string

	if len(res.Titles) > 0 {
		path, err := w.WriteTitles(res.Titles)
		if err != nil {
			return files, err
		}
		files = append(files, path)
	}
	if res.Description != "" {
		path, err := w.WriteDescription(res.Description)
		if err != nil {
			return files, err
		}
		files = append(files, path)
	}
	if len(res.Chapters) > 0 {
		path, err := w.WriteChapters(res.Chapters)
		if err != nil {
			return files, err
		}
		files = append(files, path)
	}

	return files, nil
}

// WriteManifest serializes m in the writer's manifest format.
func (w *Writer) WriteManifest(m *Manifest) (string, error) {
	var (
		data []byte
		err  error
	)
	switch w.ManifestFormat {
	case ManifestJSON:
		data, err = json.MarshalIndent(m, "", "  ")
		data = append(data, '\n')
	case ManifestYAML:
		data, err = yaml.Marshal(m)
	default:
		return "", fmt.Errorf("unsupported manifest format: %s", w.ManifestFormat)
	}
	if err != nil {
		return "", fmt.Errorf("failed to encode manifest: %w", err)
	}

	return w.write(manifestSuffix(w.ManifestFormat), string(data))
}

// ManifestPath is where WriteManifest puts the manifest.
func (w *Writer) ManifestPath() string {
	return w.Path(manifestSuffix(w.ManifestFormat))
}

func manifestSuffix(format ManifestFormat) string {
	return "manifest." + string(format)
}

// ReadManifest loads a manifest written by WriteManifest; the format is taken
// from the file extension.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	m := &Manifest{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, m)
	default:
		err = json.Unmarshal(data, m)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode manifest %s: %w", path, err)
	}
	return m, nil
}

func (w *Writer) write(suffix, content string) (string, error) {
	path := w.Path(suffix)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
