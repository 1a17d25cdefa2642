package metadata

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mgpai22/podmeta/internal/transcript"
)

// ErrNoTimestamps is returned when chapters are requested for a transcript
// without timing information.
var ErrNoTimestamps = errors.New("chapters require a timestamped transcript")

const defaultConcurrency = 3

// receives one observation per assistant request
type Recorder interface {
	ObserveGeneration(kind string, err error, elapsed time.Duration)
}

// Result holds whatever kinds were requested.
type Result struct {
	Titles      []string  `json:"titles,omitempty" yaml:"titles,omitempty"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Chapters    []Chapter `json:"chapters,omitempty" yaml:"chapters,omitempty"`
}

type Generator struct {
	Assistant          Assistant
	Concurrency        int
	Instructions       string
	TitleCount         int
	MaxTranscriptChars int
	Recorder           Recorder
}

// Generate requests every kind from the assistant, at most Concurrency at a
// time. The first failure cancels the remaining requests.
func (g *Generator) Generate(
	ctx context.Context,
	tr *transcript.Transcript,
	kinds []Kind,
) (*Result, error) {
	if g.Assistant == nil {
		return nil, fmt.Errorf("no assistant configured")
	}
	if tr == nil {
		return nil, fmt.Errorf("no transcript loaded")
	}
	kinds = uniqueKinds(kinds)
	for _, kind := range kinds {
		if kind == KindChapters && !tr.HasTimestamps() {
			return nil, ErrNoTimestamps
		}
	}

	concurrency := g.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	req := Request{
		Transcript:         tr,
		Instructions:       g.Instructions,
		TitleCount:         g.TitleCount,
		MaxTranscriptChars: g.MaxTranscriptChars,
	}

	result := &Result{}
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(concurrency)

	for _, kind := range kinds {
		eg.Go(func() error {
			// each kind writes its own field of result
			if err := g.generate(ctx, kind, req, result); err != nil {
				return fmt.Errorf("%s: %w", kind, err)
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

func (g *Generator) generate(
	ctx context.Context,
	kind Kind,
	req Request,
	result *Result,
) (err error) {
	start := time.Now()
	defer func() {
		if g.Recorder != nil {
			g.Recorder.ObserveGeneration(string(kind), err, time.Since(start))
		}
	}()

	if err := ctx.Err(); err != nil {
		return err
	}

	response, err := g.Assistant.Complete(ctx, BuildPrompt(kind, req))
	if err != nil {
		return err
	}

	switch kind {
	case KindTitles:
		result.Titles, err = ParseTitles(response)
	case KindDescription:
		result.Description, err = ParseDescription(response)
	case KindChapters:
		result.Chapters, err = ParseChapters(response)
	default:
		err = fmt.Errorf("unknown metadata kind: %q", kind)
	}
	return err
}

func uniqueKinds(kinds []Kind) []Kind {
	seen := make(map[Kind]bool, len(kinds))
	out := make([]Kind, 0, len(kinds))
	for _, k := range kinds {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}
