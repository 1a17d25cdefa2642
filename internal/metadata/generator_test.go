package metadata

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mgpai22/podmeta/internal/transcript"
)

type fakeAssistant struct {
	failOn   Kind
	delay    time.Duration
	inFlight atomic.Int32
	maxSeen  atomic.Int32
	calls    atomic.Int32
}

func (f *fakeAssistant) Complete(ctx context.Context, prompt string) (string, error) {
	f.calls.Add(1)
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		old := f.maxSeen.Load()
		if n <= old || f.maxSeen.CompareAndSwap(old, n) {
			break
		}
	}

	select {
	case <-time.After(f.delay):
	case <-ctx.Done():
		return "", ctx.Err()
	}

	kind := promptKind(prompt)
	if kind == f.failOn {
		return "", errors.New("assistant unavailable")
	}

	switch kind {
	case KindTitles:
		return `{"titles": ["Episode One", "Pilot"]}`, nil
	case KindDescription:
		return `{"description": "We talk about things."}`, nil
	default:
		return "```json\n{\"chapters\": [{\"timestamp\": \"00:00\", \"title\": \"Intro\"}]}\n```", nil
	}
}

func promptKind(prompt string) Kind {
	switch {
	case strings.Contains(prompt, "episode titles"):
		return KindTitles
	case strings.Contains(prompt, "episode description"):
		return KindDescription
	default:
		return KindChapters
	}
}

type recordedCall struct {
	kind string
	err  error
}

type fakeRecorder struct {
	mu    sync.Mutex
	calls []recordedCall
}

func (r *fakeRecorder) ObserveGeneration(kind string, err error, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, recordedCall{kind: kind, err: err})
}

func loadTranscript(t *testing.T, content string) *transcript.Transcript {
	t.Helper()
	tr, err := transcript.Parse("episode.txt", content, transcript.DefaultOptions())
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	return tr
}

const timedEpisode = "00:00:00 - 00:00:05 Host: Welcome.\n00:00:05 - 00:00:09 Guest: Hi.\n"

func TestGenerateAllKinds(t *testing.T) {
	recorder := &fakeRecorder{}
	g := &Generator{
		Assistant: &fakeAssistant{},
		Recorder:  recorder,
	}

	result, err := g.Generate(
		context.Background(),
		loadTranscript(t, timedEpisode),
		[]Kind{KindTitles, KindDescription, KindChapters, KindTitles},
	)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	if len(result.Titles) != 2 || result.Titles[0] != "Episode One" {
		t.Errorf("Titles = %q", result.Titles)
	}
	if result.Description != "We talk about things." {
		t.Errorf("Description = %q", result.Description)
	}
	if len(result.Chapters) != 1 || result.Chapters[0] != (Chapter{"00:00", "Intro"}) {
		t.Errorf("Chapters = %+v", result.Chapters)
	}
	if len(recorder.calls) != 3 {
		t.Errorf("expected 3 recorded generations, got %d", len(recorder.calls))
	}
}

func TestGenerateRespectsConcurrency(t *testing.T) {
	assistant := &fakeAssistant{delay: 20 * time.Millisecond}
	g := &Generator{Assistant: assistant, Concurrency: 1}

	_, err := g.Generate(
		context.Background(),
		loadTranscript(t, timedEpisode),
		AllKinds,
	)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if got := assistant.maxSeen.Load(); got != 1 {
		t.Errorf("max concurrent requests = %d, want 1", got)
	}
	if got := assistant.calls.Load(); got != 3 {
		t.Errorf("calls = %d, want 3", got)
	}
}

func TestGenerateFailsFast(t *testing.T) {
	recorder := &fakeRecorder{}
	g := &Generator{
		Assistant: &fakeAssistant{failOn: KindDescription},
		Recorder:  recorder,
	}

	_, err := g.Generate(
		context.Background(),
		loadTranscript(t, timedEpisode),
		[]Kind{KindDescription},
	)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.HasPrefix(err.Error(), "description: ") {
		t.Errorf("error should name the failing kind: %v", err)
	}
	if len(recorder.calls) != 1 || recorder.calls[0].err == nil {
		t.Errorf("failure should be recorded, got %+v", recorder.calls)
	}
}

func TestGenerateChaptersNeedTimestamps(t *testing.T) {
	g := &Generator{Assistant: &fakeAssistant{}}
	plain := loadTranscript(t, "Just some words without any timing.\n")

	_, err := g.Generate(context.Background(), plain, []Kind{KindChapters})
	if !errors.Is(err, ErrNoTimestamps) {
		t.Errorf("error = %v, want ErrNoTimestamps", err)
	}

	result, err := g.Generate(context.Background(), plain, []Kind{KindTitles})
	if err != nil {
		t.Fatalf("titles on plain text should work: %v", err)
	}
	if len(result.Titles) == 0 {
		t.Error("expected titles")
	}
}

func TestGenerateRequiresAssistant(t *testing.T) {
	g := &Generator{}
	if _, err := g.Generate(context.Background(), &transcript.Transcript{}, AllKinds); err == nil {
		t.Error("expected error without assistant")
	}
}
