package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
)

func TestRecordTranscript(t *testing.T) {
	m := New()

	m.RecordTranscript("srt", 10)
	m.RecordTranscript("srt", 5)

	metric := &dto.Metric{}
	if err := m.transcriptsParsed.WithLabelValues("srt").Write(metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Counter.GetValue() != 2 {
		t.Errorf("Expected counter value 2, got %f", metric.Counter.GetValue())
	}

	metric = &dto.Metric{}
	if err := m.segmentsParsed.Write(metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Counter.GetValue() != 15 {
		t.Errorf("Expected counter value 15, got %f", metric.Counter.GetValue())
	}
}

func TestObserveGeneration(t *testing.T) {
	m := New()

	m.ObserveGeneration("titles", nil, 1500*time.Millisecond)
	m.ObserveGeneration("titles", errors.New("boom"), time.Second)

	for _, status := range []string{"success", "failed"} {
		metric := &dto.Metric{}
		if err := m.generationRequests.WithLabelValues("titles", status).Write(metric); err != nil {
			t.Fatalf("Failed to write metric: %v", err)
		}
		if metric.Counter.GetValue() != 1 {
			t.Errorf("%s: expected counter value 1, got %f", status, metric.Counter.GetValue())
		}
	}

	families, err := m.registry.Gather()
	if err != nil {
		t.Fatalf("Gather error: %v", err)
	}
	for _, family := range families {
		if family.GetName() != "podmeta_generation_duration_seconds" {
			continue
		}
		h := family.GetMetric()[0].GetHistogram()
		if h.GetSampleCount() != 2 || h.GetSampleSum() != 2.5 {
			t.Errorf("histogram count=%d sum=%f", h.GetSampleCount(), h.GetSampleSum())
		}
		return
	}
	t.Error("duration histogram not gathered")
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.RecordRepairWarnings(3)
	m.RecordSRTViolations(1)

	path := filepath.Join(t.TempDir(), "textfile", "podmeta.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	for _, want := range []string{
		"podmeta_repair_warnings_total 3",
		"podmeta_srt_violations_total 1",
	} {
		if !strings.Contains(string(data), want) {
			t.Errorf("textfile missing %q:\n%s", want, data)
		}
	}
}
