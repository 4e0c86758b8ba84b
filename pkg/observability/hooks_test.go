package observability

import (
	"context"
	"testing"
	"time"
)

type countingPipelineHooks struct {
	NoopPipelineHooks
	synthStarts int
}

func (h *countingPipelineHooks) OnSynthesizeStart(ctx context.Context, kind string) {
	h.synthStarts++
}

func TestDefaultsAreNoop(t *testing.T) {
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Errorf("default pipeline hooks = %T", Pipeline())
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Errorf("default cache hooks = %T", Cache())
	}
	if _, ok := Storage().(NoopStorageHooks); !ok {
		t.Errorf("default storage hooks = %T", Storage())
	}

	// Safe to call without registration.
	ctx := context.Background()
	Pipeline().OnSynthesizeStart(ctx, "jitter-grid")
	Pipeline().OnExportComplete(ctx, []string{"dxf"}, time.Millisecond, nil)
	Cache().OnCacheHit(ctx, "artifact")
	Storage().OnUpload(ctx, "a/b.dxf", 1)
}

func TestSetPipelineHooks(t *testing.T) {
	defer SetPipelineHooks(NoopPipelineHooks{})

	h := &countingPipelineHooks{}
	SetPipelineHooks(h)
	Pipeline().OnSynthesizeStart(context.Background(), "sunflower")
	if h.synthStarts != 1 {
		t.Errorf("synthStarts = %d, want 1", h.synthStarts)
	}
}

func TestSetHooksIgnoresNil(t *testing.T) {
	SetCacheHooks(nil)
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Errorf("nil registration replaced cache hooks: %T", Cache())
	}
}
