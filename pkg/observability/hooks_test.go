package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Run hooks
	r := NoopRunHooks{}
	r.OnResolveStart(ctx, ".")
	r.OnResolveComplete(ctx, ".", 12, time.Second, nil)
	r.OnResolveComplete(ctx, ".", 0, time.Second, errors.New("boom"))
	r.OnBuildComplete(ctx, 3, 7)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "resolution:v1:abc")
	c.OnCacheMiss(ctx, "resolution:v1:abc")
	c.OnCacheSet(ctx, "resolution:v1:abc", 512)

	// HTTP hooks
	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "/authors", 200, time.Millisecond)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Run().(NoopRunHooks); !ok {
		t.Error("Run() should return NoopRunHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	// Set custom hooks
	customRun := &testRunHooks{}
	SetRunHooks(customRun)
	if Run() != customRun {
		t.Error("SetRunHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Run().(NoopRunHooks); !ok {
		t.Error("Reset() should restore NoopRunHooks")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Reset() should restore NoopCacheHooks")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("Reset() should restore NoopHTTPHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testRunHooks{}
	SetRunHooks(custom)

	// Setting nil should be ignored
	SetRunHooks(nil)
	if Run() != custom {
		t.Error("SetRunHooks(nil) should be ignored")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	SetHTTPHooks(nil)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks(nil) should be ignored")
	}
}

// Test implementations
type testRunHooks struct{ NoopRunHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
