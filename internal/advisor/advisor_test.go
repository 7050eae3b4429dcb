package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"finmo/internal/cache"
	"finmo/internal/core"

	"google.golang.org/genai"
)

type fakeClient struct {
	calls  atomic.Int32
	advice core.AIAdvice
	err    error
	gate   chan struct{}
}

func (f *fakeClient) Advise(ctx context.Context, _ Request) (core.AIAdvice, error) {
	f.calls.Add(1)
	if f.gate != nil {
		<-f.gate
	}
	return f.advice, f.err
}

func sampleRequest() Request {
	return Request{
		Stats: core.BudgetStats{
			BaseIncome:  core.Cents(1000000),
			TotalIncome: core.Cents(1000000),
			TotalNeeds:  core.Cents(200000),
		},
		TotalIncome: core.Cents(1000000),
	}
}

func TestParseAdvice(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantErr   bool
		wantState core.AdviceStatus
	}{
		{"valid", `{"status":"good","message":"ok","recommendations":["a","b","c"]}`, false, core.AdviceGood},
		{"no recommendations", `{"status":"critical","message":"ok"}`, false, core.AdviceCritical},
		{"unknown status", `{"status":"great","message":"ok","recommendations":[]}`, true, ""},
		{"not json", `Aqui está o seu conselho`, true, ""},
		{"empty", ``, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAdvice(tt.text)
			if tt.wantErr {
				if KindOf(err) != KindMalformed {
					t.Fatalf("err = %v, want malformed", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Status != tt.wantState || got.Recommendations == nil {
				t.Fatalf("advice = %+v", got)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"deadline", fmt.Errorf("call: %w", context.DeadlineExceeded), KindTimeout},
		{"api error", genai.APIError{Code: 503, Message: "unavailable", Status: "UNAVAILABLE"}, KindService},
		{"wrapped api error", fmt.Errorf("generate: %w", genai.APIError{Code: 429, Message: "quota"}), KindService},
		{"api error pointer", &genai.APIError{Code: 500, Message: "internal"}, KindService},
		{"network", errors.New("connection refused"), KindTransport},
		{"already typed", malformed("bad"), KindMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classify(tt.err).Kind; got != tt.want {
				t.Fatalf("kind = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestPrompt(t *testing.T) {
	req := sampleRequest()
	for i := 0; i < 20; i++ {
		kind := core.Want
		if i == 0 {
			kind = core.Income
		}
		req.Transactions = append(req.Transactions, core.Transaction{
			Description: fmt.Sprintf("mov-%02d", i),
			Amount:      core.Cents(100),
			Category:    kind,
			Subcategory: "Outros",
		})
	}

	p := req.Prompt()
	if !strings.Contains(p, "10000.00 MT") {
		t.Fatalf("prompt missing total income:\n%s", p)
	}
	if !strings.Contains(p, "- ENTRADA: mov-00") {
		t.Fatalf("income not marked as ENTRADA")
	}
	if !strings.Contains(p, "mov-14") || strings.Contains(p, "mov-15") {
		t.Fatalf("prompt should summarise exactly 15 transactions")
	}
	if !strings.Contains(p, "status é 'critical'") {
		t.Fatalf("prompt missing critical rule")
	}

	req.Recent = 3
	if strings.Contains(req.Prompt(), "mov-03") {
		t.Fatalf("recent limit ignored")
	}
	if req.Fingerprint() == sampleRequest().Fingerprint() {
		t.Fatalf("different requests share a fingerprint")
	}
}

func TestServiceFallsBackOnEveryKind(t *testing.T) {
	for _, kind := range []Kind{KindTransport, KindService, KindTimeout, KindMalformed} {
		t.Run(string(kind), func(t *testing.T) {
			client := &fakeClient{err: &Error{Kind: kind, Err: errors.New("boom")}}
			svc := NewService(client, time.Minute, nil)

			got := svc.Advise(context.Background(), sampleRequest())
			want := Fallback()
			if got.Status != want.Status || got.Message != want.Message || len(got.Recommendations) != 3 {
				t.Fatalf("advice = %+v, want fallback", got)
			}
		})
	}
}

func TestServiceNilClient(t *testing.T) {
	got := NewService(nil, 0, nil).Advise(context.Background(), sampleRequest())
	if got.Status != core.AdviceWarning {
		t.Fatalf("status = %s", got.Status)
	}
}

func TestServiceCachesSuccess(t *testing.T) {
	now := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	client := &fakeClient{advice: core.AIAdvice{Status: core.AdviceGood, Message: "ok", Recommendations: []string{"a"}}}
	svc := NewService(client, time.Minute, nil, cache.WithClock(clock))

	ctx := context.Background()
	svc.Advise(ctx, sampleRequest())
	got := svc.Advise(ctx, sampleRequest())
	if got.Status != core.AdviceGood {
		t.Fatalf("status = %s", got.Status)
	}
	if n := client.calls.Load(); n != 1 {
		t.Fatalf("client called %d times, want 1", n)
	}

	now = now.Add(2 * time.Minute)
	svc.Advise(ctx, sampleRequest())
	if n := client.calls.Load(); n != 2 {
		t.Fatalf("expired entry not refreshed, calls = %d", n)
	}
}

func TestServiceDoesNotCacheFailures(t *testing.T) {
	client := &fakeClient{err: &Error{Kind: KindService, Err: errors.New("503")}}
	svc := NewService(client, time.Minute, nil)

	ctx := context.Background()
	svc.Advise(ctx, sampleRequest())
	svc.Advise(ctx, sampleRequest())
	if n := client.calls.Load(); n != 2 {
		t.Fatalf("calls = %d, want 2", n)
	}
}

func TestServiceCollapsesConcurrentRequests(t *testing.T) {
	client := &fakeClient{
		advice: core.AIAdvice{Status: core.AdviceGood, Recommendations: []string{}},
		gate:   make(chan struct{}),
	}
	svc := NewService(client, time.Minute, nil)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			svc.Advise(context.Background(), sampleRequest())
		}()
	}

	// Let every caller reach the shared flight before releasing it.
	deadline := time.Now().Add(2 * time.Second)
	for client.calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	time.Sleep(50 * time.Millisecond)
	close(client.gate)
	wg.Wait()

	if n := client.calls.Load(); n != 1 {
		t.Fatalf("client called %d times, want 1", n)
	}
}
