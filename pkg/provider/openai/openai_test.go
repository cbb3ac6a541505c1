package openai

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/debumedia/schema-generator/models"
	"github.com/debumedia/schema-generator/pkg/provider"
	"github.com/debumedia/schema-generator/pkg/transport"
)

// recordingDoer captures requests and replays canned responses.
type recordingDoer struct {
	calls       int
	lastBody    any
	lastTimeout time.Duration
	lastHeaders map[string]string
	resp        transport.Response
}

func (d *recordingDoer) Request(url string, headers map[string]string, body any, timeout time.Duration) transport.Response {
	d.calls++
	d.lastBody = body
	d.lastTimeout = timeout
	d.lastHeaders = headers
	return d.resp
}

func completionResponse(content string) transport.Response {
	body, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	})
	return transport.Response{Success: true, StatusCode: 200, Body: body}
}

func fixedClock() provider.Clock {
	at := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func newTestProvider(doer *recordingDoer) *Provider {
	ex := provider.NewExchange(doer, provider.NewRateLimit(fixedClock()), nil)
	return New(ex, nil)
}

func settingsWith(extra map[string]any) models.Settings {
	values := map[string]any{"openai_api_key": "sk-test"}
	for k, v := range extra {
		values[k] = v
	}
	return models.NewSettings(values)
}

func payload() models.PromptPayload {
	return models.PromptPayload{
		Mode:            models.ModeDirect,
		Page:            models.PageData{Title: "T", Content: models.StructuredContent{Text: "## [T] ##"}},
		TypeHint:        models.TypeHintAuto,
		SchemaReference: "WebPage — a generic page.",
	}
}

func TestGenerateSchemaSuccess(t *testing.T) {
	schema := `{"@context":"https://schema.org","@type":"WebPage","name":"T"}`
	doer := &recordingDoer{resp: completionResponse(schema)}
	p := newTestProvider(doer)

	res := p.GenerateSchema(payload(), settingsWith(nil))

	if !res.Success {
		t.Fatalf("GenerateSchema() = %+v, want success", res)
	}
	if res.Schema != schema {
		t.Errorf("schema = %q", res.Schema)
	}
	if doer.calls != 1 {
		t.Errorf("transport calls = %d, want 1", doer.calls)
	}
	if doer.lastTimeout != generateTimeout {
		t.Errorf("timeout = %v, want %v", doer.lastTimeout, generateTimeout)
	}
	if doer.lastHeaders["Authorization"] != "Bearer sk-test" {
		t.Errorf("auth header = %q", doer.lastHeaders["Authorization"])
	}

	req, ok := doer.lastBody.(chatRequest)
	if !ok {
		t.Fatalf("request body has type %T", doer.lastBody)
	}
	if len(req.Messages) != 2 {
		t.Errorf("request carries %d messages, want 2", len(req.Messages))
	}
	if req.MaxTokens <= 0 {
		t.Errorf("max tokens = %d, want positive budget", req.MaxTokens)
	}
}

func TestGenerateSchemaStripsFences(t *testing.T) {
	doer := &recordingDoer{resp: completionResponse("```json\n{\"@context\":\"https://schema.org\"}\n```")}
	p := newTestProvider(doer)

	res := p.GenerateSchema(payload(), settingsWith(nil))
	if !res.Success {
		t.Fatalf("GenerateSchema() = %+v", res)
	}
	if res.Schema != `{"@context":"https://schema.org"}` {
		t.Errorf("schema = %q, fences not stripped", res.Schema)
	}
}

func TestGenerateSchemaMissingKey(t *testing.T) {
	doer := &recordingDoer{resp: completionResponse("{}")}
	p := newTestProvider(doer)

	res := p.GenerateSchema(payload(), models.NewSettings(map[string]any{}))

	if res.Success || res.ErrorKind != models.ErrorMissingKey || res.StatusCode != 0 {
		t.Errorf("result = %+v, want missing_key status 0", res)
	}
	if doer.calls != 0 {
		t.Errorf("transport calls = %d, want 0", doer.calls)
	}
}

func TestGenerateSchemaRateLimitRoundTrip(t *testing.T) {
	doer := &recordingDoer{resp: transport.Response{
		StatusCode: http.StatusTooManyRequests,
		Headers:    map[string]string{"Retry-After": "90"},
		Err:        fmt.Errorf("server returned 429 Too Many Requests"),
	}}
	p := newTestProvider(doer)
	settings := settingsWith(nil)

	first := p.GenerateSchema(payload(), settings)
	if first.Success || first.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("first result = %+v, want 429", first)
	}
	if first.ErrorKind != models.ErrorRateLimited {
		t.Errorf("first kind = %s, want rate_limited", first.ErrorKind)
	}

	// Second call inside the window short-circuits with no network call.
	second := p.GenerateSchema(payload(), settings)
	if second.Success || second.ErrorKind != models.ErrorRateLimited {
		t.Errorf("second result = %+v, want rate_limited", second)
	}
	if doer.calls != 1 {
		t.Errorf("transport calls = %d, want 1 (second call must not hit the network)", doer.calls)
	}
}

func TestGenerateSchemaResponseFailures(t *testing.T) {
	tests := []struct {
		name string
		resp transport.Response
		want models.ErrorKind
	}{
		{
			name: "unparseable body",
			resp: transport.Response{Success: true, StatusCode: 200, Body: []byte("not json")},
			want: models.ErrorParse,
		},
		{
			name: "no choices",
			resp: transport.Response{Success: true, StatusCode: 200, Body: []byte(`{"choices":[]}`)},
			want: models.ErrorEmpty,
		},
		{
			name: "blank content",
			resp: completionResponse("   "),
			want: models.ErrorEmpty,
		},
		{
			name: "server error passes status through",
			resp: transport.Response{StatusCode: 500, Err: fmt.Errorf("server returned 500")},
			want: models.ErrorTransport,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestProvider(&recordingDoer{resp: tt.resp})
			res := p.GenerateSchema(payload(), settingsWith(nil))
			if res.Success {
				t.Fatalf("result = %+v, want failure", res)
			}
			if res.ErrorKind != tt.want {
				t.Errorf("kind = %s, want %s", res.ErrorKind, tt.want)
			}
		})
	}
}

func TestTestConnection(t *testing.T) {
	doer := &recordingDoer{resp: completionResponse("OK")}
	p := newTestProvider(doer)

	res := p.TestConnection(settingsWith(nil))

	if !res.Success {
		t.Fatalf("TestConnection() = %+v", res)
	}
	if doer.lastTimeout != testTimeout {
		t.Errorf("timeout = %v, want %v", doer.lastTimeout, testTimeout)
	}
	req := doer.lastBody.(chatRequest)
	if req.MaxTokens != 10 {
		t.Errorf("max tokens = %d, want 10", req.MaxTokens)
	}
}

func TestActiveModel(t *testing.T) {
	p := newTestProvider(&recordingDoer{})

	tests := []struct {
		name  string
		model string
		want  string
	}{
		{name: "configured model", model: "gpt-4o", want: "gpt-4o"},
		{name: "unknown falls back", model: "gpt-99", want: DefaultModel},
		{name: "unset falls back", model: "", want: DefaultModel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := p.ActiveModel(settingsWith(map[string]any{"openai_model": tt.model}))
			if cfg.Name != tt.want {
				t.Errorf("ActiveModel() = %s, want %s", cfg.Name, tt.want)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("catalogue entry invalid: %v", err)
			}
		})
	}
}
