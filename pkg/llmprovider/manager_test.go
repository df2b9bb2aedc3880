package llmprovider

import (
	"context"
	"errors"
	"testing"
	"time"
)

// mockProvider is a test implementation of the Provider interface
type mockProvider struct {
	name       string
	model      string
	shouldFail bool
	failErr    error
	response   *Response
	callCount  int
	lastReq    *Request
}

func (m *mockProvider) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	m.callCount++
	m.lastReq = req
	if m.failErr != nil {
		return nil, m.failErr
	}
	if m.shouldFail {
		return nil, errors.New("mock provider error")
	}
	return m.response, nil
}

func (m *mockProvider) Name() string {
	return m.name
}

func (m *mockProvider) Model() string {
	return m.model
}

// mockLogger is a test implementation of the Logger interface
type mockLogger struct {
	infoMessages []string
	warnMessages []string
}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Info(ctx context.Context, arg ...any) {
	if len(arg) > 0 {
		if msg, ok := arg[0].(string); ok {
			m.infoMessages = append(m.infoMessages, msg)
		}
	}
}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any) {
	if len(arg) > 0 {
		if msg, ok := arg[0].(string); ok {
			m.warnMessages = append(m.warnMessages, msg)
		}
	}
}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}

func TestGenerateContent_SuccessWithPrimaryProvider(t *testing.T) {
	expectedResponse := &Response{
		Text:         "Hello from primary provider",
		ProviderName: "primary",
		ModelName:    "primary-model",
		Usage: &Usage{
			InputTokens:  100,
			OutputTokens: 50,
			TotalTokens:  150,
		},
	}

	primary := &mockProvider{name: "primary", model: "primary-model", response: expectedResponse}

	logger := &mockLogger{}
	config := &Config{
		FallbackEnabled: true,
		RetryAttempts:   3,
		RetryDelay:      time.Millisecond,
	}

	manager := NewManager([]Provider{primary}, config, logger)

	resp, err := manager.GenerateContent(context.Background(), NewPromptRequest("Hello"))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if resp.Text != "Hello from primary provider" {
		t.Errorf("Unexpected text: %s", resp.Text)
	}
	if primary.callCount != 1 {
		t.Errorf("Expected primary provider to be called once, got: %d", primary.callCount)
	}
	if len(logger.infoMessages) != 1 {
		t.Errorf("Expected 1 info log message, got: %d", len(logger.infoMessages))
	}
	if len(logger.warnMessages) != 0 {
		t.Errorf("Expected 0 warn log messages, got: %d", len(logger.warnMessages))
	}
}

func TestGenerateContent_FallbackToSecondaryProvider(t *testing.T) {
	primary := &mockProvider{name: "primary", model: "primary-model", shouldFail: true}
	secondary := &mockProvider{
		name:  "secondary",
		model: "secondary-model",
		response: &Response{
			Text:         "Hello from secondary provider",
			ProviderName: "secondary",
			ModelName:    "secondary-model",
		},
	}

	logger := &mockLogger{}
	config := &Config{
		FallbackEnabled: true,
		RetryAttempts:   2,
		RetryDelay:      time.Millisecond,
	}

	manager := NewManager([]Provider{primary, secondary}, config, logger)

	req := NewPromptRequest("Hello")
	req.Model = "llama3:8b"
	resp, err := manager.GenerateContent(context.Background(), req)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if resp.ProviderName != "secondary" {
		t.Errorf("Expected provider name 'secondary', got: %s", resp.ProviderName)
	}
	if primary.callCount != 2 {
		t.Errorf("Expected primary provider to be called 2 times, got: %d", primary.callCount)
	}
	if secondary.callCount != 1 {
		t.Errorf("Expected secondary provider to be called once, got: %d", secondary.callCount)
	}
	if primary.lastReq.Model != "llama3:8b" {
		t.Errorf("Expected primary to receive requested model, got: %q", primary.lastReq.Model)
	}
	if secondary.lastReq.Model != "" {
		t.Errorf("Expected fallback to use its own model, got: %q", secondary.lastReq.Model)
	}
	if req.Model != "llama3:8b" {
		t.Errorf("Expected caller request untouched, got: %q", req.Model)
	}
	// nil Usage must not break success logging
	if len(logger.infoMessages) != 1 || len(logger.warnMessages) != 1 {
		t.Errorf("Expected 1 info and 1 warn, got %d and %d", len(logger.infoMessages), len(logger.warnMessages))
	}
}

func TestGenerateContent_AllProvidersFail(t *testing.T) {
	primary := &mockProvider{name: "primary", model: "primary-model", shouldFail: true}
	secondary := &mockProvider{name: "secondary", model: "secondary-model", shouldFail: true}

	logger := &mockLogger{}
	config := &Config{
		FallbackEnabled: true,
		RetryAttempts:   2,
		RetryDelay:      time.Millisecond,
	}

	manager := NewManager([]Provider{primary, secondary}, config, logger)

	resp, err := manager.GenerateContent(context.Background(), NewPromptRequest("Hello"))
	if err == nil {
		t.Fatal("Expected error when all providers fail, got nil")
	}
	if !errors.Is(err, ErrAllProvidersFailed) {
		t.Errorf("Expected ErrAllProvidersFailed, got: %v", err)
	}
	if resp != nil {
		t.Errorf("Expected nil response, got: %v", resp)
	}
	if primary.callCount != 2 || secondary.callCount != 2 {
		t.Errorf("Expected 2 calls each, got %d and %d", primary.callCount, secondary.callCount)
	}
	if len(logger.warnMessages) != 2 {
		t.Errorf("Expected 2 warn log messages, got: %d", len(logger.warnMessages))
	}
}

func TestGenerateContent_PermanentErrorNotRetried(t *testing.T) {
	primary := &mockProvider{name: "primary", model: "primary-model", failErr: ErrInvalidRequest}

	manager := NewManager([]Provider{primary}, &Config{RetryAttempts: 3, RetryDelay: time.Millisecond}, &mockLogger{})

	_, err := manager.GenerateContent(context.Background(), NewPromptRequest("Hello"))
	if !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("Expected wrapped ErrInvalidRequest, got: %v", err)
	}

	var perr *ProviderError
	if !errors.As(err, &perr) || perr.Provider != "primary" {
		t.Errorf("Expected ProviderError for primary, got: %v", err)
	}
	if primary.callCount != 1 {
		t.Errorf("Expected a single attempt, got: %d", primary.callCount)
	}
}

func TestGenerateContent_NoFallbackWhenDisabled(t *testing.T) {
	primary := &mockProvider{name: "primary", model: "primary-model", shouldFail: true}
	secondary := &mockProvider{
		name:     "secondary",
		model:    "secondary-model",
		response: &Response{ProviderName: "secondary", ModelName: "secondary-model", Usage: &Usage{}},
	}

	config := &Config{
		FallbackEnabled: false,
		RetryAttempts:   2,
		RetryDelay:      time.Millisecond,
	}

	manager := NewManager([]Provider{primary, secondary}, config, &mockLogger{})

	resp, err := manager.GenerateContent(context.Background(), NewPromptRequest("Hello"))
	if err == nil {
		t.Fatal("Expected error when primary fails and fallback is disabled, got nil")
	}
	if resp != nil {
		t.Errorf("Expected nil response, got: %v", resp)
	}
	if primary.callCount != 2 {
		t.Errorf("Expected primary provider to be called 2 times, got: %d", primary.callCount)
	}
	if secondary.callCount != 0 {
		t.Errorf("Expected secondary provider to NOT be called, got: %d calls", secondary.callCount)
	}
}

func TestGenerateContent_InvalidInput(t *testing.T) {
	manager := NewManager([]Provider{}, &Config{RetryAttempts: 3}, &mockLogger{})

	if _, err := manager.GenerateContent(context.Background(), NewPromptRequest("Hello")); !errors.Is(err, ErrNoProvidersConfigured) {
		t.Errorf("Expected ErrNoProvidersConfigured, got: %v", err)
	}

	manager = NewManager([]Provider{&mockProvider{name: "p"}}, nil, &mockLogger{})
	if _, err := manager.GenerateContent(context.Background(), &Request{}); !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("Expected ErrInvalidRequest, got: %v", err)
	}
}

func TestRequestPrompt(t *testing.T) {
	if got := NewPromptRequest("just this").Prompt(); got != "just this" {
		t.Errorf("Expected single message verbatim, got %q", got)
	}

	req := &Request{Messages: []Message{
		{Role: RoleUser, Text: "hi"},
		{Role: RoleAssistant, Text: "hello"},
		{Role: RoleUser, Text: "bye"},
	}}
	want := "Human: hi\n\nAssistant: hello\n\nHuman: bye"
	if got := req.Prompt(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

type healthProvider struct {
	mockProvider
	up bool
}

func (h *healthProvider) Available(context.Context) bool { return h.up }

func TestManagerAvailable(t *testing.T) {
	down := &healthProvider{mockProvider: mockProvider{name: "ollama"}}
	cloud := &mockProvider{name: "deepseek"}

	t.Run("primary down without fallback", func(t *testing.T) {
		m := NewManager([]Provider{down, cloud}, &Config{FallbackEnabled: false}, &mockLogger{})
		if m.Available(context.Background()) {
			t.Error("Expected unavailable when the only usable provider is down")
		}
	})

	t.Run("primary down with cloud fallback", func(t *testing.T) {
		m := NewManager([]Provider{down, cloud}, &Config{FallbackEnabled: true}, &mockLogger{})
		if !m.Available(context.Background()) {
			t.Error("Expected cloud fallback to count as available")
		}
	})

	t.Run("primary up", func(t *testing.T) {
		up := &healthProvider{mockProvider: mockProvider{name: "ollama"}, up: true}
		m := NewManager([]Provider{up}, nil, &mockLogger{})
		if !m.Available(context.Background()) {
			t.Error("Expected available")
		}
	})

	t.Run("no providers", func(t *testing.T) {
		if NewManager(nil, nil, &mockLogger{}).Available(context.Background()) {
			t.Error("Expected unavailable with no providers")
		}
	})
}
