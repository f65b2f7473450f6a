package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

type convertMessage struct {
	Path string
}

func (convertMessage) Type() string { return "mdraft.test.convert" }

func (m convertMessage) Validate() error {
	if m.Path == "" {
		return errors.New("path required")
	}
	return nil
}

func TestHandlerExecuteSuccess(t *testing.T) {
	var got string
	h := NewHandler(func(ctx context.Context, msg convertMessage) error {
		got = msg.Path
		return nil
	})

	if err := h.Execute(context.Background(), convertMessage{Path: "doc.md"}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if got != "doc.md" {
		t.Fatalf("expected handler to receive message, got %q", got)
	}
}

func TestHandlerValidationShortCircuitsExecution(t *testing.T) {
	called := false
	h := NewHandler(func(ctx context.Context, msg convertMessage) error {
		called = true
		return nil
	})

	err := h.Execute(context.Background(), convertMessage{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when validation fails")
	}
}

func TestHandlerContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	h := NewHandler(func(ctx context.Context, msg convertMessage) error {
		called = true
		return nil
	})

	err := h.Execute(ctx, convertMessage{Path: "doc.md"})
	if err == nil {
		t.Fatal("expected context cancellation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when context is cancelled")
	}
}

func TestHandlerWrapsExecutionError(t *testing.T) {
	h := NewHandler(func(ctx context.Context, msg convertMessage) error {
		return errors.New("boom")
	})

	err := h.Execute(context.Background(), convertMessage{Path: "doc.md"})
	if err == nil {
		t.Fatal("expected wrapped execution error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}

func TestHandlerKeepsCategorisedErrors(t *testing.T) {
	original := goerrors.Wrap(errors.New("bad markdown"), goerrors.CategoryValidation, "parse failed")
	h := NewHandler(func(ctx context.Context, msg convertMessage) error {
		return original
	})

	err := h.Execute(context.Background(), convertMessage{Path: "doc.md"})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category to survive, got %v", err)
	}
}

func TestHandlerHonoursTimeoutOption(t *testing.T) {
	h := NewHandler(func(ctx context.Context, msg convertMessage) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
			return nil
		}
	}, WithTimeout[convertMessage](10*time.Millisecond))

	err := h.Execute(context.Background(), convertMessage{Path: "doc.md"})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category for timeout, got %v", err)
	}
}

func TestHandlerTelemetryReceivesOutcome(t *testing.T) {
	var infos []TelemetryInfo
	telemetry := func(_ context.Context, _ convertMessage, info TelemetryInfo) {
		infos = append(infos, info)
	}

	calls := 0
	h := NewHandler(func(ctx context.Context, msg convertMessage) error {
		calls++
		if calls > 1 {
			return errors.New("second run fails")
		}
		return nil
	},
		WithOperation[convertMessage]("convert.file"),
		WithMessageFields(func(msg convertMessage) map[string]any {
			return map[string]any{"path": msg.Path}
		}),
		WithTelemetry(telemetry),
	)

	_ = h.Execute(context.Background(), convertMessage{Path: "a.md"})
	_ = h.Execute(context.Background(), convertMessage{Path: "b.md"})

	if len(infos) != 2 {
		t.Fatalf("expected two telemetry calls, got %d", len(infos))
	}
	first, second := infos[0], infos[1]
	if first.Status != TelemetryStatusSuccess || first.Error != nil {
		t.Fatalf("unexpected first outcome: %+v", first)
	}
	if first.Command != "mdraft.test.convert" || first.Operation != "convert.file" {
		t.Fatalf("unexpected identifiers: %q %q", first.Command, first.Operation)
	}
	if first.Fields["path"] != "a.md" {
		t.Fatalf("expected message fields, got %v", first.Fields)
	}
	if second.Status != TelemetryStatusFailed || second.Error == nil {
		t.Fatalf("unexpected second outcome: %+v", second)
	}
}

func TestNewHandlerPanicsOnNilFunction(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for nil handler function")
		}
	}()
	NewHandler[convertMessage](nil)
}
