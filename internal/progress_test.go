package internal

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestShowProgress(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		message string
		fn      func() error
		wantErr bool
	}{
		{
			name:    "successful function",
			message: "Testing",
			fn: func() error {
				return nil
			},
			wantErr: false,
		},
		{
			name:    "function with error",
			message: "Testing error",
			fn: func() error {
				return errors.New("test error")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ShowProgress(ctx, tt.message, tt.fn)
			if (err != nil) != tt.wantErr {
				t.Errorf("ShowProgress() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestShowProgressSimple(t *testing.T) {
	var buf bytes.Buffer
	err := showProgressSimple(context.Background(), &buf, "Saving session", func() error {
		time.Sleep(150 * time.Millisecond)
		return nil
	})
	if err != nil {
		t.Fatalf("showProgressSimple() error = %v", err)
	}
	if !strings.Contains(buf.String(), "Saving session") {
		t.Errorf("spinner output should contain the message, got %q", buf.String())
	}
}

func TestShowProgressSimple_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	var buf bytes.Buffer
	err := showProgressSimple(ctx, &buf, "Testing", func() error {
		time.Sleep(200 * time.Millisecond)
		return nil
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("showProgressSimple() error = %v, want %v", err, context.DeadlineExceeded)
	}
}

func TestShowProgressWithSteps(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		steps   []ProgressStep
		wantErr bool
	}{
		{
			name: "successful steps",
			steps: []ProgressStep{
				{Message: "Step 1", Fn: func() error { return nil }},
				{Message: "Step 2", Fn: func() error { return nil }},
			},
			wantErr: false,
		},
		{
			name: "step with error",
			steps: []ProgressStep{
				{Message: "Step 1", Fn: func() error { return nil }},
				{Message: "Step 2", Fn: func() error { return errors.New("step error") }},
			},
			wantErr: true,
		},
		{
			name:    "empty steps",
			steps:   []ProgressStep{},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ShowProgressWithSteps(ctx, tt.steps)
			if (err != nil) != tt.wantErr {
				t.Errorf("ShowProgressWithSteps() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPrintHelpers_NonTerminal(t *testing.T) {
	var buf bytes.Buffer

	PrintSuccess(&buf, "saved")
	PrintInfo(&buf, "info")
	PrintError(&buf, "failed")
	PrintWarning(&buf, "careful")

	want := "saved\ninfo\nfailed\nWARNING: careful\n"
	if got := buf.String(); got != want {
		t.Errorf("print helpers wrote %q, want %q", got, want)
	}
}
