package commands

import (
	"errors"
	"testing"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/add buy milk", TypeAdd},
		{"filter pending", TypeFilter},
		{"/clear", TypeClear},
		{"EDIT call mom tonight", TypeEdit},
		{"done", TypeDone},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseKeepsTextSpacing(t *testing.T) {
	cmd, err := Parse("/add  pay   rent ")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Add.Text != "pay   rent" {
		t.Fatalf("unexpected add text: %q", cmd.Add.Text)
	}

	cmd, err = Parse("filter Completed")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Filter.Name != "completed" {
		t.Fatalf("unexpected filter name: %q", cmd.Filter.Name)
	}
}

func TestParseSplitsOnAnyWhitespace(t *testing.T) {
	cmd, err := Parse("add\tfoo")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Type != TypeAdd || cmd.Add.Text != "foo" {
		t.Fatalf("unexpected command: %+v", cmd)
	}

	cmd, err = Parse("filter\u00a0pending")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Filter.Name != "pending" {
		t.Fatalf("unexpected filter name: %q", cmd.Filter.Name)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		in   string
		code ErrorCode
	}{
		{"", ErrCodeEmptyInput},
		{" / ", ErrCodeEmptyInput},
		{"/unknown do x", ErrCodeUnknownCommand},
		{"/add   ", ErrCodeInvalidArgument},
		{"filter", ErrCodeInvalidArgument},
		{"edit", ErrCodeInvalidArgument},
	}
	for _, tc := range cases {
		_, err := Parse(tc.in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != tc.code {
			t.Fatalf("parse %q: expected %s, got %v", tc.in, tc.code, err)
		}
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/add write docs")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Add: func(a AddArgs) (Result, error) {
			called = true
			if a.Text != "write docs" {
				t.Fatalf("unexpected text: %q", a.Text)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("clear")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = Execute(cmd, Handlers{})
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected missing handler error, got %v", err)
	}
}
