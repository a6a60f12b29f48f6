package proto

import (
	"testing"

	"chatrelay/internal/errors"
)

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		line string
		want Command
	}{
		{"LOGIN alice", Command{Kind: KindLogin, Name: "alice"}},
		{"login bob", Command{Kind: KindLogin, Name: "bob"}},
		{"LOGIN alice extra tokens", Command{Kind: KindLogin, Name: "alice"}},
		{"MSG hello", Command{Kind: KindMsg, Text: "hello"}},
		{"MSG hello   spaced    world", Command{Kind: KindMsg, Text: "hello spaced world"}},
		{"msg MiXeD case verb", Command{Kind: KindMsg, Text: "MiXeD case verb"}},
		{"WHO", Command{Kind: KindWho}},
		{"WHO ignored args", Command{Kind: KindWho}},
		{"DM bob hi", Command{Kind: KindDM, Name: "bob", Text: "hi"}},
		{"DM bob hi   there", Command{Kind: KindDM, Name: "bob", Text: "hi there"}},
		{"PING", Command{Kind: KindPing}},
		{"ping", Command{Kind: KindPing}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := Parse(tt.line)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.line, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		line string
		want error
	}{
		{"LOGIN", errors.ErrInvalidCommand},
		{"MSG", errors.ErrInvalidCommand},
		{"DM", errors.ErrInvalidCommand},
		{"DM bob", errors.ErrInvalidCommand},
		{"QUIT", errors.ErrUnknownCommand},
		{"HELLO world", errors.ErrUnknownCommand},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			if _, err := Parse(tt.line); err != tt.want {
				t.Errorf("Parse(%q) err = %v, want %v", tt.line, err, tt.want)
			}
		})
	}
}

func TestKind_String(t *testing.T) {
	for k, want := range map[Kind]string{
		KindLogin: "LOGIN",
		KindMsg:   "MSG",
		KindWho:   "WHO",
		KindDM:    "DM",
		KindPing:  "PING",
	} {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}
