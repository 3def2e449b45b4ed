package shader

import "testing"

func TestCompileErrorMessage(t *testing.T) {
	tests := []struct {
		err  CompileError
		want string
	}{
		{CompileError{Stage: StageVertex, Log: "0:3: syntax error\n\x00"}, "vertex shader: 0:3: syntax error"},
		{CompileError{Stage: StageLink, Log: "\x00"}, "link shader: no info log"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestInfoBufferNeverEmpty(t *testing.T) {
	if n := len(infoBuffer(0)); n != 1 {
		t.Errorf("len(infoBuffer(0)) = %d, want 1", n)
	}
	if n := len(infoBuffer(64)); n != 64 {
		t.Errorf("len(infoBuffer(64)) = %d, want 64", n)
	}
}
