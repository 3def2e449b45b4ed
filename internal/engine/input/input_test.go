package input

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name  string
		event sdl.Event
		want  Event
		ok    bool
	}{
		{
			name:  "quit",
			event: &sdl.QuitEvent{Type: sdl.QUIT},
			want:  Event{Type: EventQuit},
			ok:    true,
		},
		{
			name:  "resize",
			event: &sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_RESIZED, Data1: 800, Data2: 600},
			want:  Event{Type: EventWindowResize, Width: 800, Height: 600},
			ok:    true,
		},
		{
			name:  "focus ignored",
			event: &sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_FOCUS_GAINED},
			ok:    false,
		},
		{
			name:  "motion",
			event: &sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION, X: 10, Y: 20, XRel: 3, YRel: -2},
			want:  Event{Type: EventMouseMove, MouseX: 10, MouseY: 20, RelX: 3, RelY: -2},
			ok:    true,
		},
		{
			name:  "left press",
			event: &sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONDOWN, Button: sdl.BUTTON_LEFT, X: 5, Y: 6},
			want:  Event{Type: EventMouseDown, MouseX: 5, MouseY: 6, Button: ButtonLeft},
			ok:    true,
		},
		{
			name:  "left release",
			event: &sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONUP, Button: sdl.BUTTON_LEFT, X: 5, Y: 6},
			want:  Event{Type: EventMouseUp, MouseX: 5, MouseY: 6, Button: ButtonLeft},
			ok:    true,
		},
		{
			name:  "wheel flipped",
			event: &sdl.MouseWheelEvent{Type: sdl.MOUSEWHEEL, Y: 1, Direction: sdl.MOUSEWHEEL_FLIPPED},
			want:  Event{Type: EventMouseWheel, WheelY: -1},
			ok:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Translate(tt.event)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("Translate() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
