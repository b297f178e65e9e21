package core

import (
	"strings"
	"testing"
)

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(18, 6)

	if s.Width() != 18 || s.Height() != 6 {
		t.Fatalf("size = %dx%d, expected 18x6", s.Width(), s.Height())
	}
	if s.String() != strings.Repeat(strings.Repeat(" ", 18)+"\n", 5)+strings.Repeat(" ", 18) {
		t.Errorf("new screen not blank:\n%q", s.String())
	}
}

func TestScreenClipping(t *testing.T) {
	s := NewScreen(4, 2)

	tests := []struct {
		name string
		x, y int
	}{
		{"left", -1, 0},
		{"right", 4, 0},
		{"above", 0, -1},
		{"below", 0, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.Set(tt.x, tt.y, 'X')
			if got := s.Get(tt.x, tt.y); got != ' ' {
				t.Errorf("Get(%d, %d) = %q, expected space", tt.x, tt.y, got)
			}
		})
	}
	if strings.ContainsRune(s.String(), 'X') {
		t.Errorf("off-screen writes leaked:\n%s", s.String())
	}

	s.DrawText(2, 1, "virus")
	if s.Row(1) != "  vi" {
		t.Errorf("Row(1) = %q, expected %q", s.Row(1), "  vi")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(3, 2)
	s.DrawTextColor(0, 0, "><", ColorVirusRed)
	s.Clear()

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if got := s.GetCell(x, y); got != (Cell{Rune: ' ', Color: ColorDefault}) {
				t.Errorf("cell (%d, %d) = %+v after Clear", x, y, got)
			}
		}
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(16, 1)
	s.DrawTextCentered(0, "PAUSED")

	if got := s.Row(0); got != "     PAUSED     " {
		t.Errorf("Row(0) = %q", got)
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(6, 4)
	s.DrawBoxColor(NewRect(0, 0, 6, 4), ColorFrame)

	want := []string{
		"┌────┐",
		"│    │",
		"│    │",
		"└────┘",
	}
	for y, row := range want {
		if got := s.Row(y); got != row {
			t.Errorf("Row(%d) = %q, expected %q", y, got, row)
		}
	}
	if got := s.GetCell(5, 3).Color; got != ColorFrame {
		t.Errorf("corner color = %d, expected frame", got)
	}
	if got := s.GetCell(2, 2).Color; got != ColorDefault {
		t.Errorf("inside color = %d, expected default", got)
	}
}

func TestScreenDrawRectClearsOverlayArea(t *testing.T) {
	s := NewScreen(5, 3)
	for y := 0; y < 3; y++ {
		s.DrawText(0, y, "><><>")
	}
	s.DrawRect(NewRect(1, 1, 3, 1), ' ')

	if got := s.Row(1); got != ">   >" {
		t.Errorf("Row(1) = %q", got)
	}
	if got := s.Row(0); got != "><><>" {
		t.Errorf("Row(0) = %q, should be untouched", got)
	}
}

func TestScreenResize(t *testing.T) {
	tests := []struct {
		name  string
		w, h  int
		rows  []string
		wantW int
	}{
		{"grow keeps content", 4, 3, []string{"ab  ", "cd  ", "    "}, 4},
		{"shrink crops", 1, 1, []string{"a"}, 1},
		{"negative clamps", -3, 0, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScreen(2, 2)
			s.DrawText(0, 0, "ab")
			s.DrawText(0, 1, "cd")

			s.Resize(tt.w, tt.h)
			if s.Width() != tt.wantW || s.Height() != len(tt.rows) {
				t.Fatalf("size = %dx%d", s.Width(), s.Height())
			}
			for y, row := range tt.rows {
				if got := s.Row(y); got != row {
					t.Errorf("Row(%d) = %q, expected %q", y, got, row)
				}
			}
		})
	}
}

func TestScreenRowOutOfRange(t *testing.T) {
	s := NewScreen(3, 1)
	if got := s.Row(5); got != "   " {
		t.Errorf("Row(5) = %q, expected spaces", got)
	}
}

func TestScreenColorCells(t *testing.T) {
	s := NewScreen(6, 2)
	s.SetColor(1, 1, '<', ColorVirusRed)
	s.DrawTextColor(3, 1, "()", ColorBlue)

	if got := s.GetCell(1, 1); got != (Cell{Rune: '<', Color: ColorVirusRed}) {
		t.Errorf("GetCell(1, 1) = %+v", got)
	}
	if got := s.GetCell(4, 1); got.Rune != ')' || got.Color != ColorBlue {
		t.Errorf("GetCell(4, 1) = %+v", got)
	}

	s.Set(1, 1, '<')
	if got := s.GetCell(1, 1).Color; got != ColorDefault {
		t.Errorf("Set should reset color, got %d", got)
	}
}

func TestScreenDrawTextColorMultibyte(t *testing.T) {
	s := NewScreen(4, 1)
	s.DrawTextColor(0, 0, "│ab", ColorFrame)

	if got := s.Row(0); got != "│ab " {
		t.Errorf("Row(0) = %q", got)
	}
	if got := s.GetCell(2, 0); got != (Cell{Rune: 'b', Color: ColorFrame}) {
		t.Errorf("GetCell(2, 0) = %+v", got)
	}
}
