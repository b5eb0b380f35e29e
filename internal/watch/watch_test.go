package watch

import (
	"testing"

	"github.com/fsnotify/fsnotify"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		event fsnotify.Event
		want  action
	}{
		{"create pdf", fsnotify.Event{Name: "a.pdf", Op: fsnotify.Create}, actionProcess},
		{"create non-pdf", fsnotify.Event{Name: "a.txt", Op: fsnotify.Create}, actionIgnore},
		{"write pdf", fsnotify.Event{Name: "a.pdf", Op: fsnotify.Write}, actionIgnore},
		{"chmod pdf", fsnotify.Event{Name: "a.pdf", Op: fsnotify.Chmod}, actionIgnore},
		// A rename carries the departing path; the new path arrives as a
		// separate Create event.
		{"rename pdf away", fsnotify.Event{Name: "a.pdf", Op: fsnotify.Rename}, actionForget},
		{"remove pdf", fsnotify.Event{Name: "a.pdf", Op: fsnotify.Remove}, actionForget},
		{"remove non-pdf", fsnotify.Event{Name: "a.txt", Op: fsnotify.Remove}, actionForget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classify(tt.event); got != tt.want {
				t.Errorf("classify(%v) = %v, want %v", tt.event, got, tt.want)
			}
		})
	}
}

func TestIsPDF(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"book.pdf", true},
		{"BOOK.PDF", true},
		{"scan.Pdf", true},
		{"notes.txt", false},
		{"archive.pdf.gz", false},
		{"pdf", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPDF(tt.name); got != tt.want {
				t.Errorf("IsPDF(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}
