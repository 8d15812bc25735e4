// Package mood defines the result model shared between the analysis client
// and the presentation layer: mood labels, tracks, and the tagged union of
// the two backend result shapes.
package mood

import "strings"

// Mood is one of the fixed set of emotion labels the backend can report.
type Mood string

// Known mood labels.
const (
	Happy     Mood = "happy"
	Sad       Mood = "sad"
	Angry     Mood = "angry"
	Neutral   Mood = "neutral"
	Surprised Mood = "surprised"
	Fearful   Mood = "fearful"
	Disgusted Mood = "disgusted"
)

// All returns every known mood label in a stable order.
func All() []Mood {
	return []Mood{Happy, Sad, Angry, Neutral, Surprised, Fearful, Disgusted}
}

// Parse normalizes a label string to a Mood. Unknown labels are passed
// through unchanged so new backend labels degrade gracefully instead of
// failing; IsKnown reports whether the label is one of the fixed set.
func Parse(s string) Mood {
	return Mood(strings.ToLower(strings.TrimSpace(s)))
}

// IsKnown reports whether m is one of the fixed mood labels.
func (m Mood) IsKnown() bool {
	switch m {
	case Happy, Sad, Angry, Neutral, Surprised, Fearful, Disgusted:
		return true
	}
	return false
}

// Title returns the label with its first letter capitalized, for display.
func (m Mood) Title() string {
	s := string(m)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Emoji returns the emoji used to represent the mood in the UI.
// Unknown moods fall back to a generic music note.
func (m Mood) Emoji() string {
	switch m {
	case Happy:
		return "😊"
	case Sad:
		return "😢"
	case Angry:
		return "😠"
	case Neutral:
		return "😐"
	case Surprised:
		return "😮"
	case Fearful:
		return "😨"
	case Disgusted:
		return "🤢"
	}
	return "🎵"
}
