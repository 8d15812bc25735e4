package mood

// ImageResult is the backend response shape for emotion detection from a
// captured photograph.
type ImageResult struct {
	Emotion       Mood                  `json:"emotion"`
	Confidence    float64               `json:"confidence"`
	EmotionScores map[string]float64    `json:"emotion_scores"`
	Playlist      []Track               `json:"playlist"`
	Recommended   []RecommendedPlaylist `json:"recommended_playlists,omitempty"`
}

// SentimentScores is the VADER-style sentiment vector attached to a
// text-derived result.
type SentimentScores struct {
	Negative float64 `json:"neg"`
	Neutral  float64 `json:"neu"`
	Positive float64 `json:"pos"`
	Compound float64 `json:"compound"`
}

// TextResult is the backend response shape for free-form text analysis.
type TextResult struct {
	Sentiment       SentimentScores `json:"sentiment_scores"`
	Mood            Mood            `json:"mood"`
	Recommendations []Track         `json:"recommendations"`
}

// Result is the union of the two backend result shapes. Exactly one variant
// is set; callers read the mood label and tracks through the accessors and
// never branch on which variant is populated.
type Result struct {
	image *ImageResult
	text  *TextResult
}

// FromImage wraps an image-derived result.
func FromImage(r *ImageResult) *Result {
	if r == nil {
		return nil
	}
	return &Result{image: r}
}

// FromText wraps a text-derived result.
func FromText(r *TextResult) *Result {
	if r == nil {
		return nil
	}
	return &Result{text: r}
}

// PrimaryMood returns the detected mood label regardless of variant.
func (r *Result) PrimaryMood() Mood {
	switch {
	case r == nil:
		return ""
	case r.image != nil:
		return r.image.Emotion
	case r.text != nil:
		return r.text.Mood
	}
	return ""
}

// Tracks returns the recommended track collection regardless of variant.
// The result is never nil.
func (r *Result) Tracks() []Track {
	switch {
	case r == nil:
	case r.image != nil:
		if r.image.Playlist != nil {
			return r.image.Playlist
		}
	case r.text != nil:
		if r.text.Recommendations != nil {
			return r.text.Recommendations
		}
	}
	return []Track{}
}

// ConfidenceScores returns the per-label score mapping for image-derived
// results and nil for text-derived ones. The scores are reported as-is;
// they are not required to sum to 1.
func (r *Result) ConfidenceScores() map[string]float64 {
	if r == nil || r.image == nil {
		return nil
	}
	return r.image.EmotionScores
}

// Confidence returns the primary-label confidence for image-derived results.
// The second return is false for text-derived results.
func (r *Result) Confidence() (float64, bool) {
	if r == nil || r.image == nil {
		return 0, false
	}
	return r.image.Confidence, true
}

// Sentiment returns the sentiment vector for text-derived results.
// The second return is false for image-derived results.
func (r *Result) Sentiment() (SentimentScores, bool) {
	if r == nil || r.text == nil {
		return SentimentScores{}, false
	}
	return r.text.Sentiment, true
}

// Recommended returns the optional named sub-playlists, present only on
// image-derived results.
func (r *Result) Recommended() []RecommendedPlaylist {
	if r == nil || r.image == nil {
		return nil
	}
	return r.image.Recommended
}
