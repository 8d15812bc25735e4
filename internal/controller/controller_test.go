package controller

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/euphonicai/go-mood-playlist/internal/capture"
	"github.com/euphonicai/go-mood-playlist/internal/mood"
)

type fakeService struct {
	detectFn  func(ctx context.Context, imageData, language string) (*mood.ImageResult, error)
	analyzeFn func(ctx context.Context, text, language string, limit int) (*mood.TextResult, error)
	langsFn   func(ctx context.Context) []string

	detectCalls  atomic.Int64
	analyzeCalls atomic.Int64
}

func (f *fakeService) DetectEmotion(ctx context.Context, imageData, language string) (*mood.ImageResult, error) {
	f.detectCalls.Add(1)
	if f.detectFn == nil {
		return &mood.ImageResult{Emotion: mood.Happy}, nil
	}
	return f.detectFn(ctx, imageData, language)
}

func (f *fakeService) AnalyzeText(ctx context.Context, text, language string, limit int) (*mood.TextResult, error) {
	f.analyzeCalls.Add(1)
	if f.analyzeFn == nil {
		return &mood.TextResult{Mood: mood.Happy}, nil
	}
	return f.analyzeFn(ctx, text, language, limit)
}

func (f *fakeService) SupportedLanguages(ctx context.Context) []string {
	if f.langsFn == nil {
		return []string{"english", "hindi"}
	}
	return f.langsFn(ctx)
}

func TestBootstrap(t *testing.T) {
	c := New(&fakeService{})
	c.Bootstrap(context.Background())

	sess := c.Snapshot()
	assert.Equal(t, []string{"english", "hindi"}, sess.SupportedLanguages)
	assert.Equal(t, "english", sess.SelectedLanguage)
	assert.Equal(t, StateAwaitingCapture, sess.State())
}

func TestSubmitTextSuccess(t *testing.T) {
	svc := &fakeService{
		analyzeFn: func(_ context.Context, text, language string, limit int) (*mood.TextResult, error) {
			assert.Equal(t, "I feel great today", text)
			assert.Equal(t, "english", language)
			return &mood.TextResult{
				Mood:            mood.Happy,
				Recommendations: []mood.Track{{ID: "t1", Name: "Song"}},
			}, nil
		},
	}
	c := New(svc)
	c.Bootstrap(context.Background())

	before := c.Snapshot().RefreshToken
	err := c.SubmitText(context.Background(), "  I feel great today  ")
	require.NoError(t, err)

	sess := c.Snapshot()
	assert.Equal(t, StateReady, sess.State())
	assert.Equal(t, StatusIdle, sess.Status)
	assert.Equal(t, mood.Happy, sess.Result.PrimaryMood())
	assert.NotEmpty(t, sess.Result.Tracks())
	assert.True(t, sess.Result.PrimaryMood().IsKnown())
	assert.Greater(t, sess.RefreshToken, before)
	assert.False(t, sess.LastRefreshed.IsZero())
}

func TestSubmitTextEmptyRejected(t *testing.T) {
	svc := &fakeService{}
	c := New(svc)

	err := c.SubmitText(context.Background(), "   ")
	assert.ErrorIs(t, err, capture.ErrEmptyInput)
	assert.Equal(t, int64(0), svc.analyzeCalls.Load())
	assert.Equal(t, StatusIdle, c.Snapshot().Status)
}

func TestSubmitImageFailureDiscardsArtifact(t *testing.T) {
	unreachable := errors.New("Cannot connect to the backend server. Please make sure it is running.")
	svc := &fakeService{
		detectFn: func(context.Context, string, string) (*mood.ImageResult, error) {
			return nil, unreachable
		},
	}
	c := New(svc)

	err := c.SubmitImage(context.Background(), "data:image/jpeg;base64,aGVsbG8=")
	require.Error(t, err)

	sess := c.Snapshot()
	assert.Equal(t, StateFailed, sess.State())
	assert.Equal(t, unreachable.Error(), sess.ErrorMessage)
	assert.Empty(t, sess.CapturedArtifact, "user must recapture after a failed detection")
}

func TestCaptureFailedIssuesNoNetworkCall(t *testing.T) {
	svc := &fakeService{}
	c := New(svc)

	c.CaptureFailed("Failed to capture image")

	sess := c.Snapshot()
	assert.Equal(t, StateAwaitingCapture, sess.State())
	assert.Equal(t, "Failed to capture image", sess.ErrorMessage)
	assert.Equal(t, int64(0), svc.detectCalls.Load())
	assert.Equal(t, int64(0), svc.analyzeCalls.Load())
}

func TestRefreshWithoutResultIsNoOp(t *testing.T) {
	svc := &fakeService{}
	c := New(svc)

	require.NoError(t, c.Refresh(context.Background()))
	assert.Equal(t, int64(0), svc.detectCalls.Load())
	assert.Equal(t, int64(0), svc.analyzeCalls.Load())
	assert.Equal(t, StatusIdle, c.Snapshot().Status)
}

func TestRefreshReanalyzesMoodLabel(t *testing.T) {
	var lastText string
	svc := &fakeService{
		analyzeFn: func(_ context.Context, text, _ string, _ int) (*mood.TextResult, error) {
			lastText = text
			return &mood.TextResult{Mood: mood.Sad, Recommendations: []mood.Track{{ID: "t2"}}}, nil
		},
	}
	c := New(svc)

	require.NoError(t, c.SubmitText(context.Background(), "feeling blue"))
	require.NoError(t, c.Refresh(context.Background()))

	assert.Equal(t, "sad", lastText, "refresh re-analyzes the current mood label")
	assert.Equal(t, int64(2), svc.analyzeCalls.Load())
}

func TestRefreshRedetectsStoredArtifact(t *testing.T) {
	var lastImage string
	svc := &fakeService{
		detectFn: func(_ context.Context, imageData, _ string) (*mood.ImageResult, error) {
			lastImage = imageData
			return &mood.ImageResult{Emotion: mood.Surprised}, nil
		},
	}
	c := New(svc)

	payload := "data:image/jpeg;base64,aGVsbG8="
	require.NoError(t, c.SubmitImage(context.Background(), payload))
	require.NoError(t, c.Refresh(context.Background()))

	assert.Equal(t, payload, lastImage)
	assert.Equal(t, int64(2), svc.detectCalls.Load())
}

func TestSetLanguage(t *testing.T) {
	t.Run("without result is a plain setter", func(t *testing.T) {
		svc := &fakeService{}
		c := New(svc)

		require.NoError(t, c.SetLanguage(context.Background(), "hindi"))
		assert.Equal(t, "hindi", c.Snapshot().SelectedLanguage)
		assert.Equal(t, int64(0), svc.analyzeCalls.Load())
	})

	t.Run("with result re-issues the analysis", func(t *testing.T) {
		var lastLanguage string
		svc := &fakeService{
			analyzeFn: func(_ context.Context, _, language string, _ int) (*mood.TextResult, error) {
				lastLanguage = language
				return &mood.TextResult{Mood: mood.Happy}, nil
			},
		}
		c := New(svc)

		require.NoError(t, c.SubmitText(context.Background(), "doing fine"))
		require.NoError(t, c.SetLanguage(context.Background(), "spanish"))

		assert.Equal(t, "spanish", lastLanguage)
		assert.Equal(t, int64(2), svc.analyzeCalls.Load())
	})

	t.Run("empty language rejected", func(t *testing.T) {
		c := New(&fakeService{})
		assert.ErrorIs(t, c.SetLanguage(context.Background(), "  "), ErrNoLanguage)
	})
}

func TestSetModeKeepsResult(t *testing.T) {
	c := New(&fakeService{})

	require.NoError(t, c.SubmitImage(context.Background(), "data:image/jpeg;base64,aGVsbG8="))
	require.NotNil(t, c.Snapshot().Result)

	require.NoError(t, c.SetMode(ModeText))

	sess := c.Snapshot()
	assert.Equal(t, ModeText, sess.InputMode)
	assert.Empty(t, sess.CapturedArtifact, "mode switch clears the artifact")
	assert.NotNil(t, sess.Result, "mode switch keeps the prior result visible")

	assert.ErrorIs(t, c.SetMode("voice"), ErrUnknownMode)
}

func TestResetClearsEverythingTogether(t *testing.T) {
	svc := &fakeService{
		detectFn: func(context.Context, string, string) (*mood.ImageResult, error) {
			return nil, errors.New("boom")
		},
	}
	c := New(svc)

	_ = c.SubmitImage(context.Background(), "data:image/jpeg;base64,aGVsbG8=")
	require.Equal(t, StateFailed, c.Snapshot().State())

	c.Reset()

	sess := c.Snapshot()
	assert.Empty(t, sess.CapturedArtifact)
	assert.Nil(t, sess.Result)
	assert.Empty(t, sess.ErrorMessage)
	assert.Equal(t, StateAwaitingCapture, sess.State())
}

func TestStaleResponseDoesNotOverwriteNewerState(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	svc := &fakeService{
		analyzeFn: func(_ context.Context, text, _ string, _ int) (*mood.TextResult, error) {
			if text == "slow" {
				close(started)
				<-release
				return &mood.TextResult{Mood: mood.Angry}, nil
			}
			return &mood.TextResult{Mood: mood.Happy, Recommendations: []mood.Track{{ID: "t1"}}}, nil
		},
	}
	c := New(svc)

	done := make(chan error, 1)
	go func() {
		done <- c.SubmitText(context.Background(), "slow")
	}()
	<-started

	// A second trigger supersedes the in-flight call.
	require.NoError(t, c.SubmitText(context.Background(), "fast"))
	require.Equal(t, mood.Happy, c.Snapshot().Result.PrimaryMood())

	close(release)
	require.NoError(t, <-done, "a superseded call settles without error")

	sess := c.Snapshot()
	assert.Equal(t, mood.Happy, sess.Result.PrimaryMood(), "stale response must not overwrite newer state")
	assert.Equal(t, StatusIdle, sess.Status, "controller never rests in Loading")
}

func TestSupersededFailureKeepsNewerState(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	svc := &fakeService{
		analyzeFn: func(_ context.Context, text, _ string, _ int) (*mood.TextResult, error) {
			if text == "slow" {
				close(started)
				<-release
				return nil, errors.New("late failure")
			}
			return &mood.TextResult{Mood: mood.Neutral}, nil
		},
	}
	c := New(svc)

	done := make(chan error, 1)
	go func() {
		done <- c.SubmitText(context.Background(), "slow")
	}()
	<-started

	require.NoError(t, c.SubmitText(context.Background(), "fast"))
	close(release)
	require.NoError(t, <-done)

	sess := c.Snapshot()
	assert.Equal(t, StatusIdle, sess.Status)
	assert.Empty(t, sess.ErrorMessage, "a superseded failure must not surface")
}

func TestTickerMarksTimeWithoutAnalysis(t *testing.T) {
	svc := &fakeService{}
	c := New(svc, WithTickPeriod(10*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c.StartTicker(ctx)

	require.Eventually(t, func() bool {
		return !c.Snapshot().TickedAt.IsZero()
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, int64(0), svc.detectCalls.Load())
	assert.Equal(t, int64(0), svc.analyzeCalls.Load())
	assert.Equal(t, StatusIdle, c.Snapshot().Status)
}
