package services

import (
	"context"
	"sync"

	"finboard/internal/events"
	"finboard/internal/models"
	"finboard/internal/store"
)

// racingProfiles runs onFirstMiss right after the first GetProfile miss, to
// simulate another writer creating the profile in between.
type racingProfiles struct {
	store.Profiles
	once        sync.Once
	onFirstMiss func()
}

func (r *racingProfiles) GetProfile(ctx context.Context, uid string) (*models.UserProfile, error) {
	p, err := r.Profiles.GetProfile(ctx, uid)
	if err != nil {
		r.once.Do(r.onFirstMiss)
	}
	return p, err
}

// fakeAnalyzer records calls and returns canned results.
type fakeAnalyzer struct {
	mu          sync.Mutex
	calls       int
	adviceCalls int
	lastRequest models.AnalysisRequest
	lastAdvice  models.AdviceRequest
	result      *models.AnalysisResult
	advice      *models.Advice
	err         error
	adviceErr   error
}

func (f *fakeAnalyzer) AnalyzeSpending(_ context.Context, req models.AnalysisRequest) (*models.AnalysisResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastRequest = req
	return f.result, f.err
}

func (f *fakeAnalyzer) GenerateAdvice(_ context.Context, req models.AdviceRequest) (*models.Advice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.adviceCalls++
	f.lastAdvice = req
	return f.advice, f.adviceErr
}

// recordingPublisher keeps every published event.
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) Close() {}
