package core

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// StopRecorder records the order of service starts and stops
type StopRecorder struct {
	mu     sync.Mutex
	events []string
}

func (r *StopRecorder) record(event string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *StopRecorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

// recordingService records when it is started and stopped
type recordingService struct {
	id       string
	recorder *StopRecorder
	startErr error
}

func (s *recordingService) Start(ctx context.Context) error {
	s.recorder.record("start " + s.id)
	return s.startErr
}

func (s *recordingService) Stop() {
	s.recorder.record("stop " + s.id)
}

func TestRegistry_Register(t *testing.T) {
	registry := NewRegistry()
	assert.Equal(t, 0, registry.Len())

	recorder := &StopRecorder{}
	registry.Register(&recordingService{id: "cache", recorder: recorder})
	registry.Register(&recordingService{id: "api", recorder: recorder})
	assert.Equal(t, 2, registry.Len())
}

func TestRegistry_StartAllAndStopInReverseOrder(t *testing.T) {
	registry := NewRegistry()
	recorder := &StopRecorder{}

	for _, id := range []string{"cache", "vault", "api"} {
		registry.Register(&recordingService{id: id, recorder: recorder})
	}

	require.NoError(t, registry.StartAll(context.Background()))
	registry.StopAll()

	assert.Equal(t, []string{
		"start cache", "start vault", "start api",
		"stop api", "stop vault", "stop cache",
	}, recorder.Events())
}

func TestRegistry_StartFailureStopsStartedServices(t *testing.T) {
	registry := NewRegistry()
	recorder := &StopRecorder{}
	startErr := errors.New("bad interval")

	registry.Register(&recordingService{id: "cache", recorder: recorder})
	registry.Register(&recordingService{id: "vault", recorder: recorder})
	registry.Register(&recordingService{id: "equity", recorder: recorder, startErr: startErr})
	registry.Register(&recordingService{id: "api", recorder: recorder})

	err := registry.StartAll(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, startErr)

	assert.Equal(t, []string{
		"start cache", "start vault", "start equity",
		"stop vault", "stop cache",
	}, recorder.Events())

	// Nothing left to stop
	registry.StopAll()
	assert.Len(t, recorder.Events(), 5)
}

func TestRegistry_StopWithoutStart(t *testing.T) {
	registry := NewRegistry()
	recorder := &StopRecorder{}
	registry.Register(&recordingService{id: "cache", recorder: recorder})

	registry.StopAll()
	assert.Empty(t, recorder.Events())
}
