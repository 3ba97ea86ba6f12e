package training

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/kosharny/ThunderpickMove/internal/engine"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recorder struct {
	mu   sync.Mutex
	acts []engine.Activity
}

func (r *recorder) CompleteActivity(ctx context.Context, a engine.Activity) *engine.UserProgress {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.acts = append(r.acts, a)
	p := engine.NewUserProgress()
	p.ActivitiesCompleted = len(r.acts)
	return p
}

func TestRunCompletesDrill(t *testing.T) {
	d, ok := FindDrill("poker-face")
	require.True(t, ok)

	rec := &recorder{}
	var ticks []time.Duration
	p, err := NewSession(d, rec, WithTickInterval(time.Millisecond)).
		Run(context.Background(), func(r time.Duration) { ticks = append(ticks, r) })
	require.NoError(t, err)
	require.NotNil(t, p)

	assert.Len(t, ticks, 30)
	assert.Equal(t, 29*time.Second, ticks[0])
	assert.Equal(t, time.Duration(0), ticks[len(ticks)-1])
	require.Len(t, rec.acts, 1)
	assert.Equal(t, engine.ActivityTraining, rec.acts[0].Type)
	assert.Equal(t, 20, rec.acts[0].XPReward)
}

func TestRunCancelledGivesNoReward(t *testing.T) {
	d, ok := FindDrill("Power Posing")
	require.True(t, ok)

	ctx, cancel := context.WithCancel(context.Background())
	rec := &recorder{}
	_, err := NewSession(d, rec, WithTickInterval(time.Millisecond)).
		Run(ctx, func(r time.Duration) {
			if r <= 100*time.Second {
				cancel()
			}
		})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Empty(t, rec.acts)
}

func TestDrillCatalog(t *testing.T) {
	ds := Drills()
	require.Len(t, ds, 3)
	for _, d := range ds {
		assert.Equal(t, engine.ActivityTraining, d.Activity.Type, d.Name)
		assert.Positive(t, d.Duration, d.Name)
	}
	_, ok := FindDrill("moonwalk")
	assert.False(t, ok)
}

func TestRunRejectsEmptyDrill(t *testing.T) {
	_, err := NewSession(Drill{Name: "empty"}, &recorder{}).Run(context.Background(), nil)
	assert.Error(t, err)
}
