package scheduler

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countingJob(name string, runs *atomic.Int64) Job {
	return Job{
		Name:     name,
		Spec:     "0 * * * *",
		Schedule: "Every hour",
		Run: func(ctx context.Context) error {
			runs.Add(1)
			return nil
		},
	}
}

func TestStartStopIdempotent(t *testing.T) {
	var runs atomic.Int64
	s := New(countingJob("noop", &runs))

	s.Start()
	s.Start() // second start is a no-op
	assert.True(t, s.GetStatus().Running)

	s.Stop()
	assert.False(t, s.GetStatus().Running)
	s.Stop() // second stop is a no-op
	assert.False(t, s.GetStatus().Running)
}

func TestStatusListsJobs(t *testing.T) {
	var runs atomic.Int64
	s := New(countingJob("alpha", &runs), countingJob("beta", &runs))

	status := s.GetStatus()
	assert.False(t, status.Running)
	assert.Equal(t, 2, status.ActiveJobs)
	require.Len(t, status.Jobs, 2)
	assert.Equal(t, "alpha", status.Jobs[0].Name)
	assert.Equal(t, "Every hour", status.Jobs[0].Schedule)
}

func TestRunJobByName(t *testing.T) {
	var alpha, beta atomic.Int64
	s := New(countingJob("alpha", &alpha), countingJob("beta", &beta))

	require.NoError(t, s.RunJob(context.Background(), "beta"))
	assert.Zero(t, alpha.Load())
	assert.Equal(t, int64(1), beta.Load())
}

func TestRunJobUnknownName(t *testing.T) {
	s := New()
	err := s.RunJob(context.Background(), "ghost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost")
}

func TestRunJobWorksWhileStopped(t *testing.T) {
	// manual triggers bypass the cron loop entirely
	var runs atomic.Int64
	s := New(countingJob("noop", &runs))

	require.NoError(t, s.RunJob(context.Background(), "noop"))
	assert.Equal(t, int64(1), runs.Load())
}
