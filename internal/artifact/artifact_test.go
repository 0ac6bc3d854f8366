package artifact_test

import (
	"math/big"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/amazingrofa/geofac/engine"
	"github.com/amazingrofa/geofac/internal/artifact"
)

func TestNewRecordsSuccessfulResult(t *testing.T) {
	res := engine.Result{
		Success:     true,
		P:           big.NewInt(32749),
		Q:           big.NewInt(32771),
		Duration:    5 * time.Second,
		CfgSnapshot: engine.DefaultConfig(),
	}
	rec := artifact.New(res, time.Unix(0, 0).UTC())

	require.NoError(t, uuid.Validate(rec.RunID))
	require.True(t, rec.Success)
	require.Equal(t, "32749", rec.P)
	require.Equal(t, "32771", rec.Q)
	require.Empty(t, rec.Reason)
}

func TestNewRecordsFailureReason(t *testing.T) {
	res := engine.Result{
		Success:     false,
		Reason:      engine.OutOfGate,
		CfgSnapshot: engine.DefaultConfig(),
	}
	rec := artifact.New(res, time.Unix(0, 0).UTC())

	require.False(t, rec.Success)
	require.Equal(t, "OUT_OF_GATE", rec.Reason)
	require.Empty(t, rec.P)
	require.Empty(t, rec.Q)
}
