// Package artifact builds the optional structured record a factor call
// may emit: the full Config, an environment fingerprint, and either the
// certified pair or the failure reason. It is never part of the core contract — Factor's
// sole required output is engine.Result.
package artifact

import (
	"os"
	"runtime"
	"time"

	"github.com/google/uuid"

	"github.com/amazingrofa/geofac/engine"
)

// Record is a structured snapshot of one completed factor call, suitable
// for persistence alongside the in-process Result.
type Record struct {
	RunID       string        `yaml:"run_id" json:"run_id"`
	Hostname    string        `yaml:"hostname" json:"hostname"`
	GoVersion   string        `yaml:"go_version" json:"go_version"`
	GOOS        string        `yaml:"goos" json:"goos"`
	GOARCH      string        `yaml:"goarch" json:"goarch"`
	Timestamp   time.Time     `yaml:"timestamp" json:"timestamp"`
	Config      engine.Config `yaml:"config" json:"config"`
	Success     bool          `yaml:"success" json:"success"`
	P           string        `yaml:"p,omitempty" json:"p,omitempty"`
	Q           string        `yaml:"q,omitempty" json:"q,omitempty"`
	Reason      string        `yaml:"reason,omitempty" json:"reason,omitempty"`
	Duration    time.Duration `yaml:"duration" json:"duration"`
}

// New builds a Record from a completed Result, stamping a fresh run ID
// and the current environment fingerprint. at is the wall-clock time the
// caller observed the result (passed in rather than read internally, so
// callers control timestamp provenance).
func New(res engine.Result, at time.Time) Record {
	hostname, _ := os.Hostname()

	r := Record{
		RunID:     uuid.New().String(),
		Hostname:  hostname,
		GoVersion: runtime.Version(),
		GOOS:      runtime.GOOS,
		GOARCH:    runtime.GOARCH,
		Timestamp: at,
		Config:    res.CfgSnapshot,
		Success:   res.Success,
		Duration:  res.Duration,
	}
	if res.Success {
		r.P = res.P.String()
		r.Q = res.Q.String()
	} else {
		r.Reason = string(res.Reason)
	}
	return r
}
