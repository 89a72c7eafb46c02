package services

import (
	"context"
	"sync"

	"github.com/nexabag/deltamobile/internal/client/api"
	"github.com/nexabag/deltamobile/internal/logging"
)

// UpdateStatus is the tri-state outcome of an update check. Checked is
// false until the first invocation completes; RemoteVersion is empty until
// a fetch has succeeded.
type UpdateStatus struct {
	Checked         bool
	UpdateAvailable bool
	RemoteVersion   string
}

// UpdateService compares the bundled version against the published version
// descriptor.
//
// Comparison policy: exact string inequality: any remote version different
// from the local one counts as an available update. Decimal parsing is
// deliberately not used: parseFloat-style comparison mis-orders versions
// like "2.10" vs "2.9".
//
// The check is safe to call repeatedly (it runs on start and on every entry
// to the profile view). Invocations may overlap and complete out of order;
// only the latest invocation is allowed to publish its result, a superseded
// completion is discarded.
type UpdateService struct {
	client       api.Client
	log          logging.Logger
	localVersion string

	mu     sync.Mutex
	seq    uint64
	status UpdateStatus
}

// NewUpdateService constructs the update checker for the given bundled
// version string.
func NewUpdateService(client api.Client, localVersion string, log logging.Logger) *UpdateService {
	return &UpdateService{client: client, localVersion: localVersion, log: log}
}

// LocalVersion returns the bundled version string.
func (s *UpdateService) LocalVersion() string { return s.localVersion }

// Status returns the last published check result.
func (s *UpdateService) Status() UpdateStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Check fetches the remote version and publishes the comparison result,
// unless a newer invocation has started in the meantime. Failures are
// non-fatal: they are logged and published as "no update available" (never
// as a false positive).
func (s *UpdateService) Check(ctx context.Context) UpdateStatus {
	s.mu.Lock()
	s.seq++
	invocation := s.seq
	s.mu.Unlock()

	remote, err := s.client.LatestVersion(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if invocation != s.seq {
		// a newer check started while this one was in flight; its result wins
		s.log.Debug(ctx, "discarding stale update check result", "invocation", invocation, "latest", s.seq)
		return s.status
	}

	if err != nil {
		// silent by design: the user stays on "up to date"
		s.log.Warn(ctx, "update check failed", "error", err)
		s.status = UpdateStatus{Checked: true}
		return s.status
	}

	s.status = UpdateStatus{
		Checked:         true,
		UpdateAvailable: remote != s.localVersion,
		RemoteVersion:   remote,
	}
	return s.status
}
