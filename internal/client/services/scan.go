package services

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/nexabag/deltamobile/internal/client/api"
	"github.com/nexabag/deltamobile/internal/client/repositories/session"
	"github.com/nexabag/deltamobile/internal/common"
	"github.com/nexabag/deltamobile/internal/logging"
)

// ScanCooldown is how long the scanner stays debounced after a decode.
const ScanCooldown = 2000 * time.Millisecond

// afterFunc is a test seam for time.AfterFunc.
var afterFunc = time.AfterFunc

// ScanService owns the scan-debounce state of QR redemption. A decode while
// debounced is dropped without a network call. Otherwise exactly one
// verification request is issued and the scanner re-arms after a fixed
// wall-clock cool-down.
//
// The cool-down timer and the request lifetime are deliberately decoupled:
// a slow verification neither extends nor shortens the window.
type ScanService struct {
	client api.Client
	db     *sql.DB
	log    logging.Logger

	cooldown time.Duration

	mu        sync.Mutex
	debounced bool
}

// NewScanService constructs the scan controller. The user id carried on
// verification requests is read from the persisted session store at decode
// time.
func NewScanService(client api.Client, db *sql.DB, log logging.Logger) *ScanService {
	return &ScanService{client: client, db: db, log: log, cooldown: ScanCooldown}
}

// Ready reports whether a decode would currently be accepted.
func (s *ScanService) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.debounced
}

// OnDecode handles one successful barcode decode. While debounced it
// returns common.ErrScanDebounced and issues nothing. Otherwise it flips to
// debounced, arms the re-arm timer, and performs a single verification
// request. The returned result's Message is shown to the user verbatim for
// both accepted and rejected tokens.
func (s *ScanService) OnDecode(ctx context.Context, payload string) (*api.VerifyResult, error) {
	if payload == "" {
		return nil, fmt.Errorf("%w: empty scan payload", common.ErrValidation)
	}

	s.mu.Lock()
	if s.debounced {
		s.mu.Unlock()
		return nil, common.ErrScanDebounced
	}
	s.debounced = true
	s.mu.Unlock()

	// wall-clock window starting at the decode, armed before the request
	// so a slow response cannot stretch it
	afterFunc(s.cooldown, s.rearm)

	userID, ok, err := session.NewSQLiteRepository(s.db).Get(ctx, common.KeyUserID)
	if err != nil {
		return nil, fmt.Errorf("reading session: %w", err)
	}
	if !ok || userID == "" {
		return nil, common.ErrNotLoggedIn
	}

	result, err := s.client.VerifyQR(ctx, payload, userID)
	if err != nil {
		s.log.Error(ctx, "qr verification failed", "error", err)
		return nil, err
	}
	return result, nil
}

func (s *ScanService) rearm() {
	s.mu.Lock()
	s.debounced = false
	s.mu.Unlock()
}
