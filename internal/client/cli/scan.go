package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/nexabag/deltamobile/internal/common"
)

// Scan redeems a decoded QR payload. The server's message is shown verbatim
// whether the token was accepted or rejected; decodes inside the cool-down
// window are dropped without a request.
func (a *App) Scan(ctx context.Context, payload string) error {
	result, err := a.scanner.OnDecode(ctx, payload)
	switch {
	case err == nil:
		label := "Error"
		if result.Success {
			label = "Success"
		}
		fmt.Fprintf(a.out, "%s: %s\n", label, result.Message)
	case errors.Is(err, common.ErrScanDebounced):
		fmt.Fprintln(a.out, "Scanner is cooling down, try again in a moment")
	case errors.Is(err, common.ErrNotLoggedIn):
		fmt.Fprintln(a.out, "Log in before scanning")
	default:
		fmt.Fprintln(a.out, "Verification failed, check your connection")
	}
	return err
}
