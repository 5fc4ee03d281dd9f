package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/ctms-cli/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthToken exchanges the configured client credentials for a bearer
// token and prints the token-endpoint response.
func (r *Runner) AuthToken(ctx context.Context, cmd *cli.Command) error {
	token, err := r.authenticate(ctx)
	if err != nil {
		return err
	}

	return r.writeJSON(token, cmd.Bool("pretty"))
}

// AuthStatus checks the API heartbeat.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	resp, err := r.ctms.Heartbeat(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		r.writePlain("unhealthy (status %d)\n", resp.StatusCode)
		return fmt.Errorf("%w: heartbeat status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	r.writePlain("healthy\n")
	if resp.IsJSON {
		return r.writeJSON(resp.JSONData, true)
	}
	return nil
}
