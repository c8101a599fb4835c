package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"vibeandbuild/internal/daemon"
	"vibeandbuild/internal/fileutil"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the running daemon's status",
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := ctx.apiBaseURL()
			if err != nil {
				return err
			}

			client := &http.Client{Timeout: 5 * time.Second}
			req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, base+"/api/status", nil)
			if err != nil {
				return err
			}
			resp, err := client.Do(req)
			if err != nil {
				return fmt.Errorf("vibed is not reachable at %s: %w", base, err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("status request failed: %s", resp.Status)
			}

			var status daemon.Status
			if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
				return fmt.Errorf("decode status: %w", err)
			}

			out := cmd.OutOrStdout()
			colorize := isTerminal(out)
			running := statusError
			runningMsg := "stopped"
			if status.Running {
				running = statusOK
				runningMsg = "pid " + strconv.Itoa(status.PID)
			}
			fmt.Fprintln(out, renderStatusLine("Daemon", running, runningMsg, colorize))
			fmt.Fprintln(out, renderStatusLine("Capture backend", statusInfo, status.CaptureBackend, colorize))
			fmt.Fprintln(out, renderStatusLine("Projects", statusInfo, strconv.Itoa(status.Projects), colorize))
			fmt.Fprintln(out, renderStatusLine("Experiments", statusInfo, strconv.Itoa(status.Experiments), colorize))
			fmt.Fprintln(out, renderStatusLine("Ideas", statusInfo, strconv.Itoa(status.Ideas), colorize))
			if status.Disk != nil {
				kind := statusOK
				if status.Disk.AvailableBytes < lowDiskThreshold {
					kind = statusWarn
				}
				detail := fmt.Sprintf("%s free of %s",
					fileutil.HumanBytes(status.Disk.AvailableBytes),
					fileutil.HumanBytes(status.Disk.TotalBytes))
				fmt.Fprintln(out, renderStatusLine("Public disk", kind, detail, colorize))
			}
			fmt.Fprintln(out, renderStatusLine("Data dir", statusInfo, status.DataDir, colorize))
			fmt.Fprintln(out, renderStatusLine("Public dir", statusInfo, status.PublicDir, colorize))
			return nil
		},
	}
}

// lowDiskThreshold marks the point where uploads start being risky.
const lowDiskThreshold = 512 << 20
