package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ardnew/nanokvm/pkg"
	"github.com/ardnew/nanokvm/pkg/prof"
	"github.com/ardnew/nanokvm/video"
)

// captureCmd pumps MJPEG frames from the video device to disk.
func (a *app) captureCmd() *cobra.Command {
	var (
		device     string
		outDir     string
		frames     int
		duration   time.Duration
		cpuProfile string
		memProfile string
	)

	cmd := &cobra.Command{
		Use:   "capture",
		Short: "Record MJPEG frames from the capture device",
		Long: `Record MJPEG frames from the capture device into a session directory.
The device must produce a raw MJPEG byte stream; a V4L2 device node in
MJPEG mode or a piped file both work. Recording stops after --frames
frames, after --duration, or on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if device == "" {
				device = a.cfg.Video.Device
			}
			if device == "" {
				return errors.Wrap(pkg.ErrInvalidParameter,
					"no capture device configured (use --device)")
			}
			if outDir == "" {
				outDir = a.cfg.Video.OutDir
			}

			if cpuProfile != "" {
				if err := prof.StartCPU(cpuProfile); err != nil {
					return err
				}
				defer prof.StopCPU()
			}
			if memProfile != "" {
				defer func() {
					if err := prof.WriteHeap(memProfile); err != nil {
						pkg.LogWarn(pkg.ComponentCLI, "heap profile failed", "error", err)
					}
				}()
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if duration > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, duration)
				defer cancel()
			}

			return capture(ctx, cmd, device, outDir, frames, a.cfg.Video.MaxFrame)
		},
	}

	cmd.Flags().StringVar(&device, "device", "", "MJPEG stream device or file")
	cmd.Flags().StringVar(&outDir, "out", "", "capture session root directory")
	cmd.Flags().IntVar(&frames, "frames", 0, "stop after this many frames (0 for unlimited)")
	cmd.Flags().DurationVar(&duration, "duration", 0, "stop after this long (0 for unlimited)")
	cmd.Flags().StringVar(&cpuProfile, "cpuprofile", "", "write a CPU profile to this file")
	cmd.Flags().StringVar(&memProfile, "memprofile", "", "write a heap profile to this file")
	return cmd
}

// capture runs the pump/recorder loop until the frame limit, the
// context, or the stream ends.
func capture(ctx context.Context, cmd *cobra.Command, device, outDir string, frames, maxFrame int) error {
	pump := video.NewPump(video.NewDeviceSource(device), maxFrame)
	pump.Start(ctx)
	defer pump.Stop()

	rec, err := video.NewRecorder(outDir)
	if err != nil {
		return err
	}
	closed := false
	defer func() {
		if !closed {
			rec.Close()
		}
	}()

	for frames <= 0 || rec.Frames() < frames {
		frame, err := pump.Next(ctx)
		if err != nil {
			// Cancellation and end-of-stream both finish the session.
			if errors.Is(err, context.Canceled) ||
				errors.Is(err, context.DeadlineExceeded) ||
				pump.Err() == nil {
				break
			}
			return err
		}
		if err := rec.WriteFrame(frame); err != nil {
			return err
		}
	}

	// A failed stream-file flush must fail the session, not just leak
	// out of a deferred close.
	closed = true
	if err := rec.Close(); err != nil {
		return err
	}

	stats := pump.Stats()
	fmt.Fprintf(cmd.OutOrStdout(), "session %s: %d frames (%d bytes, %d dropped) in %s\n",
		rec.Session(), rec.Frames(), rec.Bytes(), stats.Dropped, rec.Dir())
	return nil
}
