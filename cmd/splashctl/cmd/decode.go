package cmd

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/rockingship/splash.go/pkg/splash"
	"github.com/spf13/cobra"
)

// NewDecodeCmd creates the decode cobra command
func NewDecodeCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode <stream.splash>",
		Short: "decode a .splash stream to PNG frames",
		Long:  "Replays a .splash stream and writes each reconstructed frame as a numbered PNG.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outDir, _ := cmd.Flags().GetString("out-dir")
			if outDir == "" {
				outDir = "."
			}
			return runDecode(ctx, args[0], outDir)
		},
	}

	pf := cmd.Flags()
	pf.String("out-dir", "", "Directory for decoded frames (default: current directory)")

	return cmd
}

func runDecode(ctx context.Context, in, outDir string) error {
	f, err := os.Open(in)
	if err != nil {
		return fmt.Errorf("failed to open stream: %w", err)
	}
	defer f.Close()

	sr, err := splash.NewStreamReader(f)
	if err != nil {
		return err
	}
	defer sr.Close()

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	base := filepath.Base(in)
	base = base[:len(base)-len(filepath.Ext(base))]

	frame := 0
	for {
		img, err := sr.ReadFrame()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("frame %d: %w", frame, err)
		}
		out := filepath.Join(outDir, fmt.Sprintf("%s-%04d.png", base, frame))
		if err := writePNG(out, img); err != nil {
			return err
		}
		frame++
	}

	slog.InfoContext(ctx, "decoded stream",
		"in", in,
		"stream", sr.ID().String(),
		"frames", frame,
		"width", sr.Width(),
		"height", sr.Height())
	return nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	return png.Encode(f, img)
}
