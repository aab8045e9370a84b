package cmd

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/rockingship/splash.go/pkg/splash"
	"github.com/spf13/cobra"
	xdraw "golang.org/x/image/draw"
)

// NewEncodeCmd creates the encode cobra command
func NewEncodeCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode <image> [image...]",
		Short: "encode images into a .splash stream",
		Long:  "Encodes one or more images (png/jpeg/gif) as frames of a single .splash stream. All frames share one canvas, so sequences with small frame-to-frame changes compress progressively.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")
			radius, _ := cmd.Flags().GetInt("radius")
			ppf, _ := cmd.Flags().GetFloat32("ppf")
			ppk, _ := cmd.Flags().GetFloat32("ppk")
			width, _ := cmd.Flags().GetInt("width")
			height, _ := cmd.Flags().GetInt("height")

			if out == "" {
				out = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".splash"
			}
			return runEncode(ctx, args, out, width, height, &splash.Options{Radius: radius, PPF: ppf, PPK: ppk})
		},
	}

	pf := cmd.Flags()
	pf.StringP("out", "o", "", "Output .splash path (default: first input with .splash extension)")
	pf.Int("radius", 5, "Brush radius in pixels (1-255)")
	pf.Float32("ppf", 1, "Pixels per frame divisor (width*height/ppf); 1 is lossless")
	pf.Float32("ppk", 2, "Pixels per key frame divisor (width*height/ppk)")
	pf.Int("width", 0, "Resize frames to this width (0 = first frame's width)")
	pf.Int("height", 0, "Resize frames to this height (0 = first frame's height)")

	return cmd
}

func runEncode(ctx context.Context, inputs []string, out string, width, height int, opts *splash.Options) error {
	frames := make([]image.Image, 0, len(inputs))
	for _, path := range inputs {
		img, err := loadImage(path)
		if err != nil {
			return err
		}
		frames = append(frames, img)
	}

	if width == 0 {
		width = frames[0].Bounds().Dx()
	}
	if height == 0 {
		height = frames[0].Bounds().Dy()
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer f.Close()

	sw, err := splash.NewStreamWriter(f, width, height, opts)
	if err != nil {
		return err
	}
	for i, frame := range frames {
		b := frame.Bounds()
		if b.Dx() != width || b.Dy() != height {
			frame = fitFrame(frame, width, height)
		}
		if err := sw.WriteFrame(frame); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
	}
	if err := sw.Close(); err != nil {
		return err
	}

	slog.InfoContext(ctx, "encoded stream",
		"out", out,
		"stream", sw.ID().String(),
		"frames", sw.Frames(),
		"width", width,
		"height", height)
	return nil
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return img, nil
}

// fitFrame resamples a frame to the stream dimensions.
func fitFrame(img image.Image, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return dst
}
