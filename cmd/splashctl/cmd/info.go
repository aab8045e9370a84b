package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rockingship/splash.go/pkg/splash"
	"github.com/rockingship/splash.go/pkg/util"
	"github.com/spf13/cobra"
)

// NewInfoCmd creates the info cobra command
func NewInfoCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <stream.splash>",
		Short: "inspect a .splash stream without decoding it",
		Long:  "Parses the container header and walks the packets, printing per-frame sizes and a content fingerprint.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args[0])
		},
	}
	return cmd
}

func runInfo(in string) error {
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

	opts := sr.Options()
	fmt.Printf("Stream:     %s\n", sr.ID())
	fmt.Printf("Dimensions: %dx%d\n", sr.Width(), sr.Height())
	fmt.Printf("Radius:     %d\n", opts.Radius)
	fmt.Printf("PPF:        %g\n", opts.PPF)
	fmt.Printf("PPK:        %g\n", opts.PPK)
	fmt.Println()

	var body []byte
	frame := 0
	for {
		pkt, err := sr.ReadPacket()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("frame %d: %w", frame, err)
		}
		hdr, err := splash.ParseHeader(pkt)
		if err != nil {
			return fmt.Errorf("frame %d: %w", frame, err)
		}
		samples := (len(pkt) - hdr.Length - (sr.Width()+sr.Height())*3) / 3
		fmt.Printf("frame %4d: %7d bytes, %7d samples, radius %d\n", frame, len(pkt), samples, hdr.Radius)
		body = append(body, pkt...)
		frame++
	}

	fmt.Println()
	fmt.Printf("Frames:      %d\n", frame)
	fmt.Printf("Packet body: %d bytes\n", len(body))
	fmt.Printf("Fingerprint: %s\n", util.Md5ThenHex(body))
	return nil
}
