package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// skinTexture is a flat 9-slice placeholder: a border band around a fill.
type skinTexture struct {
	name   string
	size   int
	slice  int
	border color.RGBA
	centre color.RGBA
}

// placeholderSkin matches the slice sizes the theme package expects.
var placeholderSkin = []skinTexture{
	{
		name:   "panel_9slice.png",
		size:   48,
		slice:  8,
		border: color.RGBA{0x2E, 0x3A, 0x40, 0xFF},
		centre: color.RGBA{0x1C, 0x23, 0x29, 0xF0},
	},
}

func newAssetsCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "assets",
		Short: "Write placeholder UI textures",
		Long:  "Writes flat placeholder textures for the pause menu skin. Replace them with real art at any time.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			written, err := writePlaceholderSkin(dir)
			if err != nil {
				return err
			}
			for _, path := range written {
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", filepath.Join("assets", "ui"), "output directory")
	return cmd
}

func writePlaceholderSkin(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	written := make([]string, 0, len(placeholderSkin))
	for _, tex := range placeholderSkin {
		path := filepath.Join(dir, tex.name)
		if err := writeTexture(path, tex); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

func writeTexture(path string, tex skinTexture) error {
	img := image.NewRGBA(image.Rect(0, 0, tex.size, tex.size))
	edge := tex.size - tex.slice
	for y := range tex.size {
		for x := range tex.size {
			if x < tex.slice || y < tex.slice || x >= edge || y >= edge {
				img.SetRGBA(x, y, tex.border)
			} else {
				img.SetRGBA(x, y, tex.centre)
			}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
