//go:build !cgo

package main

import (
	"context"

	"github.com/appengine-ltd/walkabout/internal/session"
	"github.com/appengine-ltd/walkabout/internal/ui"
)

func usesTerminal(bool) bool {
	return true
}

func launch(ctx context.Context, s *session.Session, classic bool) error {
	if !classic {
		s.Log.Info("built without cgo, the 3D window is unavailable; using the terminal menu")
	}
	return ui.NewApp(s).Run(ctx)
}
