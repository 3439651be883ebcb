//go:build cgo

package main

import (
	"context"

	"github.com/appengine-ltd/walkabout/internal/gui"
	"github.com/appengine-ltd/walkabout/internal/session"
	"github.com/appengine-ltd/walkabout/internal/ui"
)

func usesTerminal(classic bool) bool {
	return classic
}

func launch(ctx context.Context, s *session.Session, classic bool) error {
	if classic {
		return ui.NewApp(s).Run(ctx)
	}
	return gui.NewApp(s).Run(ctx)
}
