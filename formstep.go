// Package formstep is the entry point for embedding the multi-step form in
// another program: it re-exports the core types and offers one-call helpers
// for the terminal and HTTP front ends.
package formstep

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/goliatone/go-formstep/internal/web"
	"github.com/goliatone/go-formstep/pkg/controller"
	"github.com/goliatone/go-formstep/pkg/model"
	"github.com/goliatone/go-formstep/pkg/renderers/tui"
	"github.com/goliatone/go-formstep/pkg/renderers/vanilla"
	"github.com/goliatone/go-formstep/pkg/storage"
	"github.com/goliatone/go-formstep/pkg/uischema"
)

type (
	Controller  = controller.Controller
	View        = controller.View
	EventSource = controller.EventSource
	FormData    = model.FormData
	Step        = model.Step
	Store       = storage.Store
)

// DefaultKey is the storage key used when none is configured.
const DefaultKey = storage.DefaultKey

// New wires a controller to store and view. Call Initialize before use.
func New(store Store, view View, options ...controller.Option) (*Controller, error) {
	return controller.New(store, view, options...)
}

// Options shared by the front-end helpers.
type Options struct {
	Key    string
	Layout *uischema.Layout
	Logger *zap.Logger
}

// controllerOptions leaves the key out; callers decide how it is derived.
func (o Options) controllerOptions() []controller.Option {
	var out []controller.Option
	if o.Logger != nil {
		out = append(out, controller.WithLogger(o.Logger))
	}
	if o.Layout != nil {
		out = append(out, controller.WithAcknowledgement(o.Layout.Acknowledgement))
	}
	return out
}

// RunTerminal runs an interactive terminal session against store until the
// form is submitted or the user quits.
func RunTerminal(ctx context.Context, store Store, opts Options, sessionOptions ...tui.Option) error {
	sessionOptions = append([]tui.Option{tui.WithLayout(opts.Layout)}, sessionOptions...)
	session := tui.New(sessionOptions...)
	ctrlOptions := opts.controllerOptions()
	if opts.Key != "" {
		ctrlOptions = append(ctrlOptions, controller.WithKey(opts.Key))
	}
	ctrl, err := controller.New(store, session, ctrlOptions...)
	if err != nil {
		return err
	}
	return session.Run(ctx, ctrl)
}

// Handler returns an http.Handler serving the form. Records are stored under
// "<key>:<session id>".
func Handler(store Store, opts Options) (http.Handler, error) {
	renderer, err := vanilla.New(vanilla.WithLayout(opts.Layout))
	if err != nil {
		return nil, err
	}
	srv, err := web.New(store, renderer,
		web.WithLogger(opts.Logger),
		web.WithKeyPrefix(opts.Key),
		web.WithControllerOptions(opts.controllerOptions()...),
	)
	if err != nil {
		return nil, err
	}
	return srv, nil
}
