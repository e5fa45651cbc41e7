// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package watch

import "context"

// Script runs the session, applies intents in order, and returns the view
// after the last one has settled. After each intent it waits until no
// fetch or citation lookup is outstanding. It calls Run, so a session can
// be scripted only once and not also run interactively.
func (s *Session) Script(ctx context.Context, intents ...Intent) (ViewModel, error) {
	if err := ctx.Err(); err != nil {
		return ViewModel{}, err
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	in := make(chan Intent)
	views := make(chan ViewModel)
	errc := make(chan error, 1)
	go func() { errc <- s.Run(ctx, in, views) }()

	recv := func() (ViewModel, error) {
		select {
		case v := <-views:
			return v, nil
		case err := <-errc:
			return ViewModel{}, err
		}
	}

	v, err := recv()
	if err != nil {
		return v, err
	}
	for _, intent := range intents {
		select {
		case in <- intent:
		case err := <-errc:
			return v, err
		}
		if v, err = recv(); err != nil {
			return v, err
		}
		for v.Loading || v.Status.Kind == StatusLoading {
			if v, err = recv(); err != nil {
				return v, err
			}
		}
	}

	cancel()
	<-errc
	return v, nil
}
