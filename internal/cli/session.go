package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/roach88/varigen/internal/state"
	"github.com/roach88/varigen/internal/store"
)

// session is one command's view of the stored state.
type session struct {
	store  *store.Store
	key    string
	state  *state.State
	logger *slog.Logger
}

// openSession opens the store and loads the state slot. A missing slot or
// an unreadable blob yields a fresh state.
func openSession(ctx context.Context, opts *RootOptions) (*session, error) {
	if opts.DB != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(opts.DB), 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	st, err := store.Open(opts.DB)
	if err != nil {
		return nil, err
	}

	data, err := st.Load(ctx, opts.Key)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		st.Close()
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("state loaded", "db", opts.DB, "key", opts.Key, "bytes", len(data))

	return &session{
		store:  st,
		key:    opts.Key,
		state:  state.Load(data, opts.IDs, logger),
		logger: logger,
	}, nil
}

// save encodes the state and writes it to the slot.
func (s *session) save(ctx context.Context) error {
	data, err := state.Encode(s.state)
	if err != nil {
		return err
	}
	revision, err := s.store.Save(ctx, s.key, data)
	if err != nil {
		return err
	}
	s.logger.Debug("state saved", "key", s.key, "revision", revision, "bytes", len(data))
	return nil
}

func (s *session) Close() error {
	return s.store.Close()
}

// withSession runs fn against the stored state. When fn reports a change
// the state is saved before withSession returns. Store failures are
// reported through f; errors from fn are returned as they are.
func withSession(ctx context.Context, opts *RootOptions, f *OutputFormatter, fn func(s *session) (bool, error)) error {
	sess, err := openSession(ctx, opts)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeStore, fmt.Errorf("open state: %w", err), nil)
	}
	defer sess.Close()

	changed, err := fn(sess)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	if err := sess.save(ctx); err != nil {
		return f.Fail(ExitCommandError, ErrCodeStore, fmt.Errorf("save state: %w", err), nil)
	}
	return nil
}

// failState reports an error returned by a state mutation.
func failState(f *OutputFormatter, err error) error {
	switch {
	case errors.Is(err, state.ErrListNotFound),
		errors.Is(err, state.ErrFieldNotFound),
		errors.Is(err, state.ErrSchemaNotFound):
		return f.Fail(ExitCommandError, ErrCodeNotFound, err, nil)
	case errors.Is(err, state.ErrLastSchema),
		errors.Is(err, state.ErrEmptyName),
		errors.Is(err, state.ErrInvalidType):
		return f.Fail(ExitCommandError, ErrCodeInvalidInput, err, nil)
	}
	return f.Fail(ExitCommandError, ErrCodeGeneric, err, nil)
}
