package registration_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/pseudomuto/cmdreg/pkg/registration"
	"github.com/stretchr/testify/require"
)

func TestCommand_Handle(t *testing.T) {
	ctx := context.Background()
	calls := 0
	cmd := registration.NewCommand("Foo", func(_ context.Context, argv []string) error {
		calls++
		require.Equal(t, "arg1", argv[1])
		return nil
	})

	handled, err := cmd.Handle(ctx, registration.Statement("bar arg1"))
	require.NoError(t, err)
	require.False(t, handled)

	handled, err = cmd.Handle(ctx, registration.Statement("Foobar arg1"))
	require.NoError(t, err)
	require.False(t, handled)

	for _, text := range []string{"Foo arg1", "foo arg1", "  FOO   arg1 "} {
		handled, err = cmd.Handle(ctx, registration.Statement(text))
		require.NoError(t, err)
		require.True(t, handled)
	}
	require.Equal(t, 3, calls)
}

func TestCommand_HandleWrapsErrors(t *testing.T) {
	boom := errors.New("boom")
	cmd := registration.NewCommand("Foo", func(context.Context, []string) error { return boom })

	handled, err := cmd.Handle(context.Background(), registration.Statement("foo"))
	require.True(t, handled)
	require.ErrorIs(t, err, boom)
	require.EqualError(t, err, "command Foo failed: boom")
}

func TestCommand_NilHandlerDeclines(t *testing.T) {
	cmd := registration.NewCommand("Foo", nil)

	handled, err := cmd.Handle(context.Background(), registration.Statement("foo"))
	require.NoError(t, err)
	require.False(t, handled)
}

func TestCommand_Hooks(t *testing.T) {
	ctx := context.Background()
	var seen []string
	cmd := registration.NewCommand("Foo", noop,
		registration.WithBegin(func(_ context.Context, ev registration.Event) { seen = append(seen, "begin:"+ev.Text()) }),
		registration.WithEnd(func(_ context.Context, ev registration.Event) { seen = append(seen, "end:"+ev.Text()) }),
	)

	cmd.Begin(ctx, registration.Statement("select 1"))
	cmd.End(ctx, registration.Statement("select 1"))
	require.Equal(t, []string{"begin:select 1", "end:select 1"}, seen)

	// Missing hooks default to no-ops.
	plain := registration.NewCommand("Bar", noop, registration.WithBegin(nil))
	require.NotPanics(t, func() {
		plain.Begin(ctx, registration.Statement("x"))
		plain.End(ctx, registration.Statement("x"))
	})
}

func TestCommand_Identity(t *testing.T) {
	a := registration.NewCommand("Foo", noop)
	b := registration.NewCommand("Foo", noop)

	require.Equal(t, "Foo", a.String())
	require.NotEmpty(t, a.Class())
	require.NotEqual(t, a.Class(), b.Class(), "each command gets its own class")
	require.Equal(t, registration.DefaultCommandName, registration.NewCommand(" ", noop).Name())
}
