package registration_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/pseudomuto/cmdreg/pkg/feedback"
	"github.com/pseudomuto/cmdreg/pkg/registration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdapter_RegisterIsIdempotent(t *testing.T) {
	ctx := context.Background()
	host := newFakeHost()
	adapter := registration.NewAdapter(registration.Env{Host: host})

	var first, second int
	_, err := adapter.Register(ctx, "X", func(context.Context, []string) error {
		first++
		return nil
	})
	require.NoError(t, err)

	_, err = adapter.Register(ctx, "x", func(context.Context, []string) error {
		second++
		return nil
	})
	require.NoError(t, err)

	require.Len(t, host.listeners, 1)

	handled, err := host.dispatch(ctx, "X arg1")
	require.NoError(t, err)
	require.True(t, handled)
	require.Equal(t, 0, first)
	require.Equal(t, 1, second)
}

func TestAdapter_UnregisterPreservesOthers(t *testing.T) {
	ctx := context.Background()
	host := newFakeHost()
	adapter := registration.NewAdapter(registration.Env{Host: host})

	for _, name := range []string{"X", "Y", "Z"} {
		_, err := adapter.Register(ctx, name, noop)
		require.NoError(t, err)
	}

	found, err := adapter.Unregister(ctx, "Y")
	require.NoError(t, err)
	require.True(t, found)
	require.ElementsMatch(t, []string{"X", "Z"}, host.names())
}

func TestAdapter_UnregisterNotFound(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	host := newFakeHost()
	adapter := registration.NewAdapter(registration.Env{Host: host, Feedback: feedback.New(&buf)})

	for _, name := range []string{"X", "Y"} {
		_, err := adapter.Register(ctx, name, noop)
		require.NoError(t, err)
	}
	buf.Reset()

	found, err := adapter.Unregister(ctx, "Q")
	require.NoError(t, err)
	require.False(t, found)
	require.ElementsMatch(t, []string{"X", "Y"}, host.names())
	require.Equal(t, "Command Q was not found, hence could not be UNRegistered\n", buf.String())
}

func TestAdapter_UnregisterDefaultName(t *testing.T) {
	ctx := context.Background()
	host := newFakeHost()
	adapter := registration.NewAdapter(registration.Env{Host: host})

	cmd, err := adapter.Register(ctx, "", noop)
	require.NoError(t, err)
	require.Equal(t, registration.DefaultCommandName, cmd.Name())

	found, err := adapter.Unregister(ctx, "")
	require.NoError(t, err)
	require.True(t, found)
	require.Empty(t, host.listeners)
}

func TestAdapter_UnregisterWithStuckListeners(t *testing.T) {
	ctx := context.Background()
	host := newFakeHost("Y")
	host.listeners = []registration.Listener{
		&staticListener{name: "X", class: "class-x"},
		&staticListener{name: "Y", class: "class-y"},
		&staticListener{name: "Z", class: "class-z"},
	}
	adapter := registration.NewAdapter(registration.Env{Host: host})

	found, err := adapter.Unregister(ctx, "X")
	require.NoError(t, err)
	require.True(t, found)

	// Y survived the bulk removal and must not be added a second time.
	require.ElementsMatch(t, []string{"Y", "Z"}, host.names())
	require.Equal(t, 1, host.adds)
}

func TestAdapter_UnregisterMisclassifiesSharedClass(t *testing.T) {
	ctx := context.Background()
	host := newFakeHost("A")
	host.listeners = []registration.Listener{
		&staticListener{name: "A", class: "shared"},
		&staticListener{name: "B", class: "shared"},
		&staticListener{name: "C", class: "class-c"},
	}
	adapter := registration.NewAdapter(registration.Env{Host: host})

	// Only A resists removal, but stuck detection goes by class: B shares A's
	// class, is taken for a stuck listener and never re-added.
	found, err := adapter.Unregister(ctx, "C")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, []string{"A"}, host.names())
	require.Equal(t, 0, host.adds)
}

func TestAdapter_ClearsGlobalAndActiveCaches(t *testing.T) {
	ctx := context.Background()
	host := newFakeHost()
	adapter := registration.NewAdapter(registration.Env{Host: host, Scope: "conn-1"})

	_, err := adapter.Unregister(ctx, "X")
	require.NoError(t, err)
	require.Equal(t, []registration.Scope{registration.GlobalScope, "conn-1"}, host.cleared)
}

func TestAdapter_FeedbackMessages(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		expected string
	}{
		{
			name:  "all",
			level: "-all",
			expected: "Trying to unregister Command Foo in case it has been registered before....\n" +
				"Command Foo was not found, hence could not be UNRegistered\n" +
				"Command Foo has been registered\n",
		},
		{
			name:     "minimal",
			level:    "-minimal",
			expected: "Command Foo has been registered\n",
		},
		{
			name:     "silent",
			level:    "-silent",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			fb := feedback.New(&buf)
			require.True(t, fb.SetLevel(tt.level))

			adapter := registration.NewAdapter(registration.Env{Host: newFakeHost(), Feedback: fb})
			_, err := adapter.Register(context.Background(), "Foo", noop)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, buf.String())
		})
	}
}

func TestAdapter_HostFailures(t *testing.T) {
	tests := []struct {
		name     string
		failOn   string
		register bool
		message  string
	}{
		{name: "enumerate", failOn: "list", message: "Command Foo could not be UNRegistered: host registry unavailable\n"},
		{name: "remove", failOn: "remove", message: "Command Foo could not be UNRegistered: host registry unavailable\n"},
		{name: "clear caches", failOn: "clear", message: "Command Foo could not be UNRegistered: host registry unavailable\n"},
		{name: "add", failOn: "add", register: true, message: "Command Foo could not be registered: host registry unavailable\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			fb := feedback.New(&buf)
			require.True(t, fb.SetLevel("-silent"))

			host := newFakeHost()
			host.failOn = tt.failOn
			adapter := registration.NewAdapter(registration.Env{Host: host, Feedback: fb})

			var err error
			if tt.register {
				_, err = adapter.Register(context.Background(), "Foo", noop)
			} else {
				_, err = adapter.Unregister(context.Background(), "Foo")
			}

			require.Error(t, err)
			require.ErrorIs(t, err, errHost)
			require.Equal(t, tt.message, buf.String())
		})
	}
}

func TestAdapter_FailureAbortsReAdd(t *testing.T) {
	host := newFakeHost()
	host.listeners = []registration.Listener{
		&staticListener{name: "X", class: "class-x"},
		&staticListener{name: "Y", class: "class-y"},
	}
	host.failOn = "clear"
	adapter := registration.NewAdapter(registration.Env{Host: host})

	_, err := adapter.Unregister(context.Background(), "X")
	require.Error(t, err)
	require.Equal(t, 0, host.adds)
	require.Empty(t, host.listeners)
}

func TestAdapter_NilHost(t *testing.T) {
	var buf bytes.Buffer
	fb := feedback.New(&buf)
	require.True(t, fb.SetLevel("-silent"))
	adapter := registration.NewAdapter(registration.Env{Feedback: fb})

	_, err := adapter.Register(context.Background(), "Foo", noop)
	require.ErrorIs(t, err, registration.ErrNilHost)
	require.Contains(t, buf.String(), "no host registry configured")
}

func TestAdapter_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	host := newFakeHost()
	adapter := registration.NewAdapter(registration.Env{Host: host})

	_, err := adapter.Register(ctx, "Foo", noop)
	require.True(t, errors.Is(err, context.Canceled))
	require.Empty(t, host.listeners)
}
