// Package registration turns hosted scripts into named shell commands.
//
// A script hands its payload to a Dispatcher together with its own invocation
// arguments. Depending on those arguments the payload is either run right away
// or registered with the host as a listener that the shell offers every
// statement to. Registered commands can later be removed again.
//
// # Invocation Modes
//
// The first argument after the script name selects the mode:
//
//	script greet.lua                        # run the payload now
//	script greet.lua -cmdReg                # register as "ccTest"
//	script greet.lua -cmdReg hello -silent  # register as "hello", no feedback
//	script greet.lua -cmdUnReg hello        # remove the "hello" command
//
// Once registered, typing "hello world" in the shell invokes the payload with
// the argument vector ["hello", "world"]. Names are matched ignoring case.
//
// # Hosts
//
// The host registry is abstracted behind the Host interface. It can only list a
// whole category of listeners, remove the whole category, clear its resolution
// caches and add a single listener. Removing one named command is therefore a
// bulk remove followed by re-adding everything that should survive. The Adapter
// owns that sequence and guarantees that no listener other than the target is
// lost or duplicated, even when the host fails to remove some of them.
//
// # Usage Example
//
//	fb := feedback.New(os.Stdout)
//	d := registration.NewDispatcher(registration.Env{
//		Host:     listeners.New(),
//		Feedback: fb,
//	})
//
//	mode, err := d.Run(ctx, []string{"greet.lua", "-cmdReg", "hello"},
//		func(ctx context.Context, argv []string) error {
//			fmt.Println("hello", strings.Join(argv[1:], " "))
//			return nil
//		},
//	)
package registration
