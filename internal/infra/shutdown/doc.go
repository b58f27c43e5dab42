// Package shutdown runs cleanup hooks when the process is asked to stop.
//
// The REPL registers hooks that flush the address book and close the
// store. They run once, whichever comes first: SIGINT/SIGTERM or the
// session ending normally.
//
//	h := shutdown.NewHandler(5 * time.Second)
//	h.OnShutdown("store", repo.Close)
//	go h.Wait(ctx)
//	defer h.Shutdown()
package shutdown
