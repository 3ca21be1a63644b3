// Package callback serves the in-message and delivery report callbacks that
// Target365 posts to a client endpoint.
//
// Every request is verified with the auth package before its body is parsed:
//
//	c, _ := client.New(cfg)
//	h, err := callback.NewHandler(callback.Config{
//	    Resolver: c.KeyResolver(),
//	    OnInMessage: func(ctx context.Context, m *client.InMessage) error {
//	        return store(ctx, m)
//	    },
//	}, logger, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	http.Handle(callback.DefaultPath, h)
//
// The handler also assigns request ids, recovers from panics in hooks and
// caps body sizes. Serve runs it with graceful shutdown.
package callback
