// Package container holds the application's components and drives their
// lifecycle.
//
// Components are registered explicitly. Refresh checks their dependencies,
// computes a deterministic initialization order and runs the PreInit, Init
// and PostInit phases in that order. Start starts them in the same order;
// Close stops and cleans them up in reverse.
//
//	c := container.New(cfg)
//	if err := c.Register(components...); err != nil {
//	    return err
//	}
//	if err := c.Refresh(ctx); err != nil {
//	    return err
//	}
//	if err := c.Start(ctx); err != nil {
//	    return err
//	}
//	defer c.Close(context.Background())
//
// The container also carries an event bus and aggregates component health.
package container
