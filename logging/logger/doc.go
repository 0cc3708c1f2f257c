// Package logger provides the context-aware logrus logger shared by every
// component.
//
// The logger adds the trace id carried by the context and the build version
// to each entry. Output goes to stdout, stderr or a daily rotated file, and
// entries can additionally be shipped to Elasticsearch.
//
//	cleanup, err := logger.New(cfg.Logger)
//	if err != nil {
//	    return err
//	}
//	defer cleanup()
//
//	logger.Infof(ctx, "listening on %s", addr)
package logger
