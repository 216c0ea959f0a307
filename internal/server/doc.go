// Package server publishes discovered sources to other processes.
//
// A Server polls a discovery Finder on an interval and serves two endpoints:
//
//	GET /sources  current snapshot as JSON
//	GET /ws       WebSocket; the snapshot is sent on connect and again on
//	              every change
//
// Each snapshot carries a revision that increases only when the source list
// changes, so clients can ignore duplicates.
//
// # Usage Example
//
//	finder, err := discovery.NewFinder(mdns.New, opts)
//	if err != nil {
//	    return err
//	}
//	defer finder.Close()
//
//	srv := server.New(server.Config{Host: "127.0.0.1", Port: 5960}, finder)
//	return srv.Run(ctx)
package server
