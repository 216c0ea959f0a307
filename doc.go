// Package grandiose discovers network audio/video sources (NDI-style
// senders) advertised over multicast DNS-SD or reachable at explicit peer
// addresses.
//
// The simplest use is a bounded search:
//
//	sources, err := grandiose.Find(ctx, nil, 5*time.Second)
//	if grandiose.IsTimeout(err) {
//	    // nothing appeared within five seconds
//	}
//
// For long-running use, create a Finder and poll it:
//
//	finder, err := grandiose.NewFinder(&grandiose.Options{
//	    Groups:   grandiose.FilterList("public", "studio"),
//	    ExtraIPs: grandiose.FilterString("10.0.0.5"),
//	})
//	if err != nil {
//	    return err
//	}
//	defer finder.Close()
//
//	sources, err := finder.CurrentSources()
//
// The enumerations in this package (ColorFormat, Bandwidth, FrameFormatType,
// AudioFormat) carry fixed numeric values shared with receive and send
// implementations and must not be renumbered.
package grandiose
