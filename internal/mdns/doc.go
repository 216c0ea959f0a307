// Package mdns is the default discovery engine. It finds sources that
// advertise themselves over multicast DNS service discovery, and queries
// explicitly listed peers with unicast DNS-SD.
//
// Sources advertise the "_ndi._tcp" service in the "local." domain. Group
// membership is advertised as a DNS-SD subtype, so a finder restricted to
// the groups "studio" and "public" browses:
//
//	_studio._sub._ndi._tcp.local.
//	_public._sub._ndi._tcp.local.
//
// Extra IPs are queried every second on UDP port 5353 (or the port given
// as host:port) with a legacy unicast PTR query, which mDNS responders
// answer directly to the sender.
//
// # Network Requirements
//
//   - Multicast must be permitted on at least one interface for browsing
//   - Firewalls must allow UDP port 5353
//
// New is a discovery.EngineFactory:
//
//	finder, err := discovery.NewFinder(mdns.New, opts)
package mdns
