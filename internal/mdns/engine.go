package mdns

import (
	"context"
	"fmt"
	"maps"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/grandcat/zeroconf"
	"github.com/miekg/dns"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/artyom-g-dv/grandiose/internal/discovery"
	"github.com/artyom-g-dv/grandiose/internal/logging"
)

const (
	// ServiceType is the DNS-SD service type sources advertise
	ServiceType = "_ndi._tcp"

	// ServiceDomain is the mDNS domain
	ServiceDomain = "local."

	// DefaultPort is used when an advertisement carries no port
	DefaultPort = 5961

	// UnicastPort is the port extra IPs are queried on when none is given
	UnicastPort = "5353"

	// ProbeInterval is how often each extra IP is queried
	ProbeInterval = time.Second

	probeTimeout = 750 * time.Millisecond
)

// Engine tracks sources seen by its browsers and probes. It is safe for
// concurrent use.
type Engine struct {
	settings discovery.Settings
	local    map[string]bool
	now      func() time.Time

	cancel    context.CancelFunc
	group     *errgroup.Group
	closeOnce sync.Once

	mu      sync.Mutex
	entries map[string]*tracked
	order   []string
}

type tracked struct {
	source  discovery.Source
	expires time.Time // zero for records that never expire
}

// New starts browsing and probing according to settings. It fails when no
// resolver can be created, e.g. because multicast sockets cannot be opened.
func New(settings discovery.Settings) (discovery.Engine, error) {
	local, err := localAddresses()
	if err != nil {
		return nil, fmt.Errorf("failed to list local addresses: %w", err)
	}

	e := newEngine(settings, local)
	if err := e.start(); err != nil {
		return nil, err
	}
	return e, nil
}

func newEngine(settings discovery.Settings, local map[string]bool) *Engine {
	return &Engine{
		settings: settings,
		local:    local,
		now:      time.Now,
		entries:  make(map[string]*tracked),
	}
}

func (e *Engine) start() error {
	ctx, cancel := context.WithCancel(context.Background())
	group, ctx := errgroup.WithContext(ctx)
	e.cancel = cancel
	e.group = group

	for _, service := range browseServices(e.settings.Groups) {
		if err := e.browse(ctx, service); err != nil {
			cancel()
			_ = group.Wait()
			return err
		}
	}

	for _, addr := range probeAddresses(e.settings.ExtraIPs) {
		addr := addr
		group.Go(func() error {
			e.probeLoop(ctx, addr)
			return nil
		})
	}

	logging.Debug("mDNS engine started",
		zap.Strings("services", browseServices(e.settings.Groups)),
		zap.Strings("extra_ips", probeAddresses(e.settings.ExtraIPs)),
	)
	return nil
}

func (e *Engine) browse(ctx context.Context, service string) error {
	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	entries := make(chan *zeroconf.ServiceEntry, 16)
	if err := resolver.Browse(ctx, service, ServiceDomain, entries); err != nil {
		return fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	e.group.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case entry, ok := <-entries:
				if !ok {
					return nil
				}
				e.observe(fromServiceEntry(entry))
			}
		}
	})
	return nil
}

func (e *Engine) probeLoop(ctx context.Context, addr string) {
	ticker := time.NewTicker(ProbeInterval)
	defer ticker.Stop()

	for {
		e.probe(ctx, addr)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// probe sends one legacy unicast PTR query to addr.
func (e *Engine) probe(ctx context.Context, addr string) {
	msg := new(dns.Msg)
	msg.SetQuestion(serviceFQDN(), dns.TypePTR)
	msg.RecursionDesired = false

	client := &dns.Client{Net: "udp", Timeout: probeTimeout}
	resp, _, err := client.ExchangeContext(ctx, msg, addr)
	if err != nil {
		if ctx.Err() == nil {
			logging.Debug("Unicast probe failed",
				zap.String("addr", addr),
				zap.Error(err),
			)
		}
		return
	}

	if packed, err := resp.Pack(); err == nil {
		logging.LogRawBytes("Unicast probe response", packed)
	}

	host, _, _ := net.SplitHostPort(addr)
	for _, r := range parseResponse(resp, net.ParseIP(host)) {
		e.observe(r)
	}
}

// observe records, refreshes or removes the instance described by r.
func (e *Engine) observe(r record) {
	key := strings.ToLower(r.instance)
	now := e.now()

	e.mu.Lock()
	defer e.mu.Unlock()

	if r.ttl == 0 && !r.browsed {
		e.remove(key, "removed")
		return
	}

	src, ok := r.source(now)
	if !ok {
		return
	}
	if !e.settings.ShowLocalSources && e.isLocal(r) {
		return
	}

	var expires time.Time
	if !r.browsed {
		expires = now.Add(time.Duration(r.ttl) * time.Second)
	}
	if t, exists := e.entries[key]; exists {
		src.DiscoveredAt = t.source.DiscoveredAt
		t.source = src
		t.expires = expires
		return
	}

	e.entries[key] = &tracked{source: src, expires: expires}
	e.order = append(e.order, key)
	logging.LogSourceEvent("discovered", src.Name, src.URLAddress)
}

// remove must be called with e.mu held.
func (e *Engine) remove(key, event string) {
	t, ok := e.entries[key]
	if !ok {
		return
	}
	delete(e.entries, key)
	for i, k := range e.order {
		if k == key {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
	logging.LogSourceEvent(event, t.source.Name, t.source.URLAddress)
}

func (e *Engine) isLocal(r record) bool {
	for _, addr := range r.addresses() {
		if e.local[addr] {
			return true
		}
	}
	return false
}

// CurrentSources returns copies of live sources in the order they were
// first seen.
func (e *Engine) CurrentSources() ([]discovery.Source, error) {
	now := e.now()

	e.mu.Lock()
	defer e.mu.Unlock()

	var expired []string
	for _, key := range e.order {
		exp := e.entries[key].expires
		if !exp.IsZero() && !now.Before(exp) {
			expired = append(expired, key)
		}
	}
	for _, key := range expired {
		e.remove(key, "expired")
	}

	sources := make([]discovery.Source, 0, len(e.order))
	for _, key := range e.order {
		src := e.entries[key].source
		src.Metadata = maps.Clone(src.Metadata)
		sources = append(sources, src)
	}
	return sources, nil
}

// Close stops all browsers and probes and waits for them to exit.
func (e *Engine) Close() error {
	var err error
	e.closeOnce.Do(func() {
		if e.cancel == nil {
			return
		}
		e.cancel()
		err = e.group.Wait()
		logging.Debug("mDNS engine stopped")
	})
	return err
}

func serviceFQDN() string {
	return dns.Fqdn(ServiceType + "." + ServiceDomain)
}

// browseServices returns the zeroconf service strings to browse: the bare
// service type, or one subtype per group.
func browseServices(groups *string) []string {
	if groups == nil {
		return []string{ServiceType}
	}

	seen := make(map[string]bool)
	var services []string
	for _, g := range discovery.SplitList(*groups) {
		g = strings.ToLower(g)
		if seen[g] {
			continue
		}
		seen[g] = true
		services = append(services, ServiceType+",_"+g)
	}
	if len(services) == 0 {
		return []string{ServiceType}
	}
	return services
}

// probeAddresses turns the extra IP filter into host:port targets.
func probeAddresses(extraIPs *string) []string {
	if extraIPs == nil {
		return nil
	}

	var out []string
	for _, item := range discovery.SplitList(*extraIPs) {
		if _, _, err := net.SplitHostPort(item); err == nil {
			out = append(out, item)
			continue
		}
		out = append(out, net.JoinHostPort(strings.Trim(item, "[]"), UnicastPort))
	}
	return out
}

func localAddresses() (map[string]bool, error) {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return nil, err
	}

	local := make(map[string]bool, len(addrs))
	for _, addr := range addrs {
		switch v := addr.(type) {
		case *net.IPNet:
			local[v.IP.String()] = true
		case *net.IPAddr:
			local[v.IP.String()] = true
		}
	}
	return local, nil
}
