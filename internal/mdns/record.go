package mdns

import (
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/grandcat/zeroconf"
	"github.com/miekg/dns"

	"github.com/artyom-g-dv/grandiose/internal/discovery"
)

// record is one service instance as reported by either a multicast browse
// or a unicast probe.
type record struct {
	instance string
	host     string
	port     int
	ipv4     []net.IP
	ipv6     []net.IP
	text     []string
	ttl      uint32

	// browsed records come from zeroconf, which reports each instance once
	// and never refreshes it, so they do not expire.
	browsed bool
}

// fromServiceEntry converts a zeroconf browse result.
func fromServiceEntry(entry *zeroconf.ServiceEntry) record {
	return record{
		instance: unescapeLabel(entry.Instance),
		host:     entry.HostName,
		port:     entry.Port,
		ipv4:     entry.AddrIPv4,
		ipv6:     entry.AddrIPv6,
		text:     entry.Text,
		ttl:      entry.TTL,
		browsed:  true,
	}
}

// source converts r to a Source. It returns false when r has no name or no
// usable address.
func (r record) source(now time.Time) (discovery.Source, bool) {
	if r.instance == "" {
		return discovery.Source{}, false
	}

	// Prefer IPv4
	var ip string
	switch {
	case len(r.ipv4) > 0:
		ip = r.ipv4[0].String()
	case len(r.ipv6) > 0:
		ip = r.ipv6[0].String()
	default:
		return discovery.Source{}, false
	}

	port := r.port
	if port == 0 {
		port = DefaultPort
	}

	metadata := make(map[string]string)
	for _, txt := range r.text {
		parts := strings.SplitN(txt, "=", 2)
		if len(parts) == 2 {
			metadata[parts[0]] = parts[1]
		} else if parts[0] != "" {
			metadata[parts[0]] = ""
		}
	}

	return discovery.Source{
		Name:         r.instance,
		URLAddress:   net.JoinHostPort(ip, strconv.Itoa(port)),
		Host:         strings.TrimSuffix(r.host, "."),
		IP:           ip,
		Port:         port,
		Metadata:     metadata,
		DiscoveredAt: now,
	}, true
}

// addresses returns every address of r as strings.
func (r record) addresses() []string {
	out := make([]string, 0, len(r.ipv4)+len(r.ipv6))
	for _, ip := range r.ipv4 {
		out = append(out, ip.String())
	}
	for _, ip := range r.ipv6 {
		out = append(out, ip.String())
	}
	return out
}

// parseResponse extracts service instances from a unicast DNS-SD answer.
// fallback is used as the address of instances without A/AAAA records.
func parseResponse(msg *dns.Msg, fallback net.IP) []record {
	rrs := make([]dns.RR, 0, len(msg.Answer)+len(msg.Ns)+len(msg.Extra))
	rrs = append(rrs, msg.Answer...)
	rrs = append(rrs, msg.Ns...)
	rrs = append(rrs, msg.Extra...)

	service := serviceFQDN()
	var instances []string
	byInstance := make(map[string]*record)
	addrs := make(map[string]*record)

	for _, rr := range rrs {
		ptr, ok := rr.(*dns.PTR)
		if !ok || !strings.EqualFold(ptr.Hdr.Name, service) {
			continue
		}
		key := strings.ToLower(ptr.Ptr)
		if _, seen := byInstance[key]; seen {
			continue
		}
		byInstance[key] = &record{
			instance: instanceLabel(ptr.Ptr, service),
			ttl:      ptr.Hdr.Ttl,
		}
		instances = append(instances, key)
	}

	for _, rr := range rrs {
		switch v := rr.(type) {
		case *dns.SRV:
			if r, ok := byInstance[strings.ToLower(v.Hdr.Name)]; ok {
				r.host = v.Target
				r.port = int(v.Port)
				addrs[strings.ToLower(v.Target)] = r
			}
		case *dns.TXT:
			if r, ok := byInstance[strings.ToLower(v.Hdr.Name)]; ok {
				r.text = append(r.text, v.Txt...)
			}
		}
	}

	for _, rr := range rrs {
		switch v := rr.(type) {
		case *dns.A:
			if r, ok := addrs[strings.ToLower(v.Hdr.Name)]; ok {
				r.ipv4 = append(r.ipv4, v.A)
			}
		case *dns.AAAA:
			if r, ok := addrs[strings.ToLower(v.Hdr.Name)]; ok {
				r.ipv6 = append(r.ipv6, v.AAAA)
			}
		}
	}

	out := make([]record, 0, len(instances))
	for _, key := range instances {
		r := byInstance[key]
		if len(r.ipv4) == 0 && len(r.ipv6) == 0 && fallback != nil {
			if fallback.To4() != nil {
				r.ipv4 = []net.IP{fallback}
			} else {
				r.ipv6 = []net.IP{fallback}
			}
		}
		out = append(out, *r)
	}
	return out
}

// instanceLabel strips the service suffix from an instance FQDN.
func instanceLabel(fqdn, service string) string {
	name := fqdn
	if len(name) > len(service) && strings.EqualFold(name[len(name)-len(service):], service) {
		name = name[:len(name)-len(service)]
	}
	return unescapeLabel(strings.TrimSuffix(name, "."))
}

// unescapeLabel undoes DNS presentation escapes: "\X" and "\DDD".
func unescapeLabel(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}
		if i+3 < len(s) && isDigit(s[i+1]) && isDigit(s[i+2]) && isDigit(s[i+3]) {
			n, _ := strconv.Atoi(s[i+1 : i+4])
			if n <= 255 {
				b.WriteByte(byte(n))
				i += 3
				continue
			}
		}
		b.WriteByte(s[i+1])
		i++
	}
	return b.String()
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
