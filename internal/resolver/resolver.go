// Package resolver implements iterative DNS resolution: starting from a
// root server, it follows the referral chain (NS and glue records) down the
// delegation hierarchy until a nameserver returns an authoritative A-record
// answer for the queried domain.
//
// Decision logic per response, in strict priority order:
//
//  1. Answer-section A records → done, return every address in order.
//  2. Additional-section A records (glue) → re-query the same domain at the
//     first glue address.
//  3. Authority-section NS records → resolve the first nameserver's own
//     hostname from the root, then re-query the original domain there.
//  4. Nothing usable → the resolution fails.
//
// Resolution is single-threaded and synchronous: one in-flight query at a
// time, no retries, no caching. A shared hop budget bounds the total number
// of queries a resolution may issue, so a referral loop fails with
// ErrMaxHops instead of recursing forever.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net"
	"time"

	"github.com/avisser/burrow/internal/dns"
	"github.com/avisser/burrow/internal/transport"
)

var (
	// ErrNoAnswer indicates a response carried no usable information: no
	// A answers, no glue, no delegations.
	ErrNoAnswer = errors.New("resolver: no addresses found")

	// ErrMaxHops indicates the resolution exceeded its hop budget before
	// reaching an authoritative answer.
	ErrMaxHops = errors.New("resolver: resolution depth exceeded")
)

// RootServer is a.root-servers.net, the fixed starting point for every
// resolution and for nested nameserver-hostname lookups.
var RootServer = net.IPv4(198, 41, 0, 4)

// DefaultMaxHops bounds the total queries per resolution, matching common
// production resolver defaults.
const DefaultMaxHops = 30

// Transport is the datagram collaborator: one send, one blocking receive,
// a fresh socket per exchange.
type Transport interface {
	Exchange(ctx context.Context, server net.IP, port int, payload []byte) ([]byte, error)
}

// Branch identifies which decision branch a hop took.
type Branch string

const (
	BranchAnswer     Branch = "answer"
	BranchGlue       Branch = "glue"
	BranchDelegation Branch = "delegation"
	BranchDeadEnd    Branch = "dead-end"
)

// Hop records one query/response cycle of a resolution.
type Hop struct {
	Nameserver  string `json:"nameserver"`
	Domain      string `json:"domain"`
	Branch      Branch `json:"branch"`
	Answers     int    `json:"answers"`
	Authorities int    `json:"authorities"`
	Additionals int    `json:"additionals"`
}

// Result is the outcome of a traced resolution.
type Result struct {
	Domain    string
	Addresses []net.IP
	Hops      []Hop
	Duration  time.Duration
}

// Resolver walks the DNS delegation chain. Construct with New.
type Resolver struct {
	transport Transport
	root      net.IP
	maxHops   int
	logger    *slog.Logger
	stats     *Stats
}

// New creates a Resolver. A nil root falls back to RootServer, a
// non-positive maxHops to DefaultMaxHops, and a nil logger to the default
// slog logger.
func New(tr Transport, root net.IP, maxHops int, logger *slog.Logger) *Resolver {
	if root == nil {
		root = RootServer
	}
	if maxHops <= 0 {
		maxHops = DefaultMaxHops
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		transport: tr,
		root:      root,
		maxHops:   maxHops,
		logger:    logger,
		stats:     NewStats(),
	}
}

// Stats returns the resolver's counters.
func (r *Resolver) Stats() *Stats {
	return r.stats
}

// Resolve performs an iterative resolution of domain to its IPv4 addresses.
func (r *Resolver) Resolve(ctx context.Context, domain string) ([]net.IP, error) {
	res, err := r.ResolveTrace(ctx, domain)
	if err != nil {
		return nil, err
	}
	return res.Addresses, nil
}

// ResolveTrace performs an iterative resolution and additionally records
// the hop sequence it walked.
func (r *Resolver) ResolveTrace(ctx context.Context, domain string) (Result, error) {
	domain = dns.NormalizeName(domain)
	if domain == "" {
		return Result{}, fmt.Errorf("%w: empty domain", ErrNoAnswer)
	}

	start := time.Now()
	budget := r.maxHops
	hops := make([]Hop, 0, 4)

	addrs, err := r.resolve(ctx, r.root, domain, &budget, &hops)
	res := Result{
		Domain:    domain,
		Addresses: addrs,
		Hops:      hops,
		Duration:  time.Since(start),
	}
	r.stats.RecordResolution(err == nil, res.Duration)
	if err != nil {
		return res, err
	}
	return res, nil
}

// resolve runs one query/decide cycle against nameserver and recurses per
// the decision logic. budget and hops are shared across the whole call
// tree, including nested nameserver-hostname resolutions.
func (r *Resolver) resolve(ctx context.Context, nameserver net.IP, domain string, budget *int, hops *[]Hop) ([]net.IP, error) {
	if *budget <= 0 {
		return nil, fmt.Errorf("%w: %q after %d queries", ErrMaxHops, domain, r.maxHops)
	}
	*budget--

	resp, err := r.query(ctx, nameserver, domain)
	if err != nil {
		return nil, err
	}

	answers := sectionAddrs(resp.Answers)
	glue := sectionAddrs(resp.Additionals)
	delegations := sectionNameservers(resp.Authorities)

	hop := Hop{
		Nameserver:  nameserver.String(),
		Domain:      domain,
		Answers:     len(resp.Answers),
		Authorities: len(resp.Authorities),
		Additionals: len(resp.Additionals),
	}

	switch {
	case len(answers) > 0:
		hop.Branch = BranchAnswer
		*hops = append(*hops, hop)
		r.logger.Debug("authoritative answer",
			"nameserver", hop.Nameserver, "domain", domain, "addresses", len(answers))
		return answers, nil

	case len(glue) > 0:
		hop.Branch = BranchGlue
		*hops = append(*hops, hop)
		r.stats.RecordReferral()
		r.logger.Debug("glue referral",
			"nameserver", hop.Nameserver, "domain", domain, "next", glue[0].String())
		return r.resolve(ctx, glue[0], domain, budget, hops)

	case len(delegations) > 0:
		hop.Branch = BranchDelegation
		*hops = append(*hops, hop)
		r.stats.RecordReferral()
		r.logger.Debug("glueless delegation",
			"nameserver", hop.Nameserver, "domain", domain, "delegate", delegations[0])

		// The delegation names a nameserver but supplies no address for
		// it: resolve the nameserver's own hostname from the root, then
		// retry the original domain there.
		nsAddrs, err := r.resolve(ctx, r.root, delegations[0], budget, hops)
		if err != nil {
			return nil, err
		}
		return r.resolve(ctx, nsAddrs[0], domain, budget, hops)

	default:
		hop.Branch = BranchDeadEnd
		*hops = append(*hops, hop)
		return nil, fmt.Errorf("%w: %q (server %s returned no answers, glue, or delegations)",
			ErrNoAnswer, domain, hop.Nameserver)
	}
}

// query sends a single non-recursive A query and parses the one response
// datagram. Codec and socket failures propagate untouched.
func (r *Resolver) query(ctx context.Context, nameserver net.IP, domain string) (dns.Packet, error) {
	id := uint16(rand.Uint32())
	q := dns.NewQuery(id, domain, dns.TypeA)
	wire, err := q.Marshal()
	if err != nil {
		return dns.Packet{}, err
	}

	r.stats.RecordQuery()
	resp, err := r.transport.Exchange(ctx, nameserver, transport.DNSPort, wire)
	if err != nil {
		return dns.Packet{}, err
	}

	p, err := dns.ParsePacket(resp)
	if err != nil {
		return dns.Packet{}, err
	}
	if p.Header.ID != id {
		r.logger.Debug("transaction id mismatch", "sent", id, "received", p.Header.ID)
	}
	return p, nil
}

// sectionAddrs extracts the IPv4 addresses of the A records in a section,
// preserving order. AAAA and other types are skipped.
func sectionAddrs(records []dns.Record) []net.IP {
	var addrs []net.IP
	for _, rec := range records {
		ip, ok := rec.(*dns.IPRecord)
		if !ok || ip.Type() != dns.TypeA {
			continue
		}
		addrs = append(addrs, ip.Addr)
	}
	return addrs
}

// sectionNameservers extracts the target hostnames of the NS records in a
// section, preserving order.
func sectionNameservers(records []dns.Record) []string {
	var hosts []string
	for _, rec := range records {
		ns, ok := rec.(*dns.NameRecord)
		if !ok || ns.Type() != dns.TypeNS {
			continue
		}
		hosts = append(hosts, ns.Target)
	}
	return hosts
}
