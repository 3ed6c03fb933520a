// Command dnsquery sends a single DNS query to an arbitrary server and
// prints the parsed response. Useful for poking at nameservers directly and
// for eyeballing what the codec makes of real-world responses.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"net"
	"os"
	"sort"
	"time"

	"github.com/avisser/burrow/internal/dns"
	"github.com/avisser/burrow/internal/transport"
)

func main() {
	var (
		server    = flag.String("server", "8.8.8.8", "DNS server IPv4 address")
		port      = flag.Int("port", transport.DNSPort, "DNS server port")
		name      = flag.String("name", "example.com", "Query name")
		qtype     = flag.Int("qtype", int(dns.TypeA), "Query type (numeric, A=1)")
		recursive = flag.Bool("recursive", true, "Set the RD flag (ask the server to recurse)")
		timeout   = flag.Duration("timeout", 2*time.Second, "Receive timeout")
		recvSize  = flag.Int("recv-size", 2048, "UDP receive buffer size")
		quiet     = flag.Bool("quiet", false, "Suppress output (exit status indicates success)")
	)
	flag.Parse()

	serverIP := net.ParseIP(*server)
	if serverIP == nil || serverIP.To4() == nil {
		fmt.Fprintf(os.Stderr, "dnsquery error: invalid server address %q\n", *server)
		os.Exit(1)
	}

	q := dns.NewQuery(uint16(rand.Uint32()), *name, dns.RecordType(*qtype))
	if *recursive {
		q.Header.Flags |= dns.RDFlag
	}
	wire, err := q.Marshal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "dnsquery error: %v\n", err)
		os.Exit(1)
	}

	client := transport.New(transport.Config{Timeout: *timeout, RecvSize: *recvSize})
	resp, err := client.Exchange(context.Background(), serverIP, *port, wire)
	if err != nil {
		if !*quiet {
			fmt.Fprintf(os.Stderr, "dnsquery error: %v\n", err)
		}
		os.Exit(1)
	}
	if *quiet {
		return
	}

	p, err := dns.ParsePacket(resp)
	if err != nil {
		fmt.Printf("received %d bytes (unparseable: %v)\n", len(resp), err)
		return
	}

	fmt.Printf("id=%d rcode=%d answers=%d authorities=%d additionals=%d\n",
		p.Header.ID,
		dns.RCodeFromFlags(p.Header.Flags),
		len(p.Answers),
		len(p.Authorities),
		len(p.Additionals),
	)

	rows := make([]string, 0, len(p.Answers))
	for _, rr := range p.Answers {
		rows = append(rows, formatRR(rr))
	}
	sort.Strings(rows)
	for _, s := range rows {
		fmt.Println(s)
	}
}

func formatRR(rr dns.Record) string {
	h := rr.Header()
	name := h.Name
	if name == "" {
		name = "."
	}

	switch rec := rr.(type) {
	case *dns.IPRecord:
		return fmt.Sprintf("%s %d IN %s %s", name, h.TTL, rec.Type(), rec.Addr)
	case *dns.NameRecord:
		return fmt.Sprintf("%s %d IN %s %s", name, h.TTL, rec.Type(), rec.Target)
	case *dns.OpaqueRecord:
		return fmt.Sprintf("%s %d IN %s (%d bytes unparsed)", name, h.TTL, rec.Type(), len(rec.Data))
	default:
		return fmt.Sprintf("%s %d IN %s (unknown shape)", name, h.TTL, rr.Type())
	}
}
