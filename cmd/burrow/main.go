// Command burrow resolves a domain name iteratively from the DNS root and
// prints the resulting IPv4 addresses, one per line.
package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"

	"github.com/avisser/burrow/internal/logging"
	"github.com/avisser/burrow/internal/resolver"
	"github.com/avisser/burrow/internal/transport"
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s [flags] <domain>\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	var (
		root    = flag.String("root", "", "Root server IPv4 address (default 198.41.0.4)")
		timeout = flag.Duration("timeout", transport.DefaultTimeout, "Per-query receive timeout")
		maxHops = flag.Int("max-hops", resolver.DefaultMaxHops, "Maximum queries per resolution")
		trace   = flag.Bool("trace", false, "Print the referral chain to stderr")
		debug   = flag.Bool("debug", false, "Enable debug logging")
	)
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}
	domain := flag.Arg(0)

	level := "ERROR"
	if *debug {
		level = "DEBUG"
	}
	logger := logging.Configure(logging.Config{Level: level})

	var rootIP net.IP
	if *root != "" {
		rootIP = net.ParseIP(*root)
		if rootIP == nil || rootIP.To4() == nil {
			fmt.Fprintf(os.Stderr, "invalid root server address: %s\n", *root)
			os.Exit(2)
		}
	}

	tr := transport.New(transport.Config{Timeout: *timeout})
	r := resolver.New(tr, rootIP, *maxHops, logger)

	res, err := r.ResolveTrace(context.Background(), domain)

	if *trace {
		for i, hop := range res.Hops {
			fmt.Fprintf(os.Stderr, "%2d  %-15s  %-30s  %s\n",
				i+1, hop.Nameserver, hop.Domain, hop.Branch)
		}
	}

	if err != nil {
		logger.Debug("resolution failed", "domain", domain, "error", err)
		fmt.Fprintln(os.Stderr, "no addresses found")
		os.Exit(1)
	}

	for _, ip := range res.Addresses {
		fmt.Println(ip.String())
	}
}
