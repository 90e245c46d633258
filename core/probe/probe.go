// Package probe answers one question: does this resolver actually resolve?
// It exercises the same server addresses and DoH templates the engine
// applies, so a configuration can be checked before or after an apply.
package probe

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/miekg/dns"
)

// DefaultDomain is queried when the caller does not name one.
const DefaultDomain = "example.com"

const (
	dohMediaType    = "application/dns-message"
	maxResponseSize = 64 << 10
	probeTimeout    = 5 * time.Second
)

// Result is one resolver health check.
type Result struct {
	RTT     time.Duration
	Answers []string
}

// Server sends an A query for domain to a plain-DNS server over UDP and
// reports the round trip. The server may be a bare address; port 53 is
// assumed.
func Server(ctx context.Context, server, domain string) (Result, error) {
	if domain == "" {
		domain = DefaultDomain
	}
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(domain), dns.TypeA)
	msg.RecursionDesired = true

	target := server
	if _, _, err := net.SplitHostPort(server); err != nil {
		target = net.JoinHostPort(server, "53")
	}

	client := &dns.Client{Timeout: probeTimeout}
	reply, rtt, err := client.ExchangeContext(ctx, msg, target)
	if err != nil {
		return Result{}, fmt.Errorf("query %s: %w", target, err)
	}
	if reply.Rcode != dns.RcodeSuccess {
		return Result{}, fmt.Errorf("query %s: server returned %s", target, dns.RcodeToString[reply.Rcode])
	}
	return Result{RTT: rtt, Answers: answerStrings(reply)}, nil
}

// Template resolves domain through a DoH template using the RFC 8484 GET
// exchange.
func Template(ctx context.Context, template, domain string) (Result, error) {
	if domain == "" {
		domain = DefaultDomain
	}
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(domain), dns.TypeA)
	msg.RecursionDesired = true
	packed, err := msg.Pack()
	if err != nil {
		return Result{}, fmt.Errorf("pack query: %w", err)
	}

	url, err := ExpandTemplate(template, packed)
	if err != nil {
		return Result{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Result{}, fmt.Errorf("build DoH request: %w", err)
	}
	req.Header.Set("Accept", dohMediaType)

	start := time.Now()
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("DoH exchange: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("DoH exchange: unexpected status %s", resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return Result{}, fmt.Errorf("read DoH response: %w", err)
	}
	reply := new(dns.Msg)
	if err := reply.Unpack(body); err != nil {
		return Result{}, fmt.Errorf("unpack DoH response: %w", err)
	}
	if reply.Rcode != dns.RcodeSuccess {
		return Result{}, fmt.Errorf("DoH exchange: server returned %s", dns.RcodeToString[reply.Rcode])
	}
	return Result{RTT: time.Since(start), Answers: answerStrings(reply)}, nil
}

// ExpandTemplate substitutes a packed query into the template's {?dns}
// placeholder as a base64url dns parameter.
func ExpandTemplate(template string, packedQuery []byte) (string, error) {
	if !strings.Contains(template, "{?dns}") {
		return "", fmt.Errorf("template %q has no {?dns} placeholder", template)
	}
	encoded := base64.RawURLEncoding.EncodeToString(packedQuery)
	return strings.Replace(template, "{?dns}", "?dns="+encoded, 1), nil
}

func answerStrings(reply *dns.Msg) []string {
	var answers []string
	for _, rr := range reply.Answer {
		switch record := rr.(type) {
		case *dns.A:
			answers = append(answers, record.A.String())
		case *dns.AAAA:
			answers = append(answers, record.AAAA.String())
		case *dns.CNAME:
			answers = append(answers, record.Target)
		}
	}
	return answers
}
