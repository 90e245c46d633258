package probe

import (
	"context"
	"encoding/base64"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/miekg/dns"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// answerA responds to any A question with the given address.
func answerA(address string) dns.HandlerFunc {
	return func(w dns.ResponseWriter, r *dns.Msg) {
		m := new(dns.Msg)
		m.SetReply(r)
		if rr, err := dns.NewRR(r.Question[0].Name + " 60 IN A " + address); err == nil {
			m.Answer = append(m.Answer, rr)
		}
		_ = w.WriteMsg(m)
	}
}

func TestServerProbe(t *testing.T) {
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	srv := &dns.Server{PacketConn: pc, Handler: answerA("192.0.2.10")}
	go func() { _ = srv.ActivateAndServe() }()
	defer func() { _ = srv.Shutdown() }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := Server(ctx, pc.LocalAddr().String(), "example.com")
	require.NoError(t, err)
	assert.Contains(t, result.Answers, "192.0.2.10")
	assert.Greater(t, result.RTT, time.Duration(0))
}

func TestServerProbeFailureRcode(t *testing.T) {
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	srv := &dns.Server{PacketConn: pc, Handler: dns.HandlerFunc(func(w dns.ResponseWriter, r *dns.Msg) {
		m := new(dns.Msg)
		m.SetRcode(r, dns.RcodeServerFailure)
		_ = w.WriteMsg(m)
	})}
	go func() { _ = srv.ActivateAndServe() }()
	defer func() { _ = srv.Shutdown() }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = Server(ctx, pc.LocalAddr().String(), "example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SERVFAIL")
}

func TestTemplateProbe(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, dohMediaType, r.Header.Get("Accept"))

		encoded := r.URL.Query().Get("dns")
		require.NotEmpty(t, encoded, "query must arrive in the dns parameter")
		raw, err := base64.RawURLEncoding.DecodeString(encoded)
		require.NoError(t, err)

		query := new(dns.Msg)
		require.NoError(t, query.Unpack(raw))

		reply := new(dns.Msg)
		reply.SetReply(query)
		rr, err := dns.NewRR(query.Question[0].Name + " 60 IN A 192.0.2.20")
		require.NoError(t, err)
		reply.Answer = append(reply.Answer, rr)

		packed, err := reply.Pack()
		require.NoError(t, err)
		w.Header().Set("Content-Type", dohMediaType)
		_, _ = w.Write(packed)
	}))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := Template(ctx, ts.URL+"/dns-query{?dns}", "example.com")
	require.NoError(t, err)
	assert.Contains(t, result.Answers, "192.0.2.20")
}

func TestTemplateProbeHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := Template(ctx, ts.URL+"/dns-query{?dns}", "example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status")
}

func TestExpandTemplate(t *testing.T) {
	url, err := ExpandTemplate("https://dns.example.com/dns-query{?dns}", []byte{0xab, 0xcd})
	require.NoError(t, err)
	assert.Equal(t, "https://dns.example.com/dns-query?dns="+base64.RawURLEncoding.EncodeToString([]byte{0xab, 0xcd}), url)

	_, err = ExpandTemplate("https://dns.example.com/dns-query", nil)
	require.Error(t, err)
}
