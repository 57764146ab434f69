package net

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/mdns"
)

const serviceType = "_collabboard._tcp"

// Advertise announces a hosted board on the LAN so peers can find it
// without typing an address. The caller shuts the returned server down
// when the board closes.
func Advertise(port int, docID string) (*mdns.Server, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("could not get hostname: %w", err)
	}

	info := []string{"CollabBoard", "doc=" + docID}

	service, err := mdns.NewMDNSService(host, serviceType, "", "", port, nil, info)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	return server, nil
}

// Browse reports every board host found on the LAN to the callback as
// "ip:port" plus the advertised document id.
func Browse(found func(addr, docID string)) error {
	entries := make(chan *mdns.ServiceEntry, 8)
	go func() {
		for e := range entries {
			addr, ok := entryAddr(e)
			if !ok {
				continue
			}
			found(addr, docFromInfo(e.InfoFields))
		}
	}()
	return mdns.Lookup(serviceType, entries)
}

// Discover blocks until a board is found or the timeout passes, and
// returns the first hit.
func Discover(timeout time.Duration) (addr, docID string, err error) {
	type hit struct{ addr, doc string }
	first := make(chan hit, 1)
	go func() {
		if err := Browse(func(a, d string) {
			select {
			case first <- hit{addr: a, doc: d}:
			default:
			}
		}); err != nil {
			log.Printf("[mdns] lookup failed: %v", err)
		}
	}()

	select {
	case h := <-first:
		return h.addr, h.doc, nil
	case <-time.After(timeout):
		return "", "", fmt.Errorf("no board advertised within %s", timeout)
	}
}

func entryAddr(e *mdns.ServiceEntry) (string, bool) {
	if e.AddrV4 == nil || e.Port == 0 {
		return "", false
	}
	return fmt.Sprintf("%s:%d", e.AddrV4.String(), e.Port), true
}

// docFromInfo pulls the document id out of the advertised TXT fields.
func docFromInfo(info []string) string {
	for _, f := range info {
		if strings.HasPrefix(f, "doc=") {
			return strings.TrimPrefix(f, "doc=")
		}
	}
	return ""
}
