package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"github.com/google/uuid"

	"CollabBoard/internal/config"
	"CollabBoard/internal/export"
	boardnet "CollabBoard/internal/net"
	"CollabBoard/internal/relay"
	"CollabBoard/internal/render"
	"CollabBoard/internal/state"
	"CollabBoard/internal/store"
	"CollabBoard/internal/tools"
	"CollabBoard/internal/ui"
)

const customURLScheme = "collabboard://"

const discoverTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load("collabboard.yaml")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	args := os.Args
	switch {
	case len(args) > 1 && strings.HasPrefix(args[1], customURLScheme):
		runClient(cfg, args[1])
	case len(args) > 1 && args[1] == "join":
		runJoin(cfg)
	default:
		runHost(cfg)
	}
}

// engine bundles the per-document core: one canvas, its history,
// layers, clock and dispatcher, plus the renderer they feed.
type engine struct {
	canvas     *state.Canvas
	history    *state.History
	layers     *state.Layers
	clock      *state.Clock
	dispatcher *tools.Dispatcher
	renderer   *render.Renderer
}

func newEngine(cfg config.Config) *engine {
	canvas := state.NewCanvas()
	history := state.NewHistory()
	layers := state.NewLayers(canvas)
	clock := state.NewClock()
	return &engine{
		canvas:     canvas,
		history:    history,
		layers:     layers,
		clock:      clock,
		dispatcher: tools.NewDispatcher(canvas, history, layers, clock, cfg.Background),
		renderer:   render.New(cfg.CanvasWidth, cfg.CanvasHeight, cfg.Background),
	}
}

func runHost(cfg config.Config) {
	log.Println("Starting as HOST")
	docID := uuid.NewString()
	if len(os.Args) > 1 {
		docID = os.Args[1]
	}

	fileStore, err := store.NewFileStore(cfg.DataDir)
	if err != nil {
		log.Fatalf("store: %v", err)
	}

	eng := newEngine(cfg)
	title := loadDocument(fileStore, docID, eng.canvas)

	hub := relay.NewHub()
	ln, err := hub.Listen(fmt.Sprintf(":%d", cfg.Port))
	if err != nil {
		log.Fatalf("relay: %v", err)
	}
	log.Printf("Relay listening on %s", ln.Addr())

	mdnsServer, err := boardnet.Advertise(cfg.Port, docID)
	if err != nil {
		log.Printf("mDNS advertise failed (join still works by link): %v", err)
	}

	hostIP, err := boardnet.OutgoingIP()
	if err != nil {
		hostIP = "127.0.0.1"
	}
	shareLink := fmt.Sprintf("%s%s:%d/%s", customURLScheme, hostIP, cfg.Port, docID)

	// The host subscribes to its own hub, so its edits and its peers'
	// edits travel the same path. The listener is bound by now, so the
	// self-dial cannot race the server startup.
	bridge, err := relay.Dial(fmt.Sprintf("127.0.0.1:%d", cfg.Port), docID)
	if err != nil {
		log.Fatalf("host bridge: %v", err)
	}

	openBoard(cfg, eng, bridge, fileStore, docID, title, shareLink, func() {
		if mdnsServer != nil {
			_ = mdnsServer.Shutdown()
		}
		_ = ln.Close()
	})
}

func runClient(cfg config.Config, link string) {
	log.Println("Starting as CLIENT")
	addr, docID, err := parseShareLink(link)
	if err != nil {
		log.Fatalf("bad share link: %v", err)
	}
	joinBoard(cfg, addr, docID)
}

// runJoin browses the LAN for an advertised board and connects to the
// first one found, so no share link has to change hands.
func runJoin(cfg config.Config) {
	log.Println("Looking for boards on the LAN")
	addr, docID, err := boardnet.Discover(discoverTimeout)
	if err != nil {
		log.Fatalf("discover: %v", err)
	}
	if docID == "" {
		log.Fatalf("host at %s advertises no document id", addr)
	}
	log.Printf("Found board %s at %s", docID, addr)
	joinBoard(cfg, addr, docID)
}

func joinBoard(cfg config.Config, addr, docID string) {
	fileStore, err := store.NewFileStore(cfg.DataDir)
	if err != nil {
		log.Fatalf("store: %v", err)
	}

	eng := newEngine(cfg)
	title := loadDocument(fileStore, docID, eng.canvas)

	bridge, err := relay.Dial(addr, docID)
	if err != nil {
		log.Fatalf("connect to host: %v", err)
	}

	openBoard(cfg, eng, bridge, fileStore, docID, title, "", nil)
}

// openBoard wires the engine to the relay and persistence, builds the
// UI and blocks until the window closes. Teardown always stops the
// autosaver (with a final flush), drops the subscription, and runs the
// extra cleanup.
func openBoard(cfg config.Config, eng *engine, bridge *relay.Bridge, fileStore *store.FileStore, docID, title, shareLink string, cleanup func()) {
	eng.dispatcher.OnCommit = func(e state.Element) {
		if err := bridge.Publish(e); err != nil {
			log.Printf("publish failed, edit stays local: %v", err)
		}
	}

	board := ui.NewBoardWidget(eng.dispatcher, eng.canvas, eng.layers, eng.renderer)
	presence := ui.NewPresenceBar()

	bridge.OnElement = func(e state.Element) {
		eng.clock.ObserveStamp(e.ID)
		if eng.canvas.ApplyRemote(e) {
			fyne.Do(board.Redraw)
		}
	}
	bridge.OnPresence = func(p relay.Presence) {
		log.Printf("%s joined as %s", p.Name, p.Role)
		fyne.Do(func() { presence.Add(p.ID, p.Name, p.Color, p.Role) })
	}
	go bridge.Run()

	if err := bridge.Announce(relay.Presence{
		ID:    eng.clock.Site(),
		Name:  participantName(),
		Color: "#3b82f6",
		Role:  "editor",
	}); err != nil {
		log.Printf("presence announce failed: %v", err)
	}

	saver := store.OpenAutosaver(fileStore, eng.canvas, docID,
		func() string { return title }, cfg.AutosaveInterval)

	onExport := func() {
		img := board.Snapshot()
		if path, err := export.PNG(".", title, img); err != nil {
			log.Printf("PNG export failed: %v", err)
		} else {
			log.Printf("Exported %s", path)
		}
		if path, err := export.PDF(".", title, eng.canvas.Elements(), float64(cfg.CanvasWidth)); err != nil {
			log.Printf("PDF export failed: %v", err)
		} else {
			log.Printf("Exported %s", path)
		}
	}

	ui.RunApp(title, shareLink, board, eng.layers, presence, cfg.Palette, onExport, func() {
		saver.Close()
		bridge.Close()
		select {
		case <-bridge.Done():
		case <-time.After(time.Second):
			log.Println("relay read loop still draining, leaving it behind")
		}
		if cleanup != nil {
			cleanup()
		}
	})
}

// loadDocument installs the persisted elements, if any, and returns
// the document title. A fetch failure leaves the board empty.
func loadDocument(fileStore *store.FileStore, docID string, canvas *state.Canvas) string {
	doc, err := fileStore.Load(docID)
	if err != nil {
		log.Printf("load %s failed, starting empty: %v", docID, err)
		return "Untitled Board"
	}
	if len(doc.CanvasData.Elements) > 0 {
		canvas.Replace(doc.CanvasData.Elements)
	}
	if doc.Name == "" {
		return "Untitled Board"
	}
	return doc.Name
}

func parseShareLink(link string) (addr, docID string, err error) {
	rest := strings.TrimPrefix(link, customURLScheme)
	rest = strings.TrimSuffix(rest, "/")
	parts := strings.SplitN(rest, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("expected %shost:port/doc, got %q", customURLScheme, link)
	}
	return parts[0], parts[1], nil
}

func participantName() string {
	if host, err := os.Hostname(); err == nil {
		return host
	}
	return "anonymous"
}
