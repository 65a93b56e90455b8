package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/scalpel-ui/scalpel/cmd/scalpel/internal/config"
	"github.com/scalpel-ui/scalpel/internal/cache"
	"github.com/scalpel-ui/scalpel/pkg/eval"
	"github.com/scalpel-ui/scalpel/pkg/expand"
	"github.com/scalpel-ui/scalpel/pkg/lint"
	"github.com/scalpel-ui/scalpel/pkg/syntax"
	"github.com/scalpel-ui/scalpel/pkg/view"
)

type devServer struct {
	port      int
	host      string
	watcher   *fsnotify.Watcher
	wsClients map[*websocket.Conn]bool
	wsMutex   sync.RWMutex
	upgrader  websocket.Upgrader
	expCache  *cache.Cache
	config    *config.Config

	// expanded output per source path, guarded by outMutex
	outMutex sync.RWMutex
	expanded map[string]string
	issues   map[string][]lint.Issue
}

func newDevCommand() *cobra.Command {
	var port int
	var host string
	var cwd string

	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Start the development server",
		Long:  `Watches SX sources, re-expands and lints them on change, and pushes live updates to connected clients.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cwd != "" {
				if err := os.Chdir(cwd); err != nil {
					return fmt.Errorf("failed to change directory to %s: %w", cwd, err)
				}
			}
			return runDev(host, port)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run the dev server on")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind the dev server to")
	cmd.Flags().StringVar(&cwd, "cwd", "", "Working directory of the app (defaults to current)")

	return cmd
}

func runDev(host string, port int) error {
	cfg, err := config.Load(".")
	if err != nil {
		log.Printf("⚠️  Failed to load scalpel.yaml: %v (using defaults)\n", err)
		cfg = config.DefaultConfig()
	}

	// CLI takes precedence over config
	if port == 0 {
		port = cfg.Dev.Port
	}
	if host == "" {
		host = cfg.Dev.Host
	}

	var expCache *cache.Cache
	if cfg.Cache.Enabled {
		cacheCfg := cache.DefaultConfig()
		if cfg.Cache.Dir != "" {
			cacheCfg.Dir = cfg.Cache.Dir
		}
		expCache, err = cache.New(cacheCfg)
		if err != nil {
			log.Printf("⚠️  Failed to initialize expansion cache: %v", err)
		}
	}

	server := &devServer{
		port:      port,
		host:      host,
		wsClients: make(map[*websocket.Conn]bool),
		expCache:  expCache,
		config:    cfg,
		expanded:  make(map[string]string),
		issues:    make(map[string][]lint.Issue),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Allow all origins in dev mode
				return true
			},
		},
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()
	server.watcher = watcher

	if err := server.setupWatcher(); err != nil {
		return fmt.Errorf("failed to setup watcher: %w", err)
	}

	log.Println("🚀 Starting Scalpel dev server...")

	// Initial expansion of all sources
	sources, err := findSources(cfg)
	if err != nil {
		return fmt.Errorf("failed to scan sources: %w", err)
	}
	log.Printf("🔍 Found %d source files\n", len(sources))
	for _, src := range sources {
		server.process(src)
	}

	go server.watchFiles()

	mux := http.NewServeMux()
	mux.HandleFunc("/scalpel/live", server.handleWebSocket)
	mux.HandleFunc("/expanded/", server.serveExpanded)
	mux.HandleFunc("/preview/", server.servePreview)
	mux.HandleFunc("/lint", server.serveIssues)
	mux.HandleFunc("/", server.serveIndex)

	addr := fmt.Sprintf("%s:%d", host, port)
	log.Printf("✨ Dev server running at http://%s\n", addr)

	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("\n🛑 Shutting down dev server...")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *devServer) setupWatcher() error {
	return filepath.Walk(s.config.Source.Dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return filepath.SkipAll
			}
			return err
		}

		if info.IsDir() {
			if strings.HasPrefix(info.Name(), ".") || info.Name() == "node_modules" {
				return filepath.SkipDir
			}
			return s.watcher.Add(path)
		}

		return nil
	})
}

func (s *devServer) watchFiles() {
	debounce := time.NewTimer(0)
	<-debounce.C // drain initial timer

	var pendingEvents []fsnotify.Event
	var mu sync.Mutex

	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}

			if !s.config.IsSource(event.Name) {
				continue
			}

			mu.Lock()
			pendingEvents = append(pendingEvents, event)
			mu.Unlock()

			// Reset debounce timer
			debounce.Reset(100 * time.Millisecond)

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			log.Println("Watcher error:", err)

		case <-debounce.C:
			mu.Lock()
			events := pendingEvents
			pendingEvents = nil
			mu.Unlock()

			if len(events) > 0 {
				s.handleFileChanges(events)
			}
		}
	}
}

func (s *devServer) handleFileChanges(events []fsnotify.Event) {
	changed := make(map[string]bool)
	for _, event := range events {
		if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
			changed[event.Name] = true
		}
		if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
			s.outMutex.Lock()
			delete(s.expanded, event.Name)
			delete(s.issues, event.Name)
			s.outMutex.Unlock()
		}
	}

	for path := range changed {
		log.Printf("🔄 %s changed, re-expanding...\n", filepath.Base(path))
		s.process(path)
	}
}

// process expands and lints one source file, stores the results, and
// notifies connected clients.
func (s *devServer) process(path string) {
	out, err := expandFile(path, s.expCache)
	if err != nil {
		log.Printf("❌ %v\n", err)
		s.notifyClients("error", map[string]interface{}{
			"file":    path,
			"message": err.Error(),
		})
		return
	}

	issues, err := lintFile(path)
	if err != nil {
		// Unreadable or unparseable source already reported above.
		issues = nil
	}

	s.outMutex.Lock()
	s.expanded[path] = out
	s.issues[path] = issues
	s.outMutex.Unlock()

	if len(issues) > 0 {
		for _, issue := range issues {
			log.Printf("⚠️  %s\n", issue)
		}
	} else {
		log.Printf("✅ Expanded %s\n", filepath.Base(path))
	}

	s.notifyClients("reload", map[string]interface{}{
		"file":   path,
		"issues": len(issues),
	})
}

func (s *devServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}
	defer conn.Close()

	s.wsMutex.Lock()
	s.wsClients[conn] = true
	s.wsMutex.Unlock()

	defer func() {
		s.wsMutex.Lock()
		delete(s.wsClients, conn)
		s.wsMutex.Unlock()
	}()

	for {
		var msg map[string]interface{}
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		switch msg["type"] {
		case "HELLO":
			conn.WriteJSON(map[string]interface{}{
				"type": "ACK",
			})
		default:
			log.Printf("Unknown WebSocket message type: %v", msg["type"])
		}
	}
}

func (s *devServer) notifyClients(msgType string, data map[string]interface{}) {
	s.wsMutex.RLock()
	defer s.wsMutex.RUnlock()

	message := map[string]interface{}{
		"type": strings.ToUpper(msgType),
	}
	for k, v := range data {
		message[k] = v
	}

	for client := range s.wsClients {
		if err := client.WriteJSON(message); err != nil {
			log.Printf("Failed to send message to client: %v", err)
		}
	}
}

func (s *devServer) serveExpanded(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/expanded/")

	s.outMutex.RLock()
	out, ok := s.expanded[path]
	s.outMutex.RUnlock()

	if !ok {
		http.Error(w, "no such source file", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	fmt.Fprint(w, out)
}

// servePreview evaluates one source file and returns the rendered tree.
// Only useful for sources whose final form is a view; component-only
// files report that instead.
func (s *devServer) servePreview(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/preview/")

	s.outMutex.RLock()
	_, known := s.expanded[path]
	s.outMutex.RUnlock()
	if !known {
		http.Error(w, "no such source file", http.StatusNotFound)
		return
	}

	src, err := os.ReadFile(path)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	forms, err := syntax.NewReader(path, string(src)).ReadAll()
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	expanded, err := expand.Forms(forms)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	result, err := eval.Forms(expanded, eval.NewEnv())
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	if node, ok := result.(*view.Node); ok {
		fmt.Fprintln(w, node.Render())
		node.Dispose()
		return
	}
	fmt.Fprintf(w, "evaluated ok; final form is %T, not a view\n", result)
}

func (s *devServer) serveIssues(w http.ResponseWriter, r *http.Request) {
	s.outMutex.RLock()
	defer s.outMutex.RUnlock()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")

	total := 0
	for _, issues := range s.issues {
		for _, issue := range issues {
			fmt.Fprintln(w, issue)
			total++
		}
	}
	if total == 0 {
		fmt.Fprintln(w, "clean")
	}
}

func (s *devServer) serveIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	s.outMutex.RLock()
	paths := make([]string, 0, len(s.expanded))
	for path := range s.expanded {
		paths = append(paths, path)
	}
	s.outMutex.RUnlock()
	sort.Strings(paths)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "scalpel dev server (%d sources)\n\n", len(paths))
	for _, path := range paths {
		fmt.Fprintf(w, "/expanded/%s\n/preview/%s\n", path, path)
	}
}
