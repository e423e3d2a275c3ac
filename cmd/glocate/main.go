package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"glocate/internal/app"
	"glocate/internal/config"
	"glocate/internal/debug"
	"glocate/internal/locate"
	"glocate/internal/meta"
	"glocate/internal/store"
)

func main() {
	verbose := flag.Bool("debug", false, "Enable verbose debug logging")
	rebuild := flag.Bool("rebuild", false, "Rebuild the index databases and exit")
	flag.Parse()

	if *verbose {
		for _, cat := range []debug.Category{
			debug.APP, debug.QUERY, debug.LOCATE, debug.TASK,
			debug.META, debug.STORE, debug.WATCH,
		} {
			debug.Enable(cat)
		}
	}

	cfgMgr := config.NewManager()
	if err := cfgMgr.Load(); err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := cfgMgr.ParseError(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: config unreadable, using defaults: %v\n", err)
	}
	cfg := cfgMgr.Get()

	db := store.NewDB(cfg.History.MaxEntries)
	if err := db.Open(store.DefaultPath()); err != nil {
		fmt.Fprintf(os.Stderr, "warning: history store unavailable: %v\n", err)
		db = nil
	} else {
		go db.Start()
		defer db.Close()
	}

	invoker := &locate.Invoker{
		Command:   cfg.Lookup.Command,
		Databases: cfg.Lookup.Databases(),
		Timeout:   cfg.Lookup.Timeout(),
	}
	rebuilder := locate.NewRebuilder(cfg.Rebuild.Helper, cfg.Rebuild.Command)

	watcher, err := app.NewIndexWatcher([]string{cfg.Lookup.SystemDatabase, cfg.Lookup.MediaDatabase}, 0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: index watching unavailable: %v\n", err)
		watcher = nil
	} else {
		defer watcher.Close()
	}

	c := app.NewController(app.Deps{
		Config:  cfgMgr,
		Lookup:  invoker,
		Rebuild: rebuilder,
		Store:   db,
		Watcher: watcher,
	})
	defer c.Close()

	if *rebuild {
		runRebuild(c)
		return
	}

	queryText := strings.Join(flag.Args(), " ")
	if strings.TrimSpace(queryText) == "" {
		fmt.Fprintln(os.Stderr, "usage: glocate [-debug] [-rebuild] <query>")
		os.Exit(2)
	}
	if !invoker.Available() {
		log.Fatalf("lookup tool %q not found in PATH", cfg.Lookup.Command)
	}
	runQuery(c, queryText)
}

func runQuery(c *app.Controller, text string) {
	started := time.Now()
	if err := c.RunLookup(text); err != nil {
		log.Fatalf("lookup: %v", err)
	}

	for ev := range c.Events() {
		switch ev.Type {
		case app.EventLookupFailed:
			log.Fatalf("lookup failed: %v", ev.Err)
		case app.EventResultsUpdated:
			snap := c.State().Snapshot()
			for _, e := range snap.Entries {
				if e.IsPlaceholder() {
					fmt.Println(e.Name)
					continue
				}
				fmt.Println(e.Path)
			}
			fmt.Fprintln(os.Stderr, meta.StatusLine(snap.RawCount, time.Since(started)))
			return
		}
	}
}

func runRebuild(c *app.Controller) {
	if err := c.Do(app.CmdStartRebuild); err != nil {
		log.Fatalf("rebuild: %v", err)
	}
	for ev := range c.Events() {
		switch ev.Type {
		case app.EventRebuildFailed:
			log.Fatalf("rebuild failed: %v", ev.Err)
		case app.EventRebuildFinished:
			if ev.Err != nil {
				log.Fatalf("rebuild: %v", ev.Err)
			}
			fmt.Fprintln(os.Stderr, "index rebuilt")
			return
		}
	}
}
