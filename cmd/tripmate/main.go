// Package main is the entry point for the tripmate data tool.
// Its sole responsibility is wiring dependencies together and running the
// requested subcommand over the local data directory. No business logic
// belongs here.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/mwhelan/tripmate/internal/config"
	"github.com/mwhelan/tripmate/internal/domain"
	"github.com/mwhelan/tripmate/internal/store"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// log/slog is the stdlib structured logger introduced in Go 1.21.
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Store ------------------------------------------------------------
	st, err := store.Open(cfg.DataDir, logger)
	if err != nil {
		slog.Error("failed to open store", "dir", cfg.DataDir, "error", err)
		os.Exit(1)
	}
	if st.Degraded() {
		slog.Warn("one or more backing files were corrupt and started empty", "dir", cfg.DataDir)
	}

	cmd := "summary"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "summary":
		summary(st)
	case "check":
		if n := check(st); n > 0 {
			slog.Error("integrity check failed", "problems", n)
			os.Exit(1)
		}
		fmt.Println("ok")
	default:
		fmt.Fprintf(os.Stderr, "usage: tripmate [summary|check]\n")
		os.Exit(2)
	}
}

// summary prints one line per collection with its record count.
func summary(st *store.Store) {
	trips := st.GetAllTrips()
	fmt.Printf("users:       %d\n", len(st.GetAllUsers()))
	fmt.Printf("trips:       %d\n", len(trips))
	subgroups, stops, memories := 0, 0, 0
	for _, t := range trips {
		subgroups += len(st.GetSubgroups(t.ID))
		stops += len(st.GetItineraryStops(t.ID))
		memories += len(st.GetMemories(t.ID))
	}
	fmt.Printf("subgroups:   %d\n", subgroups)
	fmt.Printf("stops:       %d\n", stops)
	fmt.Printf("memories:    %d\n", memories)
	if u := st.CurrentUser(); u != nil {
		fmt.Printf("logged in:   %s\n", u.Email)
	}
}

// check walks every trip's denormalized child-id lists and reports entries
// that no longer resolve to a stored child. A non-zero return means the
// data directory was mutated by something other than the store.
func check(st *store.Store) int {
	problems := 0
	for _, t := range st.GetAllTrips() {
		have := map[string]bool{}
		for _, g := range st.GetSubgroups(t.ID) {
			have["subgroup:"+g.ID.String()] = true
		}
		for _, s := range st.GetItineraryStops(t.ID) {
			have["stop:"+s.ID.String()] = true
		}
		for _, m := range st.GetMemories(t.ID) {
			have["memory:"+m.ID.String()] = true
		}
		problems += missing(t, "subgroup", t.SubgroupIDs, have)
		problems += missing(t, "stop", t.ItineraryStopIDs, have)
		problems += missing(t, "memory", t.MemoryIDs, have)
	}
	return problems
}

func missing(t domain.Trip, kind string, ids []uuid.UUID, have map[string]bool) int {
	n := 0
	for _, id := range ids {
		if !have[kind+":"+id.String()] {
			slog.Error("dangling child reference", "trip", t.Name, "kind", kind, "id", id.String())
			n++
		}
	}
	return n
}
