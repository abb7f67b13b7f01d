package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/claude/formcoach/internal/catalog"
	"github.com/claude/formcoach/internal/session"
	"github.com/claude/formcoach/internal/stats"
	"github.com/claude/formcoach/internal/store"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	storagePath := flag.String("storage", "formcoach.db", "path to the SQLite state database")
	catalogPath := flag.String("catalog", "", "optional YAML file with extra workouts")
	workoutID := flag.String("workout", "", "workout id to run a session for")
	list := flag.Bool("list", false, "list available workouts and exit")
	summary := flag.Bool("summary", false, "print the weekly summary and exit")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("formcoach-cli", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	cat := catalog.New()
	if *catalogPath != "" {
		if err := cat.LoadFile(*catalogPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: loading catalog: %v\n", err)
			os.Exit(1)
		}
	}

	if *list {
		printWorkouts(cat)
		return
	}

	kv, err := store.OpenSQLite(*storagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: opening storage: %v\n", err)
		os.Exit(1)
	}
	defer kv.Close()
	st := store.New(kv)

	if *summary {
		printSummary(st)
		return
	}

	if *workoutID == "" {
		fmt.Fprintf(os.Stderr, "Usage: formcoach-cli -workout <id> [-storage path] [-catalog file]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	w, err := cat.Get(*workoutID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v (use -list to see available workouts)\n", err)
		os.Exit(1)
	}

	if err := runSession(w, st, log); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printWorkouts(cat *catalog.Catalog) {
	for _, w := range cat.List("") {
		fmt.Printf("%-4s %-28s %-12s %-12s %2d min, %d exercises\n",
			w.ID, w.Name, w.Category, w.Difficulty, w.Duration, len(w.Exercises))
	}
}

func printSummary(st *store.Store) {
	history, err := st.History()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: reading history: %v\n", err)
		os.Exit(1)
	}
	weekly := stats.Weekly(history, time.Now())
	fmt.Printf("Week %s to %s\n", weekly.WeekStart, weekly.WeekEnd)
	fmt.Printf("  Workouts:       %d\n", weekly.Workouts)
	fmt.Printf("  Active minutes: %d\n", weekly.ActiveMinutes)
	fmt.Printf("  Calories:       %d\n", weekly.Calories)
}

// runSession drives a single workout session at the terminal. The countdown
// ticks once per second; commands are read line by line from stdin.
func runSession(w *catalog.Workout, st *store.Store, log *slog.Logger) error {
	eng, err := session.New(w, st)
	if err != nil {
		return err
	}
	runner := session.NewRunner(eng, time.Second)
	runner.Start()
	defer runner.Stop()

	fmt.Printf("Starting %s (%d exercises)\n", w.Name, len(w.Exercises))
	fmt.Println("Commands: done, pause, resume, skip, quit")

	lines := make(chan string)
	go func() {
		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			lines <- strings.TrimSpace(sc.Text())
		}
		close(lines)
	}()

	refresh := time.NewTicker(time.Second)
	defer refresh.Stop()

	for {
		snap := eng.Snapshot()
		if snap.State == session.StateFinished.String() {
			fmt.Printf("\nSession finished. Completed: %v\n", snap.Session.Completed)
			return nil
		}
		printStatus(snap)

		select {
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			switch line {
			case "done", "d", "":
				if err := eng.CompleteCurrentSet(); err != nil {
					log.Warn("history commit failed, retrying", "error", err)
					if err := eng.RetryCommit(); err != nil {
						return err
					}
				}
			case "pause", "p":
				eng.Pause()
			case "resume", "r":
				eng.Resume()
			case "skip", "s":
				if err := eng.SkipToNextExercise(); err != nil {
					log.Warn("history commit failed, retrying", "error", err)
					if err := eng.RetryCommit(); err != nil {
						return err
					}
				}
			case "quit", "q":
				fmt.Println("Abandoning session; nothing recorded.")
				return nil
			default:
				fmt.Printf("unknown command %q\n", line)
			}
		case <-refresh.C:
		}
	}
}

func printStatus(snap session.Snapshot) {
	switch snap.State {
	case "resting":
		fmt.Printf("\r[%s] set %d/%d of %s: rest %ds   ",
			snap.State, snap.SetNumber, snap.TotalSets, snap.ExerciseName, snap.SecondsRemaining)
	case "ready":
		fmt.Printf("\r[%s] set %d/%d of %s: %d reps, type done when finished   ",
			snap.State, snap.SetNumber, snap.TotalSets, snap.ExerciseName, snap.Reps)
	default:
		fmt.Printf("\r[%s] set %d/%d of %s   ",
			snap.State, snap.SetNumber, snap.TotalSets, snap.ExerciseName)
	}
}
