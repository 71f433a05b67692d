package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"
	"sort"
	"strings"
	"sync"
	"time"

	"sandfall/internal/app"
	"sandfall/internal/material"
	"sandfall/internal/scene"
	"sandfall/internal/sim"
)

type job struct {
	scene string
	seed  int64
}

type result struct {
	job
	elapsed   time.Duration
	reactions int
	hist      [material.Count]int
	err       error
}

func main() {
	ticks := flag.Int("ticks", 600, "ticks to simulate per run")
	seeds := flag.Int("seeds", 4, "seeds per scene")
	scenes := flag.String("scenes", strings.Join(scene.Names(), ","), "comma separated scenes")
	workers := flag.Int("workers", runtime.NumCPU(), "concurrent runs")
	cpuProfile := flag.String("cpuprofile", "", "write a CPU profile to this file")
	var sets app.KVList
	flag.Var(&sets, "set", "simulation override in key=value form (repeatable)")
	flag.Parse()

	stop := func() {}
	if *cpuProfile != "" {
		var err error
		if stop, err = startCPUProfile(*cpuProfile); err != nil {
			log.Fatalf("cpuprofile: %v", err)
		}
	}
	defer stop()

	overrides := sets.Map()
	overrides["demo"] = "false"
	// Each run is single-threaded so runs scale across workers.
	overrides["workers"] = "1"
	base, err := sim.FromMap(overrides)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	var all []job
	for _, name := range strings.Split(*scenes, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		for i := 0; i < *seeds; i++ {
			all = append(all, job{scene: name, seed: int64(i + 1)})
		}
	}
	fmt.Printf("Running %d scenarios (%d workers, %d ticks, %dx%d)\n", len(all), *workers, *ticks, base.Width, base.Height)

	jobs := make(chan job)
	results := make(chan result)
	var wg sync.WaitGroup
	for i := 0; i < max(*workers, 1); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				results <- run(base, j, *ticks)
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()
	go func() {
		for _, j := range all {
			jobs <- j
		}
		close(jobs)
	}()

	start := time.Now()
	var out []result
	failed := false
	for res := range results {
		if res.err != nil {
			log.Printf("%s/%d: %v", res.scene, res.seed, res.err)
			failed = true
			continue
		}
		out = append(out, res)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].scene != out[j].scene {
			return out[i].scene < out[j].scene
		}
		return out[i].seed < out[j].seed
	})

	fmt.Printf("\n%-8s %5s %10s %9s  %s\n", "scene", "seed", "ms/tick", "reactions", "histogram")
	for _, res := range out {
		perTick := float64(res.elapsed.Microseconds()) / 1000 / float64(max(*ticks, 1))
		fmt.Printf("%-8s %5d %10.3f %9d  %s\n", res.scene, res.seed, perTick, res.reactions, formatHistogram(res.hist))
	}
	fmt.Printf("\nTotal elapsed %s\n", time.Since(start).Round(time.Millisecond))
	if failed {
		stop()
		os.Exit(1)
	}
}

func run(base sim.Config, j job, ticks int) result {
	cfg := base
	cfg.Scene = j.scene
	cfg.Seed = j.seed
	res := result{job: j}
	s, err := sim.New(cfg)
	if err != nil {
		res.err = err
		return res
	}
	start := time.Now()
	for i := 0; i < ticks; i++ {
		o, err := s.Tick(sim.Input{Time: float32(i) / 60})
		if err != nil {
			res.err = err
			return res
		}
		res.reactions += o.Stats.Reactions
	}
	res.elapsed = time.Since(start)
	res.hist = s.Histogram()
	return res
}

func formatHistogram(h [material.Count]int) string {
	var b strings.Builder
	for m, n := range h {
		if n == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s=%d", material.Material(m), n)
	}
	return b.String()
}

func startCPUProfile(path string) (func(), error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, err
	}
	var once sync.Once
	return func() {
		once.Do(func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		})
	}, nil
}
