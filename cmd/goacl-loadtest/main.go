package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	goACL "github.com/MrEthical07/goACL"
	"github.com/MrEthical07/goACL/rolebitmap"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type scopeState struct {
	scope  goACL.Scope
	holder goACL.Account
}

func main() {
	var (
		scopes      = flag.Int("scopes", 50000, "number of scopes to seed")
		concurrency = flag.Int("concurrency", 256, "number of concurrent workers")
		ops         = flag.Int("ops", 200000, "operations per phase (check + churn)")
		redisAddr   = flag.String("redis-addr", "", "redis address; if empty, REDIS_ADDR env or miniredis is used")
		prefix      = flag.String("prefix", "acl", "state key prefix")
	)
	flag.Parse()

	if *scopes <= 0 || *concurrency <= 0 || *ops <= 0 {
		fmt.Fprintln(os.Stderr, "scopes, concurrency, and ops must be > 0")
		os.Exit(2)
	}

	ctx := context.Background()

	addr := *redisAddr
	if addr == "" {
		addr = os.Getenv("REDIS_ADDR")
	}

	var cleanup func()
	if addr == "" {
		mr, err := miniredis.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to start miniredis: %v\n", err)
			os.Exit(1)
		}
		addr = mr.Addr()
		cleanup = mr.Close
		fmt.Printf("using miniredis at %s\n", addr)
	} else {
		cleanup = func() {}
		fmt.Printf("using redis at %s\n", addr)
	}
	defer cleanup()

	client := redis.NewClient(&redis.Options{Addr: addr})
	defer func() { _ = client.Close() }()

	cfg := goACL.DefaultConfig()
	cfg.State.RedisPrefix = *prefix

	engine, err := goACL.New().
		WithConfig(cfg).
		WithRedis(client).
		WithRoles("observer", "subregistry", "set-subregistry", "renew").
		Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "engine build failed: %v\n", err)
		os.Exit(1)
	}
	defer engine.Close()

	super := goACL.NewAccount()
	admins, err := engine.Registry().Admins("observer", "subregistry", "set-subregistry", "renew")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := engine.Bootstrap(ctx, admins, super); err != nil {
		fmt.Fprintf(os.Stderr, "bootstrap failed: %v\n", err)
		os.Exit(1)
	}

	roles, err := engine.Registry().Roles("set-subregistry", "renew")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	churnRole, err := engine.Registry().Roles("observer")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	states := make([]scopeState, *scopes)
	fmt.Printf("seeding %d scopes...\n", *scopes)
	startSeed := time.Now()
	for i := 0; i < *scopes; i++ {
		states[i] = scopeState{scope: scopeFor(i), holder: goACL.NewAccount()}
		if err := engine.SeedRoles(ctx, states[i].scope, roles, states[i].holder); err != nil {
			fmt.Fprintf(os.Stderr, "seed failed: %v\n", err)
			os.Exit(1)
		}
	}
	fmt.Printf("seeded in %s\n", time.Since(startSeed).Round(time.Millisecond))

	checkStats := runCheckPhase(ctx, engine, states, roles, *ops, *concurrency)
	churnStats := runChurnPhase(ctx, engine, states, super, churnRole, *ops, *concurrency)

	fmt.Println("---- results ----")
	printStats("check", checkStats)
	printStats("churn", churnStats)
}

// runCheckPhase measures HasRoles latency: random scope, known holder.
func runCheckPhase(ctx context.Context, engine *goACL.Engine, states []scopeState, roles rolebitmap.Bitmap, ops, concurrency int) phaseStats {
	var (
		wg        sync.WaitGroup
		cursor    int64
		failures  int64
		latencies = make([]time.Duration, 0, ops)
		mu        sync.Mutex
	)

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(worker)*7919))
			for {
				i := int(atomic.AddInt64(&cursor, 1)) - 1
				if i >= ops {
					return
				}
				s := states[r.Intn(len(states))]
				t0 := time.Now()
				has, err := engine.HasRoles(ctx, s.scope, roles, s.holder)
				d := time.Since(t0)
				if err != nil || !has {
					atomic.AddInt64(&failures, 1)
				}
				mu.Lock()
				latencies = append(latencies, d)
				mu.Unlock()
			}
		}(w)
	}
	wg.Wait()
	total := time.Since(start)
	return computeStats(total, latencies, failures)
}

// runChurnPhase measures grant+revoke round trips driven by the super admin.
func runChurnPhase(ctx context.Context, engine *goACL.Engine, states []scopeState, super goACL.Account, role rolebitmap.Bitmap, ops, concurrency int) phaseStats {
	var (
		wg        sync.WaitGroup
		cursor    int64
		failures  int64
		latencies = make([]time.Duration, 0, ops)
		mu        sync.Mutex
	)

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(worker)*6151))
			for {
				i := int(atomic.AddInt64(&cursor, 1)) - 1
				if i >= ops {
					return
				}
				s := states[r.Intn(len(states))]
				grantee := goACL.NewAccount()

				t0 := time.Now()
				_, errGrant := engine.GrantRoles(ctx, super, s.scope, role, grantee)
				_, errRevoke := engine.RevokeRoles(ctx, super, s.scope, role, grantee)
				d := time.Since(t0)
				if errGrant != nil || errRevoke != nil {
					atomic.AddInt64(&failures, 1)
				}

				mu.Lock()
				latencies = append(latencies, d)
				mu.Unlock()
			}
		}(w)
	}
	wg.Wait()
	total := time.Since(start)
	return computeStats(total, latencies, failures)
}

type phaseStats struct {
	total    time.Duration
	ops      int
	failures int64
	p50      time.Duration
	p95      time.Duration
	p99      time.Duration
	opsPerS  float64
}

func computeStats(total time.Duration, samples []time.Duration, failures int64) phaseStats {
	if len(samples) == 0 {
		return phaseStats{total: total}
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })
	return phaseStats{
		total:    total,
		ops:      len(samples),
		failures: failures,
		p50:      percentile(samples, 50),
		p95:      percentile(samples, 95),
		p99:      percentile(samples, 99),
		opsPerS:  float64(len(samples)) / total.Seconds(),
	}
}

func percentile(samples []time.Duration, p int) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	if p <= 0 {
		return samples[0]
	}
	if p >= 100 {
		return samples[len(samples)-1]
	}
	idx := (len(samples) - 1) * p / 100
	return samples[idx]
}

func printStats(name string, s phaseStats) {
	fmt.Printf("%s: ops=%d failures=%d total=%s ops/sec=%.0f p50=%s p95=%s p99=%s\n",
		name,
		s.ops,
		s.failures,
		s.total.Round(time.Millisecond),
		s.opsPerS,
		s.p50.Round(time.Microsecond),
		s.p95.Round(time.Microsecond),
		s.p99.Round(time.Microsecond),
	)
}

func scopeFor(i int) goACL.Scope {
	var s goACL.Scope
	for j := 0; j < 8; j++ {
		s[j] = byte(i >> (8 * j))
	}
	s[8] = 1
	return s
}
