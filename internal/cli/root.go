package cmd

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/kdevan/doccrawl/internal/config"
	"github.com/kdevan/doccrawl/internal/engine"
	"github.com/kdevan/doccrawl/internal/metadata"
	"github.com/spf13/cobra"
)

var (
	cfgFile           string
	seedURLs          []string
	maxDepth          int
	concurrency       int
	outputDir         string
	dryRun            bool
	maxPages          int
	userAgent         string
	timeout           time.Duration
	baseDelay         time.Duration
	jitter            time.Duration
	randomSeed        int64
	allowedHosts      []string
	allowedPathPrefix []string

	strategy            string
	renderMode          string
	followExternalLinks bool
	includeSubdomains   bool
	maxDelay            time.Duration
	adaptiveDelay       bool
	redirectCap         int
	rotateUserAgents    bool
	respectRobots       bool
	robotsTTL           time.Duration
	negativeRobotsTTL   time.Duration
	enableDedup         bool
	similarityThreshold float64
	dedupStoreCapacity  int
	minDedupChars       int
)

// parseStringSliceToSet converts a string slice to a map[string]struct{} set
func parseStringSliceToSet(strings []string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, s := range strings {
		if s != "" {
			set[s] = struct{}{}
		}
	}
	return set
}

// parseSeedURLs converts a string slice of URLs to []url.URL
func parseSeedURLs(urlStrings []string) ([]url.URL, error) {
	if len(urlStrings) == 0 {
		return nil, fmt.Errorf("seed URLs cannot be empty")
	}

	var urls []url.URL
	for _, urlStr := range urlStrings {
		parsedURL, err := url.Parse(urlStr)
		if err != nil {
			return nil, fmt.Errorf("error parsing seed URL %s: %w", urlStr, err)
		}
		urls = append(urls, *parsedURL)
	}
	return urls, nil
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "docs-crawler",
	Short: "A local-only documentation crawler.",
	Long: `docs-crawler is a CLI application that crawls static documentation
websites and converts their content into clean, semantically faithful Markdown,
optimized for LLM Retrieval-Augmented Generation (RAG) workflows.

This tool aims to provide a deterministic and repeatable crawl process,
producing high-quality Markdown suitable for embedding and retrieval.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Check if seed URLs are provided
		if len(seedURLs) == 0 {
			fmt.Fprintf(os.Stderr, "Error: --seed-url is required. Please provide at least one seed URL to start crawling.\n")
			cmd.Usage()
			os.Exit(1)
		}

		// Parse seed URLs
		parsedURLs, err := parseSeedURLs(seedURLs)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}

		// Build config using initConfig with parsed seed URLs
		cfg := InitConfig(parsedURLs)

		// Display configuration for verification
		fmt.Printf("Configuration initialized successfully\n")
		if len(cfg.SeedURLs()) > 0 {
			var urls []string
			for _, u := range cfg.SeedURLs() {
				urls = append(urls, u.String())
			}
			fmt.Printf("Seed URLs: %s\n", strings.Join(urls, ", "))
		}
		if len(cfg.AllowedHosts()) > 0 {
			var hosts []string
			for host := range cfg.AllowedHosts() {
				hosts = append(hosts, host)
			}
			fmt.Printf("Allowed Hosts: %s\n", strings.Join(hosts, ", "))
		}
		if len(cfg.AllowedPathPrefix()) > 0 {
			fmt.Printf("Allowed Path Prefixes: %s\n", strings.Join(cfg.AllowedPathPrefix(), ", "))
		}
		fmt.Printf("Max Depth: %d\n", cfg.MaxDepth())
		fmt.Printf("Max Pages: %d\n", cfg.MaxPages())
		fmt.Printf("Concurrency: %d\n", cfg.Concurrency())
		fmt.Printf("Base Delay: %v\n", cfg.BaseDelay())
		fmt.Printf("Jitter: %v\n", cfg.Jitter())
		fmt.Printf("Random Seed: %d\n", cfg.RandomSeed())
		fmt.Printf("Timeout: %v\n", cfg.Timeout())
		fmt.Printf("User Agent: %s\n", cfg.UserAgent())
		fmt.Printf("Output Directory: %s\n", cfg.OutputDir())
		fmt.Printf("Dry Run: %t\n", cfg.DryRun())
		fmt.Printf("Strategy: %s\n", cfg.Strategy())
		fmt.Printf("Render Mode: %s\n", cfg.RenderMode())
		fmt.Printf("Respect Robots: %t\n", cfg.RespectRobots())
		fmt.Printf("Enable Dedup: %t\n", cfg.EnableDedup())

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		recorder := metadata.NewRecorder(nil)
		crawler := engine.New(cfg, recorder)

		fmt.Println("Crawl starting. Press Ctrl+C to stop early.")
		stats, err := crawler.Run(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: crawl ended with an error: %s\n", err)
			os.Exit(1)
		}

		fmt.Printf("Crawl finished in %v\n", stats.Duration)
		fmt.Printf("Pages crawled: %d\n", stats.PagesCrawled)
		fmt.Printf("Pages failed: %d\n", stats.PagesFailed)
		fmt.Printf("Pages skipped (robots disallow): %d\n", stats.PagesSkipped)
		fmt.Printf("Duplicates skipped: %d\n", stats.Duplicates)
		fmt.Printf("Assets written: %d\n", stats.Assets)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Here you will define your flags and configuration settings.
	// Cobra supports persistent flags, which, if defined here,
	// will be available to all subcommands in the docs-crawler application.
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config-file", "", "config file path (e.g., /home/myuser/config.json)")
	rootCmd.PersistentFlags().StringArrayVar(&seedURLs, "seed-url", []string{}, "one or more starting URLs (can be repeated)")
	rootCmd.PersistentFlags().IntVar(&maxDepth, "max-depth", 5, "maximum link depth from seed URL")
	rootCmd.PersistentFlags().IntVar(&concurrency, "concurrency", 3, "number of concurrent fetch workers")
	rootCmd.PersistentFlags().StringVar(&outputDir, "output-dir", "output", "root output directory for crawled content")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "crawl without writing output")
	rootCmd.PersistentFlags().IntVar(&maxPages, "max-pages", 0, "maximum number of pages to fetch (0 for unlimited)")
	rootCmd.PersistentFlags().StringVar(&userAgent, "user-agent", "", "user agent string for HTTP requests")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "timeout for HTTP requests")
	rootCmd.PersistentFlags().DurationVar(&baseDelay, "base-delay", 0, "base delay between HTTP requests to the same host")
	rootCmd.PersistentFlags().DurationVar(&jitter, "jitter", 0, "random jitter added to base delay")
	rootCmd.PersistentFlags().Int64Var(&randomSeed, "random-seed", 0, "seed for random number generation (0 for current time)")
	rootCmd.PersistentFlags().StringArrayVar(&allowedHosts, "allowed-host", []string{}, "explicit hostname allowlist (defaults to seed host)")
	rootCmd.PersistentFlags().StringArrayVar(&allowedPathPrefix, "allowed-path-prefix", []string{}, "restrict crawl to paths like `/docs`, `/guide`")

	rootCmd.PersistentFlags().StringVar(&strategy, "strategy", "", "frontier traversal order: bfs, dfs, or hybrid")
	rootCmd.PersistentFlags().StringVar(&renderMode, "render-mode", "", "fetch/render facade: static, javascript, or auto")
	rootCmd.PersistentFlags().BoolVar(&followExternalLinks, "follow-external-links", false, "follow links that leave the allowed host set")
	rootCmd.PersistentFlags().BoolVar(&includeSubdomains, "include-subdomains", true, "treat subdomains of an allowed host as in-scope")
	rootCmd.PersistentFlags().DurationVar(&maxDelay, "max-delay", 0, "ceiling on the per-host politeness delay")
	rootCmd.PersistentFlags().BoolVar(&adaptiveDelay, "adaptive-delay", true, "widen the per-host delay in response to 429/5xx feedback")
	rootCmd.PersistentFlags().IntVar(&redirectCap, "redirect-cap", 0, "maximum redirect hops to follow before treating a fetch as failed")
	rootCmd.PersistentFlags().BoolVar(&rotateUserAgents, "rotate-user-agents", true, "stored in the config; no component reads it, so every request sends the single --user-agent value")
	rootCmd.PersistentFlags().BoolVar(&respectRobots, "respect-robots", true, "honor robots.txt disallow and crawl-delay directives")
	rootCmd.PersistentFlags().DurationVar(&robotsTTL, "robots-ttl", 0, "how long a fetched robots.txt is cached")
	rootCmd.PersistentFlags().DurationVar(&negativeRobotsTTL, "negative-robots-ttl", 0, "how long a failed robots.txt fetch is cached before retrying")
	rootCmd.PersistentFlags().BoolVar(&enableDedup, "enable-dedup", true, "skip pages whose content near-duplicates one already crawled")
	rootCmd.PersistentFlags().Float64Var(&similarityThreshold, "similarity-threshold", 0, "SimHash similarity above which a page counts as a near-duplicate")
	rootCmd.PersistentFlags().IntVar(&dedupStoreCapacity, "dedup-store-capacity", 0, "maximum number of content fingerprints the deduplicator retains")
	rootCmd.PersistentFlags().IntVar(&minDedupChars, "min-dedup-chars", 0, "minimum content length before a page is eligible for dedup comparison")
}

// InitConfig reads in config file and ENV variables if set.
// seedUrls is a mandatory parameter and must contain at least one valid URL.
func InitConfig(seedUrls []url.URL) config.Config {
	cfg, err := InitConfigWithError(seedUrls)
	if err != nil {
		fmt.Printf("Error: %s\n", err)
		os.Exit(1)
	}
	return cfg
}

// InitConfigWithError reads in config file and ENV variables if set, returning any errors.
// seedUrls is a mandatory parameter and must contain at least one valid URL.
// This makes it easier to test error cases.
func InitConfigWithError(seedUrls []url.URL) (config.Config, error) {
	if len(seedUrls) == 0 {
		return config.Config{}, fmt.Errorf("%w: seedUrls cannot be empty", config.ErrInvalidConfig)
	}

	if cfgFile != "" {
		fmt.Printf("Initializing config from file: %s\n", cfgFile)
		cfg, err := config.WithConfigFile(cfgFile)
		if err != nil {
			return cfg, fmt.Errorf("error initializing config from file: %w", err)
		}
		return cfg, nil
	}

	// Build config from CLI flags using the With... functions with method chaining
	fmt.Println("No config file specified. Using default flag values or environment variables")

	// Start with default config using provided seed URLs and apply overrides using method chaining
	configBuilder := config.WithDefault(seedUrls)

	// Override with CLI flag values where provided
	if maxDepth > 0 {
		configBuilder = configBuilder.WithMaxDepth(maxDepth)
	}

	if concurrency > 0 {
		configBuilder = configBuilder.WithConcurrency(concurrency)
	}

	if outputDir != "" && outputDir != "output" {
		configBuilder = configBuilder.WithOutputDir(outputDir)
	}

	if dryRun {
		configBuilder = configBuilder.WithDryRun(dryRun)
	}

	if maxPages > 0 {
		configBuilder = configBuilder.WithMaxPages(maxPages)
	}

	if userAgent != "" {
		configBuilder = configBuilder.WithUserAgent(userAgent)
	}

	if timeout > 0 {
		configBuilder = configBuilder.WithTimeout(timeout)
	}

	if baseDelay > 0 {
		configBuilder = configBuilder.WithBaseDelay(baseDelay)
	}

	if jitter > 0 {
		configBuilder = configBuilder.WithJitter(jitter)
	}

	if randomSeed != 0 {
		configBuilder = configBuilder.WithRandomSeed(randomSeed)
	}

	if len(allowedHosts) > 0 {
		configBuilder = configBuilder.WithAllowedHosts(parseStringSliceToSet(allowedHosts))
	}

	if len(allowedPathPrefix) > 0 {
		configBuilder = configBuilder.WithAllowedPathPrefix(allowedPathPrefix)
	}

	if strategy != "" {
		configBuilder = configBuilder.WithStrategy(config.CrawlStrategy(strategy))
	}

	if renderMode != "" {
		configBuilder = configBuilder.WithRenderMode(config.RenderMode(renderMode))
	}

	// These carry real, non-zero-value defaults on the flag itself (mirroring
	// config.WithDefault's own defaults), so unlike the gated flags above
	// they're always applied: there's no zero value left over to treat as
	// "not set".
	configBuilder = configBuilder.
		WithFollowExternalLinks(followExternalLinks).
		WithIncludeSubdomains(includeSubdomains).
		WithAdaptiveDelay(adaptiveDelay).
		WithRotateUserAgents(rotateUserAgents).
		WithRespectRobots(respectRobots).
		WithEnableDedup(enableDedup)

	if maxDelay > 0 {
		configBuilder = configBuilder.WithMaxDelay(maxDelay)
	}

	if redirectCap > 0 {
		configBuilder = configBuilder.WithRedirectCap(redirectCap)
	}

	if robotsTTL > 0 {
		configBuilder = configBuilder.WithRobotsTTL(robotsTTL)
	}

	if negativeRobotsTTL > 0 {
		configBuilder = configBuilder.WithNegativeRobotsTTL(negativeRobotsTTL)
	}

	if similarityThreshold > 0 {
		configBuilder = configBuilder.WithSimilarityThreshold(similarityThreshold)
	}

	if dedupStoreCapacity > 0 {
		configBuilder = configBuilder.WithDedupStoreCapacity(dedupStoreCapacity)
	}

	if minDedupChars > 0 {
		configBuilder = configBuilder.WithMinDedupChars(minDedupChars)
	}

	cfg, err := configBuilder.Build()
	if err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func ResetFlags() {
	cfgFile = ""
	seedURLs = []string{}
	maxDepth = 0
	concurrency = 0
	outputDir = ""
	dryRun = false
	maxPages = 0
	userAgent = ""
	timeout = 0
	baseDelay = 0
	jitter = 0
	randomSeed = 0
	allowedHosts = []string{}
	allowedPathPrefix = []string{}

	strategy = ""
	renderMode = ""
	followExternalLinks = false
	includeSubdomains = true
	maxDelay = 0
	adaptiveDelay = true
	redirectCap = 0
	rotateUserAgents = true
	respectRobots = true
	robotsTTL = 0
	negativeRobotsTTL = 0
	enableDedup = true
	similarityThreshold = 0
	dedupStoreCapacity = 0
	minDedupChars = 0
}

// Test helper functions to set flag values from tests
func SetConfigFileForTest(path string) {
	cfgFile = path
}

func SetSeedURLsForTest(urls []string) {
	seedURLs = urls
}

func SetMaxDepthForTest(depth int) {
	maxDepth = depth
}

func SetConcurrencyForTest(conc int) {
	concurrency = conc
}

func SetOutputDirForTest(dir string) {
	outputDir = dir
}

func SetDryRunForTest(dry bool) {
	dryRun = dry
}

func SetMaxPagesForTest(pages int) {
	maxPages = pages
}

func SetUserAgentForTest(agent string) {
	userAgent = agent
}

func SetTimeoutForTest(t time.Duration) {
	timeout = t
}

func SetBaseDelayForTest(delay time.Duration) {
	baseDelay = delay
}

func SetJitterForTest(j time.Duration) {
	jitter = j
}

func SetRandomSeedForTest(seed int64) {
	randomSeed = seed
}

func SetAllowedHostsForTest(hosts []string) {
	allowedHosts = hosts
}

func SetAllowedPathPrefixForTest(prefixes []string) {
	allowedPathPrefix = prefixes
}

func SetStrategyForTest(s string) {
	strategy = s
}

func SetRenderModeForTest(m string) {
	renderMode = m
}

func SetFollowExternalLinksForTest(follow bool) {
	followExternalLinks = follow
}

func SetIncludeSubdomainsForTest(include bool) {
	includeSubdomains = include
}

func SetMaxDelayForTest(d time.Duration) {
	maxDelay = d
}

func SetAdaptiveDelayForTest(adaptive bool) {
	adaptiveDelay = adaptive
}

func SetRedirectCapForTest(cap int) {
	redirectCap = cap
}

func SetRotateUserAgentsForTest(rotate bool) {
	rotateUserAgents = rotate
}

func SetRespectRobotsForTest(respect bool) {
	respectRobots = respect
}

func SetRobotsTTLForTest(ttl time.Duration) {
	robotsTTL = ttl
}

func SetNegativeRobotsTTLForTest(ttl time.Duration) {
	negativeRobotsTTL = ttl
}

func SetEnableDedupForTest(enable bool) {
	enableDedup = enable
}

func SetSimilarityThresholdForTest(threshold float64) {
	similarityThreshold = threshold
}

func SetDedupStoreCapacityForTest(capacity int) {
	dedupStoreCapacity = capacity
}

func SetMinDedupCharsForTest(chars int) {
	minDedupChars = chars
}
