package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/lk2023060901/contract-parser-backend/internal/conf"
	"github.com/lk2023060901/contract-parser-backend/internal/contract/biz"
	"github.com/lk2023060901/contract-parser-backend/internal/contract/chunker"
	"github.com/lk2023060901/contract-parser-backend/internal/contract/embedding"
	"github.com/lk2023060901/contract-parser-backend/internal/contract/extractor"
	"github.com/lk2023060901/contract-parser-backend/internal/contract/storage"
	ctypes "github.com/lk2023060901/contract-parser-backend/internal/contract/types"
	"github.com/lk2023060901/contract-parser-backend/internal/pkg/logger"
	"github.com/lk2023060901/contract-parser-backend/internal/pkg/milvus"
	"github.com/lk2023060901/contract-parser-backend/internal/pkg/workerpool"
)

var (
	configFile  = flag.String("config", "", "config file path (empty uses defaults and environment)")
	file        = flag.String("file", "", "contract file to process")
	dir         = flag.String("dir", "", "process all supported contract files in a directory")
	strategy    = flag.String("strategy", "clauses", "chunking strategy: clauses, sentences or paragraphs")
	query       = flag.String("query", "", "search the indexed contracts with a natural language query")
	interactive = flag.Bool("interactive", false, "start an interactive search session")
	stats       = flag.Bool("stats", false, "print system statistics")
	clear       = flag.Bool("clear", false, "delete all indexed contract data")
	deleteDoc   = flag.String("delete", "", "delete all chunks of a document by id")
)

func main() {
	flag.Parse()

	// Load configuration
	config, err := conf.LoadConfig(*configFile)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger with config
	log, err := logger.New(&config.Log)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	if err := logger.InitGlobal(&config.Log); err != nil {
		log.Fatal("failed to initialize global logger", zap.Error(err))
	}

	ctx := context.Background()

	parser, cleanup, err := buildParser(ctx, config, log)
	if err != nil {
		log.Fatal("failed to initialize pipeline", zap.Error(err))
	}
	defer cleanup()

	chunkStrategy, err := chunker.ParseStrategy(*strategy)
	if err != nil {
		log.Fatal("invalid chunking strategy", zap.String("strategy", *strategy), zap.Error(err))
	}

	switch {
	case *clear:
		runClear(ctx, parser)
	case *deleteDoc != "":
		runDelete(ctx, parser, *deleteDoc)
	case *stats:
		runStats(ctx, parser)
	case *file != "":
		runProcessFile(ctx, parser, *file, chunkStrategy)
		if *interactive {
			runInteractive(ctx, parser)
		}
	case *dir != "":
		runProcessDir(ctx, parser, *dir, chunkStrategy)
		if *interactive {
			runInteractive(ctx, parser)
		}
	case *query != "":
		runSearch(ctx, parser, *query)
	case *interactive:
		runInteractive(ctx, parser)
	default:
		flag.Usage()
		os.Exit(2)
	}
}

// buildParser wires the processing pipeline from configuration
func buildParser(ctx context.Context, config *conf.Config, log *logger.Logger) (*biz.ContractParser, func(), error) {
	client, err := milvus.New(ctx, &config.Milvus, log)
	if err != nil {
		return nil, nil, fmt.Errorf("milvus: %w", err)
	}

	if err := client.Ping(ctx); err != nil {
		client.Close(ctx)
		return nil, nil, fmt.Errorf("milvus unreachable: %w", err)
	}

	store := storage.NewMilvusStore(client, config.Search.Collection, config.Embedding.Dimension, log)

	embedder, err := embedding.NewOpenAIEmbedder(&config.Embedding, log)
	if err != nil {
		client.Close(ctx)
		return nil, nil, fmt.Errorf("embedder: %w", err)
	}

	var tokenizer *chunker.Tokenizer
	if config.Chunker.TokenEncoding != "" {
		tokenizer, err = chunker.NewTokenizer(config.Chunker.TokenEncoding)
		if err != nil {
			client.Close(ctx)
			return nil, nil, fmt.Errorf("tokenizer: %w", err)
		}
	}

	coordinator, err := chunker.NewCoordinator(&config.Chunker, tokenizer, log)
	if err != nil {
		client.Close(ctx)
		return nil, nil, fmt.Errorf("chunker: %w", err)
	}

	pool, err := workerpool.New(&config.Workers, log.Logger)
	if err != nil {
		client.Close(ctx)
		return nil, nil, fmt.Errorf("worker pool: %w", err)
	}

	parser, err := biz.NewContractParser(
		extractor.NewFactory(),
		coordinator,
		embedder,
		store,
		pool,
		&config.Search,
		log,
	)
	if err != nil {
		pool.Shutdown()
		client.Close(ctx)
		return nil, nil, err
	}

	if err := parser.Init(ctx); err != nil {
		pool.Shutdown()
		client.Close(ctx)
		return nil, nil, fmt.Errorf("collection: %w", err)
	}

	cleanup := func() {
		pool.Shutdown()
		if err := client.Close(context.Background()); err != nil {
			log.Warn("failed to close milvus client", zap.Error(err))
		}
	}

	return parser, cleanup, nil
}

func runProcessFile(ctx context.Context, parser *biz.ContractParser, path string, strategy chunker.Strategy) {
	fmt.Printf("Processing %s (strategy: %s)...\n", path, strategy)

	result, err := parser.ProcessFile(ctx, path, strategy)
	if err != nil {
		fmt.Printf("✗ %v\n", err)
		os.Exit(1)
	}

	printProcessResult(result)
}

func runProcessDir(ctx context.Context, parser *biz.ContractParser, dir string, strategy chunker.Strategy) {
	paths, err := collectFiles(dir)
	if err != nil {
		fmt.Printf("✗ %v\n", err)
		os.Exit(1)
	}

	if len(paths) == 0 {
		fmt.Printf("No supported contract files found in %s\n", dir)
		return
	}

	fmt.Printf("Processing %d files from %s (strategy: %s)...\n", len(paths), dir, strategy)

	results := parser.BatchProcess(ctx, paths, strategy)

	succeeded := 0
	for _, r := range results {
		if r.Err != nil {
			fmt.Printf("  ✗ %s: %v\n", filepath.Base(r.Filename), r.Err)
			continue
		}
		succeeded++
		fmt.Printf("  ✓ %s: %d chunks, %d tokens (%dms)\n",
			r.Result.Filename, r.Result.ChunkCount, r.Result.TokenCount, r.Result.Took)
	}

	fmt.Printf("Done: %d/%d files processed\n", succeeded, len(results))
}

// collectFiles lists supported contract files in a directory, sorted by name
func collectFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if ctypes.FileTypeFromPath(entry.Name()).Valid() {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}

	sort.Strings(paths)
	return paths, nil
}

func runSearch(ctx context.Context, parser *biz.ContractParser, query string) {
	resp, err := parser.Search(ctx, &ctypes.SearchRequest{Query: query})
	if err != nil {
		fmt.Printf("✗ %v\n", err)
		os.Exit(1)
	}

	printSearchResponse(resp)
}

func runInteractive(ctx context.Context, parser *biz.ContractParser) {
	fmt.Println("\nInteractive contract search")
	fmt.Println("Type a question, 'stats' for statistics, or 'quit' to exit.")
	fmt.Println("Examples: \"When can I terminate the contract?\", \"What are the payment terms?\"")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\n> ")
		if !scanner.Scan() {
			return
		}

		input := strings.TrimSpace(scanner.Text())
		switch {
		case input == "":
			continue
		case input == "quit" || input == "exit":
			return
		case input == "stats":
			runStats(ctx, parser)
		default:
			resp, err := parser.Search(ctx, &ctypes.SearchRequest{Query: input})
			if err != nil {
				fmt.Printf("✗ %v\n", err)
				continue
			}
			printSearchResponse(resp)
		}
	}
}

func runStats(ctx context.Context, parser *biz.ContractParser) {
	stats, err := parser.Stats(ctx)
	if err != nil {
		fmt.Printf("✗ %v\n", err)
		os.Exit(1)
	}

	fmt.Println("System statistics:")
	fmt.Printf("  collection: %s\n", stats.Collection)
	fmt.Printf("  chunks:     %d\n", stats.RowCount)
	fmt.Printf("  model:      %s\n", stats.Model)
	fmt.Printf("  dimension:  %d\n", stats.Dimension)
}

func runClear(ctx context.Context, parser *biz.ContractParser) {
	if err := parser.Clear(ctx); err != nil {
		fmt.Printf("✗ %v\n", err)
		os.Exit(1)
	}
	fmt.Println("✓ All contract data cleared")
}

func runDelete(ctx context.Context, parser *biz.ContractParser, documentID string) {
	if err := parser.DeleteDocument(ctx, documentID); err != nil {
		fmt.Printf("✗ %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✓ Document %s deleted\n", documentID)
}

func printProcessResult(result *ctypes.ProcessResult) {
	fmt.Printf("✓ %s processed in %dms\n", result.Filename, result.Took)
	fmt.Printf("  document id: %s\n", result.DocumentID)
	fmt.Printf("  strategy:    %s\n", result.Strategy)
	fmt.Printf("  chunks:      %d\n", result.ChunkCount)
	fmt.Printf("  tokens:      %d\n", result.TokenCount)

	if result.Stats != nil {
		fmt.Printf("  chunk sizes: min %d / avg %.0f / max %d chars\n",
			result.Stats.MinChunkSize, result.Stats.AverageChunkSize, result.Stats.MaxChunkSize)
	}
}

func printSearchResponse(resp *ctypes.SearchResponse) {
	if resp.Total == 0 {
		fmt.Printf("No results for %q\n", resp.Query)
		return
	}

	fmt.Printf("Found %d results for %q (%dms):\n", resp.Total, resp.Query, resp.Took)
	for i, chunk := range resp.Results {
		fmt.Printf("\n%d. [score %.4f]", i+1, chunk.Score)
		if heading := chunk.Heading(); heading != "" {
			fmt.Printf(" %s", heading)
		}
		fmt.Println()
		fmt.Printf("   %s\n", snippet(chunk.Content, 240))
	}
}

// snippet shortens content for terminal display
func snippet(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
