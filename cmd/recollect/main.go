// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	recollect "github.com/poiesic/recollect"
	"github.com/poiesic/recollect/ai"
	"github.com/poiesic/recollect/config"
	"github.com/poiesic/recollect/core"
	"github.com/poiesic/recollect/ingest"
	"github.com/poiesic/recollect/profile"
	"github.com/poiesic/recollect/rag"
)

func main() {
	app := &cli.App{
		Name:  "recollect",
		Usage: "Personal memory system: ingest your files, then talk to them",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "data-dir",
				Usage:   "Directory holding profile data",
				Value:   "data/profiles",
				EnvVars: []string{"RECOLLECT_DATA_DIR"},
			},
			&cli.StringFlag{
				Name:    "provider",
				Usage:   "AI provider for chat and vision (openai, anthropic, ollama)",
				Value:   ai.ProviderOpenAI,
				EnvVars: []string{"RECOLLECT_PROVIDER"},
			},
			&cli.StringFlag{
				Name:    "chat-model",
				Usage:   "Conversation model name",
				EnvVars: []string{"RECOLLECT_CHAT_MODEL"},
			},
			&cli.StringFlag{
				Name:    "vision-model",
				Usage:   "Image description model name (defaults to chat model)",
				EnvVars: []string{"RECOLLECT_VISION_MODEL"},
			},
			&cli.StringFlag{
				Name:    "embedding-host",
				Usage:   "Embedding service host URL",
				EnvVars: []string{"RECOLLECT_EMBEDDING_HOST"},
			},
			&cli.StringFlag{
				Name:    "embedding-model",
				Usage:   "Embedding model name",
				EnvVars: []string{"RECOLLECT_EMBEDDING_MODEL"},
			},
			&cli.StringFlag{
				Name:    "openai-key",
				Usage:   "OpenAI API key",
				EnvVars: []string{"OPENAI_API_KEY", "RECOLLECT_OPENAI_API_KEY"},
			},
			&cli.StringFlag{
				Name:    "anthropic-key",
				Usage:   "Anthropic API key",
				EnvVars: []string{"ANTHROPIC_API_KEY", "RECOLLECT_ANTHROPIC_API_KEY"},
			},
			&cli.StringFlag{
				Name:    "ollama-host",
				Usage:   "Ollama server URL",
				EnvVars: []string{"OLLAMA_BASE_URL", "RECOLLECT_OLLAMA_HOST"},
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "create",
				Usage:  "Create a persona profile",
				Action: createCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Aliases:  []string{"n"},
						Usage:    "Profile name",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "description",
						Usage: "Who this persona is",
					},
					&cli.StringFlag{
						Name:  "language",
						Usage: "Answer language (english, italian)",
						Value: "english",
					},
					&cli.StringSliceFlag{
						Name:  "trait",
						Usage: "Personality trait (repeatable)",
					},
					&cli.StringSliceFlag{
						Name:  "domain",
						Usage: "Knowledge domain (repeatable)",
					},
					&cli.BoolFlag{
						Name:  "open-domain",
						Usage: "Allow answers beyond the stored memories",
					},
				},
			},
			{
				Name:   "list",
				Usage:  "List profiles",
				Action: listCommand,
			},
			{
				Name:      "ingest",
				Usage:     "Ingest a file or directory into a profile's memory",
				ArgsUsage: "PROFILE PATH",
				Action:    ingestCommand,
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:  "tag",
						Usage: "Tag recorded on every chunk (repeatable)",
					},
					&cli.StringFlag{
						Name:  "description",
						Usage: "Manual description for media files",
					},
					&cli.BoolFlag{
						Name:  "no-vision",
						Usage: "Skip AI analysis of photos and videos",
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Search a profile's memories",
				ArgsUsage: "PROFILE QUERY",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "top-k",
						Aliases: []string{"k"},
						Usage:   "Number of results",
						Value:   5,
					},
				},
			},
			{
				Name:      "stats",
				Usage:     "Show memory statistics for a profile",
				ArgsUsage: "PROFILE",
				Action:    statsCommand,
			},
			{
				Name:      "chat",
				Usage:     "Talk to a profile's persona",
				ArgsUsage: "PROFILE",
				Action:    chatCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// buildSettings assembles the pipeline settings from global flags.
func buildSettings(c *cli.Context) (*config.Settings, error) {
	return config.NewSettings(config.WithDataDir(c.String("data-dir"))), nil
}

// buildAIConfig assembles the provider configuration from global flags,
// leaving defaults in place for anything unset.
func buildAIConfig(c *cli.Context) *ai.Config {
	opts := []ai.ConfigOption{
		ai.WithProvider(c.String("provider")),
		ai.WithOpenAIKey(c.String("openai-key")),
		ai.WithAnthropicKey(c.String("anthropic-key")),
	}
	if v := c.String("chat-model"); v != "" {
		opts = append(opts, ai.WithChatModel(v))
	}
	if v := c.String("vision-model"); v != "" {
		opts = append(opts, ai.WithVisionModel(v))
	}
	if v := c.String("embedding-host"); v != "" {
		opts = append(opts, ai.WithEmbeddingHost(v))
	}
	if v := c.String("embedding-model"); v != "" {
		opts = append(opts, ai.WithEmbeddingModel(v))
	}
	if v := c.String("ollama-host"); v != "" {
		opts = append(opts, ai.WithOllamaHost(v))
	}
	return ai.NewConfig(opts...)
}

func openMemory(c *cli.Context, profileName string) (*recollect.Memory, *config.Settings, error) {
	settings, err := buildSettings(c)
	if err != nil {
		return nil, nil, err
	}
	memory, err := recollect.Open(settings, profileName, recollect.WithAIConfig(buildAIConfig(c)))
	if err != nil {
		return nil, nil, err
	}
	return memory, settings, nil
}

func createCommand(c *cli.Context) error {
	settings, err := buildSettings(c)
	if err != nil {
		return err
	}

	p := &profile.Profile{
		Name:        c.String("name"),
		Description: c.String("description"),
		Language:    strings.ToLower(c.String("language")),
		Traits:      c.StringSlice("trait"),
		Domains:     c.StringSlice("domain"),
		OpenDomain:  c.Bool("open-domain"),
	}
	if err := p.Save(settings.DataDir); err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}

	fmt.Printf("Created profile %q in %s\n", p.Name, p.Dir(settings.DataDir))
	return nil
}

func listCommand(c *cli.Context) error {
	settings, err := buildSettings(c)
	if err != nil {
		return err
	}

	profiles, err := profile.List(settings.DataDir)
	if err != nil {
		return err
	}
	if len(profiles) == 0 {
		fmt.Println("No profiles yet. Create one with: recollect create --name NAME")
		return nil
	}
	for _, p := range profiles {
		fmt.Printf("%-20s %s (%s)\n", p.Name, p.Description, p.Language)
	}
	return nil
}

func ingestCommand(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("usage: recollect ingest PROFILE PATH")
	}
	profileName, path := c.Args().Get(0), c.Args().Get(1)
	ctx := context.Background()

	memory, _, err := openMemory(c, profileName)
	if err != nil {
		return err
	}
	defer memory.Close()

	ingestor, err := memory.NewIngestor()
	if err != nil {
		return fmt.Errorf("failed to build ingestor: %w", err)
	}

	opts := &ingest.FileOptions{
		Tags:          c.StringSlice("tag"),
		Description:   c.String("description"),
		DisableVision: c.Bool("no-vision"),
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	var chunks []core.Chunk
	if info.IsDir() {
		result, err := ingestor.IngestDirectory(ctx, path, opts)
		if err != nil {
			return fmt.Errorf("ingestion failed: %w", err)
		}
		for _, fileErr := range result.Errors {
			fmt.Fprintf(os.Stderr, "skipped %s: %s\n", fileErr.Path, fileErr.Reason)
		}
		chunks = result.Chunks
	} else {
		chunks, err = ingestor.IngestFile(ctx, path, opts)
		if err != nil {
			return fmt.Errorf("ingestion failed: %w", err)
		}
	}

	written, err := memory.Store().AddDocuments(ctx, chunks)
	if err != nil {
		return fmt.Errorf("failed to store memories: %w", err)
	}

	fmt.Printf("Ingested %d chunks, stored %d new memories\n", len(chunks), written)
	return nil
}

func searchCommand(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("usage: recollect search PROFILE QUERY")
	}
	profileName, query := c.Args().Get(0), c.Args().Get(1)
	ctx := context.Background()

	memory, _, err := openMemory(c, profileName)
	if err != nil {
		return err
	}
	defer memory.Close()

	retriever := rag.NewRetriever(memory.Store(), c.Int("top-k"))
	memories, err := retriever.Retrieve(ctx, query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if len(memories) == 0 {
		fmt.Println("No memories found.")
		return nil
	}

	for i, m := range memories {
		fmt.Printf("%d. [%.2f] %s\n", i+1, m.Score, firstLine(m.Text))
		if source := m.Metadata["source"]; source != "" {
			fmt.Printf("   source: %s\n", source)
		}
	}
	return nil
}

func statsCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: recollect stats PROFILE")
	}

	memory, settings, err := openMemory(c, c.Args().Get(0))
	if err != nil {
		return err
	}
	defer memory.Close()

	count, err := memory.Store().Count(context.Background())
	if err != nil {
		return err
	}

	p := memory.Profile()
	fmt.Printf("Profile:  %s (%s)\n", p.Name, p.Language)
	fmt.Printf("Data dir: %s\n", p.Dir(settings.DataDir))
	fmt.Printf("Memories: %d\n", count)
	return nil
}

func chatCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: recollect chat PROFILE")
	}
	ctx := context.Background()

	memory, _, err := openMemory(c, c.Args().Get(0))
	if err != nil {
		return err
	}
	defer memory.Close()

	sess, err := memory.NewSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}

	fmt.Printf("Chatting with %s. Empty line or Ctrl-D quits.\n", memory.Profile().Name)
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			break
		}

		_, err := sess.ChatStream(ctx, question, func(chunk string) error {
			fmt.Print(chunk)
			return nil
		})
		if err != nil {
			return fmt.Errorf("chat failed: %w", err)
		}
		fmt.Println()
	}
	return scanner.Err()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
