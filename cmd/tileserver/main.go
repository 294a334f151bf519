package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/joeblew999/h3mvt/internal/db"
	"github.com/joeblew999/h3mvt/internal/httpserver"
	"github.com/joeblew999/h3mvt/internal/loader"
)

// Options defines all CLI flags and env vars for the tile server.
// Flags: --host, --port, --data-dir, --dataset, --column
// Env vars: SERVICE_HOST, SERVICE_PORT, SERVICE_DATA_DIR, SERVICE_DATASET, SERVICE_COLUMN
type Options struct {
	Host    string `doc:"Host to bind to" default:"0.0.0.0"`
	Port    int    `doc:"Port to listen on" short:"p" default:"8087"`
	DataDir string `doc:"Directory for datasets and the DuckDB catalog" default:".data"`
	Dataset string `doc:"Parquet file (relative to data-dir/datasets) to preload cells from" default:""`
	Column  string `doc:"Column holding hex-encoded H3 cell indices" default:"h3_cell"`
}

func newServer(opts *Options) (*httpserver.Server, error) {
	var data *loader.Dataset
	if opts.Dataset != "" {
		conn, err := db.Get(db.Config{DataDir: opts.DataDir, DBName: "h3mvt"})
		if err != nil {
			return nil, fmt.Errorf("connect duckdb: %w", err)
		}
		hexCells, err := db.LoadHexCells(conn, filepath.Join(opts.DataDir, "datasets", opts.Dataset), opts.Column)
		if err != nil {
			return nil, fmt.Errorf("load dataset %q: %w", opts.Dataset, err)
		}
		data, err = loader.NewDataset(hexCells)
		if err != nil {
			return nil, fmt.Errorf("build dataset: %w", err)
		}
	}

	return httpserver.New(httpserver.Config{
		Host:    opts.Host,
		Port:    fmt.Sprintf("%d", opts.Port),
		DataDir: opts.DataDir,
	}, data), nil
}

func main() {
	cli := humacli.New(func(hooks humacli.Hooks, opts *Options) {
		srv, err := newServer(opts)
		if err != nil {
			log.Fatalf("Server init error: %v", err)
		}

		hooks.OnStart(func() {
			addr := fmt.Sprintf("%s:%d", opts.Host, opts.Port)
			displayHost := opts.Host
			if displayHost == "0.0.0.0" {
				displayHost = "localhost"
			}
			baseURL := fmt.Sprintf("http://%s:%d", displayHost, opts.Port)

			fmt.Println()
			fmt.Printf("h3mvt tile server starting...\n")
			fmt.Printf("  Server:  %s\n", baseURL)
			fmt.Printf("  Data:    %s\n", opts.DataDir)
			fmt.Println()
			fmt.Printf("  Tiles:   %s/tiles/{z}/{x}/{y}.mvt\n", baseURL)
			fmt.Printf("  Scratch: %s/tiles/{z}/{x}/{y}/scratch.mvt\n", baseURL)
			fmt.Printf("  Docs:    %s/docs\n", baseURL)
			fmt.Printf("  OpenAPI: %s/openapi.json\n", baseURL)
			fmt.Println()

			if err := http.ListenAndServe(addr, srv); err != nil {
				log.Fatalf("Server error: %v", err)
			}
		})
	})

	cli.Root().Use = "tileserver"
	cli.Root().Short = "H3-to-MVT tile server"
	cli.Root().Version = "1.0.0"

	specCmd := &cobra.Command{
		Use:   "spec",
		Short: "Export OpenAPI spec (JSON by default, --yaml for YAML)",
		Run: humacli.WithOptions(func(cmd *cobra.Command, args []string, opts *Options) {
			srv, err := newServer(opts)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error building server: %v\n", err)
				os.Exit(1)
			}
			spec := srv.OpenAPI()

			useYAML, _ := cmd.Flags().GetBool("yaml")

			var output []byte
			if useYAML {
				output, err = yaml.Marshal(spec)
			} else {
				output, err = json.MarshalIndent(spec, "", "  ")
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error marshaling spec: %v\n", err)
				os.Exit(1)
			}
			fmt.Println(string(output))
		}),
	}
	specCmd.Flags().BoolP("yaml", "y", false, "Output as YAML instead of JSON")
	cli.Root().AddCommand(specCmd)

	cli.Run()
}
