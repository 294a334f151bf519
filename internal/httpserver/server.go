// Package httpserver exposes the tile renderer over HTTP: a Huma REST API
// for dataset introspection, plus the raw-binary /tiles endpoints that
// serve MVT payloads.
package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/paulmach/orb/encoding/mvt"

	"github.com/joeblew999/h3mvt/h3mvt"
	"github.com/joeblew999/h3mvt/internal/dataset"
	"github.com/joeblew999/h3mvt/internal/loader"
)

// Config holds the server configuration.
type Config struct {
	Host    string
	Port    string
	DataDir string
}

// Server is the tile HTTP server.
type Server struct {
	config  Config
	mux     *http.ServeMux
	humaAPI huma.API
	data    *loader.Dataset
	sets    *dataset.Service
}

// New creates a new tile server. data may be nil, in which case every tile
// request renders an empty (out-of-data) layer rather than failing.
func New(cfg Config, data *loader.Dataset) *Server {
	mux := http.NewServeMux()

	humaConfig := huma.DefaultConfig("h3mvt tile server", "1.0.0")
	humaConfig.Info.Description = "Renders H3 cell coverage as Mapbox Vector Tiles for a given XYZ tile."
	humaConfig.Servers = []*huma.Server{
		{URL: fmt.Sprintf("http://%s:%s", cfg.Host, cfg.Port), Description: "Local server"},
	}

	humaAPI := humago.New(mux, humaConfig)

	if data == nil {
		data, _ = loader.NewDataset(nil)
	}

	s := &Server{
		config:  cfg,
		mux:     mux,
		humaAPI: humaAPI,
		data:    data,
		sets:    dataset.New(cfg.DataDir),
	}

	s.routes()
	return s
}

// OpenAPI returns the generated OpenAPI document for this server.
func (s *Server) OpenAPI() *huma.OpenAPI {
	return s.humaAPI.OpenAPI()
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) routes() {
	huma.Get(s.humaAPI, "/health", s.getHealth, huma.OperationTags("health"))
	huma.Get(s.humaAPI, "/api/v1/datasets", s.getDatasets, huma.OperationTags("datasets"))
	huma.Get(s.humaAPI, "/tiles/{z}/{x}/{y}.mvt", s.getTile, huma.OperationTags("tiles"))
	huma.Get(s.humaAPI, "/tiles/{z}/{x}/{y}/scratch.mvt", s.getScratchTile, huma.OperationTags("tiles"))

	s.mux.HandleFunc("/", s.handleRoot)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"name":    "h3mvt tile server",
		"version": "1.0.0",
	})
}

// Health.

type HealthBody struct {
	Status string `json:"status" doc:"Health status" example:"ok"`
}

func (s *Server) getHealth(ctx context.Context, input *struct{}) (*struct{ Body HealthBody }, error) {
	return &struct{ Body HealthBody }{Body: HealthBody{Status: "ok"}}, nil
}

// Datasets.

type DatasetsOutput struct {
	Body []dataset.File
}

func (s *Server) getDatasets(ctx context.Context, input *struct{}) (*DatasetsOutput, error) {
	files, err := s.sets.List()
	if err != nil {
		return nil, huma.Error500InternalServerError("list datasets", err)
	}
	return &DatasetsOutput{Body: files}, nil
}

// Tiles.

// TileInput addresses one XYZ tile and the H3 resolution of the cells to
// render.
type TileInput struct {
	Z          uint32 `path:"z" doc:"Zoom level"`
	X          uint32 `path:"x" doc:"Tile column"`
	Y          uint32 `path:"y" doc:"Tile row"`
	Resolution int    `query:"resolution" default:"9" minimum:"0" maximum:"15" doc:"H3 resolution to render cells at"`
}

// TileOutput carries a raw protobuf-encoded MVT payload.
type TileOutput struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}

func (s *Server) getTile(ctx context.Context, in *TileInput) (*TileOutput, error) {
	return s.renderTile(in, false)
}

func (s *Server) getScratchTile(ctx context.Context, in *TileInput) (*TileOutput, error) {
	return s.renderTile(in, true)
}

func (s *Server) renderTile(in *TileInput, scratch bool) (*TileOutput, error) {
	tile, err := h3mvt.NewTileID(in.X, in.Y, in.Z)
	if err != nil {
		return nil, huma.Error400BadRequest("invalid tile id", err)
	}

	tileCells, err := tile.Cells(in.Resolution)
	if err != nil {
		return nil, huma.Error500InternalServerError("polyfill tile", err)
	}

	cells := intersect(tileCells, s.data.Cells(in.Resolution))

	layer, err := h3mvt.Render(tile, cells, "cells", scratch)
	if err != nil {
		return nil, huma.Error500InternalServerError("render tile", err)
	}

	body, err := mvt.MarshalGzipped(mvt.Layers{layer})
	if err != nil {
		return nil, huma.Error500InternalServerError("encode tile", err)
	}

	return &TileOutput{ContentType: "application/vnd.mapbox-vector-tile", Body: body}, nil
}

// intersect returns the dataset cells that also appear in the tile's
// polyfill set, preserving dataset order.
func intersect(tileCells map[h3mvt.Cell]struct{}, datasetCells []h3mvt.Cell) []h3mvt.Cell {
	out := make([]h3mvt.Cell, 0, len(datasetCells))
	for _, c := range datasetCells {
		if _, ok := tileCells[c]; ok {
			out = append(out, c)
		}
	}
	return out
}
