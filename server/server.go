// Package server exposes the paint-by-numbers pipeline over HTTP.
package server

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	pbn "github.com/setanarut/paintbynumbers"
	"github.com/setanarut/paintbynumbers/config"
	"github.com/setanarut/paintbynumbers/utils"
)

var allowedContentTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/jpg":  true,
}

type Server struct {
	settings *config.Settings
}

func New(settings *config.Settings) *Server {
	return &Server{settings: settings}
}

// Handler builds the gin engine with /health and /generate routes.
func (s *Server) Handler() *gin.Engine {
	e := gin.New()
	e.Use(gin.Recovery(), requestLogger())
	e.GET("/health", s.Health)
	e.POST("/generate", s.Generate)
	return e
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("took", time.Since(start)).
			Msg("request")
	}
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type File struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
	Data        string `json:"data"`
}

type GenerateResponse struct {
	ID      string               `json:"id"`
	Image   File                 `json:"image"`
	Preview File                 `json:"preview"`
	Palette []utils.PaletteEntry `json:"palette"`
	Legend  File                 `json:"legend"`
	Regions pbn.RegionStats      `json:"regions"`
}

type generateParams struct {
	numColors     int
	maxWidth      int
	minRegionSize int
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Bad request", "message": msg})
}

func (s *Server) formInt(c *gin.Context, key string, def, lo, hi int) (int, error) {
	raw, ok := c.GetPostForm(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return def, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	if v < lo || v > hi {
		return 0, fmt.Errorf("%s must be between %d and %d", key, lo, hi)
	}
	return v, nil
}

func (s *Server) params(c *gin.Context) (generateParams, error) {
	st := s.settings
	var p generateParams
	var err error
	if p.numColors, err = s.formInt(c, "num_colors", st.DefaultNumColors, st.MinColors, st.MaxColors); err != nil {
		return p, err
	}
	if p.maxWidth, err = s.formInt(c, "max_width", st.DefaultMaxWidth, st.MinWidth, st.MaxWidth); err != nil {
		return p, err
	}
	if p.minRegionSize, err = s.formInt(c, "min_region_size", st.MinRegionSize, st.MinRegionSizeLimit, st.MaxRegionSizeLimit); err != nil {
		return p, err
	}
	return p, nil
}

// Generate accepts a multipart upload and returns the numbered template,
// preview, palette and legend as base64 payloads.
func (s *Server) Generate(c *gin.Context) {
	id := uuid.NewString()
	logger := log.With().Str("id", id).Logger()

	file, err := c.FormFile("file")
	if err != nil {
		logger.Err(err).Msg("read file from form")
		badRequest(c, "Failed to read form file")
		return
	}
	if !allowedContentTypes[file.Header.Get("Content-Type")] {
		badRequest(c, "Unsupported file type")
		return
	}
	p, err := s.params(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	f, err := file.Open()
	if err != nil {
		logger.Err(err).Msg("open form file")
		badRequest(c, "Failed to open form file")
		return
	}
	defer f.Close()
	contents, err := io.ReadAll(io.LimitReader(f, s.settings.MaxUploadBytes+1))
	if err != nil {
		logger.Err(err).Msg("read form file")
		badRequest(c, "Failed to read form file")
		return
	}
	if len(contents) == 0 {
		badRequest(c, "File is empty")
		return
	}
	if int64(len(contents)) > s.settings.MaxUploadBytes {
		badRequest(c, "File too large")
		return
	}
	img, err := utils.DecodeImage(bytes.NewReader(contents))
	if err != nil {
		logger.Err(err).Msg("decode upload")
		badRequest(c, "Invalid image file")
		return
	}

	opt := pbn.Options{
		NumColors:     p.numColors,
		MaxWidth:      p.maxWidth,
		MinRegionSize: p.minRegionSize,
		MergePasses:   s.settings.MergePasses,
		PaletteMethod: s.settings.Method(),
	}
	resp, err := s.render(id, file.Filename, img, opt)
	if err != nil {
		logger.Err(err).Msg("generate")
		status := http.StatusInternalServerError
		if errors.Is(err, pbn.ErrInvalidGrid) || errors.Is(err, pbn.ErrEmptyPalette) {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{"error": "Failed to generate", "message": err.Error()})
		return
	}
	logger.Info().
		Int("colors", len(resp.Palette)).
		Int("regions", resp.Regions.Count).
		Msg("generated")
	c.JSON(http.StatusOK, resp)
}

func stem(filename string) string {
	base := filepath.Base(filename)
	st := strings.TrimSuffix(base, filepath.Ext(base))
	if st == "" || st == "." || st == "/" {
		return "output"
	}
	return st
}

func pngFile(name string, img image.Image) (File, error) {
	var buf bytes.Buffer
	if err := utils.EncodePNG(&buf, img); err != nil {
		return File{}, err
	}
	b := img.Bounds()
	return File{
		Filename:    name,
		ContentType: "image/png",
		Width:       b.Dx(),
		Height:      b.Dy(),
		Data:        base64.StdEncoding.EncodeToString(buf.Bytes()),
	}, nil
}

func (s *Server) render(id, filename string, img image.Image, opt pbn.Options) (*GenerateResponse, error) {
	b := pbn.NewBuilder(img)
	if err := b.Build(opt); err != nil {
		return nil, err
	}
	numbered, err := b.Numbered()
	if err != nil {
		return nil, err
	}
	legend, err := b.Legend()
	if err != nil {
		return nil, err
	}

	st := stem(filename)
	resp := &GenerateResponse{
		ID:      id,
		Palette: b.PaletteEntries(),
		Regions: b.Stats(),
		Legend: File{
			Filename:    st + "_palette_legend.pdf",
			ContentType: "application/pdf",
			Data:        base64.StdEncoding.EncodeToString(legend),
		},
	}
	if resp.Image, err = pngFile(st+"_paint_by_numbers.png", numbered); err != nil {
		return nil, err
	}
	if resp.Preview, err = pngFile(st+"_painted_preview.png", b.Preview()); err != nil {
		return nil, err
	}
	return resp, nil
}
