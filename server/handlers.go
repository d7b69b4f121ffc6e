package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/synesenom/dl/svgdom"
	"github.com/synesenom/dl/svgdraw"
	"github.com/synesenom/dl/svgexport"
	"github.com/synesenom/dl/svgpath"
	"github.com/synesenom/dl/svgraster"
)

// ============================================================
// Handlers
// ============================================================

// Handler serves the conversions, using the defaults of its config.
type Handler struct {
	opts svgexport.Options
}

func NewHandler(cfg *Config) *Handler {
	mode := svgdom.WarnErrorMode
	if cfg.Strict {
		mode = svgdom.StrictErrorMode
	}
	return &Handler{opts: svgexport.Options{
		Options: svgdom.Options{
			Author:    cfg.Author,
			Transform: svgpath.TransformParser{Unit: cfg.AngleUnit},
			ErrorMode: mode,
		},
		Metrics: svgraster.Metrics{MaxPixels: cfg.MaxPixels},
	}}
}

func errorJSON(c fiber.Ctx, status int, err error) error {
	return c.Status(status).JSON(fiber.Map{
		"error":      err.Error(),
		"request_id": requestID(c),
	})
}

// readUpload returns the svg sent as the multipart field "file",
// or else as the raw body.
func readUpload(c fiber.Ctx) ([]byte, error) {
	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		return c.Body(), nil
	}
	file, err := c.FormFile("file")
	if err != nil {
		return nil, errors.New("file required in multipart/form-data")
	}
	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// Convert handles POST /convert?format=eps|pdf|png&author=..&scale=..
func (h *Handler) Convert(c fiber.Ctx) error {
	format, err := svgdraw.ParseFormat(c.Query("format", "eps"))
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err)
	}
	opts := h.opts
	if author := c.Query("author"); author != "" {
		opts.Author = author
	}
	if s := c.Query("scale"); s != "" {
		scale, err := strconv.ParseFloat(s, 64)
		if err != nil || !(scale > 0) {
			return errorJSON(c, fiber.StatusBadRequest, fmt.Errorf("invalid scale %q", s))
		}
		opts.Metrics.Scale = scale
	}

	data, err := readUpload(c)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return errorJSON(c, fiber.StatusBadRequest, errors.New("svg document required"))
	}

	root, err := svgdom.Read(bytes.NewReader(data))
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err)
	}
	doc, err := svgdom.Convert(root, opts.Options)
	if err != nil {
		return errorJSON(c, fiber.StatusUnprocessableEntity, err)
	}
	var out bytes.Buffer
	if err := svgexport.Write(&out, doc, format, opts.Metrics); err != nil {
		if errors.Is(err, svgraster.ErrImageTooLarge) {
			return errorJSON(c, fiber.StatusRequestEntityTooLarge, err)
		}
		return errorJSON(c, fiber.StatusInternalServerError, err)
	}

	svgdom.Logger().Info("converted svg",
		slog.String("request_id", requestID(c)),
		slog.String("format", format.String()),
		slog.Int("primitives", doc.Len()),
		slog.Int("bytes", out.Len()))

	c.Set(fiber.HeaderContentType, format.ContentType())
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="drawing.`+format.String()+`"`)
	return c.Send(out.Bytes())
}

// Live is the liveness probe.
func Live(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "alive"})
}

// Ready is the readiness probe.
func Ready(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ready"})
}
