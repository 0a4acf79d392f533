package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/sia/pkg/cache"
	"github.com/matzehuels/sia/pkg/errors"
	"github.com/matzehuels/sia/pkg/observability"
	"github.com/matzehuels/sia/pkg/render/code/sink"
)

// Export serializes doc in each of opts.Formats. PNG and PDF need the
// external rasterizer; its absence fails with the UNSUPPORTED code.
// Rasterized artifacts are served from and stored in opts.Cache.
func Export(ctx context.Context, doc sink.Document, opts Options) (map[string][]byte, error) {
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, err
	}
	opts.setExportDefaults()
	hooks := observability.Export()
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		if _, done := artifacts[format]; done {
			continue
		}
		start := time.Now()
		data, err := exportOne(ctx, doc, format, opts)
		hooks.OnExport(ctx, format, len(data), time.Since(start), err)
		if err != nil {
			if errors.GetCode(err) != "" {
				return nil, err
			}
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func exportOne(ctx context.Context, doc sink.Document, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return doc.SVG(), nil
	case FormatPNG:
		return rasterize(ctx, doc, format, opts, func() ([]byte, error) {
			return sink.RenderPNG(doc, sink.WithScale(opts.PNGScale))
		})
	case FormatPDF:
		return rasterize(ctx, doc, format, opts, func() ([]byte, error) {
			return sink.RenderPDF(doc)
		})
	case FormatJSON:
		return sink.RenderJSON(doc)
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
}

// rasterize looks the artifact up by SVG hash and scale before running fn.
// Cache failures are logged and never fail the export.
func rasterize(ctx context.Context, doc sink.Document, format string, opts Options, fn func() ([]byte, error)) ([]byte, error) {
	key := cache.Key(format, cache.Hash(doc.SVG()), opts.PNGScale)
	if data, ok, err := opts.Cache.Get(ctx, key); err != nil {
		opts.Logger.Debug("raster cache read failed", "format", format, "error", err)
	} else if ok {
		opts.Logger.Debug("raster cache hit", "format", format, "bytes", len(data))
		return data, nil
	}

	data, err := fn()
	if err != nil {
		return nil, err
	}
	if err := opts.Cache.Set(ctx, key, data, cache.DefaultTTL); err != nil {
		opts.Logger.Debug("raster cache write failed", "format", format, "error", err)
	}
	return data, nil
}
