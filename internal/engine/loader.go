package engine

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	"lawmap/internal/models"
)

// Sources says where each dataset comes from. An empty path means the bytes
// compiled into the binary.
type Sources struct {
	TopicsPath string
	RatesPath  string
	Topics     []byte
	Rates      []byte
}

// --- 1. FAST PARSERS ---

// fastFloat parses "1.25" -> 1.25. Only unsigned decimals are accepted.
// The bytes are checked here and converted by strconv so the result is the
// nearest float64 to the text.
func fastFloat(b []byte) (float64, bool) {
	if len(b) == 0 {
		return 0, false
	}
	dot := -1
	for i, c := range b {
		switch {
		case c == '.' && dot < 0:
			dot = i
		case c < '0' || c > '9':
			return 0, false
		}
	}
	if dot == len(b)-1 {
		return 0, false
	}
	num, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return 0, false
	}
	return num, true
}

// unquote strips one pair of surrounding double quotes.
func unquote(b []byte) []byte {
	if len(b) >= 2 && b[0] == '"' && b[len(b)-1] == '"' {
		return b[1 : len(b)-1]
	}
	return b
}

// --- 2. LOADERS ---

// LoadTopics decodes a JSON object of country name -> topic record.
func LoadTopics(content []byte) (TopicDataset, error) {
	var records map[string]models.TopicRecord
	if err := json.Unmarshal(content, &records); err != nil {
		return TopicDataset{}, fmt.Errorf("decode topics: %w", err)
	}
	return TopicDataset{NewDataset(records)}, nil
}

// LoadRates parses "country,rate" rows. The first line is a header. The rate
// is taken after the last comma so quoted names may contain commas. Bad rows
// are skipped with a warning.
func LoadRates(content []byte) RateDataset {
	if idx := bytes.IndexByte(content, '\n'); idx != -1 {
		content = content[idx+1:]
	} else {
		content = nil
	}

	records := make(map[string]float64)
	pos := 0
	line := 1
	for pos < len(content) {
		line++
		nextPos := len(content)
		if i := bytes.IndexByte(content[pos:], '\n'); i != -1 {
			nextPos = pos + i
		}
		row := bytes.TrimRight(content[pos:nextPos], "\r")
		pos = nextPos + 1

		if len(bytes.TrimSpace(row)) == 0 {
			continue
		}

		cut := bytes.LastIndexByte(row, ',')
		if cut <= 0 {
			slog.Warn("skipping rate row without a value", "line", line)
			continue
		}
		name := string(unquote(bytes.TrimSpace(row[:cut])))
		rate, ok := fastFloat(bytes.TrimSpace(row[cut+1:]))
		if !ok || name == "" {
			slog.Warn("skipping malformed rate row", "line", line, "row", string(row))
			continue
		}
		records[name] = rate
	}
	return RateDataset{NewDataset(records)}
}

func readSource(ctx context.Context, path string, embedded []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if path == "" {
		return embedded, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return content, nil
}

// LoadStore reads and decodes both datasets concurrently.
func LoadStore(ctx context.Context, src Sources) (*Store, error) {
	start := time.Now()
	store := &Store{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		content, err := readSource(gctx, src.TopicsPath, src.Topics)
		if err != nil {
			return err
		}
		store.Topics, err = LoadTopics(content)
		return err
	})
	g.Go(func() error {
		content, err := readSource(gctx, src.RatesPath, src.Rates)
		if err != nil {
			return err
		}
		store.Rates = LoadRates(content)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.Info("datasets loaded",
		"topics", store.Topics.Len(),
		"rates", store.Rates.Len(),
		"took", time.Since(start))
	return store, nil
}
