package metrics

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"stoneage/game"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

const (
	FormatCSV     = "csv"
	FormatParquet = "parquet"
)

// GameRecord is one row of game_records.
type GameRecord struct {
	ID   int
	Seed uint64
	GameMetric
}

// RoundRecord is one row of round_records.
type RoundRecord struct {
	Game int // GameRecord.ID
	RoundMetric
}

type gameRow struct {
	ID              int32  `parquet:"id"`
	GameID          string `parquet:"game_id"`
	Seed            uint64 `parquet:"seed"`
	Players         int32  `parquet:"players"`
	Rounds          int32  `parquet:"rounds"`
	Winner          int32  `parquet:"winner"`
	WinnerName      string `parquet:"winner_name,dict"`
	WinnerScore     int32  `parquet:"winner_score"`
	StartTime       int64  `parquet:"start_time_ms"`
	EndTime         int64  `parquet:"end_time_ms"`
	DurationMs      int64  `parquet:"duration_ms"`
	Rejected        int32  `parquet:"rejected"`
	FailedPurchases int32  `parquet:"failed_purchases"`
	Shortfalls      int32  `parquet:"shortfalls"`
}

type roundRow struct {
	Game           int32  `parquet:"game"`
	Round          int32  `parquet:"round"`
	Player         int32  `parquet:"player"`
	Name           string `parquet:"name,dict"`
	Score          int32  `parquet:"score"`
	Workers        int32  `parquet:"workers"`
	FoodProduction int32  `parquet:"food_production"`
	Tools          int32  `parquet:"tools"`
	Wood           int32  `parquet:"wood"`
	Brick          int32  `parquet:"brick"`
	Stone          int32  `parquet:"stone"`
	Gold           int32  `parquet:"gold"`
	Food           int32  `parquet:"food"`
	Cards          int32  `parquet:"cards"`
	Buildings      int32  `parquet:"buildings"`
	Shortfall      int32  `parquet:"shortfall"`
}

type Writer struct {
	baseDir string
	format  string
}

// NewWriter creates a subfolder of baseDir named by the current timestamp.
func NewWriter(baseDir, format string) (*Writer, error) {
	format = strings.ToLower(format)
	if format != FormatCSV && format != FormatParquet {
		return nil, fmt.Errorf("unknown record format %q", format)
	}

	timestamp := time.Now().UTC().Format("20060102T150405.000Z")
	dir := filepath.Join(baseDir, timestamp)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{baseDir: dir, format: format}, nil
}

// Dir is where the records are written.
func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	if w.format == FormatParquet {
		rows := make([]gameRow, len(records))
		for i, r := range records {
			rows[i] = gameRow{
				ID:              int32(r.ID),
				GameID:          r.GameID,
				Seed:            r.Seed,
				Players:         int32(r.Players),
				Rounds:          int32(r.Rounds),
				Winner:          int32(r.Winner),
				WinnerName:      r.WinnerName,
				WinnerScore:     int32(r.WinnerScore),
				StartTime:       r.StartTime.UnixMilli(),
				EndTime:         r.EndTime.UnixMilli(),
				DurationMs:      r.Duration.Milliseconds(),
				Rejected:        int32(r.Rejected),
				FailedPurchases: int32(r.FailedPurchases),
				Shortfalls:      int32(r.Shortfalls),
			}
		}
		return writeParquet(filepath.Join(w.baseDir, "game_records.parquet"), rows, "game_records_v1")
	}

	header := []string{"id", "game_id", "seed", "players", "rounds", "winner", "winner_name", "winner_score",
		"start_time", "end_time", "duration", "rejected", "failed_purchases", "shortfalls"}
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string{
			strconv.Itoa(r.ID),
			r.GameID,
			strconv.FormatUint(r.Seed, 10),
			strconv.Itoa(r.Players),
			strconv.Itoa(r.Rounds),
			strconv.Itoa(r.Winner),
			r.WinnerName,
			strconv.Itoa(r.WinnerScore),
			r.StartTime.Format(time.RFC3339),
			r.EndTime.Format(time.RFC3339),
			r.Duration.String(),
			strconv.Itoa(r.Rejected),
			strconv.Itoa(r.FailedPurchases),
			strconv.Itoa(r.Shortfalls),
		}
	}
	return writeCSV(filepath.Join(w.baseDir, "game_records.csv"), header, rows)
}

func (w *Writer) WriteRoundRecords(records []RoundRecord) error {
	if w.format == FormatParquet {
		rows := make([]roundRow, len(records))
		for i, r := range records {
			rows[i] = roundRow{
				Game:           int32(r.Game),
				Round:          int32(r.Round),
				Player:         int32(r.Player),
				Name:           r.Name,
				Score:          int32(r.Score),
				Workers:        int32(r.Workers),
				FoodProduction: int32(r.FoodProduction),
				Tools:          int32(r.Tools),
				Wood:           int32(r.Resources.Get(game.Wood)),
				Brick:          int32(r.Resources.Get(game.Brick)),
				Stone:          int32(r.Resources.Get(game.Stone)),
				Gold:           int32(r.Resources.Get(game.Gold)),
				Food:           int32(r.Resources.Get(game.Food)),
				Cards:          int32(r.Cards),
				Buildings:      int32(r.Buildings),
				Shortfall:      int32(r.Shortfall),
			}
		}
		return writeParquet(filepath.Join(w.baseDir, "round_records.parquet"), rows, "round_records_v1")
	}

	header := []string{"game", "round", "player", "name", "score", "workers", "food_production", "tools",
		"wood", "brick", "stone", "gold", "food", "cards", "buildings", "shortfall"}
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string{
			strconv.Itoa(r.Game),
			strconv.Itoa(r.Round),
			strconv.Itoa(r.Player),
			r.Name,
			strconv.Itoa(r.Score),
			strconv.Itoa(r.Workers),
			strconv.Itoa(r.FoodProduction),
			strconv.Itoa(r.Tools),
			strconv.Itoa(r.Resources.Get(game.Wood)),
			strconv.Itoa(r.Resources.Get(game.Brick)),
			strconv.Itoa(r.Resources.Get(game.Stone)),
			strconv.Itoa(r.Resources.Get(game.Gold)),
			strconv.Itoa(r.Resources.Get(game.Food)),
			strconv.Itoa(r.Cards),
			strconv.Itoa(r.Buildings),
			strconv.Itoa(r.Shortfall),
		}
	}
	return writeCSV(filepath.Join(w.baseDir, "round_records.csv"), header, rows)
}

func writeCSV(path string, header []string, rows [][]string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Base(path), err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", filepath.Base(path), cerr)
		}
	}()

	return writeRows(f, header, rows)
}

func writeRows(w io.Writer, header []string, rows [][]string) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write rows: %w", err)
	}
	return nil
}

// writeParquet writes to a temp file and renames it into place.
func writeParquet[T any](path string, rows []T, schema string) error {
	tmpPath := path + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", schema),
	); err != nil {
		return fmt.Errorf("write parquet: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename parquet: %w", err)
	}
	return nil
}
