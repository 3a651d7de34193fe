package writer

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bgrewell/dlis-kit/pkg/logicalfile"
)

// WriteFrameCSV dumps one CSV file per Frame referenced by lf's Frame-Data
// records, named "<origin>_<copy>_<identifier>.csv". Columns are
// "frameNumber" followed by one column per channel, named
// "<identifier>" or "<identifier>, <units>" when the channel carries
// units, matching the column order the owning Frame's CHANNELS attribute
// declared.
//
// No third-party CSV library appears anywhere in the retrieved corpus;
// encoding/csv is the direct idiomatic equivalent of the original
// decoder's own standard-library csv.DictWriter use.
func WriteFrameCSV(lf *logicalfile.LogicalFile, dir string) ([]string, error) {
	byFrame := lf.FrameDataByName()

	var written []string
	for frameName, rows := range byFrame {
		frame, ok := lf.Frames[frameName]
		if !ok {
			continue
		}

		name := fmt.Sprintf("%d_%d_%s", frameName.Origin, frameName.Copy, frameName.Identifier)
		outPath := filepath.Join(dir, name+".csv")

		f, err := os.Create(outPath)
		if err != nil {
			return written, fmt.Errorf("writer: creating %s: %w", outPath, err)
		}

		w := csv.NewWriter(f)
		header := []string{"frameNumber"}
		for _, chName := range frame.ChannelNames {
			ch, ok := lf.Channels[chName]
			col := chName.Identifier
			if ok && ch.Units != "" {
				col += ", " + ch.Units
			}
			header = append(header, col)
		}
		if err := w.Write(header); err != nil {
			f.Close()
			return written, fmt.Errorf("writer: writing header for %s: %w", outPath, err)
		}

		for _, row := range rows {
			record := make([]string, 0, len(row.Channels)+1)
			record = append(record, strconv.FormatUint(uint64(row.FrameNumber), 10))
			for _, cv := range row.Channels {
				record = append(record, formatValue(cv.Value))
			}
			if err := w.Write(record); err != nil {
				f.Close()
				return written, fmt.Errorf("writer: writing row for %s: %w", outPath, err)
			}
		}
		w.Flush()
		if err := w.Error(); err != nil {
			f.Close()
			return written, fmt.Errorf("writer: flushing %s: %w", outPath, err)
		}
		f.Close()
		written = append(written, outPath)
	}
	return written, nil
}

func formatValue(v interface{}) string {
	if values, ok := v.([]interface{}); ok {
		out := "["
		for i, item := range values {
			if i > 0 {
				out += " "
			}
			out += fmt.Sprintf("%v", item)
		}
		return out + "]"
	}
	return fmt.Sprintf("%v", v)
}
