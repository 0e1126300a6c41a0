package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	jsoniter "github.com/json-iterator/go"

	"creditmarker/internal/comparison"
	"creditmarker/internal/fileutil"
	"creditmarker/internal/textutil"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Timecode formats a frame index as H:MM:SS.f where f is the frame within
// its second.
func Timecode(frame, fps int) string {
	if fps <= 0 {
		fps = 1
	}
	if frame < 0 {
		frame = 0
	}
	secs := frame / fps
	return fmt.Sprintf("%d:%02d:%02d.%d", secs/3600, secs/60%60, secs%60, frame%fps)
}

// Text writes the summary and block tables for result.
func Text(w io.Writer, result *comparison.Result) error {
	if result == nil {
		return fmt.Errorf("report: result is nil")
	}
	fps := result.Match.FPS

	var b strings.Builder
	b.WriteString(result.Title())
	b.WriteString("\n\n")

	summary := [][]string{
		{"ID", result.ID},
		{"Base", fmt.Sprintf("%s (%s frames)", result.Base.Title, humanize.Comma(int64(result.Base.Frames)))},
		{"Comparison", fmt.Sprintf("%s (%s frames)", result.Comparison.Title, humanize.Comma(int64(result.Comparison.Frames)))},
		{"Scored", fmt.Sprintf("%s seconds (%s)", humanize.Comma(int64(result.Seconds())), Timecode(result.Seconds()*fps, fps))},
		{"Matched", fmt.Sprintf("%s seconds (%.1f%%)", humanize.Comma(int64(result.MatchedSeconds)), result.MatchedRatio()*100)},
		{"Frames matched", fmt.Sprintf("%s exact, %s almost", humanize.Comma(int64(result.Counts.Matched)), humanize.Comma(int64(result.Counts.AlmostMatched)))},
		{"Frames unmatched", fmt.Sprintf("%s missed, %s partial, %s undecided, %s out of range",
			humanize.Comma(int64(result.Counts.NotMatched)),
			humanize.Comma(int64(result.Counts.PartiallyMatched)),
			humanize.Comma(int64(result.Counts.Undecided)),
			humanize.Comma(int64(result.Counts.OutOfBounds)))},
		{"Segmented on", segmentLabel(result)},
		{"Created", humanize.Time(result.CreatedAt)},
	}
	if result.DroppedTail > 0 {
		summary = append(summary, []string{"Dropped tail", humanize.Comma(int64(result.DroppedTail)) + " frames"})
	}
	b.WriteString(Table([]string{"Field", "Value"}, summary, nil))
	b.WriteString("\n\n")

	if len(result.Blocks) == 0 {
		b.WriteString("No blocks: the base episode is shorter than one second.\n")
	} else {
		rows := make([][]string, 0, len(result.Blocks))
		for i, blk := range result.Blocks {
			begin, end := blk.Frames(fps)
			rows = append(rows, []string{
				strconv.Itoa(i + 1),
				Timecode(begin, fps),
				Timecode(end, fps),
				strconv.Itoa(blk.Len()) + "s",
				textutil.Ternary(blk.Matched, "yes", "no"),
				strconv.FormatFloat(blk.MeanScore, 'f', 1, 64),
			})
		}
		b.WriteString(Table(
			[]string{"#", "Begin", "End", "Duration", "Matched", "Mean score"},
			rows,
			[]Alignment{AlignRight, AlignRight, AlignRight, AlignRight, AlignLeft, AlignRight},
		))
		b.WriteString("\n")
	}

	if len(result.Rises) > 0 || len(result.Drops) > 0 {
		b.WriteString("\nScore jumps: ")
		b.WriteString(jumps("up", result.Rises, fps))
		if len(result.Rises) > 0 && len(result.Drops) > 0 {
			b.WriteString("; ")
		}
		b.WriteString(jumps("down", result.Drops, fps))
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// JSON writes result as indented JSON.
func JSON(w io.Writer, result *comparison.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// FileName returns the report file name for result.
func FileName(result *comparison.Result) string {
	id := result.ID
	if len(id) > 8 {
		id = id[:8]
	}
	name := textutil.SanitizeFileName(fmt.Sprintf("%s vs %s", result.Base.Title, result.Comparison.Title))
	if name == "" {
		name = "comparison"
	}
	return fmt.Sprintf("%s %s.json", name, textutil.SanitizeToken(id))
}

// WriteFile writes the JSON report into dir and returns its path. The file
// appears atomically.
func WriteFile(dir string, result *comparison.Result) (string, error) {
	if result == nil {
		return "", fmt.Errorf("report: result is nil")
	}
	target := filepath.Join(dir, FileName(result))
	err := fileutil.WriteAtomic(target, 0o644, func(w io.Writer) error {
		return JSON(w, result)
	})
	if err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return target, nil
}

func segmentLabel(result *comparison.Result) string {
	if result.SmoothingWindow <= 1 {
		return fmt.Sprintf("%s scores (no smoothing, pass > %g%%, min %ds)", result.SegmentOn, result.Segmentation.PassCriterion, result.Segmentation.MinDuration)
	}
	return fmt.Sprintf("%s scores (window %ds, pass > %g%%, min %ds)", result.SegmentOn, result.SmoothingWindow, result.Segmentation.PassCriterion, result.Segmentation.MinDuration)
}

func jumps(label string, secs []int, fps int) string {
	if len(secs) == 0 {
		return ""
	}
	parts := make([]string, len(secs))
	for i, sec := range secs {
		parts[i] = Timecode(sec*fps, fps)
	}
	return label + " at " + strings.Join(parts, ", ")
}
