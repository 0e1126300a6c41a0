package episode

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/zeebo/xxh3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"creditmarker/internal/fileutil"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Episode is one hashed episode.
type Episode struct {
	Title         string   `json:"title"`
	ID            string   `json:"id,omitempty"`
	SeasonID      string   `json:"seasonId,omitempty"`
	ShowID        string   `json:"showId,omitempty"`
	EpisodeNumber string   `json:"episodeNumber,omitempty"`
	Frames        []string `json:"frames"`
}

// Len returns the number of frames.
func (e Episode) Len() int {
	return len(e.Frames)
}

// Digest identifies the frame sequence independent of title and metadata.
func (e Episode) Digest() string {
	return Digest(e.Frames)
}

// Load reads an episode file. A missing title falls back to a title derived
// from the file name.
func Load(path string) (Episode, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Episode{}, fmt.Errorf("read episode %s: %w", path, err)
	}
	ep, err := Decode(data)
	if err != nil {
		return Episode{}, fmt.Errorf("decode episode %s: %w", path, err)
	}
	if strings.TrimSpace(ep.Title) == "" {
		ep.Title = TitleFromPath(path)
	}
	return ep, nil
}

// Decode parses an episode payload.
func Decode(data []byte) (Episode, error) {
	if len(data) == 0 {
		return Episode{}, errors.New("episode payload empty")
	}
	var ep Episode
	if err := json.Unmarshal(data, &ep); err != nil {
		return Episode{}, err
	}
	ep.Title = strings.TrimSpace(ep.Title)
	return ep, nil
}

// Save writes ep to path in the upload format.
func Save(path string, ep Episode) error {
	data, err := json.Marshal(ep)
	if err != nil {
		return fmt.Errorf("encode episode: %w", err)
	}
	err = fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
	if err != nil {
		return fmt.Errorf("write episode %s: %w", path, err)
	}
	return nil
}

// TitleFromPath turns "Game_of_Thrones_S07E03.json" into
// "Game Of Thrones S07E03".
func TitleFromPath(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.NewReplacer("_", " ", ".", " ").Replace(base)
	base = strings.Join(strings.Fields(base), " ")
	if base == "" {
		return "untitled"
	}
	return cases.Title(language.English, cases.NoLower).String(base)
}

// Digest returns a hex xxh3 digest of an ordered frame sequence. Frame
// boundaries are part of the digest, so ["ab","c"] and ["a","bc"] differ.
func Digest(frames []string) string {
	h := xxh3.New()
	sep := []byte{0}
	for _, f := range frames {
		_, _ = h.Write([]byte(f))
		_, _ = h.Write(sep)
	}
	_, _ = h.Write([]byte(strconv.Itoa(len(frames))))
	return fmt.Sprintf("%016x", h.Sum64())
}
