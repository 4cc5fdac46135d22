package sequence

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// numberedName captures <prefix><digits>.<ext>. The non-greedy prefix pins
// the digit group to the final run of digits before the extension.
var numberedName = regexp.MustCompile(`^(.*?)(\d+)\.([A-Za-z0-9]+)$`)

type groupKey struct {
	prefix string
	width  int
	ext    string
}

// Scan inspects dir and returns the numbered image sequences it contains,
// sorted by prefix, then numeric width, then extension. Files whose extension
// is not in exts (DefaultExtensions when nil) are ignored, as are dotfiles
// and subdirectories.
func Scan(dir string, exts []string) ([]Sequence, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("scan sequences: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan sequences: %s is not a directory", dir)
	}

	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	allowed := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		allowed[normalizeExt(ext)] = struct{}{}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan sequences: %w", err)
	}

	groups := make(map[groupKey][]int)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		match := numberedName.FindStringSubmatch(name)
		if match == nil {
			continue
		}
		ext := strings.ToLower(match[3])
		if _, ok := allowed[ext]; !ok {
			continue
		}
		frame, err := strconv.Atoi(match[2])
		if err != nil {
			continue
		}
		key := groupKey{prefix: match[1], width: len(match[2]), ext: ext}
		groups[key] = append(groups[key], frame)
	}

	sequences := make([]Sequence, 0, len(groups))
	for key, frames := range groups {
		sort.Ints(frames)
		sequences = append(sequences, Sequence{
			Dir:    dir,
			Prefix: key.prefix,
			Width:  key.width,
			Ext:    key.ext,
			Frames: frames,
		})
	}
	sort.Slice(sequences, func(i, j int) bool {
		if sequences[i].Prefix != sequences[j].Prefix {
			return sequences[i].Prefix < sequences[j].Prefix
		}
		if sequences[i].Width != sequences[j].Width {
			return sequences[i].Width < sequences[j].Width
		}
		return sequences[i].Ext < sequences[j].Ext
	})
	return sequences, nil
}

// Find locates the single sequence in dir matching the optional prefix and
// extension filters. It fails when nothing matches, when the filters are
// ambiguous, or when one prefix carries multiple numeric widths. The width
// conflict is reported explicitly because an ffmpeg %0Nd pattern built from
// the wrong width enumerates no frames at all.
func Find(dir, prefix, ext string) (Sequence, error) {
	sequences, err := Scan(dir, nil)
	if err != nil {
		return Sequence{}, err
	}

	ext = normalizeExt(ext)
	matched := sequences[:0]
	for _, seq := range sequences {
		if prefix != "" && seq.Prefix != prefix {
			continue
		}
		if ext != "" && seq.Ext != ext {
			continue
		}
		matched = append(matched, seq)
	}

	switch len(matched) {
	case 0:
		if prefix != "" || ext != "" {
			return Sequence{}, fmt.Errorf("no numbered image sequence in %s matches prefix %q ext %q", dir, prefix, ext)
		}
		return Sequence{}, fmt.Errorf("no numbered image sequence found in %s", dir)
	case 1:
		return matched[0], nil
	}

	if widths := conflictingWidths(matched); len(widths) > 1 {
		return Sequence{}, fmt.Errorf(
			"sequence %q in %s mixes numeric widths %s; pad all filenames to one width before stitching",
			matched[0].Prefix, dir, joinWidths(widths))
	}

	names := make([]string, 0, len(matched))
	for _, seq := range matched {
		names = append(names, fmt.Sprintf("%s (%%0%dd.%s)", seq.Prefix, seq.Width, seq.Ext))
	}
	return Sequence{}, fmt.Errorf("multiple sequences found in %s: %s; select one with --prefix or --ext", dir, strings.Join(names, ", "))
}

// conflictingWidths returns the distinct widths when every match shares one
// prefix and extension but differs in digit padding.
func conflictingWidths(matched []Sequence) []int {
	for _, seq := range matched[1:] {
		if seq.Prefix != matched[0].Prefix || seq.Ext != matched[0].Ext {
			return nil
		}
	}
	widths := make([]int, 0, len(matched))
	seen := make(map[int]struct{})
	for _, seq := range matched {
		if _, ok := seen[seq.Width]; ok {
			continue
		}
		seen[seq.Width] = struct{}{}
		widths = append(widths, seq.Width)
	}
	sort.Ints(widths)
	return widths
}

func joinWidths(widths []int) string {
	parts := make([]string, 0, len(widths))
	for _, w := range widths {
		parts = append(parts, strconv.Itoa(w))
	}
	return strings.Join(parts, " and ")
}
