package ffmpeg

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ProgressUpdate captures one block of ffmpeg -progress output.
type ProgressUpdate struct {
	Stage   string
	Frame   int64
	FPS     float64
	OutTime time.Duration
	Speed   float64
	Done    bool
}

var stageTitle = cases.Title(language.English)

// Message renders the update for human-facing log output.
func (u ProgressUpdate) Message() string {
	label := strings.TrimSpace(u.Stage)
	if label == "" {
		label = "encoding"
	}
	label = stageTitle.String(label)

	base := fmt.Sprintf("%s frame %d", label, u.Frame)
	extras := make([]string, 0, 2)
	if u.OutTime > 0 {
		extras = append(extras, u.OutTime.Truncate(100*time.Millisecond).String())
	}
	if u.Speed > 0 {
		extras = append(extras, fmt.Sprintf("@ %.1fx", u.Speed))
	}
	if len(extras) == 0 {
		return base
	}
	return fmt.Sprintf("%s (%s)", base, strings.Join(extras, ", "))
}

// progressParser accumulates the key=value lines ffmpeg writes to
// -progress pipe:1 and emits an update at each progress= terminator.
type progressParser struct {
	current ProgressUpdate
}

func (p *progressParser) feed(line string) (ProgressUpdate, bool) {
	line = strings.TrimSpace(line)
	key, value, found := strings.Cut(line, "=")
	if !found {
		return ProgressUpdate{}, false
	}
	value = strings.TrimSpace(value)

	switch key {
	case "frame":
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			p.current.Frame = n
		}
	case "fps":
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			p.current.FPS = f
		}
	case "out_time_us":
		if us, err := strconv.ParseInt(value, 10, 64); err == nil && us > 0 {
			p.current.OutTime = time.Duration(us) * time.Microsecond
		}
	case "speed":
		if f, err := strconv.ParseFloat(strings.TrimSuffix(value, "x"), 64); err == nil {
			p.current.Speed = f
		}
	case "progress":
		update := p.current
		update.Done = value == "end"
		if update.Done {
			update.Stage = "finished"
		} else {
			update.Stage = "encoding"
		}
		p.current = ProgressUpdate{}
		return update, true
	}
	return ProgressUpdate{}, false
}
