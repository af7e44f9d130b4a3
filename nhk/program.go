package nhk

import (
	"fmt"
	"strconv"
	"strings"
)

// Program is the now-on-air feed: one entry per channel. Only the fields the
// player displays are decoded; the feed carries far more.
type Program struct {
	R1 ProgramChannel `json:"r1"`
	R2 ProgramChannel `json:"r2"`
	R3 ProgramChannel `json:"r3"`
}

// Channel returns the program entry for a channel. The feed names the FM
// service "r3".
func (p *Program) Channel(c Channel) *ProgramChannel {
	switch c {
	case ChannelR1:
		return &p.R1
	case ChannelR2:
		return &p.R2
	default:
		return &p.R3
	}
}

// ProgramChannel holds the previous/current/next broadcast events.
type ProgramChannel struct {
	Previous  *BroadcastEvent `json:"previous"`
	Present   *BroadcastEvent `json:"present"`
	Following *BroadcastEvent `json:"following"`
}

// BroadcastEvent is a single program airing.
type BroadcastEvent struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	About       *About `json:"about"`
}

// About carries the episode-level name and description when present.
type About struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ProgramInfo is the display projection the UI consumes: a stable
// (title, description) pair with placeholder text when the feed has no data.
type ProgramInfo struct {
	Title       string
	Description string
	StartTime   string
}

const placeholderTitle = "番組情報なし"

// NowPlaying projects the current event for a channel into display text.
// A nil program (feed unavailable) yields the placeholder.
func NowPlaying(program *Program, c Channel) ProgramInfo {
	if program == nil {
		return ProgramInfo{Title: placeholderTitle}
	}

	present := program.Channel(c).Present
	if present == nil {
		return ProgramInfo{Title: placeholderTitle}
	}

	info := ProgramInfo{
		Title:     present.Name,
		StartTime: FormatStartTime(present.StartDate),
	}
	if present.About != nil {
		if present.About.Name != "" {
			info.Title = present.About.Name
		}
		info.Description = present.About.Description
	}
	if info.Title == "" {
		info.Title = placeholderTitle
	}
	return info
}

// FormatStartTime renders an ISO timestamp like "2025-11-25T23:00:00+09:00"
// as "2025年11月25日 午後11:00". Unparseable input is returned unchanged.
func FormatStartTime(iso string) string {
	if len(iso) < 16 {
		return iso
	}

	dateParts := strings.Split(iso[0:10], "-")
	timeParts := strings.Split(iso[11:16], ":")
	if len(dateParts) != 3 || len(timeParts) != 2 {
		return iso
	}

	month, err1 := strconv.Atoi(dateParts[1])
	day, err2 := strconv.Atoi(dateParts[2])
	hour, err3 := strconv.Atoi(timeParts[0])
	if err1 != nil || err2 != nil || err3 != nil {
		return iso
	}

	period := "午前"
	displayHour := hour
	if hour >= 12 {
		period = "午後"
		if hour > 12 {
			displayHour = hour - 12
		}
	} else if hour == 0 {
		displayHour = 12
	}

	return fmt.Sprintf("%s年%d月%d日 %s%d:%s", dateParts[0], month, day, period, displayHour, timeParts[1])
}
