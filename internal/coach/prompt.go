package coach

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/terraincognita07/gymbro/internal/models"
)

const personaPrompt = `You are a fitness coach for Gymbro, a gamified personal performance app.
Your tone is direct, calm, intelligent, and non-preachy. You focus on adherence and consistency, not perfection.
Never count calories. Keep responses concise and actionable.`

// Snapshot is the user data summarised into the system prompt. DaysPassed is
// the number of whole days since the active chapter started.
type Snapshot struct {
	Profile        *models.Profile
	ActiveChapter  *models.Chapter
	DaysPassed     int
	RecentCheckIns []models.DailyCheckIn
}

func BuildSystemPrompt(snapshot Snapshot) string {
	var builder strings.Builder
	builder.WriteString(personaPrompt)

	if profile := snapshot.Profile; profile != nil {
		builder.WriteString("\n\nUser Profile:")
		fmt.Fprintf(&builder, "\n- Age: %d", profile.Age)
		fmt.Fprintf(&builder, "\n- Height: %scm", formatNumber(profile.Height))
		fmt.Fprintf(&builder, "\n- Weight: %skg", formatNumber(profile.Weight))
		fmt.Fprintf(&builder, "\n- Long-term goal: %s", profile.LongTermGoal)
		if profile.InjuryNotes != nil && strings.TrimSpace(*profile.InjuryNotes) != "" {
			fmt.Fprintf(&builder, "\n- Injuries/limitations: %s", *profile.InjuryNotes)
		}
		fmt.Fprintf(&builder, "\n- XP: %d, Streak: %d days", profile.XP, profile.SoftStreaks)
	}

	if chapter := snapshot.ActiveChapter; chapter != nil {
		fmt.Fprintf(&builder, "\n\nActive Chapter: %q", chapter.ChapterName)
		fmt.Fprintf(&builder, "\n- Focus: %s", chapter.Focus)
		fmt.Fprintf(&builder, "\n- Duration: %d days", chapter.Duration)
		if chapter.StartDate != nil && chapter.Duration > 0 {
			days := max(0, snapshot.DaysPassed)
			percent := min(100, int(math.Round(float64(days)/float64(chapter.Duration)*100)))
			fmt.Fprintf(&builder, "\n- Progress: %d%% (day %d of %d)", percent, days, chapter.Duration)
		}
	}

	if len(snapshot.RecentCheckIns) > 0 {
		checkIns := snapshot.RecentCheckIns
		if len(checkIns) > maxSnapshotCheckIns {
			checkIns = checkIns[:maxSnapshotCheckIns]
		}
		fmt.Fprintf(&builder, "\n\nRecent Check-ins (last %d days):", len(checkIns))
		for _, checkIn := range checkIns {
			fmt.Fprintf(&builder, "\n- %s: %skg, energy %d/5, bloating %d/5, alcohol: %s, moved: %s",
				checkIn.Date,
				formatNumber(checkIn.Weight),
				checkIn.Energy,
				checkIn.BloatingLevel,
				checkIn.AlcoholIntake,
				yesNo(checkIn.MovementDone),
			)
		}
	}

	return builder.String()
}

func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
