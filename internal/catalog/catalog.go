package catalog

import (
	"math"
	"time"

	"github.com/noah-isme/ibplan-go-api/internal/models"
)

// Exam sessions offered each year.
var Sessions = []string{"May", "November"}

// subjects is the build-time catalog. It is never mutated at runtime;
// All returns a copy so callers cannot alter the table either.
var subjects = []models.Subject{
	{
		ID:            "physics-hl",
		Name:          "Physics",
		Level:         models.LevelHL,
		Progress:      75,
		NextMilestone: "Draft 1 Due",
		DueDate:       "Dec 15",
		Color:         "#3B82F6",
		Icon:          "physics",
		Papers:        []string{"Paper 1", "Paper 2"},
		Milestones: []models.Milestone{
			{
				ID:          "1",
				Title:       "Topic Selection",
				Description: "Choose and approve your IA topic",
				DueDate:     "2024-01-15",
				Completed:   true,
				Files:       []models.MilestoneFile{},
			},
			{
				ID:          "2",
				Title:       "Research and Data Collection",
				Description: "Gather data and conduct research",
				DueDate:     "2024-02-15",
				Completed:   true,
				Files:       []models.MilestoneFile{},
			},
			{
				ID:          "3",
				Title:       "Draft 1",
				Description: "Submit first complete draft",
				DueDate:     "2024-12-15",
				Completed:   false,
				Files:       []models.MilestoneFile{},
			},
		},
	},
	{
		ID:            "chemistry-hl",
		Name:          "Chemistry",
		Level:         models.LevelHL,
		Progress:      45,
		NextMilestone: "Data Collection",
		DueDate:       "Jan 10",
		Color:         "#10B981",
		Icon:          "chemistry",
		Papers:        []string{"Paper 1", "Paper 2", "Paper 3"},
	},
	{
		ID:            "math-aa-hl",
		Name:          "Math AA",
		Level:         models.LevelHL,
		Progress:      90,
		NextMilestone: "Final Review",
		DueDate:       "Dec 20",
		Color:         "#8B5CF6",
		Icon:          "math",
		Papers:        []string{"Paper 1", "Paper 2", "Paper 3"},
	},
	{
		ID:            "economics-hl",
		Name:          "Economics",
		Level:         models.LevelHL,
		Progress:      30,
		NextMilestone: "Topic Selection",
		DueDate:       "Jan 25",
		Color:         "#F59E0B",
		Icon:          "economics",
		Papers:        []string{"Paper 1", "Paper 2", "Paper 3"},
	},
	{
		ID:            "geography-hl",
		Name:          "Geography",
		Level:         models.LevelHL,
		Progress:      60,
		NextMilestone: "Research Phase",
		DueDate:       "Feb 01",
		Color:         "#EF4444",
		Icon:          "geography",
		Papers:        []string{"Paper 1", "Paper 2", "Paper 3"},
	},
	{
		ID:            "computer-science-hl",
		Name:          "Computer Science",
		Level:         models.LevelHL,
		Progress:      85,
		NextMilestone: "Testing Phase",
		DueDate:       "Dec 18",
		Color:         "#06B6D4",
		Icon:          "computer",
		Papers:        []string{"Paper 1", "Paper 2"},
	},
	{
		ID:            "english-lang-lit-sl",
		Name:          "English Lang & Lit",
		Level:         models.LevelSL,
		Progress:      55,
		NextMilestone: "Draft Review",
		DueDate:       "Jan 08",
		Color:         "#EC4899",
		Icon:          "english",
		Papers:        []string{"Paper 1", "Paper 2"},
	},
	{
		ID:            "arabic-lang-lit-sl",
		Name:          "Arabic Lang & Lit",
		Level:         models.LevelSL,
		Progress:      40,
		NextMilestone: "Topic Research",
		DueDate:       "Jan 30",
		Color:         "#84CC16",
		Icon:          "arabic",
		Papers:        []string{"Paper 1", "Paper 2"},
	},
}

// All returns the catalog in its fixed display order.
func All() []models.Subject {
	out := make([]models.Subject, len(subjects))
	copy(out, subjects)
	return out
}

// FindByID looks a subject up by its catalog id.
func FindByID(id string) (models.Subject, bool) {
	for _, s := range subjects {
		if s.ID == id {
			return s, true
		}
	}
	return models.Subject{}, false
}

// Selected resolves a set of subject ids against the catalog, keeping
// catalog order and skipping unknown ids.
func Selected(ids []string) []models.Subject {
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	out := make([]models.Subject, 0, len(wanted))
	for _, s := range subjects {
		if _, ok := wanted[s.ID]; ok {
			out = append(out, s)
		}
	}
	return out
}

// AggregateProgress is the derived dashboard figure: the arithmetic
// mean of the selected subjects' baseline progress values rounded to
// the nearest integer, or 0 when nothing is selected.
func AggregateProgress(ids []string) int {
	selected := Selected(ids)
	if len(selected) == 0 {
		return 0
	}
	total := 0
	for _, s := range selected {
		total += s.Progress
	}
	return int(math.Round(float64(total) / float64(len(selected))))
}

// Years lists the browsable exam years, newest first, ending at 1999.
func Years(now time.Time) []int {
	years := make([]int, 0, now.Year()+2-1999)
	for year := now.Year() + 1; year >= 1999; year-- {
		years = append(years, year)
	}
	return years
}

// paperStructure captures the per-subject paper layout and the 2025
// syllabus change that dropped or kept Paper 3.
var paperStructure = map[string]struct {
	before2025 []string
	from2025   []string
}{
	"Physics HL":            {[]string{"Paper 1", "Paper 2", "Paper 3"}, []string{"Paper 1", "Paper 2"}},
	"Physics SL":            {[]string{"Paper 1", "Paper 2", "Paper 3"}, []string{"Paper 1", "Paper 2"}},
	"Chemistry HL":          {[]string{"Paper 1", "Paper 2", "Paper 3"}, []string{"Paper 1", "Paper 2"}},
	"Math AA HL":            {[]string{"Paper 1", "Paper 2", "Paper 3"}, []string{"Paper 1", "Paper 2", "Paper 3"}},
	"Math AA SL":            {[]string{"Paper 1", "Paper 2", "Paper 3"}, []string{"Paper 1", "Paper 2"}},
	"Economics HL":          {[]string{"Paper 1", "Paper 2", "Paper 3"}, []string{"Paper 1", "Paper 2", "Paper 3"}},
	"Geography HL":          {[]string{"Paper 1", "Paper 2", "Paper 3"}, []string{"Paper 1", "Paper 2", "Paper 3"}},
	"Computer Science HL":   {[]string{"Paper 1", "Paper 2", "Paper 3"}, []string{"Paper 1", "Paper 2", "Paper 3"}},
	"English Lang & Lit SL": {[]string{"Paper 1", "Paper 2"}, []string{"Paper 1", "Paper 2"}},
	"Arabic Lang & Lit SL":  {[]string{"Paper 1", "Paper 2"}, []string{"Paper 1", "Paper 2"}},
}

// AvailablePapers returns the paper labels offered for a subject in a
// given exam year, or nil for unknown subjects.
func AvailablePapers(subject string, year int) []string {
	structure, ok := paperStructure[subject]
	if !ok {
		return nil
	}
	if year >= 2025 {
		return structure.from2025
	}
	return structure.before2025
}
