package models

// SubjectLevel designates IB course depth.
const (
	LevelHL = "HL"
	LevelSL = "SL"
)

// Subject is an immutable catalog entry describing one IB course. The
// catalog is fixed at build time; nothing mutates a Subject at runtime.
type Subject struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Level         string      `json:"level"`
	Progress      int         `json:"progress"`
	NextMilestone string      `json:"next_milestone"`
	DueDate       string      `json:"due_date"`
	Color         string      `json:"color"`
	Icon          string      `json:"icon"`
	Papers        []string    `json:"papers"`
	Milestones    []Milestone `json:"milestones"`
}

// DisplayName renders the subject the way the past-papers tree labels
// it, e.g. "Physics HL".
func (s Subject) DisplayName() string {
	return s.Name + " " + s.Level
}

// Milestone is a single IA checkpoint nested under a Subject. Milestones
// share the parent subject's lifecycle.
type Milestone struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	DueDate     string          `json:"due_date"`
	Completed   bool            `json:"completed"`
	Files       []MilestoneFile `json:"files"`
}

// MilestoneFile describes an attachment on a milestone.
type MilestoneFile struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	UploadDate string `json:"upload_date"`
	Size       string `json:"size"`
}
