package dto

// ThemeResponse reports the active UI theme.
type ThemeResponse struct {
	Theme string `json:"theme"`
}
