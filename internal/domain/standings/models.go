package standings

// Row is one team's line in a ranking group. Tied teams share a rank.
type Row struct {
	Rank      int    `json:"rank"`
	TeamCode  string `json:"teamCode"`
	TeamName  string `json:"teamName"`
	TeamImage string `json:"teamImage"`
	Wins      int    `json:"wins"`
	Losses    int    `json:"losses"`
}

// Stage is the selected stage of a tournament with its flattened rows.
type Stage struct {
	Name string `json:"stage"`
	Rows []Row  `json:"rows"`
}

// UnknownStage is returned when upstream has no stages for the tournament.
const UnknownStage = "Unknown"
