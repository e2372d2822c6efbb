package main

// Request/response DTOs. Keep them minimal and explicit.

type registerReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResp struct {
	Token string `json:"token"`
}

// regionReq describes the point and date range every analysis endpoint takes.
type regionReq struct {
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	ROIDeg     float64 `json:"roi_size_degrees,omitempty"` // default 5.0
	StartDate  string  `json:"start_date,omitempty"`       // default 2000-01-01
	EndDate    string  `json:"end_date"`
	DataSource string  `json:"data_source,omitempty"` // only "nasa"
}

type peaksReq struct {
	regionReq
	Threshold *float64 `json:"threshold,omitempty"` // default 0.2
}

type forecastReq struct {
	regionReq
	FutureSteps *int `json:"future_steps,omitempty"` // default 60
	LookBack    *int `json:"look_back,omitempty"`    // default 30
}

type analysisReq struct {
	regionReq
	Threshold   *float64 `json:"threshold,omitempty"`
	FutureSteps *int     `json:"future_steps,omitempty"`
	LookBack    *int     `json:"look_back,omitempty"`
}

type createRegionReq struct {
	Name      string   `json:"name"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	ROIDeg    *float64 `json:"roiSizeDegrees,omitempty"`
	Notes     string   `json:"notes,omitempty"`
}

type analyzeRegionReq struct {
	StartDate   string   `json:"start_date,omitempty"`
	EndDate     string   `json:"end_date,omitempty"` // default today
	Threshold   *float64 `json:"threshold,omitempty"`
	FutureSteps *int     `json:"future_steps,omitempty"`
	LookBack    *int     `json:"look_back,omitempty"`
}
