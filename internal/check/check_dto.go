package check

import "time"

type CheckResponse struct {
	ID          string   `json:"id"`
	UserID      string   `json:"userId"`
	Date        string   `json:"date"`
	CheckIn     string   `json:"checkIn"`
	CheckOut    *string  `json:"checkOut,omitempty"`
	WorkedHours *float64 `json:"workedHours,omitempty"`
}

func mapToResponse(c Check) CheckResponse {
	resp := CheckResponse{
		ID:          c.ID.String(),
		UserID:      c.UserID.String(),
		Date:        c.CheckDate,
		CheckIn:     c.CheckIn.Format(time.RFC3339),
		WorkedHours: c.WorkedHours,
	}
	if c.CheckOut != nil {
		v := c.CheckOut.Format(time.RFC3339)
		resp.CheckOut = &v
	}
	return resp
}

func mapToListResponse(rows []Check) []CheckResponse {
	res := make([]CheckResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res
}
